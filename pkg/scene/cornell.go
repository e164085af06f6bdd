package scene

import (
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// NewCornellScene builds the classic Cornell box: white floor, ceiling
// and back wall, a red and a green side wall, a ceiling light and two
// spheres, one polished metal and one glass.
func NewCornellScene() *trace.Scene {
	sc := trace.NewScene()

	cam := sc.Cameras[sc.AddCamera()]
	cam.Frame = geom.LookAt(geom.Vec3{0, 1, 3.9}, geom.Vec3{0, 1, 0}, geom.Vec3{0, 1, 0})
	cam.SetLens(0.035, 1, 0.024) // square film framing the box opening
	cam.Focus = 3.9

	// wall and light materials
	white := sc.AddMaterial()
	sc.Materials[white].Color = geom.Vec3{0.725, 0.71, 0.68}
	red := sc.AddMaterial()
	sc.Materials[red].Color = geom.Vec3{0.63, 0.065, 0.05}
	green := sc.AddMaterial()
	sc.Materials[green].Color = geom.Vec3{0.14, 0.45, 0.091}
	light := sc.AddMaterial()
	sc.Materials[light].Emission = geom.Vec3{17, 12, 4}

	// the box interior spans [-1,1] on x and z and [0,2] on y, with
	// every wall normal pointing inward
	identity := geom.IdentityFrame()
	floor := addQuad(sc, geom.Vec3{-1, 0, 1}, geom.Vec3{2, 0, 0}, geom.Vec3{0, 0, -2})
	addInstance(sc, floor, white, identity)
	ceiling := addQuad(sc, geom.Vec3{-1, 2, -1}, geom.Vec3{2, 0, 0}, geom.Vec3{0, 0, 2})
	addInstance(sc, ceiling, white, identity)
	back := addQuad(sc, geom.Vec3{-1, 0, -1}, geom.Vec3{2, 0, 0}, geom.Vec3{0, 2, 0})
	addInstance(sc, back, white, identity)
	left := addQuad(sc, geom.Vec3{-1, 0, 1}, geom.Vec3{0, 0, -2}, geom.Vec3{0, 2, 0})
	addInstance(sc, left, red, identity)
	right := addQuad(sc, geom.Vec3{1, 0, -1}, geom.Vec3{0, 0, 2}, geom.Vec3{0, 2, 0})
	addInstance(sc, right, green, identity)

	// ceiling light, just below the ceiling and facing down
	lamp := addQuad(sc, geom.Vec3{-0.25, 1.99, -0.25}, geom.Vec3{0.5, 0, 0}, geom.Vec3{0, 0, 0.5})
	addInstance(sc, lamp, light, identity)

	// polished metal sphere on the left
	metal := sc.AddMaterial()
	sc.Materials[metal].Color = geom.Vec3{0.8, 0.8, 0.9}
	sc.Materials[metal].Metallic = 1
	metalSphere := addUVSphere(sc, geom.Vec3{}, 0.35, 32)
	addInstance(sc, metalSphere, metal, geom.Translation(geom.Vec3{-0.45, 0.35, 0.2}))

	// glass sphere on the right
	glass := sc.AddMaterial()
	sc.Materials[glass].Color = geom.Vec3{1, 1, 1}
	sc.Materials[glass].Transmission = 1
	sc.Materials[glass].Thin = false
	glassSphere := addUVSphere(sc, geom.Vec3{}, 0.4, 32)
	addInstance(sc, glassSphere, glass, geom.Translation(geom.Vec3{0.45, 0.4, -0.25}))

	return sc
}
