package scene

import (
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// NewMaterialsScene builds a row of spheres on a checkered floor, one
// per material model: matte, plastic, rough metal, polished metal,
// glass and thin glass.
func NewMaterialsScene() *trace.Scene {
	sc := trace.NewScene()

	cam := sc.Cameras[sc.AddCamera()]
	eye, at := geom.Vec3{0, 1, 4.8}, geom.Vec3{0, 0.3, 0}
	cam.Frame = geom.LookAt(eye, at, geom.Vec3{0, 1, 0})
	cam.Focus = eye.Sub(at).Len()

	// checkered floor
	checker := addCheckerTexture(sc, 256, 32, geom.Vec3{0.8, 0.8, 0.8}, geom.Vec3{0.4, 0.4, 0.4})
	floorMat := sc.AddMaterial()
	sc.Materials[floorMat].Color = geom.Vec3{1, 1, 1}
	sc.Materials[floorMat].ColorTex = checker
	addInstance(sc, addFloor(sc, 20, 10), floorMat, geom.IdentityFrame())

	// one material per sphere, left to right
	matte := sc.AddMaterial()
	sc.Materials[matte].Color = geom.Vec3{0.65, 0.25, 0.2}

	plastic := sc.AddMaterial()
	sc.Materials[plastic].Color = geom.Vec3{0.1, 0.2, 0.5}
	sc.Materials[plastic].Specular = 1
	sc.Materials[plastic].Roughness = 0.2

	roughMetal := sc.AddMaterial()
	sc.Materials[roughMetal].Color = geom.Vec3{0.8, 0.6, 0.2}
	sc.Materials[roughMetal].Metallic = 1
	sc.Materials[roughMetal].Roughness = 0.3

	polishedMetal := sc.AddMaterial()
	sc.Materials[polishedMetal].Color = geom.Vec3{0.8, 0.8, 0.8}
	sc.Materials[polishedMetal].Metallic = 1

	glass := sc.AddMaterial()
	sc.Materials[glass].Color = geom.Vec3{1, 1, 1}
	sc.Materials[glass].Transmission = 1
	sc.Materials[glass].Thin = false

	thinGlass := sc.AddMaterial()
	sc.Materials[thinGlass].Color = geom.Vec3{1, 1, 1}
	sc.Materials[thinGlass].Transmission = 1

	row := []int{matte, plastic, roughMetal, polishedMetal, glass, thinGlass}
	sphere := addUVSphere(sc, geom.Vec3{}, 0.25, 32)
	for i, mat := range row {
		x := 0.55 * (float32(i) - float32(len(row)-1)/2)
		addInstance(sc, sphere, mat, geom.Translation(geom.Vec3{x, 0.25, 0}))
	}

	// overhead area light plus a dim uniform environment
	lightMat := sc.AddMaterial()
	sc.Materials[lightMat].Emission = geom.Vec3{10, 10, 8}
	lamp := addQuad(sc, geom.Vec3{-1, 3, -1}, geom.Vec3{2, 0, 0}, geom.Vec3{0, 0, 2})
	addInstance(sc, lamp, lightMat, geom.IdentityFrame())

	env := sc.Environments[sc.AddEnvironment()]
	env.Emission = geom.Vec3{0.25, 0.25, 0.25}

	return sc
}
