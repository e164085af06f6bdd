package scene

import (
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// NewEnvironmentScene builds three spheres on a plain floor lit only by
// a gradient sky environment map.
func NewEnvironmentScene() *trace.Scene {
	sc := trace.NewScene()

	cam := sc.Cameras[sc.AddCamera()]
	eye, at := geom.Vec3{0, 0.9, 3.6}, geom.Vec3{0, 0.35, 0}
	cam.Frame = geom.LookAt(eye, at, geom.Vec3{0, 1, 0})
	cam.Focus = eye.Sub(at).Len()

	floorMat := sc.AddMaterial()
	sc.Materials[floorMat].Color = geom.Vec3{0.5, 0.5, 0.5}
	addInstance(sc, addFloor(sc, 20, 1), floorMat, geom.IdentityFrame())

	mirror := sc.AddMaterial()
	sc.Materials[mirror].Color = geom.Vec3{0.9, 0.9, 0.9}
	sc.Materials[mirror].Metallic = 1

	glass := sc.AddMaterial()
	sc.Materials[glass].Color = geom.Vec3{1, 1, 1}
	sc.Materials[glass].Transmission = 1
	sc.Materials[glass].Thin = false

	matte := sc.AddMaterial()
	sc.Materials[matte].Color = geom.Vec3{0.725, 0.71, 0.68}

	sphere := addUVSphere(sc, geom.Vec3{}, 0.35, 32)
	addInstance(sc, sphere, mirror, geom.Translation(geom.Vec3{-0.85, 0.35, 0}))
	addInstance(sc, sphere, glass, geom.Translation(geom.Vec3{0, 0.35, 0}))
	addInstance(sc, sphere, matte, geom.Translation(geom.Vec3{0.85, 0.35, 0}))

	// bright sky overhead fading to a warm horizon, rotated so the
	// seam of the equirectangular wrap stays behind the camera
	sky := addSkyTexture(sc, 512, 256, geom.Vec3{0.6, 0.8, 1.2}, geom.Vec3{1, 0.95, 0.85})
	env := sc.Environments[sc.AddEnvironment()]
	env.Emission = geom.Vec3{1, 1, 1}
	env.EmissionTex = sky
	env.Frame = geom.RotationY(0.8)

	return sc
}
