package scene

import (
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// NewShapesScene builds a lineup of every primitive kind: a textured
// triangle sphere, a fur ball made of line strands, a point cloud and
// a rotated quad in the back.
func NewShapesScene() *trace.Scene {
	sc := trace.NewScene()

	cam := sc.Cameras[sc.AddCamera()]
	eye, at := geom.Vec3{0, 1.4, 4.2}, geom.Vec3{0, 0.4, 0}
	cam.Frame = geom.LookAt(eye, at, geom.Vec3{0, 1, 0})
	cam.Focus = eye.Sub(at).Len()

	checker := addCheckerTexture(sc, 256, 32, geom.Vec3{0.8, 0.8, 0.8}, geom.Vec3{0.4, 0.4, 0.4})
	floorMat := sc.AddMaterial()
	sc.Materials[floorMat].Color = geom.Vec3{1, 1, 1}
	sc.Materials[floorMat].ColorTex = checker
	addInstance(sc, addFloor(sc, 20, 10), floorMat, geom.IdentityFrame())

	// textured sphere on the left
	sphereMat := sc.AddMaterial()
	sc.Materials[sphereMat].Color = geom.Vec3{1, 1, 1}
	sc.Materials[sphereMat].ColorTex = checker
	sphere := addUVSphere(sc, geom.Vec3{}, 0.4, 32)
	addInstance(sc, sphere, sphereMat, geom.Translation(geom.Vec3{-1.1, 0.4, 0}))

	// fur ball in the middle: a matte base sphere plus hair strands
	baseMat := sc.AddMaterial()
	sc.Materials[baseMat].Color = geom.Vec3{0.2, 0.15, 0.1}
	base := addUVSphere(sc, geom.Vec3{}, 0.4, 32)
	hairMat := sc.AddMaterial()
	sc.Materials[hairMat].Color = geom.Vec3{0.35, 0.2, 0.1}
	hair := addHair(sc, base, 8000, 4, 0.12, 0.004)
	furFrame := geom.Translation(geom.Vec3{0, 0.4, 0})
	addInstance(sc, base, baseMat, furFrame)
	addInstance(sc, hair, hairMat, furFrame)

	// point cloud on the right
	pointsMat := sc.AddMaterial()
	sc.Materials[pointsMat].Color = geom.Vec3{0.3, 0.5, 0.8}
	points := addPoints(sc, geom.Vec3{}, 0.35, 0.02, 600)
	addInstance(sc, points, pointsMat, geom.Translation(geom.Vec3{1.1, 0.45, 0}))

	// rotated backdrop quad showing texture orientation
	quadMat := sc.AddMaterial()
	sc.Materials[quadMat].Color = geom.Vec3{1, 1, 1}
	sc.Materials[quadMat].ColorTex = checker
	quad := addQuad(sc, geom.Vec3{-0.5, -0.5, 0}, geom.Vec3{1, 0, 0}, geom.Vec3{0, 1, 0})
	quadFrame := geom.RotationY(0.5)
	quadFrame.O = geom.Vec3{0, 0.55, -1.3}
	addInstance(sc, quad, quadMat, quadFrame)

	lightMat := sc.AddMaterial()
	sc.Materials[lightMat].Emission = geom.Vec3{10, 10, 8}
	lamp := addQuad(sc, geom.Vec3{-1, 3, -1}, geom.Vec3{2, 0, 0}, geom.Vec3{0, 0, 2})
	addInstance(sc, lamp, lightMat, geom.IdentityFrame())

	env := sc.Environments[sc.AddEnvironment()]
	env.Emission = geom.Vec3{0.25, 0.25, 0.25}

	return sc
}
