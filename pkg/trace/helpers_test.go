package trace

import "github.com/ChiaraGiaca/cg-projects/pkg/geom"

// newTestScene returns a scene with one default camera at the origin
// looking down -z.
func newTestScene() *Scene {
	sc := NewScene()
	sc.AddCamera()
	return sc
}

// addTestQuad adds a two-triangle quad spanning [-1,1] on x and y at
// the given z, facing +z, with a fresh default material. Callers must
// run InitBVH before intersecting.
func addTestQuad(sc *Scene, z float32) *Material {
	si := sc.AddShape()
	shape := sc.Shapes[si]
	shape.Positions = []geom.Vec3{{-1, -1, z}, {1, -1, z}, {1, 1, z}, {-1, 1, z}}
	shape.Triangles = [][3]int{{0, 1, 2}, {0, 2, 3}}

	mi := sc.AddMaterial()
	ii := sc.AddInstance()
	sc.Instances[ii].Shape = si
	sc.Instances[ii].Material = mi
	return sc.Materials[mi]
}
