package scene

import (
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/particle"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// NewSimulationScene builds a renderable snapshot of a particle
// simulation in its current pose: cloth as a matte mesh, particles as
// shiny points and colliders in neutral grey, under the standard
// overhead light.
func NewSimulationScene(sim *particle.Scene) *trace.Scene {
	sc := trace.NewScene()

	cam := sc.Cameras[sc.AddCamera()]
	eye, at := geom.Vec3{1.6, 1.2, 2.8}, geom.Vec3{0, 0.3, 0}
	cam.Frame = geom.LookAt(eye, at, geom.Vec3{0, 1, 0})
	cam.Focus = eye.Sub(at).Len()

	clothMat := sc.AddMaterial()
	sc.Materials[clothMat].Color = geom.Vec3{0.72, 0.25, 0.2}

	pointMat := sc.AddMaterial()
	sc.Materials[pointMat].Color = geom.Vec3{0.2, 0.45, 0.7}
	sc.Materials[pointMat].Specular = 1
	sc.Materials[pointMat].Roughness = 0.2

	colliderMat := sc.AddMaterial()
	sc.Materials[colliderMat].Color = geom.Vec3{0.7, 0.7, 0.7}

	for _, shape := range sim.Shapes {
		idx := sc.AddShape()
		mesh := sc.Shapes[idx]
		mesh.Positions = append([]geom.Vec3(nil), shape.Positions...)
		mesh.Normals = append([]geom.Vec3(nil), shape.Normals...)

		mat := clothMat
		if len(shape.Points) > 0 {
			mesh.Points = append([]int(nil), shape.Points...)
			mesh.Radius = append([]float32(nil), shape.Radius...)
			mat = pointMat
		} else {
			mesh.Triangles = elementTriangles(shape.Quads, shape.Triangles)
		}
		addInstance(sc, idx, mat, geom.IdentityFrame())
	}

	for _, col := range sim.Colliders {
		idx := sc.AddShape()
		mesh := sc.Shapes[idx]
		mesh.Positions = append([]geom.Vec3(nil), col.Positions...)
		mesh.Normals = append([]geom.Vec3(nil), col.Normals...)
		mesh.Triangles = elementTriangles(col.Quads, col.Triangles)
		addInstance(sc, idx, colliderMat, geom.IdentityFrame())
	}

	lightMat := sc.AddMaterial()
	sc.Materials[lightMat].Emission = geom.Vec3{10, 10, 8}
	lamp := addQuad(sc, geom.Vec3{-1, 3, -1}, geom.Vec3{2, 0, 0}, geom.Vec3{0, 0, 2})
	addInstance(sc, lamp, lightMat, geom.IdentityFrame())

	env := sc.Environments[sc.AddEnvironment()]
	env.Emission = geom.Vec3{0.25, 0.25, 0.25}

	return sc
}

// elementTriangles flattens quads into triangle pairs and appends the
// native triangles, keeping the winding of the source faces.
func elementTriangles(quads [][4]int, triangles [][3]int) [][3]int {
	out := make([][3]int, 0, 2*len(quads)+len(triangles))
	for _, q := range quads {
		out = append(out, [3]int{q[0], q[1], q[3]}, [3]int{q[2], q[3], q[1]})
	}
	out = append(out, triangles...)
	return out
}
