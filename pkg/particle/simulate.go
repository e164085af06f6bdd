package particle

import (
	"context"
	"fmt"

	"github.com/ChiaraGiaca/cg-projects/log"
	"github.com/ChiaraGiaca/cg-projects/pkg/bvh"
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/sampling"
)

var logger = log.New("particle")

// ProgressFunc reports progress of a long-running operation.
type ProgressFunc func(message string, current, total int)

// Resolved collision vertices are pushed this far off the surface.
const collisionOffset = 0.005

// InitSimulation restores every shape to its rest state, seeds the
// emission velocities, rebuilds the springs from the mesh edges and
// builds the collider hierarchies. Call it before the first frame and
// again to restart a simulation.
func (sc *Scene) InitSimulation(params Params) {
	rng := sampling.NewRNG(params.Seed, 1)
	for _, sh := range sc.Shapes {
		sh.resetToInitial()
		sh.Forces = make([]geom.Vec3, len(sh.Positions))
		sh.OldPositions = append(sh.OldPositions[:0], sh.Positions...)

		for _, vertex := range sh.InitPinned {
			sh.InvMass[vertex] = 0
		}

		for i := range sh.Velocities {
			jitter := sampling.SampleSphere(rng.Float2()).Mul(sh.EmitRNGScale * rng.Float())
			sh.Velocities[i] = sh.Velocities[i].Add(sh.EmitVelocity).Add(jitter)
		}

		sh.Springs = sh.Springs[:0]
		if sh.SpringCoeff > 0 {
			sh.initSprings()
		}
	}

	for _, col := range sc.Colliders {
		initColliderBVH(col)
	}
}

// initSprings generates one spring per unique mesh edge, plus both
// diagonals of every quad, with the current vertex distance as the rest
// length.
func (sh *Shape) initSprings() {
	spring := func(v0, v1 int) Spring {
		return Spring{
			Vert0: v0,
			Vert1: v1,
			Rest:  sh.Positions[v0].Sub(sh.Positions[v1]).Len(),
			Coeff: sh.SpringCoeff,
		}
	}
	switch {
	case len(sh.Quads) > 0:
		for _, edge := range quadEdges(sh.Quads) {
			sh.Springs = append(sh.Springs, spring(edge[0], edge[1]))
		}
		for _, q := range sh.Quads {
			sh.Springs = append(sh.Springs, spring(q[0], q[2]), spring(q[3], q[1]))
		}
	case len(sh.Triangles) > 0:
		for _, edge := range triangleEdges(sh.Triangles) {
			sh.Springs = append(sh.Springs, spring(edge[0], edge[1]))
		}
	}
}

// quadEdges returns the unique undirected edges of a quad mesh in
// first-seen order, each with the smaller vertex index first.
func quadEdges(quads [][4]int) [][2]int {
	edges := make([][2]int, 0, 4*len(quads))
	seen := make(map[[2]int]bool, 4*len(quads))
	for _, q := range quads {
		for _, e := range [4][2]int{{q[0], q[1]}, {q[1], q[2]}, {q[2], q[3]}, {q[3], q[0]}} {
			if e[0] > e[1] {
				e[0], e[1] = e[1], e[0]
			}
			if e[0] == e[1] || seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	return edges
}

// triangleEdges returns the unique undirected edges of a triangle mesh
// in first-seen order, each with the smaller vertex index first.
func triangleEdges(triangles [][3]int) [][2]int {
	edges := make([][2]int, 0, 3*len(triangles))
	seen := make(map[[2]int]bool, 3*len(triangles))
	for _, t := range triangles {
		for _, e := range [3][2]int{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}} {
			if e[0] > e[1] {
				e[0], e[1] = e[1], e[0]
			}
			if e[0] == e[1] || seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	return edges
}

func initColliderBVH(col *Collider) {
	var boxes []geom.BBox
	switch {
	case len(col.Quads) > 0:
		boxes = make([]geom.BBox, len(col.Quads))
		for idx, q := range col.Quads {
			boxes[idx] = geom.QuadBounds(
				col.Positions[q[0]], col.Positions[q[1]],
				col.Positions[q[2]], col.Positions[q[3]])
		}
	case len(col.Triangles) > 0:
		boxes = make([]geom.BBox, len(col.Triangles))
		for idx, t := range col.Triangles {
			boxes[idx] = geom.TriangleBounds(
				col.Positions[t[0]], col.Positions[t[1]], col.Positions[t[2]])
		}
	}
	col.BVH = bvh.Build(boxes)
}

// intersectCollider traverses the collider hierarchy for the closest
// hit in local mesh coordinates.
func intersectCollider(col *Collider, ray geom.Ray) (int, geom.Vec2, bool) {
	if col.BVH == nil {
		return 0, geom.Vec2{}, false
	}
	var (
		element int
		uv      geom.Vec2
		found   bool
	)
	col.BVH.IntersectLeaves(&ray, false, func(prim int) bool {
		var (
			puv geom.Vec2
			t   float32
			ok  bool
		)
		switch {
		case len(col.Quads) > 0:
			q := col.Quads[prim]
			puv, t, ok = geom.IntersectQuad(ray,
				col.Positions[q[0]], col.Positions[q[1]],
				col.Positions[q[2]], col.Positions[q[3]])
		case len(col.Triangles) > 0:
			tr := col.Triangles[prim]
			puv, t, ok = geom.IntersectTriangle(ray,
				col.Positions[tr[0]], col.Positions[tr[1]], col.Positions[tr[2]])
		}
		if !ok {
			return false
		}
		element, uv, found = prim, puv, true
		ray.TMax = t
		return true
	})
	return element, uv, found
}

// collideCollider tests whether position sits inside the collider by
// casting a vertical ray and checking which side of the surface it
// hits. On an inside verdict the returned point and normal describe the
// surface to resolve against.
func collideCollider(col *Collider, position geom.Vec3) (geom.Vec3, geom.Vec3, bool) {
	ray := geom.NewRay(position, geom.Vec3{0, 1, 0})
	element, uv, ok := intersectCollider(col, ray)
	if !ok {
		return geom.Vec3{}, geom.Vec3{}, false
	}

	var hitPosition, hitNormal geom.Vec3
	switch {
	case len(col.Quads) > 0:
		q := col.Quads[element]
		hitPosition = geom.InterpolateQuad(
			col.Positions[q[0]], col.Positions[q[1]],
			col.Positions[q[2]], col.Positions[q[3]], uv)
		hitNormal = geom.InterpolateQuad(
			col.Normals[q[0]], col.Normals[q[1]],
			col.Normals[q[2]], col.Normals[q[3]], uv).Normalize()
	case len(col.Triangles) > 0:
		t := col.Triangles[element]
		hitPosition = geom.InterpolateTriangle(
			col.Positions[t[0]], col.Positions[t[1]], col.Positions[t[2]], uv)
		hitNormal = geom.InterpolateTriangle(
			col.Normals[t[0]], col.Normals[t[1]], col.Normals[t[2]], uv).Normalize()
	}
	return hitPosition, hitNormal, hitNormal.Dot(ray.D) > 0
}

// acceleration is the uniform driving acceleration for this run.
func acceleration(params Params) geom.Vec3 {
	if params.Wind != (geom.Vec3{}) {
		return params.Wind
	}
	return geom.Vec3{0, -params.Gravity, 0}
}

// simulateMassSpring advances one frame by integrating gravity and
// spring forces with sub-stepped semi-implicit Euler, then resolves
// collisions and filters velocities.
func simulateMassSpring(sc *Scene, params Params) {
	for _, sh := range sc.Shapes {
		sh.OldPositions = append(sh.OldPositions[:0], sh.Positions...)
	}

	accel := acceleration(params)
	ddt := params.DeltaT / float32(params.Substeps)
	for s := 0; s < params.Substeps; s++ {
		for _, sh := range sc.Shapes {
			for i := range sh.Forces {
				if sh.InvMass[i] == 0 {
					sh.Forces[i] = geom.Vec3{}
					continue
				}
				sh.Forces[i] = accel.Mul(1 / sh.InvMass[i])
			}
			for _, spring := range sh.Springs {
				invMass := sh.InvMass[spring.Vert0] + sh.InvMass[spring.Vert1]
				if invMass == 0 {
					continue
				}
				delta := sh.Positions[spring.Vert1].Sub(sh.Positions[spring.Vert0])
				dist := delta.Len()
				dir := delta.Normalize()

				force := dir.Mul((dist/spring.Rest - 1) / (spring.Coeff * invMass))
				// damp the relative velocity along the spring
				deltaVel := sh.Velocities[spring.Vert1].Sub(sh.Velocities[spring.Vert0])
				force = force.Add(dir.Mul(deltaVel.Dot(dir) / spring.Rest / (spring.Coeff * 1000 * invMass)))

				sh.Forces[spring.Vert0] = sh.Forces[spring.Vert0].Add(force)
				sh.Forces[spring.Vert1] = sh.Forces[spring.Vert1].Sub(force)
			}
		}

		for _, sh := range sc.Shapes {
			for i := range sh.Positions {
				if sh.InvMass[i] == 0 {
					continue
				}
				sh.Velocities[i] = sh.Velocities[i].Add(sh.Forces[i].Mul(ddt * sh.InvMass[i]))
				sh.Positions[i] = sh.Positions[i].Add(sh.Velocities[i].Mul(ddt))
			}
		}
	}

	for _, sh := range sc.Shapes {
		for i := range sh.Positions {
			if sh.InvMass[i] == 0 {
				continue
			}
			for _, col := range sc.Colliders {
				hitPosition, hitNormal, inside := collideCollider(col, sh.Positions[i])
				if !inside {
					continue
				}
				sh.Positions[i] = hitPosition.Add(hitNormal.Mul(collisionOffset))
				projection := sh.Velocities[i].Dot(hitNormal)
				sh.Velocities[i] = sh.Velocities[i].Sub(hitNormal.Mul(projection)).Mul(1 - params.Bounce[0]).
					Sub(hitNormal.Mul(projection * (1 - params.Bounce[1])))
			}
		}
	}

	filterVelocities(sc, params)
	recomputeNormals(sc)
}

// collision records one vertex found inside a collider during the
// position-based predict step.
type collision struct {
	vert     int
	position geom.Vec3
	normal   geom.Vec3
}

// simulatePBD advances one frame with the position-based scheme:
// predict positions under the driving acceleration, gather collisions,
// relax spring and collision constraints, then derive velocities from
// the positional change.
func simulatePBD(sc *Scene, params Params) {
	accel := acceleration(params)
	for _, sh := range sc.Shapes {
		sh.OldPositions = append(sh.OldPositions[:0], sh.Positions...)

		for i := range sh.Positions {
			if sh.InvMass[i] == 0 {
				continue
			}
			sh.Velocities[i] = sh.Velocities[i].Add(accel.Mul(params.DeltaT))
			sh.Positions[i] = sh.Positions[i].Add(sh.Velocities[i].Mul(params.DeltaT))
		}

		var collisions []collision
		for i := range sh.Positions {
			if sh.InvMass[i] == 0 {
				continue
			}
			for _, col := range sc.Colliders {
				hitPosition, hitNormal, inside := collideCollider(col, sh.Positions[i])
				if !inside {
					continue
				}
				collisions = append(collisions, collision{vert: i, position: hitPosition, normal: hitNormal})
			}
		}

		for it := 0; it < params.Iterations; it++ {
			for _, spring := range sh.Springs {
				invMass := sh.InvMass[spring.Vert0] + sh.InvMass[spring.Vert1]
				if invMass == 0 {
					continue
				}
				dir := sh.Positions[spring.Vert1].Sub(sh.Positions[spring.Vert0])
				dist := dir.Len()
				dir = dir.Mul(1 / dist)
				lambda := (1 - spring.Coeff) * (dist - spring.Rest) / invMass
				sh.Positions[spring.Vert0] = sh.Positions[spring.Vert0].Add(dir.Mul(sh.InvMass[spring.Vert0] * lambda))
				sh.Positions[spring.Vert1] = sh.Positions[spring.Vert1].Sub(dir.Mul(sh.InvMass[spring.Vert1] * lambda))
			}
			for _, c := range collisions {
				if sh.InvMass[c.vert] == 0 {
					continue
				}
				projection := sh.Positions[c.vert].Sub(c.position).Dot(c.normal)
				if projection >= 0 {
					continue
				}
				sh.Positions[c.vert] = sh.Positions[c.vert].Sub(c.normal.Mul(projection))
			}
		}

		for i := range sh.Velocities {
			if sh.InvMass[i] == 0 {
				continue
			}
			sh.Velocities[i] = sh.Positions[i].Sub(sh.OldPositions[i]).Mul(1 / params.DeltaT)
		}
	}

	filterVelocities(sc, params)
	recomputeNormals(sc)
}

// filterVelocities applies damping and puts slow vertices to sleep.
func filterVelocities(sc *Scene, params Params) {
	for _, sh := range sc.Shapes {
		for i := range sh.Velocities {
			if sh.InvMass[i] == 0 {
				continue
			}
			sh.Velocities[i] = sh.Velocities[i].Mul(1 - params.Damping*params.DeltaT)
			if sh.Velocities[i].Len() < params.MinVelocity {
				sh.Velocities[i] = geom.Vec3{}
			}
		}
	}
}

// recomputeNormals refreshes the vertex normals of every mesh shape
// from its deformed positions. The unnormalized cross products carry
// the face area, so larger faces weigh more.
func recomputeNormals(sc *Scene) {
	for _, sh := range sc.Shapes {
		switch {
		case len(sh.Quads) > 0:
			for i := range sh.Normals {
				sh.Normals[i] = geom.Vec3{}
			}
			for _, q := range sh.Quads {
				p0, p1, p2, p3 := sh.Positions[q[0]], sh.Positions[q[1]], sh.Positions[q[2]], sh.Positions[q[3]]
				n := p1.Sub(p0).Cross(p3.Sub(p0)).Add(p3.Sub(p2).Cross(p1.Sub(p2)))
				for _, v := range q {
					sh.Normals[v] = sh.Normals[v].Add(n)
				}
			}
			for i := range sh.Normals {
				sh.Normals[i] = sh.Normals[i].Normalize()
			}
		case len(sh.Triangles) > 0:
			for i := range sh.Normals {
				sh.Normals[i] = geom.Vec3{}
			}
			for _, t := range sh.Triangles {
				n := sh.Positions[t[1]].Sub(sh.Positions[t[0]]).Cross(sh.Positions[t[2]].Sub(sh.Positions[t[0]]))
				for _, v := range t {
					sh.Normals[v] = sh.Normals[v].Add(n)
				}
			}
			for i := range sh.Normals {
				sh.Normals[i] = sh.Normals[i].Normalize()
			}
		}
	}
}

type solverFunc func(sc *Scene, params Params)

func solverByName(solver Solver) (solverFunc, error) {
	switch solver {
	case SolverMassSpring:
		return simulateMassSpring, nil
	case SolverPositionBased:
		return simulatePBD, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownSolver, string(solver))
	}
}

// SimulateFrame advances the scene by one frame with the configured
// solver.
func (sc *Scene) SimulateFrame(params Params) error {
	solver, err := solverByName(params.Solver)
	if err != nil {
		return err
	}
	solver(sc, params)
	return nil
}

// SimulateFrames initializes the scene and advances it by
// Params.Frames frames. The optional progress callback fires before
// every step and once at the end.
func (sc *Scene) SimulateFrames(ctx context.Context, params Params, progress ProgressFunc) error {
	solver, err := solverByName(params.Solver)
	if err != nil {
		return err
	}
	logger.Debugf("simulating %q solver, %d frames, %d shapes", params.Solver, params.Frames, len(sc.Shapes))

	total := 1 + params.Frames
	current := 0
	if progress != nil {
		progress("init simulation", current, total)
	}
	current++
	sc.InitSimulation(params)

	for frame := 0; frame < params.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if progress != nil {
			progress("simulate frame", current, total)
		}
		current++
		solver(sc, params)
	}
	if progress != nil {
		progress("simulate frame", current, total)
	}
	return nil
}
