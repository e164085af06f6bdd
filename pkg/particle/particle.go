// Package particle implements a small deformable-body simulator over
// scenes of particle and cloth shapes with static mesh colliders.
// Shapes keep the rest state they were built with, so a scene can be
// reset and re-simulated from scratch; colliders are triangle or quad
// meshes queried through a bounding volume hierarchy.
package particle

import (
	"errors"

	"github.com/ChiaraGiaca/cg-projects/pkg/bvh"
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

// Configuration errors surfaced before any simulation work starts.
var (
	ErrUnknownSolver = errors.New("particle: unknown solver")
	ErrUnknownPreset = errors.New("particle: unknown preset")
)

// Solver selects the integration scheme run for each frame.
type Solver string

// Selectable solvers. Mass-spring integrates explicit forces over many
// substeps, position-based predicts positions and relaxes constraints.
const (
	SolverMassSpring    Solver = "mass-spring"
	SolverPositionBased Solver = "position-based"
)

// SolverNames lists the selectable solver names for CLIs and services.
func SolverNames() []string {
	return []string{string(SolverMassSpring), string(SolverPositionBased)}
}

// Params configures a simulation run.
type Params struct {
	Solver Solver
	Frames int

	// Substeps divides each frame for the mass-spring integrator;
	// Iterations is the constraint relaxation count of the
	// position-based solver.
	Substeps   int
	Iterations int

	DeltaT  float32
	Gravity float32

	// Wind, when non-zero, replaces gravity as the driving
	// acceleration.
	Wind geom.Vec3

	Damping     float32
	MinVelocity float32

	// Bounce controls the collision response: the first component
	// scales down the tangential velocity, the second the reflected
	// normal velocity. {0, 0} reflects perfectly, {0, 1} kills the
	// normal component.
	Bounce geom.Vec2

	Seed uint64
}

// DefaultParams returns the simulator defaults.
func DefaultParams() Params {
	return Params{
		Solver:      SolverMassSpring,
		Frames:      120,
		Substeps:    200,
		Iterations:  100,
		DeltaT:      1.0 / 60,
		Gravity:     9.81,
		Damping:     2,
		MinVelocity: 0.01,
		Bounce:      geom.Vec2{0.05, 1},
		Seed:        987121,
	}
}

// Spring connects two vertices of a shape. Coeff is an inverse
// stiffness in (0, 1]: smaller values make a stiffer spring.
type Spring struct {
	Vert0 int
	Vert1 int
	Rest  float32
	Coeff float32
}

// Shape is a deformable body, either free particles (points) or cloth
// (quads or triangles tied together by springs). The Init arrays hold
// the rest state captured at construction; InitSimulation copies them
// into the working arrays.
type Shape struct {
	Points    []int
	Quads     [][4]int
	Triangles [][3]int

	Positions  []geom.Vec3
	Normals    []geom.Vec3
	Radius     []float32
	InvMass    []float32
	Velocities []geom.Vec3

	InitPositions  []geom.Vec3
	InitNormals    []geom.Vec3
	InitRadius     []float32
	InitInvMass    []float32
	InitVelocities []geom.Vec3
	InitPinned     []int

	EmitVelocity geom.Vec3
	EmitRNGScale float32
	SpringCoeff  float32

	Springs []Spring

	// Solver working storage, sized by InitSimulation. OldPositions
	// holds the positions at the start of the last simulated frame.
	Forces       []geom.Vec3
	OldPositions []geom.Vec3
}

// Collider is a static triangle or quad mesh that shapes collide
// against. Exactly one of the element arrays should be populated.
// InitSimulation builds the hierarchy.
type Collider struct {
	Quads     [][4]int
	Triangles [][3]int

	Positions []geom.Vec3
	Normals   []geom.Vec3
	Radius    []float32

	BVH *bvh.Tree
}

// Scene is the flat arena of shapes and colliders the simulator works
// on.
type Scene struct {
	Shapes    []*Shape
	Colliders []*Collider
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// AddParticles appends a free-particle shape and returns its index.
// Every particle carries an equal share of the total mass and gets its
// velocity jittered by randomVelocity on InitSimulation.
func (sc *Scene) AddParticles(points []int, positions []geom.Vec3, radius []float32, mass, randomVelocity float32) int {
	sh := &Shape{
		Points:         points,
		InitPositions:  positions,
		InitNormals:    make([]geom.Vec3, len(positions)),
		InitRadius:     radius,
		InitInvMass:    make([]float32, len(positions)),
		InitVelocities: make([]geom.Vec3, len(positions)),
		EmitRNGScale:   randomVelocity,
	}
	for i := range positions {
		sh.InitNormals[i] = geom.Vec3{0, 0, 1}
		sh.InitInvMass[i] = 1 / (mass * float32(len(positions)))
	}
	sh.resetToInitial()
	sc.Shapes = append(sc.Shapes, sh)
	return len(sc.Shapes) - 1
}

// AddCloth appends a cloth shape built from a quad mesh and returns its
// index. Pinned lists vertex indices that stay fixed; coeff is the
// stiffness handed to every spring generated from the mesh edges.
func (sc *Scene) AddCloth(quads [][4]int, positions, normals []geom.Vec3, radius []float32, mass, coeff float32, pinned []int) int {
	sh := &Shape{
		Quads:          quads,
		InitPositions:  positions,
		InitNormals:    normals,
		InitRadius:     radius,
		InitInvMass:    make([]float32, len(positions)),
		InitVelocities: make([]geom.Vec3, len(positions)),
		InitPinned:     pinned,
		SpringCoeff:    coeff,
	}
	for i := range positions {
		sh.InitInvMass[i] = 1 / (mass * float32(len(positions)))
	}
	sh.resetToInitial()
	sc.Shapes = append(sc.Shapes, sh)
	return len(sc.Shapes) - 1
}

// AddCollider appends a static mesh collider and returns its index.
func (sc *Scene) AddCollider(triangles [][3]int, quads [][4]int, positions, normals []geom.Vec3, radius []float32) int {
	sc.Colliders = append(sc.Colliders, &Collider{
		Triangles: triangles,
		Quads:     quads,
		Positions: positions,
		Normals:   normals,
		Radius:    radius,
	})
	return len(sc.Colliders) - 1
}

// SetVelocities sets the emission velocity and its random jitter scale,
// both applied by InitSimulation.
func (sh *Shape) SetVelocities(velocity geom.Vec3, randomScale float32) {
	sh.EmitVelocity = velocity
	sh.EmitRNGScale = randomScale
}

// resetToInitial copies the rest state into the working arrays so a
// freshly built shape can be inspected or rendered before the first
// InitSimulation.
func (sh *Shape) resetToInitial() {
	sh.Positions = append(sh.Positions[:0], sh.InitPositions...)
	sh.Normals = append(sh.Normals[:0], sh.InitNormals...)
	sh.Radius = append(sh.Radius[:0], sh.InitRadius...)
	sh.InvMass = append(sh.InvMass[:0], sh.InitInvMass...)
	sh.Velocities = append(sh.Velocities[:0], sh.InitVelocities...)
}
