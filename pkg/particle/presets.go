package particle

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/sampling"
)

// Fixed seed for the fountain emitter layout.
const fountainSeed = 287133

const clothRadius = 0.005

// presets maps the selectable simulation scene names to builders.
var presets = map[string]func() *Scene{
	"cloth":    NewClothScene,
	"hanging":  NewHangingScene,
	"fountain": NewFountainScene,
}

// BuildPreset constructs one of the built-in simulation scenes.
func BuildPreset(name string) (*Scene, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	return build(), nil
}

// PresetNames lists the built-in simulation scenes.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewClothScene drops an unpinned cloth sheet onto a box sitting on
// the ground.
func NewClothScene() *Scene {
	sc := NewScene()
	quads, positions, normals, radius := makeClothGrid(32, 2, 1)
	sc.AddCloth(quads, positions, normals, radius, 1, 0.02, nil)

	floor := &colliderMesh{}
	floor.addQuad(geom.Vec3{-2, 0, 2}, geom.Vec3{4, 0, 0}, geom.Vec3{0, 0, -4})
	sc.AddCollider(nil, floor.quads, floor.positions, floor.normals, floor.radius)

	box := &colliderMesh{}
	box.addBox(geom.Vec3{0, 0.25, 0}, geom.Vec3{0.25, 0.25, 0.25})
	sc.AddCollider(nil, box.quads, box.positions, box.normals, box.radius)
	return sc
}

// NewHangingScene pins the four corners of a cloth sheet so it sags
// into a hammock above the ground.
func NewHangingScene() *Scene {
	sc := NewScene()
	steps := 24
	quads, positions, normals, radius := makeClothGrid(steps, 1.5, 1.5)
	corners := []int{0, steps, (steps + 1) * steps, (steps+1)*steps + steps}
	sc.AddCloth(quads, positions, normals, radius, 1, 0.02, corners)

	floor := &colliderMesh{}
	floor.addQuad(geom.Vec3{-2, 0, 2}, geom.Vec3{4, 0, 0}, geom.Vec3{0, 0, -4})
	sc.AddCollider(nil, floor.quads, floor.positions, floor.normals, floor.radius)
	return sc
}

// NewFountainScene shoots a burst of particles up over a pyramid
// deflector.
func NewFountainScene() *Scene {
	sc := NewScene()

	const num = 256
	rng := sampling.NewRNG(fountainSeed, 1)
	points := make([]int, num)
	positions := make([]geom.Vec3, num)
	radius := make([]float32, num)
	for i := 0; i < num; i++ {
		points[i] = i
		dir := sampling.SampleSphere(rng.Float2())
		dist := 0.1 * math32.Cbrt(rng.Float())
		positions[i] = geom.Vec3{0, 0.8, 0}.Add(dir.Mul(dist))
		radius[i] = 0.01
	}
	si := sc.AddParticles(points, positions, radius, 1, 0)
	sc.Shapes[si].SetVelocities(geom.Vec3{0, 2.5, 0}, 1)

	floor := &colliderMesh{}
	floor.addQuad(geom.Vec3{-2, 0, 2}, geom.Vec3{4, 0, 0}, geom.Vec3{0, 0, -4})
	sc.AddCollider(nil, floor.quads, floor.positions, floor.normals, floor.radius)

	pyramid := &colliderMesh{}
	pyramid.addPyramid(geom.Vec3{}, 0.4, 0.5)
	sc.AddCollider(pyramid.triangles, nil, pyramid.positions, pyramid.normals, pyramid.radius)
	return sc
}

// makeClothGrid builds a quad grid with (steps+1) vertices per side and
// the given side length, lying in the xz plane at the given height and
// centered on the y axis. Quads wind so the normals point up.
func makeClothGrid(steps int, size, height float32) (quads [][4]int, positions, normals []geom.Vec3, radius []float32) {
	for j := 0; j <= steps; j++ {
		for i := 0; i <= steps; i++ {
			u := float32(i) / float32(steps)
			v := float32(j) / float32(steps)
			positions = append(positions, geom.Vec3{(u - 0.5) * size, height, (v - 0.5) * size})
			normals = append(normals, geom.Vec3{0, 1, 0})
			radius = append(radius, clothRadius)
		}
	}
	for j := 0; j < steps; j++ {
		for i := 0; i < steps; i++ {
			v0 := j*(steps+1) + i
			quads = append(quads, [4]int{v0, v0 + steps + 1, v0 + steps + 2, v0 + 1})
		}
	}
	return
}

// colliderMesh accumulates collider geometry with per-face normals.
type colliderMesh struct {
	quads     [][4]int
	triangles [][3]int
	positions []geom.Vec3
	normals   []geom.Vec3
	radius    []float32
}

func (m *colliderMesh) addQuad(corner, u, v geom.Vec3) {
	base := len(m.positions)
	n := u.Cross(v).Normalize()
	m.positions = append(m.positions, corner, corner.Add(u), corner.Add(u).Add(v), corner.Add(v))
	m.normals = append(m.normals, n, n, n, n)
	m.radius = append(m.radius, 0, 0, 0, 0)
	m.quads = append(m.quads, [4]int{base, base + 1, base + 2, base + 3})
}

func (m *colliderMesh) addTriangle(p0, p1, p2 geom.Vec3) {
	base := len(m.positions)
	n := geom.TriangleNormal(p0, p1, p2)
	m.positions = append(m.positions, p0, p1, p2)
	m.normals = append(m.normals, n, n, n)
	m.radius = append(m.radius, 0, 0, 0)
	m.triangles = append(m.triangles, [3]int{base, base + 1, base + 2})
}

// addBox builds six outward-facing quads around center with the given
// half extents.
func (m *colliderMesh) addBox(center, half geom.Vec3) {
	hx, hy, hz := half[0], half[1], half[2]
	faces := [6][3]geom.Vec3{
		{{-hx, hy, hz}, {2 * hx, 0, 0}, {0, 0, -2 * hz}},
		{{-hx, -hy, -hz}, {2 * hx, 0, 0}, {0, 0, 2 * hz}},
		{{-hx, -hy, hz}, {2 * hx, 0, 0}, {0, 2 * hy, 0}},
		{{hx, -hy, -hz}, {-2 * hx, 0, 0}, {0, 2 * hy, 0}},
		{{hx, -hy, hz}, {0, 0, -2 * hz}, {0, 2 * hy, 0}},
		{{-hx, -hy, -hz}, {0, 0, 2 * hz}, {0, 2 * hy, 0}},
	}
	for _, f := range faces {
		m.addQuad(center.Add(f[0]), f[1], f[2])
	}
}

// addPyramid builds four triangular faces from a square base on the
// ground up to an apex above its center.
func (m *colliderMesh) addPyramid(center geom.Vec3, halfBase, height float32) {
	apex := center.Add(geom.Vec3{0, height, 0})
	b0 := center.Add(geom.Vec3{-halfBase, 0, -halfBase})
	b1 := center.Add(geom.Vec3{halfBase, 0, -halfBase})
	b2 := center.Add(geom.Vec3{halfBase, 0, halfBase})
	b3 := center.Add(geom.Vec3{-halfBase, 0, halfBase})
	m.addTriangle(b3, b2, apex)
	m.addTriangle(b2, b1, apex)
	m.addTriangle(b1, b0, apex)
	m.addTriangle(b0, b3, apex)
}
