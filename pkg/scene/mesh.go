package scene

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
	"github.com/ChiaraGiaca/cg-projects/pkg/sampling"
	"github.com/ChiaraGiaca/cg-projects/pkg/trace"
)

// Seed for the surface scatter rngs, shared so presets stay stable
// from run to run.
const scatterSeed = 19873991

// addQuad appends a quad shape spanned by two edge vectors from a
// corner, split into two triangles. The normal follows u cross v.
func addQuad(sc *trace.Scene, corner, u, v geom.Vec3) int {
	idx := sc.AddShape()
	shape := sc.Shapes[idx]

	normal := u.Cross(v).Normalize()
	shape.Positions = []geom.Vec3{
		corner,
		corner.Add(u),
		corner.Add(u).Add(v),
		corner.Add(v),
	}
	shape.Normals = []geom.Vec3{normal, normal, normal, normal}
	shape.Texcoords = []geom.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	shape.Triangles = [][3]int{{0, 1, 2}, {0, 2, 3}}
	return idx
}

// addFloor appends a horizontal quad at y=0 centered on the origin,
// facing up, with texture coordinates repeated uvScale times.
func addFloor(sc *trace.Scene, size, uvScale float32) int {
	idx := addQuad(sc,
		geom.Vec3{-size / 2, 0, size / 2},
		geom.Vec3{size, 0, 0},
		geom.Vec3{0, 0, -size},
	)
	shape := sc.Shapes[idx]
	for i := range shape.Texcoords {
		shape.Texcoords[i] = shape.Texcoords[i].Mul(uvScale)
	}
	return idx
}

// addUVSphere appends a latitude/longitude sphere with steps rings and
// twice as many slices. Texture coordinates wrap the equirectangular
// parameterization, so environment-style textures map cleanly.
func addUVSphere(sc *trace.Scene, center geom.Vec3, radius float32, steps int) int {
	idx := sc.AddShape()
	shape := sc.Shapes[idx]

	slices, rings := 2*steps, steps
	for j := 0; j <= rings; j++ {
		v := float32(j) / float32(rings)
		theta := math32.Pi * v
		for i := 0; i <= slices; i++ {
			u := float32(i) / float32(slices)
			phi := 2 * math32.Pi * u
			normal := geom.Vec3{
				math32.Cos(phi) * math32.Sin(theta),
				math32.Sin(phi) * math32.Sin(theta),
				math32.Cos(theta),
			}
			shape.Positions = append(shape.Positions, center.Add(normal.Mul(radius)))
			shape.Normals = append(shape.Normals, normal)
			shape.Texcoords = append(shape.Texcoords, geom.Vec2{u, v})
		}
	}

	for j := 0; j < rings; j++ {
		for i := 0; i < slices; i++ {
			a := j*(slices+1) + i
			b := a + 1
			c := b + slices + 1
			d := a + slices + 1
			// skip the degenerate triangles at the poles
			if j > 0 {
				shape.Triangles = append(shape.Triangles, [3]int{a, c, b})
			}
			if j < rings-1 {
				shape.Triangles = append(shape.Triangles, [3]int{a, d, c})
			}
		}
	}
	return idx
}

// addHair appends a line shape of num strands grown from the surface of
// the base shape. Strands start at area-weighted sample points, follow
// the surface normal and pick up a little random drift and sag per
// segment, in the manner of procedural fur generators.
func addHair(sc *trace.Scene, base, num, steps int, length, radius float32) int {
	const drift = 0.005
	const sag = 0.015

	bs := sc.Shapes[base]
	cdf := make([]float32, len(bs.Triangles))
	total := float32(0)
	for k, tri := range bs.Triangles {
		p0, p1, p2 := bs.Positions[tri[0]], bs.Positions[tri[1]], bs.Positions[tri[2]]
		total += p1.Sub(p0).Cross(p2.Sub(p0)).Len() / 2
		cdf[k] = total
	}

	idx := sc.AddShape()
	hair := sc.Shapes[idx]
	rng := sampling.NewRNG(scatterSeed, 1)
	step := length / float32(steps)

	for n := 0; n < num; n++ {
		r := rng.Float() * total
		elem := sort.Search(len(cdf), func(k int) bool { return cdf[k] >= r })
		if elem == len(cdf) {
			elem = len(cdf) - 1
		}
		tri := bs.Triangles[elem]

		// warp the unit square onto the triangle
		ruv := rng.Float2()
		rt := math32.Sqrt(ruv[0])
		uv := geom.Vec2{1 - rt, ruv[1] * rt}

		pos := geom.InterpolateTriangle(bs.Positions[tri[0]], bs.Positions[tri[1]], bs.Positions[tri[2]], uv)
		dir := geom.InterpolateTriangle(bs.Normals[tri[0]], bs.Normals[tri[1]], bs.Normals[tri[2]], uv).Normalize()

		offset := len(hair.Positions)
		hair.Positions = append(hair.Positions, pos)
		hair.Radius = append(hair.Radius, radius)
		hair.Texcoords = append(hair.Texcoords, geom.Vec2{0, 0})

		for seg := 0; seg < steps; seg++ {
			next := pos.Add(dir.Mul(step)).Add(sampling.SampleSphere(rng.Float2()).Mul(drift))
			next[1] -= sag * step
			dir = next.Sub(pos).Normalize()

			hair.Positions = append(hair.Positions, next)
			hair.Radius = append(hair.Radius, radius)
			hair.Texcoords = append(hair.Texcoords, geom.Vec2{float32(seg+1) / float32(steps), 0})
			hair.Lines = append(hair.Lines, [2]int{offset + seg, offset + seg + 1})
			pos = next
		}
	}
	return idx
}

// addPoints appends a point cloud scattered uniformly inside a sphere
// of the given spread around center.
func addPoints(sc *trace.Scene, center geom.Vec3, spread, radius float32, num int) int {
	idx := sc.AddShape()
	shape := sc.Shapes[idx]

	rng := sampling.NewRNG(scatterSeed, 2)
	for n := 0; n < num; n++ {
		dir := sampling.SampleSphere(rng.Float2())
		dist := spread * math32.Cbrt(rng.Float())
		shape.Points = append(shape.Points, n)
		shape.Positions = append(shape.Positions, center.Add(dir.Mul(dist)))
		shape.Radius = append(shape.Radius, radius)
	}
	return idx
}

// addInstance wires a shape and a material into a new instance.
func addInstance(sc *trace.Scene, shape, material int, frame geom.Frame) int {
	idx := sc.AddInstance()
	inst := sc.Instances[idx]
	inst.Shape = shape
	inst.Material = material
	inst.Frame = frame
	return idx
}
