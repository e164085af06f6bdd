package geom

import "github.com/chewxy/math32"

// Ray epsilon keeps secondary rays from self-intersecting their origin.
const RayEps = 1e-4

// Ray is a semi-infinite line with a valid parametric interval.
type Ray struct {
	O    Vec3
	D    Vec3
	TMin float32
	TMax float32
}

// Build a ray with the default interval.
func NewRay(o, d Vec3) Ray {
	return Ray{O: o, D: d, TMin: RayEps, TMax: math32.MaxFloat32}
}

// Point along the ray at parameter t.
func (r Ray) At(t float32) Vec3 {
	return r.O.Add(r.D.Mul(t))
}
