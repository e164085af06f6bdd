package geom

import "github.com/chewxy/math32"

// Frame is a rigid transform stored as a rotation basis plus an origin.
type Frame struct {
	X, Y, Z, O Vec3
}

// The identity transform.
func IdentityFrame() Frame {
	return Frame{X: Vec3{1, 0, 0}, Y: Vec3{0, 1, 0}, Z: Vec3{0, 0, 1}, O: Vec3{0, 0, 0}}
}

// Build a frame at eye oriented towards center, with the z axis pointing
// away from the target.
func LookAt(eye, center, up Vec3) Frame {
	w := eye.Sub(center).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u).Normalize()
	return Frame{X: u, Y: v, Z: w, O: eye}
}

// Translation builds a frame that moves the origin to p.
func Translation(p Vec3) Frame {
	f := IdentityFrame()
	f.O = p
	return f
}

// RotationY builds a rotation about the y axis by angle radians.
func RotationY(angle float32) Frame {
	s, c := math32.Sincos(angle)
	return Frame{X: Vec3{c, 0, -s}, Y: Vec3{0, 1, 0}, Z: Vec3{s, 0, c}}
}

// Transform a point into the frame's space.
func (f Frame) TransformPoint(p Vec3) Vec3 {
	return f.X.Mul(p[0]).Add(f.Y.Mul(p[1])).Add(f.Z.Mul(p[2])).Add(f.O)
}

// Transform a vector, ignoring the origin.
func (f Frame) TransformVector(v Vec3) Vec3 {
	return f.X.Mul(v[0]).Add(f.Y.Mul(v[1])).Add(f.Z.Mul(v[2]))
}

// Transform a direction, renormalizing the result.
func (f Frame) TransformDirection(d Vec3) Vec3 {
	return f.TransformVector(d).Normalize()
}

// Transform a ray. Directions keep their length so parametric distances
// stay comparable across spaces.
func (f Frame) TransformRay(r Ray) Ray {
	return Ray{
		O:    f.TransformPoint(r.O),
		D:    f.TransformVector(r.D),
		TMin: r.TMin,
		TMax: r.TMax,
	}
}

// Invert a rigid frame by transposing the rotation.
func (f Frame) Inverse() Frame {
	inv := Frame{
		X: Vec3{f.X[0], f.Y[0], f.Z[0]},
		Y: Vec3{f.X[1], f.Y[1], f.Z[1]},
		Z: Vec3{f.X[2], f.Y[2], f.Z[2]},
	}
	inv.O = inv.TransformVector(f.O).Neg()
	return inv
}

// Compose two frames.
func (f Frame) Mul(g Frame) Frame {
	return Frame{
		X: f.TransformVector(g.X),
		Y: f.TransformVector(g.Y),
		Z: f.TransformVector(g.Z),
		O: f.TransformPoint(g.O),
	}
}

// Construct an orthonormal basis around the given z axis.
func BasisFromZ(v Vec3) Frame {
	z := v.Normalize()
	sign := math32.Copysign(1, z[2])
	a := -1 / (sign + z[2])
	b := z[0] * z[1] * a
	x := Vec3{1 + sign*z[0]*z[0]*a, sign * b, -sign * z[0]}
	y := Vec3{b, sign + z[1]*z[1]*a, -z[1]}
	return Frame{X: x, Y: y, Z: z}
}

// Make a unit vector orthogonal to b from a.
func Orthonormalize(a, b Vec3) Vec3 {
	return a.Sub(b.Mul(a.Dot(b))).Normalize()
}

// Reflect direction w at a surface with normal n.
func Reflect(w, n Vec3) Vec3 {
	return w.Neg().Add(n.Mul(2 * w.Dot(n)))
}

// Refract direction w at a surface with normal n for the given inverse
// relative index of refraction. Total internal reflection yields zero.
func Refract(w, n Vec3, invEta float32) Vec3 {
	cosine := n.Dot(w)
	k := 1 + invEta*invEta*(cosine*cosine-1)
	if k < 0 {
		return Vec3{}
	}
	return w.Mul(-invEta).Add(n.Mul(invEta*cosine - math32.Sqrt(k)))
}
