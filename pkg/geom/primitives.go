package geom

import "github.com/chewxy/math32"

// Bounds of a point with radius.
func PointBounds(p Vec3, r float32) BBox {
	return BBox{Min: p.Sub(Vec3{r, r, r}), Max: p.Add(Vec3{r, r, r})}
}

// Bounds of a line segment with per-end radii.
func LineBounds(p0, p1 Vec3, r0, r1 float32) BBox {
	return PointBounds(p0, r0).MergeBBox(PointBounds(p1, r1))
}

// Bounds of a triangle.
func TriangleBounds(p0, p1, p2 Vec3) BBox {
	return EmptyBBox().Merge(p0).Merge(p1).Merge(p2)
}

// Bounds of a quad.
func QuadBounds(p0, p1, p2, p3 Vec3) BBox {
	return EmptyBBox().Merge(p0).Merge(p1).Merge(p2).Merge(p3)
}

// Linear interpolation along a line segment.
func InterpolateLine(p0, p1 Vec3, u float32) Vec3 {
	return p0.Mul(1 - u).Add(p1.Mul(u))
}

// Linear interpolation along a line segment, 2d variant.
func InterpolateLine2(p0, p1 Vec2, u float32) Vec2 {
	return p0.Mul(1 - u).Add(p1.Mul(u))
}

// Barycentric interpolation over a triangle.
func InterpolateTriangle(p0, p1, p2 Vec3, uv Vec2) Vec3 {
	return p0.Mul(1 - uv[0] - uv[1]).Add(p1.Mul(uv[0])).Add(p2.Mul(uv[1]))
}

// Barycentric interpolation over a triangle, 2d variant.
func InterpolateTriangle2(p0, p1, p2 Vec2, uv Vec2) Vec2 {
	return p0.Mul(1 - uv[0] - uv[1]).Add(p1.Mul(uv[0])).Add(p2.Mul(uv[1]))
}

// Interpolation over a quad treated as two triangles.
func InterpolateQuad(p0, p1, p2, p3 Vec3, uv Vec2) Vec3 {
	if uv[0]+uv[1] <= 1 {
		return InterpolateTriangle(p0, p1, p3, uv)
	}
	return InterpolateTriangle(p2, p3, p1, Vec2{1 - uv[0], 1 - uv[1]})
}

// Interpolation over a quad treated as two triangles, 2d variant.
func InterpolateQuad2(p0, p1, p2, p3 Vec2, uv Vec2) Vec2 {
	if uv[0]+uv[1] <= 1 {
		return InterpolateTriangle2(p0, p1, p3, uv)
	}
	return InterpolateTriangle2(p2, p3, p1, Vec2{1 - uv[0], 1 - uv[1]})
}

// Tangent of a line segment.
func LineTangent(p0, p1 Vec3) Vec3 {
	return p1.Sub(p0).Normalize()
}

// Normal of a triangle.
func TriangleNormal(p0, p1, p2 Vec3) Vec3 {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// Normal of a quad, averaging its two triangles.
func QuadNormal(p0, p1, p2, p3 Vec3) Vec3 {
	return TriangleNormal(p0, p1, p3).Add(TriangleNormal(p2, p3, p1)).Normalize()
}

// Intersect a ray with a point treated as a sphere of the given radius.
// The returned uv is always the origin.
func IntersectPoint(ray Ray, p Vec3, r float32) (Vec2, float32, bool) {
	w := p.Sub(ray.O)
	t := w.Dot(ray.D) / ray.D.Dot(ray.D)
	if t < ray.TMin || t > ray.TMax {
		return Vec2{}, 0, false
	}
	rp := ray.At(t)
	prp := p.Sub(rp)
	if prp.Dot(prp) > r*r {
		return Vec2{}, 0, false
	}
	return Vec2{0, 0}, t, true
}

// Intersect a ray with a line segment treated as a capped cone. The uv
// holds the arc-length parameter and the normalized radial offset.
func IntersectLine(ray Ray, p0, p1 Vec3, r0, r1 float32) (Vec2, float32, bool) {
	u := ray.D
	v := p1.Sub(p0)
	w := ray.O.Sub(p0)

	// closest points on the ray and the segment's line
	a := u.Dot(u)
	b := u.Dot(v)
	c := v.Dot(v)
	d := u.Dot(w)
	e := v.Dot(w)
	det := a*c - b*b
	if det == 0 {
		return Vec2{}, 0, false
	}

	t := (b*e - c*d) / det
	s := (a*e - b*d) / det
	if t < ray.TMin || t > ray.TMax {
		return Vec2{}, 0, false
	}
	s = Clamp(s, 0, 1)

	pr := ray.At(t)
	pl := p0.Add(p1.Sub(p0).Mul(s))
	prpl := pl.Sub(pr)
	r := r0*(1-s) + r1*s
	d2 := prpl.Dot(prpl)
	if d2 > r*r {
		return Vec2{}, 0, false
	}
	return Vec2{s, math32.Sqrt(d2) / r}, t, true
}

// Intersect a ray with a triangle, returning barycentric uv.
func IntersectTriangle(ray Ray, p0, p1, p2 Vec3) (Vec2, float32, bool) {
	edge1 := p1.Sub(p0)
	edge2 := p2.Sub(p0)
	pvec := ray.D.Cross(edge2)
	det := edge1.Dot(pvec)
	if det == 0 {
		return Vec2{}, 0, false
	}
	invDet := 1 / det

	tvec := ray.O.Sub(p0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return Vec2{}, 0, false
	}

	qvec := tvec.Cross(edge1)
	v := ray.D.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return Vec2{}, 0, false
	}

	t := edge2.Dot(qvec) * invDet
	if t < ray.TMin || t > ray.TMax {
		return Vec2{}, 0, false
	}
	return Vec2{u, v}, t, true
}

// Intersect a ray with a quad treated as two triangles, keeping the
// closer hit. Degenerate quads with p2 == p3 fall back to a triangle.
func IntersectQuad(ray Ray, p0, p1, p2, p3 Vec3) (Vec2, float32, bool) {
	if p2 == p3 {
		return IntersectTriangle(ray, p0, p1, p3)
	}
	hit := false
	var uv Vec2
	var dist float32
	if tuv, t, ok := IntersectTriangle(ray, p0, p1, p3); ok {
		hit, uv, dist = true, tuv, t
		ray.TMax = t
	}
	if tuv, t, ok := IntersectTriangle(ray, p2, p3, p1); ok {
		hit, uv, dist = true, Vec2{1 - tuv[0], 1 - tuv[1]}, t
		ray.TMax = t
	}
	return uv, dist, hit
}
