package geom

import "github.com/chewxy/math32"

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min, Max Vec3
}

// An empty box that any merge will overwrite.
func EmptyBBox() BBox {
	return BBox{
		Min: Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// Grow the box to contain a point.
func (b BBox) Merge(p Vec3) BBox {
	return BBox{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

// Grow the box to contain another box.
func (b BBox) MergeBBox(o BBox) BBox {
	return BBox{Min: MinVec3(b.Min, o.Min), Max: MaxVec3(b.Max, o.Max)}
}

// Box center point.
func (b BBox) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Box extent along each axis.
func (b BBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Report whether the point lies inside the box.
func (b BBox) Contains(p Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Transform the box, merging all eight transformed corners.
func (f Frame) TransformBBox(b BBox) BBox {
	corners := [8]Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
	out := EmptyBBox()
	for _, c := range corners {
		out = out.Merge(f.TransformPoint(c))
	}
	return out
}

// Slab test against the ray interval, using a reciprocal direction the
// caller computed once per ray. Zero direction components produce inf
// slabs and still resolve correctly.
func (b BBox) IntersectP(ray Ray, invD Vec3) bool {
	itMin := b.Min.Sub(ray.O).MulVec(invD)
	itMax := b.Max.Sub(ray.O).MulVec(invD)
	tMin := MinVec3(itMin, itMax)
	tMax := MaxVec3(itMin, itMax)
	t0 := math32.Max(tMin.MaxComp(), ray.TMin)
	t1 := math32.Min(math32.Min(tMax[0], math32.Min(tMax[1], tMax[2])), ray.TMax)
	t1 *= 1.00000024
	return t0 <= t1
}
