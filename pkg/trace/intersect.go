package trace

import "github.com/ChiaraGiaca/cg-projects/pkg/geom"

// Intersection describes a ray hit. Instance and Element index into the
// scene and the instance's shape; UV are the element's parametric
// coordinates at the hit.
type Intersection struct {
	Hit      bool
	Instance int
	Element  int
	UV       geom.Vec2
	Distance float32
}

// IntersectScene returns the closest hit along the ray, or with findAny
// the first hit found in traversal order. Requires InitBVH.
func (sc *Scene) IntersectScene(ray geom.Ray, findAny bool) Intersection {
	var out Intersection
	if sc.BVH == nil {
		return out
	}
	sc.BVH.IntersectLeaves(&ray, findAny, func(prim int) bool {
		inst := sc.Instances[prim]
		local := inst.Frame.Inverse().TransformRay(ray)
		element, uv, distance, ok := intersectShape(sc.Shapes[inst.Shape], local, findAny)
		if !ok {
			return false
		}
		out = Intersection{Hit: true, Instance: prim, Element: element, UV: uv, Distance: distance}
		ray.TMax = distance
		return true
	})
	return out
}

// IntersectInstance intersects the ray with a single instance, ignoring
// the rest of the scene.
func (sc *Scene) IntersectInstance(instance int, ray geom.Ray, findAny bool) Intersection {
	inst := sc.Instances[instance]
	local := inst.Frame.Inverse().TransformRay(ray)
	element, uv, distance, ok := intersectShape(sc.Shapes[inst.Shape], local, findAny)
	if !ok {
		return Intersection{}
	}
	return Intersection{Hit: true, Instance: instance, Element: element, UV: uv, Distance: distance}
}

// intersectShape traverses the shape hierarchy in local coordinates.
// The frame transform preserves lengths for the rigid frames used here,
// so local hit distances are comparable across instances.
func intersectShape(shape *Shape, ray geom.Ray, findAny bool) (int, geom.Vec2, float32, bool) {
	if shape.BVH == nil {
		return 0, geom.Vec2{}, 0, false
	}
	var (
		element  int
		uv       geom.Vec2
		distance float32
		found    bool
	)
	shape.BVH.IntersectLeaves(&ray, findAny, func(prim int) bool {
		var (
			puv geom.Vec2
			t   float32
			ok  bool
		)
		switch {
		case len(shape.Points) > 0:
			p := shape.Points[prim]
			puv, t, ok = geom.IntersectPoint(ray, shape.Positions[p], shape.Radius[p])
		case len(shape.Lines) > 0:
			l := shape.Lines[prim]
			puv, t, ok = geom.IntersectLine(ray,
				shape.Positions[l[0]], shape.Positions[l[1]],
				shape.Radius[l[0]], shape.Radius[l[1]])
		case len(shape.Triangles) > 0:
			tr := shape.Triangles[prim]
			puv, t, ok = geom.IntersectTriangle(ray,
				shape.Positions[tr[0]], shape.Positions[tr[1]], shape.Positions[tr[2]])
		}
		if !ok {
			return false
		}
		element, uv, distance, found = prim, puv, t, true
		ray.TMax = t
		return true
	})
	return element, uv, distance, found
}
