package trace

import (
	"github.com/ChiaraGiaca/cg-projects/pkg/bvh"
	"github.com/ChiaraGiaca/cg-projects/pkg/geom"
)

// ProgressFunc reports progress of a long-running operation.
type ProgressFunc func(message string, current, total int)

// InitBVH builds a hierarchy per shape and one over the instance
// bounds. Call it again after shapes or instances change.
func (sc *Scene) InitBVH(progress ProgressFunc) {
	total := 1 + len(sc.Shapes)
	current := 0
	for _, shape := range sc.Shapes {
		if progress != nil {
			progress("build shape bvh", current, total)
		}
		current++
		initShapeBVH(shape)
	}

	if progress != nil {
		progress("build scene bvh", current, total)
	}
	current++
	boxes := make([]geom.BBox, len(sc.Instances))
	for i, inst := range sc.Instances {
		shape := sc.Shapes[inst.Shape]
		if len(shape.BVH.Primitives) == 0 {
			boxes[i] = geom.EmptyBBox()
		} else {
			boxes[i] = inst.Frame.TransformBBox(shape.BVH.Bounds())
		}
	}
	sc.BVH = bvh.Build(boxes)

	if progress != nil {
		progress("build bvh", current, total)
	}
}

func initShapeBVH(shape *Shape) {
	var boxes []geom.BBox
	switch {
	case len(shape.Points) > 0:
		boxes = make([]geom.BBox, len(shape.Points))
		for idx, p := range shape.Points {
			boxes[idx] = geom.PointBounds(shape.Positions[p], shape.Radius[p])
		}
	case len(shape.Lines) > 0:
		boxes = make([]geom.BBox, len(shape.Lines))
		for idx, l := range shape.Lines {
			boxes[idx] = geom.LineBounds(
				shape.Positions[l[0]], shape.Positions[l[1]],
				shape.Radius[l[0]], shape.Radius[l[1]])
		}
	case len(shape.Triangles) > 0:
		boxes = make([]geom.BBox, len(shape.Triangles))
		for idx, t := range shape.Triangles {
			boxes[idx] = geom.TriangleBounds(
				shape.Positions[t[0]], shape.Positions[t[1]], shape.Positions[t[2]])
		}
	}
	shape.BVH = bvh.Build(boxes)
}
