// Package bvh implements a bounding volume hierarchy over opaque
// primitive indices. Callers hand Build one box per primitive and keep
// whatever geometry those indices refer to; traversal reports candidate
// primitives front to back and leaves the actual primitive test to the
// caller.
package bvh

import "github.com/ChiaraGiaca/cg-projects/pkg/geom"

// Primitives per leaf before a node is split.
const maxPrims = 4

// Fixed traversal stack depth. With binary splits this covers far more
// primitives than fit in memory.
const maxStack = 128

// Node is one slot in the flattened tree. Internal nodes store the index
// of their first child, with the sibling immediately after it; leaves
// store a range into the reordered primitive list.
type Node struct {
	BBox     geom.BBox
	Start    int32
	Num      int16
	Axis     int8
	Internal bool
}

// Tree is a flattened hierarchy with the root at node 0.
type Tree struct {
	Nodes      []Node
	Primitives []int
}

// Bounds returns the root box, or an empty box for an empty tree.
func (t *Tree) Bounds() geom.BBox {
	if len(t.Nodes) == 0 {
		return geom.EmptyBBox()
	}
	return t.Nodes[0].BBox
}

// Build constructs the hierarchy for one box per primitive. Nodes are
// appended in construction order off an explicit queue, so the layout is
// deterministic for a given input.
func Build(boxes []geom.BBox) *Tree {
	t := &Tree{
		Nodes:      make([]Node, 0, 2*len(boxes)+1),
		Primitives: make([]int, len(boxes)),
	}
	for i := range t.Primitives {
		t.Primitives[i] = i
	}

	centers := make([]geom.Vec3, len(boxes))
	for i, b := range boxes {
		centers[i] = b.Center()
	}

	type span struct{ node, start, end int }
	queue := []span{{0, 0, len(boxes)}}
	t.Nodes = append(t.Nodes, Node{})

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		bbox := geom.EmptyBBox()
		for i := next.start; i < next.end; i++ {
			bbox = bbox.MergeBBox(boxes[t.Primitives[i]])
		}
		t.Nodes[next.node].BBox = bbox

		if next.end-next.start > maxPrims {
			mid, axis := splitMiddle(t.Primitives, centers, next.start, next.end)
			first := len(t.Nodes)
			t.Nodes[next.node].Internal = true
			t.Nodes[next.node].Axis = int8(axis)
			t.Nodes[next.node].Num = 2
			t.Nodes[next.node].Start = int32(first)
			t.Nodes = append(t.Nodes, Node{}, Node{})
			queue = append(queue,
				span{first, next.start, mid},
				span{first + 1, mid, next.end})
		} else {
			t.Nodes[next.node].Internal = false
			t.Nodes[next.node].Num = int16(next.end - next.start)
			t.Nodes[next.node].Start = int32(next.start)
		}
	}
	return t
}

// splitMiddle partitions [start, end) at the spatial midpoint of the
// centroid bounds along their largest axis. When the centroids coincide
// or the partition leaves one side empty it falls back to splitting the
// range in half.
func splitMiddle(primitives []int, centers []geom.Vec3, start, end int) (int, int) {
	axis := 0
	mid := (start + end) / 2

	cbbox := geom.EmptyBBox()
	for i := start; i < end; i++ {
		cbbox = cbbox.Merge(centers[primitives[i]])
	}
	csize := cbbox.Size()
	if csize == (geom.Vec3{}) {
		return mid, axis
	}

	if csize[0] >= csize[1] && csize[0] >= csize[2] {
		axis = 0
	}
	if csize[1] >= csize[0] && csize[1] >= csize[2] {
		axis = 1
	}
	if csize[2] >= csize[0] && csize[2] >= csize[1] {
		axis = 2
	}

	split := cbbox.Center()[axis]
	middle := partition(primitives, start, end, func(p int) bool {
		return centers[p][axis] < split
	})
	if middle == start || middle == end {
		return mid, axis
	}
	return middle, axis
}

// partition reorders [start, end) so elements satisfying pred come
// first and returns the boundary index.
func partition(prims []int, start, end int, pred func(int) bool) int {
	first := start
	for i := start; i < end; i++ {
		if pred(prims[i]) {
			prims[first], prims[i] = prims[i], prims[first]
			first++
		}
	}
	return first
}

// IntersectLeaves walks the tree, calling hit for every primitive in
// every leaf the ray reaches. The callback returns whether its primitive
// was actually intersected and may shrink ray.TMax to prune farther
// nodes. Children are visited near to far along each node's split axis.
// With findAny set the walk stops at the first reported hit.
func (t *Tree) IntersectLeaves(ray *geom.Ray, findAny bool, hit func(prim int) bool) bool {
	if len(t.Nodes) == 0 {
		return false
	}

	var stack [maxStack]int32
	cur := 0
	stack[cur] = 0
	cur++

	invD := geom.Vec3{1 / ray.D[0], 1 / ray.D[1], 1 / ray.D[2]}
	var dsign [3]bool
	for a := 0; a < 3; a++ {
		dsign[a] = invD[a] < 0
	}

	found := false
	for cur > 0 {
		cur--
		node := &t.Nodes[stack[cur]]
		if !node.BBox.IntersectP(*ray, invD) {
			continue
		}

		if node.Internal {
			// descend along the split axis from near to far; the stack
			// pops the last pushed entry first
			if dsign[node.Axis] {
				stack[cur] = node.Start
				stack[cur+1] = node.Start + 1
			} else {
				stack[cur] = node.Start + 1
				stack[cur+1] = node.Start
			}
			cur += 2
		} else {
			for i := node.Start; i < node.Start+int32(node.Num); i++ {
				if hit(t.Primitives[i]) {
					found = true
				}
			}
		}

		if findAny && found {
			return true
		}
	}
	return found
}
