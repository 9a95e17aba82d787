package geometry

// intersectAllowed is the CSG truth table. lhit reports whether the
// intersection is on the left operand's subtree, inl and inr whether
// the ray is currently inside the left and right operands. The flags
// describe the state just before the intersection is crossed.
func intersectAllowed(op Op, lhit, inl, inr bool) bool {
	switch op {
	case OpUnion:
		return (lhit && !inr) || (!lhit && !inl)
	case OpIntersection:
		return (lhit && inr) || (!lhit && inl)
	case OpDifference:
		return (lhit && !inr) || (!lhit && inl)
	}
	return false
}

// containsNode reports whether needle is id itself or anywhere in its
// subtree.
func (s *Scene) containsNode(id, needle NodeID) bool {
	if id == needle {
		return true
	}
	for _, c := range s.nodes[id].children {
		if s.containsNode(c, needle) {
			return true
		}
	}
	return false
}

// filterIntersections walks the sorted intersection list tracking
// inside/outside state for both operands and keeps only the crossings
// the operation allows. Toggling happens after the allowance check, so
// each intersection is judged by the state on its near side.
func (s *Scene) filterIntersections(id NodeID, xs IntersectionList) IntersectionList {
	n := &s.nodes[id]
	left := n.children[0]

	inl := false
	inr := false

	var result IntersectionList
	for _, x := range xs {
		lhit := s.containsNode(left, x.Shape)

		if intersectAllowed(n.op, lhit, inl, inr) {
			result = append(result, x)
		}

		if lhit {
			inl = !inl
		} else {
			inr = !inr
		}
	}
	return result
}

// intersectCSG gathers both operands' intersections in sorted order and
// filters them through the operation's truth table. The combined
// bounding box is checked first, like a group's.
func (s *Scene) intersectCSG(id NodeID, r Ray, xs *IntersectionList, stats *Stats) {
	n := &s.nodes[id]
	if !n.bounds.Intersects(r) {
		if stats != nil {
			stats.BoundsCulls++
		}
		return
	}

	var combined IntersectionList
	s.intersect(n.children[0], r, &combined, stats)
	s.intersect(n.children[1], r, &combined, stats)
	combined.Sort()

	*xs = append(*xs, s.filterIntersections(id, combined)...)
}
