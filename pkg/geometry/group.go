package geometry

// intersectGroup tests the group's bounding box before touching any
// children. The ray is already in the group's space; children apply
// their own inverses.
func (s *Scene) intersectGroup(id NodeID, r Ray, xs *IntersectionList, stats *Stats) {
	n := &s.nodes[id]
	if !n.bounds.Intersects(r) {
		if stats != nil {
			stats.BoundsCulls++
		}
		return
	}
	for _, c := range n.children {
		s.intersect(c, r, xs, stats)
	}
}

// Divide rebuilds the subtree under id into a bounding volume
// hierarchy. Groups with at least threshold children have their
// children partitioned into two subgroups by the halves of the group's
// bounding box; children straddling the cut stay directly in the
// group. The set of primitive shapes in the subtree is unchanged, only
// the grouping around them. Division recurses into every child,
// including subgroups it just created.
func (s *Scene) Divide(id NodeID, threshold int) {
	switch s.nodes[id].kind {
	case KindGroup:
		if threshold <= len(s.nodes[id].children) {
			left, right := s.partitionChildren(id)
			if len(left) > 0 {
				s.makeSubgroup(id, left)
			}
			if len(right) > 0 {
				s.makeSubgroup(id, right)
			}
		}
		for _, c := range s.nodes[id].children {
			s.Divide(c, threshold)
		}
	case KindCSG:
		for _, c := range s.nodes[id].children {
			s.Divide(c, threshold)
		}
	default:
		// Primitives have nothing to divide.
	}
}

// partitionChildren splits the group's bounding box in two and pulls
// out the children that fit entirely inside one half. Children kept by
// neither half remain in the group.
func (s *Scene) partitionChildren(id NodeID) (left, right []NodeID) {
	b := s.nodes[id].bounds
	// A box with no extent along its longest axis splits into two
	// copies of itself; a subgroup made from such a half repartitions
	// identically forever. Coincident degenerate children (common in
	// dirty OBJ files) produce exactly this box.
	if !(b.Max.Sub(b.Min).MaxComponent() > 0) {
		return nil, nil
	}
	leftBounds, rightBounds := b.Split()

	var remaining []NodeID
	for _, c := range s.nodes[id].children {
		cb := s.ParentSpaceBounds(c)
		switch {
		case leftBounds.ContainsBounds(cb):
			left = append(left, c)
		case rightBounds.ContainsBounds(cb):
			right = append(right, c)
		default:
			remaining = append(remaining, c)
		}
	}
	s.nodes[id].children = remaining
	return left, right
}

// makeSubgroup wraps the shapes in a fresh group and attaches it as a
// child of id.
func (s *Scene) makeSubgroup(id NodeID, shapes []NodeID) {
	sub := s.Group(shapes...)
	s.AddChild(id, sub)
}
