package geometry

import "sort"

// Intersection records a single ray/shape crossing at parameter T.
// U and V carry barycentric coordinates for smooth triangle hits and
// are zero for every other shape.
type Intersection struct {
	T     float64
	Shape NodeID
	U, V  float64
}

// IntersectionList is a collection of intersections, usually sorted by
// ascending T.
type IntersectionList []Intersection

// Sort orders the list by ascending T.
func (xs IntersectionList) Sort() {
	sort.Slice(xs, func(i, j int) bool { return xs[i].T < xs[j].T })
}

// Hit returns the visible intersection: the one with the lowest
// non-negative T. The second return is false when every intersection
// lies behind the ray origin.
func (xs IntersectionList) Hit() (Intersection, bool) {
	best := Intersection{}
	found := false
	for _, x := range xs {
		if x.T < 0 {
			continue
		}
		if !found || x.T < best.T {
			best = x
			found = true
		}
	}
	return best, found
}
