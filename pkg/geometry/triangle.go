package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// intersectTriangle is the Moller-Trumbore test. For smooth triangles
// the barycentric coordinates are recorded on the intersection for
// later normal interpolation.
func intersectTriangle(n *node, id NodeID, r Ray, xs *IntersectionList, smooth bool) {
	dirCrossE2 := r.Direction.Cross(n.e2)
	det := n.e1.Dot(dirCrossE2)
	if math.Abs(det) < math3d.Epsilon {
		// Ray is parallel to the triangle's plane.
		return
	}

	f := 1 / det
	p1ToOrigin := r.Origin.Sub(n.p1)
	u := f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return
	}

	originCrossE1 := p1ToOrigin.Cross(n.e1)
	v := f * r.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return
	}

	t := f * n.e2.Dot(originCrossE1)
	hit := Intersection{T: t, Shape: id}
	if smooth {
		hit.U, hit.V = u, v
	}
	*xs = append(*xs, hit)
}

// smoothTriangleNormal interpolates the vertex normals by the hit's
// barycentric coordinates.
func smoothTriangleNormal(n *node, hit Intersection) math3d.Vec3 {
	return n.n2.Scale(hit.U).
		Add(n.n3.Scale(hit.V)).
		Add(n.n1.Scale(1 - hit.U - hit.V))
}
