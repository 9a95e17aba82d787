package geometry

import (
	"math"

	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
)

// NodeID addresses a shape inside a Scene. IDs are stable for the life
// of the scene; nodes are never removed from the arena.
type NodeID int

// NoNode is the null node reference, used for shapes with no parent.
const NoNode NodeID = -1

// Kind identifies the shape stored in a node. The set is closed; every
// dispatch over kinds is an exhaustive switch.
type Kind uint8

// Shape kinds.
const (
	KindSphere Kind = iota
	KindPlane
	KindCube
	KindCylinder
	KindCone
	KindTriangle
	KindSmoothTriangle
	KindGroup
	KindCSG
)

// Op is a CSG boolean operation.
type Op uint8

// CSG operations.
const (
	OpUnion Op = iota
	OpIntersection
	OpDifference
)

// Stats accumulates per-render counters. A single Stats value is
// threaded through intersection calls rather than kept globally, so
// concurrent renders can each carry their own.
type Stats struct {
	// BoundsCulls counts subtrees skipped because the ray missed
	// their bounding box.
	BoundsCulls int
}

// node is one arena slot. Which fields are meaningful depends on kind.
type node struct {
	kind         Kind
	transform    math3d.Mat4
	inverse      math3d.Mat4
	invTranspose math3d.Mat4
	material     material.Material
	parent       NodeID

	// bounds of the node in its own object space, children included
	bounds Bounds

	// cylinder and cone extents along y
	min, max float64
	closed   bool

	// triangle vertices, precomputed edges and normals
	p1, p2, p3 math3d.Vec3
	e1, e2     math3d.Vec3
	normal     math3d.Vec3
	n1, n2, n3 math3d.Vec3

	// group members, or the two CSG operands (left, right)
	children []NodeID

	op Op
}

// Scene is an arena of shape nodes. Groups and CSG nodes reference
// their children by ID, and every node knows its parent, so the tree
// can be walked both ways without shared-ownership pointers.
type Scene struct {
	nodes []node
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Len returns the number of nodes in the arena.
func (s *Scene) Len() int {
	return len(s.nodes)
}

func (s *Scene) alloc(kind Kind) NodeID {
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, node{
		kind:         kind,
		transform:    math3d.Identity(),
		inverse:      math3d.Identity(),
		invTranspose: math3d.Identity(),
		material:     material.Default(),
		parent:       NoNode,
	})
	s.nodes[id].bounds = s.shapeBounds(id)
	return id
}

// Sphere adds a unit sphere centered at the origin.
func (s *Scene) Sphere() NodeID {
	return s.alloc(KindSphere)
}

// GlassSphere adds a unit sphere with a fully transparent glass
// material, the usual starting point for refraction work.
func (s *Scene) GlassSphere() NodeID {
	id := s.alloc(KindSphere)
	s.nodes[id].material = material.Glass()
	return id
}

// Plane adds the xz plane through the origin.
func (s *Scene) Plane() NodeID {
	return s.alloc(KindPlane)
}

// Cube adds an axis-aligned cube from (-1,-1,-1) to (1,1,1).
func (s *Scene) Cube() NodeID {
	return s.alloc(KindCube)
}

// Cylinder adds a radius-1 cylinder along the y axis, truncated to the
// open interval (min, max). Pass infinities for an unbounded cylinder.
// When closed is set the ends are capped with disks.
func (s *Scene) Cylinder(min, max float64, closed bool) NodeID {
	id := s.alloc(KindCylinder)
	n := &s.nodes[id]
	n.min, n.max, n.closed = min, max, closed
	n.bounds = s.shapeBounds(id)
	return id
}

// InfiniteCylinder adds an unbounded open cylinder along the y axis.
func (s *Scene) InfiniteCylinder() NodeID {
	return s.Cylinder(math.Inf(-1), math.Inf(1), false)
}

// Cone adds a double-napped cone along the y axis, truncated to
// (min, max), optionally capped.
func (s *Scene) Cone(min, max float64, closed bool) NodeID {
	id := s.alloc(KindCone)
	n := &s.nodes[id]
	n.min, n.max, n.closed = min, max, closed
	n.bounds = s.shapeBounds(id)
	return id
}

// Triangle adds a flat triangle with a single face normal.
func (s *Scene) Triangle(p1, p2, p3 math3d.Vec3) NodeID {
	id := s.alloc(KindTriangle)
	n := &s.nodes[id]
	n.p1, n.p2, n.p3 = p1, p2, p3
	n.e1 = p2.Sub(p1)
	n.e2 = p3.Sub(p1)
	n.normal = n.e2.Cross(n.e1).Normalize()
	n.bounds = s.shapeBounds(id)
	return id
}

// SmoothTriangle adds a triangle with per-vertex normals that are
// interpolated across the face for smooth shading.
func (s *Scene) SmoothTriangle(p1, p2, p3, n1, n2, n3 math3d.Vec3) NodeID {
	id := s.Triangle(p1, p2, p3)
	n := &s.nodes[id]
	n.kind = KindSmoothTriangle
	n.n1, n.n2, n.n3 = n1, n2, n3
	return id
}

// Group adds a group node containing the given children. Each child is
// reparented to the new group. Children keep their own transforms; set
// a child's transform before attaching it so the group's bounds are
// computed from the final placement.
func (s *Scene) Group(children ...NodeID) NodeID {
	id := s.alloc(KindGroup)
	for _, c := range children {
		s.AddChild(id, c)
	}
	return id
}

// CSG adds a constructive solid geometry node combining left and right
// with the given operation.
func (s *Scene) CSG(op Op, left, right NodeID) NodeID {
	id := s.alloc(KindCSG)
	n := &s.nodes[id]
	n.op = op
	n.children = []NodeID{left, right}
	s.nodes[left].parent = id
	s.nodes[right].parent = id
	s.refreshBounds(id)
	return id
}

// AddChild attaches a shape to a group and refreshes the bounds of the
// group and its ancestors.
func (s *Scene) AddChild(group, child NodeID) {
	s.nodes[group].children = append(s.nodes[group].children, child)
	s.nodes[child].parent = group
	s.refreshBounds(group)
}

// KindOf returns the node's shape kind.
func (s *Scene) KindOf(id NodeID) Kind {
	return s.nodes[id].kind
}

// Parent returns the node's parent, or NoNode for a root.
func (s *Scene) Parent(id NodeID) NodeID {
	return s.nodes[id].parent
}

// Children returns the node's child IDs. The slice is the scene's own;
// callers must not modify it.
func (s *Scene) Children(id NodeID) []NodeID {
	return s.nodes[id].children
}

// Transform returns the node's object-to-parent transform.
func (s *Scene) Transform(id NodeID) math3d.Mat4 {
	return s.nodes[id].transform
}

// Inverse returns the node's cached inverse transform.
func (s *Scene) Inverse(id NodeID) math3d.Mat4 {
	return s.nodes[id].inverse
}

// SetTransform sets the node's transform and refreshes cached inverses
// and the bounds of the node's ancestor chain.
func (s *Scene) SetTransform(id NodeID, m math3d.Mat4) {
	n := &s.nodes[id]
	n.transform = m
	n.inverse = m.Inverse()
	n.invTranspose = n.inverse.Transpose()
	if n.parent != NoNode {
		s.refreshBounds(n.parent)
	}
}

// Material returns the node's material.
func (s *Scene) Material(id NodeID) material.Material {
	return s.nodes[id].material
}

// SetMaterial sets the node's material.
func (s *Scene) SetMaterial(id NodeID, m material.Material) {
	s.nodes[id].material = m
}

// SetMaterialDeep sets the material on a node and every shape below it.
func (s *Scene) SetMaterialDeep(id NodeID, m material.Material) {
	s.nodes[id].material = m
	for _, c := range s.nodes[id].children {
		s.SetMaterialDeep(c, m)
	}
}

// Bounds returns the node's bounding box in its own object space,
// children included.
func (s *Scene) Bounds(id NodeID) Bounds {
	return s.nodes[id].bounds
}

// ParentSpaceBounds returns the node's bounds carried into its parent's
// space by the node's transform.
func (s *Scene) ParentSpaceBounds(id NodeID) Bounds {
	return s.nodes[id].bounds.Transform(s.nodes[id].transform)
}

// shapeBounds computes a node's object-space bounds from its kind and
// children.
func (s *Scene) shapeBounds(id NodeID) Bounds {
	n := &s.nodes[id]
	inf := math.Inf(1)
	switch n.kind {
	case KindSphere, KindCube:
		return NewBounds(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	case KindPlane:
		return NewBounds(math3d.V3(-inf, 0, -inf), math3d.V3(inf, 0, inf))
	case KindCylinder:
		return NewBounds(math3d.V3(-1, n.min, -1), math3d.V3(1, n.max, 1))
	case KindCone:
		limit := math.Max(math.Abs(n.min), math.Abs(n.max))
		return NewBounds(math3d.V3(-limit, n.min, -limit), math3d.V3(limit, n.max, limit))
	case KindTriangle, KindSmoothTriangle:
		return EmptyBounds().Add(n.p1).Add(n.p2).Add(n.p3)
	case KindGroup, KindCSG:
		b := EmptyBounds()
		for _, c := range n.children {
			b = b.Merge(s.ParentSpaceBounds(c))
		}
		return b
	}
	return EmptyBounds()
}

// refreshBounds recomputes the bounds of a node and every ancestor
// above it.
func (s *Scene) refreshBounds(id NodeID) {
	for id != NoNode {
		s.nodes[id].bounds = s.shapeBounds(id)
		id = s.nodes[id].parent
	}
}

// WorldToObject converts a world-space point into the node's object
// space, applying ancestor inverses from the root down.
func (s *Scene) WorldToObject(id NodeID, point math3d.Vec3) math3d.Vec3 {
	n := &s.nodes[id]
	if n.parent != NoNode {
		point = s.WorldToObject(n.parent, point)
	}
	return n.inverse.MulVec3(point)
}

// NormalToWorld converts an object-space normal into world space,
// applying inverse-transpose transforms from the node up to the root.
// The vector is renormalized at every level because non-uniform scales
// do not preserve length.
func (s *Scene) NormalToWorld(id NodeID, normal math3d.Vec3) math3d.Vec3 {
	n := &s.nodes[id]
	normal = n.invTranspose.MulVec3Dir(normal).Normalize()
	if n.parent != NoNode {
		normal = s.NormalToWorld(n.parent, normal)
	}
	return normal
}

// NormalAt returns the world-space surface normal at a world-space
// point on the shape. For smooth triangles the hit must be an
// intersection with that triangle, as its barycentric coordinates
// drive the interpolation; a zero-value hit collapses to the first
// vertex normal. Other shapes ignore the hit.
func (s *Scene) NormalAt(id NodeID, worldPoint math3d.Vec3, hit Intersection) math3d.Vec3 {
	localPoint := s.WorldToObject(id, worldPoint)
	localNormal := s.localNormal(id, localPoint, hit)
	return s.NormalToWorld(id, localNormal)
}

// localNormal dispatches to the shape's object-space normal.
func (s *Scene) localNormal(id NodeID, p math3d.Vec3, hit Intersection) math3d.Vec3 {
	n := &s.nodes[id]
	switch n.kind {
	case KindSphere:
		return sphereNormal(p)
	case KindPlane:
		return planeNormal()
	case KindCube:
		return cubeNormal(p)
	case KindCylinder:
		return cylinderNormal(n, p)
	case KindCone:
		return coneNormal(n, p)
	case KindTriangle:
		return n.normal
	case KindSmoothTriangle:
		return smoothTriangleNormal(n, hit)
	case KindGroup, KindCSG:
		// Groups and CSG nodes have no surface of their own;
		// intersections always reference a concrete shape.
		return math3d.Up()
	}
	return math3d.Up()
}

// Intersect returns the sorted intersections of a world-space ray with
// the node's subtree. stats may be nil when counters are not wanted.
func (s *Scene) Intersect(id NodeID, r Ray, stats *Stats) IntersectionList {
	var xs IntersectionList
	s.intersect(id, r, &xs, stats)
	xs.Sort()
	return xs
}

// intersect transforms the ray into the node's space and dispatches by
// kind, appending hits to xs.
func (s *Scene) intersect(id NodeID, r Ray, xs *IntersectionList, stats *Stats) {
	n := &s.nodes[id]
	local := r.Transform(n.inverse)
	switch n.kind {
	case KindSphere:
		intersectSphere(id, local, xs)
	case KindPlane:
		intersectPlane(id, local, xs)
	case KindCube:
		intersectCube(id, local, xs)
	case KindCylinder:
		intersectCylinder(n, id, local, xs)
	case KindCone:
		intersectCone(n, id, local, xs)
	case KindTriangle:
		intersectTriangle(n, id, local, xs, false)
	case KindSmoothTriangle:
		intersectTriangle(n, id, local, xs, true)
	case KindGroup:
		s.intersectGroup(id, local, xs, stats)
	case KindCSG:
		s.intersectCSG(id, local, xs, stats)
	}
}
