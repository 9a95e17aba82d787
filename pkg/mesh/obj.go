// Package mesh imports triangle meshes from Wavefront OBJ and glTF
// files into a scene arena as groups of triangles.
package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/math3d"
)

// Model is the result of parsing a mesh file. Root is a group holding
// every polygon; named OBJ groups are also reachable individually.
type Model struct {
	Root     geometry.NodeID
	Groups   map[string]geometry.NodeID
	Vertices []math3d.Vec3
	Normals  []math3d.Vec3
	// Ignored counts lines the parser did not recognize.
	Ignored int
}

// LoadOBJ parses a Wavefront OBJ file into the scene.
func LoadOBJ(path string, s *geometry.Scene) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := ParseOBJ(f, s)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// ParseOBJ reads OBJ statements and builds triangles in the scene.
// Polygons with more than three vertices are fan-triangulated. Faces
// that reference vertex normals become smooth triangles. Unrecognized
// statements are counted and skipped rather than rejected, since OBJ
// files in the wild carry many extensions.
func ParseOBJ(r io.Reader, s *geometry.Scene) (*Model, error) {
	m := &Model{
		Root:   s.Group(),
		Groups: map[string]geometry.NodeID{},
	}

	currentGroup := s.Group()
	s.AddChild(m.Root, currentGroup)
	m.Groups["default"] = currentGroup

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			m.Vertices = append(m.Vertices, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			m.Normals = append(m.Normals, v)
		case "f":
			if err := m.addFace(s, currentGroup, fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
		case "g":
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			g, ok := m.Groups[name]
			if !ok {
				g = s.Group()
				s.AddChild(m.Root, g)
				m.Groups[name] = g
			}
			currentGroup = g
		default:
			m.Ignored++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return m, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	var c [3]float64
	for i := range 3 {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, err
		}
		c[i] = v
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// faceRef is one corner of a face: a vertex index and an optional
// normal index, both 1-based per the OBJ convention.
type faceRef struct {
	vertex int
	normal int // 0 when absent
}

func parseFaceRef(field string) (faceRef, error) {
	parts := strings.Split(field, "/")
	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return faceRef{}, err
	}
	ref := faceRef{vertex: v}
	if len(parts) == 3 && parts[2] != "" {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return faceRef{}, err
		}
		ref.normal = n
	}
	return ref, nil
}

// addFace fan-triangulates a polygon around its first vertex.
func (m *Model) addFace(s *geometry.Scene, group geometry.NodeID, fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("want at least 3 vertices, got %d", len(fields))
	}

	refs := make([]faceRef, len(fields))
	for i, f := range fields {
		ref, err := parseFaceRef(f)
		if err != nil {
			return err
		}
		if ref.vertex < 1 || ref.vertex > len(m.Vertices) {
			return fmt.Errorf("vertex index %d out of range", ref.vertex)
		}
		if ref.normal > len(m.Normals) {
			return fmt.Errorf("normal index %d out of range", ref.normal)
		}
		refs[i] = ref
	}

	for i := 1; i < len(refs)-1; i++ {
		a, b, c := refs[0], refs[i], refs[i+1]
		p1 := m.Vertices[a.vertex-1]
		p2 := m.Vertices[b.vertex-1]
		p3 := m.Vertices[c.vertex-1]

		var tri geometry.NodeID
		if a.normal > 0 && b.normal > 0 && c.normal > 0 {
			tri = s.SmoothTriangle(p1, p2, p3,
				m.Normals[a.normal-1],
				m.Normals[b.normal-1],
				m.Normals[c.normal-1])
		} else {
			tri = s.Triangle(p1, p2, p3)
		}
		s.AddChild(group, tri)
	}
	return nil
}
