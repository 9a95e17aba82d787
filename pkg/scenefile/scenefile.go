// Package scenefile loads ray tracer scenes from INI-style description
// files: a camera, lights, primitive shapes with transforms and
// materials, and external mesh files.
package scenefile

import (
	"fmt"
	"math"
	"path/filepath"

	"gopkg.in/gcfg.v1"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/mesh"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/world"
)

// ExampleSceneFile documents the accepted sections and keys.
const ExampleSceneFile = `[Camera]
# Canvas size in pixels.
Width  = 400
Height = 200
# Field of view in degrees.
FOV = 60
# Eye position, look-at target, and up hint.
FromX = 0
FromY = 1.5
FromZ = -5
ToY   = 1
UpY   = 1

[Light "key"]
X = -10
Y = 10
Z = -10
R = 1
G = 1
B = 1

# Shape sections: Sphere, Plane, Cube, Cylinder, Cone.
[Sphere "ball"]
# Transforms are applied scale first, then rotation, then translation.
# Angles are in degrees; Scale defaults to 1 on every axis.
TranslateY = 1
ScaleX = 0.5
ScaleY = 0.5
ScaleZ = 0.5
RotateY = 45
# Material. Color channels and Phong terms; zero-valued keys keep the
# library defaults.
R = 0.1
G = 1
B = 0.5
Diffuse    = 0.7
Specular   = 0.3
Reflective = 0.1
# Optional pattern: stripe, gradient, ring, or checkers, blending the
# material color with the secondary color.
Pattern = checkers
R2 = 0
G2 = 0
B2 = 0

[Cylinder "pipe"]
Min = 0
Max = 2
Closed = true

# External triangle meshes (.obj, .gltf, .glb). BVHThreshold enables
# spatial subdivision of the loaded mesh.
[Mesh "model"]
Path = models/teapot.obj
BVHThreshold = 4
`

// CameraConfig is the [Camera] section.
type CameraConfig struct {
	Width  int
	Height int
	FOV    float64

	FromX, FromY, FromZ float64
	ToX, ToY, ToZ       float64
	UpX, UpY, UpZ       float64
}

// LightConfig is a [Light "name"] section.
type LightConfig struct {
	X, Y, Z float64
	R, G, B float64
}

// ShapeConfig is shared by every shape section kind.
type ShapeConfig struct {
	TranslateX, TranslateY, TranslateZ float64
	ScaleX, ScaleY, ScaleZ             float64
	RotateX, RotateY, RotateZ          float64

	R, G, B         float64
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64
	Transparency    float64
	RefractiveIndex float64

	Pattern    string
	R2, G2, B2 float64

	// Cylinder and cone extents.
	Min, Max float64
	Closed   bool
}

// MeshConfig is a [Mesh "name"] section.
type MeshConfig struct {
	ShapeConfig
	Path         string
	BVHThreshold int
}

// Config is the full scene file.
type Config struct {
	Camera   CameraConfig
	Light    map[string]*LightConfig
	Sphere   map[string]*ShapeConfig
	Plane    map[string]*ShapeConfig
	Cube     map[string]*ShapeConfig
	Cylinder map[string]*ShapeConfig
	Cone     map[string]*ShapeConfig
	Mesh     map[string]*MeshConfig
}

// Load reads a scene file and builds the world and camera it
// describes. Mesh paths are resolved relative to the scene file.
func Load(path string) (*world.World, *render.Camera, error) {
	var cfg Config
	if err := gcfg.ReadFileInto(&cfg, path); err != nil {
		return nil, nil, fmt.Errorf("reading scene file %s: %w", path, err)
	}
	return Build(&cfg, filepath.Dir(path))
}

// LoadString parses a scene description from a string, with mesh paths
// resolved relative to dir.
func LoadString(src, dir string) (*world.World, *render.Camera, error) {
	var cfg Config
	if err := gcfg.ReadStringInto(&cfg, src); err != nil {
		return nil, nil, fmt.Errorf("parsing scene: %w", err)
	}
	return Build(&cfg, dir)
}

// Build constructs a world and camera from a parsed config.
func Build(cfg *Config, dir string) (*world.World, *render.Camera, error) {
	w := world.New()

	for name, l := range cfg.Light {
		if name == "" {
			continue
		}
		w.AddLight(material.NewPointLight(
			math3d.V3(l.X, l.Y, l.Z),
			material.RGB(l.R, l.G, l.B),
		))
	}
	if len(w.Lights) == 0 {
		// A sceneless light leaves everything black; default to a
		// white key light above and behind the default camera.
		w.AddLight(material.NewPointLight(math3d.V3(-10, 10, -10), material.White))
	}

	addShapes := func(sections map[string]*ShapeConfig, make func(*ShapeConfig) geometry.NodeID) {
		for name, sc := range sections {
			if name == "" {
				continue
			}
			id := make(sc)
			w.Scene.SetTransform(id, sc.transform())
			w.Scene.SetMaterial(id, sc.material())
			w.AddObject(id)
		}
	}

	addShapes(cfg.Sphere, func(*ShapeConfig) geometry.NodeID { return w.Scene.Sphere() })
	addShapes(cfg.Plane, func(*ShapeConfig) geometry.NodeID { return w.Scene.Plane() })
	addShapes(cfg.Cube, func(*ShapeConfig) geometry.NodeID { return w.Scene.Cube() })
	addShapes(cfg.Cylinder, func(sc *ShapeConfig) geometry.NodeID {
		return w.Scene.Cylinder(sc.yRange())
	})
	addShapes(cfg.Cone, func(sc *ShapeConfig) geometry.NodeID {
		return w.Scene.Cone(sc.yRange())
	})

	for name, mc := range cfg.Mesh {
		if name == "" {
			continue
		}
		id, err := loadMesh(w.Scene, dir, mc)
		if err != nil {
			return nil, nil, fmt.Errorf("mesh %q: %w", name, err)
		}
		w.Scene.SetTransform(id, mc.transform())
		w.Scene.SetMaterialDeep(id, mc.material())
		if mc.BVHThreshold > 0 {
			w.Scene.Divide(id, mc.BVHThreshold)
		}
		w.AddObject(id)
	}

	return w, cfg.Camera.camera(), nil
}

func loadMesh(s *geometry.Scene, dir string, mc *MeshConfig) (geometry.NodeID, error) {
	if mc.Path == "" {
		return geometry.NoNode, fmt.Errorf("missing Path")
	}
	path := mc.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	switch filepath.Ext(path) {
	case ".obj":
		m, err := mesh.LoadOBJ(path, s)
		if err != nil {
			return geometry.NoNode, err
		}
		return m.Root, nil
	case ".gltf", ".glb":
		return mesh.LoadGLTF(path, s)
	default:
		return geometry.NoNode, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
}

func (c *CameraConfig) camera() *render.Camera {
	width, height := c.Width, c.Height
	if width == 0 {
		width = 400
	}
	if height == 0 {
		height = 200
	}
	fov := c.FOV
	if fov == 0 {
		fov = 60
	}

	cam := render.NewCamera(width, height, fov*math.Pi/180)

	up := math3d.V3(c.UpX, c.UpY, c.UpZ)
	if up == math3d.Zero3() {
		up = math3d.Up()
	}
	cam.SetTransform(math3d.ViewTransform(
		math3d.V3(c.FromX, c.FromY, c.FromZ),
		math3d.V3(c.ToX, c.ToY, c.ToZ),
		up,
	))
	return cam
}

// transform composes the section's transform keys, scaling first and
// translating last.
func (sc *ShapeConfig) transform() math3d.Mat4 {
	m := math3d.Identity()

	if sc.ScaleX != 0 || sc.ScaleY != 0 || sc.ScaleZ != 0 {
		sx, sy, sz := sc.ScaleX, sc.ScaleY, sc.ScaleZ
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		if sz == 0 {
			sz = 1
		}
		m = math3d.Scale(math3d.V3(sx, sy, sz)).Mul(m)
	}

	rad := math.Pi / 180
	if sc.RotateX != 0 {
		m = math3d.RotateX(sc.RotateX * rad).Mul(m)
	}
	if sc.RotateY != 0 {
		m = math3d.RotateY(sc.RotateY * rad).Mul(m)
	}
	if sc.RotateZ != 0 {
		m = math3d.RotateZ(sc.RotateZ * rad).Mul(m)
	}

	if sc.TranslateX != 0 || sc.TranslateY != 0 || sc.TranslateZ != 0 {
		m = math3d.Translate(math3d.V3(sc.TranslateX, sc.TranslateY, sc.TranslateZ)).Mul(m)
	}
	return m
}

// material starts from the library default and overrides only keys the
// file set, so a bare section still renders sensibly.
func (sc *ShapeConfig) material() material.Material {
	m := material.Default()

	if sc.R != 0 || sc.G != 0 || sc.B != 0 {
		m.Color = material.RGB(sc.R, sc.G, sc.B)
	}
	if sc.Ambient != 0 {
		m.Ambient = sc.Ambient
	}
	if sc.Diffuse != 0 {
		m.Diffuse = sc.Diffuse
	}
	if sc.Specular != 0 {
		m.Specular = sc.Specular
	}
	if sc.Shininess != 0 {
		m.Shininess = sc.Shininess
	}
	m.Reflective = sc.Reflective
	m.Transparency = sc.Transparency
	if sc.RefractiveIndex != 0 {
		m.RefractiveIndex = sc.RefractiveIndex
	}

	if sc.Pattern != "" {
		a := m.Color
		b := material.RGB(sc.R2, sc.G2, sc.B2)
		switch sc.Pattern {
		case "stripe":
			m.Pattern = material.NewStripe(a, b)
		case "gradient":
			m.Pattern = material.NewGradient(a, b)
		case "ring":
			m.Pattern = material.NewRing(a, b)
		case "checkers":
			m.Pattern = material.NewCheckers(a, b)
		}
	}
	return m
}

func (sc *ShapeConfig) yRange() (float64, float64, bool) {
	min, max := sc.Min, sc.Max
	if min == 0 && max == 0 {
		min, max = math.Inf(-1), math.Inf(1)
	}
	return min, max, sc.Closed
}
