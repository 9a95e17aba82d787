// prism - terminal ray tracer
// Renders scene description files, OBJ and glTF models with shadows,
// reflection and refraction, to PNG/PPM files or live in the terminal.
//
// Preview controls:
//
//	A/D, Left/Right - Orbit around the scene
//	W/S, Up/Down    - Raise or lower the eye
//	+/-             - Zoom in/out
//	Space           - Random spin impulse
//	R               - Reset view
//	Esc             - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/prism/pkg/geometry"
	"github.com/taigrr/prism/pkg/material"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/mesh"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scenefile"
	"github.com/taigrr/prism/pkg/world"
)

var (
	scenePath    = flag.String("scene", "", "Scene description file (INI)")
	outPath      = flag.String("o", "", "Output image path (.png or .ppm); omit for terminal preview")
	width        = flag.Int("width", 800, "Output image width")
	height       = flag.Int("height", 400, "Output image height")
	fov          = flag.Float64("fov", 60, "Field of view in degrees")
	bvhThreshold = flag.Int("bvh", 4, "Group size threshold for spatial subdivision (0 disables)")
	showStats    = flag.Bool("stats", false, "Print intersection statistics after rendering")
	targetFPS    = flag.Int("fps", 10, "Preview target FPS")
	exampleScene = flag.Bool("example-scene", false, "Print an annotated example scene file and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "prism - terminal ray tracer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: prism [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Renders -scene or a mesh file; without either, a built-in demo scene.\n")
		fmt.Fprintf(os.Stderr, "With -o the image is written to disk, otherwise an interactive\n")
		fmt.Fprintf(os.Stderr, "preview opens in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *exampleScene {
		fmt.Print(scenefile.ExampleSceneFile)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	w, cam, err := buildWorld()
	if err != nil {
		return err
	}

	if *outPath == "" {
		return preview(w, cam)
	}

	canvas := cam.Render(w)
	if *showStats {
		fmt.Fprintf(os.Stderr, "bounding box culls: %d\n", w.Stats.BoundsCulls)
	}

	switch strings.ToLower(filepath.Ext(*outPath)) {
	case ".png":
		err = canvas.SavePNG(*outPath)
	case ".ppm":
		err = canvas.SavePPM(*outPath)
	default:
		return fmt.Errorf("unsupported output format %q (use .png or .ppm)", filepath.Ext(*outPath))
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d)\n", *outPath, canvas.Width, canvas.Height)
	return nil
}

// buildWorld assembles the world from -scene, a mesh argument, or the
// built-in demo.
func buildWorld() (*world.World, *render.Camera, error) {
	if *scenePath != "" {
		return scenefile.Load(*scenePath)
	}

	w := world.New()
	w.AddLight(material.NewPointLight(math3d.V3(-10, 10, -10), material.White))

	cam := render.NewCamera(*width, *height, *fov*math.Pi/180)
	cam.SetTransform(math3d.ViewTransform(
		math3d.V3(0, 1.5, -5), math3d.V3(0, 1, 0), math3d.Up(),
	))

	if flag.NArg() > 0 {
		if err := addMesh(w, flag.Arg(0)); err != nil {
			return nil, nil, err
		}
		return w, cam, nil
	}

	demoScene(w)
	return w, cam, nil
}

func addMesh(w *world.World, path string) error {
	var root geometry.NodeID
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		m, err := mesh.LoadOBJ(path, w.Scene)
		if err != nil {
			return err
		}
		root = m.Root
	case ".gltf", ".glb":
		var err error
		root, err = mesh.LoadGLTF(path, w.Scene)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format: %s (use .obj or .glb)", filepath.Ext(path))
	}

	// Center the model on the origin and scale it to fit the demo
	// camera, mirroring what a viewer would do by hand.
	b := w.Scene.Bounds(root)
	center := b.Min.Add(b.Max).Scale(0.5)
	size := b.Max.Sub(b.Min).MaxComponent()
	m := math3d.Identity()
	if size > 0 {
		m = math3d.ScaleUniform(2 / size).Mul(math3d.Translate(center.Negate()))
	}
	w.Scene.SetTransform(root, math3d.Translate(math3d.V3(0, 1, 0)).Mul(m))

	if *bvhThreshold > 0 {
		w.Scene.Divide(root, *bvhThreshold)
	}

	floor(w)
	w.AddObject(root)
	return nil
}

// demoScene builds a scene touching most of the engine: a patterned
// floor, a glass sphere, a CSG die, and a capped cylinder.
func demoScene(w *world.World) {
	floor(w)

	glass := w.Scene.GlassSphere()
	w.Scene.SetTransform(glass, math3d.Translate(math3d.V3(-1.3, 1, 0.5)))
	gm := w.Scene.Material(glass)
	gm.Color = material.RGB(0.05, 0.05, 0.1)
	gm.Diffuse = 0.1
	gm.Reflective = 0.9
	w.Scene.SetMaterial(glass, gm)
	w.AddObject(glass)

	// A die: a rounded cube with a sphere-shaped scoop taken out.
	cube := w.Scene.Cube()
	scoop := w.Scene.Sphere()
	w.Scene.SetTransform(scoop, math3d.Translate(math3d.V3(0, 1.1, -1.1)).Mul(math3d.ScaleUniform(0.6)))
	die := w.Scene.CSG(geometry.OpDifference, cube, scoop)
	w.Scene.SetTransform(die, math3d.Translate(math3d.V3(1.6, 0.7, 1.5)).
		Mul(math3d.RotateY(math.Pi/5)).
		Mul(math3d.ScaleUniform(0.7)))
	dm := material.Default()
	dm.Color = material.RGB(0.9, 0.2, 0.2)
	dm.Specular = 0.4
	w.Scene.SetMaterialDeep(die, dm)
	w.AddObject(die)

	pipe := w.Scene.Cylinder(0, 1.4, true)
	w.Scene.SetTransform(pipe, math3d.Translate(math3d.V3(0.2, 0, -1)).Mul(math3d.Scale(math3d.V3(0.3, 1, 0.3))))
	pm := material.Default()
	pm.Color = material.RGB(0.2, 0.5, 0.9)
	pm.Reflective = 0.3
	w.Scene.SetMaterial(pipe, pm)
	w.AddObject(pipe)
}

func floor(w *world.World) {
	f := w.Scene.Plane()
	fm := material.Default()
	fm.Specular = 0
	fm.Reflective = 0.1
	pattern := material.NewCheckers(material.RGB(0.8, 0.8, 0.8), material.RGB(0.3, 0.3, 0.3))
	fm.Pattern = pattern
	w.Scene.SetMaterial(f, fm)
	w.AddObject(f)
}

// orbit tracks the preview camera's angle and height with spring-decayed
// velocities. The mutex covers input from the event goroutine racing the
// frame loop.
type orbit struct {
	mu        sync.Mutex
	yaw       float64
	elevation float64
	radius    float64

	yawVel  float64
	yawAcc  float64
	elevVel float64
	elevAcc float64
	spring  harmonica.Spring
}

func newOrbit(fps int) *orbit {
	o := &orbit{
		// Critically damped so motion settles without wobble.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
	o.reset()
	return o
}

// impulse nudges the orbit velocities.
func (o *orbit) impulse(yaw, elev float64) {
	o.mu.Lock()
	o.yawVel += yaw
	o.elevVel += elev
	o.mu.Unlock()
}

func (o *orbit) zoom(d float64) {
	o.mu.Lock()
	o.radius = math.Min(20, math.Max(2, o.radius+d))
	o.mu.Unlock()
}

func (o *orbit) reset() {
	o.mu.Lock()
	o.yaw, o.elevation, o.radius = 0, 1.5, 6
	o.yawVel, o.yawAcc, o.elevVel, o.elevAcc = 0, 0, 0, 0
	o.mu.Unlock()
}

func (o *orbit) update() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.yaw += o.yawVel
	o.elevation += o.elevVel
	o.elevation = math.Max(0.2, math.Min(8, o.elevation))

	o.yawVel, o.yawAcc = o.spring.Update(o.yawVel, o.yawAcc, 0)
	o.elevVel, o.elevAcc = o.spring.Update(o.elevVel, o.elevAcc, 0)
}

func (o *orbit) eye() math3d.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return math3d.V3(
		o.radius*math.Sin(o.yaw),
		o.elevation,
		-o.radius*math.Cos(o.yaw),
	)
}

func preview(w *world.World, cam *render.Camera) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	o := newOrbit(*targetFPS)
	target := math3d.V3(0, 1, 0)

	var sizeMu sync.Mutex
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				sizeMu.Lock()
				cols, rows = ev.Width, ev.Height
				sizeMu.Unlock()
				term.Erase()
				term.Resize(ev.Width, ev.Height)
			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
					cancel()
					return
				case ev.MatchString("a", "left"):
					o.impulse(-0.04, 0)
				case ev.MatchString("d", "right"):
					o.impulse(0.04, 0)
				case ev.MatchString("w", "up"):
					o.impulse(0, 0.1)
				case ev.MatchString("s", "down"):
					o.impulse(0, -0.1)
				case ev.MatchString("+", "="):
					o.zoom(-0.5)
				case ev.MatchString("-", "_"):
					o.zoom(0.5)
				case ev.MatchString("space"):
					o.impulse((rand.Float64()-0.5)*0.5, 0)
				case ev.MatchString("r"):
					o.reset()
				}
			}
		}
	}()

	frameDuration := time.Second / time.Duration(*targetFPS)
	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		start := time.Now()
		o.update()

		sizeMu.Lock()
		fw, fh := cols, rows
		sizeMu.Unlock()

		// Full vertical resolution via half blocks.
		frame := render.NewCamera(fw, fh*2, cam.FOV)
		frame.SetTransform(math3d.ViewTransform(o.eye(), target, math3d.Up()))
		canvas := frame.Render(w)

		canvas.Draw(term, uv.Rect(0, 0, fw, fh))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(start); elapsed < frameDuration {
			time.Sleep(frameDuration - elapsed)
		}
	}
}
