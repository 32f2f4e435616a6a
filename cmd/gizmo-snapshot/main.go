// Command gizmo-snapshot scripts a hover and a drag on the translate gizmo
// and writes one PNG per phase.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	gekko "github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/editor/gizmo"
	"github.com/gekko3d/gizmo/editor/preview"
)

func main() {
	configPath := flag.String("config", "gizmo.yaml", "Editor config file")
	outDir := flag.String("out", "snapshots", "Output directory")
	width := flag.Int("width", 640, "Image width")
	height := flag.Int("height", 480, "Image height")
	axisFlag := flag.String("axis", "x", "Handle to drag: x, y, z, xy, yz or xz")
	distance := flag.Float64("distance", 1.5, "Drag distance along each constrained axis")
	flag.Parse()

	if err := run(*configPath, *outDir, *width, *height, *axisFlag, float32(*distance)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, outDir string, width, height int, axisName string, distance float32) error {
	axis, err := gizmo.ParseAxis(axisName)
	if err != nil {
		return err
	}
	cfg, err := gekko.LoadEditorConfigFile(configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	gizmoModule, err := cfg.GizmoModule()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	source := gekko.NewScriptedInput(width, height)
	app := gekko.NewAppBuilder().
		UseModule(
			cfg.LoggingModule(),
			gekko.TimeModule{},
			gekko.InputModule{Source: source},
			gekko.HierarchyModule{},
			gekko.LifecycleModule{},
			gekko.ObjectEditorModule{},
			gizmoModule,
		).
		Build()
	log := app.Logger()

	cmd := app.Commands()
	cmd.AddEntity(cfg.MakeCamera())
	cube := cmd.AddEntity(
		gekko.NewTransform(mgl32.Vec3{0, 0.5, 0}),
		gekko.LocalTransformComponent{},
		gekko.NewGizmoCube(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, [4]float32{0.9, 0.9, 0.9, 1}),
		gekko.SelectableComponent{Radius: 0.7},
	)
	gekko.SelectEntity(cmd, cube)
	app.FlushCommands()

	// Attach the gizmo and let the hierarchy place its parts.
	app.Step()
	app.Step()

	camera, ok := gekko.ActiveCamera(cmd)
	if !ok {
		return errors.New("no camera")
	}
	start, ok := gekko.GetComponent[gekko.TransformComponent](cmd, cube)
	if !ok {
		return errors.New("cube has no transform")
	}

	grab := start.Position.Add(grabOffset(axis, gizmoModule))
	drop := grab
	for _, i := range axis.Mask() {
		drop[i] += distance
	}

	// Frames are rendered in order and encoded in parallel at the end.
	var frames []snapshot
	shoot := func(name string) {
		frames = append(frames, snapshot{
			path: filepath.Join(outDir, fmt.Sprintf("%02d-%s.png", len(frames), name)),
			img:  preview.Render(gekko.CollectScene(cmd, camera), width, height),
		})
	}
	moveTo := func(p mgl32.Vec3) error {
		x, y, ok := camera.WorldToScreen(p, width, height)
		if !ok {
			return fmt.Errorf("point %v is behind the camera", p)
		}
		source.Move(float64(x), float64(y))
		return nil
	}

	shoot("idle")

	if err := moveTo(grab); err != nil {
		return err
	}
	app.Step()
	shoot("hovered")

	source.Press(gekko.MouseButtonLeft)
	app.Step()
	if err := moveTo(drop); err != nil {
		return err
	}
	app.Step()
	shoot("dragging")

	source.Release(gekko.MouseButtonLeft)
	app.Step()
	shoot("released")

	end, _ := gekko.GetComponent[gekko.TransformComponent](cmd, cube)
	log.Infof("cube moved from %v to %v", start.Position, end.Position)

	var group errgroup.Group
	for _, f := range frames {
		group.Go(func() error {
			if err := preview.WritePNG(f.path, f.img); err != nil {
				return err
			}
			log.Infof("wrote %s", f.path)
			return nil
		})
	}
	return group.Wait()
}

type snapshot struct {
	path string
	img  *image.RGBA
}

// grabOffset is a point on the handle, relative to the gizmo center.
func grabOffset(axis gizmo.AxisName, mod gekko.TranslateGizmoModule) mgl32.Vec3 {
	scale := mod.Scale
	if scale <= 0 {
		scale = 1
	}
	if !axis.IsPlane() {
		return axis.Direction().Mul(1.2 * scale)
	}
	table := mod.Table
	if table == nil {
		table = gizmo.DefaultTable()
	}
	cfg, ok := table.Axis(axis)
	if !ok {
		return mgl32.Vec3{}
	}
	_, offset := cfg.Pose(0)
	return offset.Mul(scale)
}
