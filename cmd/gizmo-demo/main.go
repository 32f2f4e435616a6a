package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/editor/gizmo"
	"github.com/gekko3d/gizmo/editor/preview"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "gizmo.yaml", "Editor config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := gekko.LoadEditorConfigFile(*configPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *debug {
		cfg.Log.Debug = true
	}

	gizmoModule, err := cfg.GizmoModule()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := gekko.NewAppBuilder().
		UseModule(cfg.LoggingModule()).
		UseModule(gekko.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)).
		UseModule(
			gekko.TimeModule{},
			gekko.InputModule{},
			gekko.HierarchyModule{},
			gekko.LifecycleModule{},
			gekko.FlyingCameraModule{},
			gekko.ObjectEditorModule{},
		).
		UseModule(gizmoModule).
		UseModule(demoModule{camera: cfg.MakeCamera()}).
		Build()

	if window, ok := gekko.Resource[gekko.WindowState](app); ok {
		defer window.Close()
	}
	app.Run()
}

// demoModule spawns the camera and a few selectable objects.
type demoModule struct {
	camera gekko.CameraComponent
}

func (m demoModule) Install(app *gekko.App, cmd *gekko.Commands) {
	cmd.AddEntity(m.camera, gekko.FlyingCameraComponent{Speed: 5, Sensitivity: 0.15})

	cube := cmd.AddEntity(
		gekko.NewTransform(mgl32.Vec3{0, 0.5, 0}),
		gekko.LocalTransformComponent{},
		gekko.NewGizmoCube(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, [4]float32{0.9, 0.9, 0.9, 1}),
		gekko.SelectableComponent{Radius: 0.7},
	)
	cmd.AddEntity(
		gekko.NewTransform(mgl32.Vec3{3, 0.5, -2}),
		gekko.LocalTransformComponent{},
		gekko.NewGizmoSphere(mgl32.Vec3{}, 0.5, [4]float32{0.6, 0.8, 1, 1}),
		gekko.SelectableComponent{Radius: 0.5},
	)
	// A child moves with the cube and can be dragged on its own.
	cmd.AddEntity(
		gekko.Parent{Entity: cube},
		gekko.NewLocalTransform(mgl32.Vec3{0, 1.2, 0}, mgl32.QuatIdent(), mgl32.Vec3{0.5, 0.5, 0.5}),
		gekko.TransformComponent{},
		gekko.NewGizmoCube(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, [4]float32{1, 0.6, 0.3, 1}),
		gekko.SelectableComponent{Radius: 0.7},
	)

	cmd.AddResources(&demoStatus{})
	app.UseSystem(
		gekko.System(demoStatusSystem).
			InStage(gekko.PostRender),
	)
}

// demoStatus remembers the last printed drag position.
type demoStatus struct {
	lastDrag mgl32.Vec3
}

// reportDrag logs the drag position when it changed since the last report.
func (s *demoStatus) reportDrag(log gekko.Logger, axis gizmo.AxisName, pos mgl32.Vec3) {
	if pos == s.lastDrag {
		return
	}
	log.Infof("drag %s at (%.2f, %.2f, %.2f)", axis, pos.X(), pos.Y(), pos.Z())
	s.lastDrag = pos
}

// demoStatusSystem shows the drag state in the title, Esc quits, P saves a
// preview of the current frame.
func demoStatusSystem(cmd *gekko.Commands, input *gekko.Input, window *gekko.WindowState, status *demoStatus, log gekko.Logger) {
	if input.JustPressed[gekko.KeyEscape] {
		cmd.Exit()
	}

	title := "Gekko gizmo"
	gekko.MakeQuery1[gekko.TranslateControl](cmd).Map(func(eid gekko.EntityId, control *gekko.TranslateControl) bool {
		if session := control.Session(); session != nil {
			pos := session.Position()
			title = fmt.Sprintf("Gekko gizmo - %s (%.2f, %.2f, %.2f)", session.Axis, pos.X(), pos.Y(), pos.Z())
			status.reportDrag(log, session.Axis, pos)
		} else if control.HoveredAxis != "" {
			title = fmt.Sprintf("Gekko gizmo - hover %s", control.HoveredAxis)
		}
		return false
	})
	window.SetTitle(title)

	if input.JustPressed[gekko.KeyP] {
		camera, ok := gekko.ActiveCamera(cmd)
		if !ok {
			return
		}
		img := preview.Render(gekko.CollectScene(cmd, camera), input.WindowWidth, input.WindowHeight)
		path := filepath.Join(os.TempDir(), fmt.Sprintf("gizmo-%d.png", cmd.Frame()))
		if err := preview.WritePNG(path, img); err != nil {
			log.Errorf("preview: %v", err)
			return
		}
		log.Infof("preview written to %s", path)
	}
}
