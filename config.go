package gekko

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/gizmo/editor/gizmo"
)

var ErrInvalidConfig = errors.New("invalid editor config")

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraConfig struct {
	Position mgl32.Vec3 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

type GizmoConfig struct {
	// Table is a handle table file, empty for the built-in one.
	Table        string  `yaml:"table"`
	Scale        float32 `yaml:"scale"`
	MinFacing    float32 `yaml:"min_facing"`
	TrailSeconds float32 `yaml:"trail_seconds"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix"`
	Debug  bool   `yaml:"debug"`
}

// EditorConfig configures the gizmo demo and snapshot tools.
type EditorConfig struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Gizmo  GizmoConfig  `yaml:"gizmo"`
	Log    LogConfig    `yaml:"log"`
}

func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "Gekko gizmo"},
		Camera: CameraConfig{
			Position: mgl32.Vec3{4, 4, 8},
			Yaw:      -26.5,
			Pitch:    -22,
			Fov:      60,
			Near:     0.1,
			Far:      1000,
		},
		Gizmo: GizmoConfig{Scale: 1, MinFacing: gizmo.DefaultMinFacing, TrailSeconds: 1.5},
		Log:   LogConfig{Prefix: "gizmo"},
	}
}

// LoadEditorConfig decodes YAML over the defaults.
func LoadEditorConfig(r io.Reader) (EditorConfig, error) {
	cfg := DefaultEditorConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode editor config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadEditorConfigFile reads path. A missing file returns the defaults
// together with an error wrapping os.ErrNotExist.
func LoadEditorConfigFile(path string) (EditorConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultEditorConfig(), fmt.Errorf("open editor config: %w", err)
	}
	defer f.Close()
	return LoadEditorConfig(f)
}

func (c EditorConfig) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height))
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		err = multierr.Append(err, fmt.Errorf("%w: camera fov %v", ErrInvalidConfig, c.Camera.Fov))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		err = multierr.Append(err, fmt.Errorf("%w: camera clip range %v..%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far))
	}
	if c.Gizmo.Scale <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: gizmo scale %v", ErrInvalidConfig, c.Gizmo.Scale))
	}
	if c.Gizmo.MinFacing < 0 || c.Gizmo.MinFacing >= 1 {
		err = multierr.Append(err, fmt.Errorf("%w: gizmo min_facing %v", ErrInvalidConfig, c.Gizmo.MinFacing))
	}
	if c.Gizmo.TrailSeconds < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: gizmo trail_seconds %v", ErrInvalidConfig, c.Gizmo.TrailSeconds))
	}
	return err
}

func (c EditorConfig) MakeCamera() CameraComponent {
	return CameraComponent{
		Position: c.Camera.Position,
		Yaw:      c.Camera.Yaw,
		Pitch:    c.Camera.Pitch,
		Fov:      c.Camera.Fov,
		Near:     c.Camera.Near,
		Far:      c.Camera.Far,
	}
}

// HandleTable loads the configured handle table, or the built-in one.
func (c EditorConfig) HandleTable() (*gizmo.Table, error) {
	if c.Gizmo.Table == "" {
		return gizmo.DefaultTable(), nil
	}
	return gizmo.LoadTableFile(c.Gizmo.Table)
}

func (c EditorConfig) LoggingModule() LoggingModule {
	return LoggingModule{Prefix: c.Log.Prefix, Debug: c.Log.Debug}
}

// GizmoModule builds the translate gizmo module with the configured table.
func (c EditorConfig) GizmoModule() (TranslateGizmoModule, error) {
	table, err := c.HandleTable()
	if err != nil {
		return TranslateGizmoModule{}, err
	}
	return TranslateGizmoModule{
		Table:        table,
		Scale:        c.Gizmo.Scale,
		MinFacing:    c.Gizmo.MinFacing,
		TrailSeconds: c.Gizmo.TrailSeconds,
	}, nil
}
