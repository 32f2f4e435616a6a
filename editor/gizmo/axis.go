package gizmo

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrUnknownAxis     = errors.New("gizmo: unknown axis")
	ErrUnknownMesh     = errors.New("gizmo: unknown mesh")
	ErrUnknownMaterial = errors.New("gizmo: unknown material")
	ErrNoIntersection  = errors.New("gizmo: pointer ray does not hit the drag plane")
)

// AxisName identifies one handle of the translate gizmo.
type AxisName string

const (
	AxisNone AxisName = ""
	AxisX    AxisName = "x"
	AxisY    AxisName = "y"
	AxisZ    AxisName = "z"
	AxisXY   AxisName = "xy"
	AxisYZ   AxisName = "yz"
	AxisXZ   AxisName = "xz"
)

// AllAxes lists the handles in spawn order.
var AllAxes = []AxisName{AxisX, AxisY, AxisZ, AxisXY, AxisYZ, AxisXZ}

var axisMasks = map[AxisName][]int{
	AxisX:  {0},
	AxisY:  {1},
	AxisZ:  {2},
	AxisXY: {0, 1},
	AxisYZ: {1, 2},
	AxisXZ: {0, 2},
}

var axisPlaneNormals = map[AxisName]mgl32.Vec3{
	AxisX:  {0, 1, 0},
	AxisY:  {0, 0, 1},
	AxisZ:  {0, 1, 0},
	AxisXY: {0, 0, 1},
	AxisYZ: {1, 0, 0},
	AxisXZ: {0, 1, 0},
}

func ParseAxis(s string) (AxisName, error) {
	a := AxisName(s)
	if !a.Valid() {
		return AxisNone, fmt.Errorf("%w: %q", ErrUnknownAxis, s)
	}
	return a, nil
}

func (a AxisName) Valid() bool {
	_, ok := axisMasks[a]
	return ok
}

// IsPlane reports whether the handle moves along two components at once.
func (a AxisName) IsPlane() bool {
	return len(axisMasks[a]) == 2
}

// Mask returns the position component indices the handle is allowed to change.
func (a AxisName) Mask() []int {
	return axisMasks[a]
}

// Direction is the unit vector of a single-axis handle. Plane handles return zero.
func (a AxisName) Direction() mgl32.Vec3 {
	if a.IsPlane() || !a.Valid() {
		return mgl32.Vec3{}
	}
	var d mgl32.Vec3
	d[axisMasks[a][0]] = 1
	return d
}

// PlaneNormal is the default normal of the plane the pointer is projected on
// while dragging this handle.
func (a AxisName) PlaneNormal() mgl32.Vec3 {
	return axisPlaneNormals[a]
}

// alternateNormal is the other unit normal whose plane still contains the
// axis. Only meaningful for single-axis handles.
func (a AxisName) alternateNormal() mgl32.Vec3 {
	d := a.Direction()
	return d.Cross(a.PlaneNormal())
}

// AxisConfig describes how one handle is built: which meshes it is made of,
// with which material, and each mesh's local pose.
type AxisConfig struct {
	Name         AxisName     `yaml:"name"`
	Meshes       []string     `yaml:"meshes"`
	Material     string       `yaml:"material"`
	HelperMeshes []string     `yaml:"helper_meshes"`
	Rotations    []mgl32.Vec3 `yaml:"rotations"`    // Euler degrees, one per mesh
	Translations []mgl32.Vec3 `yaml:"translations"` // one per mesh
}

// Pose returns the local rotation (degrees) and translation of mesh i.
// Helper meshes share the first pose.
func (c AxisConfig) Pose(i int) (mgl32.Vec3, mgl32.Vec3) {
	if i < 0 || i >= len(c.Rotations) || i >= len(c.Translations) {
		i = 0
	}
	if len(c.Rotations) == 0 || len(c.Translations) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	return c.Rotations[i], c.Translations[i]
}
