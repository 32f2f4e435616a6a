package gizmo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// targetsFor places the helper meshes of the default table at pos.
func targetsFor(t *testing.T, table *Table, pos mgl32.Vec3, scale float32) []PickTarget {
	t.Helper()
	var targets []PickTarget
	for _, cfg := range table.Axes {
		for _, mesh := range cfg.HelperMeshes {
			shape, err := table.Shape(mesh)
			require.NoError(t, err)
			rot, offset := cfg.Pose(0)
			targets = append(targets, PickTarget{
				Axis:     cfg.Name,
				Shape:    shape,
				Position: pos.Add(offset.Mul(scale)),
				Rotation: EulerToQuat(rot),
				Scale:    scale,
			})
		}
	}
	return targets
}

func TestPick_Axes(t *testing.T) {
	table := DefaultTable()
	targets := targetsFor(t, table, mgl32.Vec3{}, 1)
	eye := mgl32.Vec3{0.3, 10, 0.3}

	cases := []struct {
		name   string
		ray    Ray
		expect AxisName
	}{
		{"x shaft", rayThrough(mgl32.Vec3{0, 10, 0.001}, mgl32.Vec3{1.2, 0, 0}), AxisX},
		{"z shaft", rayThrough(mgl32.Vec3{0.001, 10, 0}, mgl32.Vec3{0, 0, -1.0}), AxisZ},
		{"xz plane", rayThrough(eye, mgl32.Vec3{0.5, 0, 0.5}), AxisXZ},
		{"y shaft from the side", rayThrough(mgl32.Vec3{0, 1, 10}, mgl32.Vec3{0, 1, 0}), AxisY},
		{"xy plane from the front", rayThrough(mgl32.Vec3{0.5, 0.5, 10}, mgl32.Vec3{0.5, 0.5, 0}), AxisXY},
		{"yz plane from the side", rayThrough(mgl32.Vec3{10, 0.5, 0.5}, mgl32.Vec3{0, 0.5, 0.5}), AxisYZ},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			axis, dist, ok := Pick(tc.ray, targets)
			require.True(t, ok)
			assert.Equal(t, tc.expect, axis)
			assert.Greater(t, dist, float32(0))
		})
	}
}

func TestPick_Miss(t *testing.T) {
	table := DefaultTable()
	targets := targetsFor(t, table, mgl32.Vec3{}, 1)

	_, _, ok := Pick(rayThrough(mgl32.Vec3{5, 10, 5}, mgl32.Vec3{5, 0, 5}), targets)
	assert.False(t, ok)

	// Behind the camera.
	_, _, ok = Pick(Ray{Origin: mgl32.Vec3{1, 5, 0}, Direction: mgl32.Vec3{0, 1, 0}}, targets)
	assert.False(t, ok)
}

func TestPick_ScaleAndPosition(t *testing.T) {
	table := DefaultTable()
	pos := mgl32.Vec3{10, 0, 0}

	// At scale 1 the X helper ends at 11.8.
	_, _, ok := Pick(rayThrough(mgl32.Vec3{13, 10, 0}, mgl32.Vec3{13, 0, 0}), targetsFor(t, table, pos, 1))
	assert.False(t, ok)

	axis, _, ok := Pick(rayThrough(mgl32.Vec3{13, 10, 0}, mgl32.Vec3{13, 0, 0}), targetsFor(t, table, pos, 2))
	require.True(t, ok)
	assert.Equal(t, AxisX, axis)
}

func TestPick_ClosestWins(t *testing.T) {
	near := PickTarget{Axis: AxisX, Shape: Shape{Kind: ShapeQuad, HalfSize: 1}, Position: mgl32.Vec3{0, 1, 0}, Rotation: mgl32.QuatIdent(), Scale: 1}
	far := PickTarget{Axis: AxisY, Shape: Shape{Kind: ShapeQuad, HalfSize: 1}, Position: mgl32.Vec3{0, 0, 0}, Rotation: mgl32.QuatIdent(), Scale: 1}
	ray := Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, -1, 0}}

	axis, dist, ok := Pick(ray, []PickTarget{far, near})
	require.True(t, ok)
	assert.Equal(t, AxisX, axis)
	assert.InDelta(t, 4.0, dist, 1e-5)
}

func TestPickTarget_Cone(t *testing.T) {
	cone := PickTarget{Axis: AxisY, Shape: Shape{Kind: ShapeCone, Length: 0.3, Radius: 0.1}, Position: mgl32.Vec3{0, 1.5, 0}, Rotation: mgl32.QuatIdent(), Scale: 1}

	_, ok := cone.Hit(rayThrough(mgl32.Vec3{0, 1.6, 10}, mgl32.Vec3{0, 1.6, 0}))
	assert.True(t, ok)

	_, ok = cone.Hit(rayThrough(mgl32.Vec3{0, 1.4, 10}, mgl32.Vec3{0, 1.4, 0}))
	assert.False(t, ok)
}

func TestIntersectPlane(t *testing.T) {
	ray := Ray{Origin: mgl32.Vec3{0, 3, 0}, Direction: mgl32.Vec3{0, -1, 0}}
	d, ok := ray.IntersectPlane(Plane{Normal: mgl32.Vec3{0, 1, 0}, Point: mgl32.Vec3{5, 1, 5}})
	require.True(t, ok)
	assert.InDelta(t, 2.0, d, 1e-6)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, ray.PointAt(d))

	_, ok = ray.IntersectPlane(Plane{Normal: mgl32.Vec3{1, 0, 0}})
	assert.False(t, ok, "parallel")
}

func TestClosestPoints(t *testing.T) {
	tRay, s, d := ClosestPoints(mgl32.Vec3{2, 5, 0}, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 5.0, tRay, 1e-5)
	assert.InDelta(t, 2.0, s, 1e-5)
	assert.InDelta(t, 0.0, d, 1e-5)

	_, _, d = ClosestPoints(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 1.0, d, 1e-5, "parallel lines")
}
