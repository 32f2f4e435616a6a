package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gizmo/editor/gizmo"
)

func (f *gizmoFixture) click(t *testing.T, world mgl32.Vec3) {
	t.Helper()
	f.pointAt(t, world)
	f.input.Press(MouseButtonLeft)
	f.app.Step()
	f.input.Release(MouseButtonLeft)
	f.app.Step()
}

func TestEditorSelection_Click(t *testing.T) {
	f := newGizmoFixture(t, defaultCamera())
	a := f.cmd.AddEntity(NewTransform(mgl32.Vec3{}), SelectableComponent{Radius: 0.5})
	b := f.cmd.AddEntity(NewTransform(mgl32.Vec3{-3, 0, 0}), SelectableComponent{Radius: 0.5})
	f.app.FlushCommands()

	f.click(t, mgl32.Vec3{})
	assert.Equal(t, a, SelectedEntity(f.cmd))
	assert.Equal(t, a, f.control().Selected)

	f.click(t, mgl32.Vec3{-3, 0, 0})
	assert.Equal(t, b, SelectedEntity(f.cmd))
	_, aSelected := GetComponent[EditorSelectedComponent](f.cmd, a)
	assert.False(t, aSelected, "selection is exclusive")

	// The gizmo sits on b now; clicking its X handle keeps b selected.
	f.click(t, mgl32.Vec3{-1.8, 0, 0})
	assert.Equal(t, b, SelectedEntity(f.cmd))

	f.click(t, mgl32.Vec3{4, -20, -30})
	assert.Zero(t, SelectedEntity(f.cmd))
	assert.Zero(t, f.control().Selected)
}

func TestEditorSelection_IgnoresCapturedMouse(t *testing.T) {
	f := newGizmoFixture(t, defaultCamera())
	a := f.cmd.AddEntity(NewTransform(mgl32.Vec3{}), SelectableComponent{Radius: 0.5})
	f.app.FlushCommands()

	input, _ := Resource[Input](f.app)
	input.MouseCaptured = true
	f.click(t, mgl32.Vec3{})
	assert.Zero(t, SelectedEntity(f.cmd))

	input.MouseCaptured = false
	f.click(t, mgl32.Vec3{})
	assert.Equal(t, a, SelectedEntity(f.cmd))
}

func TestSelectedEntity_LowestId(t *testing.T) {
	app := NewApp()
	cmd := app.Commands()
	first := cmd.AddEntity(NewTransform(mgl32.Vec3{}), EditorSelectedComponent{})
	cmd.AddEntity(NewTransform(mgl32.Vec3{}), EditorSelectedComponent{})
	cmd.AddEntity(EditorSelectedComponent{})
	app.FlushCommands()

	assert.Equal(t, first, SelectedEntity(cmd))

	ClearSelection(cmd)
	app.FlushCommands()
	assert.Zero(t, SelectedEntity(cmd))
}

func TestIntersectSphere(t *testing.T) {
	r := gizmo.Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}}

	d, ok := intersectSphere(r, mgl32.Vec3{}, 1)
	require.True(t, ok)
	assert.InDelta(t, 4.0, d, 1e-5)

	d, ok = intersectSphere(gizmo.Ray{Origin: mgl32.Vec3{}, Direction: mgl32.Vec3{0, 0, -1}}, mgl32.Vec3{}, 1)
	require.True(t, ok, "inside")
	assert.InDelta(t, 1.0, d, 1e-5)

	_, ok = intersectSphere(r, mgl32.Vec3{0, 0, 10}, 1)
	assert.False(t, ok, "behind")

	_, ok = intersectSphere(r, mgl32.Vec3{3, 0, 0}, 1)
	assert.False(t, ok)
}

func TestSetParent_KeepsWorldTransform(t *testing.T) {
	app := NewApp().UseModules(HierarchyModule{})
	cmd := app.Commands()

	parentTr := NewTransform(mgl32.Vec3{10, 0, 0})
	parentTr.Scale = mgl32.Vec3{2, 2, 2}
	parent := cmd.AddEntity(parentTr)
	child := cmd.AddEntity(NewTransform(mgl32.Vec3{14, 0, 0}))
	app.FlushCommands()

	require.True(t, SetParent(cmd, child, parent))
	assert.False(t, SetParent(cmd, child, 999))
	app.FlushCommands()

	p, ok := GetComponent[Parent](cmd, child)
	require.True(t, ok)
	assert.Equal(t, parent, p.Entity)
	local, _ := GetComponent[LocalTransformComponent](cmd, child)
	assertVecNear(t, mgl32.Vec3{2, 0, 0}, local.Position, 1e-4)
	assert.InDelta(t, 0.5, local.Scale.X(), 1e-4)

	app.Step()
	world, _ := GetComponent[TransformComponent](cmd, child)
	assertVecNear(t, mgl32.Vec3{14, 0, 0}, world.Position, 1e-3)
}
