package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func worldOf(t *testing.T, cmd *Commands, eid EntityId) TransformComponent {
	t.Helper()
	tr, ok := GetComponent[TransformComponent](cmd, eid)
	require.True(t, ok, "entity %d has no transform", eid)
	return tr
}

func TestTransformHierarchy(t *testing.T) {
	app := NewApp()
	app.UseModules(HierarchyModule{})

	cmd := app.Commands()

	parent := cmd.AddEntity(
		&TransformComponent{
			Position: mgl32.Vec3{10, 0, 0},
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
	)
	child := cmd.AddEntity(
		&Parent{Entity: parent},
		&LocalTransformComponent{
			Position: mgl32.Vec3{0, 5, 0},
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
		&TransformComponent{},
	)
	grandchild := cmd.AddEntity(
		&Parent{Entity: child},
		&LocalTransformComponent{
			Position: mgl32.Vec3{0, 0, 2},
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
		&TransformComponent{},
	)
	app.FlushCommands()

	TransformHierarchySystem(cmd)

	assert.Equal(t, mgl32.Vec3{10, 5, 0}, worldOf(t, cmd, child).Position)
	assert.Equal(t, mgl32.Vec3{10, 5, 2}, worldOf(t, cmd, grandchild).Position)

	// Rotate parent 90 deg around Y and move the child off the rotation axis.
	parentTr := worldOf(t, cmd, parent)
	parentTr.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	cmd.AddComponents(parent, parentTr)

	childLocal, ok := GetComponent[LocalTransformComponent](cmd, child)
	require.True(t, ok)
	childLocal.Position = mgl32.Vec3{5, 0, 0}
	cmd.AddComponents(child, childLocal)
	app.FlushCommands()

	TransformHierarchySystem(cmd)

	// WorldPos = (10, 0, 0) + RotY(90) * (5, 0, 0) = (10, 0, -5)
	got := worldOf(t, cmd, child).Position
	assert.InDelta(t, 0, got.Sub(mgl32.Vec3{10, 0, -5}).Len(), 0.001, "got %v", got)
}

func TestTransformHierarchy_ScaleAndRootMirror(t *testing.T) {
	app := NewApp().UseModules(HierarchyModule{})
	cmd := app.Commands()

	root := cmd.AddEntity(
		TransformComponent{Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{2, 2, 2}},
		LocalTransformComponent{},
	)
	child := cmd.AddEntity(
		Parent{Entity: root},
		NewLocalTransform(mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{0.5, 1, 1}),
		TransformComponent{},
	)
	app.Step()

	local, ok := GetComponent[LocalTransformComponent](cmd, root)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, local.Position, "root local mirrors world")

	world := worldOf(t, cmd, child)
	assert.Equal(t, mgl32.Vec3{3, 2, 3}, world.Position)
	assert.Equal(t, mgl32.Vec3{1, 2, 2}, world.Scale)
}

func TestTransformHierarchy_OrphanIsLeftAlone(t *testing.T) {
	app := NewApp().UseModules(HierarchyModule{})
	cmd := app.Commands()

	orphan := cmd.AddEntity(
		Parent{Entity: 999},
		NewLocalTransform(mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}),
		NewTransform(mgl32.Vec3{4, 4, 4}),
	)
	app.Step()

	assert.Equal(t, mgl32.Vec3{4, 4, 4}, worldOf(t, cmd, orphan).Position)
}

func TestTransform_InverseTransformPoint(t *testing.T) {
	parent := TransformComponent{
		Position: mgl32.Vec3{10, 0, 0},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
		Scale:    mgl32.Vec3{2, 2, 2},
	}
	local := mgl32.Vec3{1, 2, 3}
	world := parent.Compose(NewLocalTransform(local, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})).Position

	back := parent.InverseTransformPoint(world)
	assertVecNear(t, back, local, 1e-4)
}
