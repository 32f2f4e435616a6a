package gekko

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/gizmo/editor/preview"
)

func TestCollectScene(t *testing.T) {
	f := newGizmoFixture(t, defaultCamera())
	grid := len(preview.Grid(5, 1, [4]float32{}))

	scene := CollectScene(f.cmd, f.camera)
	assert.Len(t, scene.Primitives, grid, "hidden gizmo draws nothing")
	assert.Empty(t, scene.Labels)

	f.spawnSelected(mgl32.Vec3{})
	f.app.Step()

	scene = CollectScene(f.cmd, f.camera)
	// Three shafts, six arrow heads and three plane handles drawn as fill plus outline.
	assert.Len(t, scene.Primitives, grid+3+6+6)
	texts := make([]string, 0, len(scene.Labels))
	for _, l := range scene.Labels {
		texts = append(texts, l.Text)
	}
	assert.ElementsMatch(t, []string{"X", "Y", "Z"}, texts)

	img := preview.Render(scene, 160, 120)
	assert.Equal(t, 160, img.Bounds().Dx())
}

func TestGizmoPrimitives_Shapes(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 10}, 0, 0)
	tr := NewTransform(mgl32.Vec3{})

	assert.Len(t, gizmoPrimitives(cam, tr, NewGizmoCube(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, [4]float32{1, 1, 1, 1})), 12)
	assert.Len(t, gizmoPrimitives(cam, tr, NewGizmoSphere(mgl32.Vec3{}, 1, [4]float32{1, 1, 1, 1})), 3)

	line := gizmoPrimitives(cam, tr, NewGizmoLine(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, [4]float32{1, 0, 0, 1}))
	if assert.Len(t, line, 1) {
		assert.Equal(t, preview.Stroke, line[0].Kind)
		assert.InDelta(t, 10.0, line[0].Depth, 1e-4)
	}

	// A cone pointing at the camera degenerates to a facing triangle, not nothing.
	cone := GizmoComponent{Type: GizmoCone, LineEnd: mgl32.Vec3{0, 0, 1}, Radius: 0.1, Color: [4]float32{1, 1, 1, 1}}
	prims := gizmoPrimitives(cam, tr, cone)
	if assert.Len(t, prims, 1) {
		assert.Equal(t, preview.Fill, prims[0].Kind)
		assert.Len(t, prims[0].Points, 3)
	}
}
