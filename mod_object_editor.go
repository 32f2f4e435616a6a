package gekko

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gizmo/editor/gizmo"
)

// EditorSelectedComponent marks an entity as selected by the object editor
type EditorSelectedComponent struct{}

// SelectableComponent makes an entity clickable. It is picked as a sphere
// of Radius around its world position, scaled by the largest scale axis.
type SelectableComponent struct {
	Radius float32
}

// ObjectEditorModule selects Selectable entities with the left mouse button.
// Clicks on a gizmo handle keep the current selection.
type ObjectEditorModule struct{}

func (m ObjectEditorModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(EditorSelectionSystem).
			InStage(PreUpdate),
	)
}

func EditorSelectionSystem(cmd *Commands, input *Input) {
	if !input.JustPressed[MouseButtonLeft] || input.MouseCaptured {
		return
	}
	if input.WindowWidth <= 0 || input.WindowHeight <= 0 {
		return
	}

	camera, ok := ActiveCamera(cmd)
	if !ok {
		return
	}
	ray := camera.ScreenToWorldRay(input.MouseX, input.MouseY, input.WindowWidth, input.WindowHeight)

	// Don't select if we click a gizmo
	hitHandle := false
	MakeQuery1[TranslateControl](cmd).Map(func(eid EntityId, control *TranslateControl) bool {
		if control.Selected == 0 {
			return true
		}
		if _, _, hit := PickGizmo(cmd, eid, ray); hit {
			hitHandle = true
			return false
		}
		return true
	})
	if hitHandle {
		return
	}

	if eid, ok := pickSelectable(cmd, ray); ok {
		SelectEntity(cmd, eid)
	} else {
		// Clicked empty space, clear all
		ClearSelection(cmd)
	}
}

func pickSelectable(cmd *Commands, ray gizmo.Ray) (EntityId, bool) {
	var best EntityId
	minT := float32(math.MaxFloat32)

	MakeQuery2[SelectableComponent, TransformComponent](cmd).Map(func(eid EntityId, sel *SelectableComponent, tr *TransformComponent) bool {
		scale := max(tr.Scale.X(), tr.Scale.Y(), tr.Scale.Z())
		if scale <= 0 {
			scale = 1
		}
		if t, hit := intersectSphere(ray, tr.Position, sel.Radius*scale); hit && t < minT {
			minT = t
			best = eid
		}
		return true
	})
	return best, best != 0
}

func intersectSphere(ray gizmo.Ray, center mgl32.Vec3, radius float32) (float32, bool) {
	dir := ray.Direction.Normalize()
	oc := center.Sub(ray.Origin)
	tca := oc.Dot(dir)
	d2 := oc.Dot(oc) - tca*tca
	r2 := radius * radius
	if d2 > r2 {
		return 0, false
	}
	thc := float32(math.Sqrt(float64(r2 - d2)))
	t := tca - thc
	if t < 0 {
		t = tca + thc
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// SelectEntity makes eid the only selected entity.
func SelectEntity(cmd *Commands, eid EntityId) {
	MakeQuery1[EditorSelectedComponent](cmd).Map(func(other EntityId, s *EditorSelectedComponent) bool {
		if other != eid {
			cmd.RemoveComponents(other, EditorSelectedComponent{})
		}
		return true
	})
	cmd.AddComponents(eid, EditorSelectedComponent{})
}

func ClearSelection(cmd *Commands) {
	MakeQuery1[EditorSelectedComponent](cmd).Map(func(eid EntityId, s *EditorSelectedComponent) bool {
		cmd.RemoveComponents(eid, EditorSelectedComponent{})
		return true
	})
}

// SelectedEntity returns the selected entity with a transform, or 0. With
// several selected the lowest id wins.
func SelectedEntity(cmd *Commands) EntityId {
	var selected EntityId
	MakeQuery2[EditorSelectedComponent, TransformComponent](cmd).Map(func(eid EntityId, s *EditorSelectedComponent, tr *TransformComponent) bool {
		if selected == 0 || eid < selected {
			selected = eid
		}
		return true
	})
	return selected
}

// SetParent attaches child to parent, keeping the child's world transform.
func SetParent(cmd *Commands, child, parent EntityId) bool {
	childWorld, foundChild := GetComponent[TransformComponent](cmd, child)
	parentWorld, foundParent := GetComponent[TransformComponent](cmd, parent)
	if !foundChild || !foundParent {
		return false
	}

	// Calculate local transform
	localPos := parentWorld.InverseTransformPoint(childWorld.Position)
	localRot := parentWorld.Rotation.Conjugate().Mul(childWorld.Rotation).Normalize()
	localScale := mgl32.Vec3{
		childWorld.Scale.X() / (parentWorld.Scale.X() + 1e-6),
		childWorld.Scale.Y() / (parentWorld.Scale.Y() + 1e-6),
		childWorld.Scale.Z() / (parentWorld.Scale.Z() + 1e-6),
	}
	cmd.AddComponents(child, &Parent{Entity: parent}, &LocalTransformComponent{
		Position: localPos,
		Rotation: localRot,
		Scale:    localScale,
	})
	return true
}
