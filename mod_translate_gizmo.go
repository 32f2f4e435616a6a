package gekko

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gizmo/editor/gizmo"
)

// TranslateControl drives one translate gizmo. It lives on the gizmo root
// entity and is called by GizmoInputDispatchSystem, but the hooks can be
// invoked by any input source.
type TranslateControl struct {
	Table     *gizmo.Table
	MinFacing float32
	// TrailSeconds > 0 leaves a fading marker at the drag start.
	TrailSeconds float32

	Selected    EntityId
	HoveredAxis gizmo.AxisName

	root    EntityId
	states  map[gizmo.AxisName]gizmo.HandleState
	session *gizmo.DragSession
	handles map[gizmo.AxisName]EntityId
}

// HandleComponent marks the entity grouping all parts of one axis handle.
type HandleComponent struct {
	Root EntityId
	Axis gizmo.AxisName
}

// HandlePartComponent is one mesh of a handle. Helper parts are invisible
// and only used for picking.
type HandlePartComponent struct {
	Root     EntityId
	Axis     gizmo.AxisName
	Helper   bool
	Mesh     Mesh
	Material Material
	Shape    gizmo.Shape
	Base     [4]float32
}

// DragTrailComponent marks the marker left behind by a finished drag.
type DragTrailComponent struct {
	Entity EntityId
}

func newTranslateControl(table *gizmo.Table, minFacing float32, trail float32, root EntityId) TranslateControl {
	c := TranslateControl{
		Table:        table,
		MinFacing:    minFacing,
		TrailSeconds: trail,
		root:         root,
		states:       make(map[gizmo.AxisName]gizmo.HandleState, len(table.Axes)),
		handles:      make(map[gizmo.AxisName]EntityId, len(table.Axes)),
	}
	for _, cfg := range table.Axes {
		c.states[cfg.Name] = gizmo.HandleDefault
	}
	return c
}

func (c *TranslateControl) Root() EntityId { return c.root }

func (c *TranslateControl) Dragging() bool { return c.session != nil }

// Session returns the active drag, or nil.
func (c *TranslateControl) Session() *gizmo.DragSession { return c.session }

func (c *TranslateControl) State(axis gizmo.AxisName) gizmo.HandleState {
	return c.states[axis]
}

// Handle returns the handle entity of an axis.
func (c *TranslateControl) Handle(axis gizmo.AxisName) (EntityId, bool) {
	eid, ok := c.handles[axis]
	return eid, ok
}

func (c *TranslateControl) setAll(state gizmo.HandleState) {
	for axis := range c.states {
		c.states[axis] = state
	}
}

// OnSelected attaches the gizmo to eid. Zero detaches it.
func (c *TranslateControl) OnSelected(cmd *Commands, eid EntityId) {
	if c.Dragging() {
		c.OnMoveEnd(cmd)
	}
	if c.HoveredAxis != gizmo.AxisNone {
		c.OnHoverEnd(cmd)
	}

	c.Selected = eid
	if eid == 0 {
		cmd.Logger().Debugf("translate gizmo %d: detached", c.root)
		return
	}
	if target, ok := getComponent[TransformComponent](cmd.app.ecs, eid); ok {
		c.snapRoot(cmd, target.Position)
	}
	cmd.Logger().Debugf("translate gizmo %d: attached to entity %d", c.root, eid)
}

func (c *TranslateControl) OnHoverStart(cmd *Commands, axis gizmo.AxisName) {
	if c.Dragging() {
		return
	}
	if _, ok := c.states[axis]; !ok {
		return
	}
	if c.HoveredAxis != gizmo.AxisNone && c.HoveredAxis != axis {
		c.OnHoverEnd(cmd)
	}
	c.HoveredAxis = axis
	c.states[axis] = gizmo.HandleHighlighted
}

func (c *TranslateControl) OnHoverEnd(cmd *Commands) {
	if c.Dragging() || c.HoveredAxis == gizmo.AxisNone {
		return
	}
	c.states[c.HoveredAxis] = gizmo.HandleDefault
	c.HoveredAxis = gizmo.AxisNone
}

// OnMoveStart begins a drag along axis. Nothing happens without a selection
// or when the ray misses the drag plane.
func (c *TranslateControl) OnMoveStart(cmd *Commands, ray gizmo.Ray, axis gizmo.AxisName) {
	if c.Selected == 0 || c.Dragging() {
		return
	}
	target, ok := getComponent[TransformComponent](cmd.app.ecs, c.Selected)
	if !ok {
		return
	}

	session, err := gizmo.BeginDrag(axis, target.Position, ray, c.MinFacing, c.now(cmd))
	if err != nil {
		cmd.Logger().Debugf("translate gizmo %d: no drag on %s: %v", c.root, axis, err)
		return
	}
	c.session = session

	c.setAll(gizmo.HandleInactive)
	c.states[axis] = gizmo.HandleActive
	c.HoveredAxis = gizmo.AxisNone
}

func (c *TranslateControl) OnMove(cmd *Commands, ray gizmo.Ray) {
	if !c.Dragging() {
		return
	}
	target, ok := getComponent[TransformComponent](cmd.app.ecs, c.Selected)
	if !ok {
		return
	}

	pos, ok := c.session.Update(ray, target.Position)
	if !ok {
		return
	}
	moveEntity(cmd, c.Selected, pos)
	c.snapRoot(cmd, pos)
}

func (c *TranslateControl) OnMoveEnd(cmd *Commands) {
	if !c.Dragging() {
		return
	}
	session := c.session
	c.session = nil
	c.setAll(gizmo.HandleDefault)

	elapsed := c.now(cmd).Sub(session.StartedAt)
	cmd.Logger().Infof("moved entity %d along %s from %s to %s in %s",
		c.Selected, session.Axis, fmtVec(session.StartPosition), fmtVec(session.Position()), elapsed.Round(time.Millisecond))

	if c.TrailSeconds > 0 && session.Position() != session.StartPosition {
		marker := NewGizmoSphere(mgl32.Vec3{}, 0.08, [4]float32{1, 1, 1, 0.6})
		cmd.AddEntity(
			NewTransform(session.StartPosition),
			marker,
			DragTrailComponent{Entity: c.Selected},
			LifetimeComponent{TimeLeft: c.TrailSeconds},
		)
	}
}

func (c *TranslateControl) snapRoot(cmd *Commands, pos mgl32.Vec3) {
	if tr := componentPtr[TransformComponent](cmd.app.ecs, c.root); tr != nil {
		tr.Position = pos
	}
}

func (c *TranslateControl) now(cmd *Commands) time.Time {
	if t, ok := GetResource[Time](cmd); ok {
		return t.Time
	}
	return time.Now()
}

// moveEntity writes a world position into the entity. Children get the
// position converted into their parent's space.
func moveEntity(cmd *Commands, eid EntityId, pos mgl32.Vec3) {
	ecs := cmd.app.ecs
	if tr := componentPtr[TransformComponent](ecs, eid); tr != nil {
		tr.Position = pos
	}

	local := componentPtr[LocalTransformComponent](ecs, eid)
	if local == nil {
		return
	}
	if parent := componentPtr[Parent](ecs, eid); parent != nil {
		if parentWorld, ok := getComponent[TransformComponent](ecs, parent.Entity); ok {
			local.Position = parentWorld.InverseTransformPoint(pos)
		}
		return
	}
	local.Position = pos
}

func fmtVec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X(), v.Y(), v.Z())
}

// TranslateGizmoModule spawns a translate gizmo and the systems that drive it.
type TranslateGizmoModule struct {
	// Table defaults to gizmo.DefaultTable().
	Table *gizmo.Table
	// Scale is the uniform size of the gizmo, default 1.
	Scale     float32
	MinFacing float32
	// TrailSeconds > 0 leaves a marker at the drag start for that long.
	TrailSeconds float32
}

func (mod TranslateGizmoModule) Install(app *App, cmd *Commands) {
	table := mod.Table
	if table == nil {
		table = gizmo.DefaultTable()
	}
	scale := mod.Scale
	if scale <= 0 {
		scale = 1
	}
	minFacing := mod.MinFacing
	if minFacing <= 0 {
		minFacing = gizmo.DefaultMinFacing
	}

	AssetServerModule{}.Install(app, cmd)
	server, _ := Resource[AssetServer](app)
	server.RegisterGizmoCatalog(table)

	if _, err := SpawnTranslateGizmo(cmd, server, table, scale, minFacing, mod.TrailSeconds); err != nil {
		panic(err)
	}

	app.UseSystem(
		System(GizmoSelectionSystem).
			InStage(PreUpdate),
	)
	app.UseSystem(
		System(GizmoInputDispatchSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(GizmoAlignSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(GizmoTintSystem).
			InStage(PostRender),
	)
}

// SpawnTranslateGizmo creates the root, one handle per axis and one part per
// mesh and helper mesh. It returns the root entity.
func SpawnTranslateGizmo(cmd *Commands, server *AssetServer, table *gizmo.Table, scale, minFacing, trail float32) (EntityId, error) {
	root := cmd.AddEntity()
	control := newTranslateControl(table, minFacing, trail, root)

	for _, cfg := range table.Axes {
		material, err := server.MaterialByName(cfg.Material)
		if err != nil {
			return 0, fmt.Errorf("axis %s: %w", cfg.Name, err)
		}
		matAsset, err := server.Material(material)
		if err != nil {
			return 0, fmt.Errorf("axis %s: %w", cfg.Name, err)
		}

		handle := cmd.AddEntity(
			HandleComponent{Root: root, Axis: cfg.Name},
			Parent{Entity: root},
			NewLocalTransform(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1}),
			TransformComponent{},
		)
		control.handles[cfg.Name] = handle

		spawn := func(meshName string, pose int, helper bool) error {
			mesh, err := server.MeshByName(meshName)
			if err != nil {
				return fmt.Errorf("axis %s: %w", cfg.Name, err)
			}
			meshAsset, err := server.Mesh(mesh)
			if err != nil {
				return fmt.Errorf("axis %s: %w", cfg.Name, err)
			}
			rot, offset := cfg.Pose(pose)
			visual := NewGizmoFromShape(meshAsset.Shape, matAsset.Color)
			visual.Hidden = true

			cmd.AddEntity(
				HandlePartComponent{
					Root:     root,
					Axis:     cfg.Name,
					Helper:   helper,
					Mesh:     mesh,
					Material: material,
					Shape:    meshAsset.Shape,
					Base:     matAsset.Color,
				},
				visual,
				Parent{Entity: handle},
				NewLocalTransform(offset, gizmo.EulerToQuat(rot), mgl32.Vec3{1, 1, 1}),
				TransformComponent{},
			)
			return nil
		}

		for i, meshName := range cfg.Meshes {
			if err := spawn(meshName, i, false); err != nil {
				return 0, err
			}
		}
		for _, meshName := range cfg.HelperMeshes {
			if err := spawn(meshName, 0, true); err != nil {
				return 0, err
			}
		}
	}

	rootTr := NewTransform(mgl32.Vec3{})
	rootTr.Scale = mgl32.Vec3{scale, scale, scale}
	cmd.AddComponents(root, control, rootTr)
	return root, nil
}

// GizmoSelectionSystem forwards selection changes to the translate controls.
func GizmoSelectionSystem(cmd *Commands) {
	selected := SelectedEntity(cmd)

	MakeQuery1[TranslateControl](cmd).Map(func(eid EntityId, control *TranslateControl) bool {
		if control.Selected != selected {
			control.OnSelected(cmd, selected)
		}
		return true
	})
}

// GizmoInputDispatchSystem turns pointer input into hover and move hooks.
func GizmoInputDispatchSystem(cmd *Commands, input *Input) {
	camera, ok := ActiveCamera(cmd)
	if !ok || input.WindowWidth <= 0 || input.WindowHeight <= 0 {
		return
	}
	ray := camera.ScreenToWorldRay(input.MouseX, input.MouseY, input.WindowWidth, input.WindowHeight)

	MakeQuery1[TranslateControl](cmd).Map(func(eid EntityId, control *TranslateControl) bool {
		if control.Selected == 0 {
			return true
		}

		if input.MouseCaptured && !control.Dragging() {
			// The cursor is steering the camera, not pointing.
			control.OnHoverEnd(cmd)
			return true
		}

		if control.Dragging() {
			if input.Pressed[MouseButtonLeft] {
				control.OnMove(cmd, ray)
				return true
			}
			control.OnMoveEnd(cmd)
			// Re-highlight whatever is under the pointer after release.
			if axis, _, hit := PickGizmo(cmd, eid, ray); hit {
				control.OnHoverStart(cmd, axis)
			}
			return true
		}

		axis, _, hit := PickGizmo(cmd, eid, ray)
		if !hit {
			control.OnHoverEnd(cmd)
			return true
		}
		if axis != control.HoveredAxis {
			control.OnHoverStart(cmd, axis)
		}
		if input.JustPressed[MouseButtonLeft] {
			control.OnMoveStart(cmd, ray, axis)
		}
		return true
	})
}

// PickGizmo tests ray against the helper parts of the gizmo rooted at root.
func PickGizmo(cmd *Commands, root EntityId, ray gizmo.Ray) (gizmo.AxisName, float32, bool) {
	var targets []gizmo.PickTarget
	MakeQuery2[HandlePartComponent, TransformComponent](cmd).Map(func(eid EntityId, part *HandlePartComponent, tr *TransformComponent) bool {
		if part.Root != root || !part.Helper {
			return true
		}
		targets = append(targets, gizmo.PickTarget{
			Axis:     part.Axis,
			Shape:    part.Shape,
			Position: tr.Position,
			Rotation: tr.Rotation,
			Scale:    tr.Scale.X(),
		})
		return true
	})
	return gizmo.Pick(ray, targets)
}

// GizmoAlignSystem keeps each gizmo root on its selected entity.
func GizmoAlignSystem(cmd *Commands) {
	MakeQuery2[TranslateControl, TransformComponent](cmd).Map(func(eid EntityId, control *TranslateControl, tr *TransformComponent) bool {
		if control.Selected == 0 {
			return true
		}
		if target, ok := getComponent[TransformComponent](cmd.app.ecs, control.Selected); ok {
			tr.Position = target.Position
		}
		return true
	})
}

// GizmoTintSystem copies handle state into the visible parts.
func GizmoTintSystem(cmd *Commands) {
	controls := make(map[EntityId]*TranslateControl)
	MakeQuery1[TranslateControl](cmd).Map(func(eid EntityId, control *TranslateControl) bool {
		controls[eid] = control
		return true
	})

	MakeQuery2[HandlePartComponent, GizmoComponent](cmd).Map(func(eid EntityId, part *HandlePartComponent, g *GizmoComponent) bool {
		control, ok := controls[part.Root]
		if !ok {
			return true
		}
		if part.Helper {
			g.Hidden = true
			return true
		}
		g.Hidden = control.Selected == 0
		g.Color = gizmo.Tint(part.Base, control.State(part.Axis), control.Table.Tint)
		return true
	})
}
