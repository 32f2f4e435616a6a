package gekko

// maxHierarchyPasses bounds how deep a change can travel in one frame.
const maxHierarchyPasses = 8

type HierarchyModule struct{}

func (HierarchyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(TransformHierarchySystem).
			InStage(PostUpdate),
	)
}

func TransformHierarchySystem(cmd *Commands) {
	// Roots: the world transform is authoritative, the local one mirrors it.
	MakeQuery2[LocalTransformComponent, TransformComponent](cmd).Without(Parent{}).Map(func(eid EntityId, local *LocalTransformComponent, tr *TransformComponent) bool {
		local.Position = tr.Position
		local.Rotation = tr.Rotation
		local.Scale = tr.Scale
		return true
	})

	// Children: iterate until nothing changes to handle deep hierarchies.
	for pass := 0; pass < maxHierarchyPasses; pass++ {
		changed := false
		MakeQuery3[LocalTransformComponent, Parent, TransformComponent](cmd).Map(func(eid EntityId, local *LocalTransformComponent, parent *Parent, world *TransformComponent) bool {
			parentWorld, ok := getComponent[TransformComponent](cmd.app.ecs, parent.Entity)
			if !ok {
				return true
			}

			next := parentWorld.Compose(*local)
			if next != *world {
				*world = next
				changed = true
			}
			return true
		})
		if !changed {
			break
		}
	}
}
