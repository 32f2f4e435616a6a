package gekko

// LifetimeComponent allows an entity to automatically be removed after a set duration.
type LifetimeComponent struct {
	TimeLeft float32
}

type LifecycleModule struct{}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(lifetimeSystem).
			InStage(PostUpdate),
	)
}

func lifetimeSystem(time *Time, cmd *Commands) {
	dt := float32(time.Dt.Seconds())
	if dt <= 0 {
		return
	}
	MakeQuery1[LifetimeComponent](cmd).Map(func(eid EntityId, lt *LifetimeComponent) bool {
		lt.TimeLeft -= dt
		if lt.TimeLeft <= 0 {
			cmd.Logger().Debugf("lifecycle: removing entity %v", eid)
			cmd.RemoveEntity(eid)
		}
		return true
	})
}
