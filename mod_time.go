package gekko

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration

	now func() time.Time
}

type TimeModule struct {
	// Now replaces the wall clock, e.g. for deterministic tests.
	Now func() time.Time
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	now := mod.Now
	if now == nil {
		now = time.Now
	}
	cmd.AddResources(&Time{
		Time: now(),
		Dt:   0,
		now:  now,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude),
	)
}

func timeSystem(timeResource *Time) {
	now := timeResource.now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
}
