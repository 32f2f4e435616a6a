package gekko

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FlyingCameraModule moves cameras that carry a FlyingCameraComponent with
// WASD, Space and Shift. Tab toggles mouse look. The right mouse button
// looks around while held.
type FlyingCameraModule struct{}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(FlyingCameraInputSystem).
			InStage(PreUpdate),
	)
	app.UseSystem(
		System(FlyingCameraControlSystem).
			InStage(PostUpdate),
	)
}

type FlyingCameraComponent struct {
	Speed       float32
	Sensitivity float32
	Move        mgl32.Vec3
	Look        mgl32.Vec2
}

func FlyingCameraInputSystem(input *Input, cmd *Commands) {
	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
	}
	looking := input.MouseCaptured || input.Pressed[MouseButtonRight]

	MakeQuery1[FlyingCameraComponent](cmd).Map(func(eid EntityId, fly *FlyingCameraComponent) bool {
		fly.Move = mgl32.Vec3{0, 0, 0}
		if input.Pressed[KeyW] {
			fly.Move[2] += 1
		}
		if input.Pressed[KeyS] {
			fly.Move[2] -= 1
		}
		if input.Pressed[KeyA] {
			fly.Move[0] -= 1
		}
		if input.Pressed[KeyD] {
			fly.Move[0] += 1
		}
		if input.Pressed[KeySpace] {
			fly.Move[1] += 1
		}
		if input.Pressed[KeyShift] {
			fly.Move[1] -= 1
		}

		if looking {
			fly.Look[0] = float32(input.MouseDeltaX)
			fly.Look[1] = float32(input.MouseDeltaY)
		} else {
			fly.Look[0] = 0
			fly.Look[1] = 0
		}

		return true
	})
}

func FlyingCameraControlSystem(cmd *Commands, time *Time) {
	dt := float32(time.Dt.Seconds())
	if dt <= 0 {
		return
	}

	MakeQuery2[CameraComponent, FlyingCameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent, fly *FlyingCameraComponent) bool {
		if fly.Sensitivity == 0 {
			fly.Sensitivity = 0.1
		}

		cam.Yaw += fly.Look[0] * fly.Sensitivity
		cam.Pitch -= fly.Look[1] * fly.Sensitivity
		cam.Pitch = mgl32.Clamp(cam.Pitch, -89, 89)

		if fly.Speed == 0 {
			fly.Speed = 5.0
		}

		forward := cam.Forward()
		right := cam.Right()
		up := mgl32.Vec3{0, 1, 0}

		moveDir := right.Mul(fly.Move[0]).
			Add(up.Mul(fly.Move[1])).
			Add(forward.Mul(fly.Move[2]))

		if moveDir.Len() > 0 {
			cam.Position = cam.Position.Add(moveDir.Normalize().Mul(fly.Speed * dt))
		}
		return true
	})
}
