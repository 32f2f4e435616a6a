package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scriptedApp(t *testing.T, width, height int) (*App, *ScriptedInput) {
	t.Helper()
	src := NewScriptedInput(width, height)
	app := NewApp().UseModules(InputModule{Source: src})
	return app, src
}

func TestInput_Edges(t *testing.T) {
	app, src := scriptedApp(t, 800, 600)
	input, ok := Resource[Input](app)
	require.True(t, ok)

	src.Press(KeyW)
	app.Step()
	assert.True(t, input.Pressed[KeyW])
	assert.True(t, input.JustPressed[KeyW])
	assert.False(t, input.JustReleased[KeyW])

	app.Step()
	assert.True(t, input.Pressed[KeyW])
	assert.False(t, input.JustPressed[KeyW], "edge lasts one frame")

	src.Release(KeyW)
	app.Step()
	assert.False(t, input.Pressed[KeyW])
	assert.True(t, input.JustReleased[KeyW])

	app.Step()
	assert.False(t, input.JustReleased[KeyW])
	assert.Equal(t, 4, src.Polls())
}

func TestInput_MouseAndWindow(t *testing.T) {
	app, src := scriptedApp(t, 800, 600)
	input, _ := Resource[Input](app)

	src.Move(100, 50)
	app.Step()
	assert.Equal(t, 100.0, input.MouseX)
	assert.Equal(t, 50.0, input.MouseY)
	assert.Equal(t, 800, input.WindowWidth)
	assert.Equal(t, 600, input.WindowHeight)
	assert.Zero(t, input.MouseDeltaX, "first frame has no delta")

	src.Move(110, 45)
	src.SetWindowSize(1024, 768)
	app.Step()
	assert.Equal(t, 10.0, input.MouseDeltaX, "delta without capture")
	assert.Equal(t, -5.0, input.MouseDeltaY)
	assert.Equal(t, 1024, input.WindowWidth)

	input.MouseCaptured = true
	src.Move(100, 45)
	app.Step()
	assert.Equal(t, -10.0, input.MouseDeltaX)
	assert.Zero(t, input.MouseDeltaY)

	app.Step()
	assert.Zero(t, input.MouseDeltaX, "still cursor")

	src.Press(MouseButtonLeft)
	app.Step()
	assert.True(t, input.JustPressed[MouseButtonLeft])
}

func TestInput_CloseExits(t *testing.T) {
	app, src := scriptedApp(t, 10, 10)

	src.Close()
	app.Run()
	assert.Equal(t, uint64(1), app.Frame())
}

func TestScriptedInput_IgnoresUnknownKeys(t *testing.T) {
	src := NewScriptedInput(1, 1)
	assert.NotPanics(t, func() {
		src.Press(-1)
		src.Press(keyCount)
		src.Release(1000)
	})
	assert.False(t, src.KeyDown(-1))
	assert.False(t, src.KeyDown(keyCount))
}
