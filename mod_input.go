package gekko

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// keyCount is the number of key and button codes tracked by Input.
const keyCount = MouseButtonMiddle + 1

type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY float64

	// MouseDeltaX and MouseDeltaY are the cursor movement since the previous
	// frame, captured or not.
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool

	WindowWidth, WindowHeight int

	cursorSeen bool
}

// InputSource is the platform side of input: a window, or a script.
type InputSource interface {
	Poll()
	KeyDown(key int) bool
	CursorPos() (float64, float64)
	WindowSize() (int, int)
	ShouldClose() bool
}

// InputDevice holds the active InputSource as a resource.
type InputDevice struct {
	Source InputSource
}

// InputModule feeds Input from Source. Without a Source it reads the shared
// GLFW window, creating one if PlatformWindowModule did not run before.
type InputModule struct {
	Source InputSource
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	src := mod.Source
	if src == nil {
		ws, ok := Resource[WindowState](app)
		if !ok {
			NewPlatformWindow(0, 0, "").Install(app, cmd)
			ws, _ = Resource[WindowState](app)
		}
		src = newGlfwInputSource(ws)
	}

	cmd.AddResources(&Input{}, &InputDevice{Source: src})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(cmd *Commands, input *Input, device *InputDevice) {
	src := device.Source
	src.Poll()

	if src.ShouldClose() {
		cmd.Exit()
	}

	for key := 0; key < keyCount; key++ {
		down := src.KeyDown(key)

		input.JustPressed[key] = down && !input.Pressed[key]
		input.JustReleased[key] = !down && input.Pressed[key]
		input.Pressed[key] = down
	}

	mx, my := src.CursorPos()
	if input.cursorSeen {
		input.MouseDeltaX = mx - input.MouseX
		input.MouseDeltaY = my - input.MouseY
	}
	input.cursorSeen = true
	input.MouseX = mx
	input.MouseY = my

	input.WindowWidth, input.WindowHeight = src.WindowSize()
}
