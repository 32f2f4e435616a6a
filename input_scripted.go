package gekko

// ScriptedInput is an InputSource driven from code, for tests and headless
// runs. Changes become visible to Input on the next poll.
type ScriptedInput struct {
	keys          [keyCount]bool
	mouseX        float64
	mouseY        float64
	width, height int
	closed        bool
	polls         int
}

func NewScriptedInput(width, height int) *ScriptedInput {
	return &ScriptedInput{width: width, height: height}
}

func (s *ScriptedInput) Poll() { s.polls++ }

func (s *ScriptedInput) KeyDown(key int) bool {
	if key < 0 || key >= keyCount {
		return false
	}
	return s.keys[key]
}

func (s *ScriptedInput) CursorPos() (float64, float64) { return s.mouseX, s.mouseY }

func (s *ScriptedInput) WindowSize() (int, int) { return s.width, s.height }

func (s *ScriptedInput) ShouldClose() bool { return s.closed }

// Polls counts how many frames read this source.
func (s *ScriptedInput) Polls() int { return s.polls }

func (s *ScriptedInput) Move(x, y float64) {
	s.mouseX = x
	s.mouseY = y
}

func (s *ScriptedInput) Press(key int) {
	if key >= 0 && key < keyCount {
		s.keys[key] = true
	}
}

func (s *ScriptedInput) Release(key int) {
	if key >= 0 && key < keyCount {
		s.keys[key] = false
	}
}

func (s *ScriptedInput) SetWindowSize(width, height int) {
	s.width = width
	s.height = height
}

// Close makes the app exit on the next frame.
func (s *ScriptedInput) Close() { s.closed = true }
