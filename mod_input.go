package solarfx

import (
	"github.com/gekko3d/solarfx/render/core"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyEscape int = iota
	KeySpace
	KeyR
	KeyEqual
	KeyMinus
	MouseButtonLeft
	MouseButtonRight
	keyCount
)

var keyToGlfw = map[int]glfw.Key{
	KeyEscape: glfw.KeyEscape,
	KeySpace:  glfw.KeySpace,
	KeyR:      glfw.KeyR,
	KeyEqual:  glfw.KeyEqual,
	KeyMinus:  glfw.KeyMinus,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:  glfw.MouseButtonLeft,
	MouseButtonRight: glfw.MouseButtonRight,
}

// Input is the per-frame keyboard and mouse snapshot.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	// Scroll accumulates wheel movement since the previous frame.
	Scroll float64

	pendingScroll float64
	tracking      bool
}

// press folds the current key or button state into the edge flags.
func (input *Input) press(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

// moveMouse records the cursor. The first sample after startup has no delta.
func (input *Input) moveMouse(x, y float64) {
	if input.tracking {
		input.MouseDeltaX = x - input.MouseX
		input.MouseDeltaY = y - input.MouseY
	}
	input.MouseX, input.MouseY = x, y
	input.tracking = true
}

// CameraControlModule polls the window and drives an orbit camera: drag with
// the left button to orbit, scroll or +/- to zoom, R to reset, Escape to quit.
type CameraControlModule struct {
	// ZoomStep is the distance factor per scroll notch.
	ZoomStep float32
}

func (m CameraControlModule) Install(app *App, cmd *Commands) {
	input := &Input{}
	cmd.AddResources(input)
	if _, ok := Resource[core.CameraState](app); !ok {
		cmd.AddResources(core.NewCameraState())
	}
	step := m.ZoomStep
	if step <= 0 || step >= 1 {
		step = 0.9
	}
	cmd.AddResources(&cameraSettings{zoomStep: step})

	if ws, ok := Resource[WindowState](app); ok {
		ws.windowGlfw.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
			input.pendingScroll += yoff
		})
	}

	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
	app.UseSystem(
		System(cameraControlSystem).
			InStage(Update),
	)
}

type cameraSettings struct {
	zoomStep float32
}

func inputSystem(cmd *Commands, s *WindowState, input *Input) {
	glfw.PollEvents()
	if s.ShouldClose() {
		cmd.Exit()
	}

	for key, glfwKey := range keyToGlfw {
		input.press(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.press(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}
	input.moveMouse(s.windowGlfw.GetCursorPos())

	input.Scroll = input.pendingScroll
	input.pendingScroll = 0
}

func cameraControlSystem(cmd *Commands, input *Input, camera *core.CameraState, settings *cameraSettings) {
	applyCameraInput(input, camera, settings.zoomStep)
	if input.JustPressed[KeyEscape] {
		cmd.Exit()
	}
}

func applyCameraInput(input *Input, camera *core.CameraState, zoomStep float32) {
	if input.Pressed[MouseButtonLeft] {
		camera.Orbit(float32(-input.MouseDeltaX), float32(input.MouseDeltaY))
	}
	if input.Scroll > 0 || input.JustPressed[KeyEqual] {
		camera.Zoom(zoomStep)
	}
	if input.Scroll < 0 || input.JustPressed[KeyMinus] {
		camera.Zoom(1 / zoomStep)
	}
	if input.JustPressed[KeyR] {
		*camera = *core.NewCameraState()
	}
}
