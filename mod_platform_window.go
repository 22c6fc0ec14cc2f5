package solarfx

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the shared GLFW window. Size is the framebuffer size in pixels.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
	resized      bool
}

// PlatformWindowModule provides the WindowState resource. Installing it twice
// keeps the first window.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewPlatformWindow(cfg WindowConfig) PlatformWindowModule {
	return PlatformWindowModule{Width: cfg.Width, Height: cfg.Height, Title: cfg.Title}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}
	width, height, title := m.Width, m.Height, m.Title
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "solarfx"
	}

	ws, err := createWindowState(width, height, title)
	if err != nil {
		panic(err)
	}
	cmd.AddResources(ws)
	app.Logger().Infof("created window %dx%d %q", ws.WindowWidth, ws.WindowHeight, title)
}

// createWindowState must run on the main thread; GLFW requires it.
func createWindowState(width, height int, title string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // WebGPU draws, not OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}

	fbw, fbh := win.GetFramebufferSize()
	ws := &WindowState{
		windowGlfw:   win,
		WindowWidth:  fbw,
		WindowHeight: fbh,
		windowTitle:  title,
	}
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ws.WindowWidth, ws.WindowHeight = width, height
		ws.resized = true
	})
	return ws, nil
}

func (ws *WindowState) Aspect() float32 {
	if ws.WindowHeight == 0 {
		return 1
	}
	return float32(ws.WindowWidth) / float32(ws.WindowHeight)
}

func (ws *WindowState) ShouldClose() bool {
	return ws.windowGlfw.ShouldClose()
}

func (ws *WindowState) destroy() {
	ws.windowGlfw.Destroy()
	glfw.Terminate()
}
