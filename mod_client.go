package solarfx

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/gpu"
)

const rendererName = "wgpu"

// ClientModule renders every mesh and shaded entity into the shared window with
// WebGPU. It installs the PlatformWindowModule if no window exists yet.
type ClientModule struct {
	Window     WindowConfig
	ClearColor wgpu.Color
}

// GpuState holds the device, the configured surface and the effect renderer.
type GpuState struct {
	instance      *wgpu.Instance
	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	surfaceConfig *wgpu.SurfaceConfiguration
	renderer      *gpu.Renderer

	clear  wgpu.Color
	items  []gpu.Item
	log    Logger
	failed bool
}

func (mod ClientModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, rendererName)
	NewPlatformWindow(mod.Window).Install(app, cmd)
	ws, _ := Resource[WindowState](app)

	gs, err := createGpuState(ws)
	if err != nil {
		app.Logger().Errorf("gpu setup failed: %v", err)
		panic(err)
	}
	gs.clear = mod.ClearColor
	gs.log = app.Logger()
	cmd.AddResources(gs)

	if _, ok := Resource[core.CameraState](app); !ok {
		cmd.AddResources(core.NewCameraState())
	}

	app.UseSystem(
		System(renderSystem).
			InStage(Render),
	)
	app.UseSystem(
		System(clientShutdownSystem).
			InStage(Finale),
	)
}

func createGpuState(s *WindowState) (*GpuState, error) {
	instance := wgpu.CreateInstance(nil)
	// wraps the GLFW window into a wgpu surface
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(s.windowGlfw))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}

	caps := surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("surface reports no usable formats")
	}
	surfaceConfig := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(s.WindowWidth),
		Height:      uint32(s.WindowHeight),
		PresentMode: wgpu.PresentModeFifo, // vsync
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, surfaceConfig)

	renderer, err := gpu.NewRenderer(device, surfaceConfig.Format, surfaceConfig.Width, surfaceConfig.Height)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	return &GpuState{
		instance:      instance,
		surface:       surface,
		adapter:       adapter,
		device:        device,
		surfaceConfig: surfaceConfig,
		renderer:      renderer,
	}, nil
}

func (gs *GpuState) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	gs.surfaceConfig.Width = uint32(width)
	gs.surfaceConfig.Height = uint32(height)
	gs.surface.Configure(gs.adapter, gs.device, gs.surfaceConfig)
	return gs.renderer.Resize(uint32(width), uint32(height))
}

// collectDrawItems gathers every drawable entity. The slice is reused between frames.
func collectDrawItems(cmd *Commands, items []gpu.Item) []gpu.Item {
	items = items[:0]
	MakeQuery2[MeshComponent, TransformComponent](cmd).Map(func(eid EntityId, m *MeshComponent, tr *TransformComponent) bool {
		items = append(items, m.DrawItem(tr.ObjectToWorld()))
		return true
	})
	MakeQuery2[ShadedComponent, TransformComponent](cmd).Map(func(eid EntityId, sc *ShadedComponent, tr *TransformComponent) bool {
		if sc.Object != nil {
			items = append(items, sc.Object.DrawItem(tr.ObjectToWorld()))
		}
		return true
	})
	return items
}

func renderSystem(cmd *Commands, ws *WindowState, gs *GpuState, camera *core.CameraState) {
	if gs.failed {
		return
	}
	if ws.resized {
		ws.resized = false
		if err := gs.resize(ws.WindowWidth, ws.WindowHeight); err != nil {
			gs.log.Errorf("resize: %v", err)
		}
	}
	if ws.WindowWidth <= 0 || ws.WindowHeight <= 0 {
		return
	}

	gs.items = collectDrawItems(cmd, gs.items)
	frame := gpu.NewFrameUniforms(
		camera.GetViewMatrix(),
		camera.GetProjectionMatrix(ws.Aspect()),
		uint32(ws.WindowWidth), uint32(ws.WindowHeight),
	)

	texture, err := gs.surface.GetCurrentTexture()
	if err != nil {
		gs.log.Warnf("GetCurrentTexture failed: %v", err)
		return
	}
	defer texture.Release()
	view, err := texture.CreateView(nil)
	if err != nil {
		gs.log.Warnf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	if err := gs.renderer.Render(view, frame, gs.items, gs.clear); err != nil {
		// Pipeline or resource errors repeat every frame; report once and stop drawing.
		gs.log.Errorf("render: %v", err)
		gs.failed = true
		return
	}
	gs.surface.Present()
}

func clientShutdownSystem(cmd *Commands, ws *WindowState, gs *GpuState) {
	if !cmd.app.Exiting() {
		return
	}
	gs.release()
	ws.destroy()
}

func (gs *GpuState) release() {
	if gs.renderer == nil {
		return
	}
	gs.renderer.Close()
	gs.renderer = nil
	gs.device.Release()
	gs.adapter.Release()
	gs.surface.Release()
	gs.instance.Release()
}
