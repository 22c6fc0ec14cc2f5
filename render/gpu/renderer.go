// Package gpu draws shaded objects with WebGPU.
package gpu

import (
	"fmt"
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const quadVertices = 6

type geometryKind int

const (
	geometryMesh geometryKind = iota
	geometryFlares
	geometryTail
)

// Item is one draw. Exactly one of Mesh, Flares or Tail is set.
type Item struct {
	ID       uuid.UUID
	Program  *core.ShaderProgram
	Uniforms *core.UniformSet
	State    core.RenderState
	Model    mgl32.Mat4
	Mesh     *core.Mesh
	Flares   *core.FlareBuffer
	Tail     *core.TailBuffer
}

func (it *Item) kind() (geometryKind, error) {
	switch {
	case it.Mesh != nil:
		return geometryMesh, nil
	case it.Flares != nil:
		return geometryFlares, nil
	case it.Tail != nil:
		return geometryTail, nil
	default:
		return 0, fmt.Errorf("item %s (%s) has no geometry", it.ID, it.Program.Name)
	}
}

type pipelineKey struct {
	program *core.ShaderProgram
	state   core.RenderState
	kind    geometryKind
}

type objectResources struct {
	kind          geometryKind
	vertexBuf     *wgpu.Buffer
	indexBuf      *wgpu.Buffer
	indexCount    uint32
	instanceCount uint32
	objectBuf     *wgpu.Buffer
	materialBuf   *wgpu.Buffer
	materialBytes []byte
	bindGroup     *wgpu.BindGroup
	lastFrame     uint64
}

func (r *objectResources) release() {
	for _, b := range []*wgpu.Buffer{r.vertexBuf, r.indexBuf, r.objectBuf, r.materialBuf} {
		if b != nil {
			b.Release()
		}
	}
	if r.bindGroup != nil {
		r.bindGroup.Release()
	}
}

// Renderer owns the pipelines and per-object GPU resources. It is not safe for
// concurrent use.
type Renderer struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	format wgpu.TextureFormat

	frameLayout  *wgpu.BindGroupLayout
	objectLayout *wgpu.BindGroupLayout
	layout       *wgpu.PipelineLayout
	frameBuf     *wgpu.Buffer
	frameGroup   *wgpu.BindGroup

	depthTex  *wgpu.Texture
	depthView *wgpu.TextureView
	width     uint32
	height    uint32

	pipelines map[pipelineKey]*wgpu.RenderPipeline
	objects   map[uuid.UUID]*objectResources
	order     []*Item
	frame     uint64
}

func uniformEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		Buffer: wgpu.BufferBindingLayout{
			Type: wgpu.BufferBindingTypeUniform,
		},
	}
}

func NewRenderer(device *wgpu.Device, format wgpu.TextureFormat, width, height uint32) (*Renderer, error) {
	r := &Renderer{
		device:    device,
		queue:     device.GetQueue(),
		format:    format,
		pipelines: make(map[pipelineKey]*wgpu.RenderPipeline),
		objects:   make(map[uuid.UUID]*objectResources),
	}

	var err error
	r.frameLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "FrameBGL",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0)},
	})
	if err != nil {
		return nil, err
	}
	r.objectLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "ObjectBGL",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0), uniformEntry(1)},
	})
	if err != nil {
		return nil, err
	}
	r.layout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "EffectPipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.frameLayout, r.objectLayout},
	})
	if err != nil {
		return nil, err
	}

	r.frameBuf, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "FrameUniforms",
		Contents: FrameUniforms{}.Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	r.frameGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "FrameBG",
		Layout: r.frameLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.frameBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, err
	}

	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Resize recreates the depth target. Zero sizes (minimised window) are ignored.
func (r *Renderer) Resize(width, height uint32) error {
	if width == 0 || height == 0 || (width == r.width && height == r.height) {
		return nil
	}
	if r.depthView != nil {
		r.depthView.Release()
		r.depthTex.Release()
	}
	tex, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("depth texture %dx%d: %w", width, height, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	r.depthTex, r.depthView = tex, view
	r.width, r.height = width, height
	return nil
}

func (r *Renderer) Size() (uint32, uint32) { return r.width, r.height }

func (r *Renderer) pipeline(key pipelineKey) (*wgpu.RenderPipeline, error) {
	if p, ok := r.pipelines[key]; ok {
		return p, nil
	}
	prog := key.program

	vs, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          prog.Name + ".vert",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: prog.VertexSource},
	})
	if err != nil {
		return nil, fmt.Errorf("%s vertex module: %w", prog.Name, err)
	}
	defer vs.Release()
	fs := vs
	if prog.FragmentSource != prog.VertexSource {
		fs, err = r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label:          prog.Name + ".frag",
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: prog.FragmentSource},
		})
		if err != nil {
			return nil, fmt.Errorf("%s fragment module: %w", prog.Name, err)
		}
		defer fs.Release()
	}

	var layout wgpu.VertexBufferLayout
	switch key.kind {
	case geometryMesh:
		layout, err = VertexLayout(core.MeshVertex{}, wgpu.VertexStepModeVertex)
	case geometryFlares:
		layout, err = VertexLayout(core.FlareParticle{}, wgpu.VertexStepModeInstance)
	case geometryTail:
		layout, err = VertexLayout(core.TailParticle{}, wgpu.VertexStepModeInstance)
	}
	if err != nil {
		return nil, err
	}

	p, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  prog.Name,
		Layout: r.layout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: prog.VertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{layout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: prog.FragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    r.format,
					Blend:     blendState(key.state),
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cullMode(key.state.Side),
		},
		DepthStencil: depthStencil(key.state),
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s pipeline: %w", prog.Name, err)
	}
	r.pipelines[key] = p
	return p, nil
}

func (r *Renderer) createResources(it *Item, kind geometryKind) (*objectResources, error) {
	res := &objectResources{kind: kind}
	var err error
	var vertexBytes []byte
	switch kind {
	case geometryMesh:
		vertexBytes = it.Mesh.VertexBytes()
		res.indexCount = uint32(len(it.Mesh.Indices))
		res.indexBuf, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    "Index Buffer",
			Contents: it.Mesh.IndexBytes(),
			Usage:    wgpu.BufferUsageIndex,
		})
		if err != nil {
			return nil, err
		}
	case geometryFlares:
		vertexBytes = it.Flares.Bytes()
		res.instanceCount = uint32(it.Flares.Len())
	case geometryTail:
		vertexBytes = it.Tail.Bytes()
		res.instanceCount = uint32(it.Tail.Len())
	}

	// Empty fields still get a buffer so binding stays uniform.
	if len(vertexBytes) == 0 {
		vertexBytes = make([]byte, 4)
	}
	res.vertexBuf, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Vertex Buffer",
		Contents: vertexBytes,
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		res.release()
		return nil, err
	}

	res.objectBuf, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    it.Program.Name + " object",
		Contents: NewObjectUniforms(it.Model).Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		res.release()
		return nil, err
	}
	res.materialBytes = PackUniforms(nil, it.Uniforms)
	res.materialBuf, err = r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    it.Program.Name + " material",
		Contents: res.materialBytes,
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		res.release()
		return nil, err
	}

	res.bindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  it.Program.Name,
		Layout: r.objectLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: res.objectBuf, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: res.materialBuf, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		res.release()
		return nil, err
	}
	return res, nil
}

// Release frees the GPU resources of a despawned object.
func (r *Renderer) Release(id uuid.UUID) {
	if res, ok := r.objects[id]; ok {
		res.release()
		delete(r.objects, id)
	}
}

// Render draws items into target: opaque meshes first, then transparent effects.
// Resources of objects missing from items are released after the frame.
func (r *Renderer) Render(target *wgpu.TextureView, frame FrameUniforms, items []Item, clear wgpu.Color) error {
	if r.depthView == nil {
		return fmt.Errorf("render target has no size")
	}
	if err := r.queue.WriteBuffer(r.frameBuf, 0, frame.Bytes()); err != nil {
		return err
	}
	r.frame++

	r.order = r.order[:0]
	for i := range items {
		it := &items[i]
		kind, err := it.kind()
		if err != nil {
			return err
		}
		res, ok := r.objects[it.ID]
		if !ok {
			if res, err = r.createResources(it, kind); err != nil {
				return fmt.Errorf("%s resources: %w", it.Program.Name, err)
			}
			r.objects[it.ID] = res
		} else {
			if err := r.queue.WriteBuffer(res.objectBuf, 0, NewObjectUniforms(it.Model).Bytes()); err != nil {
				return err
			}
			res.materialBytes = PackUniforms(res.materialBytes, it.Uniforms)
			if err := r.queue.WriteBuffer(res.materialBuf, 0, res.materialBytes); err != nil {
				return err
			}
		}
		res.lastFrame = r.frame
		r.order = append(r.order, it)
	}
	sort.SliceStable(r.order, func(i, j int) bool {
		return !r.order[i].State.Transparent && r.order[j].State.Transparent
	})

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	pass.SetBindGroup(0, r.frameGroup, nil)

	for _, it := range r.order {
		res := r.objects[it.ID]
		p, err := r.pipeline(pipelineKey{program: it.Program, state: it.State, kind: res.kind})
		if err != nil {
			pass.End()
			pass.Release()
			return err
		}
		pass.SetPipeline(p)
		pass.SetBindGroup(1, res.bindGroup, nil)
		pass.SetVertexBuffer(0, res.vertexBuf, 0, wgpu.WholeSize)

		switch res.kind {
		case geometryMesh:
			if res.indexCount == 0 {
				continue
			}
			pass.SetIndexBuffer(res.indexBuf, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
			pass.DrawIndexed(res.indexCount, 1, 0, 0, 0)
		default:
			if res.instanceCount == 0 {
				continue
			}
			pass.Draw(quadVertices, res.instanceCount, 0, 0)
		}
	}

	if err := pass.End(); err != nil {
		return err
	}
	pass.Release()

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()
	r.queue.Submit(cmdBuffer)

	for id, res := range r.objects {
		if res.lastFrame != r.frame {
			r.Release(id)
		}
	}
	return nil
}

// Close releases every GPU object the renderer created.
func (r *Renderer) Close() {
	for id := range r.objects {
		r.Release(id)
	}
	for _, p := range r.pipelines {
		p.Release()
	}
	clear(r.pipelines)
	if r.depthView != nil {
		r.depthView.Release()
		r.depthTex.Release()
	}
	r.frameGroup.Release()
	r.frameBuf.Release()
	r.layout.Release()
	r.objectLayout.Release()
	r.frameLayout.Release()
}
