package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestVertexLayoutFromTags(t *testing.T) {
	layout, err := VertexLayout(core.FlareParticle{}, wgpu.VertexStepModeInstance)
	require.NoError(t, err)
	assert.Equal(t, uint64(28), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, layout.StepMode)
	require.Len(t, layout.Attributes, 5)

	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout.Attributes[0].Format)
	for i, want := range []uint64{0, 12, 16, 20, 24} {
		assert.Equal(t, want, layout.Attributes[i].Offset)
		assert.Equal(t, uint32(i), layout.Attributes[i].ShaderLocation)
	}
	assert.Equal(t, wgpu.VertexFormatFloat32, layout.Attributes[4].Format)

	mesh, err := VertexLayout(core.MeshVertex{}, wgpu.VertexStepModeVertex)
	require.NoError(t, err)
	assert.Equal(t, uint64(24), mesh.ArrayStride)
	assert.Equal(t, uint64(12), mesh.Attributes[1].Offset)
}

func TestVertexLayoutErrors(t *testing.T) {
	_, err := VertexLayout(42, wgpu.VertexStepModeVertex)
	assert.Error(t, err)

	type bad struct {
		P float64 `fx:"layout" format:"double" location:"0"`
	}
	_, err = VertexLayout(bad{}, wgpu.VertexStepModeVertex)
	assert.Error(t, err)

	type noLocation struct {
		P float32 `fx:"layout" format:"float"`
	}
	_, err = VertexLayout(noLocation{}, wgpu.VertexStepModeVertex)
	assert.Error(t, err)
}

func TestUniformLayoutFollowsWGSLRules(t *testing.T) {
	offsets, size := UniformLayout(shaders.Atmosphere.Uniforms)
	assert.Equal(t, []int{0, 12, 16}, offsets)
	assert.Equal(t, 32, size)

	offsets, size = UniformLayout(shaders.SolarFlare.Uniforms)
	assert.Equal(t, []int{0, 12}, offsets)
	assert.Equal(t, 16, size)

	offsets, size = UniformLayout(shaders.CometTail.Uniforms)
	assert.Equal(t, []int{0, 12, 16, 20, 24, 28}, offsets)
	assert.Equal(t, 32, size)

	// vec3 after a scalar realigns to 16
	offsets, size = UniformLayout(shaders.Basic.Uniforms)
	assert.Equal(t, []int{0, 12, 16}, offsets)
	assert.Equal(t, 32, size)
}

func TestPackUniforms(t *testing.T) {
	set := shaders.CometTail.NewUniforms()
	require.NoError(t, set.SetFloat(shaders.UniformDistanceToSun, 5))

	packed := PackUniforms(nil, set)
	_, size := UniformLayout(shaders.CometTail.Uniforms)
	require.Len(t, packed, size)

	assert.Equal(t, float32(0.8), f32At(packed, 0))
	assert.Equal(t, float32(1.2), f32At(packed, 8))
	assert.Equal(t, float32(5), f32At(packed, 16))
	assert.Equal(t, float32(1.5), f32At(packed, 24))
	assert.Equal(t, float32(0.08), f32At(packed, 28))

	basic := PackUniforms(nil, shaders.Basic.NewUniforms())
	assert.Equal(t, float32(0.08), f32At(basic, 12))
	assert.Equal(t, float32(0), f32At(basic, 16))
}

func TestPackUniformsReusesBuffer(t *testing.T) {
	set := shaders.SolarFlare.NewUniforms()
	buf := PackUniforms(nil, set)
	require.NoError(t, set.SetFloat(shaders.UniformTime, 2.5))

	again := PackUniforms(buf, set)
	assert.Equal(t, &buf[0], &again[0])
	assert.Equal(t, float32(2.5), f32At(again, 12))
}

func TestFrameAndObjectUniformBytes(t *testing.T) {
	frame := NewFrameUniforms(mgl32.Ident4(), mgl32.Ident4(), 800, 600)
	raw := frame.Bytes()
	require.Len(t, raw, 2*64+16)
	assert.Equal(t, float32(1), f32At(raw, 0))
	assert.Equal(t, float32(800), f32At(raw, 128))
	assert.Equal(t, float32(600), f32At(raw, 132))

	zero := NewFrameUniforms(mgl32.Ident4(), mgl32.Ident4(), 0, 0)
	assert.Equal(t, mgl32.Vec2{1, 1}, zero.Viewport)

	obj := NewObjectUniforms(mgl32.Translate3D(1, 2, 3))
	raw = obj.Bytes()
	require.Len(t, raw, 128)
	assert.Equal(t, float32(3), f32At(raw, 14*4))
	// translation does not reach the normal matrix
	assert.Equal(t, float32(0), f32At(raw, 64+14*4))
}

func TestRenderStateMapping(t *testing.T) {
	fx := core.EffectRenderState(core.SideFront)
	blend := blendState(fx)
	require.NotNil(t, blend)
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, blend.Color.SrcFactor)
	assert.Equal(t, wgpu.BlendFactorOne, blend.Color.DstFactor)
	assert.False(t, depthStencil(fx).DepthWriteEnabled)

	solid := core.OpaqueRenderState()
	assert.Nil(t, blendState(solid))
	assert.True(t, depthStencil(solid).DepthWriteEnabled)

	assert.Equal(t, wgpu.CullModeBack, cullMode(core.SideFront))
	assert.Equal(t, wgpu.CullModeFront, cullMode(core.SideBack))
	assert.Equal(t, wgpu.CullModeNone, cullMode(core.SideDouble))
}

func TestItemKind(t *testing.T) {
	it := Item{Program: shaders.CometTail, Tail: core.NewTailBuffer(nil)}
	kind, err := it.kind()
	require.NoError(t, err)
	assert.Equal(t, geometryTail, kind)

	empty := Item{Program: shaders.Basic}
	_, err = empty.kind()
	assert.Error(t, err)
}
