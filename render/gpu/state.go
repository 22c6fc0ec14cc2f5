package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/solarfx/render/core"
)

const DepthFormat = wgpu.TextureFormatDepth24Plus

// blendState is nil for opaque draws. Additive matches GL's (SRC_ALPHA, ONE).
func blendState(state core.RenderState) *wgpu.BlendState {
	switch {
	case state.Blending == core.BlendAdditive:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOne,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOne,
			},
		}
	case state.Transparent:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			},
		}
	default:
		return nil
	}
}

func cullMode(side core.Side) wgpu.CullMode {
	switch side {
	case core.SideFront:
		return wgpu.CullModeBack
	case core.SideBack:
		return wgpu.CullModeFront
	default:
		return wgpu.CullModeNone
	}
}

// depthStencil tests every draw against the depth buffer; only opaque state writes it.
func depthStencil(state core.RenderState) *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:            DepthFormat,
		DepthWriteEnabled: state.DepthWrite,
		DepthCompare:      wgpu.CompareFunctionLess,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilReadMask:   0xFFFFFFFF,
		StencilWriteMask:  0xFFFFFFFF,
	}
}
