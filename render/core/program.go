package core

type Blending int

const (
	BlendNormal Blending = iota
	BlendAdditive
)

// Side selects which triangle faces are drawn.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// RenderState is the fixed-function state a material draws with.
type RenderState struct {
	Transparent bool
	DepthWrite  bool
	Blending    Blending
	Side        Side
}

// EffectRenderState is shared by every glow effect: additive, transparent, no depth writes.
func EffectRenderState(side Side) RenderState {
	return RenderState{
		Transparent: true,
		DepthWrite:  false,
		Blending:    BlendAdditive,
		Side:        side,
	}
}

// OpaqueRenderState is used for solid meshes (planets, comet nucleus).
func OpaqueRenderState() RenderState {
	return RenderState{
		Transparent: false,
		DepthWrite:  true,
		Blending:    BlendNormal,
		Side:        SideFront,
	}
}

// ShaderProgram is a vertex/fragment pair plus its uniform schema.
// Programs are process-wide templates; never mutate one after definition.
type ShaderProgram struct {
	Name           string
	VertexSource   string
	FragmentSource string
	VertexEntry    string
	FragmentEntry  string
	Uniforms       []UniformDecl
}

// NewUniforms instantiates the schema defaults into a fresh, unshared set.
func (p *ShaderProgram) NewUniforms() *UniformSet {
	return NewUniformSet(p.Uniforms)
}

func (p *ShaderProgram) Declares(name string) bool {
	for _, d := range p.Uniforms {
		if d.Name == name {
			return true
		}
	}
	return false
}
