package solarfx

import (
	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/gpu"
	"github.com/gekko3d/solarfx/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// ShadedObject is a renderable driven by one of the effect programs. Exactly one
// of Mesh, Flares or Tail carries its geometry.
type ShadedObject struct {
	Id       uuid.UUID
	Name     string
	Program  *core.ShaderProgram
	Uniforms *core.UniformSet
	State    core.RenderState

	Mesh   *core.Mesh
	Flares *core.FlareBuffer
	Tail   *core.TailBuffer

	// IsComet marks objects whose distanceToSun follows their position.
	IsComet bool
	// Position is the world position as of the last transform sync.
	Position mgl32.Vec3
}

func newShadedObject(name string, program *core.ShaderProgram, state core.RenderState) *ShadedObject {
	return &ShadedObject{
		Id:       uuid.New(),
		Name:     name,
		Program:  program,
		Uniforms: program.NewUniforms(),
		State:    state,
	}
}

func (o *ShadedObject) HasTimeUniform() bool {
	u, ok := o.Uniforms.Get(shaders.UniformTime)
	return ok && u.Kind == core.UniformFloat
}

func (o *ShadedObject) HasDistanceUniform() bool {
	u, ok := o.Uniforms.Get(shaders.UniformDistanceToSun)
	return ok && u.Kind == core.UniformFloat
}

// DrawItem describes the object for the GPU renderer.
func (o *ShadedObject) DrawItem(model mgl32.Mat4) gpu.Item {
	return gpu.Item{
		ID:       o.Id,
		Program:  o.Program,
		Uniforms: o.Uniforms,
		State:    o.State,
		Model:    model,
		Mesh:     o.Mesh,
		Flares:   o.Flares,
		Tail:     o.Tail,
	}
}

// ShadedComponent attaches a ShadedObject to an entity.
type ShadedComponent struct {
	Object *ShadedObject
}

// MeshComponent is a solid, lit mesh such as a planet or the comet nucleus.
type MeshComponent struct {
	Id       uuid.UUID
	Mesh     *core.Mesh
	Material core.Material
	uniforms *core.UniformSet
}

func NewMeshComponent(mesh *core.Mesh, material core.Material) MeshComponent {
	return MeshComponent{Id: uuid.New(), Mesh: mesh, Material: material}
}

// DrawItem maps the material onto the basic program's uniforms.
func (m *MeshComponent) DrawItem(model mgl32.Mat4) gpu.Item {
	if m.uniforms == nil {
		m.uniforms = shaders.Basic.NewUniforms()
	}
	_ = m.uniforms.SetVec3("baseColor", m.Material.BaseColor)
	_ = m.uniforms.SetVec3("emissive", m.Material.EmissiveColor())
	return gpu.Item{
		ID:       m.Id,
		Program:  shaders.Basic,
		Uniforms: m.uniforms,
		State:    core.OpaqueRenderState(),
		Model:    model,
		Mesh:     m.Mesh,
	}
}
