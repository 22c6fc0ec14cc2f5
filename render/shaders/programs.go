package shaders

import (
	"github.com/gekko3d/solarfx/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names shared with the sync pass and factories.
const (
	UniformTime           = "time"
	UniformDistanceToSun  = "distanceToSun"
	UniformGlowColor      = "glowColor"
	UniformIntensity      = "intensity"
	UniformFresnelPower   = "fresnelPower"
	UniformFlareColor     = "flareColor"
	UniformTailColor      = "tailColor"
	UniformTailVisibility = "tailVisibility"
	UniformTailBrightness = "tailBrightness"
	UniformCoreSize       = "coreSize"
)

const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Declaration order below is the member order of the matching WGSL struct.

var Atmosphere = &core.ShaderProgram{
	Name:           "atmosphere",
	VertexSource:   AtmosphereVertexWGSL,
	FragmentSource: AtmosphereFragmentWGSL,
	VertexEntry:    VertexEntry,
	FragmentEntry:  FragmentEntry,
	Uniforms: []core.UniformDecl{
		core.Vec3Decl(UniformGlowColor, mgl32.Vec3{0.4, 0.6, 1.0}),
		core.FloatDecl(UniformIntensity, 2.0),
		core.FloatDecl(UniformFresnelPower, 3.0),
	},
}

var SolarFlare = &core.ShaderProgram{
	Name:           "solarFlare",
	VertexSource:   SolarFlareVertexWGSL,
	FragmentSource: SolarFlareFragmentWGSL,
	VertexEntry:    VertexEntry,
	FragmentEntry:  FragmentEntry,
	Uniforms: []core.UniformDecl{
		core.Vec3Decl(UniformFlareColor, mgl32.Vec3{1.0, 0.6, 0.3}),
		core.FloatDecl(UniformTime, 0.0),
	},
}

// CometTail coreSize is the nucleus radius the cone is proportioned to.
var CometTail = &core.ShaderProgram{
	Name:           "cometTail",
	VertexSource:   CometTailVertexWGSL,
	FragmentSource: CometTailFragmentWGSL,
	VertexEntry:    VertexEntry,
	FragmentEntry:  FragmentEntry,
	Uniforms: []core.UniformDecl{
		core.Vec3Decl(UniformTailColor, mgl32.Vec3{0.8, 0.9, 1.2}),
		core.FloatDecl(UniformTime, 0.0),
		core.FloatDecl(UniformDistanceToSun, 100.0),
		core.FloatDecl(UniformTailVisibility, 0.0),
		core.FloatDecl(UniformTailBrightness, 1.5),
		core.FloatDecl(UniformCoreSize, 0.08),
	},
}

// Basic is the fallback program for solid meshes; it has no animated uniforms.
var Basic = &core.ShaderProgram{
	Name:           "basic",
	VertexSource:   BasicWGSL,
	FragmentSource: BasicWGSL,
	VertexEntry:    VertexEntry,
	FragmentEntry:  FragmentEntry,
	Uniforms: []core.UniformDecl{
		core.Vec3Decl("baseColor", mgl32.Vec3{1, 1, 1}),
		core.FloatDecl("ambient", 0.08),
		core.Vec3Decl("emissive", mgl32.Vec3{0, 0, 0}),
	},
}

// All lists the effect programs in a stable order.
func All() []*core.ShaderProgram {
	return []*core.ShaderProgram{Atmosphere, SolarFlare, CometTail}
}
