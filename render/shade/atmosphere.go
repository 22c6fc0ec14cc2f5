package shade

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

type AtmosphereParams struct {
	GlowColor    mgl32.Vec3
	Intensity    float32
	FresnelPower float32
}

// AtmosphereParamsFrom reads the atmosphere uniforms, keeping defaults for any that are missing.
func AtmosphereParamsFrom(u *core.UniformSet) AtmosphereParams {
	p := AtmosphereParams{GlowColor: mgl32.Vec3{0.4, 0.6, 1.0}, Intensity: 2.0, FresnelPower: 3.0}
	if v, ok := u.Vec3(shaders.UniformGlowColor); ok {
		p.GlowColor = v
	}
	if v, ok := u.Float(shaders.UniformIntensity); ok {
		p.Intensity = v
	}
	if v, ok := u.Float(shaders.UniformFresnelPower); ok {
		p.FresnelPower = v
	}
	return p
}

// Fresnel is the unclamped rim term pow(1 - n·v, power).
func Fresnel(nDotV, power float32) float32 {
	return math32.Pow(1-nDotV, power)
}

// AtmosphereFragment shades one fragment of the glow shell. The atmosphere never discards.
func AtmosphereFragment(normal, viewDir mgl32.Vec3, p AtmosphereParams) Color {
	n := normal.Normalize()
	v := viewDir.Normalize()
	fresnel := clamp(Fresnel(n.Dot(v), p.FresnelPower), 0, 1)
	return rgba(p.GlowColor.Mul(fresnel*p.Intensity), fresnel*0.6)
}
