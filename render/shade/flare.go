package shade

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	FlareCycleSeconds = 4.0
	FlarePointScale   = 12.0
)

type FlareParams struct {
	FlareColor mgl32.Vec3
	Time       float32
}

func FlareParamsFrom(u *core.UniformSet) FlareParams {
	p := FlareParams{FlareColor: mgl32.Vec3{1.0, 0.6, 0.3}}
	if v, ok := u.Vec3(shaders.UniformFlareColor); ok {
		p.FlareColor = v
	}
	if v, ok := u.Float(shaders.UniformTime); ok {
		p.Time = v
	}
	return p
}

// FlareHash is the per-particle brightness hash, fract(sin(dot(st, (12.9898, 78.233))) * 43758.5453123).
func FlareHash(x, y float32) float32 {
	return fract(math32.Sin(x*12.9898+y*78.233) * 43758.5453123)
}

// FlarePhase is the particle's position inside its cycle, in [0,1).
func FlarePhase(time, activation float32) float32 {
	return fract((time + activation*10.0) / FlareCycleSeconds)
}

// FlareActivity maps a cycle phase to brightness: ramp up over [0,0.1), hold over
// [0.1,0.2), ramp down over [0.2,0.3), dark for the rest of the cycle.
func FlareActivity(phase float32) float32 {
	switch {
	case phase >= 0.3:
		return 0
	case phase < 0.1:
		return phase / 0.1
	case phase < 0.2:
		return 1
	default:
		return 1 - (phase-0.2)/0.1
	}
}

// FlarePointSize is the sprite edge length in pixels.
func FlarePointSize(size float32) float32 { return size * FlarePointScale }

// FlareFragment shades one sprite fragment. pointCoord is in [0,1]².
func FlareFragment(pointCoord mgl32.Vec2, activation, size float32, p FlareParams) (Color, bool) {
	dist := pointDistance(pointCoord)
	if dist > 0.5 {
		return Color{}, false
	}

	isActive := FlareActivity(FlarePhase(p.Time, activation))
	if isActive <= 0 {
		return Color{}, false
	}

	centerIntensity := 1 - smoothstep(0, 0.5, dist)
	centerIntensity = centerIntensity * centerIntensity
	edgeIntensity := 1 - smoothstep(0.3, 0.5, dist)
	intensity := centerIntensity * edgeIntensity

	randomVariation := 0.7 + FlareHash(activation, size)*0.6
	pulse := math32.Sin(p.Time*8+activation*20)*0.2 + 0.8

	color := p.FlareColor.Mul(intensity * isActive * randomVariation * pulse)
	return rgba(color, intensity*isActive*0.9), true
}
