package shade

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

// TailSunRange is the distance beyond which the sun no longer brightens the tail.
const TailSunRange = 25.0

type TailParams struct {
	TailColor      mgl32.Vec3
	Time           float32
	DistanceToSun  float32
	TailVisibility float32
	TailBrightness float32
	CoreSize       float32
}

func DefaultTailParams() TailParams {
	return TailParams{
		TailColor:      mgl32.Vec3{0.8, 0.9, 1.2},
		DistanceToSun:  100,
		TailBrightness: 1.5,
		CoreSize:       0.08,
	}
}

func TailParamsFrom(u *core.UniformSet) TailParams {
	p := DefaultTailParams()
	if v, ok := u.Vec3(shaders.UniformTailColor); ok {
		p.TailColor = v
	}
	if v, ok := u.Float(shaders.UniformTime); ok {
		p.Time = v
	}
	if v, ok := u.Float(shaders.UniformDistanceToSun); ok {
		p.DistanceToSun = v
	}
	if v, ok := u.Float(shaders.UniformTailVisibility); ok {
		p.TailVisibility = v
	}
	if v, ok := u.Float(shaders.UniformTailBrightness); ok {
		p.TailBrightness = v
	}
	if v, ok := u.Float(shaders.UniformCoreSize); ok {
		p.CoreSize = v
	}
	return p
}

// TailVertex extrudes a flat tail particle into the cone and returns its local
// position and unclamped point size.
func TailVertex(particle core.TailParticle, coreSize float32) (mgl32.Vec3, float32) {
	width := particle.Progress * 15 * coreSize
	length := 80 * coreSize
	pos := mgl32.Vec3{
		particle.Position.X() * width,
		particle.Position.Y() * width,
		-particle.Progress * length,
	}
	pointSize := particle.Size * 3 * coreSize * (1 + particle.Progress*0.3)
	return pos, pointSize
}

// SunInfluence is 1 at the sun and falls linearly to 0 at TailSunRange.
func SunInfluence(distanceToSun float32) float32 {
	return 1 - clamp(distanceToSun/TailSunRange, 0, 1)
}

// TailFragment shades one sprite fragment of the tail. pointCoord is in [0,1]².
func TailFragment(pointCoord mgl32.Vec2, vertexAlpha, progress float32, p TailParams) (Color, bool) {
	if p.TailVisibility <= 0 {
		return Color{}, false
	}

	dist := pointDistance(pointCoord)
	if dist > 0.5 {
		return Color{}, false
	}

	sunInfluence := SunInfluence(p.DistanceToSun)
	brightness := 1 + sunInfluence*6

	movement := math32.Sin(p.Time*5+progress*40)*(1-progress)*0.4 + 0.6

	baseAlpha := vertexAlpha * (1 - progress*0.8) * movement
	particleAlpha := baseAlpha * p.TailVisibility * (0.8 + sunInfluence*0.4)

	extraBrightness := 1 + p.TailVisibility*2
	baseColor := p.TailColor.Mul(brightness * extraBrightness * p.TailBrightness)

	centerGlow := 1 - smoothstep(0, 0.3, dist)
	glowColor := mix(baseColor, mgl32.Vec3{1, 1, 1.2}, centerGlow*0.3)

	intensity := math32.Pow(1-dist*2, 1.5)
	finalColor := glowColor.Mul(intensity)

	if p.TailVisibility > 0.5 {
		particleAlpha *= 1.2
	}
	return rgba(finalColor, particleAlpha), true
}
