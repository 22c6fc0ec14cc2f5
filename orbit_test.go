package solarfx

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestOrbitPosition_Perihelion(t *testing.T) {
	pos := OrbitPosition(0, 70, 0.85, 0)
	assert.InDelta(t, 70*(1-0.85), pos.Len(), 1e-4)
	assert.InDelta(t, 70*(1-0.85), pos.X(), 1e-4)

	aphelion := OrbitPosition(math32.Pi, 70, 0.85, 0)
	assert.InDelta(t, 70*(1+0.85), aphelion.Len(), 1e-3)
}

func TestOrbitPosition_InclinationKeepsDistance(t *testing.T) {
	for _, angle := range []float32{0.3, 1.2, 2.5, 4} {
		flat := OrbitPosition(angle, 20, 0.4, 0)
		tilted := OrbitPosition(angle, 20, 0.4, mgl32.DegToRad(30))

		assert.InDelta(t, flat.Len(), tilted.Len(), 1e-4)
		assert.InDelta(t, orbitRadius(angle, 20, 0.4), tilted.Len(), 1e-4)
		assert.Zero(t, flat.Y())
	}
}

func TestOrbitParams_CircularAdvance(t *testing.T) {
	o := OrbitParams{SemiMajorAxis: 10, Speed: 0.01}
	o.Advance(60)

	assert.InDelta(t, 0.6, o.Angle, 1e-5)
	assert.InDelta(t, 10, o.Position().Len(), 1e-4)
}

func TestOrbitParams_FasterNearSun(t *testing.T) {
	peri := OrbitParams{SemiMajorAxis: 70, Eccentricity: 0.5, Speed: 0.001}
	apo := peri
	apo.Angle = math32.Pi

	peri.Advance(1)
	apo.Advance(1)

	assert.Greater(t, peri.Angle, apo.Angle-math32.Pi)
}

func TestOrbitParams_SweepIsCapped(t *testing.T) {
	o := OrbitParams{SemiMajorAxis: 70, Eccentricity: 0.95, Speed: 0.001}
	o.Advance(1)
	assert.InDelta(t, 0.001*maxSweepFactor, o.Angle, 1e-6)
}

func TestOrbitParams_AngleWraps(t *testing.T) {
	o := OrbitParams{SemiMajorAxis: 10, Angle: 2*math32.Pi - 0.05, Speed: 0.1}
	o.Advance(1)

	assert.GreaterOrEqual(t, o.Angle, float32(0))
	assert.InDelta(t, 0.05, o.Angle, 1e-4)
}

func TestTailVisibilityRange(t *testing.T) {
	r := DefaultTailVisibility()
	assert.Equal(t, float32(1), r.At(5))
	assert.Equal(t, float32(1), r.At(15))
	assert.InDelta(t, 0.5, r.At(30), 1e-6)
	assert.Equal(t, float32(0), r.At(45))
	assert.Equal(t, float32(0), r.At(200))

	step := TailVisibilityRange{Full: 10, Fade: 10}
	assert.Equal(t, float32(1), step.At(10))
	assert.Equal(t, float32(0), step.At(10.1))
}
