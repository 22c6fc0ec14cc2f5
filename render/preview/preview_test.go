package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/procgen"
	"github.com/gekko3d/solarfx/render/shade"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func luminance(c *Canvas) float32 {
	var sum float32
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			r, g, b := c.At(x, y)
			sum += r + g + b
		}
	}
	return sum
}

func TestCanvasAddAndClamp(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Add(0, 0, shade.Color{R: 2, G: 0.5, B: 0, A: 0.5})
	c.Add(0, 0, shade.Color{R: 2, G: 0.5, B: 0, A: 0.5})
	c.Add(-1, 5, shade.Color{R: 1, A: 1})

	r, g, _ := c.At(0, 0)
	assert.InDelta(t, 2.0, r, 1e-6)
	assert.InDelta(t, 0.5, g, 1e-6)

	img := c.Image()
	px := img.RGBAAt(0, 0)
	assert.Equal(t, uint8(255), px.R)
	assert.Equal(t, uint8(128), px.G)
	assert.Equal(t, uint8(255), px.A)
	assert.Equal(t, uint8(0), img.RGBAAt(1, 1).R)
}

func TestRenderFlaresFollowsDutyCycle(t *testing.T) {
	field := core.NewFlareBuffer([]core.FlareParticle{
		{Position: mgl32.Vec3{0, 0, 1}, Size: 2, Activation: 0},
	})
	opts := Options{Width: 64, Height: 64}

	lit := RenderFlares(field, shade.FlareParams{FlareColor: mgl32.Vec3{1, 0.6, 0.3}, Time: 0.6}, opts)
	r, _, _ := lit.At(32, 32)
	assert.Greater(t, r, float32(0))

	dark := RenderFlares(field, shade.FlareParams{FlareColor: mgl32.Vec3{1, 0.6, 0.3}, Time: 1.4}, opts)
	assert.Zero(t, luminance(dark))
}

func TestRenderFlaresHidesBackHemisphere(t *testing.T) {
	field := core.NewFlareBuffer([]core.FlareParticle{
		{Position: mgl32.Vec3{0, 0, -1}, Size: 2},
	})
	c := RenderFlares(field, shade.FlareParams{FlareColor: mgl32.Vec3{1, 1, 1}, Time: 0.6}, Options{Width: 32, Height: 32})
	assert.Zero(t, luminance(c))
}

func TestRenderTailGatedByVisibility(t *testing.T) {
	field := procgen.TailField(procgen.NewSource(5), 200)
	params := shade.DefaultTailParams()
	opts := Options{Width: 128, Height: 64, Scale: 20, PointScale: 10}

	assert.Zero(t, luminance(RenderTail(field, params, opts)))

	params.TailVisibility = 1
	visible := luminance(RenderTail(field, params, opts))
	assert.Greater(t, visible, float32(0))

	params.DistanceToSun = 0
	assert.Greater(t, luminance(RenderTail(field, params, opts)), visible)
}

func TestRenderAtmosphereRim(t *testing.T) {
	params := shade.AtmosphereParams{GlowColor: mgl32.Vec3{0.4, 0.6, 1}, Intensity: 2, FresnelPower: 3}
	c := RenderAtmosphere(1, params, Options{Width: 64, Height: 64, Scale: 30})

	centre, _, _ := c.At(32, 32)
	rim, _, _ := c.At(32+29, 32)
	outside, _, _ := c.At(0, 0)
	assert.Less(t, centre, float32(1e-3))
	assert.Greater(t, rim, centre)
	assert.Zero(t, outside)
}

func TestUpscaleAndEncode(t *testing.T) {
	img := NewCanvas(8, 4).Image()
	big := Upscale(img, 3)
	assert.Equal(t, 24, big.Bounds().Dx())
	assert.Equal(t, 12, big.Bounds().Dy())

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, big))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, big.Bounds(), decoded.Bounds())
}

func TestSavePNG(t *testing.T) {
	path := t.TempDir() + "/out.png"
	require.NoError(t, SavePNG(path, NewCanvas(4, 4).Image()))
	assert.Error(t, SavePNG(t.TempDir()+"/missing/dir/out.png", NewCanvas(1, 1).Image()))
}
