package solarfx

import (
	"errors"
	"testing"

	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/procgen"
	"github.com/gekko3d/solarfx/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAtmosphereMaterial(t *testing.T) {
	m, err := CreateAtmosphereMaterial(1, nil)
	require.NoError(t, err)

	assert.Same(t, shaders.Atmosphere, m.Program)
	assert.Equal(t, core.EffectRenderState(core.SideFront), m.State)
	glow, ok := m.Uniforms.Vec3(shaders.UniformGlowColor)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0.4, 0.6, 1.0}, glow)
	intensity, _ := m.Uniforms.Float(shaders.UniformIntensity)
	assert.Equal(t, float32(2), intensity)
	power, _ := m.Uniforms.Float(shaders.UniformFresnelPower)
	assert.Equal(t, float32(3), power)
}

func TestCreateAtmosphereMaterial_InstancesAreIndependent(t *testing.T) {
	a, err := CreateAtmosphereMaterial(1, nil)
	require.NoError(t, err)
	b, err := CreateAtmosphereMaterial(2, nil)
	require.NoError(t, err)

	require.NoError(t, a.Uniforms.SetFloat(shaders.UniformIntensity, 9))
	intensity, _ := b.Uniforms.Float(shaders.UniformIntensity)
	assert.Equal(t, float32(2), intensity)

	fresh := shaders.Atmosphere.NewUniforms()
	intensity, _ = fresh.Float(shaders.UniformIntensity)
	assert.Equal(t, float32(2), intensity, "program defaults are never mutated")
}

func TestCreateAtmosphereMaterial_ColorAndRadius(t *testing.T) {
	color := mgl32.Vec3{1, 0.5, 0.25}
	m, err := CreateAtmosphereMaterial(0, &color)
	require.NoError(t, err)
	glow, _ := m.Uniforms.Vec3(shaders.UniformGlowColor)
	assert.Equal(t, color, glow)

	_, err = CreateAtmosphereMaterial(-1, nil)
	assert.True(t, errors.Is(err, procgen.ErrNegativeRadius))
}

func TestCreateAtmosphere(t *testing.T) {
	o, err := CreateAtmosphere("earth", 2, nil)
	require.NoError(t, err)

	require.NotNil(t, o.Mesh)
	assert.InDelta(t, 2*AtmosphereShellScale, o.Mesh.Bounds(), 1e-4)
	assert.False(t, o.HasTimeUniform())
	assert.False(t, o.IsComet)

	_, err = CreateAtmosphere("bad", -2, nil)
	assert.Error(t, err)
}

func TestCreateSolarFlares(t *testing.T) {
	o, err := CreateSolarFlares(procgen.NewSource(7), 5)
	require.NoError(t, err)

	assert.Equal(t, procgen.FlareCount, o.Flares.Len())
	assert.Equal(t, 60, o.Flares.Len())
	assert.Same(t, shaders.SolarFlare, o.Program)
	assert.Equal(t, core.SideDouble, o.State.Side)
	assert.True(t, o.State.Transparent)
	assert.False(t, o.State.DepthWrite)
	assert.True(t, o.HasTimeUniform())

	_, err = CreateSolarFlares(procgen.NewSource(7), -1)
	assert.True(t, errors.Is(err, procgen.ErrNegativeRadius))
}

func TestCreateComet(t *testing.T) {
	c, err := CreateComet(procgen.NewSource(3))
	require.NoError(t, err)

	assert.True(t, c.IsComet)
	assert.True(t, c.Tail.IsComet)
	assert.Equal(t, float32(CometCoreSize), c.CoreSize)
	assert.Equal(t, procgen.TailCount, c.Tail.Tail.Len())
	assert.Equal(t, 500, c.Tail.Tail.Len())
	assert.Same(t, c.Tail.Uniforms, c.ShaderUniforms)
	assert.Equal(t, DefaultCometOrbit(), c.Orbit)
	assert.Equal(t, c.Orbit.Position(), c.Tail.Position)

	coreSize, _ := c.ShaderUniforms.Float(shaders.UniformCoreSize)
	assert.Equal(t, float32(CometCoreSize), coreSize)
	visibility, _ := c.ShaderUniforms.Float(shaders.UniformTailVisibility)
	assert.Equal(t, float32(0), visibility)
	assert.InDelta(t, CometCoreSize, c.Core.Mesh.Bounds(), 1e-5)
}

func TestCreateComet_SameSeedSameTail(t *testing.T) {
	a, err := CreateComet(procgen.NewSource(11))
	require.NoError(t, err)
	b, err := CreateComet(procgen.NewSource(11))
	require.NoError(t, err)

	assert.Equal(t, a.Tail.Tail.Bytes(), b.Tail.Tail.Bytes())
	assert.NotEqual(t, a.Tail.Id, b.Tail.Id)
}

func TestTailRotation(t *testing.T) {
	pos := mgl32.Vec3{10, 0, 0}
	dir := TailRotation(pos).Rotate(mgl32.Vec3{0, 0, -1})
	assert.True(t, dir.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5), "tail points away from the sun, got %v", dir)

	pos = mgl32.Vec3{-3, 4, 12}
	dir = TailRotation(pos).Rotate(mgl32.Vec3{0, 0, -1})
	assert.True(t, dir.ApproxEqualThreshold(pos.Normalize(), 1e-5))

	assert.Equal(t, mgl32.QuatIdent(), TailRotation(mgl32.Vec3{}))
}
