package solarfx

import (
	"testing"
	"time"

	"github.com/gekko3d/solarfx/render/procgen"
	"github.com/gekko3d/solarfx/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSceneApp(t *testing.T, cfg SceneConfig) (*App, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	app := NewAppBuilder().
		UseModule(
			TimeModule{Now: clock.Now},
			ShaderSyncModule{},
			HierarchyModule{},
			OrbitModule{},
			SceneModule{Config: cfg},
		).
		Build()
	return app, clock
}

func TestSceneModule_SpawnsEverything(t *testing.T) {
	cfg := DefaultSceneConfig()
	cfg.Seed = 5
	app, _ := buildSceneApp(t, cfg)
	cmd := app.Commands()

	scene, ok := Resource[Scene](app)
	require.True(t, ok)
	reg, _ := Resource[UniformRegistry](app)

	assert.Len(t, scene.Planets, 4)
	for _, eid := range scene.Planets {
		assert.True(t, cmd.HasEntity(eid))
	}
	assert.True(t, cmd.HasEntity(scene.Sun))
	assert.True(t, cmd.HasEntity(scene.Flares))
	require.NotNil(t, scene.Comet)
	assert.True(t, cmd.HasEntity(scene.CometEntity))

	// flares + three atmospheres + comet tail
	assert.Equal(t, 5, reg.Len())

	flares, ok := GetComponent[ShadedComponent](cmd, scene.Flares)
	require.True(t, ok)
	assert.Equal(t, procgen.FlareCount, flares.Object.Flares.Len())
	parent, ok := GetComponent[Parent](cmd, scene.Flares)
	require.True(t, ok)
	assert.Equal(t, scene.Sun, parent.Entity)
}

func TestSceneModule_AnimatesComet(t *testing.T) {
	cfg := DefaultSceneConfig()
	cfg.Seed = 5
	app, clock := buildSceneApp(t, cfg)
	cmd := app.Commands()
	scene, _ := Resource[Scene](app)
	comet := scene.Comet
	startAngle := comet.Orbit.Angle

	for i := 0; i < 10; i++ {
		clock.advance(time.Second / 60)
		app.Tick()
	}

	assert.Greater(t, comet.Orbit.Angle, startAngle)
	pos := comet.Orbit.Position()
	root, ok := GetComponent[TransformComponent](cmd, scene.CometEntity)
	require.True(t, ok)
	assert.Equal(t, pos, root.Position)
	assert.True(t, pos.ApproxEqualThreshold(comet.Tail.Position, 1e-4))

	dist, _ := comet.ShaderUniforms.Float(shaders.UniformDistanceToSun)
	assert.InDelta(t, pos.Len(), dist, 1e-4)
	tm, _ := comet.ShaderUniforms.Float(shaders.UniformTime)
	assert.InDelta(t, 10.0/60, tm, 1e-4)
	vis, _ := comet.ShaderUniforms.Float(shaders.UniformTailVisibility)
	assert.InDelta(t, DefaultTailVisibility().At(pos.Len()), vis, 1e-6)
}

func TestSceneModule_PlanetsOrbit(t *testing.T) {
	cfg := DefaultSceneConfig()
	cfg.Comet.Enabled = false
	app, clock := buildSceneApp(t, cfg)
	cmd := app.Commands()
	scene, _ := Resource[Scene](app)
	assert.Nil(t, scene.Comet)

	earth := scene.Planets["earth"]
	before, _ := GetComponent[TransformComponent](cmd, earth)
	clock.advance(time.Second)
	app.Tick()
	after, _ := GetComponent[TransformComponent](cmd, earth)

	assert.NotEqual(t, before.Position, after.Position)
	assert.InDelta(t, 20, after.Position.Len(), 1e-3)
}

func TestSceneModule_ConfigOverridesComet(t *testing.T) {
	cfg := DefaultSceneConfig()
	cfg.Planet = nil
	cfg.Comet = CometConfig{Enabled: true, SemiMajorAxis: 40, Eccentricity: 0.5, InclinationDeg: 10, Speed: 0.01}
	app, _ := buildSceneApp(t, cfg)
	scene, _ := Resource[Scene](app)

	o := scene.Comet.Orbit
	assert.Equal(t, float32(40), o.SemiMajorAxis)
	assert.Equal(t, float32(0.5), o.Eccentricity)
	assert.InDelta(t, mgl32.DegToRad(10), o.Inclination, 1e-6)
	assert.Equal(t, float32(0.01), o.Speed)
}

func TestSceneModule_NeedsRegistry(t *testing.T) {
	assert.Panics(t, func() {
		NewAppBuilder().UseModule(SceneModule{Config: DefaultSceneConfig()}).Build()
	})
}

func TestLoadScene_RejectsInvalidConfig(t *testing.T) {
	app := newApp()
	cfg := DefaultSceneConfig()
	cfg.Sun.Radius = -1

	_, err := LoadScene(app.Commands(), NewUniformRegistry(), cfg, procgen.NewSource(1))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDespawnShaded_RemovesSubtree(t *testing.T) {
	cfg := DefaultSceneConfig()
	cfg.Comet.Enabled = false
	app, _ := buildSceneApp(t, cfg)
	cmd := app.Commands()
	scene, _ := Resource[Scene](app)
	reg, _ := Resource[UniformRegistry](app)
	before := reg.Len()

	earth := scene.Planets["earth"]
	assert.True(t, DespawnShaded(cmd, reg, earth))
	app.FlushCommands()

	assert.False(t, cmd.HasEntity(earth))
	assert.Equal(t, before-1, reg.Len(), "the atmosphere is unregistered with its planet")
	assert.False(t, DespawnShaded(cmd, reg, earth))
}
