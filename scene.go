package solarfx

import (
	"fmt"

	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/procgen"
	"github.com/gekko3d/solarfx/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	planetSegments = 32
	sunSegments    = 48
)

// Scene holds the root entities LoadScene spawned.
type Scene struct {
	Sun     EntityId
	Flares  EntityId
	Planets map[string]EntityId
	Comet   *Comet
	// CometEntity is valid only when Comet is non-nil.
	CometEntity EntityId
}

// LoadScene spawns the sun with its flares, the planets with their
// atmospheres and the comet described by cfg.
func LoadScene(cmd *Commands, registry *UniformRegistry, cfg SceneConfig, rng procgen.Source) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scene := &Scene{Planets: make(map[string]EntityId, len(cfg.Planet))}

	sunMesh, err := procgen.UVSphere(cfg.Sun.Radius, sunSegments, sunSegments/2)
	if err != nil {
		return nil, fmt.Errorf("sun: %w", err)
	}
	sunColor := vec3(cfg.Sun.Color)
	scene.Sun = cmd.AddEntity(
		ptr(IdentityTransform()),
		ptr(NewMeshComponent(sunMesh, core.NewMaterial(sunColor, sunColor, 1))),
	)

	flares, err := CreateSolarFlares(rng, cfg.Sun.Radius)
	if err != nil {
		return nil, err
	}
	if c := optionalVec3(cfg.Sun.FlareColor); c != nil {
		if err := flares.Uniforms.SetVec3(shaders.UniformFlareColor, *c); err != nil {
			return nil, err
		}
	}
	scene.Flares = spawnShadedChild(cmd, registry, scene.Sun, flares)

	for i, p := range cfg.Planet {
		eid, err := spawnPlanet(cmd, registry, p, i)
		if err != nil {
			return nil, fmt.Errorf("planet %q: %w", p.Name, err)
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("planet%d", i)
		}
		scene.Planets[name] = eid
	}

	if cfg.Comet.Enabled {
		comet, err := CreateComet(rng)
		if err != nil {
			return nil, err
		}
		applyCometConfig(&comet.Orbit, cfg.Comet)
		scene.Comet = comet
		scene.CometEntity = SpawnComet(cmd, registry, comet)
	}
	return scene, nil
}

func spawnPlanet(cmd *Commands, registry *UniformRegistry, p PlanetConfig, index int) (EntityId, error) {
	mesh, err := procgen.UVSphere(p.Radius, planetSegments, planetSegments/2)
	if err != nil {
		return 0, err
	}

	// Stagger the starting angles so planets do not line up.
	orbit := OrbitParams{
		SemiMajorAxis: p.OrbitRadius,
		Angle:         float32(index) * mgl32.DegToRad(137.5),
		Speed:         p.OrbitSpeed,
	}
	eid := cmd.AddEntity(
		&PlanetComponent{Name: p.Name, Orbit: orbit},
		ptr(TranslatedTransform(orbit.Position())),
		ptr(NewMeshComponent(mesh, core.NewMaterial(vec3(p.Color), mgl32.Vec3{}, 0))),
	)

	if p.Atmosphere {
		if _, err := SpawnAtmosphere(cmd, registry, eid, p.Radius, optionalVec3(p.GlowColor)); err != nil {
			return 0, err
		}
	}
	return eid, nil
}

func applyCometConfig(o *OrbitParams, c CometConfig) {
	if c.SemiMajorAxis > 0 {
		o.SemiMajorAxis = c.SemiMajorAxis
	}
	if c.Eccentricity > 0 {
		o.Eccentricity = c.Eccentricity
	}
	if c.InclinationDeg != 0 {
		o.Inclination = mgl32.DegToRad(c.InclinationDeg)
	}
	if c.Speed > 0 {
		o.Speed = c.Speed
	}
}

// SceneModule spawns a configured scene at install time. It needs the
// ShaderSyncModule installed before it.
type SceneModule struct {
	Config SceneConfig
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	registry, ok := Resource[UniformRegistry](app)
	if !ok {
		panic("SceneModule needs the ShaderSyncModule installed first")
	}

	rng := procgen.DefaultSource()
	if m.Config.Seed != 0 {
		rng = procgen.NewSource(m.Config.Seed)
	}

	scene, err := LoadScene(cmd, registry, m.Config, rng)
	if err != nil {
		panic(fmt.Sprintf("failed to load scene: %v", err))
	}
	cmd.AddResources(scene)
	app.Logger().Infof("scene loaded: %d planets, %d shaded objects", len(scene.Planets), registry.Len())
}
