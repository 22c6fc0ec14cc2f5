package solarfx

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/procgen"
	"github.com/gekko3d/solarfx/render/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// AtmosphereShellScale is the glow shell radius relative to its planet.
	AtmosphereShellScale = 1.1
	atmosphereSegments   = 48

	CometCoreSize     = 0.08
	cometCoreSegments = 12
)

// Material binds an effect program to its own uniform values and render state.
type Material struct {
	Program  *core.ShaderProgram
	Uniforms *core.UniformSet
	State    core.RenderState
}

// CreateAtmosphereMaterial builds the fresnel glow material: front faces only,
// additive, transparent, no depth write. color overrides the default glow.
// The radius is only validated; the glow itself does not depend on it.
func CreateAtmosphereMaterial(radius float32, color *mgl32.Vec3) (*Material, error) {
	if radius < 0 {
		return nil, fmt.Errorf("atmosphere radius %v: %w", radius, procgen.ErrNegativeRadius)
	}
	m := &Material{
		Program:  shaders.Atmosphere,
		Uniforms: shaders.Atmosphere.NewUniforms(),
		State:    core.EffectRenderState(core.SideFront),
	}
	if color != nil {
		if err := m.Uniforms.SetVec3(shaders.UniformGlowColor, *color); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CreateAtmosphere wraps a planet of the given radius in a glow shell.
func CreateAtmosphere(name string, planetRadius float32, color *mgl32.Vec3) (*ShadedObject, error) {
	mat, err := CreateAtmosphereMaterial(planetRadius, color)
	if err != nil {
		return nil, err
	}
	shell, err := procgen.UVSphere(planetRadius*AtmosphereShellScale, atmosphereSegments, atmosphereSegments/2)
	if err != nil {
		return nil, fmt.Errorf("atmosphere shell: %w", err)
	}
	o := newShadedObject(name, mat.Program, mat.State)
	o.Uniforms = mat.Uniforms
	o.Mesh = shell
	return o, nil
}

// CreateSolarFlares scatters procgen.FlareCount flare sprites over the sun.
func CreateSolarFlares(rng procgen.Source, sunRadius float32) (*ShadedObject, error) {
	field, err := procgen.FlareField(rng, procgen.FlareCount, sunRadius)
	if err != nil {
		return nil, fmt.Errorf("solar flares: %w", err)
	}
	o := newShadedObject("solarFlares", shaders.SolarFlare, core.EffectRenderState(core.SideDouble))
	o.Flares = field
	return o, nil
}

// CometCore is the nucleus: a small lit sphere with no effect program.
type CometCore struct {
	Mesh     *core.Mesh
	Material core.Material
}

// Comet is the nucleus plus its particle tail. ShaderUniforms aliases the
// tail's uniform set.
type Comet struct {
	IsComet        bool
	Orbit          OrbitParams
	CoreSize       float32
	Core           CometCore
	Tail           *ShadedObject
	ShaderUniforms *core.UniformSet
}

func DefaultCometOrbit() OrbitParams {
	return OrbitParams{
		SemiMajorAxis: 70,
		Eccentricity:  0.85,
		Inclination:   mgl32.DegToRad(18),
		Angle:         math32.Pi * 0.7,
		Speed:         0.003,
	}
}

// CreateComet builds a comet on its default orbit with a procgen.TailCount
// particle tail.
func CreateComet(rng procgen.Source) (*Comet, error) {
	coreMesh, err := procgen.UVSphere(CometCoreSize, cometCoreSegments, cometCoreSegments)
	if err != nil {
		return nil, fmt.Errorf("comet core: %w", err)
	}

	tail := newShadedObject("cometTail", shaders.CometTail, core.EffectRenderState(core.SideDouble))
	tail.Tail = procgen.TailField(rng, procgen.TailCount)
	tail.IsComet = true
	if err := tail.Uniforms.SetFloat(shaders.UniformCoreSize, CometCoreSize); err != nil {
		return nil, err
	}

	orbit := DefaultCometOrbit()
	tail.Position = orbit.Position()

	return &Comet{
		IsComet:        true,
		Orbit:          orbit,
		CoreSize:       CometCoreSize,
		Core:           CometCore{Mesh: coreMesh, Material: core.CometCoreMaterial()},
		Tail:           tail,
		ShaderUniforms: tail.Uniforms,
	}, nil
}

// TailRotation turns the tail's local -Z axis away from the sun.
func TailRotation(position mgl32.Vec3) mgl32.Quat {
	if position.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, -1}, position.Normalize())
}
