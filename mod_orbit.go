package solarfx

import (
	"github.com/gekko3d/solarfx/render/shaders"
)

// PlanetComponent keeps a planet on a circular orbit in the ecliptic.
type PlanetComponent struct {
	Name  string
	Orbit OrbitParams
}

// TailVisibilityRange fades the comet tail in as the comet nears the sun:
// fully visible inside Full, hidden beyond Fade.
type TailVisibilityRange struct {
	Full float32
	Fade float32
}

// At maps a sun distance to the tailVisibility uniform value.
func (r TailVisibilityRange) At(distance float32) float32 {
	if r.Fade <= r.Full {
		if distance <= r.Full {
			return 1
		}
		return 0
	}
	v := 1 - (distance-r.Full)/(r.Fade-r.Full)
	return max(0, min(1, v))
}

// OrbitModule advances planets and comets along their orbits each frame and
// drives comet tail visibility from the sun distance.
type OrbitModule struct {
	TailVisibility TailVisibilityRange
}

func DefaultTailVisibility() TailVisibilityRange {
	return TailVisibilityRange{Full: 15, Fade: 45}
}

func (m OrbitModule) Install(app *App, cmd *Commands) {
	vis := m.TailVisibility
	if vis == (TailVisibilityRange{}) {
		vis = DefaultTailVisibility()
	}
	cmd.AddResources(&vis)

	app.UseSystem(
		System(planetOrbitSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(cometOrbitSystem).
			InStage(Update),
	)
}

// framesOf converts frame time to 60 Hz frames, the unit orbit speeds use.
func framesOf(t *Time) float32 {
	return t.DtSeconds() * 60
}

func planetOrbitSystem(cmd *Commands, t *Time) {
	frames := framesOf(t)
	MakeQuery2[PlanetComponent, TransformComponent](cmd).Map(func(eid EntityId, p *PlanetComponent, tr *TransformComponent) bool {
		p.Orbit.Advance(frames)
		tr.Position = p.Orbit.Position()
		return true
	})
}

func cometOrbitSystem(cmd *Commands, t *Time, vis *TailVisibilityRange) {
	frames := framesOf(t)
	MakeQuery2[CometComponent, TransformComponent](cmd).Map(func(eid EntityId, cc *CometComponent, tr *TransformComponent) bool {
		c := cc.Comet
		c.Orbit.Advance(frames)
		pos := c.Orbit.Position()
		tr.Position = pos
		tr.Rotation = TailRotation(pos)
		_ = c.ShaderUniforms.SetFloat(shaders.UniformTailVisibility, vis.At(pos.Len()))
		return true
	})
}
