package procgen

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	FlareCount = 60
	// FlareShellScale lifts flares just off the photosphere.
	FlareShellScale = 1.01
)

var ErrNegativeRadius = errors.New("procgen: negative radius")

// FlareField scatters count particles area-uniformly over a sphere of radius
// sunRadius*FlareShellScale. Negative counts yield an empty buffer.
func FlareField(rng Source, count int, sunRadius float32) (*core.FlareBuffer, error) {
	if sunRadius < 0 {
		return nil, fmt.Errorf("flare field radius %v: %w", sunRadius, ErrNegativeRadius)
	}
	count = max(count, 0)
	r := sunRadius * FlareShellScale

	particles := make([]core.FlareParticle, count)
	for i := range particles {
		// phi = acos(2v-1) keeps the density uniform over the surface
		theta := rng.Float32() * 2 * math32.Pi
		phi := math32.Acos(2*rng.Float32() - 1)

		particles[i] = core.FlareParticle{
			Position:   SphericalToCartesian(r, theta, phi),
			Size:       uniform(rng, 1.5, 2.3),
			Speed:      uniform(rng, 1.0, 3.0),
			Offset:     uniform(rng, 0, 2*math32.Pi),
			Activation: rng.Float32(),
		}
	}
	return core.NewFlareBuffer(particles), nil
}

// SphericalToCartesian uses theta as the azimuth around Z and phi as the polar angle from +Z.
func SphericalToCartesian(r, theta, phi float32) mgl32.Vec3 {
	sp := math32.Sin(phi)
	return mgl32.Vec3{
		r * sp * math32.Cos(theta),
		r * sp * math32.Sin(theta),
		r * math32.Cos(phi),
	}
}
