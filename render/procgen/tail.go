package procgen

import (
	"github.com/chewxy/math32"
	"github.com/gekko3d/solarfx/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	TailCount = 500
	// TailSpread is the disc radius at progress 1, before the vertex stage scales it.
	TailSpread = 1.2
)

// TailField lays count particles out on flat discs that widen with progress.
// The vertex stage extrudes them into the cone.
func TailField(rng Source, count int) *core.TailBuffer {
	count = max(count, 0)
	particles := make([]core.TailParticle, count)
	for i := range particles {
		progress := rng.Float32()
		angle := rng.Float32() * 2 * math32.Pi
		// sqrt pulls particles toward the axis
		radius := math32.Sqrt(rng.Float32()) * progress * TailSpread

		particles[i] = core.TailParticle{
			Position: mgl32.Vec3{math32.Cos(angle) * radius, math32.Sin(angle) * radius, 0},
			Size:     uniform(rng, 0.3, 1.3) + progress*0.7,
			Alpha:    (1 - progress*0.6) * uniform(rng, 0.4, 1.2),
			Progress: progress,
		}
	}
	return core.NewTailBuffer(particles)
}
