// Package shade evaluates the effect shaders on the CPU in float32.
//
// Each function mirrors one shader stage of render/shaders. A fragment that the
// GPU would discard is reported with ok == false and a zero colour.
package shade

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func fract(x float32) float32 { return x - math32.Floor(x) }

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// Color is a straight (non-premultiplied) RGBA fragment value. Channels may exceed 1
// before blending.
type Color struct {
	R, G, B, A float32
}

func rgba(c mgl32.Vec3, a float32) Color {
	return Color{R: c.X(), G: c.Y(), B: c.Z(), A: a}
}

// pointDistance is the distance of a sprite coordinate in [0,1]² from the sprite centre.
func pointDistance(pc mgl32.Vec2) float32 {
	return pc.Sub(mgl32.Vec2{0.5, 0.5}).Len()
}
