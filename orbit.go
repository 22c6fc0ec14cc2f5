package solarfx

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitParams is a Keplerian orbit around the sun at the origin. Angle is the
// true anomaly in radians; Speed is the angle advanced per 60 Hz frame at the
// semi-major-axis distance.
type OrbitParams struct {
	SemiMajorAxis float32
	Eccentricity  float32
	Inclination   float32
	Angle         float32
	Speed         float32
}

func (o OrbitParams) Position() mgl32.Vec3 {
	return OrbitPosition(o.Angle, o.SemiMajorAxis, o.Eccentricity, o.Inclination)
}

// Radius is the sun distance at the current angle.
func (o OrbitParams) Radius() float32 {
	return orbitRadius(o.Angle, o.SemiMajorAxis, o.Eccentricity)
}

// maxSweepFactor caps the perihelion speed-up.
const maxSweepFactor = 10

// Advance moves the body along its orbit by frames 60 Hz frames. Bodies sweep
// faster near the sun, as (a/r)², so equal areas pass in equal times.
func (o *OrbitParams) Advance(frames float32) {
	r := o.Radius()
	factor := float32(1)
	if r > 0 && o.SemiMajorAxis > 0 {
		factor = min((o.SemiMajorAxis/r)*(o.SemiMajorAxis/r), maxSweepFactor)
	}
	o.Angle = math32.Mod(o.Angle+o.Speed*factor*frames, 2*math32.Pi)
}

func orbitRadius(angle, semiMajorAxis, eccentricity float32) float32 {
	return semiMajorAxis * (1 - eccentricity*eccentricity) / (1 + eccentricity*math32.Cos(angle))
}

// OrbitPosition places a body on an ellipse with the sun at one focus. The
// orbit lies in the XZ plane, tilted about the X axis by inclination.
// Angle 0 is perihelion.
func OrbitPosition(angle, semiMajorAxis, eccentricity, inclination float32) mgl32.Vec3 {
	r := orbitRadius(angle, semiMajorAxis, eccentricity)
	x := r * math32.Cos(angle)
	d := r * math32.Sin(angle)
	return mgl32.Vec3{x, d * math32.Sin(inclination), d * math32.Cos(inclination)}
}
