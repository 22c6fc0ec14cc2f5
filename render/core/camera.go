package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraState is an orbit camera looking at Target. Y is up.
type CameraState struct {
	Target      mgl32.Vec3
	Distance    float32
	Yaw         float32
	Pitch       float32
	FovY        float32 // radians
	Near        float32
	Far         float32
	Sensitivity float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Target:      mgl32.Vec3{0, 0, 0},
		Distance:    90,
		Yaw:         0,
		Pitch:       0.45,
		FovY:        mgl32.DegToRad(60),
		Near:        0.1,
		Far:         1000,
		Sensitivity: 0.003,
	}
}

func (c *CameraState) Position() mgl32.Vec3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	offset := mgl32.Vec3{
		cp * float32(math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		cp * float32(math.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

// clipDepthFix remaps OpenGL clip depth (-1..1) to the WebGPU range (0..1).
var clipDepthFix = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

func (c *CameraState) GetProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return clipDepthFix.Mul4(mgl32.Perspective(c.FovY, aspect, c.Near, c.Far))
}

// Orbit rotates the camera around its target; pitch is clamped short of the poles.
func (c *CameraState) Orbit(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	const limit = math.Pi/2 - 0.01
	if c.Pitch > limit {
		c.Pitch = limit
	}
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
}

func (c *CameraState) Zoom(factor float32) {
	c.Distance *= factor
	if c.Distance < c.Near*10 {
		c.Distance = c.Near * 10
	}
	if c.Distance > c.Far*0.5 {
		c.Distance = c.Far * 0.5
	}
}
