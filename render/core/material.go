package core

import "github.com/go-gl/mathgl/mgl32"

// Material is the fixed (non-shader) surface description used for solid meshes
// such as planets and the comet nucleus.
type Material struct {
	BaseColor         mgl32.Vec3
	Emissive          mgl32.Vec3
	EmissiveIntensity float32
	Shininess         float32
}

func NewMaterial(baseColor, emissive mgl32.Vec3, emissiveIntensity float32) Material {
	return Material{
		BaseColor:         baseColor,
		Emissive:          emissive,
		EmissiveIntensity: emissiveIntensity,
		Shininess:         30.0,
	}
}

// Helper for default white
func DefaultMaterial() Material {
	return Material{
		BaseColor: mgl32.Vec3{1, 1, 1},
		Shininess: 30.0,
	}
}

// CometCoreMaterial is white with a faint grey self-illumination.
func CometCoreMaterial() Material {
	return NewMaterial(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0x44 / 255.0, 0x44 / 255.0, 0x44 / 255.0}, 0.3)
}

// EmissiveColor is what the basic mesh shader adds on top of lighting.
func (m Material) EmissiveColor() mgl32.Vec3 {
	return m.Emissive.Mul(m.EmissiveIntensity)
}
