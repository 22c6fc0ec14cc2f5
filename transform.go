package solarfx

import (
	"github.com/gekko3d/solarfx/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

// TransformComponent is an entity's world transform. For root entities it is
// authoritative; for children the hierarchy system derives it every frame.
type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// LocalTransformComponent is a child's transform relative to its parent.
type LocalTransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// Parent attaches an entity to another entity's transform.
type Parent struct {
	Entity EntityId
}

func IdentityTransform() TransformComponent {
	return TransformComponent{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

func IdentityLocalTransform() LocalTransformComponent {
	return LocalTransformComponent{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
}

func TranslatedTransform(p mgl32.Vec3) TransformComponent {
	t := IdentityTransform()
	t.Position = p
	return t
}

func (t TransformComponent) ObjectToWorld() mgl32.Mat4 {
	return core.Transform(t).ObjectToWorld()
}

// compose applies a local transform under a parent world transform. Scale is
// propagated per axis so mirrored parents keep their sign.
func (parent TransformComponent) compose(local LocalTransformComponent) TransformComponent {
	scaled := mgl32.Vec3{
		local.Position.X() * parent.Scale.X(),
		local.Position.Y() * parent.Scale.Y(),
		local.Position.Z() * parent.Scale.Z(),
	}
	return TransformComponent{
		Position: parent.Position.Add(parent.Rotation.Rotate(scaled)),
		Rotation: parent.Rotation.Mul(local.Rotation).Normalize(),
		Scale: mgl32.Vec3{
			parent.Scale.X() * local.Scale.X(),
			parent.Scale.Y() * local.Scale.Y(),
			parent.Scale.Z() * local.Scale.Z(),
		},
	}
}
