package solarfx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-4), "want %v, got %v", want, got)
}

func TestTransformHierarchy(t *testing.T) {
	app := NewAppBuilder().UseModule(HierarchyModule{}).Build()
	cmd := app.Commands()

	parent := cmd.AddEntity(ptr(TranslatedTransform(mgl32.Vec3{10, 0, 0})))

	childLocal := IdentityLocalTransform()
	childLocal.Position = mgl32.Vec3{0, 5, 0}
	child := cmd.AddEntity(&Parent{Entity: parent}, &childLocal, &TransformComponent{})

	grandLocal := IdentityLocalTransform()
	grandLocal.Position = mgl32.Vec3{0, 0, 2}
	grandchild := cmd.AddEntity(&Parent{Entity: child}, &grandLocal, &TransformComponent{})
	app.FlushCommands()

	TransformHierarchySystem(cmd)

	childWorld, ok := GetComponent[TransformComponent](cmd, child)
	require.True(t, ok)
	assertVecNear(t, mgl32.Vec3{10, 5, 0}, childWorld.Position)

	grandWorld, ok := GetComponent[TransformComponent](cmd, grandchild)
	require.True(t, ok)
	assertVecNear(t, mgl32.Vec3{10, 5, 2}, grandWorld.Position)
}

func TestTransformHierarchy_RotationAndScale(t *testing.T) {
	app := NewAppBuilder().UseModule(HierarchyModule{}).Build()
	cmd := app.Commands()

	root := IdentityTransform()
	root.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	root.Scale = mgl32.Vec3{2, 2, 2}
	parent := cmd.AddEntity(&root)

	local := IdentityLocalTransform()
	local.Position = mgl32.Vec3{1, 0, 0}
	child := cmd.AddEntity(&Parent{Entity: parent}, &local, &TransformComponent{})
	app.FlushCommands()

	app.Tick()

	world, ok := GetComponent[TransformComponent](cmd, child)
	require.True(t, ok)
	// +X rotated 90 degrees about +Y points down -Z
	assertVecNear(t, mgl32.Vec3{0, 0, -2}, world.Position)
	assertVecNear(t, mgl32.Vec3{2, 2, 2}, world.Scale)
}

func TestTransformHierarchy_FollowsParentMoves(t *testing.T) {
	app := NewAppBuilder().UseModule(HierarchyModule{}).Build()
	cmd := app.Commands()

	parent := cmd.AddEntity(ptr(IdentityTransform()))
	child := cmd.AddEntity(&Parent{Entity: parent}, ptr(IdentityLocalTransform()), &TransformComponent{})
	app.FlushCommands()

	MakeQuery1[TransformComponent](cmd).Without(Parent{}).Map(func(eid EntityId, tr *TransformComponent) bool {
		tr.Position = mgl32.Vec3{3, 4, 0}
		return true
	})
	app.Tick()

	world, _ := GetComponent[TransformComponent](cmd, child)
	assertVecNear(t, mgl32.Vec3{3, 4, 0}, world.Position)
}

func TestTransformHierarchy_MissingParentKeepsTransform(t *testing.T) {
	app := NewAppBuilder().UseModule(HierarchyModule{}).Build()
	cmd := app.Commands()

	stale := TranslatedTransform(mgl32.Vec3{1, 2, 3})
	child := cmd.AddEntity(&Parent{Entity: EntityId(4242)}, ptr(IdentityLocalTransform()), &stale)
	app.FlushCommands()
	app.Tick()

	world, _ := GetComponent[TransformComponent](cmd, child)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, world.Position)
}
