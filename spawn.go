package solarfx

import (
	"github.com/gekko3d/solarfx/render/procgen"
	"github.com/go-gl/mathgl/mgl32"
)

// CometComponent marks the root entity of a comet.
type CometComponent struct {
	Comet *Comet
}

// spawnShadedChild attaches o to parent and registers it for uniform sync.
func spawnShadedChild(cmd *Commands, registry *UniformRegistry, parent EntityId, o *ShadedObject) EntityId {
	registry.Register(o)
	return cmd.AddEntity(
		&Parent{Entity: parent},
		ptr(IdentityLocalTransform()),
		ptr(IdentityTransform()),
		&ShadedComponent{Object: o},
	)
}

func SpawnAtmosphere(cmd *Commands, registry *UniformRegistry, planet EntityId, planetRadius float32, color *mgl32.Vec3) (EntityId, error) {
	o, err := CreateAtmosphere("atmosphere", planetRadius, color)
	if err != nil {
		return 0, err
	}
	return spawnShadedChild(cmd, registry, planet, o), nil
}

func SpawnSolarFlares(cmd *Commands, registry *UniformRegistry, sun EntityId, rng procgen.Source, sunRadius float32) (EntityId, error) {
	o, err := CreateSolarFlares(rng, sunRadius)
	if err != nil {
		return 0, err
	}
	return spawnShadedChild(cmd, registry, sun, o), nil
}

// SpawnComet spawns the nucleus as a root entity on the comet's orbit and the
// tail as its child. It returns the root.
func SpawnComet(cmd *Commands, registry *UniformRegistry, c *Comet) EntityId {
	pos := c.Orbit.Position()
	tr := TranslatedTransform(pos)
	tr.Rotation = TailRotation(pos)

	root := cmd.AddEntity(
		&CometComponent{Comet: c},
		&tr,
		ptr(NewMeshComponent(c.Core.Mesh, c.Core.Material)),
	)
	c.Tail.Position = pos
	spawnShadedChild(cmd, registry, root, c.Tail)
	return root
}

// DespawnShaded removes an entity and its descendants, unregistering every
// shaded object among them. It reports whether the entity was live.
func DespawnShaded(cmd *Commands, registry *UniformRegistry, eid EntityId) bool {
	if !cmd.HasEntity(eid) {
		return false
	}

	children := make(map[EntityId][]EntityId)
	MakeQuery1[Parent](cmd).Map(func(child EntityId, p *Parent) bool {
		children[p.Entity] = append(children[p.Entity], child)
		return true
	})

	stack := []EntityId{eid}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if sc, ok := GetComponent[ShadedComponent](cmd, cur); ok && sc.Object != nil {
			registry.Unregister(sc.Object.Id)
		}
		cmd.RemoveEntity(cur)
		stack = append(stack, children[cur]...)
	}
	return true
}

func ptr[T any](v T) *T { return &v }
