package solarfx

// maxHierarchyDepth bounds the propagation passes per frame. Deeper chains
// settle over several frames.
const maxHierarchyDepth = 8

type HierarchyModule struct{}

func (HierarchyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(TransformHierarchySystem).
			InStage(PostUpdate),
	)
}

// TransformHierarchySystem derives child world transforms from their parents.
// Each pass moves changes one level down; it stops once a pass changes nothing.
func TransformHierarchySystem(cmd *Commands) {
	for pass := 0; pass < maxHierarchyDepth; pass++ {
		changed := false
		MakeQuery3[LocalTransformComponent, Parent, TransformComponent](cmd).Map(
			func(eid EntityId, local *LocalTransformComponent, parent *Parent, world *TransformComponent) bool {
				parentWorld, ok := GetComponent[TransformComponent](cmd, parent.Entity)
				if !ok {
					return true
				}
				next := parentWorld.compose(*local)
				if next != *world {
					*world = next
					changed = true
				}
				return true
			})
		if !changed {
			return
		}
	}
}
