package solarfx

import "reflect"

// Commands is the handle systems use to change the world. Entity changes are
// buffered until the current stage ends.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// AddEntity reserves an id now and spawns the entity at the next flush.
func (cmd *Commands) AddEntity(components ...any) EntityId {
	eid := cmd.app.ecs.nextEntityId()
	cmd.app.pendingAdditions = append(cmd.app.pendingAdditions, pendingAdd{
		eid:        eid,
		components: components,
	})
	return eid
}

func (cmd *Commands) AddComponents(entityId EntityId, components ...any) {
	cmd.app.pendingCompAdds = append(cmd.app.pendingCompAdds, pendingComponents{
		eid:        entityId,
		components: components,
	})
}

func (cmd *Commands) RemoveComponents(entityId EntityId, components ...any) {
	cmd.app.pendingCompRemovals = append(cmd.app.pendingCompRemovals, pendingComponents{
		eid:        entityId,
		components: components,
	})
}

func (cmd *Commands) RemoveEntity(entityId EntityId) {
	cmd.app.pendingRemovals = append(cmd.app.pendingRemovals, entityId)
}

func (cmd *Commands) HasEntity(entityId EntityId) bool {
	return cmd.app.ecs.hasEntity(entityId)
}

// GetAllComponents returns copies of every component of a live entity.
func (cmd *Commands) GetAllComponents(entityId EntityId) []any {
	arch, ok := cmd.app.ecs.archetypeOf(entityId)
	if !ok {
		return nil
	}
	r := arch.entities[entityId]

	res := make([]any, 0, len(arch.key))
	for _, id := range arch.key {
		res = append(res, arch.columns[id].get(r).Interface())
	}
	return res
}

// GetComponent returns a copy of one component of a live entity.
func GetComponent[T any](cmd *Commands, entityId EntityId) (T, bool) {
	v, ok := cmd.app.ecs.component(entityId, reflect.TypeFor[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return v.Interface().(T), true
}

// Exit asks the app to stop after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.Exit()
}
