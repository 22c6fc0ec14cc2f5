package solarfx

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type archetypeId uint64
type archetypeKey []componentId
type componentId uint32
type row int
type set[T comparable] = map[T]struct{}

// Ecs stores components in archetypes: one typed column per component type,
// one row per entity. Entities move between archetypes when their component
// set changes.
type Ecs struct {
	archetypes  map[archetypeId]*archetype
	entityIndex map[EntityId]archetypeId

	idLock          sync.Mutex
	entityIdCounter EntityId

	componentLock      sync.Mutex
	componentIdCounter componentId
	componentTypeIdMap map[reflect.Type]componentId
	componentIdTypeMap map[componentId]reflect.Type
}

func MakeEcs() Ecs {
	return Ecs{
		archetypes:         make(map[archetypeId]*archetype),
		entityIndex:        make(map[EntityId]archetypeId),
		componentTypeIdMap: make(map[reflect.Type]componentId),
		componentIdTypeMap: make(map[componentId]reflect.Type),
	}
}

type archetype struct {
	id       archetypeId
	key      archetypeKey
	entities map[EntityId]row
	columns  map[componentId]*column
	recycled []row
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	return ecs.insertEntity(ecs.nextEntityId(), components...)
}

// insertEntity places an entity under a pre-allocated id. Commands hand out ids
// before the entity exists so callers can reference it within the same frame.
func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	archId, arch := ecs.getOrMakeArchetype(ecs.componentKey(components...))

	r := ecs.reserveRow(arch)
	arch.entities[entityId] = r
	for _, component := range components {
		ecs.writeComponent(arch, r, component)
	}
	ecs.entityIndex[entityId] = archId

	return entityId
}

func (ecs *Ecs) hasEntity(entityId EntityId) bool {
	_, ok := ecs.entityIndex[entityId]
	return ok
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	if !ecs.hasEntity(entityId) {
		return
	}
	ecs.releaseRow(entityId)
}

func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	srcArch, ok := ecs.archetypeOf(entityId)
	if !ok {
		return
	}

	dstKey := combineArchetypeKeys(srcArch.key, ecs.componentKey(components...))
	dstRow, dstArch := ecs.migrate(entityId, srcArch, dstKey)
	for _, component := range components {
		ecs.writeComponent(dstArch, dstRow, component)
	}
}

func (ecs *Ecs) removeComponents(entityId EntityId, components ...any) {
	srcArch, ok := ecs.archetypeOf(entityId)
	if !ok {
		return
	}

	removed := make(set[componentId])
	for _, c := range components {
		removed[ecs.getComponentId(componentType(c))] = struct{}{}
	}

	dstKey := make(archetypeKey, 0, len(srcArch.key))
	for _, id := range srcArch.key {
		if _, drop := removed[id]; !drop {
			dstKey = append(dstKey, id)
		}
	}
	ecs.migrate(entityId, srcArch, dstKey)
}

// migrate moves an entity into the archetype for dstKey, carrying over every
// component both archetypes share.
func (ecs *Ecs) migrate(entityId EntityId, srcArch *archetype, dstKey archetypeKey) (row, *archetype) {
	srcRow := srcArch.entities[entityId]
	dstArchId, dstArch := ecs.getOrMakeArchetype(dstKey)
	dstRow := ecs.reserveRow(dstArch)

	for _, id := range dstArch.key {
		if src, ok := srcArch.columns[id]; ok {
			dstArch.columns[id].set(dstRow, src.get(srcRow))
		}
	}

	ecs.releaseRow(entityId)
	dstArch.entities[entityId] = dstRow
	ecs.entityIndex[entityId] = dstArchId
	return dstRow, dstArch
}

func (ecs *Ecs) writeComponent(arch *archetype, r row, component any) {
	value := reflect.ValueOf(component)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	arch.columns[ecs.getComponentId(value.Type())].set(r, value)
}

// component returns a copy of one component of an entity.
func (ecs *Ecs) component(entityId EntityId, t reflect.Type) (reflect.Value, bool) {
	arch, ok := ecs.archetypeOf(entityId)
	if !ok {
		return reflect.Value{}, false
	}
	col, ok := arch.columns[ecs.getComponentId(t)]
	if !ok {
		return reflect.Value{}, false
	}
	return col.get(arch.entities[entityId]), true
}

func (ecs *Ecs) archetypeOf(entityId EntityId) (*archetype, bool) {
	archId, ok := ecs.entityIndex[entityId]
	if !ok {
		return nil, false
	}
	return ecs.archetypes[archId], true
}

// releaseRow detaches an entity from its archetype and queues the row for reuse.
func (ecs *Ecs) releaseRow(entityId EntityId) {
	arch, ok := ecs.archetypeOf(entityId)
	if !ok {
		return
	}
	r := arch.entities[entityId]
	for _, col := range arch.columns {
		col.clear(r)
	}
	arch.recycled = append(arch.recycled, r)

	delete(arch.entities, entityId)
	delete(ecs.entityIndex, entityId)
}

func (ecs *Ecs) getOrMakeArchetype(key archetypeKey) (archetypeId, *archetype) {
	id := getArchetypeId(key)
	if arch, ok := ecs.archetypes[id]; ok {
		return id, arch
	}

	arch := &archetype{
		id:       id,
		key:      key,
		entities: make(map[EntityId]row),
		columns:  make(map[componentId]*column, len(key)),
	}
	for _, cid := range key {
		arch.columns[cid] = newColumn(ecs.getComponentType(cid))
	}

	ecs.archetypes[id] = arch
	return id, arch
}

func (ecs *Ecs) reserveRow(arch *archetype) row {
	if n := len(arch.recycled); n > 0 {
		r := arch.recycled[n-1]
		arch.recycled = arch.recycled[:n-1]
		return r
	}

	r := row(len(arch.entities))
	for _, col := range arch.columns {
		col.grow()
	}
	return r
}

// componentType accepts a struct or a pointer to a struct and returns the struct type.
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		panic(fmt.Errorf("expected component to be a struct or a pointer to a struct, got %v", reflect.TypeOf(component)))
	}
	return t
}

// componentKey is the canonical archetype key of a component list: sorted,
// deduplicated component ids.
func (ecs *Ecs) componentKey(components ...any) archetypeKey {
	key := make(archetypeKey, 0, len(components))
	for _, component := range components {
		key = append(key, ecs.getComponentId(componentType(component)))
	}
	return dedupAndSortArchetypeKey(key)
}

func combineArchetypeKeys(a archetypeKey, b archetypeKey) archetypeKey {
	combined := make(archetypeKey, 0, len(a)+len(b))
	combined = append(combined, a...)
	return dedupAndSortArchetypeKey(append(combined, b...))
}

func dedupAndSortArchetypeKey(key archetypeKey) archetypeKey {
	res := slices.Clone(key)
	slices.Sort(res)
	return slices.Compact(res)
}

// getArchetypeId hashes a canonical key. Ids are cheaper to compare than keys.
func getArchetypeId(key archetypeKey) archetypeId {
	hash := fnv.New64a()
	var b [4]byte
	for _, cid := range key {
		binary.LittleEndian.PutUint32(b[:], uint32(cid))
		hash.Write(b[:])
	}
	return archetypeId(hash.Sum64())
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idLock.Lock()
	defer ecs.idLock.Unlock()

	id := ecs.entityIdCounter
	ecs.entityIdCounter++
	return id
}

func (ecs *Ecs) getComponentId(t reflect.Type) componentId {
	ecs.componentLock.Lock()
	defer ecs.componentLock.Unlock()

	if id, ok := ecs.componentTypeIdMap[t]; ok {
		return id
	}
	id := ecs.componentIdCounter
	ecs.componentIdCounter++
	ecs.componentTypeIdMap[t] = id
	ecs.componentIdTypeMap[id] = t
	return id
}

func (ecs *Ecs) getComponentType(id componentId) reflect.Type {
	ecs.componentLock.Lock()
	defer ecs.componentLock.Unlock()

	if t, ok := ecs.componentIdTypeMap[id]; ok {
		return t
	}
	panic(fmt.Sprintf("component id %d not registered", id))
}
