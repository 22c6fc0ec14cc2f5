package solarfx

import (
	"slices"

	"github.com/gekko3d/solarfx/render/core"
	"github.com/gekko3d/solarfx/render/shaders"
	"github.com/google/uuid"
)

type registryEntry struct {
	object   *ShadedObject
	time     *core.Uniform
	distance *core.Uniform
}

// UniformRegistry is the set of shaded objects the sync pass updates, in
// registration order. Uniform handles are resolved once, at registration.
type UniformRegistry struct {
	entries []registryEntry
	index   map[uuid.UUID]int
}

func NewUniformRegistry() *UniformRegistry {
	return &UniformRegistry{index: make(map[uuid.UUID]int)}
}

func floatHandle(set *core.UniformSet, name string) *core.Uniform {
	u, ok := set.Get(name)
	if !ok || u.Kind != core.UniformFloat {
		return nil
	}
	return u
}

// Register adds an object, or refreshes its handles if it is already present.
func (r *UniformRegistry) Register(o *ShadedObject) {
	entry := registryEntry{
		object:   o,
		time:     floatHandle(o.Uniforms, shaders.UniformTime),
		distance: floatHandle(o.Uniforms, shaders.UniformDistanceToSun),
	}
	if i, ok := r.index[o.Id]; ok {
		r.entries[i] = entry
		return
	}
	r.index[o.Id] = len(r.entries)
	r.entries = append(r.entries, entry)
}

// Unregister removes an object; unknown ids are ignored.
func (r *UniformRegistry) Unregister(id uuid.UUID) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	delete(r.index, id)
	for j := i; j < len(r.entries); j++ {
		r.index[r.entries[j].object.Id] = j
	}
	return true
}

func (r *UniformRegistry) Get(id uuid.UUID) (*ShadedObject, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.entries[i].object, true
}

func (r *UniformRegistry) Len() int { return len(r.entries) }

func (r *UniformRegistry) Each(fn func(o *ShadedObject)) {
	for _, e := range r.entries {
		fn(e.object)
	}
}
