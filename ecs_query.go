package solarfx

import (
	"reflect"
)

// Queries visit every entity whose archetype holds all required component
// types. Types passed as optionals may be missing; the callback then gets nil
// for them. Returning false from the callback stops the iteration.
//
// To add a QueryN: declare the type, its MakeQueryN, and a Map that resolves
// one column per type parameter.
type Query1[A any] struct{ filter queryFilter }
type Query2[A, B any] struct{ filter queryFilter }
type Query3[A, B, C any] struct{ filter queryFilter }
type Query4[A, B, C, D any] struct{ filter queryFilter }

func MakeQuery1[A any](cmd *Commands) Query1[A] {
	return Query1[A]{filter: queryFilter{ecs: cmd.app.ecs}}
}
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] {
	return Query2[A, B]{filter: queryFilter{ecs: cmd.app.ecs}}
}
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] {
	return Query3[A, B, C]{filter: queryFilter{ecs: cmd.app.ecs}}
}
func MakeQuery4[A, B, C, D any](cmd *Commands) Query4[A, B, C, D] {
	return Query4[A, B, C, D]{filter: queryFilter{ecs: cmd.app.ecs}}
}

// Without excludes archetypes holding any of the given component types.
func (q Query1[A]) Without(components ...any) Query1[A] {
	q.filter = q.filter.without(components)
	return q
}
func (q Query2[A, B]) Without(components ...any) Query2[A, B] {
	q.filter = q.filter.without(components)
	return q
}
func (q Query3[A, B, C]) Without(components ...any) Query3[A, B, C] {
	q.filter = q.filter.without(components)
	return q
}
func (q Query4[A, B, C, D]) Without(components ...any) Query4[A, B, C, D] {
	q.filter = q.filter.without(components)
	return q
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	f := q.filter
	idA := componentIdOf[A](f.ecs)
	opt := f.optionals(optionals)

	for _, arch := range f.ecs.archetypes {
		if f.excludes(arch) {
			continue
		}
		a, ok := columnFor[A](arch, idA, opt)
		if !ok {
			continue
		}
		for eid, r := range arch.entities {
			if !m(eid, a.at(r)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	f := q.filter
	idA, idB := componentIdOf[A](f.ecs), componentIdOf[B](f.ecs)
	opt := f.optionals(optionals)

	for _, arch := range f.ecs.archetypes {
		if f.excludes(arch) {
			continue
		}
		a, okA := columnFor[A](arch, idA, opt)
		b, okB := columnFor[B](arch, idB, opt)
		if !okA || !okB {
			continue
		}
		for eid, r := range arch.entities {
			if !m(eid, a.at(r), b.at(r)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	f := q.filter
	idA, idB, idC := componentIdOf[A](f.ecs), componentIdOf[B](f.ecs), componentIdOf[C](f.ecs)
	opt := f.optionals(optionals)

	for _, arch := range f.ecs.archetypes {
		if f.excludes(arch) {
			continue
		}
		a, okA := columnFor[A](arch, idA, opt)
		b, okB := columnFor[B](arch, idB, opt)
		c, okC := columnFor[C](arch, idC, opt)
		if !okA || !okB || !okC {
			continue
		}
		for eid, r := range arch.entities {
			if !m(eid, a.at(r), b.at(r), c.at(r)) {
				return
			}
		}
	}
}

func (q Query4[A, B, C, D]) Map(m func(EntityId, *A, *B, *C, *D) bool, optionals ...any) {
	f := q.filter
	idA, idB := componentIdOf[A](f.ecs), componentIdOf[B](f.ecs)
	idC, idD := componentIdOf[C](f.ecs), componentIdOf[D](f.ecs)
	opt := f.optionals(optionals)

	for _, arch := range f.ecs.archetypes {
		if f.excludes(arch) {
			continue
		}
		a, okA := columnFor[A](arch, idA, opt)
		b, okB := columnFor[B](arch, idB, opt)
		c, okC := columnFor[C](arch, idC, opt)
		d, okD := columnFor[D](arch, idD, opt)
		if !okA || !okB || !okC || !okD {
			continue
		}
		for eid, r := range arch.entities {
			if !m(eid, a.at(r), b.at(r), c.at(r), d.at(r)) {
				return
			}
		}
	}
}

type queryFilter struct {
	ecs      *Ecs
	excluded []componentId
}

func (f queryFilter) without(components []any) queryFilter {
	excluded := make([]componentId, 0, len(f.excluded)+len(components))
	excluded = append(excluded, f.excluded...)
	for _, c := range components {
		excluded = append(excluded, f.ecs.getComponentId(componentType(c)))
	}
	f.excluded = excluded
	return f
}

func (f queryFilter) excludes(arch *archetype) bool {
	for _, id := range f.excluded {
		if _, ok := arch.columns[id]; ok {
			return true
		}
	}
	return false
}

func (f queryFilter) optionals(components []any) set[componentId] {
	res := make(set[componentId], len(components))
	for _, c := range components {
		res[f.ecs.getComponentId(componentType(c))] = struct{}{}
	}
	return res
}

// queryColumn is a typed view of one archetype column. absent marks an
// optional component the archetype does not have.
type queryColumn[T any] struct {
	data   []T
	absent bool
}

func (c queryColumn[T]) at(r row) *T {
	if c.absent {
		return nil
	}
	return &c.data[r]
}

func columnFor[T any](arch *archetype, id componentId, optional set[componentId]) (queryColumn[T], bool) {
	if col, ok := arch.columns[id]; ok {
		return queryColumn[T]{data: col.data.([]T)}, true
	}
	if _, ok := optional[id]; ok {
		return queryColumn[T]{absent: true}, true
	}
	return queryColumn[T]{}, false
}

func componentIdOf[T any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeFor[T]())
}
