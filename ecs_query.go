package gekko

import (
	"reflect"
)

// Queries iterate every archetype holding the requested components.
// Components passed as optionals may be missing; their pointer is then nil.
//
// To add a QueryN: declare the type, its MakeQueryN and a Map using column().
type Query1[A any] struct{ filter }
type Query2[A, B any] struct{ filter }
type Query3[A, B, C any] struct{ filter }
type Query4[A, B, C, D any] struct{ filter }

type filter struct {
	ecs     *Ecs
	without []any
}

func MakeQuery1[A any](cmd *Commands) Query1[A] { return Query1[A]{filter{ecs: cmd.app.ecs}} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B] {
	return Query2[A, B]{filter{ecs: cmd.app.ecs}}
}
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] {
	return Query3[A, B, C]{filter{ecs: cmd.app.ecs}}
}
func MakeQuery4[A, B, C, D any](cmd *Commands) Query4[A, B, C, D] {
	return Query4[A, B, C, D]{filter{ecs: cmd.app.ecs}}
}

// Without skips archetypes containing any of the given component types.
func (q Query1[A]) Without(components ...any) Query1[A] {
	q.without = append(q.without, components...)
	return q
}

func (q Query2[A, B]) Without(components ...any) Query2[A, B] {
	q.without = append(q.without, components...)
	return q
}

func (q Query3[A, B, C]) Without(components ...any) Query3[A, B, C] {
	q.without = append(q.without, components...)
	return q
}

func (q Query4[A, B, C, D]) Without(components ...any) Query4[A, B, C, D] {
	q.without = append(q.without, components...)
	return q
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	opt := identifyOptionals(q.ecs, optionals...)
	excl := identifyOptionals(q.ecs, q.without...)
	idA := identifyComponent[A](q.ecs)

	for _, arch := range q.ecs.archetypes {
		if arch.excluded(excl) {
			continue
		}
		a, okA := column[A](arch, idA, opt)
		if !okA {
			continue
		}
		for entityId, row := range arch.entities {
			if !m(entityId, at(a, row)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	opt := identifyOptionals(q.ecs, optionals...)
	excl := identifyOptionals(q.ecs, q.without...)
	idA := identifyComponent[A](q.ecs)
	idB := identifyComponent[B](q.ecs)

	for _, arch := range q.ecs.archetypes {
		if arch.excluded(excl) {
			continue
		}
		a, okA := column[A](arch, idA, opt)
		b, okB := column[B](arch, idB, opt)
		if !okA || !okB {
			continue
		}
		for entityId, row := range arch.entities {
			if !m(entityId, at(a, row), at(b, row)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	opt := identifyOptionals(q.ecs, optionals...)
	excl := identifyOptionals(q.ecs, q.without...)
	idA := identifyComponent[A](q.ecs)
	idB := identifyComponent[B](q.ecs)
	idC := identifyComponent[C](q.ecs)

	for _, arch := range q.ecs.archetypes {
		if arch.excluded(excl) {
			continue
		}
		a, okA := column[A](arch, idA, opt)
		b, okB := column[B](arch, idB, opt)
		c, okC := column[C](arch, idC, opt)
		if !okA || !okB || !okC {
			continue
		}
		for entityId, row := range arch.entities {
			if !m(entityId, at(a, row), at(b, row), at(c, row)) {
				return
			}
		}
	}
}

func (q Query4[A, B, C, D]) Map(m func(EntityId, *A, *B, *C, *D) bool, optionals ...any) {
	opt := identifyOptionals(q.ecs, optionals...)
	excl := identifyOptionals(q.ecs, q.without...)
	idA := identifyComponent[A](q.ecs)
	idB := identifyComponent[B](q.ecs)
	idC := identifyComponent[C](q.ecs)
	idD := identifyComponent[D](q.ecs)

	for _, arch := range q.ecs.archetypes {
		if arch.excluded(excl) {
			continue
		}
		a, okA := column[A](arch, idA, opt)
		b, okB := column[B](arch, idB, opt)
		c, okC := column[C](arch, idC, opt)
		d, okD := column[D](arch, idD, opt)
		if !okA || !okB || !okC || !okD {
			continue
		}
		for entityId, row := range arch.entities {
			if !m(entityId, at(a, row), at(b, row), at(c, row), at(d, row)) {
				return
			}
		}
	}
}

// column returns the typed component slice of the archetype. A missing
// optional component yields a nil slice and true; a missing required one false.
func column[T any](arch *archetype, id componentId, optionals set[componentId]) ([]T, bool) {
	if data, ok := arch.componentData[id]; ok {
		return data.([]T), true
	}
	if _, ok := optionals[id]; ok {
		return nil, true
	}
	return nil, false
}

func at[T any](data []T, r row) *T {
	if data == nil {
		return nil
	}
	return &data[r]
}

func (arch *archetype) excluded(without set[componentId]) bool {
	for id := range without {
		if _, ok := arch.componentData[id]; ok {
			return true
		}
	}
	return false
}

func identifyOptionals(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		res[ecs.getComponentId(componentType(c))] = struct{}{}
	}

	return res
}

func identifyComponent[T any](ecs *Ecs) componentId {
	var t T
	return ecs.getComponentId(reflect.TypeOf(t))
}
