package ecs

import (
	"cmp"
	"slices"

	"github.com/milk9111/camprovider/ecs/component"
)

// EntitiesWith returns entities holding kind in ascending id order, which is
// creation order for entities that were never recycled.
func EntitiesWith[T any](w *World, kind component.ComponentKind[T]) []Entity {
	if w == nil {
		return nil
	}
	s := w.store(kind.ID(), false)
	if s.Len() == 0 {
		return nil
	}
	out := slices.Clone(s.Entities())
	sortByID(out)
	return out
}

func sortByID(ents []Entity) {
	slices.SortFunc(ents, func(a, b Entity) int {
		return cmp.Compare(a.id(), b.id())
	})
}

// intersectEntities returns entities present in both sets in ascending id
// order.
func intersectEntities(a, b *SparseSet) []Entity {
	if a == nil || b == nil {
		return nil
	}
	// iterate smaller set
	if a.Len() > b.Len() {
		a, b = b, a
	}
	out := make([]Entity, 0, a.Len())
	for _, e := range a.dense {
		if b.Has(e) {
			out = append(out, e)
		}
	}
	sortByID(out)
	return out
}

// ForEach2 visits entities holding both kinds in ascending id order.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil {
		return
	}
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	for _, e := range intersectEntities(sa, sb) {
		fn(e, sa.Get(e).(*A), sb.Get(e).(*B))
	}
}
