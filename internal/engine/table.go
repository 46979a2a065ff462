package engine

import (
	"maps"
	"slices"
)

// Table is an immutable id-keyed collection. Put and Delete return a new
// Table and leave the receiver untouched.
type Table[T any] struct {
	rows map[string]T
}

// NewTable indexes items by key. Later duplicates win.
func NewTable[T any](items []T, key func(T) string) Table[T] {
	rows := make(map[string]T, len(items))
	for _, it := range items {
		rows[key(it)] = it
	}
	return Table[T]{rows: rows}
}

func (t Table[T]) Get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t Table[T]) Has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t Table[T]) Len() int {
	return len(t.rows)
}

func (t Table[T]) Put(id string, v T) Table[T] {
	rows := make(map[string]T, len(t.rows)+1)
	maps.Copy(rows, t.rows)
	rows[id] = v
	return Table[T]{rows: rows}
}

func (t Table[T]) Delete(ids ...string) Table[T] {
	rows := maps.Clone(t.rows)
	if rows == nil {
		rows = map[string]T{}
	}
	for _, id := range ids {
		delete(rows, id)
	}
	return Table[T]{rows: rows}
}

// Keys returns ids in ascending order. Order is for display only.
func (t Table[T]) Keys() []string {
	return slices.Sorted(maps.Keys(t.rows))
}

// Values returns rows ordered by id.
func (t Table[T]) Values() []T {
	out := make([]T, 0, len(t.rows))
	for _, k := range t.Keys() {
		out = append(out, t.rows[k])
	}
	return out
}

// Filter returns rows matching fn, ordered by id.
func (t Table[T]) Filter(fn func(T) bool) []T {
	out := []T{}
	for _, k := range t.Keys() {
		if v := t.rows[k]; fn(v) {
			out = append(out, v)
		}
	}
	return out
}
