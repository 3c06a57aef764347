package model

import (
	"iter"
	"maps"
	"slices"
)

// Registry is a keyed collection whose iteration order is the sorted key order.
type Registry[T any] struct {
	items map[string]T
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

func (r *Registry[T]) Get(key string) (T, bool) {
	v, ok := r.items[key]
	return v, ok
}

func (r *Registry[T]) Has(key string) bool {
	_, ok := r.items[key]
	return ok
}

func (r *Registry[T]) Put(key string, v T) {
	r.items[key] = v
}

func (r *Registry[T]) Delete(key string) {
	delete(r.items, key)
}

func (r *Registry[T]) Len() int {
	return len(r.items)
}

// Keys returns the keys in ascending order.
func (r *Registry[T]) Keys() []string {
	return slices.Sorted(maps.Keys(r.items))
}

// Values returns the values ordered by key.
func (r *Registry[T]) Values() []T {
	keys := r.Keys()
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.items[k])
	}
	return out
}

// All iterates over the entries in key order.
func (r *Registry[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, k := range r.Keys() {
			if !yield(k, r.items[k]) {
				return
			}
		}
	}
}

// Clone returns an independent registry with every value passed through copyFn.
func (r *Registry[T]) Clone(copyFn func(T) T) *Registry[T] {
	c := &Registry[T]{items: make(map[string]T, len(r.items))}
	for k, v := range r.items {
		c.items[k] = copyFn(v)
	}
	return c
}

// Registries holds the two registries built from a corpus.
type Registries struct {
	Enums *Registry[*EnumInfo]
	Types *Registry[*TypeInfo]
}

func NewRegistries() *Registries {
	return &Registries{
		Enums: NewRegistry[*EnumInfo](),
		Types: NewRegistry[*TypeInfo](),
	}
}

// Clone deep-copies both registries.
func (r *Registries) Clone() *Registries {
	return &Registries{
		Enums: r.Enums.Clone((*EnumInfo).Clone),
		Types: r.Types.Clone((*TypeInfo).Clone),
	}
}

// FunctionCount returns the number of functions attached to all entities.
func (r *Registries) FunctionCount() int {
	n := 0
	for _, ti := range r.Types.All() {
		n += len(ti.Functions)
	}
	return n
}
