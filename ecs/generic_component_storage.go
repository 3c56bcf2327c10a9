package ecs

import (
	"iter"
	"reflect"
)

// componentColumn is a type-erased column of one component type inside an archetype.
type componentColumn interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to column factories. Each Storage
// owns one, so independent worlds never share column layouts.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent registers a component type with the registry.
// Every type passed to Spawn or AddComponent must be registered first.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentColumn {
		return &blockColumn[T]{}
	}
}

// Registered reports whether the type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) componentColumn {
	factory := r.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

// blockColumn stores components of type T in fixed-size blocks. Freed slots
// are reused before the column grows, so indices stay stable for live entities.
type blockColumn[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(c.freeSlots); n > 0 {
		index = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		index = c.nextIndex
		c.nextIndex++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([blockSize]T))
			c.filled = append(c.filled, new([blockSize]bool))
		}
	}

	block, slot := index/blockSize, index%blockSize
	c.blocks[block][slot] = value
	c.filled[block][slot] = true
	return index
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (c *blockColumn[T]) Get(index int) any {
	if !c.Has(index) {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) Delete(index int) {
	if !c.Has(index) {
		return
	}
	block, slot := index/blockSize, index%blockSize
	var zero T
	c.blocks[block][slot] = zero
	c.filled[block][slot] = false
	c.freeSlots = append(c.freeSlots, index)
}

func (c *blockColumn[T]) Has(index int) bool {
	if index < 0 || index >= c.nextIndex {
		return false
	}
	return c.filled[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) Len() int {
	return c.nextIndex - len(c.freeSlots)
}

func (c *blockColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.nextIndex; i++ {
			if !c.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
