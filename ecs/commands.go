package ecs

import "reflect"

// Commands buffers structural changes made while systems run. The Scheduler
// flushes them after the last system of the frame: deletes first, then
// component removals and additions, then spawns, then deferred functions.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

// NewCommands returns an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after all structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion. Queuing the same entity twice is harmless.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Deleting reports whether entity is already queued for deletion this frame.
func (c *Commands) Deleting(entity EntityId) bool {
	for _, id := range c.deletes {
		if id == entity {
			return true
		}
	}
	return false
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Pending reports how many operations are queued.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued operations to storage and resets the buffer.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]struct{}, len(c.deletes))
	for _, id := range c.deletes {
		if _, done := deleted[id]; done {
			continue
		}
		storage.Delete(id)
		deleted[id] = struct{}{}
	}

	for _, cmd := range c.removes {
		if _, gone := deleted[cmd.entity]; !gone {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if _, gone := deleted[cmd.entity]; !gone {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
