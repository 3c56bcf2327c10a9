package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/starshot/ecs"
	"github.com/stretchr/testify/assert"
)

type spawnSystem struct{}

func (s *spawnSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5})
	frame.Commands.Spawn(Position{X: 3, Y: 4})
}

type countSystem struct {
	Positions ecs.Query[struct{ *Position }]
	Seen      int
}

func (s *countSystem) Execute(frame *ecs.UpdateFrame) {
	s.Seen = s.Positions.Len()
}

type deleteTwiceSystem struct {
	target ecs.EntityId
}

func (s *deleteTwiceSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Delete(s.target)
	frame.Commands.Delete(s.target)
}

func TestCommandsAreDeferredUntilFlush(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	counter := &countSystem{}
	scheduler.Register(&spawnSystem{})
	scheduler.Register(counter)

	scheduler.Once(1)
	assert.Equal(t, 0, counter.Seen, "spawns are not visible during the frame that queued them")

	scheduler.Once(1)
	assert.Equal(t, 2, counter.Seen)
}

func TestCommandsDeleteTwice(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	target := storage.Spawn(Position{X: 1})
	bystander := storage.Spawn(Position{X: 2})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&deleteTwiceSystem{target: target})
	scheduler.Once(1)

	assert.False(t, storage.Alive(target))
	assert.True(t, storage.Alive(bystander))
}

func TestCommandsDeleting(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	target := storage.Spawn(Position{X: 1})
	other := storage.Spawn(Position{X: 2})

	cmds := ecs.NewCommands()
	assert.False(t, cmds.Deleting(target))

	cmds.Delete(target)
	assert.True(t, cmds.Deleting(target))
	assert.False(t, cmds.Deleting(other))

	cmds.Flush(storage)
	assert.False(t, cmds.Deleting(target), "flush resets the queue")
	assert.False(t, storage.Alive(target))
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	doomed := storage.Spawn(Position{X: 1})
	grows := storage.Spawn(Position{X: 2})
	shrinks := storage.Spawn(Position{X: 3}, Velocity{DX: 1})

	var order []string
	cmds := ecs.NewCommands()
	cmds.Defer(func() { order = append(order, "defer") })
	cmds.AddComponent(doomed, Health{Current: 1})
	cmds.Delete(doomed)
	cmds.AddComponent(grows, Health{Current: 2})
	cmds.RemoveComponent(shrinks, reflect.TypeFor[Velocity]())
	cmds.Spawn(Name{Value: "fresh"})
	assert.Equal(t, 6, cmds.Pending())

	cmds.Flush(storage)
	assert.Equal(t, 0, cmds.Pending())
	assert.Equal(t, []string{"defer"}, order)

	assert.False(t, storage.Alive(doomed))

	healthy := 0
	for item := range ecs.NewView[struct {
		*Position
		*Health
	}](storage).Values() {
		healthy++
		assert.Equal(t, float32(2), item.Position.X)
	}
	assert.Equal(t, 1, healthy)

	for range ecs.NewView[struct{ *Velocity }](storage).Values() {
		t.Error("velocity should have been removed")
	}

	names := 0
	for range ecs.NewView[struct{ *Name }](storage).Values() {
		names++
	}
	assert.Equal(t, 1, names)
}
