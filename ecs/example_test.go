package ecs_test

import (
	"fmt"

	"github.com/plus3/starshot/ecs"
)

type GameScore struct {
	Points int
	Level  int
}

// ExampleNewSingleton shows that every handle to a singleton shares one value.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	score := ecs.NewSingleton[GameScore](storage, GameScore{Level: 1})
	score.Get().Points = 100

	same := ecs.NewSingleton[GameScore](storage)
	fmt.Printf("points=%d level=%d\n", same.Get().Points, same.Get().Level)

	var read *GameScore
	if storage.ReadSingleton(&read) {
		fmt.Printf("read points=%d\n", read.Points)
	}

	// Output:
	// points=100 level=1
	// read points=100
}

type cleanupSystem struct {
	Entities ecs.Query[struct {
		Id ecs.EntityId
		*Health
	}]
}

func (s *cleanupSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		if item.Health.Current <= 0 {
			frame.Commands.Delete(item.Id)
		}
	}
}

// ExampleCommands deletes entities while iterating by queuing the deletes.
func ExampleCommands() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Health{Current: 0, Max: 100})
	storage.Spawn(Health{Current: 50, Max: 100})
	storage.Spawn(Health{Current: 100, Max: 100})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&cleanupSystem{})
	scheduler.Once(1.0)

	remaining := 0
	for range ecs.NewView[struct{ *Health }](storage).Values() {
		remaining++
	}
	fmt.Printf("remaining entities: %d\n", remaining)

	// Output:
	// remaining entities: 2
}
