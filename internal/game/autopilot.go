package game

import (
	"math"

	"github.com/plus3/starshot/ecs"
)

// AutopilotSystem plays the game without a keyboard: it keeps firing to the
// right, lines the player up with the nearest enemy ahead of it and restarts
// after game over. Registered ahead of PlayerInputSystem, it stands in for a frontend.
type AutopilotSystem struct {
	Game    ecs.Singleton[Game]
	Input   ecs.Singleton[InputState]
	Players ecs.Query[struct {
		*Player
		*Transform
	}]
	Enemies ecs.Query[struct {
		*Enemy
		*Transform
	}]
}

const autopilotDeadband = 4

func (s *AutopilotSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get()
	*in = InputState{Restart: s.Game.Get().GameOver}

	_, p, ok := s.Players.Single()
	if !ok {
		return
	}
	in.Fire = true

	target, best := float32(0), float32(math.MaxFloat32)
	for e := range s.Enemies.Values() {
		dx := e.Transform.Translation.X - p.Transform.Translation.X
		if dx < 0 || dx >= best {
			continue
		}
		best, target = dx, e.Transform.Translation.Y
	}

	dy := target - p.Transform.Translation.Y
	switch {
	case best != math.MaxFloat32 && dy > autopilotDeadband:
		in.Up = true
	case best != math.MaxFloat32 && dy < -autopilotDeadband:
		in.Down = true
	case s.Game.Get().Direction != DirRight:
		// Vertical moves turn the player; face right again once lined up.
		in.Right = true
	}
}
