package game

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/internal/config"
)

// WinSize is the logical window size. The world origin is its centre.
type WinSize struct {
	W, H float32
}

// Game is the run state shared by the gameplay systems.
type Game struct {
	PlayerRef    *ecs.EntityRef
	Direction    Direction
	FireDelay    int     // ticks until the player may fire again
	RespawnTimer float64 // seconds until the player respawns
	Lives        int
	Score        int
	Kills        int
	Level        int
	GameOver     bool
}

func newGame() Game {
	return Game{
		Direction: DirRight,
		Lives:     config.PlayerLives,
		Level:     1,
	}
}

// InputState is written by the frontend before each step.
type InputState struct {
	Left, Right, Up, Down bool
	Fire                  bool
	Restart               bool
}

// Rng is the only source of randomness in the simulation, so a seeded
// source replays a run exactly.
type Rng struct {
	R *rand.Rand
}

type SpawnState struct {
	Rolls   int
	Spawned int
}

type Sound int

const (
	SoundShot Sound = iota
	SoundExplosion
	SoundHit
)

func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundExplosion:
		return "explosion"
	default:
		return "hit"
	}
}

// SoundQueue collects the sounds requested during a frame. AudioSystem
// drains it at the end of the frame.
type SoundQueue struct {
	Pending []Sound
}

func (q *SoundQueue) Push(s Sound) {
	q.Pending = append(q.Pending, s)
}

type Session struct {
	ID      uuid.UUID
	Seed    uint64
	Started time.Time
}
