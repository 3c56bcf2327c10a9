// Package game holds the shooter's components, world-level singletons and the
// systems that run one simulation tick.
package game

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/geom"
)

// Options configures NewWorld. Zero values fall back to the window size from
// config, a discarding logger and silence.
type Options struct {
	Width, Height float32

	// Seed feeds a PCG source when Source is nil.
	Seed   uint64
	Source rand.Source

	Logger *slog.Logger
	Sound  SoundPlayer

	// Autopilot registers AutopilotSystem ahead of the input system.
	Autopilot bool

	SessionID uuid.UUID

	// Registry must already hold the gameplay components; frontends pass
	// one from NewRegistry with their own types added.
	Registry *ecs.ComponentRegistry
}

// World is a ready-to-step simulation.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	game    *ecs.Singleton[Game]
	input   *ecs.Singleton[InputState]
	session *ecs.Singleton[Session]
}

// NewRegistry registers every gameplay component type.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Movable](registry)
	ecs.RegisterComponent[SpriteSize](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[Projectile](registry)
	ecs.RegisterComponent[FromPlayer](registry)
	ecs.RegisterComponent[FromEnemy](registry)
	ecs.RegisterComponent[Explosion](registry)
	ecs.RegisterComponent[Tile](registry)
	return registry
}

// NewWorld builds the storage, its singletons and floor, and the simulation
// scheduler with the gameplay systems in tick order.
func NewWorld(opts Options) *World {
	if opts.Width == 0 || opts.Height == 0 {
		opts.Width, opts.Height = config.WindowWidth, config.WindowHeight
	}
	if opts.Source == nil {
		opts.Source = rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.SessionID == uuid.Nil {
		opts.SessionID = uuid.New()
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	log := opts.Logger

	storage := ecs.NewStorage(opts.Registry)

	ecs.NewSingleton(storage, WinSize{W: opts.Width, H: opts.Height})
	ecs.NewSingleton(storage, InputState{})
	ecs.NewSingleton(storage, Rng{R: rand.New(opts.Source)})
	ecs.NewSingleton(storage, SpawnState{})
	ecs.NewSingleton(storage, SoundQueue{})

	w := &World{
		Storage: storage,
		game:    ecs.NewSingleton(storage, newGame()),
		input:   ecs.NewSingleton[InputState](storage),
		session: ecs.NewSingleton(storage, Session{
			ID:      opts.SessionID,
			Seed:    opts.Seed,
			Started: time.Now(),
		}),
	}

	spawnFloor(storage, opts.Width)

	scheduler := ecs.NewScheduler(storage)
	if opts.Autopilot {
		scheduler.Register(&AutopilotSystem{})
	}
	scheduler.Register(&PlayerSpawnSystem{Log: log})
	scheduler.Register(&PlayerInputSystem{})
	scheduler.Register(&PlayerShootSystem{})
	scheduler.Register(&EnemySpawnSystem{Log: log})
	scheduler.Register(&EnemyShootSystem{})
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&PlayerMissileCollisionSystem{Log: log})
	scheduler.Register(&EnemyHitPlayerSystem{Log: log})
	scheduler.Register(&ExplosionSystem{})
	scheduler.Register(&DifficultySystem{Log: log})
	scheduler.Register(&RestartSystem{Log: log})
	scheduler.Register(&AudioSystem{Player: opts.Sound})
	w.Scheduler = scheduler

	log.Info("world created",
		"width", opts.Width,
		"height", opts.Height,
		"seed", opts.Seed,
		"autopilot", opts.Autopilot,
	)
	return w
}

// spawnFloor lays tiles along FloorY across the full window width.
func spawnFloor(storage *ecs.Storage, width float32) {
	for x := -width/2 + config.TileWidth/2; x < width/2+config.TileWidth/2; x += config.TileWidth {
		storage.Spawn(
			Transform{Translation: geom.Vec2{X: x, Y: config.FloorY}, Scale: 1},
			SpriteSize{W: config.TileWidth, H: config.TileHeight},
			Sprite{Kind: KindTile},
			Tile{},
		)
	}
}

// Step runs one simulation tick of TimeStep seconds.
func (w *World) Step() {
	w.Scheduler.Once(config.TimeStep)
}

// Game returns the live run state.
func (w *World) Game() *Game {
	return w.game.Get()
}

// Input returns the input singleton the frontend writes into.
func (w *World) Input() *InputState {
	return w.input.Get()
}

func (w *World) Session() Session {
	return *w.session.Get()
}
