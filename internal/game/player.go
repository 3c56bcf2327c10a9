package game

import (
	"log/slog"

	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/geom"
)

// PlayerSpawnSystem spawns the player at the left edge when none is alive and
// the respawn timer has run out.
type PlayerSpawnSystem struct {
	Game ecs.Singleton[Game]
	Win  ecs.Singleton[WinSize]
	Log  *slog.Logger
}

func (s *PlayerSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	g := s.Game.Get()
	if g.GameOver || g.PlayerRef.Alive() {
		return
	}
	if g.RespawnTimer > 0 {
		g.RespawnTimer -= frame.DeltaTime
		if g.RespawnTimer > 0 {
			return
		}
		g.RespawnTimer = 0
	}

	win := s.Win.Get()
	pos := geom.Vec2{X: -win.W/2 + config.PlayerStartInset, Y: config.CharY}
	g.Direction = DirRight
	g.FireDelay = 0

	storage := frame.Storage
	frame.Commands.Defer(func() {
		id := storage.Spawn(
			Transform{Translation: pos, Scale: config.PlayerScale},
			Velocity{},
			Movable{},
			SpriteSize{W: config.PlayerWidth, H: config.PlayerHeight},
			Sprite{Kind: KindPlayer},
			Player{},
		)
		g.PlayerRef = storage.CreateEntityRef(id)
	})
	s.Log.Info("player spawned", "lives", g.Lives, "x", pos.X, "y", pos.Y)
}

// PlayerInputSystem turns the held keys into the player's velocity. The last
// axis checked sets the facing direction, so vertical keys win over
// horizontal ones. Left wins over Right and Up wins over Down.
type PlayerInputSystem struct {
	Game    ecs.Singleton[Game]
	Input   ecs.Singleton[InputState]
	Players ecs.Query[struct {
		*Player
		*Velocity
	}]
}

func (s *PlayerInputSystem) Execute(frame *ecs.UpdateFrame) {
	g := s.Game.Get()
	if g.GameOver {
		return
	}
	in := s.Input.Get()

	for p := range s.Players.Values() {
		var v Velocity
		switch {
		case in.Left:
			v.X = -1
			g.Direction = DirLeft
		case in.Right:
			v.X = 1
			g.Direction = DirRight
		}
		switch {
		case in.Up:
			v.Y = 1
			g.Direction = DirUp
		case in.Down:
			v.Y = -1
			g.Direction = DirDown
		}
		*p.Velocity = v
	}
}

// PlayerShootSystem fires a missile in the facing direction while fire is
// held, at most once every PlayerFireDelay ticks.
type PlayerShootSystem struct {
	Game    ecs.Singleton[Game]
	Input   ecs.Singleton[InputState]
	Sounds  ecs.Singleton[SoundQueue]
	Players ecs.Query[struct {
		*Player
		*Transform
	}]
}

func (s *PlayerShootSystem) Execute(frame *ecs.UpdateFrame) {
	g := s.Game.Get()
	if g.FireDelay > 0 {
		g.FireDelay--
	}
	if g.GameOver || g.FireDelay > 0 || !s.Input.Get().Fire {
		return
	}

	_, p, ok := s.Players.Single()
	if !ok {
		return
	}

	dir := g.Direction
	frame.Commands.Spawn(
		Transform{Translation: p.Transform.Translation.Add(missileOffset(dir)), Scale: 1},
		velocityToward(dir, config.MissileSpeed),
		Movable{AutoDespawn: true},
		missileSize(dir),
		Sprite{Kind: KindPlayerMissile},
		Projectile{Direction: dir},
		FromPlayer{},
	)
	g.FireDelay = config.PlayerFireDelay
	s.Sounds.Get().Push(SoundShot)
}

// missileOffset is where a missile leaves the player's sprite.
func missileOffset(dir Direction) geom.Vec2 {
	switch dir {
	case DirLeft:
		return geom.Vec2{X: -config.MissileOffsetX, Y: config.MissileOffsetY}
	case DirUp:
		return geom.Vec2{Y: config.PlayerHeight / 2 * config.PlayerScale}
	case DirDown:
		return geom.Vec2{Y: -config.PlayerHeight / 2 * config.PlayerScale}
	default:
		return geom.Vec2{X: config.MissileOffsetX, Y: config.MissileOffsetY}
	}
}

// missileSize turns the upright missile sprite sideways for horizontal shots.
func missileSize(dir Direction) SpriteSize {
	if dir.Horizontal() {
		return SpriteSize{W: config.MissileHeight, H: config.MissileWidth}
	}
	return SpriteSize{W: config.MissileWidth, H: config.MissileHeight}
}

func velocityToward(dir Direction, speed float32) Velocity {
	v := dir.Vector().Scale(speed)
	return Velocity{X: v.X, Y: v.Y}
}
