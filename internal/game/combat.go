package game

import (
	"log/slog"

	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/geom"
)

type body struct {
	*Transform
	*SpriteSize
}

func (b body) overlaps(o body) bool {
	_, hit := geom.Collide(b.Translation, hitbox(b.Transform, b.SpriteSize), o.Translation, hitbox(o.Transform, o.SpriteSize))
	return hit
}

func spawnExplosion(cmds *ecs.Commands, at geom.Vec2) {
	cmds.Spawn(
		Transform{Translation: at, Scale: 1},
		SpriteSize{W: config.ExplosionSize, H: config.ExplosionSize},
		Sprite{Kind: KindExplosion},
		Explosion{Remaining: config.ExplosionDuration},
	)
}

// PlayerMissileCollisionSystem destroys enemies hit by player missiles. Each
// missile and each enemy is consumed at most once per frame.
type PlayerMissileCollisionSystem struct {
	Game     ecs.Singleton[Game]
	Sounds   ecs.Singleton[SoundQueue]
	Missiles ecs.Query[struct {
		*Projectile
		*FromPlayer
		*Transform
		*SpriteSize
	}]
	Enemies ecs.Query[struct {
		*Enemy
		*Transform
		*SpriteSize
	}]
	Log *slog.Logger

	consumed map[ecs.EntityId]struct{}
}

func (s *PlayerMissileCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	g := s.Game.Get()
	if g.GameOver {
		return
	}
	if s.consumed == nil {
		s.consumed = make(map[ecs.EntityId]struct{})
	}
	clear(s.consumed)

	for missileId, m := range s.Missiles.Iter() {
		missile := body{m.Transform, m.SpriteSize}
		for enemyId, e := range s.Enemies.Iter() {
			if _, gone := s.consumed[enemyId]; gone {
				continue
			}
			if !missile.overlaps(body{e.Transform, e.SpriteSize}) {
				continue
			}

			s.consumed[enemyId] = struct{}{}
			frame.Commands.Delete(missileId)
			frame.Commands.Delete(enemyId)
			spawnExplosion(frame.Commands, e.Transform.Translation)

			g.Kills++
			g.Score += config.ScorePerKill
			s.Sounds.Get().Push(SoundExplosion)
			s.Log.Debug("enemy destroyed", "kills", g.Kills, "score", g.Score)
			break
		}
	}
}

// EnemyHitPlayerSystem kills the player when an enemy shot or an enemy body
// touches it. Enemies already destroyed this frame are ignored. The player loses a life and respawns after RespawnDelay, or the
// game ends when no lives are left.
type EnemyHitPlayerSystem struct {
	Game    ecs.Singleton[Game]
	Sounds  ecs.Singleton[SoundQueue]
	Players ecs.Query[struct {
		*Player
		*Transform
		*SpriteSize
	}]
	Shots ecs.Query[struct {
		*Projectile
		*FromEnemy
		*Transform
		*SpriteSize
	}]
	Enemies ecs.Query[struct {
		*Enemy
		*Transform
		*SpriteSize
	}]
	Log *slog.Logger
}

func (s *EnemyHitPlayerSystem) Execute(frame *ecs.UpdateFrame) {
	playerId, p, ok := s.Players.Single()
	if !ok {
		return
	}
	player := body{p.Transform, p.SpriteSize}

	hitBy, found := ecs.EntityId(0), false
	for id, shot := range s.Shots.Iter() {
		if frame.Commands.Deleting(id) {
			continue
		}
		if player.overlaps(body{shot.Transform, shot.SpriteSize}) {
			hitBy, found = id, true
			break
		}
	}
	if !found {
		for id, e := range s.Enemies.Iter() {
			if frame.Commands.Deleting(id) {
				continue
			}
			if player.overlaps(body{e.Transform, e.SpriteSize}) {
				hitBy, found = id, true
				break
			}
		}
	}
	if !found {
		return
	}

	frame.Commands.Delete(hitBy)
	frame.Commands.Delete(playerId)
	spawnExplosion(frame.Commands, p.Transform.Translation)
	s.Sounds.Get().Push(SoundHit)

	g := s.Game.Get()
	g.Lives--
	if g.Lives <= 0 {
		g.Lives = 0
		g.GameOver = true
		s.Log.Info("game over", "score", g.Score, "kills", g.Kills, "level", g.Level)
		return
	}
	g.RespawnTimer = config.RespawnDelay
	s.Log.Info("player hit", "lives", g.Lives)
}

// ExplosionSystem removes explosions once their lifetime has elapsed.
type ExplosionSystem struct {
	Explosions ecs.Query[struct{ *Explosion }]
}

func (s *ExplosionSystem) Execute(frame *ecs.UpdateFrame) {
	for id, e := range s.Explosions.Iter() {
		e.Explosion.Remaining -= frame.DeltaTime
		if e.Explosion.Remaining <= 0 {
			frame.Commands.Delete(id)
		}
	}
}

// DifficultySystem derives the level from the kill count.
type DifficultySystem struct {
	Game ecs.Singleton[Game]
	Log  *slog.Logger
}

func (s *DifficultySystem) Execute(frame *ecs.UpdateFrame) {
	g := s.Game.Get()
	level := 1 + g.Kills/config.KillsPerLevel
	if level <= g.Level {
		return
	}
	g.Level = level
	s.Log.Info("level up", "level", level, "spawn_denom", spawnDenom(level), "enemy_cap", enemyCap(level))
}

// RestartSystem clears the field and resets the run when restart is pressed
// after game over. A player still alive when the run ended is removed too.
type RestartSystem struct {
	Game        ecs.Singleton[Game]
	Input       ecs.Singleton[InputState]
	Spawn       ecs.Singleton[SpawnState]
	Players     ecs.Query[struct{ *Player }]
	Enemies     ecs.Query[struct{ *Enemy }]
	Projectiles ecs.Query[struct{ *Projectile }]
	Explosions  ecs.Query[struct{ *Explosion }]
	Log         *slog.Logger
}

func (s *RestartSystem) Execute(frame *ecs.UpdateFrame) {
	g := s.Game.Get()
	if !g.GameOver || !s.Input.Get().Restart {
		return
	}

	for id := range s.Players.Iter() {
		frame.Commands.Delete(id)
	}
	for id := range s.Enemies.Iter() {
		frame.Commands.Delete(id)
	}
	for id := range s.Projectiles.Iter() {
		frame.Commands.Delete(id)
	}
	for id := range s.Explosions.Iter() {
		frame.Commands.Delete(id)
	}

	s.Log.Info("restart", "final_score", g.Score)
	*g = newGame()
	*s.Spawn.Get() = SpawnState{}
}

// SoundPlayer plays the sounds queued during a frame.
type SoundPlayer interface {
	Play(Sound)
}

// AudioSystem hands the frame's queued sounds to the sound player.
type AudioSystem struct {
	Sounds ecs.Singleton[SoundQueue]
	Player SoundPlayer
}

func (s *AudioSystem) Execute(frame *ecs.UpdateFrame) {
	q := s.Sounds.Get()
	if s.Player != nil {
		for _, snd := range q.Pending {
			s.Player.Play(snd)
		}
	}
	q.Pending = q.Pending[:0]
}
