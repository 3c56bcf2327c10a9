package game

import (
	"log/slog"

	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/geom"
)

// spawnDenom is the denominator of the spawn roll at the given level.
func spawnDenom(level int) int {
	return max(config.SpawnDenom-(level-1), config.SpawnMinDenom)
}

// enemyCap is how many enemies may be alive at once at the given level.
func enemyCap(level int) int {
	return min(config.EnemyBaseCap+(level-1)*config.EnemyCapPerLevel, config.EnemyMaxCap)
}

func enemySpeed(level int) float32 {
	factor := min(1+float32(level-1)*config.EnemySpeedPerLevel, config.EnemyMaxSpeedFactor)
	return config.EnemySpeed * factor
}

// enemyFireDenom is the denominator of an enemy's fire roll at the given level.
func enemyFireDenom(level int) int {
	return max(config.EnemyFireDenom-(level-1)/2, 1)
}

// EnemySpawnSystem rolls for a new enemy every SpawnRollTicks. A successful
// roll spawns one enemy just inside the right edge, moving left, unless the
// live-enemy cap is reached.
type EnemySpawnSystem struct {
	Game    ecs.Singleton[Game]
	Win     ecs.Singleton[WinSize]
	Rng     ecs.Singleton[Rng]
	Spawn   ecs.Singleton[SpawnState]
	Enemies ecs.Query[struct{ *Enemy }]
	Log     *slog.Logger
}

func (s *EnemySpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if frame.Tick%config.SpawnRollTicks != 0 {
		return
	}
	g := s.Game.Get()
	if g.GameOver {
		return
	}

	state := s.Spawn.Get()
	state.Rolls++

	rng := s.Rng.Get().R
	if rng.IntN(spawnDenom(g.Level)) != 0 {
		return
	}
	if s.Enemies.Len() >= enemyCap(g.Level) {
		return
	}

	win := s.Win.Get()
	halfH := float32(config.EnemyHeight * config.EnemyScale / 2)
	low, high := float32(config.CharY), win.H/2-halfH
	pos := geom.Vec2{
		X: win.W/2 - config.EnemySpawnInset,
		Y: low + rng.Float32()*(high-low),
	}

	frame.Commands.Spawn(
		Transform{Translation: pos, Scale: config.EnemyScale},
		Velocity{X: -enemySpeed(g.Level)},
		Movable{AutoDespawn: true},
		SpriteSize{W: config.EnemyWidth, H: config.EnemyHeight},
		Sprite{Kind: KindEnemy},
		Enemy{FireCooldown: config.EnemyFireCooldown},
	)
	state.Spawned++
	s.Log.Debug("enemy spawned", "x", pos.X, "y", pos.Y, "level", g.Level)
}

// EnemyShootSystem counts down every enemy's cooldown. When it expires the
// enemy rolls to fire a shot to the left; higher levels shoot more often.
type EnemyShootSystem struct {
	Game    ecs.Singleton[Game]
	Rng     ecs.Singleton[Rng]
	Enemies ecs.Query[struct {
		*Enemy
		*Transform
	}]
}

func (s *EnemyShootSystem) Execute(frame *ecs.UpdateFrame) {
	g := s.Game.Get()
	rng := s.Rng.Get().R

	for e := range s.Enemies.Values() {
		if e.Enemy.FireCooldown > 0 {
			e.Enemy.FireCooldown--
			continue
		}
		e.Enemy.FireCooldown = config.EnemyFireCooldown
		if g.GameOver || rng.IntN(enemyFireDenom(g.Level)) != 0 {
			continue
		}

		muzzle := geom.Vec2{X: -config.EnemyWidth / 2 * e.Transform.Scale}
		frame.Commands.Spawn(
			Transform{Translation: e.Transform.Translation.Add(muzzle), Scale: 1},
			velocityToward(DirLeft, config.EnemyMissileSpeed),
			Movable{AutoDespawn: true},
			missileSize(DirLeft),
			Sprite{Kind: KindEnemyMissile},
			Projectile{Direction: DirLeft},
			FromEnemy{},
		)
	}
}
