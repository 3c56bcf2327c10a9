package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource returns the same word forever. A small nonzero word makes every
// IntN roll come up 0; the all-ones word never rolls 0.
type fixedSource uint64

func (s fixedSource) Uint64() uint64 { return uint64(s) }

const (
	alwaysRoll fixedSource = 1 << 20
	neverRoll  fixedSource = ^fixedSource(0)
)

type recordingPlayer struct {
	played []Sound
}

func (p *recordingPlayer) Play(s Sound) {
	p.played = append(p.played, s)
}

func newTestWorld(t *testing.T, src fixedSource) (*World, *recordingPlayer) {
	t.Helper()
	sounds := &recordingPlayer{}
	w := NewWorld(Options{
		Width:  config.WindowWidth,
		Height: config.WindowHeight,
		Source: src,
		Sound:  sounds,
	})
	return w, sounds
}

func count[T any](w *World) int {
	n := 0
	for range ecs.NewView[struct{ C *T }](w.Storage).Iter() {
		n++
	}
	return n
}

func playerTransform(t *testing.T, w *World) *Transform {
	t.Helper()
	g := w.Game()
	require.True(t, g.PlayerRef.Alive(), "player should be alive")
	id, ok := w.Storage.ResolveEntityRef(g.PlayerRef)
	require.True(t, ok)
	tr := ecs.ReadComponent[Transform](w.Storage, id)
	require.NotNil(t, tr)
	return tr
}

func TestNewWorldSpawnsFloor(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)

	assert.Equal(t, 40, count[Tile](w))
	assert.Equal(t, 0, count[Player](w))

	g := w.Game()
	assert.Equal(t, config.PlayerLives, g.Lives)
	assert.Equal(t, 1, g.Level)
	assert.Equal(t, DirRight, g.Direction)
	assert.NotEqual(t, uuid.Nil, w.Session().ID)
}

func TestPlayerSpawnsAtStart(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	w.Step()

	assert.Equal(t, 1, count[Player](w))
	tr := playerTransform(t, w)
	assert.InDelta(t, -config.WindowWidth/2+config.PlayerStartInset, tr.Translation.X, 0.001)
	assert.InDelta(t, config.CharY, tr.Translation.Y, 0.001)

	w.Step()
	assert.Equal(t, 1, count[Player](w), "a living player is never respawned")
}

func TestPlayerInputMovesPlayer(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	w.Step()
	startX := playerTransform(t, w).Translation.X

	w.Input().Right = true
	w.Step()

	tr := playerTransform(t, w)
	assert.InDelta(t, startX+config.TimeStep*config.BaseSpeed, tr.Translation.X, 0.01)
	assert.Equal(t, DirRight, w.Game().Direction)

	w.Input().Right = false
	w.Step()
	assert.InDelta(t, startX+config.TimeStep*config.BaseSpeed, playerTransform(t, w).Translation.X, 0.01,
		"releasing the key stops the player")
}

func TestPlayerInputVerticalOverridesFacing(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	w.Step()

	in := w.Input()
	in.Left, in.Up = true, true
	w.Step()

	assert.Equal(t, DirUp, w.Game().Direction)
	tr := playerTransform(t, w)
	assert.Greater(t, tr.Translation.Y, float32(config.CharY))
}

func TestPlayerInputUpWinsOverDown(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	w.Step()

	in := w.Input()
	in.Up, in.Down = true, true
	w.Step()

	assert.Equal(t, DirUp, w.Game().Direction)
	assert.InDelta(t, config.CharY+config.TimeStep*config.BaseSpeed, playerTransform(t, w).Translation.Y, 0.01)
}

func TestPlayerClampedToWindow(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	w.Step()

	in := w.Input()
	in.Left, in.Down = true, true
	for range 120 {
		w.Step()
	}

	tr := playerTransform(t, w)
	halfW := float32(config.PlayerWidth * config.PlayerScale / 2)
	assert.InDelta(t, -config.WindowWidth/2+halfW, tr.Translation.X, 0.001)
	assert.InDelta(t, config.CharY, tr.Translation.Y, 0.001)
	assert.Equal(t, 1, count[Player](w), "the player is never auto-despawned")
}

func TestPlayerShootRespectsFireDelay(t *testing.T) {
	w, sounds := newTestWorld(t, neverRoll)
	w.Step()

	w.Input().Fire = true
	w.Step()
	require.Equal(t, 1, count[FromPlayer](w))
	assert.Equal(t, config.PlayerFireDelay, w.Game().FireDelay)

	for range config.PlayerFireDelay - 1 {
		w.Step()
	}
	assert.Equal(t, 1, count[FromPlayer](w))

	w.Step()
	assert.Equal(t, 2, count[FromPlayer](w))
	assert.Equal(t, []Sound{SoundShot, SoundShot}, sounds.played)
}

func TestPlayerMissileFliesInFacingDirection(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	w.Step()
	player := playerTransform(t, w).Translation

	w.Input().Fire = true
	w.Step()

	view := ecs.NewView[struct {
		*Projectile
		*Transform
		*Velocity
		*SpriteSize
	}](w.Storage)
	var found int
	for _, m := range view.Iter() {
		found++
		assert.Equal(t, DirRight, m.Projectile.Direction)
		assert.Equal(t, Velocity{X: config.MissileSpeed}, *m.Velocity)
		assert.Equal(t, SpriteSize{W: config.MissileHeight, H: config.MissileWidth}, *m.SpriteSize)
		assert.InDelta(t, player.X+config.MissileOffsetX, m.Transform.Translation.X, 0.001)
		assert.InDelta(t, player.Y+config.MissileOffsetY, m.Transform.Translation.Y, 0.001)
	}
	assert.Equal(t, 1, found)
}

func TestMissileOffsetAndSize(t *testing.T) {
	assert.Equal(t, geom.Vec2{X: -config.MissileOffsetX, Y: config.MissileOffsetY}, missileOffset(DirLeft))
	assert.Equal(t, SpriteSize{W: config.MissileWidth, H: config.MissileHeight}, missileSize(DirUp))
	assert.Equal(t, SpriteSize{W: config.MissileHeight, H: config.MissileWidth}, missileSize(DirLeft))
	assert.Equal(t, Velocity{Y: -2}, velocityToward(DirDown, 2))
}

func TestEnemySpawnOnlyOnRollTicks(t *testing.T) {
	w, _ := newTestWorld(t, alwaysRoll)

	for range config.SpawnRollTicks - 1 {
		w.Step()
	}
	assert.Equal(t, 0, count[Enemy](w))

	w.Step()
	assert.Equal(t, 1, count[Enemy](w))

	var spawn *SpawnState
	require.True(t, w.Storage.ReadSingleton(&spawn))
	assert.Equal(t, SpawnState{Rolls: 1, Spawned: 1}, *spawn)

	view := ecs.NewView[struct {
		*Enemy
		*Transform
		*Velocity
		*Movable
	}](w.Storage)
	for _, e := range view.Iter() {
		assert.InDelta(t, config.WindowWidth/2-config.EnemySpawnInset, e.Transform.Translation.X, 0.001)
		assert.Less(t, e.Velocity.X, float32(0), "enemies move left")
		assert.True(t, e.Movable.AutoDespawn)
	}
}

func TestEnemySpawnFailedRollSpawnsNothing(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)

	for range 20 * config.SpawnRollTicks {
		w.Step()
	}

	assert.Equal(t, 0, count[Enemy](w))
	var spawn *SpawnState
	require.True(t, w.Storage.ReadSingleton(&spawn))
	assert.Equal(t, 20, spawn.Rolls)
	assert.Equal(t, 0, spawn.Spawned)
}

func TestEnemySpawnRespectsCap(t *testing.T) {
	w, _ := newTestWorld(t, alwaysRoll)

	for range 10 * config.SpawnRollTicks {
		w.Step()
	}

	assert.Equal(t, enemyCap(1), count[Enemy](w))
}

func TestDifficultyTables(t *testing.T) {
	tests := []struct {
		level     int
		denom     int
		cap       int
		fireDenom int
	}{
		{level: 1, denom: 5, cap: 4, fireDenom: 4},
		{level: 2, denom: 4, cap: 6, fireDenom: 4},
		{level: 3, denom: 3, cap: 8, fireDenom: 3},
		{level: 4, denom: 2, cap: 10, fireDenom: 3},
		{level: 10, denom: 2, cap: 20, fireDenom: 1},
		{level: 50, denom: 2, cap: 20, fireDenom: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.denom, spawnDenom(tt.level), "spawn denom at level %d", tt.level)
		assert.Equal(t, tt.cap, enemyCap(tt.level), "cap at level %d", tt.level)
		assert.Equal(t, tt.fireDenom, enemyFireDenom(tt.level), "fire denom at level %d", tt.level)
	}

	assert.InDelta(t, config.EnemySpeed, enemySpeed(1), 0.0001)
	assert.InDelta(t, config.EnemySpeed*config.EnemyMaxSpeedFactor, enemySpeed(100), 0.0001)
}

func TestDifficultyLevelsUp(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	w.Game().Kills = 25
	w.Step()
	assert.Equal(t, 3, w.Game().Level)
}

func TestEnemyShootsWhenCooldownExpires(t *testing.T) {
	w, _ := newTestWorld(t, alwaysRoll)
	w.Storage.Spawn(
		Transform{Translation: geom.Vec2{X: 300, Y: 200}, Scale: config.EnemyScale},
		Velocity{},
		SpriteSize{W: config.EnemyWidth, H: config.EnemyHeight},
		Enemy{FireCooldown: 1},
	)

	w.Step()
	assert.Equal(t, 0, count[FromEnemy](w))

	w.Step()
	require.Equal(t, 1, count[FromEnemy](w))

	view := ecs.NewView[struct {
		*FromEnemy
		*Velocity
	}](w.Storage)
	for _, shot := range view.Iter() {
		assert.InDelta(t, -config.EnemyMissileSpeed, shot.Velocity.X, 0.0001)
	}
}

func TestMovementAutoDespawn(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	edge := float32(config.WindowWidth/2 + config.DespawnMargin - 1)

	gone := w.Storage.Spawn(
		Transform{Translation: geom.Vec2{X: edge}, Scale: 1},
		Velocity{X: 1},
		Movable{AutoDespawn: true},
	)
	kept := w.Storage.Spawn(
		Transform{Translation: geom.Vec2{X: edge}, Scale: 1},
		Velocity{X: 1},
		Movable{},
	)
	unmoved := w.Storage.Spawn(
		Transform{Translation: geom.Vec2{X: 0, Y: 0}, Scale: 1},
		Velocity{},
		Movable{AutoDespawn: true},
	)

	w.Step()

	assert.False(t, w.Storage.Alive(gone))
	assert.True(t, w.Storage.Alive(unmoved))
	require.True(t, w.Storage.Alive(kept))
	tr := ecs.ReadComponent[Transform](w.Storage, kept)
	assert.InDelta(t, edge+config.TimeStep*config.BaseSpeed, tr.Translation.X, 0.01)
}

func TestPlayerMissileDestroysEnemy(t *testing.T) {
	w, sounds := newTestWorld(t, neverRoll)
	at := geom.Vec2{X: 0, Y: 200}

	w.Storage.Spawn(
		Transform{Translation: at, Scale: 1},
		Velocity{X: config.MissileSpeed},
		Movable{AutoDespawn: true},
		missileSize(DirRight),
		Projectile{Direction: DirRight},
		FromPlayer{},
	)
	w.Storage.Spawn(
		Transform{Translation: at, Scale: config.EnemyScale},
		Velocity{X: -config.EnemySpeed},
		Movable{AutoDespawn: true},
		SpriteSize{W: config.EnemyWidth, H: config.EnemyHeight},
		Enemy{FireCooldown: config.EnemyFireCooldown},
	)

	w.Step()

	assert.Equal(t, 0, count[Enemy](w))
	assert.Equal(t, 0, count[FromPlayer](w))
	assert.Equal(t, 1, count[Explosion](w))

	g := w.Game()
	assert.Equal(t, 1, g.Kills)
	assert.Equal(t, config.ScorePerKill, g.Score)
	assert.Equal(t, []Sound{SoundExplosion}, sounds.played)
}

func TestMissileConsumedOnce(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	at := geom.Vec2{X: 0, Y: 200}

	w.Storage.Spawn(
		Transform{Translation: at, Scale: 1},
		Velocity{},
		missileSize(DirRight),
		Projectile{Direction: DirRight},
		FromPlayer{},
	)
	for range 2 {
		w.Storage.Spawn(
			Transform{Translation: at, Scale: config.EnemyScale},
			Velocity{},
			SpriteSize{W: config.EnemyWidth, H: config.EnemyHeight},
			Enemy{FireCooldown: config.EnemyFireCooldown},
		)
	}

	w.Step()

	assert.Equal(t, 1, count[Enemy](w), "one missile destroys one enemy")
	assert.Equal(t, 1, w.Game().Kills)
}

func TestEnemyShotKillsPlayerAndRespawns(t *testing.T) {
	w, sounds := newTestWorld(t, neverRoll)
	w.Step()
	player := playerTransform(t, w).Translation

	w.Storage.Spawn(
		Transform{Translation: player, Scale: 1},
		Velocity{X: -config.EnemyMissileSpeed},
		Movable{AutoDespawn: true},
		missileSize(DirLeft),
		Projectile{Direction: DirLeft},
		FromEnemy{},
	)
	w.Step()

	g := w.Game()
	assert.Equal(t, 0, count[Player](w))
	assert.Equal(t, 0, count[FromEnemy](w))
	assert.False(t, g.PlayerRef.Alive(), "refs to a deleted player resolve as absent")
	assert.Equal(t, config.PlayerLives-1, g.Lives)
	assert.InDelta(t, config.RespawnDelay, g.RespawnTimer, 0.0001)
	assert.False(t, g.GameOver)
	assert.Contains(t, sounds.played, SoundHit)

	steps := 0
	for !g.PlayerRef.Alive() && steps < 200 {
		w.Step()
		steps++
	}
	assert.InDelta(t, config.RespawnDelay/config.TimeStep, steps, 2)
	assert.Equal(t, 1, count[Player](w))
}

func TestEnemyBodyKillsPlayer(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	w.Step()
	player := playerTransform(t, w).Translation

	w.Storage.Spawn(
		Transform{Translation: player, Scale: config.EnemyScale},
		Velocity{},
		SpriteSize{W: config.EnemyWidth, H: config.EnemyHeight},
		Enemy{FireCooldown: config.EnemyFireCooldown},
	)
	w.Step()

	assert.Equal(t, 0, count[Player](w))
	assert.Equal(t, 0, count[Enemy](w))
	assert.Equal(t, config.PlayerLives-1, w.Game().Lives)
}

func TestEnemyKilledByMissileSparesPlayer(t *testing.T) {
	w, sounds := newTestWorld(t, neverRoll)
	w.Step()
	player := playerTransform(t, w).Translation

	w.Storage.Spawn(
		Transform{Translation: player, Scale: config.EnemyScale},
		Velocity{},
		SpriteSize{W: config.EnemyWidth, H: config.EnemyHeight},
		Enemy{FireCooldown: config.EnemyFireCooldown},
	)
	w.Storage.Spawn(
		Transform{Translation: player, Scale: 1},
		Velocity{},
		missileSize(DirRight),
		Projectile{Direction: DirRight},
		FromPlayer{},
	)
	w.Step()

	g := w.Game()
	assert.Equal(t, 1, g.Kills)
	assert.Equal(t, 0, count[Enemy](w))
	assert.Equal(t, config.PlayerLives, g.Lives, "a destroyed enemy cannot hit the player")
	assert.True(t, g.PlayerRef.Alive())
	assert.Equal(t, 1, count[Player](w))
	assert.NotContains(t, sounds.played, SoundHit)
}

func TestRestartAfterRunEndedWithPlayerAlive(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	w.Step()
	require.Equal(t, 1, count[Player](w))

	g := w.Game()
	g.GameOver = true
	w.Input().Restart = true
	w.Step()
	w.Input().Restart = false

	assert.False(t, g.GameOver)
	assert.Equal(t, 0, count[Player](w), "restart removes the surviving player")

	w.Step()
	assert.Equal(t, 1, count[Player](w))
	assert.True(t, g.PlayerRef.Alive())
}

func TestGameOverAndRestart(t *testing.T) {
	w, _ := newTestWorld(t, alwaysRoll)
	w.Step()
	w.Game().Lives = 1
	player := playerTransform(t, w).Translation

	w.Storage.Spawn(
		Transform{Translation: player, Scale: 1},
		Velocity{},
		missileSize(DirLeft),
		Projectile{Direction: DirLeft},
		FromEnemy{},
	)
	w.Step()

	g := w.Game()
	require.True(t, g.GameOver)
	assert.Equal(t, 0, g.Lives)

	for range 3 * config.SpawnRollTicks {
		w.Step()
	}
	assert.Equal(t, 0, count[Player](w), "no respawn after game over")
	assert.Equal(t, 0, count[Enemy](w), "no spawning after game over")

	w.Storage.Spawn(
		Transform{Translation: geom.Vec2{X: 100}, Scale: config.EnemyScale},
		Velocity{},
		SpriteSize{W: config.EnemyWidth, H: config.EnemyHeight},
		Enemy{FireCooldown: config.EnemyFireCooldown},
	)
	w.Input().Restart = true
	w.Step()
	w.Input().Restart = false

	assert.False(t, g.GameOver)
	assert.Equal(t, config.PlayerLives, g.Lives)
	assert.Equal(t, 1, g.Level)
	assert.Equal(t, 0, count[Enemy](w))
	assert.Equal(t, 0, count[Explosion](w))

	w.Step()
	assert.Equal(t, 1, count[Player](w))
}

func TestExplosionExpires(t *testing.T) {
	w, _ := newTestWorld(t, neverRoll)
	w.Storage.Spawn(
		Transform{Scale: 1},
		SpriteSize{W: config.ExplosionSize, H: config.ExplosionSize},
		Explosion{Remaining: 2.5 * config.TimeStep},
	)

	w.Step()
	w.Step()
	assert.Equal(t, 1, count[Explosion](w))

	w.Step()
	assert.Equal(t, 0, count[Explosion](w))
}

func TestAutopilotPlays(t *testing.T) {
	w := NewWorld(Options{Seed: 7, Autopilot: true})

	for range 60 * 60 {
		w.Step()
	}

	g := w.Game()
	assert.Greater(t, g.Kills+config.PlayerLives-g.Lives, 0, "a minute of play produces kills or deaths")
	assert.Equal(t, uint64(3600), w.Scheduler.Tick())
}

func TestSameSeedReplaysExactly(t *testing.T) {
	run := func() Game {
		w := NewWorld(Options{Seed: 42, Autopilot: true})
		for range 30 * 60 {
			w.Step()
		}
		g := *w.Game()
		g.PlayerRef = nil
		return g
	}

	assert.Equal(t, run(), run())
}
