// Package config holds the game's tuning constants and the run options
// parsed from the command line.
package config

import (
	"errors"
	"fmt"
	"image/color"
)

const (
	TickRate  = 60
	TimeStep  = 1.0 / TickRate
	BaseSpeed = 500.0

	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Starshot"

	// Auto-despawned entities are removed this far beyond the window edge.
	DespawnMargin = 200.0

	FloorY     = -350.0
	CharY      = FloorY + 15.0
	TileWidth  = 32.0
	TileHeight = 16.0

	PlayerWidth      = 144.0
	PlayerHeight     = 75.0
	PlayerScale      = 0.5
	PlayerStartInset = 100.0
	PlayerFireDelay  = 10 // ticks
	PlayerLives      = 3
	RespawnDelay     = 2.0 // seconds

	MissileWidth   = 5.0
	MissileHeight  = 15.0
	MissileSpeed   = 1.5
	MissileOffsetX = PlayerWidth/2*PlayerScale - 5.0
	MissileOffsetY = 15.0

	EnemyWidth          = 93.0
	EnemyHeight         = 84.0
	EnemyScale          = 0.5
	EnemySpeed          = 0.5
	EnemyMissileSpeed   = 0.8
	EnemyFireCooldown   = 90 // ticks
	EnemyFireDenom      = 4
	EnemySpawnInset     = 40.0
	EnemyBaseCap        = 4
	EnemyCapPerLevel    = 2
	EnemyMaxCap         = 20
	EnemySpeedPerLevel  = 0.15
	EnemyMaxSpeedFactor = 3.0

	// One spawn roll every SpawnRollTicks; it succeeds with chance 1/SpawnDenom.
	SpawnRollTicks = 15
	SpawnDenom     = 5
	SpawnMinDenom  = 2

	KillsPerLevel = 10
	ScorePerKill  = 100

	ExplosionDuration = 0.4 // seconds
	ExplosionSize     = 64.0
)

var (
	BackgroundColor = color.RGBA{10, 10, 24, 255}
	MissileColor    = color.RGBA{255, 220, 64, 255}
	EnemyShotColor  = color.RGBA{255, 80, 80, 255}
	FloorColor      = color.RGBA{70, 90, 110, 255}
	HUDColor        = color.RGBA{230, 230, 230, 255}
)

// Config holds the options a frontend is started with.
type Config struct {
	Width   int
	Height  int
	Seed    uint64
	Mute    bool
	Debug   bool
	LogFile string
}

// Default returns the options used when no flags are given.
func Default() Config {
	return Config{
		Width:  WindowWidth,
		Height: WindowHeight,
	}
}

// Validate rejects window sizes the playfield does not fit in.
func (c Config) Validate() error {
	var errs []error
	if c.Width < 320 {
		errs = append(errs, fmt.Errorf("width %d is below 320", c.Width))
	}
	if float64(c.Height)/2 <= -FloorY {
		errs = append(errs, fmt.Errorf("height %d hides the floor at y=%.0f", c.Height, FloorY))
	}
	return errors.Join(errs...)
}
