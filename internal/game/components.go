package game

import "github.com/plus3/starshot/internal/geom"

// Transform places an entity in world space. Scale multiplies SpriteSize for
// both drawing and collision.
type Transform struct {
	Translation geom.Vec2
	Scale       float32
}

// Velocity is in units of BaseSpeed per second.
type Velocity struct {
	X, Y float32
}

// Movable marks entities that leave the world on their own. Only entities
// with AutoDespawn set are removed once they are beyond the window margin.
type Movable struct {
	AutoDespawn bool
}

// SpriteSize is the unscaled sprite size in world units.
type SpriteSize struct {
	W, H float32
}

type SpriteKind int

const (
	KindPlayer SpriteKind = iota
	KindEnemy
	KindPlayerMissile
	KindEnemyMissile
	KindExplosion
	KindTile
)

func (k SpriteKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindPlayerMissile:
		return "player-missile"
	case KindEnemyMissile:
		return "enemy-missile"
	case KindExplosion:
		return "explosion"
	case KindTile:
		return "tile"
	default:
		return "unknown"
	}
}

type Sprite struct {
	Kind SpriteKind
}

type Player struct{}

type Enemy struct {
	// Ticks until the enemy may fire again.
	FireCooldown int
}

type Projectile struct {
	Direction Direction
}

type FromPlayer struct{}

type FromEnemy struct{}

type Explosion struct {
	Remaining float64 // seconds
}

type Tile struct{}

// Direction is where the player faces and where projectiles fly.
type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	default:
		return "down"
	}
}

// Vector returns the unit vector for d.
func (d Direction) Vector() geom.Vec2 {
	switch d {
	case DirLeft:
		return geom.Vec2{X: -1}
	case DirUp:
		return geom.Vec2{Y: 1}
	case DirDown:
		return geom.Vec2{Y: -1}
	default:
		return geom.Vec2{X: 1}
	}
}

// Horizontal reports whether d points along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// hitbox is the scaled size used for collision tests.
func hitbox(t *Transform, size *SpriteSize) geom.Vec2 {
	return geom.Vec2{X: size.W * t.Scale, Y: size.H * t.Scale}
}
