package game

import (
	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/geom"
)

// MovementSystem integrates velocities, keeps the player on screen and
// removes auto-despawning entities that left the window margin.
type MovementSystem struct {
	Win    ecs.Singleton[WinSize]
	Movers ecs.Query[struct {
		*Transform
		*Velocity
		Movable *Movable    `ecs:"optional"`
		Player  *Player     `ecs:"optional"`
		Size    *SpriteSize `ecs:"optional"`
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	win := s.Win.Get()
	step := float32(frame.DeltaTime) * config.BaseSpeed

	for id, m := range s.Movers.Iter() {
		t := m.Transform
		t.Translation.X += m.Velocity.X * step
		t.Translation.Y += m.Velocity.Y * step

		if m.Player != nil && m.Size != nil {
			clampPlayer(t, m.Size, win)
		}
		if m.Movable != nil && m.Movable.AutoDespawn && outside(t.Translation, win) {
			frame.Commands.Delete(id)
		}
	}
}

// outside reports whether p is beyond the window half extents plus the despawn margin.
func outside(p geom.Vec2, win *WinSize) bool {
	limitX := win.W/2 + config.DespawnMargin
	limitY := win.H/2 + config.DespawnMargin
	return p.X < -limitX || p.X > limitX || p.Y < -limitY || p.Y > limitY
}

func clampPlayer(t *Transform, size *SpriteSize, win *WinSize) {
	half := hitbox(t, size).Scale(0.5)
	t.Translation.X = min(max(t.Translation.X, -win.W/2+half.X), win.W/2-half.X)
	t.Translation.Y = min(max(t.Translation.Y, config.CharY), win.H/2-half.Y)
}
