// Package tty plays the game in a terminal through tcell.
package tty

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/game"
)

// Terminal drives a world from a tcell screen at a fixed tick rate.
type Terminal struct {
	World *game.World

	screen tcell.Screen
	render *ecs.Scheduler
	keys   *keyState
	tick   time.Duration
	log    *slog.Logger
}

// New wraps an initialised screen. The caller owns the screen and calls
// Fini on it after Run returns.
func New(screen tcell.Screen, opts game.Options) *Terminal {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	world := game.NewWorld(opts)

	render := ecs.NewScheduler(world.Storage)
	render.Register(&RenderSystem{Screen: screen})

	return &Terminal{
		World:  world,
		screen: screen,
		render: render,
		keys:   newKeyState(),
		tick:   time.Second / config.TickRate,
		log:    opts.Logger,
	}
}

// Run steps and draws the world until ctx is done, the screen closes or the
// player quits. None of those is an error.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(t.screen, events, done)

	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	t.log.Info("terminal started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if t.handle(ev, time.Now()) {
				t.log.Info("player quit", "score", t.World.Game().Score)
				return nil
			}
		case now := <-ticker.C:
			t.step(now)
		}
	}
}

// pumpEvents forwards screen events until the screen closes or done is
// closed. events is closed only when the screen runs dry.
func pumpEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handle applies one terminal event and reports whether the player quit.
func (t *Terminal) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		a := keyToAction(ev)
		if a == actionQuit {
			return true
		}
		t.keys.press(a, now)
	}
	return false
}

// step advances the world one tick with the keys held at now and redraws.
func (t *Terminal) step(now time.Time) {
	*t.World.Input() = t.keys.input(now)
	t.World.Step()
	t.render.Once(0)
	t.screen.Show()
}
