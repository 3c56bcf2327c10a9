// Command starshot opens the game in a window.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/plus3/starshot/internal/audio"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/game"
	"github.com/plus3/starshot/internal/render"
)

func main() {
	cfg := config.Default()
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Logical window width in pixels.")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Logical window height in pixels.")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for enemy spawns and fire rolls.")
	flag.BoolVar(&cfg.Mute, "mute", cfg.Mute, "Disable sound effects.")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Show the imgui debug overlay (toggle with F1).")
	autopilot := flag.Bool("autopilot", false, "Let the game play itself.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	logFormat := flag.String("log-format", "text", "Log format: text or json.")
	flag.Parse()

	session := uuid.New()
	log, err := config.NewLogger(os.Stderr, *logLevel, *logFormat, session)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid options", "error", err)
		os.Exit(2)
	}

	sound := audio.NewSoundManager()
	sound.SetMuted(cfg.Mute)
	if err := sound.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing without sound", "error", err)
	}
	defer sound.Close()

	g := render.New(render.Options{
		Debug: cfg.Debug,
		World: game.Options{
			Width:     float32(cfg.Width),
			Height:    float32(cfg.Height),
			Seed:      cfg.Seed,
			Logger:    log,
			Sound:     sound,
			Autopilot: *autopilot,
			SessionID: session,
		},
	})

	log.Info("starting", "width", cfg.Width, "height", cfg.Height, "seed", cfg.Seed, "debug", cfg.Debug)
	if err := g.Run(); err != nil {
		log.Error("game stopped", "error", err)
		sound.Close()
		os.Exit(1)
	}

	final := g.World.Game()
	log.Info("goodbye", "score", final.Score, "kills", final.Kills, "level", final.Level)
}
