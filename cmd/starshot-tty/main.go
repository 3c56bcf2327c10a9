// Command starshot-tty plays the game in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/plus3/starshot/internal/audio"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/game"
	"github.com/plus3/starshot/internal/tty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "starshot-tty:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for enemy spawns and fire rolls.")
	flag.StringVar(&cfg.LogFile, "log-file", "", "Write logs to this file; logging is off when empty.")
	flag.BoolVar(&cfg.Mute, "mute", cfg.Mute, "Disable sound effects.")
	autopilot := flag.Bool("autopilot", false, "Let the game play itself.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	logFormat := flag.String("log-format", "text", "Log format: text or json.")
	flag.Parse()

	// stderr belongs to the screen, so logs only go to a file.
	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}

	session := uuid.New()
	log, err := config.NewLogger(out, *logLevel, *logFormat, session)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sound := audio.NewSoundManager()
	sound.SetMuted(cfg.Mute)
	if err := sound.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing without sound", "error", err)
	}
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	term := tty.New(screen, game.Options{
		Width:     float32(cfg.Width),
		Height:    float32(cfg.Height),
		Seed:      cfg.Seed,
		Logger:    log,
		Sound:     sound,
		Autopilot: *autopilot,
		SessionID: session,
	})
	if err := term.Run(ctx); err != nil {
		return err
	}

	final := term.World.Game()
	log.Info("goodbye", "score", final.Score, "kills", final.Kills, "level", final.Level)
	return nil
}
