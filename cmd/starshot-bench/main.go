// Command starshot-bench runs the game headless with the autopilot for a
// number of frames and prints a markdown report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/game"
)

func main() {
	frames := flag.Int("frames", 60*60*5, "Number of simulation ticks to run.")
	duration := flag.Duration("duration", 0, "Stop early after this much wall time; 0 means no limit.")
	seed := flag.Uint64("seed", 1, "Seed for enemy spawns and fire rolls.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn or error.")
	logFormat := flag.String("log-format", "text", "Log format: text or json.")
	flag.Parse()

	session := uuid.New()
	log, err := config.NewLogger(os.Stderr, *logLevel, *logFormat, session)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	world := game.NewWorld(game.Options{
		Seed:      *seed,
		Logger:    log,
		Autopilot: true,
		SessionID: session,
	})

	ctx := context.Background()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	report := &Report{
		Session:        session,
		Seed:           *seed,
		Frames:         *frames,
		Autopilot:      true,
		GCPauseMetrics: *gcPauseMetrics,
	}

	log.Info("soak started", "frames", *frames, "seed", *seed)
	soak(ctx, world, *frames, report)
	log.Info("soak finished", "frames", report.TotalFrames, "elapsed", report.TotalTime)

	if err := report.Generate(os.Stdout); err != nil {
		log.Error("failed to generate report", "error", err)
		os.Exit(1)
	}
}

// soak steps world up to frames times, or until ctx is done, and fills the
// gameplay and timing fields of report.
func soak(ctx context.Context, world *game.World, frames int, report *Report) {
	report.FrameTime.Samples = make([]time.Duration, 0, frames)
	runtime.ReadMemStats(&report.MemStatsStart)

	// Kills and score reset on restart, so finished runs are banked. A
	// restart is the step where GameOver goes from true to false.
	var bankedKills, bankedScore int
	g := world.Game()
	lastKills, lastScore, wasOver := g.Kills, g.Score, g.GameOver
	report.Runs = 1

	start := time.Now()
	for report.TotalFrames < frames && ctx.Err() == nil {
		stepStart := time.Now()
		world.Step()
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(stepStart))
		report.TotalFrames++

		g = world.Game()
		if wasOver && !g.GameOver {
			bankedKills += lastKills
			bankedScore += lastScore
			report.Runs++
		}
		lastKills, lastScore, wasOver = g.Kills, g.Score, g.GameOver
		report.MaxLevel = max(report.MaxLevel, g.Level)

		if n := world.Storage.CollectStats().TotalEntityCount; n > report.PeakEntities {
			report.PeakEntities = n
		}
	}

	report.TotalTime = time.Since(start)
	report.Kills = bankedKills + lastKills
	report.Score = bankedScore + lastScore
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
}
