package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/google/uuid"
)

type Report struct {
	// Configuration
	Session   uuid.UUID
	Seed      uint64
	Frames    int
	Autopilot bool

	// Results
	TotalFrames    int
	TotalTime      time.Duration
	FrameTime      Stats
	Score          int
	Kills          int
	Runs           int
	MaxLevel       int
	PeakEntities   int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Starshot Soak Report

## Run Configuration
- **Session:** {{.Session}}
- **Seed:** {{.Seed}}
- **Requested Frames:** {{.Frames}}
- **Autopilot:** {{.Autopilot}}

## Gameplay
- **Frames Simulated:** {{.TotalFrames}} ({{seconds .TotalFrames}} of game time)
- **Runs Played:** {{.Runs}}
- **Total Kills:** {{.Kills}}
- **Total Score:** {{.Score}}
- **Highest Level:** {{.MaxLevel}}
- **Peak Entities:** {{.PeakEntities}}

## Performance Results
- **Wall Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}

## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MiB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MiB (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MiB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MiB (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes
- Sys Memory:     {{mb .MemStatsStart.Sys}} MiB (start) -> {{mb .MemStatsEnd.Sys}} MiB (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{ns (psub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs)}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"psub": func(a, b uint64) uint64 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"seconds": func(frames int) string {
			return (time.Duration(frames) * time.Second / 60).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
