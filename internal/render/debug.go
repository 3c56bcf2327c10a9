package render

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/ecs/debugui"
	"github.com/plus3/starshot/internal/game"
)

const scoreHistorySize = 300

// scoreHistory is a fixed-size ring of score samples, one per frame.
type scoreHistory struct {
	samples []float32
	offset  int
}

func newScoreHistory(size int) *scoreHistory {
	return &scoreHistory{samples: make([]float32, size)}
}

func (h *scoreHistory) Record(score int) {
	h.samples[h.offset] = float32(score)
	h.offset = (h.offset + 1) % len(h.samples)
}

// Ordered returns the samples oldest first.
func (h *scoreHistory) Ordered() []float32 {
	out := make([]float32, 0, len(h.samples))
	out = append(out, h.samples[h.offset:]...)
	return append(out, h.samples[:h.offset]...)
}

// spawnGameStateWindow adds a window showing the run state, the session and
// the score over time.
func spawnGameStateWindow(storage *ecs.Storage) {
	history := newScoreHistory(scoreHistorySize)

	storage.Spawn(debugui.ImguiItem{Render: func() {
		var g *game.Game
		if !storage.ReadSingleton(&g) {
			return
		}
		var session *game.Session
		storage.ReadSingleton(&session)
		var spawn *game.SpawnState
		storage.ReadSingleton(&spawn)

		history.Record(g.Score)

		imgui.SetNextWindowPosV(imgui.NewVec2(690, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(320, 360), imgui.CondOnce)
		if !imgui.BeginV("Game State", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}
		defer imgui.End()

		if session != nil {
			imgui.Text(fmt.Sprintf("Session: %s", session.ID))
			imgui.Text(fmt.Sprintf("Seed: %d", session.Seed))
			imgui.Separator()
		}

		imgui.Text(fmt.Sprintf("Score: %d  Kills: %d", g.Score, g.Kills))
		imgui.Text(fmt.Sprintf("Level: %d  Lives: %d", g.Level, g.Lives))
		imgui.Text(fmt.Sprintf("Facing: %s  Fire delay: %d", g.Direction, g.FireDelay))
		if g.PlayerRef.Alive() {
			imgui.Text(fmt.Sprintf("Player: %d", g.PlayerRef.Id))
		} else {
			imgui.Text(fmt.Sprintf("Player: respawn in %.2fs", g.RespawnTimer))
		}
		if spawn != nil {
			imgui.Text(fmt.Sprintf("Spawn rolls: %d  Spawned: %d", spawn.Rolls, spawn.Spawned))
		}

		if g.GameOver {
			imgui.Text("GAME OVER")
		} else if imgui.Button("End run") {
			g.GameOver = true
		}

		samples := history.Ordered()
		if implot.BeginPlotV("Score", imgui.NewVec2(-1, -1), 0) {
			implot.SetupAxesV("Frame", "Score", 0, implot.AxisFlagsAutoFit)
			implot.PlotLineFloatPtrInt("score", &samples[0], int32(len(samples)))
			implot.EndPlot()
		}
	}})
}
