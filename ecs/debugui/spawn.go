package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/starshot/ecs"
)

// RegisterDebugUIComponents registers the component types SpawnDebugUI spawns.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// SpawnDebugUI adds the generic ECS windows: performance stats for storage and
// scheduler, an entity browser and an inspector for the selected entity.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	ecs.NewSingleton[ImguiInputState](storage)

	stats := NewPerformanceStats(120)
	storage.Spawn(ImguiItem{Render: func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(360, 320), imgui.CondOnce)
		stats.Render(storage, scheduler)
	}})

	browser := NewEntityBrowser(100)
	inspector := &ComponentInspector{}
	storage.Spawn(ImguiItem{Render: func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(10, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(360, 300), imgui.CondOnce)
		browser.Render(storage)

		imgui.SetNextWindowPosV(imgui.NewVec2(380, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(300, 300), imgui.CondOnce)
		inspector.Render(storage, browser.Selected())
	}})
}
