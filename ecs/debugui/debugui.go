// Package debugui draws Dear ImGui windows from inside an ECS world. Each
// window is an entity carrying an ImguiItem; ImguiSystem runs them once per
// frame between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/starshot/ecs"
)

// ImguiItem renders one window, or any other imgui widgets, when called.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors imgui's capture flags for the last frame. Game
// input should be ignored while a window has keyboard focus.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute copies the capture flags and defers every item's Render to the
// end of the frame, after structural changes from other systems are applied.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
