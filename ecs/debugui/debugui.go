// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/boringgame/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Selection is the entity the debug windows focus on. It is a singleton.
type Selection struct {
	Entity ecs.EntityId
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
		state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// WindowsSystem renders the built-in debug windows spawned by Spawn.
type WindowsSystem struct {
	Browsers    ecs.Query[struct{ *EntityBrowserWindow }]
	Inspectors  ecs.Query[struct{ *InspectorWindow }]
	Performance ecs.Query[struct{ *PerformanceWindow }]
	Selection   ecs.Singleton[Selection]
}

func (w *WindowsSystem) Execute(frame *ecs.UpdateFrame) {
	selection := w.Selection.Get()
	if selection == nil {
		w.Selection.Set(Selection{})
		selection = w.Selection.Get()
	}

	storage := frame.Storage
	for item := range w.Browsers.Values() {
		browser := item.EntityBrowserWindow
		frame.Commands.Defer(func() { browser.Render(storage, selection) })
	}
	for item := range w.Inspectors.Values() {
		inspector := item.InspectorWindow
		frame.Commands.Defer(func() { inspector.Render(storage, selection.Entity) })
	}
	for item := range w.Performance.Values() {
		perf := item.PerformanceWindow
		frame.Commands.Defer(func() { perf.Render(storage) })
	}
}

// RegisterComponents registers the components of every debug window.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserWindow](registry)
	ecs.RegisterComponent[InspectorWindow](registry)
	ecs.RegisterComponent[PerformanceWindow](registry)
}

// Spawn creates the built-in debug windows and focuses them on selected.
// scheduler may be nil, in which case no system timings are shown.
func Spawn(storage *ecs.Storage, scheduler *ecs.Scheduler, selected ecs.EntityId) {
	ecs.NewSingleton(storage, ImguiInputState{})
	ecs.NewSingleton(storage, Selection{}).Set(Selection{Entity: selected})

	storage.Spawn(NewEntityBrowserWindow(100))
	storage.Spawn(NewInspectorWindow())
	storage.Spawn(NewPerformanceWindow(scheduler, 120))
}
