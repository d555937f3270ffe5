// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/boringgame/ecs"
	"github.com/plus3/boringgame/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
// Use this to integrate Dear ImGui rendering into Ebiten game loops.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay draws the debug windows of a storage on top of an Ebiten game.
//
// Call Update once per ebiten Update, Draw last in ebiten Draw, and Layout
// from ebiten Layout.
type Overlay struct {
	backend   *ecs.Singleton[ImguiBackend]
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
}

// NewOverlay creates the ImGui backend and its window, stores it as a
// singleton of storage, and spawns the debug windows focused on selected.
func NewOverlay(storage *ecs.Storage, title string, width, height int, selected ecs.EntityId, stats *ecs.Scheduler) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	debugui.RegisterComponents(storage.Registry())
	debugui.Spawn(storage, stats, selected)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})
	scheduler.Register(&debugui.WindowsSystem{})

	return &Overlay{
		backend:   ecs.NewSingleton(storage, ImguiBackend{EbitenBackend: backend}),
		storage:   storage,
		scheduler: scheduler,
	}
}

// Update builds one ImGui frame from the debug systems.
func (o *Overlay) Update(dt float64) {
	backend := o.backend.Get()
	backend.BeginFrame()
	o.scheduler.Once(dt)
	backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Get().Layout(outsideWidth, outsideHeight)
}

// WantsKeyboard reports whether ImGui consumed keyboard input in the last
// frame, in which case the game should ignore it.
func (o *Overlay) WantsKeyboard() bool {
	state := ecs.NewSingleton[debugui.ImguiInputState](o.storage).Get()
	return state != nil && state.WantCaptureKeyboard
}
