package ecs

// UpdateFrame is handed to every system of a stage.
type UpdateFrame struct {
	// Tick counts completed frames; it is 0 during the startup stage and
	// during the first tick.
	Tick      uint64
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(tick uint64, dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		Tick:      tick,
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
