package ecs

// UpdateFrame is what a system sees during one Scheduler.Once call.
type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, tick uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		Commands:  NewCommands(),
		Storage:   storage,
	}
}
