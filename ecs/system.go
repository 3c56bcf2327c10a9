package ecs

// System is run by a Scheduler once per frame. Exported Query and Singleton
// fields are bound when the system is registered; any other fields are the
// system's own state and persist across frames.
type System interface {
	Execute(frame *UpdateFrame)
}
