package sim

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler can be used to schedule future events. Events scheduled for
// the same time are handled in the order they were scheduled.
type EventScheduler interface {
	Schedule(e Event)
}

// A SimulationEndHandler is called once the memory traffic has drained.
type SimulationEndHandler interface {
	Handle(now VTimeInSec)
}

// An Engine drives the banks, routers and agents of a hierarchy.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Run handles events until none is left. It stops at the first handler
	// error and returns it.
	Run() error

	// Pause blocks Run before the next event until Continue is called. It is
	// safe to call from another goroutine.
	Pause()
	Continue()
	IsPaused() bool

	RegisterSimulationEndHandler(handler SimulationEndHandler)

	// Finished calls the end handlers in registration order.
	Finished()
}
