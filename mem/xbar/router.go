package xbar

import "github.com/sarchlab/memxbar/mem/mem"

// A Router queues messages for the banks below a crossbar and models the
// time they take to get there. Banks are addressed by their position in the
// order they were added.
type Router interface {
	AddLowerLevel(bank mem.Bank)

	ScheduleRequestAt(pos int, req *mem.Request)
	ScheduleAckUpstream(req *mem.Request)
	BroadcastStateChange(req *mem.Request, action mem.CoherenceAction)
	ScheduleStateAckAt(pos int, req *mem.Request)
	ScheduleEvictionAt(pos int, req *mem.Request)

	IsBusyAt(pos int, addr uint64) bool
	FastForwardReadAt(pos int, addr uint64) mem.TimeDelta
	FastForwardWriteAt(pos int, addr uint64) mem.TimeDelta
}

// An Instantiator creates, or finds if already declared, the memory object
// with the given unique name, configured by the given section.
type Instantiator interface {
	Instantiate(uniqueName, section string) (mem.Bank, error)
}
