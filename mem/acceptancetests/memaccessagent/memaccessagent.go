// Package memaccessagent provides an agent that drives a memory hierarchy
// with a reproducible stream of random reads and writes.
package memaccessagent

import (
	"log"
	"math/rand"
	"reflect"

	"github.com/sarchlab/memxbar/mem/mem"
	"github.com/sarchlab/memxbar/sim"
)

var dumpLog = false

type tickEvent struct {
	*sim.EventBase
}

// A MemAccessAgent issues requests to its low module, one per cycle at
// most, keeping a bounded number of them in flight.
type MemAccessAgent struct {
	name     string
	engine   sim.Engine
	freq     sim.Freq
	rng      *rand.Rand
	originID int

	LowModule  mem.Bank
	MaxAddress uint64
	MaxPending int

	WriteLeft int
	ReadLeft  int

	PendingReq map[string]*mem.Request
	Completed  uint64
	Retried    uint64

	tickScheduled bool
}

// Name returns the name of the agent.
func (a *MemAccessAgent) Name() string {
	return a.name
}

// Start schedules the first request.
func (a *MemAccessAgent) Start() {
	a.scheduleTick()
}

// Finished tells if every request has been issued and acknowledged.
func (a *MemAccessAgent) Finished() bool {
	return a.ReadLeft == 0 && a.WriteLeft == 0 && len(a.PendingReq) == 0
}

// Handle issues a request.
func (a *MemAccessAgent) Handle(e sim.Event) error {
	if _, ok := e.(*tickEvent); !ok {
		log.Panicf("agent %s cannot handle event of %s",
			a.name, reflect.TypeOf(e))
	}

	a.tickScheduled = false

	if !a.hasWork() {
		return nil
	}

	a.issue()

	if a.hasWork() {
		a.scheduleTick()
	}

	return nil
}

// ReceiveAck implements mem.Originator.
func (a *MemAccessAgent) ReceiveAck(req *mem.Request) {
	if _, found := a.PendingReq[req.ID]; !found {
		log.Panicf("agent %s received an unexpected ack for %s",
			a.name, req.ID)
	}

	delete(a.PendingReq, req.ID)
	a.Completed++

	if dumpLog {
		log.Printf("%.10f, agent, %s complete, 0x%X\n",
			a.engine.CurrentTime(), req.Kind, req.Addr)
	}

	if a.hasWork() {
		a.scheduleTick()
	}
}

func (a *MemAccessAgent) hasWork() bool {
	if a.ReadLeft == 0 && a.WriteLeft == 0 {
		return false
	}

	return a.MaxPending == 0 || len(a.PendingReq) < a.MaxPending
}

func (a *MemAccessAgent) issue() {
	addr := a.randomAddress()

	if a.LowModule.ReportBusy(addr) {
		a.Retried++
		return
	}

	kind := mem.AccessWrite
	if a.shouldRead() {
		kind = mem.AccessRead
		a.ReadLeft--
	} else {
		a.WriteLeft--
	}

	req := mem.RequestBuilder{}.
		WithAddress(addr).
		WithKind(kind).
		WithOriginator(a).
		WithOriginID(a.originID).
		Build()
	a.PendingReq[req.ID] = req

	if dumpLog {
		log.Printf("%.10f, agent, %s, 0x%X\n",
			a.engine.CurrentTime(), kind, addr)
	}

	a.LowModule.AcceptRequest(req)
}

func (a *MemAccessAgent) shouldRead() bool {
	if a.ReadLeft == 0 {
		return false
	}

	if a.WriteLeft == 0 {
		return true
	}

	return a.rng.Float64() > 0.5
}

func (a *MemAccessAgent) randomAddress() uint64 {
	return a.rng.Uint64() % (a.MaxAddress / 4) * 4
}

func (a *MemAccessAgent) scheduleTick() {
	if a.tickScheduled {
		return
	}

	a.tickScheduled = true
	now := a.engine.CurrentTime()
	a.engine.Schedule(&tickEvent{
		EventBase: sim.NewEventBase(a.freq.NCyclesLater(1, now), a),
	})
}
