// Package bankrouter delivers the messages of a routing stage to its lower
// levels after a fixed hop latency.
package bankrouter

import (
	"log"
	"reflect"

	"github.com/sarchlab/memxbar/mem/mem"
	"github.com/sarchlab/memxbar/sim"
)

type deliveryKind int

const (
	deliverReq deliveryKind = iota
	deliverStateChange
	deliverStateAck
	deliverEviction
)

type delivery struct {
	kind   deliveryKind
	req    *mem.Request
	action mem.CoherenceAction
}

const upstream = -1

type deliverEvent struct {
	*sim.EventBase
	pos int
}

// Router keeps one FIFO per lower level, plus one for acknowledgments going
// up. Every message is delivered a fixed number of cycles after it is
// scheduled, in the order it was scheduled.
type Router struct {
	name    string
	engine  sim.Engine
	freq    sim.Freq
	latency int

	lowerLevels []mem.Bank
	queues      [][]delivery
	upQueue     []*mem.Request
	delivered   []uint64
}

// Name returns the name of the router.
func (r *Router) Name() string {
	return r.name
}

// AddLowerLevel appends a bank. Its position is the number of banks added
// before it.
func (r *Router) AddLowerLevel(bank mem.Bank) {
	r.lowerLevels = append(r.lowerLevels, bank)
	r.queues = append(r.queues, nil)
	r.delivered = append(r.delivered, 0)
}

// NumLowerLevels returns the number of banks added.
func (r *Router) NumLowerLevels() int {
	return len(r.lowerLevels)
}

// Delivered returns the number of messages delivered to the bank at pos.
func (r *Router) Delivered(pos int) uint64 {
	return r.delivered[pos]
}

// ScheduleRequestAt delivers a request to the bank at pos.
func (r *Router) ScheduleRequestAt(pos int, req *mem.Request) {
	r.enqueue(pos, delivery{kind: deliverReq, req: req})
}

// ScheduleAckUpstream returns an acknowledgment to the previous hop of the
// request.
func (r *Router) ScheduleAckUpstream(req *mem.Request) {
	r.upQueue = append(r.upQueue, req)
	r.scheduleDelivery(upstream)
}

// BroadcastStateChange delivers a state change to every bank.
func (r *Router) BroadcastStateChange(
	req *mem.Request,
	action mem.CoherenceAction,
) {
	for pos := range r.lowerLevels {
		r.enqueue(pos, delivery{
			kind:   deliverStateChange,
			req:    req,
			action: action,
		})
	}
}

// ScheduleStateAckAt delivers a state change acknowledgment to the bank at
// pos.
func (r *Router) ScheduleStateAckAt(pos int, req *mem.Request) {
	r.enqueue(pos, delivery{kind: deliverStateAck, req: req})
}

// ScheduleEvictionAt delivers an eviction notice to the bank at pos.
func (r *Router) ScheduleEvictionAt(pos int, req *mem.Request) {
	r.enqueue(pos, delivery{kind: deliverEviction, req: req})
}

// IsBusyAt asks the bank at pos if it can take a request now.
func (r *Router) IsBusyAt(pos int, addr uint64) bool {
	return r.mustGetBank(pos).ReportBusy(addr)
}

// FastForwardReadAt returns the read latency of the bank at pos plus the
// hop latency.
func (r *Router) FastForwardReadAt(pos int, addr uint64) mem.TimeDelta {
	d := r.mustGetBank(pos).ReportFastForwardTiming(addr, false)
	return d + mem.TimeDelta(r.latency)
}

// FastForwardWriteAt returns the write latency of the bank at pos plus the
// hop latency.
func (r *Router) FastForwardWriteAt(pos int, addr uint64) mem.TimeDelta {
	d := r.mustGetBank(pos).ReportFastForwardTiming(addr, true)
	return d + mem.TimeDelta(r.latency)
}

func (r *Router) mustGetBank(pos int) mem.Bank {
	if pos < 0 || pos >= len(r.lowerLevels) {
		log.Panicf("router %s: no lower level at position %d of %d",
			r.name, pos, len(r.lowerLevels))
	}

	return r.lowerLevels[pos]
}

func (r *Router) enqueue(pos int, d delivery) {
	r.mustGetBank(pos)
	r.queues[pos] = append(r.queues[pos], d)
	r.scheduleDelivery(pos)
}

func (r *Router) scheduleDelivery(pos int) {
	now := r.engine.CurrentTime()
	t := r.freq.NCyclesLater(r.latency, now)
	evt := &deliverEvent{
		EventBase: sim.NewEventBase(t, r),
		pos:       pos,
	}

	r.engine.Schedule(evt)
}

// Handle delivers the message at the head of the queue named by the event.
func (r *Router) Handle(e sim.Event) error {
	evt, ok := e.(*deliverEvent)
	if !ok {
		log.Panicf("router %s cannot handle event of %s",
			r.name, reflect.TypeOf(e))
	}

	if evt.pos == upstream {
		req := r.upQueue[0]
		r.upQueue = r.upQueue[1:]
		mem.ReturnAck(req)

		return nil
	}

	d := r.queues[evt.pos][0]
	r.queues[evt.pos] = r.queues[evt.pos][1:]
	r.delivered[evt.pos]++

	bank := r.lowerLevels[evt.pos]

	switch d.kind {
	case deliverReq:
		bank.AcceptRequest(d.req)
	case deliverStateChange:
		bank.AcceptStateChange(d.req, d.action)
	case deliverStateAck:
		bank.AcceptStateChangeAck(d.req)
	case deliverEviction:
		bank.AcceptEviction(d.req)
	}

	return nil
}
