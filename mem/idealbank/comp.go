// Package idealbank provides a memory bank that answers every request after
// a fixed latency.
package idealbank

import (
	"log"
	"reflect"
	"sync/atomic"

	"github.com/sarchlab/memxbar/mem/mem"
	"github.com/sarchlab/memxbar/mem/xbar"
	"github.com/sarchlab/memxbar/sim"
)

type respondEvent struct {
	*sim.EventBase
	req *mem.Request
}

// Comp is an ideal bank. A bank with a lower level only adds its latency to
// the one of the lower level.
type Comp struct {
	name    string
	section string

	engine       sim.Engine
	freq         sim.Freq
	readLatency  int
	writeLatency int
	maxInflight  int
	inflight     int

	lower  mem.Bank
	router xbar.Router

	numReqs         atomic.Uint64
	numStateChanges atomic.Uint64
	numEvictions    atomic.Uint64
}

// Name returns the name of the bank.
func (c *Comp) Name() string {
	return c.name
}

// Section returns the configuration section the bank was built from.
func (c *Comp) Section() string {
	return c.section
}

// LowerLevel returns the object below the bank, or nil.
func (c *Comp) LowerLevel() mem.Bank {
	return c.lower
}

// Inflight returns the number of requests not answered yet.
func (c *Comp) Inflight() int {
	return c.inflight
}

// NumRequests returns the number of requests received.
func (c *Comp) NumRequests() uint64 {
	return c.numReqs.Load()
}

// NumStateChanges returns the number of state changes and state change
// acknowledgments received.
func (c *Comp) NumStateChanges() uint64 {
	return c.numStateChanges.Load()
}

// NumEvictions returns the number of eviction notices received.
func (c *Comp) NumEvictions() uint64 {
	return c.numEvictions.Load()
}

// AcceptRequest starts serving a request.
func (c *Comp) AcceptRequest(req *mem.Request) {
	c.numReqs.Add(1)
	c.inflight++

	if c.lower != nil {
		req.PushHop(c)
		c.router.ScheduleRequestAt(0, req)

		return
	}

	c.respondLater(req)
}

// AcceptAck is called when the lower level has served a request.
func (c *Comp) AcceptAck(req *mem.Request) {
	c.respondLater(req)
}

// ReleaseRequest frees the slot of a request that was completed below the
// bank without coming back through it.
func (c *Comp) ReleaseRequest(req *mem.Request) {
	c.inflight--
}

func (c *Comp) respondLater(req *mem.Request) {
	latency := c.readLatency
	if req.Kind == mem.AccessWrite {
		latency = c.writeLatency
	}

	now := c.engine.CurrentTime()
	evt := &respondEvent{
		EventBase: sim.NewEventBase(c.freq.NCyclesLater(latency, now), c),
		req:       req,
	}

	c.engine.Schedule(evt)
}

// Handle returns the acknowledgment of a request that has been served.
func (c *Comp) Handle(e sim.Event) error {
	evt, ok := e.(*respondEvent)
	if !ok {
		log.Panicf("bank %s cannot handle event of %s",
			c.name, reflect.TypeOf(e))
	}

	c.inflight--
	mem.ReturnAck(evt.req)

	return nil
}

// AcceptStateChange records a state change and passes it down.
func (c *Comp) AcceptStateChange(req *mem.Request, action mem.CoherenceAction) {
	c.numStateChanges.Add(1)

	if c.lower != nil {
		c.router.BroadcastStateChange(req, action)
	}
}

// AcceptStateChangeAck records a state change acknowledgment and passes it
// down.
func (c *Comp) AcceptStateChangeAck(req *mem.Request) {
	c.numStateChanges.Add(1)

	if c.lower != nil {
		c.router.ScheduleStateAckAt(0, req)
	}
}

// AcceptEviction records an eviction notice and passes it down.
func (c *Comp) AcceptEviction(req *mem.Request) {
	c.numEvictions.Add(1)

	if c.lower != nil {
		c.router.ScheduleEvictionAt(0, req)
	}
}

// ReportBusy tells if the bank has as many requests in flight as it can
// hold. A bank without a limit is never busy.
func (c *Comp) ReportBusy(addr uint64) bool {
	return c.maxInflight > 0 && c.inflight >= c.maxInflight
}

// ReportFastForwardTiming returns the latency of the bank, plus the one of
// the lower level if there is one.
func (c *Comp) ReportFastForwardTiming(addr uint64, write bool) mem.TimeDelta {
	d := mem.TimeDelta(c.readLatency)
	if write {
		d = mem.TimeDelta(c.writeLatency)
	}

	if c.lower == nil {
		return d
	}

	if write {
		return d + c.router.FastForwardWriteAt(0, addr)
	}

	return d + c.router.FastForwardReadAt(0, addr)
}
