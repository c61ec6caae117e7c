// Package unxbar provides the fan-in stage that closes a crossbar. All the
// banks below a crossbar share one de-crossbar, which forwards everything to
// a single lower level.
package unxbar

import (
	"sync/atomic"

	"github.com/sarchlab/memxbar/mem/mem"
	"github.com/sarchlab/memxbar/mem/xbar"
)

// Comp is a de-crossbar.
type Comp struct {
	name    string
	section string

	lower  mem.Bank
	mapper mem.AddressToBankMapper
	router xbar.Router

	forwarded atomic.Uint64
}

// Name returns the name of the de-crossbar.
func (c *Comp) Name() string {
	return c.name
}

// Section returns the configuration section the de-crossbar was built from.
func (c *Comp) Section() string {
	return c.section
}

// LowerLevel returns the object below the de-crossbar.
func (c *Comp) LowerLevel() mem.Bank {
	return c.lower
}

// Forwarded returns the number of requests sent down.
func (c *Comp) Forwarded() uint64 {
	return c.forwarded.Load()
}

// AcceptRequest forwards the request to the lower level.
func (c *Comp) AcceptRequest(req *mem.Request) {
	c.forwarded.Add(1)
	req.PushHop(c)
	c.router.ScheduleRequestAt(c.mapper.Find(req.Addr), req)
}

// AcceptAck returns the acknowledgment to whoever sent the request.
func (c *Comp) AcceptAck(req *mem.Request) {
	if req.IsHomeNode() {
		req.Ack()
		return
	}

	c.router.ScheduleAckUpstream(req)
}

// AcceptStateChange forwards the state change to the lower level.
func (c *Comp) AcceptStateChange(req *mem.Request, action mem.CoherenceAction) {
	c.router.BroadcastStateChange(req, action)
}

// AcceptStateChangeAck forwards the acknowledgment to the lower level.
func (c *Comp) AcceptStateChangeAck(req *mem.Request) {
	c.router.ScheduleStateAckAt(c.mapper.Find(req.Addr), req)
}

// AcceptEviction forwards the eviction notice to the lower level.
func (c *Comp) AcceptEviction(req *mem.Request) {
	c.router.ScheduleEvictionAt(c.mapper.Find(req.Addr), req)
}

// ReportBusy asks the lower level.
func (c *Comp) ReportBusy(addr uint64) bool {
	return c.router.IsBusyAt(c.mapper.Find(addr), addr)
}

// ReportFastForwardTiming asks the lower level.
func (c *Comp) ReportFastForwardTiming(addr uint64, write bool) mem.TimeDelta {
	pos := c.mapper.Find(addr)
	if write {
		return c.router.FastForwardWriteAt(pos, addr)
	}

	return c.router.FastForwardReadAt(pos, addr)
}
