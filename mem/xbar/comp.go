// Package xbar provides a crossbar that routes the traffic of one upper
// memory object to a set of interleaved lower-level banks.
package xbar

import (
	"log"
	"sync/atomic"

	"github.com/sarchlab/memxbar/mem/mem"
	"github.com/sarchlab/memxbar/sim"
)

// Comp is a crossbar. It picks the bank responsible for the address of each
// message and hands the message to the router. It does not model any latency
// by itself.
//
// A Comp is a mem.Bank, so it can be placed below another stage.
type Comp struct {
	sim.HookableBase

	name    string
	section string

	numBanks  uint64
	lineSize  uint64
	modFactor uint64
	mapper    mem.AddressToBankMapper
	banks     []mem.Bank

	router     Router
	timeTeller sim.TimeTeller

	readHit  atomic.Uint64
	writeHit atomic.Uint64
}

// Name returns the name of the crossbar.
func (c *Comp) Name() string {
	return c.name
}

// Section returns the configuration section the crossbar was built from.
func (c *Comp) Section() string {
	return c.section
}

// NumBanks returns the number of lower-level banks.
func (c *Comp) NumBanks() int {
	return len(c.banks)
}

// Bank returns the bank at position i.
func (c *Comp) Bank(i int) mem.Bank {
	return c.banks[i]
}

// LineSize returns the number of bytes per line.
func (c *Comp) LineSize() uint64 {
	return c.lineSize
}

// InterleaveFactor returns the number of lines in a stripe period.
func (c *Comp) InterleaveFactor() uint64 {
	return c.modFactor
}

// BankOf returns the position of the bank responsible for the address.
func (c *Comp) BankOf(addr uint64) int {
	return c.mapper.Find(addr)
}

// DoReq sends a request down to the bank that owns its address. A request
// to address 0 does not access memory and is acknowledged right away.
func (c *Comp) DoReq(req *mem.Request) {
	if req.Addr == 0 {
		c.traceRoute(MsgReq, req, BankNone)
		req.Ack()

		return
	}

	if req.StatsFlag {
		c.readHit.Add(1)

		if req.Kind == mem.AccessWrite {
			c.writeHit.Add(1)
		}
	}

	pos := c.BankOf(req.Addr)
	c.traceRoute(MsgReq, req, pos)

	req.PushHop(c)
	c.router.ScheduleRequestAt(pos, req)
}

// DoReqAck sends an acknowledgment up. Acknowledgments follow the path the
// request came down on rather than the address.
func (c *Comp) DoReqAck(req *mem.Request) {
	c.traceRoute(MsgReqAck, req, BankNone)

	if req.IsHomeNode() {
		req.Ack()
		return
	}

	c.router.ScheduleAckUpstream(req)
}

// DoSetState forwards a coherence state change to every bank.
func (c *Comp) DoSetState(req *mem.Request) {
	c.traceRoute(MsgSetState, req, BankBroadcast)
	c.router.BroadcastStateChange(req, req.Action)
}

// DoSetStateAck sends a state change acknowledgment to the bank that owns the
// address.
func (c *Comp) DoSetStateAck(req *mem.Request) {
	c.mustHaveOriginator(MsgSetStateAck, req)

	pos := c.BankOf(req.Addr)
	c.traceRoute(MsgSetStateAck, req, pos)
	c.router.ScheduleStateAckAt(pos, req)
}

// DoDisp sends an eviction notice to the bank that owns the address.
func (c *Comp) DoDisp(req *mem.Request) {
	c.mustHaveOriginator(MsgDisp, req)

	pos := c.BankOf(req.Addr)
	c.traceRoute(MsgDisp, req, pos)
	c.router.ScheduleEvictionAt(pos, req)
}

// The bank of a line is unique, so address routing is right for any number
// of originators as long as the reply path is carried by the request.
func (c *Comp) mustHaveOriginator(kind MsgKind, req *mem.Request) {
	if req.Originator == nil {
		log.Panicf("xbar %s: %s for request %s carries no originator",
			c.name, kind, req.ID)
	}
}

// IsBusy tells if the bank owning the address cannot take a request now.
func (c *Comp) IsBusy(addr uint64) bool {
	return c.router.IsBusyAt(c.BankOf(addr), addr)
}

// FFRead estimates the latency of reading the address.
func (c *Comp) FFRead(addr uint64) mem.TimeDelta {
	return c.router.FastForwardReadAt(c.BankOf(addr), addr)
}

// FFWrite estimates the latency of writing the address.
func (c *Comp) FFWrite(addr uint64) mem.TimeDelta {
	return c.router.FastForwardWriteAt(c.BankOf(addr), addr)
}

// AcceptRequest implements mem.Bank.
func (c *Comp) AcceptRequest(req *mem.Request) {
	c.DoReq(req)
}

// AcceptAck implements mem.Hop.
func (c *Comp) AcceptAck(req *mem.Request) {
	c.DoReqAck(req)
}

// AcceptStateChange implements mem.Bank.
func (c *Comp) AcceptStateChange(req *mem.Request, action mem.CoherenceAction) {
	req.Action = action
	c.DoSetState(req)
}

// AcceptStateChangeAck implements mem.Bank.
func (c *Comp) AcceptStateChangeAck(req *mem.Request) {
	c.DoSetStateAck(req)
}

// AcceptEviction implements mem.Bank.
func (c *Comp) AcceptEviction(req *mem.Request) {
	c.DoDisp(req)
}

// ReportBusy implements mem.Bank.
func (c *Comp) ReportBusy(addr uint64) bool {
	return c.IsBusy(addr)
}

// ReportFastForwardTiming implements mem.Bank.
func (c *Comp) ReportFastForwardTiming(addr uint64, write bool) mem.TimeDelta {
	if write {
		return c.FFWrite(addr)
	}

	return c.FFRead(addr)
}

func (c *Comp) traceRoute(kind MsgKind, req *mem.Request, bank int) {
	if c.NumHooks() == 0 {
		return
	}

	ctx := sim.HookCtx{
		Domain: c,
		Pos:    HookPosRouted,
		Item:   req,
		Detail: RouteInfo{
			Kind:  kind,
			ReqID: req.ID,
			Addr:  req.Addr,
			Bank:  bank,
		},
	}

	if c.timeTeller != nil {
		ctx.Now = c.timeTeller.CurrentTime()
	}

	c.InvokeHook(ctx)
}
