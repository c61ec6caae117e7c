package xbar

import "github.com/sarchlab/memxbar/sim"

// HookPosRouted is triggered every time the crossbar dispatches a message.
var HookPosRouted = &sim.HookPos{Name: "XBarRouted"}

// MsgKind identifies the kind of message a crossbar dispatches.
type MsgKind int

// Message kinds.
const (
	MsgReq MsgKind = iota
	MsgReqAck
	MsgSetState
	MsgSetStateAck
	MsgDisp
)

func (k MsgKind) String() string {
	switch k {
	case MsgReq:
		return "req"
	case MsgReqAck:
		return "reqAck"
	case MsgSetState:
		return "setState"
	case MsgSetStateAck:
		return "setStateAck"
	case MsgDisp:
		return "disp"
	default:
		return "unknown"
	}
}

// Bank values of RouteInfo that do not name a single bank.
const (
	BankNone      = -1 // short-circuited or sent upstream
	BankBroadcast = -2 // sent to every bank
)

// RouteInfo is the detail of a HookPosRouted hook.
type RouteInfo struct {
	Kind  MsgKind
	ReqID string
	Addr  uint64
	Bank  int
}
