package mem

import (
	"log"

	"github.com/sarchlab/memxbar/sim"
)

// Size units
const (
	_         = iota
	KB uint64 = 1 << (10 * iota)
	MB
	GB
	TB
)

// TimeDelta is a latency expressed in cycles of the component that reports
// it.
type TimeDelta uint64

// AccessKind tells whether a request reads or writes memory.
type AccessKind int

// Access kinds.
const (
	AccessRead AccessKind = iota
	AccessWrite
)

func (k AccessKind) String() string {
	switch k {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	default:
		return "unknown"
	}
}

// CoherenceAction is the state change a request asks its receivers to
// perform.
type CoherenceAction int

// Coherence actions.
const (
	ActionNone CoherenceAction = iota
	ActionInvalidate
	ActionDowngrade
	ActionFlush
)

func (a CoherenceAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionInvalidate:
		return "invalidate"
	case ActionDowngrade:
		return "downgrade"
	case ActionFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// An Originator is the element that issued a request and is notified when the
// request completes.
type Originator interface {
	ReceiveAck(req *Request)
}

// A Hop is an element that a request passed through on its way down the
// hierarchy. Acknowledgments travel back through the hops in reverse order.
type Hop interface {
	sim.Named
	AcceptAck(req *Request)
}

// A Releaser is a hop that holds a slot for a request while the request is
// below it. A request that completes without returning through the hop
// releases the slot instead.
type Releaser interface {
	ReleaseRequest(req *Request)
}

// A Bank is any memory object that can sit below a routing stage. Caches,
// directories, memory controllers and routing stages themselves all satisfy
// it.
type Bank interface {
	Hop

	AcceptRequest(req *Request)
	AcceptStateChange(req *Request, action CoherenceAction)
	AcceptStateChangeAck(req *Request)
	AcceptEviction(req *Request)

	// ReportBusy tells if the bank cannot accept a request to the address
	// now.
	ReportBusy(addr uint64) bool

	// ReportFastForwardTiming estimates the latency of an access without
	// performing it.
	ReportFastForwardTiming(addr uint64, write bool) TimeDelta
}

// A Request is a memory transaction that travels through the hierarchy.
type Request struct {
	ID        string
	Addr      uint64
	Kind      AccessKind
	Action    CoherenceAction
	StatsFlag bool

	// Originator is notified by Ack. OriginID identifies the issuing
	// processing element when several originators share a hierarchy.
	Originator Originator
	OriginID   int

	hops  []Hop
	acked bool
}

// PushHop records that the request is passing through h.
func (r *Request) PushHop(h Hop) {
	r.hops = append(r.hops, h)
}

// PopHop removes and returns the most recent hop. It returns nil if the
// request has no hop left.
func (r *Request) PopHop() Hop {
	if len(r.hops) == 0 {
		return nil
	}

	h := r.hops[len(r.hops)-1]
	r.hops = r.hops[:len(r.hops)-1]

	return h
}

// NumHops returns the number of hops recorded on the request.
func (r *Request) NumHops() int {
	return len(r.hops)
}

// IsHomeNode returns true if the element currently holding the request is
// the topmost node of the request's path, that is, there is no hop left to
// return the acknowledgment to.
func (r *Request) IsHomeNode() bool {
	return len(r.hops) == 0
}

// IsAcked returns true if the request has been acknowledged.
func (r *Request) IsAcked() bool {
	return r.acked
}

// Ack completes the request and notifies the originator. Hops the request
// has not returned through yet are released, innermost first.
func (r *Request) Ack() {
	if r.acked {
		log.Panicf("request %s acknowledged twice", r.ID)
	}

	r.acked = true

	for h := r.PopHop(); h != nil; h = r.PopHop() {
		if rel, ok := h.(Releaser); ok {
			rel.ReleaseRequest(r)
		}
	}

	if r.Originator != nil {
		r.Originator.ReceiveAck(r)
	}
}

// ReturnAck hands the acknowledgment of req to the previous hop, or
// completes the request if no hop is left.
func ReturnAck(req *Request) {
	hop := req.PopHop()
	if hop == nil {
		req.Ack()
		return
	}

	hop.AcceptAck(req)
}

// RequestBuilder can build requests.
type RequestBuilder struct {
	addr       uint64
	kind       AccessKind
	action     CoherenceAction
	noStats    bool
	originator Originator
	originID   int
}

// WithAddress sets the address of the request.
func (b RequestBuilder) WithAddress(addr uint64) RequestBuilder {
	b.addr = addr
	return b
}

// WithKind sets whether the request reads or writes.
func (b RequestBuilder) WithKind(kind AccessKind) RequestBuilder {
	b.kind = kind
	return b
}

// WithAction sets the coherence action carried by the request.
func (b RequestBuilder) WithAction(action CoherenceAction) RequestBuilder {
	b.action = action
	return b
}

// WithoutStats excludes the request from statistics.
func (b RequestBuilder) WithoutStats() RequestBuilder {
	b.noStats = true
	return b
}

// WithOriginator sets the element to notify when the request completes.
func (b RequestBuilder) WithOriginator(o Originator) RequestBuilder {
	b.originator = o
	return b
}

// WithOriginID sets the processing element that issued the request.
func (b RequestBuilder) WithOriginID(id int) RequestBuilder {
	b.originID = id
	return b
}

// Build creates a new request.
func (b RequestBuilder) Build() *Request {
	return &Request{
		ID:         sim.GetIDGenerator().Generate(),
		Addr:       b.addr,
		Kind:       b.kind,
		Action:     b.action,
		StatsFlag:  !b.noStats,
		Originator: b.originator,
		OriginID:   b.originID,
	}
}
