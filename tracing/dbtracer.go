package tracing

import (
	"sync"

	"github.com/sarchlab/memxbar/datarecording"
	"github.com/sarchlab/memxbar/mem/xbar"
	"github.com/sarchlab/memxbar/sim"
)

// RoutesTable is the table that DBRouteTracer writes to.
const RoutesTable = "routes"

type routeTableEntry struct {
	Time  float64
	XBar  string
	Kind  string
	ReqID string
	Addr  uint64
	Bank  int
}

// DBRouteTracer stores routing decisions in a database.
type DBRouteTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder

	startTime, endTime sim.VTimeInSec
	count              uint64
}

// NewDBRouteTracer creates a tracer that writes into the backend.
func NewDBRouteTracer(backend datarecording.DataRecorder) *DBRouteTracer {
	backend.CreateTable(RoutesTable, routeTableEntry{})

	return &DBRouteTracer{
		backend: backend,
		endTime: -1,
	}
}

// SetTimeRange only keeps the decisions made between start and end. A
// negative end means no end.
func (t *DBRouteTracer) SetTimeRange(start, end sim.VTimeInSec) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.startTime = start
	t.endTime = end
}

// Count returns the number of decisions recorded.
func (t *DBRouteTracer) Count() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.count
}

// TraceRoute records a routing decision.
func (t *DBRouteTracer) TraceRoute(
	domain string,
	now sim.VTimeInSec,
	info xbar.RouteInfo,
) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if now < t.startTime || (t.endTime >= 0 && now > t.endTime) {
		return
	}

	t.backend.InsertData(RoutesTable, routeTableEntry{
		Time:  float64(now),
		XBar:  domain,
		Kind:  info.Kind.String(),
		ReqID: info.ReqID,
		Addr:  info.Addr,
		Bank:  info.Bank,
	})
	t.count++
}
