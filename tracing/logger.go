package tracing

import (
	"log"

	"github.com/sarchlab/memxbar/mem/xbar"
	"github.com/sarchlab/memxbar/sim"
)

// RouteLogger prints every routing decision.
type RouteLogger struct {
	logger *log.Logger
}

// NewRouteLogger creates a RouteLogger. A nil logger means the standard
// logger.
func NewRouteLogger(logger *log.Logger) *RouteLogger {
	if logger == nil {
		logger = log.Default()
	}

	return &RouteLogger{logger: logger}
}

// TraceRoute prints a routing decision.
func (l *RouteLogger) TraceRoute(
	domain string,
	now sim.VTimeInSec,
	info xbar.RouteInfo,
) {
	switch info.Bank {
	case xbar.BankNone:
		l.logger.Printf("%.10f, %s, %s, %s, 0x%X\n",
			now, domain, info.Kind, info.ReqID, info.Addr)
	case xbar.BankBroadcast:
		l.logger.Printf("%.10f, %s, %s, %s, 0x%X -> all banks\n",
			now, domain, info.Kind, info.ReqID, info.Addr)
	default:
		l.logger.Printf("%.10f, %s, %s, %s, 0x%X -> bank %d\n",
			now, domain, info.Kind, info.ReqID, info.Addr, info.Bank)
	}
}
