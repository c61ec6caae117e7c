// Package tracing collects the routing decisions of crossbars.
package tracing

import (
	"fmt"
	"reflect"

	"github.com/sarchlab/memxbar/mem/xbar"
	"github.com/sarchlab/memxbar/sim"
)

// NamedHookable is a crossbar or anything else that reports routing
// decisions through hooks.
type NamedHookable interface {
	sim.Named
	sim.Hookable
	Hooks() []sim.Hook
}

// A RouteTracer is told about every routing decision of the domains it
// collects from.
type RouteTracer interface {
	TraceRoute(domain string, now sim.VTimeInSec, info xbar.RouteInfo)
}

// CollectRoutes lets the tracer collect the routing decisions of a domain.
func CollectRoutes(domain NamedHookable, tracer RouteTracer) {
	for _, hook := range domain.Hooks() {
		hook, ok := hook.(*routeHook)
		if ok && hook.t == tracer {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer)))
		}
	}

	domain.AcceptHook(&routeHook{t: tracer})
}

type routeHook struct {
	t RouteTracer
}

func (h *routeHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != xbar.HookPosRouted {
		return
	}

	name := ""
	if named, ok := ctx.Domain.(sim.Named); ok {
		name = named.Name()
	}

	h.t.TraceRoute(name, ctx.Now, ctx.Detail.(xbar.RouteInfo))
}
