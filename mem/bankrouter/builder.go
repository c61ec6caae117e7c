package bankrouter

import "github.com/sarchlab/memxbar/sim"

// Builder can build routers.
type Builder struct {
	engine  sim.Engine
	freq    sim.Freq
	latency int
}

// MakeBuilder creates a builder with a 1 GHz clock and a 1-cycle hop.
func MakeBuilder() Builder {
	return Builder{
		freq:    1 * sim.GHz,
		latency: 1,
	}
}

// WithEngine sets the engine that schedules the deliveries.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock of the router.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithLatency sets the hop latency in cycles.
func (b Builder) WithLatency(cycles int) Builder {
	b.latency = cycles
	return b
}

// Build creates a router with no lower level.
func (b Builder) Build(name string) *Router {
	if b.engine == nil {
		panic("bankrouter.Builder: engine is nil; call WithEngine")
	}

	if b.latency < 0 {
		panic("bankrouter.Builder: latency must be >= 0")
	}

	return &Router{
		name:    name,
		engine:  b.engine,
		freq:    b.freq,
		latency: b.latency,
	}
}
