// Package hierarchy assembles a memory hierarchy out of a configuration.
//
// Each section of the configuration describes one kind of memory object and
// names its type with the deviceType key. Building the top section creates,
// through lowerLevel keys, everything below it.
package hierarchy

import (
	"fmt"
	"log"

	"github.com/sarchlab/memxbar/config"
	"github.com/sarchlab/memxbar/mem/bankrouter"
	"github.com/sarchlab/memxbar/mem/idealbank"
	"github.com/sarchlab/memxbar/mem/mem"
	"github.com/sarchlab/memxbar/mem/registry"
	"github.com/sarchlab/memxbar/mem/topology"
	"github.com/sarchlab/memxbar/mem/unxbar"
	"github.com/sarchlab/memxbar/mem/xbar"
	"github.com/sarchlab/memxbar/sim"
)

// Device types understood by the assembler.
const (
	DeviceXBar      = "xbar"
	DeviceUnXBar    = "unxbar"
	DeviceIdealBank = "idealbank"
)

// Optional keys that apply to every section.
const (
	// KeyFrequency is the clock of the object, in MHz.
	KeyFrequency = "frequency"
	// KeyHopLatency is the number of cycles a message takes to reach the
	// lower level.
	KeyHopLatency = "hopLatency"
)

// Hierarchy is an assembled memory hierarchy.
type Hierarchy struct {
	conf     config.Provider
	engine   sim.Engine
	logger   *log.Logger
	registry *registry.Registry
	balance  *topology.Balance
	routers  map[string]*bankrouter.Router
	xbars    []*xbar.Comp
	hooks    []sim.Hook

	top mem.Bank
}

// Top returns the object built from the top section.
func (h *Hierarchy) Top() mem.Bank {
	return h.top
}

// Engine returns the engine that drives the hierarchy.
func (h *Hierarchy) Engine() sim.Engine {
	return h.engine
}

// Registry returns the registry that holds every object.
func (h *Hierarchy) Registry() *registry.Registry {
	return h.registry
}

// Balance returns the structural balance of the hierarchy.
func (h *Hierarchy) Balance() *topology.Balance {
	return h.balance
}

// Crossbars returns the crossbars in the order they were completed.
func (h *Hierarchy) Crossbars() []*xbar.Comp {
	return h.xbars
}

// Router returns the router that connects the named object to its lower
// levels.
func (h *Hierarchy) Router(owner string) (*bankrouter.Router, bool) {
	r, found := h.routers[owner]
	return r, found
}

// Builder can assemble hierarchies.
type Builder struct {
	conf   config.Provider
	engine sim.Engine
	logger *log.Logger
	hooks  []sim.Hook
}

// MakeBuilder creates a builder that logs with the standard logger.
func MakeBuilder() Builder {
	return Builder{logger: log.Default()}
}

// WithConfig sets the configuration that describes the hierarchy.
func (b Builder) WithConfig(conf config.Provider) Builder {
	b.conf = conf
	return b
}

// WithEngine sets the engine that drives the hierarchy.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithLogger sets the logger passed to every stage builder.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// WithCrossbarHook attaches a hook to every crossbar that is built.
func (b Builder) WithCrossbarHook(hook sim.Hook) Builder {
	b.hooks = append(b.hooks, hook)
	return b
}

// Build assembles the hierarchy below the top section.
func (b Builder) Build(top string) (*Hierarchy, error) {
	if b.conf == nil {
		panic("hierarchy.Builder: config is nil; call WithConfig")
	}

	if b.engine == nil {
		panic("hierarchy.Builder: engine is nil; call WithEngine")
	}

	h := &Hierarchy{
		conf:     b.conf,
		engine:   b.engine,
		logger:   b.logger,
		registry: registry.New(b.conf),
		balance:  topology.NewBalance(),
		routers:  make(map[string]*bankrouter.Router),
		hooks:    b.hooks,
	}

	h.registry.RegisterFactory(DeviceXBar, h.buildXBar)
	h.registry.RegisterFactory(DeviceUnXBar, h.buildUnXBar)
	h.registry.RegisterFactory(DeviceIdealBank, h.buildIdealBank)

	t, err := h.registry.Instantiate(top, top)
	if err != nil {
		return nil, err
	}

	if !h.balance.CheckBalanced() {
		return nil, fmt.Errorf("hierarchy %s: %w: balance is %d",
			top, xbar.ErrUnbalanced, h.balance.Count())
	}

	h.top = t

	return h, nil
}

func (h *Hierarchy) buildXBar(name, section string) (mem.Bank, error) {
	router, err := h.buildRouter(name, section)
	if err != nil {
		return nil, err
	}

	c, err := xbar.MakeBuilder().
		WithConfig(h.conf).
		WithSection(section).
		WithInstantiator(h.registry).
		WithBalance(h.balance).
		WithRouter(router).
		WithTimeTeller(h.engine).
		WithLogger(h.logger).
		Build(name)
	if err != nil {
		return nil, err
	}

	for _, hook := range h.hooks {
		c.AcceptHook(hook)
	}

	h.xbars = append(h.xbars, c)

	return c, nil
}

func (h *Hierarchy) buildUnXBar(name, section string) (mem.Bank, error) {
	router, err := h.buildRouter(name, section)
	if err != nil {
		return nil, err
	}

	c, err := unxbar.MakeBuilder().
		WithConfig(h.conf).
		WithSection(section).
		WithInstantiator(h.registry).
		WithBalance(h.balance).
		WithRouter(router).
		WithLogger(h.logger).
		Build(name)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (h *Hierarchy) buildIdealBank(name, section string) (mem.Bank, error) {
	router, err := h.buildRouter(name, section)
	if err != nil {
		return nil, err
	}

	freq, err := h.freq(section)
	if err != nil {
		return nil, err
	}

	c, err := idealbank.MakeBuilder().
		WithConfig(h.conf).
		WithSection(section).
		WithEngine(h.engine).
		WithFreq(freq).
		WithInstantiator(h.registry).
		WithRouter(router).
		Build(name)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (h *Hierarchy) buildRouter(
	owner, section string,
) (*bankrouter.Router, error) {
	freq, err := h.freq(section)
	if err != nil {
		return nil, err
	}

	b := bankrouter.MakeBuilder().
		WithEngine(h.engine).
		WithFreq(freq)

	if h.conf.Has(section, KeyHopLatency) {
		if err := config.IsGT(h.conf, section, KeyHopLatency, -1); err != nil {
			return nil, err
		}

		latency, _ := h.conf.Int(section, KeyHopLatency)
		b = b.WithLatency(latency)
	}

	r := b.Build(owner + ".Router")
	h.routers[owner] = r

	return r, nil
}

func (h *Hierarchy) freq(section string) (sim.Freq, error) {
	if !h.conf.Has(section, KeyFrequency) {
		return 1 * sim.GHz, nil
	}

	if err := config.IsGT(h.conf, section, KeyFrequency, 0); err != nil {
		return 0, err
	}

	mhz, _ := h.conf.Int(section, KeyFrequency)

	return sim.Freq(mhz) * sim.MHz, nil
}
