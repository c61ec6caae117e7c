package idealbank

import (
	"fmt"

	"github.com/sarchlab/memxbar/config"
	"github.com/sarchlab/memxbar/mem/registry"
	"github.com/sarchlab/memxbar/mem/xbar"
	"github.com/sarchlab/memxbar/sim"
)

// Configuration keys read from the bank's section. All are optional.
const (
	KeyReadLatency  = "readLatency"
	KeyWriteLatency = "writeLatency"
	KeyMaxRequests  = "maxRequests"
	KeyLowerLevel   = xbar.KeyLowerLevel
)

// Builder can build ideal banks.
type Builder struct {
	conf         config.Provider
	section      string
	engine       sim.Engine
	freq         sim.Freq
	readLatency  int
	writeLatency int
	maxInflight  int
	instantiator xbar.Instantiator
	router       xbar.Router
}

// MakeBuilder creates a builder with a 1 GHz clock and a 100-cycle latency.
func MakeBuilder() Builder {
	return Builder{
		freq:         1 * sim.GHz,
		readLatency:  100,
		writeLatency: 100,
	}
}

// WithConfig sets where the parameters are read from. Parameters found in
// the configuration override the ones set on the builder.
func (b Builder) WithConfig(conf config.Provider) Builder {
	b.conf = conf
	return b
}

// WithSection sets the configuration section of the bank.
func (b Builder) WithSection(section string) Builder {
	b.section = section
	return b
}

// WithEngine sets the engine that schedules the responses.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock of the bank.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithReadLatency sets the read latency in cycles.
func (b Builder) WithReadLatency(cycles int) Builder {
	b.readLatency = cycles
	return b
}

// WithWriteLatency sets the write latency in cycles.
func (b Builder) WithWriteLatency(cycles int) Builder {
	b.writeLatency = cycles
	return b
}

// WithMaxInflight sets how many requests the bank can serve at the same
// time. Zero means no limit.
func (b Builder) WithMaxInflight(n int) Builder {
	b.maxInflight = n
	return b
}

// WithInstantiator sets the registry that creates the lower level.
func (b Builder) WithInstantiator(i xbar.Instantiator) Builder {
	b.instantiator = i
	return b
}

// WithRouter sets the router that connects the bank to its lower level.
func (b Builder) WithRouter(r xbar.Router) Builder {
	b.router = r
	return b
}

// Build creates a bank. If the section names a lower level, it is created
// too.
func (b Builder) Build(name string) (*Comp, error) {
	if b.engine == nil {
		panic("idealbank.Builder: engine is nil; call WithEngine")
	}

	c := &Comp{
		name:         name,
		section:      b.section,
		engine:       b.engine,
		freq:         b.freq,
		readLatency:  b.readLatency,
		writeLatency: b.writeLatency,
		maxInflight:  b.maxInflight,
		router:       b.router,
	}

	if b.conf == nil {
		return c, nil
	}

	if err := b.readParams(c); err != nil {
		return nil, err
	}

	if !b.conf.Has(b.section, KeyLowerLevel) {
		return c, nil
	}

	if err := b.buildLowerLevel(c); err != nil {
		return nil, err
	}

	return c, nil
}

func (b Builder) readParams(c *Comp) error {
	params := []struct {
		key   string
		value *int
	}{
		{KeyReadLatency, &c.readLatency},
		{KeyWriteLatency, &c.writeLatency},
		{KeyMaxRequests, &c.maxInflight},
	}

	for _, p := range params {
		if !b.conf.Has(b.section, p.key) {
			continue
		}

		if err := config.IsGT(b.conf, b.section, p.key, -1); err != nil {
			return fmt.Errorf("bank %s: %w", c.name, err)
		}

		*p.value, _ = b.conf.Int(b.section, p.key)
	}

	if !b.conf.Has(b.section, KeyWriteLatency) &&
		b.conf.Has(b.section, KeyReadLatency) {
		c.writeLatency = c.readLatency
	}

	return nil
}

func (b Builder) buildLowerLevel(c *Comp) error {
	if b.instantiator == nil || b.router == nil {
		panic("idealbank.Builder: a bank with a lower level needs " +
			"an instantiator and a router")
	}

	tokens, _ := b.conf.Strings(b.section, KeyLowerLevel)

	section, uniqueName, err := registry.ParseLowerLevel(tokens)
	if err != nil {
		return fmt.Errorf("bank %s: %w", c.name, err)
	}

	lower, err := b.instantiator.Instantiate(uniqueName, section)
	if err != nil {
		return fmt.Errorf("bank %s: instantiating %s: %w",
			c.name, uniqueName, err)
	}

	c.lower = lower
	b.router.AddLowerLevel(lower)

	return nil
}
