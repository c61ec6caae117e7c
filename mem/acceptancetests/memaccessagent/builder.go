package memaccessagent

import (
	"math/rand"

	"github.com/sarchlab/memxbar/mem/mem"
	"github.com/sarchlab/memxbar/sim"
)

// Builder can build agents.
type Builder struct {
	engine     sim.Engine
	freq       sim.Freq
	seed       int64
	originID   int
	maxAddress uint64
	maxPending int
	writeLeft  int
	readLeft   int
	lowModule  mem.Bank
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:       1 * sim.GHz,
		seed:       1,
		maxAddress: 1 * mem.MB,
		maxPending: 16,
		writeLeft:  1000,
		readLeft:   1000,
	}
}

func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithSeed sets the seed of the random address stream.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithOriginID sets the processing element ID carried by the requests.
func (b Builder) WithOriginID(id int) Builder {
	b.originID = id
	return b
}

func (b Builder) WithMaxAddress(addr uint64) Builder {
	b.maxAddress = addr
	return b
}

// WithMaxPending sets the number of requests in flight. Zero means no
// limit.
func (b Builder) WithMaxPending(n int) Builder {
	b.maxPending = n
	return b
}

func (b Builder) WithWriteLeft(write int) Builder {
	b.writeLeft = write
	return b
}

func (b Builder) WithReadLeft(read int) Builder {
	b.readLeft = read
	return b
}

func (b Builder) WithLowModule(m mem.Bank) Builder {
	b.lowModule = m
	return b
}

// Build creates an agent.
func (b Builder) Build(name string) *MemAccessAgent {
	if b.engine == nil || b.lowModule == nil {
		panic("memaccessagent.Builder: engine and low module must be set")
	}

	if b.maxAddress < 4 {
		panic("memaccessagent.Builder: max address must be at least 4")
	}

	return &MemAccessAgent{
		name:       name,
		engine:     b.engine,
		freq:       b.freq,
		rng:        rand.New(rand.NewSource(b.seed)),
		originID:   b.originID,
		LowModule:  b.lowModule,
		MaxAddress: b.maxAddress,
		MaxPending: b.maxPending,
		WriteLeft:  b.writeLeft,
		ReadLeft:   b.readLeft,
		PendingReq: make(map[string]*mem.Request),
	}
}
