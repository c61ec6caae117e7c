package xbar

import (
	"fmt"
	"log"

	"github.com/sarchlab/memxbar/config"
	"github.com/sarchlab/memxbar/mem/mem"
	"github.com/sarchlab/memxbar/mem/topology"
	"github.com/sarchlab/memxbar/sim"
)

// Configuration keys read from the crossbar's section.
const (
	KeyNumBanks   = "lowerLevelBanks"
	KeyLineSize   = "LineSize"
	KeyModFactor  = "Modfactor"
	KeyLowerLevel = "lowerLevel"
)

// Builder can build crossbars.
type Builder struct {
	conf         config.Provider
	section      string
	instantiator Instantiator
	balance      *topology.Balance
	router       Router
	timeTeller   sim.TimeTeller
	logger       *log.Logger
}

// MakeBuilder creates a builder that logs with the standard logger.
func MakeBuilder() Builder {
	return Builder{
		logger: log.Default(),
	}
}

// WithConfig sets where the parameters are read from.
func (b Builder) WithConfig(conf config.Provider) Builder {
	b.conf = conf
	return b
}

// WithSection sets the configuration section of the crossbar.
func (b Builder) WithSection(section string) Builder {
	b.section = section
	return b
}

// WithInstantiator sets the registry that creates the banks.
func (b Builder) WithInstantiator(i Instantiator) Builder {
	b.instantiator = i
	return b
}

// WithBalance sets the structural balance of the hierarchy being built.
func (b Builder) WithBalance(balance *topology.Balance) Builder {
	b.balance = balance
	return b
}

// WithRouter sets the router that delivers messages to the banks.
func (b Builder) WithRouter(r Router) Builder {
	b.router = r
	return b
}

// WithTimeTeller sets the clock used to timestamp hook invocations.
func (b Builder) WithTimeTeller(t sim.TimeTeller) Builder {
	b.timeTeller = t
	return b
}

// WithLogger sets the logger that reports construction progress.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

type params struct {
	numBanks  int
	lineSize  int
	modFactor int
	baseName  string
}

// Build creates a crossbar named name and all its banks.
//
// A *ConfigError is returned if the parameters are invalid, in which case no
// bank is created and the balance is untouched. After the banks are created,
// the balance must read zero; otherwise a *ConfigError wrapping
// ErrUnbalanced is returned.
//
// The fan-out is announced before the banks are instantiated, since the
// stages below close it. If instantiating a bank fails, the fan-out stays
// announced and the router keeps the banks added so far. The hierarchy
// being built must then be discarded.
func (b Builder) Build(name string) (*Comp, error) {
	b.mustBeComplete()

	p, err := b.readParams(name)
	if err != nil {
		return nil, err
	}

	if b.logger != nil {
		b.logger.Printf("building a crossbar named: %s", name)
	}

	b.balance.AnnounceFanOut()

	mapper := mem.InterleavedBankMapper{
		LineSize:         uint64(p.lineSize),
		InterleaveFactor: uint64(p.modFactor),
		NumBanks:         uint64(p.numBanks),
	}

	c := &Comp{
		name:       name,
		section:    b.section,
		numBanks:   uint64(p.numBanks),
		lineSize:   uint64(p.lineSize),
		modFactor:  uint64(p.modFactor),
		mapper:     mapper,
		banks:      make([]mem.Bank, p.numBanks),
		router:     b.router,
		timeTeller: b.timeTeller,
	}

	for i := range c.banks {
		bankName := fmt.Sprintf("%s(%d)", p.baseName, i)

		bank, err := b.instantiator.Instantiate(bankName, p.baseName)
		if err != nil {
			return nil, fmt.Errorf("xbar %s: instantiating %s: %w",
				name, bankName, err)
		}

		c.banks[i] = bank
		b.router.AddLowerLevel(bank)
	}

	if !b.balance.CheckBalanced() {
		return nil, &ConfigError{
			Instance: name,
			Section:  b.section,
			Detail:   fmt.Sprintf("balance is %d", b.balance.Count()),
			Err:      ErrUnbalanced,
		}
	}

	return c, nil
}

func (b Builder) mustBeComplete() {
	if b.conf == nil {
		panic("xbar.Builder: config is nil; call WithConfig")
	}

	if b.instantiator == nil {
		panic("xbar.Builder: instantiator is nil; call WithInstantiator")
	}

	if b.balance == nil {
		panic("xbar.Builder: balance is nil; call WithBalance")
	}

	if b.router == nil {
		panic("xbar.Builder: router is nil; call WithRouter")
	}
}

func (b Builder) readParams(name string) (params, error) {
	p := params{}
	wrap := func(err error) error {
		return &ConfigError{Instance: name, Section: b.section, Err: err}
	}

	if err := config.IsGT(b.conf, b.section, KeyNumBanks, 0); err != nil {
		return p, wrap(err)
	}

	if err := config.IsPower2(b.conf, b.section, KeyNumBanks); err != nil {
		return p, wrap(err)
	}

	for _, key := range []string{KeyLineSize, KeyModFactor} {
		if err := config.IsGT(b.conf, b.section, key, 0); err != nil {
			return p, wrap(err)
		}
	}

	p.numBanks, _ = b.conf.Int(b.section, KeyNumBanks)
	p.lineSize, _ = b.conf.Int(b.section, KeyLineSize)
	p.modFactor, _ = b.conf.Int(b.section, KeyModFactor)

	if p.modFactor < p.numBanks {
		return p, &ConfigError{
			Instance: name,
			Section:  b.section,
			Detail: fmt.Sprintf("%s(%d) < %s(%d)",
				KeyModFactor, p.modFactor, KeyNumBanks, p.numBanks),
			Err: ErrInterleaveTooSmall,
		}
	}

	lower, err := b.conf.Strings(b.section, KeyLowerLevel)
	if err != nil {
		return p, wrap(err)
	}

	if len(lower) == 0 {
		return p, wrap(ErrNoLowerLevel)
	}

	p.baseName = lower[0]

	return p, nil
}
