package unxbar

import (
	"fmt"
	"log"

	"github.com/sarchlab/memxbar/config"
	"github.com/sarchlab/memxbar/mem/mem"
	"github.com/sarchlab/memxbar/mem/registry"
	"github.com/sarchlab/memxbar/mem/topology"
	"github.com/sarchlab/memxbar/mem/xbar"
)

// Builder can build de-crossbars.
type Builder struct {
	conf         config.Provider
	section      string
	instantiator xbar.Instantiator
	balance      *topology.Balance
	router       xbar.Router
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

// WithSection sets the configuration section of the de-crossbar.
func (b Builder) WithSection(section string) Builder {
	b.section = section
	return b
}

// WithInstantiator sets the registry that creates the lower level.
func (b Builder) WithInstantiator(i xbar.Instantiator) Builder {
	b.instantiator = i
	return b
}

// WithBalance sets the structural balance of the hierarchy being built.
func (b Builder) WithBalance(balance *topology.Balance) Builder {
	b.balance = balance
	return b
}

// WithRouter sets the router that delivers messages to the lower level.
func (b Builder) WithRouter(r xbar.Router) Builder {
	b.router = r
	return b
}

// WithLogger sets the logger that reports construction progress.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// Build creates a de-crossbar and its lower level. The fan-in is announced
// before the lower level is created.
func (b Builder) Build(name string) (*Comp, error) {
	if b.conf == nil || b.instantiator == nil || b.balance == nil ||
		b.router == nil {
		panic("unxbar.Builder: config, instantiator, balance and router " +
			"must all be set")
	}

	tokens, err := b.conf.Strings(b.section, xbar.KeyLowerLevel)
	if err != nil {
		return nil, &xbar.ConfigError{
			Instance: name, Section: b.section, Err: err,
		}
	}

	lowerSection, lowerName, err := registry.ParseLowerLevel(tokens)
	if err != nil {
		return nil, &xbar.ConfigError{
			Instance: name, Section: b.section, Err: xbar.ErrNoLowerLevel,
		}
	}

	if b.logger != nil {
		b.logger.Printf("building a de-crossbar named: %s", name)
	}

	b.balance.AnnounceFanIn()

	lower, err := b.instantiator.Instantiate(lowerName, lowerSection)
	if err != nil {
		return nil, fmt.Errorf("unxbar %s: instantiating %s: %w",
			name, lowerName, err)
	}

	b.router.AddLowerLevel(lower)

	return &Comp{
		name:    name,
		section: b.section,
		lower:   lower,
		mapper:  mem.SingleBankMapper{},
		router:  b.router,
	}, nil
}
