package xbar

import (
	"errors"
	"fmt"
)

// Reasons a crossbar cannot be built.
var (
	ErrInterleaveTooSmall = errors.New(
		"interleave factor smaller than the number of banks")
	ErrNoLowerLevel = errors.New("no lower level declared")
	ErrUnbalanced   = errors.New("crossbars and de-crossbars are unbalanced")
)

// ConfigError tells why a crossbar instance could not be built. Err is either
// one of the errors of this package or a *config.KeyError.
type ConfigError struct {
	Instance string
	Section  string
	Detail   string
	Err      error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("xbar %s (section %s): %v", e.Instance, e.Section, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
