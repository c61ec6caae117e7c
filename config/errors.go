package config

import (
	"errors"
	"fmt"
)

// Reasons a parameter is rejected.
var (
	ErrMissingKey  = errors.New("missing key")
	ErrNotInteger  = errors.New("not an integer")
	ErrNotPower2   = errors.New("not a power of two")
	ErrOutOfBounds = errors.New("out of bounds")
)

// KeyError reports a parameter that is missing or invalid.
type KeyError struct {
	Section string
	Key     string
	Value   string
	Err     error
}

func (e *KeyError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("config: [%s] %s: %v", e.Section, e.Key, e.Err)
	}

	return fmt.Sprintf("config: [%s] %s=%s: %v",
		e.Section, e.Key, e.Value, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// IsPower2 checks that the key holds a positive power of two.
func IsPower2(p Provider, section, key string) error {
	v, err := p.Int(section, key)
	if err != nil {
		return err
	}

	if v <= 0 || v&(v-1) != 0 {
		return &KeyError{
			Section: section,
			Key:     key,
			Value:   fmt.Sprint(v),
			Err:     ErrNotPower2,
		}
	}

	return nil
}

// IsGT checks that the key holds an integer greater than bound.
func IsGT(p Provider, section, key string, bound int) error {
	v, err := p.Int(section, key)
	if err != nil {
		return err
	}

	if v <= bound {
		return &KeyError{
			Section: section,
			Key:     key,
			Value:   fmt.Sprint(v),
			Err:     fmt.Errorf("%w: must be greater than %d", ErrOutOfBounds, bound),
		}
	}

	return nil
}
