// Package config provides the sectioned key-value parameters that memory
// objects read when the hierarchy is built.
//
// Parameters are stored in dotenv files. Each key is written as
// <section>.<key>:
//
//	L2XBar.deviceType=xbar
//	L2XBar.lowerLevelBanks=4
//	L2XBar.lowerLevel="L2Bank"
//
// Environment variables that start with MEMXBAR_ override file values, e.g.
// MEMXBAR_L2XBar.Modfactor=8.
package config

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix marks environment variables that override file values.
const EnvPrefix = "MEMXBAR_"

// A Provider supplies parameters by section and key.
type Provider interface {
	Has(section, key string) bool
	String(section, key string) (string, error)
	Int(section, key string) (int, error)

	// Strings splits the value on white spaces.
	Strings(section, key string) ([]string, error)
}

// Conf is a Provider backed by an in-memory map.
type Conf struct {
	values map[string]string
}

// Load reads the given dotenv files. Files loaded later override the values
// of earlier ones. Environment overrides are applied last.
func Load(filenames ...string) (*Conf, error) {
	c := New()

	for _, f := range filenames {
		values, err := godotenv.Read(f)
		if err != nil {
			return nil, err
		}

		c.merge(values)
	}

	c.applyEnv(os.Environ())

	return c, nil
}

// Parse reads parameters from dotenv formatted text. It does not look at the
// environment.
func Parse(content string) (*Conf, error) {
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return nil, err
	}

	c := New()
	c.merge(values)

	return c, nil
}

// New creates an empty Conf.
func New() *Conf {
	return &Conf{values: make(map[string]string)}
}

// Set assigns a value.
func (c *Conf) Set(section, key, value string) {
	c.values[fullKey(section, key)] = value
}

func (c *Conf) merge(values map[string]string) {
	for k, v := range values {
		c.values[k] = v
	}
}

func (c *Conf) applyEnv(env []string) {
	for _, kv := range env {
		if !strings.HasPrefix(kv, EnvPrefix) {
			continue
		}

		k, v, found := strings.Cut(strings.TrimPrefix(kv, EnvPrefix), "=")
		if !found || !strings.Contains(k, ".") {
			continue
		}

		c.values[k] = v
	}
}

// Sections lists the section names that hold at least one key.
func (c *Conf) Sections() []string {
	seen := make(map[string]bool)

	for k := range c.values {
		section, _, found := strings.Cut(k, ".")
		if found {
			seen[section] = true
		}
	}

	sections := make([]string, 0, len(seen))
	for s := range seen {
		sections = append(sections, s)
	}

	sort.Strings(sections)

	return sections
}

// Has tells if the key is set.
func (c *Conf) Has(section, key string) bool {
	_, found := c.values[fullKey(section, key)]
	return found
}

// String returns the raw value.
func (c *Conf) String(section, key string) (string, error) {
	v, found := c.values[fullKey(section, key)]
	if !found {
		return "", &KeyError{Section: section, Key: key, Err: ErrMissingKey}
	}

	return v, nil
}

// Int returns the value as an integer.
func (c *Conf) Int(section, key string) (int, error) {
	v, err := c.String(section, key)
	if err != nil {
		return 0, err
	}

	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &KeyError{
			Section: section,
			Key:     key,
			Value:   v,
			Err:     ErrNotInteger,
		}
	}

	return i, nil
}

// Strings returns the value split on white spaces.
func (c *Conf) Strings(section, key string) ([]string, error) {
	v, err := c.String(section, key)
	if err != nil {
		return nil, err
	}

	return strings.Fields(v), nil
}

func fullKey(section, key string) string {
	return section + "." + key
}
