// Package registry creates and keeps the memory objects of a hierarchy.
package registry

import (
	"errors"
	"fmt"

	"github.com/sarchlab/memxbar/config"
	"github.com/sarchlab/memxbar/mem/mem"
)

// KeyDeviceType is the key that selects the factory of a section.
const KeyDeviceType = "deviceType"

// Errors returned by Instantiate.
var (
	ErrUnknownDeviceType = errors.New("unknown device type")
	ErrCyclicDeclaration = errors.New("memory object declared inside itself")
)

// A Factory creates the memory object called uniqueName, configured by
// section.
type Factory func(uniqueName, section string) (mem.Bank, error)

// Registry owns the memory objects of a hierarchy. An object is created the
// first time its name is declared and shared by every later declaration.
type Registry struct {
	conf      config.Provider
	factories map[string]Factory
	objects   map[string]mem.Bank
	order     []string
	building  map[string]bool
}

// New creates an empty registry that reads device types from conf.
func New(conf config.Provider) *Registry {
	return &Registry{
		conf:      conf,
		factories: make(map[string]Factory),
		objects:   make(map[string]mem.Bank),
		building:  make(map[string]bool),
	}
}

// RegisterFactory sets the factory for a device type.
func (r *Registry) RegisterFactory(deviceType string, f Factory) {
	if _, found := r.factories[deviceType]; found {
		panic("registry: factory for " + deviceType + " already registered")
	}

	r.factories[deviceType] = f
}

// Instantiate returns the object called uniqueName, creating it from section
// if it has not been declared before.
func (r *Registry) Instantiate(uniqueName, section string) (mem.Bank, error) {
	if obj, found := r.objects[uniqueName]; found {
		return obj, nil
	}

	if r.building[uniqueName] {
		return nil, fmt.Errorf("%w: %s", ErrCyclicDeclaration, uniqueName)
	}

	deviceType, err := r.conf.String(section, KeyDeviceType)
	if err != nil {
		return nil, err
	}

	factory, found := r.factories[deviceType]
	if !found {
		return nil, fmt.Errorf("%w: %s (section %s)",
			ErrUnknownDeviceType, deviceType, section)
	}

	r.building[uniqueName] = true
	defer delete(r.building, uniqueName)

	obj, err := factory(uniqueName, section)
	if err != nil {
		return nil, err
	}

	r.objects[uniqueName] = obj
	r.order = append(r.order, uniqueName)

	return obj, nil
}

// Lookup finds an object that has been created.
func (r *Registry) Lookup(name string) (mem.Bank, bool) {
	obj, found := r.objects[name]
	return obj, found
}

// Names returns the names of all the objects in the order they were
// completed. Lower levels come before the objects that declared them.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)

	return names
}

// Objects returns all the objects, in the same order as Names.
func (r *Registry) Objects() []mem.Bank {
	objs := make([]mem.Bank, 0, len(r.order))
	for _, n := range r.order {
		objs = append(objs, r.objects[n])
	}

	return objs
}

// ErrNoLowerLevel is returned when a lowerLevel value is empty.
var ErrNoLowerLevel = errors.New("no lower level")

// ParseLowerLevel splits the tokens of a lowerLevel value into the section
// the object is built from and its unique name. A single token names both,
// so every declaration of it shares one object.
func ParseLowerLevel(tokens []string) (section, uniqueName string, err error) {
	switch len(tokens) {
	case 0:
		return "", "", ErrNoLowerLevel
	case 1:
		return tokens[0], tokens[0], nil
	default:
		return tokens[0], tokens[1], nil
	}
}
