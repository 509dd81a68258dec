package network

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrConfig indicates an ambiguous or invalid network selection.
	ErrConfig = errors.New("network config error")
)

// Factory builds a Config registered under a class reference.
type Factory func() (Config, error)

var (
	classesMu sync.RWMutex
	classes   = map[string]Factory{}
)

// RegisterClass makes factory available to "blockchain.config.class" under
// name. Registering the same name twice replaces the earlier factory.
func RegisterClass(name string, factory Factory) {
	classesMu.Lock()
	defer classesMu.Unlock()
	classes[name] = factory
}

// UnregisterClass removes a class registered with RegisterClass.
func UnregisterClass(name string) {
	classesMu.Lock()
	defer classesMu.Unlock()
	delete(classes, name)
}

// ByName returns the built-in configuration called name.
func ByName(name string) (Config, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown value for '%s': '%s'", ErrConfig, KeyName, name)
	}
	return build(), nil
}

// ByClass instantiates the configuration registered under class.
func ByClass(class string) (Config, error) {
	classesMu.RLock()
	factory, ok := classes[class]
	classesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: the class specified via %s '%s' not found", ErrConfig, KeyClass, class)
	}

	cfg, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: the class specified via %s '%s' couldn't be instantiated: %v",
			ErrConfig, KeyClass, class, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: the class specified via %s '%s' produced no config", ErrConfig, KeyClass, class)
	}

	return cfg, nil
}
