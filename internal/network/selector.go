package network

import (
	"fmt"
	"strings"
	"sync"
)

// Configuration keys read by the selector.
const (
	KeyName  = "blockchain.config.name"
	KeyClass = "blockchain.config.class"
)

// Reader is the view of the merged configuration the selector needs.
type Reader interface {
	Has(key string) bool
	String(key string) (string, error)
}

// Selector resolves and memoizes the network configuration.
type Selector struct {
	mu       sync.Mutex
	resolved Config
	injected bool
}

// NewSelector returns an empty selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Resolve returns the memoized configuration, resolving it from r on the
// first call. When neither key is set the main network is used.
func (s *Selector) Resolve(r Reader) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resolved != nil {
		return s.resolved, nil
	}

	cfg, err := Select(r)
	if err != nil {
		return nil, err
	}

	s.resolved = cfg
	return cfg, nil
}

// Set injects cfg directly. It takes precedence over any configured name or
// class on subsequent Resolve calls. Passing nil clears the memoized value.
func (s *Selector) Set(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolved = cfg
	s.injected = cfg != nil
}

// Injected reports whether the current configuration was set with Set.
func (s *Selector) Injected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.injected
}

// Select resolves the configuration from r without memoization.
func Select(r Reader) (Config, error) {
	hasName, hasClass := r.Has(KeyName), r.Has(KeyClass)
	if hasName && hasClass {
		return nil, fmt.Errorf("%w: only one of two options should be defined: '%s' and '%s'",
			ErrConfig, KeyName, KeyClass)
	}

	if hasClass {
		class, err := r.String(KeyClass)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		return ByClass(strings.TrimSpace(class))
	}

	name := Main
	if hasName {
		v, err := r.String(KeyName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		name = strings.TrimSpace(v)
	}

	return ByName(name)
}
