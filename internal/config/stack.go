package config

import (
	"fmt"
	"slices"

	"dario.cat/mergo"
	"github.com/google/uuid"
)

// Stack is the merged configuration: an ordered list of sources, lowest
// priority first. A Stack is never modified; Push returns a new one that
// shares the lower layers.
type Stack struct {
	id     string
	layers []*Source
}

// NewStack returns a stack of layers, lowest priority first, labelled with
// a fresh load id.
func NewStack(layers ...*Source) *Stack {
	return &Stack{
		id:     newLoadID(),
		layers: slices.Clone(layers),
	}
}

// ID identifies the load this stack descends from. It is kept across
// pushes so one startup precedence chain can be traced in the logs.
func (s *Stack) ID() string {
	return s.id
}

// Push returns a stack in which src takes priority over every current
// layer.
func (s *Stack) Push(src *Source) *Stack {
	layers := make([]*Source, 0, len(s.layers)+1)
	layers = append(layers, s.layers...)
	layers = append(layers, src)
	return &Stack{id: s.id, layers: layers}
}

// Len is the number of layers.
func (s *Stack) Len() int {
	return len(s.layers)
}

// Layers returns the layers, lowest priority first.
func (s *Stack) Layers() []*Source {
	return slices.Clone(s.layers)
}

// Has reports whether any layer defines key.
func (s *Stack) Has(key string) bool {
	_, ok := s.find(key)
	return ok
}

// Origin names the highest-priority layer defining key.
func (s *Stack) Origin(key string) (string, bool) {
	i, ok := s.find(key)
	if !ok {
		return "", false
	}
	return s.layers[i].Origin(), true
}

// Lookup returns the value of key from the highest-priority layer defining
// it. When that value is an object, lower layers holding an object at the
// same path supply the members it lacks; the walk stops at the first lower
// layer holding a non-object there. Lists are never merged.
func (s *Stack) Lookup(key string) (any, bool) {
	path := splitKey(key)

	top, ok := s.find(key)
	if !ok {
		return nil, false
	}

	v, _ := lookupPath(s.layers[top].tree, path)
	if _, isObj := v.(map[string]any); !isObj {
		return deepCopy(v), true
	}

	// objects from top down to the first non-object
	var objects []map[string]any
	for i := top; i >= 0; i-- {
		lv, ok := lookupPath(s.layers[i].tree, path)
		if !ok {
			continue
		}
		obj, isObj := lv.(map[string]any)
		if !isObj {
			break
		}
		objects = append(objects, obj)
	}

	merged, err := mergeUp(objects)
	if err != nil {
		// mergo only fails on mismatched argument types, which two
		// map[string]any values cannot have
		return deepCopy(v), true
	}
	return merged, true
}

// Effective merges every layer into one tree.
func (s *Stack) Effective() (map[string]any, error) {
	objects := make([]map[string]any, 0, len(s.layers))
	for i := len(s.layers) - 1; i >= 0; i-- {
		objects = append(objects, s.layers[i].tree)
	}
	return mergeUp(objects)
}

// Keys lists the dotted leaf paths defined by any layer, sorted.
func (s *Stack) Keys() []string {
	seen := make(map[string]struct{})
	for _, l := range s.layers {
		for _, k := range l.Keys() {
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *Stack) find(key string) (int, bool) {
	path := splitKey(key)
	for i := len(s.layers) - 1; i >= 0; i-- {
		if _, ok := lookupPath(s.layers[i].tree, path); ok {
			return i, true
		}
	}
	return 0, false
}

// mergeUp merges objects given highest priority first. It starts from a
// copy of the lowest and overrides it with each higher one in turn, so
// falsy values (false, 0, "") and empty lists set by a higher layer win.
func mergeUp(objects []map[string]any) (map[string]any, error) {
	if len(objects) == 0 {
		return map[string]any{}, nil
	}

	merged := deepCopy(objects[len(objects)-1]).(map[string]any)
	for i := len(objects) - 2; i >= 0; i-- {
		higher := deepCopy(objects[i]).(map[string]any)
		if err := mergo.Merge(&merged, higher, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging config layers: %w", err)
		}
	}
	return merged, nil
}

// newLoadID prefers time-ordered v7 ids so that loads sort by start time.
func newLoadID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
