package config

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"
)

// Source is one immutable configuration layer: an origin label plus a
// nested tree. Dotted keys are expanded into nested paths when the source
// is built, and null values are dropped, so a key bound to null is treated
// as undefined.
type Source struct {
	origin string
	tree   map[string]any
}

// NewSource builds a source from tree. tree is copied and normalized;
// the caller keeps ownership of it.
func NewSource(origin string, tree map[string]any) *Source {
	return &Source{origin: origin, tree: expand(tree)}
}

// EmptySource returns a source that defines nothing.
func EmptySource(origin string) *Source {
	return &Source{origin: origin, tree: map[string]any{}}
}

// FromPairs builds a source from alternating keys and values. Pairs are
// applied in order, so a key defined twice keeps its last value.
func FromPairs(origin string, kv ...string) (*Source, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrOddArguments, len(kv))
	}

	tree := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		setPath(tree, splitKey(kv[i]), kv[i+1])
	}
	return &Source{origin: origin, tree: tree}, nil
}

// FromMap builds a source from a string map. Keys are applied in sorted
// order so that a parent key and one of its children resolve the same way
// on every run.
func FromMap(origin string, m map[string]string) *Source {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tree := make(map[string]any, len(m))
	for _, k := range keys {
		setPath(tree, splitKey(k), m[k])
	}
	return &Source{origin: origin, tree: tree}
}

// Origin is the diagnostic label of s.
func (s *Source) Origin() string {
	return s.origin
}

// Empty reports whether s defines no key.
func (s *Source) Empty() bool {
	return len(s.tree) == 0
}

// Lookup returns the value at the dotted path key. Objects and lists are
// returned as copies.
func (s *Source) Lookup(key string) (any, bool) {
	v, ok := lookupPath(s.tree, splitKey(key))
	if !ok {
		return nil, false
	}
	return deepCopy(v), true
}

// Tree returns a copy of the whole tree.
func (s *Source) Tree() map[string]any {
	return deepCopy(s.tree).(map[string]any)
}

// Keys lists the dotted paths of every leaf value, sorted. Lists are leaves.
func (s *Source) Keys() []string {
	var keys []string
	collectKeys(s.tree, "", &keys)
	slices.Sort(keys)
	return keys
}

func splitKey(key string) []string {
	parts := strings.Split(key, ".")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func lookupPath(tree map[string]any, path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}

	var cur any = tree
	for _, seg := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// setPath stores v at path, creating intermediate objects. An object stored
// over an existing object is merged into it member by member; anything else
// replaces the previous value.
func setPath(tree map[string]any, path []string, v any) {
	if len(path) == 0 {
		return
	}

	cur := tree
	for _, seg := range path[:len(path)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}

	leaf := path[len(path)-1]
	if obj, ok := v.(map[string]any); ok {
		if existing, ok := cur[leaf].(map[string]any); ok {
			for k, child := range obj {
				setPath(existing, []string{k}, child)
			}
			return
		}
	}
	cur[leaf] = v
}

func collectKeys(tree map[string]any, prefix string, keys *[]string) {
	for k, v := range tree {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok && len(child) > 0 {
			collectKeys(child, path, keys)
			continue
		}
		*keys = append(*keys, path)
	}
}

// expand normalizes a decoded tree: dotted keys become nested objects and
// every value is mapped onto string, int64, float64, bool, []any or
// map[string]any.
func expand(tree map[string]any) map[string]any {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(map[string]any, len(tree))
	for _, k := range keys {
		v, ok := normalize(tree[k])
		if !ok {
			continue
		}
		setPath(out, splitKey(k), v)
	}
	return out
}

func normalize(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string, bool, int64, float64:
		return t, true
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case uint:
		return normalizeUint(uint64(t)), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return normalizeUint(t), true
	case float32:
		return float64(t), true
	case time.Time:
		return t.Format(time.RFC3339Nano), true
	case map[string]any:
		return expand(t), true
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, child := range t {
			m[fmt.Sprint(k)] = child
		}
		return expand(m), true
	case []any:
		return normalizeList(t), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		list := make([]any, rv.Len())
		for i := range list {
			list[i] = rv.Index(i).Interface()
		}
		return normalizeList(list), true
	case reflect.Map:
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return expand(m), true
	default:
		return fmt.Sprint(v), true
	}
}

func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

func normalizeList(list []any) []any {
	out := make([]any, 0, len(list))
	for _, item := range list {
		if v, ok := normalize(item); ok {
			out = append(out, v)
		}
	}
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, child := range t {
			m[k] = deepCopy(child)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, child := range t {
			l[i] = deepCopy(child)
		}
		return l
	default:
		return v
	}
}
