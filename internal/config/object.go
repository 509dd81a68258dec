package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Object is one element of an object list, such as an entry of
// "peer.active". It satisfies peer.Entry.
type Object struct {
	key string
	m   map[string]any
}

// NewObject wraps m as an Object. m is normalized like a Source tree.
func NewObject(m map[string]any) *Object {
	return &Object{m: expand(m)}
}

// Has reports whether field is defined. Dotted fields address nested
// members.
func (o *Object) Has(field string) bool {
	_, ok := lookupPath(o.m, splitKey(field))
	return ok
}

// Get returns the raw value of field.
func (o *Object) Get(field string) (any, bool) {
	v, ok := lookupPath(o.m, splitKey(field))
	if !ok {
		return nil, false
	}
	return deepCopy(v), true
}

// GetString returns field converted to a string.
func (o *Object) GetString(field string) (string, error) {
	v, ok := lookupPath(o.m, splitKey(field))
	if !ok {
		return "", missing(o.qualify(field))
	}
	return toString(o.qualify(field), v)
}

// GetInt returns field converted to an int.
func (o *Object) GetInt(field string) (int, error) {
	v, ok := lookupPath(o.m, splitKey(field))
	if !ok {
		return 0, missing(o.qualify(field))
	}
	return toInt(o.qualify(field), v)
}

// GetBool returns field converted to a bool.
func (o *Object) GetBool(field string) (bool, error) {
	v, ok := lookupPath(o.m, splitKey(field))
	if !ok {
		return false, missing(o.qualify(field))
	}
	return toBool(o.qualify(field), v)
}

// Map returns a copy of the object's members.
func (o *Object) Map() map[string]any {
	return deepCopy(o.m).(map[string]any)
}

// String renders the object in YAML flow style, e.g. "{ip: 10.0.0.1, port: 30303}".
func (o *Object) String() string {
	var n yaml.Node
	if err := n.Encode(o.m); err != nil {
		return "{?}"
	}
	n.Style = yaml.FlowStyle

	out, err := yaml.Marshal(&n)
	if err != nil {
		return "{?}"
	}
	return strings.TrimSpace(string(out))
}

func (o *Object) qualify(field string) string {
	if o.key == "" {
		return field
	}
	return o.key + "[]." + field
}
