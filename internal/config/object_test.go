package config

import (
	"testing"

	"github.com/MKhiriev/go-node-config/internal/peer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ peer.Entry = (*Object)(nil)

// TestObject_Fields verifies field access and conversions.
func TestObject_Fields(t *testing.T) {
	o := NewObject(map[string]any{
		"ip":        "10.0.0.1",
		"port":      "30303",
		"enabled":   "yes",
		"meta.name": "n1",
	})

	assert.True(t, o.Has("ip"))
	assert.True(t, o.Has("meta.name"))
	assert.False(t, o.Has("nodeId"))

	port, err := o.GetInt("port")
	require.NoError(t, err)
	assert.Equal(t, 30303, port)

	enabled, err := o.GetBool("enabled")
	require.NoError(t, err)
	assert.True(t, enabled)

	v, ok := o.Get("meta")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "n1"}, v)
}

// TestObject_MissingField verifies that absent fields fail with
// ErrKeyMissing naming the list key.
func TestObject_MissingField(t *testing.T) {
	objs, err := toObjectList("peer.active", []any{map[string]any{"ip": "1.2.3.4"}})
	require.NoError(t, err)

	_, err = objs[0].GetString("nodeId")
	assert.ErrorIs(t, err, ErrKeyMissing)
	assert.Contains(t, err.Error(), "peer.active[].nodeId")
}

// TestObject_String verifies the single-line diagnostic rendering.
func TestObject_String(t *testing.T) {
	s := NewObject(map[string]any{"ip": "10.0.0.1", "port": 30303}).String()

	assert.Contains(t, s, "ip: 10.0.0.1")
	assert.Contains(t, s, "port: 30303")
	assert.NotContains(t, s, "\n")
}

// TestObject_MapIsCopy verifies that Map cannot be used to mutate the object.
func TestObject_MapIsCopy(t *testing.T) {
	o := NewObject(map[string]any{"ip": "10.0.0.1"})
	m := o.Map()
	m["ip"] = "changed"

	ip, err := o.GetString("ip")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", ip)
}
