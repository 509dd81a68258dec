package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConvert_Scalars verifies the accepted conversions between scalar
// types, including strings coming from command lines and environment.
func TestConvert_Scalars(t *testing.T) {
	s, err := toString("k", int64(42))
	require.NoError(t, err)
	assert.Equal(t, "42", s)

	s, err = toString("k", 0.7)
	require.NoError(t, err)
	assert.Equal(t, "0.7", s)

	n, err := toInt("k", " 30304 ")
	require.NoError(t, err)
	assert.Equal(t, 30304, n)

	n, err = toInt("k", float64(12))
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	n64, err := toInt64("k", "5000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000_000), n64)

	b, err := toBool("k", "FALSE")
	require.NoError(t, err)
	assert.False(t, b)

	b, err = toBool("k", "on")
	require.NoError(t, err)
	assert.True(t, b)

	f, err := toFloat64("k", int64(1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)
}

// TestConvert_Mismatch verifies that incompatible values fail with a
// TypeMismatchError naming the key.
func TestConvert_Mismatch(t *testing.T) {
	tests := []struct {
		name string
		conv func() error
	}{
		{name: "int from word", conv: func() error { _, err := toInt("k", "many"); return err }},
		{name: "int from fraction", conv: func() error { _, err := toInt("k", 1.5); return err }},
		{name: "int overflow", conv: func() error { _, err := toInt("k", int64(1)<<40); return err }},
		{name: "bool from number", conv: func() error { _, err := toBool("k", int64(1)); return err }},
		{name: "bool from word", conv: func() error { _, err := toBool("k", "maybe"); return err }},
		{name: "string from list", conv: func() error { _, err := toString("k", []any{"a"}); return err }},
		{name: "string from object", conv: func() error { _, err := toString("k", map[string]any{}); return err }},
		{name: "float from word", conv: func() error { _, err := toFloat64("k", "x"); return err }},
		{name: "list from object", conv: func() error { _, err := toStringList("k", map[string]any{}); return err }},
		{name: "list of objects", conv: func() error { _, err := toStringList("k", []any{map[string]any{}}); return err }},
		{name: "objects from scalars", conv: func() error { _, err := toObjectList("k", []any{"a"}); return err }},
		{name: "objects from object", conv: func() error { _, err := toObjectList("k", map[string]any{}); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conv()
			assert.ErrorIs(t, err, ErrTypeMismatch)

			var mismatch *TypeMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, "k", mismatch.Key)
		})
	}
}

// TestConvert_StringList verifies lists and comma-separated strings.
func TestConvert_StringList(t *testing.T) {
	l, err := toStringList("k", []any{"eth", int64(62), true})
	require.NoError(t, err)
	assert.Equal(t, []string{"eth", "62", "true"}, l)

	l, err = toStringList("k", " eth, shh ,,bzz")
	require.NoError(t, err)
	assert.Equal(t, []string{"eth", "shh", "bzz"}, l)

	l, err = toStringList("k", "")
	require.NoError(t, err)
	assert.Empty(t, l)
}

// TestConvert_ObjectList verifies that list elements become Objects.
func TestConvert_ObjectList(t *testing.T) {
	objs, err := toObjectList("peer.active", []any{
		map[string]any{"url": "enode://a@b:1"},
		map[string]any{"ip": "10.0.0.1", "port": int64(30303)},
	})
	require.NoError(t, err)
	require.Len(t, objs, 2)

	assert.True(t, objs[0].Has("url"))
	port, err := objs[1].GetInt("port")
	require.NoError(t, err)
	assert.Equal(t, 30303, port)
}
