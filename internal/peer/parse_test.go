package peer

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type mapEntry map[string]any

func (m mapEntry) Has(field string) bool {
	_, ok := m[field]
	return ok
}

func (m mapEntry) GetString(field string) (string, error) {
	return fmt.Sprint(m[field]), nil
}

func (m mapEntry) GetInt(field string) (int, error) {
	switch v := m[field].(type) {
	case int:
		return v, nil
	case string:
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("not an int: %v", v)
	}
}

func (m mapEntry) String() string {
	return fmt.Sprint(map[string]any(m))
}

func entries(ms ...mapEntry) []Entry {
	out := make([]Entry, 0, len(ms))
	for _, m := range ms {
		out = append(out, m)
	}
	return out
}

var nodeID64 = strings.Repeat("ab", 64)

// ── ParseActive ───────────────────────────────────────────────────────────────

// TestParseActive_Empty verifies that no entries yield an empty, non-nil list.
func TestParseActive_Empty(t *testing.T) {
	specs, err := ParseActive(nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, specs)
	assert.Empty(t, specs)
}

// TestParseActive_StructuredNodeID verifies that a structured entry with a
// 64-byte hex node id parses into matching fields.
func TestParseActive_StructuredNodeID(t *testing.T) {
	specs, err := ParseActive(entries(mapEntry{"ip": "10.0.0.1", "port": 30303, "nodeId": nodeID64}), nil)
	require.NoError(t, err)
	require.Len(t, specs, 1)

	s := specs[0]
	assert.False(t, s.IsURL())
	assert.Equal(t, "10.0.0.1", s.IP)
	assert.Equal(t, 30303, s.Port)
	assert.Len(t, s.ID, NodeIDLength)
	assert.Equal(t, byte(0xab), s.ID[0])
}

// TestParseActive_PortAsString verifies that ports delivered as strings (for
// example from command-line overrides) are accepted.
func TestParseActive_PortAsString(t *testing.T) {
	specs, err := ParseActive(entries(mapEntry{"ip": "10.0.0.1", "port": "30303", "nodeId": nodeID64}), nil)
	require.NoError(t, err)
	assert.Equal(t, 30303, specs[0].Port)
}

// TestParseActive_ShortNodeID verifies that a 63-byte node id fails with
// ErrInvalidNodeID naming the offending value.
func TestParseActive_ShortNodeID(t *testing.T) {
	short := strings.Repeat("ab", 63)
	_, err := ParseActive(entries(mapEntry{"ip": "10.0.0.1", "port": 30303, "nodeId": short}), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidNodeID)

	var idErr *InvalidNodeIDError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, short, idErr.Value)
	assert.Contains(t, err.Error(), short)
}

// TestParseActive_BadHexNodeID verifies that non-hex node ids are rejected.
func TestParseActive_BadHexNodeID(t *testing.T) {
	_, err := ParseActive(entries(mapEntry{"ip": "10.0.0.1", "port": 30303, "nodeId": "zz"}), nil)
	assert.ErrorIs(t, err, ErrInvalidNodeID)
}

// TestParseActive_URLPrefixed verifies that the enode scheme is added to a
// URL entry that lacks it.
func TestParseActive_URLPrefixed(t *testing.T) {
	specs, err := ParseActive(entries(mapEntry{"url": "abc@1.2.3.4:30303"}), nil)
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.True(t, specs[0].IsURL())
	assert.Equal(t, "enode://abc@1.2.3.4:30303", specs[0].URL)
}

// TestParseActive_URLKept verifies that an already prefixed URL is kept.
func TestParseActive_URLKept(t *testing.T) {
	specs, err := ParseActive(entries(mapEntry{"url": "enode://abc@1.2.3.4:30303"}), nil)
	require.NoError(t, err)
	assert.Equal(t, "enode://abc@1.2.3.4:30303", specs[0].URL)
}

// TestParseActive_URLWinsOverIP verifies that the url field takes priority
// over structured fields in the same entry.
func TestParseActive_URLWinsOverIP(t *testing.T) {
	specs, err := ParseActive(entries(mapEntry{"url": "abc@1.2.3.4:1", "ip": "10.0.0.1"}), nil)
	require.NoError(t, err)
	assert.True(t, specs[0].IsURL())
}

// TestParseActive_NodeNameDeterministic verifies that nodeName derives the
// same 64-byte id every time, and that the hash strategy matters.
func TestParseActive_NodeNameDeterministic(t *testing.T) {
	e := mapEntry{"ip": "10.0.0.1", "port": 30303, "nodeName": "my-node"}

	first, err := ParseActive(entries(e), nil)
	require.NoError(t, err)
	second, err := ParseActive(entries(e), Keccak256)
	require.NoError(t, err)
	other, err := ParseActive(entries(e), SHA3256)
	require.NoError(t, err)

	assert.Len(t, first[0].ID, NodeIDLength)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.NotEqual(t, first[0].ID, other[0].ID)
}

// TestParseActive_Errors covers the remaining fatal entry shapes.
func TestParseActive_Errors(t *testing.T) {
	tests := []struct {
		name    string
		entry   mapEntry
		wantErr error
	}{
		{
			name:    "neither url nor ip",
			entry:   mapEntry{"host": "10.0.0.1"},
			wantErr: ErrUnexpectedPeerEntry,
		},
		{
			name:    "missing port",
			entry:   mapEntry{"ip": "10.0.0.1", "nodeId": nodeID64},
			wantErr: ErrMissingPort,
		},
		{
			name:    "missing node id and name",
			entry:   mapEntry{"ip": "10.0.0.1", "port": 30303},
			wantErr: ErrMissingNodeID,
		},
		{
			name:    "both node id and name",
			entry:   mapEntry{"ip": "10.0.0.1", "port": 30303, "nodeId": nodeID64, "nodeName": "x"},
			wantErr: ErrAmbiguousNodeID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, err := ParseActive(entries(tt.entry), nil)
			assert.Nil(t, specs)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestParseActive_UnexpectedEntryIncludesRaw verifies that the raw entry is
// part of the error for diagnostics.
func TestParseActive_UnexpectedEntryIncludesRaw(t *testing.T) {
	_, err := ParseActive(entries(mapEntry{"host": "somewhere"}), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "somewhere")
}

// ── ParseTrusted ──────────────────────────────────────────────────────────────

// TestParseTrusted_NoLengthCheck verifies that trusted node ids of any
// length are accepted.
func TestParseTrusted_NoLengthCheck(t *testing.T) {
	f, err := ParseTrusted(entries(mapEntry{"nodeId": "abcd"}))
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())
	assert.True(t, f.Accept([]byte{0xab, 0xcd}, nil))
}

// TestParseTrusted_EmptyEntry verifies that entries with neither field are
// not rejected.
func TestParseTrusted_EmptyEntry(t *testing.T) {
	f, err := ParseTrusted(entries(mapEntry{}))
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())
}

// TestParseTrusted_BadHex verifies that malformed hex is still an error.
func TestParseTrusted_BadHex(t *testing.T) {
	_, err := ParseTrusted(entries(mapEntry{"nodeId": "xyz"}))
	assert.ErrorIs(t, err, ErrInvalidNodeID)
}

// TestParseTrusted_BadMask verifies that an unparsable ip mask is an error.
func TestParseTrusted_BadMask(t *testing.T) {
	_, err := ParseTrusted(entries(mapEntry{"ip": "not-an-ip"}))
	assert.ErrorIs(t, err, ErrInvalidIPMask)
}
