package peer

import (
	"net"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/enode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTrustFilter_CIDRIgnoresNodeID verifies that a CIDR-only entry accepts
// any peer inside the range regardless of its node id.
func TestTrustFilter_CIDRIgnoresNodeID(t *testing.T) {
	f, err := ParseTrusted(entries(mapEntry{"ip": "10.0.0.0/8"}))
	require.NoError(t, err)

	assert.True(t, f.Accept([]byte{1, 2, 3}, net.ParseIP("10.1.2.3")))
	assert.True(t, f.Accept(nil, net.ParseIP("10.255.0.1")))
	assert.False(t, f.Accept([]byte{1, 2, 3}, net.ParseIP("11.0.0.1")))
	assert.False(t, f.Accept(nil, nil))
}

// TestTrustFilter_Masks covers the supported ip mask forms.
func TestTrustFilter_Masks(t *testing.T) {
	tests := []struct {
		name   string
		mask   string
		ip     string
		accept bool
	}{
		{name: "exact match", mask: "192.168.1.5", ip: "192.168.1.5", accept: true},
		{name: "exact mismatch", mask: "192.168.1.5", ip: "192.168.1.6", accept: false},
		{name: "wildcard", mask: "192.168.*.*", ip: "192.168.7.9", accept: true},
		{name: "wildcard outside", mask: "192.168.*.*", ip: "192.169.7.9", accept: false},
		{name: "match all", mask: "*", ip: "8.8.8.8", accept: true},
		{name: "ipv6 cidr", mask: "fd00::/8", ip: "fd00::1", accept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTrustFilter()
			require.NoError(t, f.Add(nil, tt.mask))
			assert.Equal(t, tt.accept, f.Accept(nil, net.ParseIP(tt.ip)))
		})
	}
}

// TestTrustFilter_NonTrailingWildcard verifies that wildcards in the middle
// of a pattern are rejected.
func TestTrustFilter_NonTrailingWildcard(t *testing.T) {
	assert.ErrorIs(t, NewTrustFilter().Add(nil, "10.*.0.1"), ErrInvalidIPMask)
}

// TestTrustFilter_IDAndMask verifies that an entry with both fields requires
// both to match, and that any entry may accept.
func TestTrustFilter_IDAndMask(t *testing.T) {
	f := NewTrustFilter()
	require.NoError(t, f.Add([]byte{0xaa}, "10.0.0.0/8"))
	require.NoError(t, f.Add([]byte{0xbb}, ""))

	assert.True(t, f.Accept([]byte{0xaa}, net.ParseIP("10.0.0.1")))
	assert.False(t, f.Accept([]byte{0xaa}, net.ParseIP("11.0.0.1")))
	assert.True(t, f.Accept([]byte{0xbb}, net.ParseIP("11.0.0.1")))
	assert.False(t, f.Accept([]byte{0xcc}, net.ParseIP("10.0.0.1")))
}

// TestTrustFilter_EmptyFilter verifies that a filter without entries accepts
// nothing while an entry without fields accepts everything.
func TestTrustFilter_EmptyFilter(t *testing.T) {
	f := NewTrustFilter()
	assert.False(t, f.Accept([]byte{1}, net.ParseIP("1.1.1.1")))

	require.NoError(t, f.Add(nil, ""))
	assert.True(t, f.Accept([]byte{1}, net.ParseIP("1.1.1.1")))
}

// TestTrustFilter_AcceptNode verifies matching against an enode record.
func TestTrustFilter_AcceptNode(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	n := enode.NewV4(&key.PublicKey, net.ParseIP("10.0.0.7"), 30303, 30303)

	f := NewTrustFilter()
	require.NoError(t, f.Add(crypto.FromECDSAPub(&key.PublicKey)[1:], ""))
	assert.True(t, f.AcceptNode(n))

	other := NewTrustFilter()
	require.NoError(t, other.Add(nil, "192.168.0.0/16"))
	assert.False(t, other.AcceptNode(n))
}
