package peer

import (
	"fmt"
	"net"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSpec_NodeStructured verifies that a structured spec converts into an
// enode record with the same id, ip and port.
func TestSpec_NodeStructured(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	id := crypto.FromECDSAPub(&key.PublicKey)[1:]

	s := Spec{ID: id, IP: "10.0.0.1", Port: 30303}
	n, err := s.Node()
	require.NoError(t, err)

	assert.True(t, n.IP().Equal(net.ParseIP("10.0.0.1")))
	assert.Equal(t, 30303, n.TCP())
	assert.Equal(t, crypto.FromECDSAPub(n.Pubkey())[1:], id)
}

// TestSpec_NodeURL verifies that a URL-form spec round-trips through String
// and Node.
func TestSpec_NodeURL(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	id := crypto.FromECDSAPub(&key.PublicKey)[1:]

	url := fmt.Sprintf("enode://%x@1.2.3.4:30303", id)
	s := Spec{URL: url}
	assert.Equal(t, url, s.String())

	n, err := s.Node()
	require.NoError(t, err)
	assert.Equal(t, 30303, n.TCP())
}

// TestSpec_NodeBadURL verifies that a malformed URL is only reported on
// conversion.
func TestSpec_NodeBadURL(t *testing.T) {
	_, err := Spec{URL: "enode://abc@1.2.3.4:30303"}.Node()
	assert.Error(t, err)
}

// TestSpec_StringStructured verifies the enode rendering of structured specs.
func TestSpec_StringStructured(t *testing.T) {
	s := Spec{ID: []byte{0x01, 0x02}, IP: "10.0.0.1", Port: 1}
	assert.Equal(t, "enode://0102@10.0.0.1:1", s.String())
}

// TestHasherByName covers the supported strategies.
func TestHasherByName(t *testing.T) {
	h, err := HasherByName("")
	require.NoError(t, err)
	assert.Equal(t, Keccak256([]byte("x")), h([]byte("x")))

	h, err = HasherByName("SHA3-256")
	require.NoError(t, err)
	assert.Equal(t, SHA3256([]byte("x")), h([]byte("x")))

	_, err = HasherByName("md5")
	assert.ErrorIs(t, err, ErrUnknownHasher)
}

// TestDeriveNodeID verifies that the derived id matches deriving the public
// key from the hashed name directly.
func TestDeriveNodeID(t *testing.T) {
	id, err := DeriveNodeID("node-1", Keccak256)
	require.NoError(t, err)

	key, err := crypto.ToECDSA(crypto.Keccak256([]byte("node-1")))
	require.NoError(t, err)
	assert.Equal(t, crypto.FromECDSAPub(&key.PublicKey)[1:], id)
}
