package peer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// Names accepted by [HasherByName].
const (
	HashKeccak256 = "keccak256"
	HashSHA3256   = "sha3-256"
)

// NameHasher turns a human-readable node name into a 32-byte private key
// seed.
//
// The node id derivation path elsewhere in the node uses Keccak-256, which
// is also the default here. Whether names should go through a different
// digest is unresolved, so the strategy stays pluggable.
type NameHasher func(data []byte) []byte

// Keccak256 is the legacy Keccak-256 digest.
func Keccak256(data []byte) []byte {
	return crypto.Keccak256(data)
}

// SHA3256 is the NIST FIPS-202 SHA3-256 digest.
func SHA3256(data []byte) []byte {
	sum := sha3.Sum256(data)
	return sum[:]
}

// HasherByName returns the hasher registered under name. An empty name
// selects Keccak256.
func HasherByName(name string) (NameHasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", HashKeccak256:
		return Keccak256, nil
	case HashSHA3256:
		return SHA3256, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownHasher, name)
	}
}

// DeriveNodeID derives a 64-byte node id from name: the UTF-8 bytes of name
// are hashed with hasher and the digest is used as a secp256k1 private key.
func DeriveNodeID(name string, hasher NameHasher) ([]byte, error) {
	if hasher == nil {
		hasher = Keccak256
	}

	key, err := crypto.ToECDSA(hasher([]byte(name)))
	if err != nil {
		return nil, fmt.Errorf("error deriving key from node name '%s': %w", name, err)
	}

	return crypto.FromECDSAPub(&key.PublicKey)[1:], nil
}
