package peer

import (
	"fmt"
	"net"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/enode"
)

// NodeIDLength is the decoded length of a node id: an uncompressed
// secp256k1 public key without its 0x04 prefix.
const NodeIDLength = 64

const enodeScheme = "enode://"

// Spec describes one configured peer. Exactly one shape is populated:
// URL for URL-form entries, ID/IP/Port for structured ones.
type Spec struct {
	// URL is the enode URL of a URL-form entry, always carrying the
	// enode:// scheme.
	URL string

	// ID is the 64-byte node id of a structured entry.
	ID []byte
	// IP is the address of a structured entry, as configured.
	IP string
	// Port is the TCP (and UDP) port of a structured entry.
	Port int
}

// IsURL reports whether s is a URL-form spec.
func (s Spec) IsURL() bool {
	return s.URL != ""
}

// String renders s as an enode URL.
func (s Spec) String() string {
	if s.IsURL() {
		return s.URL
	}
	return fmt.Sprintf("%s%x@%s", enodeScheme, s.ID, net.JoinHostPort(s.IP, fmt.Sprint(s.Port)))
}

// Node converts s into a go-ethereum enode.Node. URL-form specs are parsed
// here for the first time, so a malformed URL only surfaces on this call.
func (s Spec) Node() (*enode.Node, error) {
	if s.IsURL() {
		n, err := enode.ParseV4(s.URL)
		if err != nil {
			return nil, fmt.Errorf("error parsing peer url '%s': %w", s.URL, err)
		}
		return n, nil
	}

	pub, err := crypto.UnmarshalPubkey(append([]byte{0x04}, s.ID...))
	if err != nil {
		return nil, fmt.Errorf("error decoding node id %x: %w", s.ID, err)
	}

	ip := net.ParseIP(s.IP)
	if ip == nil {
		ips, err := net.LookupIP(s.IP)
		if err != nil || len(ips) == 0 {
			return nil, fmt.Errorf("error resolving peer host '%s': %w", s.IP, err)
		}
		ip = ips[0]
	}

	return enode.NewV4(pub, ip, s.Port, s.Port), nil
}
