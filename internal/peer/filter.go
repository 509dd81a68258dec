package peer

import (
	"bytes"
	"fmt"
	"net"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/p2p/enode"
	"github.com/ethereum/go-ethereum/p2p/netutil"
)

// TrustFilter classifies peers as pre-trusted. A peer is accepted when at
// least one entry matches it on every field that entry specifies.
type TrustFilter struct {
	entries []trustEntry
}

type trustEntry struct {
	id   []byte
	mask string
	nets *netutil.Netlist
}

// NewTrustFilter returns an empty filter that accepts nothing.
func NewTrustFilter() *TrustFilter {
	return &TrustFilter{}
}

// Add appends an entry. id may be nil and mask may be empty; an entry with
// neither constrains nothing. mask is an IP address, a CIDR block or an IPv4
// pattern with trailing "*" octets (e.g. "10.1.*.*").
func (f *TrustFilter) Add(id []byte, mask string) error {
	entry := trustEntry{id: id, mask: mask}
	if mask != "" {
		nets, err := compileMask(mask)
		if err != nil {
			return err
		}
		entry.nets = nets
	}

	f.entries = append(f.entries, entry)
	return nil
}

// Len returns the number of entries.
func (f *TrustFilter) Len() int {
	return len(f.entries)
}

// Accept reports whether a peer with node id id reachable at ip is trusted.
func (f *TrustFilter) Accept(id []byte, ip net.IP) bool {
	for _, e := range f.entries {
		if e.accept(id, ip) {
			return true
		}
	}
	return false
}

// AcceptNode is Accept for a go-ethereum node record.
func (f *TrustFilter) AcceptNode(n *enode.Node) bool {
	var id []byte
	if pub := n.Pubkey(); pub != nil {
		id = crypto.FromECDSAPub(pub)[1:]
	}
	return f.Accept(id, n.IP())
}

func (e trustEntry) accept(id []byte, ip net.IP) bool {
	if e.id != nil && !bytes.Equal(e.id, id) {
		return false
	}
	if e.nets != nil && (ip == nil || !e.nets.Contains(ip)) {
		return false
	}
	return true
}

func compileMask(mask string) (*netutil.Netlist, error) {
	cidr := mask
	switch {
	case strings.Contains(mask, "*"):
		c, err := wildcardToCIDR(mask)
		if err != nil {
			return nil, err
		}
		cidr = c
	case !strings.Contains(mask, "/"):
		ip := net.ParseIP(mask)
		if ip == nil {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidIPMask, mask)
		}
		if ip.To4() != nil {
			cidr = mask + "/32"
		} else {
			cidr = mask + "/128"
		}
	}

	nets, err := netutil.ParseNetlist(cidr)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", ErrInvalidIPMask, mask, err)
	}
	return nets, nil
}

// wildcardToCIDR rewrites an IPv4 pattern such as "10.1.*.*" into
// "10.1.0.0/16". Wildcards must form a suffix.
func wildcardToCIDR(mask string) (string, error) {
	if mask == "*" {
		return "0.0.0.0/0", nil
	}

	octets := strings.Split(mask, ".")
	if len(octets) != net.IPv4len {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidIPMask, mask)
	}

	fixed := 0
	for i, o := range octets {
		if o == "*" {
			octets[i] = "0"
			continue
		}
		if fixed != i {
			return "", fmt.Errorf("%w: '%s': wildcard must be trailing", ErrInvalidIPMask, mask)
		}
		fixed++
	}

	ip := net.ParseIP(strings.Join(octets, "."))
	if ip == nil {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidIPMask, mask)
	}
	return fmt.Sprintf("%s/%d", ip.String(), fixed*8), nil
}
