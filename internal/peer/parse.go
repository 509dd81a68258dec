package peer

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-node-config/internal/hexcodec"
)

// Field names of peer list entries.
const (
	FieldURL      = "url"
	FieldIP       = "ip"
	FieldPort     = "port"
	FieldNodeID   = "nodeId"
	FieldNodeName = "nodeName"
)

// Entry is one object of a peer list as stored in the configuration.
type Entry interface {
	// Has reports whether the entry defines field.
	Has(field string) bool
	// GetString returns field converted to a string.
	GetString(field string) (string, error)
	// GetInt returns field converted to an int.
	GetInt(field string) (int, error)
	// String renders the raw entry for diagnostics.
	fmt.Stringer
}

// ParseActive parses "peer.active" entries. hasher derives node ids for
// entries that carry a nodeName; nil selects Keccak256. A nil or empty
// entries slice yields an empty result.
func ParseActive(entries []Entry, hasher NameHasher) ([]Spec, error) {
	specs := make([]Spec, 0, len(entries))
	for _, e := range entries {
		s, err := parseActiveEntry(e, hasher)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s)
	}

	return specs, nil
}

func parseActiveEntry(e Entry, hasher NameHasher) (Spec, error) {
	switch {
	case e.Has(FieldURL):
		url, err := e.GetString(FieldURL)
		if err != nil {
			return Spec{}, fmt.Errorf("error reading peer url at %s: %w", e, err)
		}
		if !strings.HasPrefix(url, enodeScheme) {
			url = enodeScheme + url
		}
		return Spec{URL: url}, nil

	case e.Has(FieldIP):
		ip, err := e.GetString(FieldIP)
		if err != nil {
			return Spec{}, fmt.Errorf("error reading peer ip at %s: %w", e, err)
		}

		if !e.Has(FieldPort) {
			return Spec{}, fmt.Errorf("%w: %s", ErrMissingPort, e)
		}
		port, err := e.GetInt(FieldPort)
		if err != nil {
			return Spec{}, fmt.Errorf("error reading peer port at %s: %w", e, err)
		}

		id, err := activeNodeID(e, hasher)
		if err != nil {
			return Spec{}, err
		}

		return Spec{ID: id, IP: strings.TrimSpace(ip), Port: port}, nil

	default:
		return Spec{}, &UnexpectedEntryError{Entry: e.String()}
	}
}

func activeNodeID(e Entry, hasher NameHasher) ([]byte, error) {
	hasID, hasName := e.Has(FieldNodeID), e.Has(FieldNodeName)
	switch {
	case hasID && hasName:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousNodeID, e)

	case hasID:
		raw, err := e.GetString(FieldNodeID)
		if err != nil {
			return nil, fmt.Errorf("error reading nodeId at %s: %w", e, err)
		}
		id, err := hexcodec.Decode(raw)
		if err != nil {
			return nil, &InvalidNodeIDError{Value: raw, Entry: e.String(), Cause: err}
		}
		if len(id) != NodeIDLength {
			return nil, &InvalidNodeIDError{
				Value: raw,
				Entry: e.String(),
				Cause: fmt.Errorf("decoded length %d, want %d", len(id), NodeIDLength),
			}
		}
		return id, nil

	case hasName:
		name, err := e.GetString(FieldNodeName)
		if err != nil {
			return nil, fmt.Errorf("error reading nodeName at %s: %w", e, err)
		}
		return DeriveNodeID(strings.TrimSpace(name), hasher)

	default:
		return nil, fmt.Errorf("%w: %s", ErrMissingNodeID, e)
	}
}

// ParseTrusted parses "peer.trusted" entries into a TrustFilter. Entries
// with neither a nodeId nor an ip are accepted as is.
func ParseTrusted(entries []Entry) (*TrustFilter, error) {
	filter := NewTrustFilter()
	for _, e := range entries {
		var (
			id   []byte
			mask string
		)

		if e.Has(FieldNodeID) {
			raw, err := e.GetString(FieldNodeID)
			if err != nil {
				return nil, fmt.Errorf("error reading nodeId at %s: %w", e, err)
			}
			// no length check for trusted ids
			id, err = hexcodec.Decode(raw)
			if err != nil {
				return nil, &InvalidNodeIDError{Value: raw, Entry: e.String(), Cause: err}
			}
		}

		if e.Has(FieldIP) {
			raw, err := e.GetString(FieldIP)
			if err != nil {
				return nil, fmt.Errorf("error reading ip mask at %s: %w", e, err)
			}
			mask = strings.TrimSpace(raw)
		}

		if err := filter.Add(id, mask); err != nil {
			return nil, fmt.Errorf("error adding trusted peer %s: %w", e, err)
		}
	}

	return filter, nil
}
