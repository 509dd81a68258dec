package peer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNodeID indicates a node id that is not valid hex or, for
	// active peers, does not decode to exactly 64 bytes.
	ErrInvalidNodeID = errors.New("invalid node id")
	// ErrUnexpectedPeerEntry indicates an active peer entry that has neither
	// a url nor an ip field.
	ErrUnexpectedPeerEntry = errors.New("unexpected peer entry")
	// ErrMissingPort indicates a structured entry without a port.
	ErrMissingPort = errors.New("peer entry has no port")
	// ErrMissingNodeID indicates a structured entry with neither nodeId nor nodeName.
	ErrMissingNodeID = errors.New("either nodeId or nodeName should be specified")
	// ErrAmbiguousNodeID indicates a structured entry with both nodeId and nodeName.
	ErrAmbiguousNodeID = errors.New("only one of nodeId and nodeName may be specified")
	// ErrInvalidIPMask indicates a trusted peer ip mask that cannot be parsed.
	ErrInvalidIPMask = errors.New("invalid ip mask")
	// ErrUnknownHasher indicates an unsupported node name hash strategy.
	ErrUnknownHasher = errors.New("unknown node name hash")
)

// InvalidNodeIDError reports the offending raw node id and the entry it
// came from.
type InvalidNodeIDError struct {
	Value string
	Entry string
	Cause error
}

func (e *InvalidNodeIDError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid config nodeId '%s' at %s: %v", e.Value, e.Entry, e.Cause)
	}
	return fmt.Sprintf("invalid config nodeId '%s' at %s", e.Value, e.Entry)
}

func (e *InvalidNodeIDError) Unwrap() error {
	return ErrInvalidNodeID
}

// UnexpectedEntryError carries the raw entry that matched no known shape.
type UnexpectedEntryError struct {
	Entry string
}

func (e *UnexpectedEntryError) Error() string {
	return fmt.Sprintf("unexpected element within 'peer.active' config list: %s", e.Entry)
}

func (e *UnexpectedEntryError) Unwrap() error {
	return ErrUnexpectedPeerEntry
}
