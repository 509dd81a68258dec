package ipresolver

import "errors"

var (
	// ErrInvalidAddress indicates a lookup answer that is not an IP address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrLookupFailed indicates a lookup endpoint that answered with an error
	// status.
	ErrLookupFailed = errors.New("ip lookup failed")
)
