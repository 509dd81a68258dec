package identity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKeyLength indicates a private key that is not hex encoded or
	// does not decode to exactly 32 bytes.
	ErrInvalidKeyLength = errors.New("the private key needs to be hex encoded and 32 byte length")
	// ErrNotFound is returned by a Store that holds no identity yet.
	ErrNotFound = errors.New("identity not found")
	// ErrExists is returned by a Store asked to save over an existing record.
	ErrExists = errors.New("identity already stored")
	// ErrCorruptIdentity indicates a persisted identity file without a usable key.
	ErrCorruptIdentity = errors.New("persisted identity is corrupt")
)

// InvalidKeyError carries the offending raw key value.
type InvalidKeyError struct {
	Value string
	Cause error
}

func (e *InvalidKeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: '%s': %v", ErrInvalidKeyLength, e.Value, e.Cause)
	}
	return fmt.Sprintf("%v: '%s'", ErrInvalidKeyLength, e.Value)
}

func (e *InvalidKeyError) Unwrap() error {
	return ErrInvalidKeyLength
}
