// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identity resolves the node's secp256k1 identity key.
//
// An explicitly configured key always wins. Without one, the key generated
// on the first run is read back from the identity file in the database
// directory; when there is none yet, a fresh key is generated and written
// there before it is returned, so every later run reuses it.
package identity

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MKhiriev/go-node-config/internal/hexcodec"
	"github.com/MKhiriev/go-node-config/internal/logger"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyLength is the decoded length of a private key.
const KeyLength = 32

// Manager resolves the generated identity of one storage location.
type Manager struct {
	store Store
	log   *logger.Logger

	mu  sync.Mutex
	key *ecdsa.PrivateKey
}

// NewManager returns a manager whose identity file lives in dir.
func NewManager(dir string, log *logger.Logger) *Manager {
	return NewManagerWithStore(NewPropertiesStore(filepath.Join(dir, FileName)), log)
}

// NewManagerWithStore returns a manager backed by store.
func NewManagerWithStore(store Store, log *logger.Logger) *Manager {
	return &Manager{
		store: store,
		log:   logger.OrNop(log).Component("identity"),
	}
}

// Location reports where the generated identity is stored.
func (m *Manager) Location() string {
	return m.store.Location()
}

// PrivateKey returns the explicitly configured key when explicit is not
// blank, otherwise the generated one.
func (m *Manager) PrivateKey(explicit string) (*ecdsa.PrivateKey, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParsePrivateKey(explicit)
	}
	return m.GeneratedKey()
}

// GeneratedKey returns the persisted key, generating and persisting one
// first when the store is empty. The result is memoized.
func (m *Manager) GeneratedKey() (*ecdsa.PrivateKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key != nil {
		return m.key, nil
	}

	rec, err := m.store.Load()
	switch {
	case err == nil:
		return m.adopt(rec)

	case errors.Is(err, ErrNotFound):
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("error generating node key: %w", err)
		}

		rec := Record{
			PrivateKey: hex.EncodeToString(crypto.FromECDSA(key)),
			NodeID:     hex.EncodeToString(NodeID(key)),
		}
		if err := m.store.Save(rec); err != nil {
			if errors.Is(err, ErrExists) {
				// another process stored its key first
				return m.reload()
			}
			return nil, fmt.Errorf("error persisting node key: %w", err)
		}

		m.log.Info().Str("nodeId", rec.NodeID).Msg("new nodeID generated")
		m.log.Info().Str("file", m.store.Location()).Msg("generated nodeID and its private key stored")
		m.key = key
		return key, nil

	default:
		return nil, err
	}
}

func (m *Manager) reload() (*ecdsa.PrivateKey, error) {
	rec, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("error reading concurrently stored node key: %w", err)
	}
	return m.adopt(rec)
}

// adopt parses a stored record and memoizes its key.
func (m *Manager) adopt(rec Record) (*ecdsa.PrivateKey, error) {
	key, err := ParsePrivateKey(rec.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptIdentity, m.store.Location(), err)
	}
	if rec.NodeID != "" && rec.NodeID != hex.EncodeToString(NodeID(key)) {
		m.log.Warn().Str("file", m.store.Location()).Msg("stored nodeId does not match the stored private key, using the key")
	}
	m.key = key
	return key, nil
}

// ParsePrivateKey decodes a hex private key, with or without 0x prefix. The
// key must decode to exactly 32 bytes.
func ParsePrivateKey(raw string) (*ecdsa.PrivateKey, error) {
	b, err := DecodePrivateKey(raw)
	if err != nil {
		return nil, err
	}

	key, err := crypto.ToECDSA(b)
	if err != nil {
		return nil, &InvalidKeyError{Value: raw, Cause: err}
	}
	return key, nil
}

// DecodePrivateKey checks the format of a hex private key and returns its
// bytes without building the key.
func DecodePrivateKey(raw string) ([]byte, error) {
	b, err := hexcodec.Decode(raw)
	if err != nil {
		return nil, &InvalidKeyError{Value: raw, Cause: err}
	}
	if len(b) != KeyLength {
		return nil, &InvalidKeyError{Value: raw, Cause: fmt.Errorf("decoded length %d", len(b))}
	}
	return b, nil
}

// NodeID derives the 64-byte node id of key: its uncompressed public key
// without the leading 0x04 byte.
func NodeID(key *ecdsa.PrivateKey) []byte {
	return crypto.FromECDSAPub(&key.PublicKey)[1:]
}
