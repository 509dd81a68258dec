package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/magiconair/properties"
)

// FileName is the name of the identity file inside the database directory.
const FileName = "nodeId.properties"

// Property names of the identity file. They are shared with files written by
// earlier runs and must not change.
const (
	PropPrivateKey = "nodeIdPrivateKey"
	PropNodeID     = "nodeId"
)

const fileHeader = "Generated NodeID. To use your own nodeId please refer to 'peer.privateKey' config option."

// Record is a persisted identity: both values are lowercase hex without a
// 0x prefix.
type Record struct {
	PrivateKey string
	NodeID     string
}

//go:generate mockgen -source=store.go -destination=../mock/identity_store_mock.go -package=mock

// Store persists a single identity record.
type Store interface {
	// Load returns the stored record or ErrNotFound.
	Load() (Record, error)
	// Save writes rec. It returns ErrExists if a record already exists.
	Save(rec Record) error
	// Location describes where the record lives, for logging.
	Location() string
}

// PropertiesStore keeps the identity in a Java-properties file.
type PropertiesStore struct {
	path string
}

// NewPropertiesStore returns a store backed by the file at path.
func NewPropertiesStore(path string) *PropertiesStore {
	return &PropertiesStore{path: path}
}

// Location implements [Store].
func (s *PropertiesStore) Location() string {
	return s.path
}

// Load implements [Store].
func (s *PropertiesStore) Load() (Record, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("error accessing identity file %s: %w", s.path, err)
	}

	p, err := properties.LoadFile(s.path, properties.UTF8)
	if err != nil {
		return Record{}, fmt.Errorf("error reading identity file %s: %w", s.path, err)
	}

	key, ok := p.Get(PropPrivateKey)
	if !ok || key == "" {
		return Record{}, fmt.Errorf("%w: %s has no %s", ErrCorruptIdentity, s.path, PropPrivateKey)
	}
	id, _ := p.Get(PropNodeID)

	return Record{PrivateKey: key, NodeID: id}, nil
}

// Save implements [Store]. Parent directories are created as needed. The
// record is written to a temporary file first and linked into place, so a
// failed write never leaves a truncated identity behind. When a record
// already exists Save returns ErrExists.
func (s *PropertiesStore) Save(rec Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("error creating identity directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating identity file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := writeRecord(tmp, rec); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing identity file: %w", err)
	}

	return s.install(tmp.Name())
}

// install puts the written file at s.path without replacing an existing
// one. Link fails if the target exists; file systems without hard links
// fall back to a rename after an existence check.
func (s *PropertiesStore) install(tmp string) error {
	err := os.Link(tmp, s.path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrExists, s.path)
	}

	if _, statErr := os.Lstat(s.path); statErr == nil {
		return fmt.Errorf("%w: %s", ErrExists, s.path)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("error installing identity file %s: %w", s.path, err)
	}
	return nil
}

func writeRecord(f *os.File, rec Record) error {
	p := properties.NewProperties()
	if _, _, err := p.Set(PropPrivateKey, rec.PrivateKey); err != nil {
		return fmt.Errorf("error setting %s: %w", PropPrivateKey, err)
	}
	if _, _, err := p.Set(PropNodeID, rec.NodeID); err != nil {
		return fmt.Errorf("error setting %s: %w", PropNodeID, err)
	}

	if _, err := fmt.Fprintf(f, "#%s\n#%s\n", fileHeader, time.Now().Format(time.UnixDate)); err != nil {
		return fmt.Errorf("error writing identity file header: %w", err)
	}
	if _, err := p.Write(f, properties.UTF8); err != nil {
		return fmt.Errorf("error writing identity file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("error syncing identity file: %w", err)
	}
	return nil
}
