// Package genesis loads the genesis block description named by the
// "genesis" configuration key. Well-known networks are built in; any other
// name is read as a JSON genesis file.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/ethereum/go-ethereum/core"
)

var (
	// ErrNotFound indicates a genesis name that is neither built in nor a
	// readable file.
	ErrNotFound = errors.New("genesis not found")
	// ErrInvalid indicates a genesis file that does not decode.
	ErrInvalid = errors.New("invalid genesis file")
)

// ResourceDir is the directory genesis files are looked up in within the
// resource file system.
const ResourceDir = "genesis"

//go:generate mockgen -source=loader.go -destination=../mock/genesis_loader_mock.go -package=mock

// Loader resolves a genesis name to a genesis description.
type Loader interface {
	Load(name string) (*core.Genesis, error)
}

// FSLoader knows the built-in networks and reads other names from a
// resource file system, falling back to the local disk.
type FSLoader struct {
	resources fs.FS
}

// NewLoader returns a loader reading files from resources. resources may
// be nil.
func NewLoader(resources fs.FS) *FSLoader {
	return &FSLoader{resources: resources}
}

// Load implements [Loader].
func (l *FSLoader) Load(name string) (*core.Genesis, error) {
	name = strings.TrimSpace(name)

	switch strings.ToLower(name) {
	case "frontier.json", "main", "mainnet":
		return core.DefaultGenesisBlock(), nil
	case "sepolia", "sepolia.json":
		return core.DefaultSepoliaGenesisBlock(), nil
	case "holesky", "holesky.json":
		return core.DefaultHoleskyGenesisBlock(), nil
	}

	data, err := l.read(name)
	if err != nil {
		return nil, err
	}

	g := new(core.Genesis)
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrInvalid, name, err)
	}
	return g, nil
}

func (l *FSLoader) read(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	if l.resources != nil {
		for _, p := range []string{path.Join(ResourceDir, name), name} {
			if !fs.ValidPath(p) {
				continue
			}
			data, err := fs.ReadFile(l.resources, p)
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading genesis resource '%s': %w", p, err)
			}
		}
	}

	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrNotFound, name)
		}
		return nil, fmt.Errorf("error reading genesis file '%s': %w", name, err)
	}
	return data, nil
}
