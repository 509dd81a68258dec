package genesis

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/ethereum/go-ethereum/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customGenesis = `{
  "config": {"chainId": 1337},
  "nonce": "0x42",
  "difficulty": "0x400",
  "gasLimit": "0x1000000",
  "extraData": "0x",
  "alloc": {}
}`

// TestLoad_BuiltIn verifies that well-known names resolve without I/O.
func TestLoad_BuiltIn(t *testing.T) {
	tests := []struct {
		name string
		want *core.Genesis
	}{
		{name: "frontier.json", want: core.DefaultGenesisBlock()},
		{name: "main", want: core.DefaultGenesisBlock()},
		{name: " Sepolia ", want: core.DefaultSepoliaGenesisBlock()},
		{name: "holesky", want: core.DefaultHoleskyGenesisBlock()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewLoader(nil).Load(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Config.ChainID, g.Config.ChainID)
			assert.Equal(t, tt.want.GasLimit, g.GasLimit)
		})
	}
}

// TestLoad_Resource verifies that files under the resource genesis
// directory are decoded.
func TestLoad_Resource(t *testing.T) {
	fsys := fstest.MapFS{
		"genesis/custom.json": {Data: []byte(customGenesis)},
	}

	g, err := NewLoader(fsys).Load("custom.json")
	require.NoError(t, err)
	assert.EqualValues(t, 1337, g.Config.ChainID.Int64())
	assert.EqualValues(t, 0x42, g.Nonce)
	assert.EqualValues(t, 0x1000000, g.GasLimit)
}

// TestLoad_Disk verifies the fall back to the local file system.
func TestLoad_Disk(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom.json")
	require.NoError(t, os.WriteFile(p, []byte(customGenesis), 0o600))

	g, err := NewLoader(fstest.MapFS{}).Load(p)
	require.NoError(t, err)
	assert.EqualValues(t, 1337, g.Config.ChainID.Int64())
}

// TestLoad_Errors verifies missing and malformed files.
func TestLoad_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"genesis/broken.json": {Data: []byte(`{"config":`)},
	}

	_, err := NewLoader(fsys).Load("broken.json")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = NewLoader(fsys).Load("absent.json")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewLoader(fsys).Load("  ")
	assert.ErrorIs(t, err, ErrNotFound)
}
