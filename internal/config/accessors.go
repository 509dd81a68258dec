package config

import (
	"crypto/ecdsa"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/MKhiriev/go-node-config/internal/hexcodec"
	"github.com/MKhiriev/go-node-config/internal/identity"
	"github.com/MKhiriev/go-node-config/internal/network"
	"github.com/MKhiriev/go-node-config/internal/peer"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"
)

// Plain accessors read keys that validation has already checked, so their
// conversions cannot fail on a value returned by New or Override.

func (p *Properties) str(key string) string {
	s, _ := p.String(key)
	return s
}

func (p *Properties) integer(key string) int {
	n, _ := p.Int(key)
	return n
}

func (p *Properties) boolean(key string) bool {
	b, _ := p.Bool(key)
	return b
}

func (p *Properties) list(key string) []string {
	l, _ := p.StringList(key)
	return l
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// ── peer discovery ────────────────────────────────────────────────────────────

func (p *Properties) PeerDiscovery() bool {
	if v := p.currentOverrides().discoveryEnabled; v != nil {
		return *v
	}
	return p.boolean(KeyDiscoveryEnabled)
}

func (p *Properties) SetDiscoveryEnabled(enabled bool) {
	p.setOverride(func(o *overrides) { o.discoveryEnabled = &enabled })
}

func (p *Properties) PeerDiscoveryPersist() bool      { return p.boolean(KeyDiscoveryPersist) }
func (p *Properties) PeerDiscoveryWorkers() int       { return p.integer(KeyDiscoveryWorkers) }
func (p *Properties) PeerDiscoveryTouchPeriod() int   { return p.integer(KeyDiscoveryTouchPeriod) }
func (p *Properties) PeerDiscoveryTouchMaxNodes() int { return p.integer(KeyDiscoveryTouchMaxNodes) }
func (p *Properties) PeerDiscoveryIPList() []string   { return p.list(KeyDiscoveryIPList) }
func (p *Properties) IsPublicHomeNode() bool          { return p.boolean(KeyDiscoveryPublicHomeNode) }

// ── peer ──────────────────────────────────────────────────────────────────────

// PeerConnectionTimeout is configured in seconds.
func (p *Properties) PeerConnectionTimeout() time.Duration {
	return seconds(p.integer(KeyPeerConnectionTimeout))
}

// PeerChannelReadTimeout is configured in seconds.
func (p *Properties) PeerChannelReadTimeout() time.Duration {
	return seconds(p.integer(KeyPeerChannelReadTimeout))
}

// DefaultP2PVersion falls back to DefaultP2PVersion when unset.
func (p *Properties) DefaultP2PVersion() int {
	if !p.Has(KeyP2PVersion) {
		return DefaultP2PVersion
	}
	return p.integer(KeyP2PVersion)
}

// RLPxMaxFrameSize falls back to NoFraming when unset.
func (p *Properties) RLPxMaxFrameSize() int {
	if !p.Has(KeyP2PFramingMaxSize) {
		return NoFraming
	}
	return p.integer(KeyP2PFramingMaxSize)
}

func (p *Properties) EIP8() bool                 { return p.boolean(KeyP2PEIP8) }
func (p *Properties) NetworkID() int             { return p.integer(KeyPeerNetworkID) }
func (p *Properties) MaxActivePeers() int        { return p.integer(KeyPeerMaxActivePeers) }
func (p *Properties) ListenPort() int            { return p.integer(KeyPeerListenPort) }
func (p *Properties) PeerCapabilities() []string { return p.list(KeyPeerCapabilities) }

func (p *Properties) nodeNameHasher() (peer.NameHasher, error) {
	name := ""
	if p.Has(KeyPeerNodeNameHash) {
		s, err := p.String(KeyPeerNodeNameHash)
		if err != nil {
			return nil, err
		}
		name = s
	}
	return peer.HasherByName(name)
}

// PeerActive parses "peer.active". An absent key yields no peers.
func (p *Properties) PeerActive() ([]peer.Spec, error) {
	if !p.Has(KeyPeerActive) {
		return []peer.Spec{}, nil
	}

	objs, err := p.ObjectList(KeyPeerActive)
	if err != nil {
		return nil, err
	}
	hasher, err := p.nodeNameHasher()
	if err != nil {
		return nil, err
	}
	return peer.ParseActive(peerEntries(objs), hasher)
}

// PeerTrusted parses "peer.trusted". An absent key yields an empty filter.
func (p *Properties) PeerTrusted() (*peer.TrustFilter, error) {
	if !p.Has(KeyPeerTrusted) {
		return peer.NewTrustFilter(), nil
	}

	objs, err := p.ObjectList(KeyPeerTrusted)
	if err != nil {
		return nil, err
	}
	return peer.ParseTrusted(peerEntries(objs))
}

// ── identity ──────────────────────────────────────────────────────────────────

func (p *Properties) identityManager() *identity.Manager {
	dir := p.DatabaseDir()

	p.idMu.Lock()
	defer p.idMu.Unlock()

	if p.identities == nil {
		p.identities = make(map[string]*identity.Manager)
	}
	m, ok := p.identities[dir]
	if !ok {
		m = identity.NewManager(dir, p.log)
		p.identities[dir] = m
	}
	return m
}

// MyKey resolves the node key: "peer.privateKey" when set, otherwise the
// key generated into the database directory on first use.
func (p *Properties) MyKey() (*ecdsa.PrivateKey, error) {
	explicit := ""
	if p.Has(KeyPeerPrivateKey) {
		s, err := p.String(KeyPeerPrivateKey)
		if err != nil {
			return nil, err
		}
		explicit = s
	}
	return p.identityManager().PrivateKey(explicit)
}

// PrivateKey returns the 32 bytes of MyKey.
func (p *Properties) PrivateKey() ([]byte, error) {
	key, err := p.MyKey()
	if err != nil {
		return nil, err
	}
	b := key.D.FillBytes(make([]byte, identity.KeyLength))
	return b, nil
}

// NodeID returns the 64-byte node id of MyKey.
func (p *Properties) NodeID() ([]byte, error) {
	key, err := p.MyKey()
	if err != nil {
		return nil, err
	}
	return identity.NodeID(key), nil
}

// ── network ───────────────────────────────────────────────────────────────────

// BlockchainConfig resolves the network configuration once.
func (p *Properties) BlockchainConfig() (network.Config, error) {
	return p.network.Resolve(p)
}

// SetBlockchainConfig injects cfg; it wins over "blockchain.config.*".
func (p *Properties) SetBlockchainConfig(cfg network.Config) {
	p.network.Set(cfg)
}

// ── database ──────────────────────────────────────────────────────────────────

func (p *Properties) DatabaseDir() string {
	if v := p.currentOverrides().databaseDir; v != nil {
		return *v
	}
	return p.str(KeyDatabaseDir)
}

func (p *Properties) SetDatabaseDir(dir string) {
	p.setOverride(func(o *overrides) { o.databaseDir = &dir })
}

func (p *Properties) DatabaseReset() bool {
	if v := p.currentOverrides().databaseReset; v != nil {
		return *v
	}
	return p.boolean(KeyDatabaseReset)
}

func (p *Properties) SetDatabaseReset(reset bool) {
	p.setOverride(func(o *overrides) { o.databaseReset = &reset })
}

func (p *Properties) KeyValueDataSource() string       { return p.str(KeyKeyValueDataSource) }
func (p *Properties) IsRedisEnabled() bool             { return p.boolean(KeyRedisEnabled) }
func (p *Properties) DetailsInMemoryStorageLimit() int { return p.integer(KeyDetailsInMemoryStorageLimit) }
func (p *Properties) CacheFlushBlocks() int            { return p.integer(KeyCacheFlushBlocks) }

func (p *Properties) CacheFlushMemory() float64 {
	f, _ := p.Float64(KeyCacheFlushMemory)
	return f
}

// ── transactions ──────────────────────────────────────────────────────────────

// TransactionApproveTimeout is configured in seconds.
func (p *Properties) TransactionApproveTimeout() time.Duration {
	return seconds(p.integer(KeyTransactionApproveTimeout))
}

func (p *Properties) TxOutdatedThreshold() int { return p.integer(KeyTransactionOutdatedThreshold) }

// ── misc ──────────────────────────────────────────────────────────────────────

func (p *Properties) SamplesDir() string     { return Get(p, KeySamplesDir, "") }
func (p *Properties) CoinbaseSecret() string { return p.str(KeyCoinbaseSecret) }
func (p *Properties) TraceStartBlock() int   { return p.integer(KeyTraceStartBlock) }
func (p *Properties) RecordBlocks() bool     { return p.boolean(KeyRecordBlocks) }
func (p *Properties) PlayVM() bool           { return p.boolean(KeyPlayVM) }
func (p *Properties) BlockchainOnly() bool   { return p.boolean(KeyBlockchainOnly) }
func (p *Properties) HelloPhrase() string    { return p.str(KeyHelloPhrase) }

// RootHashStart reports "root.hash.start" and whether it is set.
func (p *Properties) RootHashStart() (string, bool) {
	if !p.Has(KeyRootHashStart) {
		return "", false
	}
	return p.str(KeyRootHashStart), true
}

// ── dump ──────────────────────────────────────────────────────────────────────

func (p *Properties) DumpFull() bool           { return p.boolean(KeyDumpFull) }
func (p *Properties) DumpDir() string          { return p.str(KeyDumpDir) }
func (p *Properties) DumpStyle() string        { return p.str(KeyDumpStyle) }
func (p *Properties) DumpBlock() int           { return p.integer(KeyDumpBlock) }
func (p *Properties) DumpCleanOnRestart() bool { return p.boolean(KeyDumpCleanOnRestart) }

// ── sync ──────────────────────────────────────────────────────────────────────

func (p *Properties) IsSyncEnabled() bool {
	if v := p.currentOverrides().syncEnabled; v != nil {
		return *v
	}
	return p.boolean(KeySyncEnabled)
}

func (p *Properties) SetSyncEnabled(enabled bool) {
	p.setOverride(func(o *overrides) { o.syncEnabled = &enabled })
}

func (p *Properties) MaxHashesAsk() int         { return p.integer(KeySyncMaxHashesAsk) }
func (p *Properties) MaxBlocksAsk() int         { return p.integer(KeySyncMaxBlocksAsk) }
func (p *Properties) SyncPeerCount() int        { return p.integer(KeySyncPeerCount) }
func (p *Properties) ExitOnBlockConflict() bool { return p.boolean(KeySyncExitOnBlockConflict) }

// SyncVersion reports "sync.version" and whether it is set.
func (p *Properties) SyncVersion() (int, bool) {
	if !p.Has(KeySyncVersion) {
		return 0, false
	}
	return p.integer(KeySyncVersion), true
}

// ── vm ────────────────────────────────────────────────────────────────────────

func (p *Properties) VMTrace() bool                { return p.boolean(KeyVMTrace) }
func (p *Properties) VMTraceCompressed() bool      { return p.boolean(KeyVMTraceCompressed) }
func (p *Properties) VMTraceInitStorageLimit() int { return p.integer(KeyVMTraceInitStorageLimit) }
func (p *Properties) VMTraceDir() string           { return p.str(KeyVMTraceDir) }

// VMTestLoadLocal defaults to false.
func (p *Properties) VMTestLoadLocal() bool {
	return Get(p, KeyVMTestLoadLocal, false)
}

// BlocksLoader defaults to "".
func (p *Properties) BlocksLoader() string {
	return Get(p, KeyBlocksLoader, "")
}

// ── genesis ───────────────────────────────────────────────────────────────────

func (p *Properties) GenesisInfo() string {
	if v := p.currentOverrides().genesisInfo; v != nil {
		return *v
	}
	return p.str(KeyGenesis)
}

func (p *Properties) SetGenesisInfo(info string) {
	p.setOverride(func(o *overrides) { o.genesisInfo = &info })
}

// Genesis loads the genesis named by GenesisInfo. The result is cached
// until the name changes.
func (p *Properties) Genesis() (*core.Genesis, error) {
	name := p.GenesisInfo()

	p.genMu.Lock()
	defer p.genMu.Unlock()

	if p.genesis != nil && p.genesisName == name {
		return p.genesis, nil
	}

	g, err := p.genLoader.Load(name)
	if err != nil {
		return nil, fmt.Errorf("error loading genesis '%s': %w", name, err)
	}
	p.genesis, p.genesisName = g, name
	return g, nil
}

// ── mining ────────────────────────────────────────────────────────────────────

func (p *Properties) MinerStart() bool { return p.boolean(KeyMineStart) }

// MinerCoinbase decodes "mine.coinbase", which must be 20 bytes of hex.
func (p *Properties) MinerCoinbase() (common.Address, error) {
	raw, err := p.String(KeyMineCoinbase)
	if err != nil {
		return common.Address{}, err
	}

	b, err := hexcodec.Decode(raw)
	if err != nil || len(b) != common.AddressLength {
		return common.Address{}, fmt.Errorf("%w: %s has invalid value: '%s'", ErrInvalidValue, KeyMineCoinbase, raw)
	}
	return common.BytesToAddress(b), nil
}

// MineExtraData prefers "mine.extraDataHex" over the UTF-8 bytes of
// "mine.extraData". At most 32 bytes are allowed.
func (p *Properties) MineExtraData() ([]byte, error) {
	var data []byte
	if p.Has(KeyMineExtraDataHex) {
		raw, err := p.String(KeyMineExtraDataHex)
		if err != nil {
			return nil, err
		}
		if data, err = hexcodec.Decode(raw); err != nil {
			return nil, fmt.Errorf("%w: %s is not hex: '%s'", ErrInvalidValue, KeyMineExtraDataHex, raw)
		}
	} else {
		raw, err := p.String(KeyMineExtraData)
		if err != nil {
			return nil, err
		}
		data = []byte(raw)
	}

	if len(data) > 32 {
		return nil, fmt.Errorf("%w: %s exceed 32 bytes length: %d", ErrInvalidValue, KeyMineExtraData, len(data))
	}
	return data, nil
}

// MineMinGasPrice parses "mine.minGasPrice" as a decimal wei amount.
func (p *Properties) MineMinGasPrice() (*uint256.Int, error) {
	raw, err := p.String(KeyMineMinGasPrice)
	if err != nil {
		return nil, err
	}

	v, err := uint256.FromDecimal(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: '%s': %v", ErrInvalidValue, KeyMineMinGasPrice, raw, err)
	}
	return v, nil
}

// MineMinBlockTimeout is configured in milliseconds.
func (p *Properties) MineMinBlockTimeout() time.Duration {
	n, _ := p.Int64(KeyMineMinBlockTimeout)
	return time.Duration(n) * time.Millisecond
}

func (p *Properties) MineCPUThreads() int     { return p.integer(KeyMineCPUThreads) }
func (p *Properties) IsMineFullDataset() bool { return p.boolean(KeyMineFullDataSet) }

// ── build ─────────────────────────────────────────────────────────────────────

// ProjectVersion is the build version, "-.-.-" when unknown.
func (p *Properties) ProjectVersion() string {
	return p.buildInfo.Version()
}

// ProjectVersionModifier is RELEASE for builds of the master branch and
// SNAPSHOT otherwise.
func (p *Properties) ProjectVersionModifier() string {
	return p.buildInfo.VersionModifier()
}

// ── dump ──────────────────────────────────────────────────────────────────────

// Dump renders the merged configuration as YAML.
func (p *Properties) Dump() (string, error) {
	tree, err := p.Stack().Effective()
	if err != nil {
		return "", err
	}

	out, err := yaml.Marshal(tree)
	if err != nil {
		return "", fmt.Errorf("error rendering config: %w", err)
	}
	return string(out), nil
}

// IdentityFile is where a generated node key is stored.
func (p *Properties) IdentityFile() string {
	return filepath.Join(p.DatabaseDir(), identity.FileName)
}
