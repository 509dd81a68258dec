package config

import (
	"fmt"

	"github.com/MKhiriev/go-node-config/internal/identity"
	"github.com/MKhiriev/go-node-config/internal/network"
	"github.com/MKhiriev/go-node-config/internal/peer"
)

// Rule is a named check over a configuration snapshot. Checks read keys
// and parse values; they never touch the disk or the network.
type Rule struct {
	Name  string
	Check func(p *Properties) error
}

// rules runs on every construction and every override, in this order.
var rules = []Rule{
	unlessSet(func(o overrides) bool { return o.discoveryEnabled != nil }, boolRule(KeyDiscoveryEnabled)),
	boolRule(KeyDiscoveryPersist),
	intRule(KeyDiscoveryWorkers, 1, maxInt),
	intRule(KeyDiscoveryTouchPeriod, 0, maxInt),
	intRule(KeyDiscoveryTouchMaxNodes, 0, maxInt),
	stringListRule(KeyDiscoveryIPList),
	boolRule(KeyDiscoveryPublicHomeNode),

	intRule(KeyPeerConnectionTimeout, 0, maxInt),
	intRule(KeyPeerChannelReadTimeout, 0, maxInt),
	optionalIntRule(KeyP2PVersion, 0, maxInt),
	optionalIntRule(KeyP2PFramingMaxSize, 1, maxInt),
	boolRule(KeyP2PEIP8),
	intRule(KeyPeerNetworkID, 0, maxInt),
	intRule(KeyPeerMaxActivePeers, 0, maxInt),
	intRule(KeyPeerListenPort, 0, 65535),
	stringListRule(KeyPeerCapabilities),
	{Name: KeyPeerNodeNameHash, Check: checkNodeNameHash},
	{Name: KeyPeerActive, Check: func(p *Properties) error { _, err := p.PeerActive(); return err }},
	{Name: KeyPeerTrusted, Check: func(p *Properties) error { _, err := p.PeerTrusted(); return err }},
	{Name: KeyPeerPrivateKey, Check: checkPrivateKey},

	intRule(KeyTransactionApproveTimeout, 0, maxInt),
	intRule(KeyTransactionOutdatedThreshold, 0, maxInt),

	unlessSet(func(o overrides) bool { return o.databaseDir != nil }, nonBlankRule(KeyDatabaseDir)),
	unlessSet(func(o overrides) bool { return o.databaseReset != nil }, boolRule(KeyDatabaseReset)),
	stringRule(KeyKeyValueDataSource),
	boolRule(KeyRedisEnabled),
	intRule(KeyDetailsInMemoryStorageLimit, 0, maxInt),
	floatRule(KeyCacheFlushMemory, 0, 1),
	intRule(KeyCacheFlushBlocks, 0, maxInt),

	stringRule(KeyCoinbaseSecret),
	intRule(KeyTraceStartBlock, -1, maxInt),
	boolRule(KeyRecordBlocks),
	boolRule(KeyPlayVM),
	boolRule(KeyBlockchainOnly),
	stringRule(KeyHelloPhrase),
	optionalStringRule(KeyRootHashStart),

	boolRule(KeyDumpFull),
	stringRule(KeyDumpDir),
	stringRule(KeyDumpStyle),
	intRule(KeyDumpBlock, -1, maxInt),
	boolRule(KeyDumpCleanOnRestart),

	unlessSet(func(o overrides) bool { return o.syncEnabled != nil }, boolRule(KeySyncEnabled)),
	intRule(KeySyncMaxHashesAsk, 0, maxInt),
	intRule(KeySyncMaxBlocksAsk, 0, maxInt),
	intRule(KeySyncPeerCount, 0, maxInt),
	optionalIntRule(KeySyncVersion, 0, maxInt),
	boolRule(KeySyncExitOnBlockConflict),

	boolRule(KeyVMTrace),
	boolRule(KeyVMTraceCompressed),
	intRule(KeyVMTraceInitStorageLimit, 0, maxInt),
	stringRule(KeyVMTraceDir),

	unlessSet(func(o overrides) bool { return o.genesisInfo != nil }, nonBlankRule(KeyGenesis)),
	{Name: "blockchain.config", Check: checkBlockchainConfig},

	boolRule(KeyMineStart),
	{Name: KeyMineCoinbase, Check: func(p *Properties) error { _, err := p.MinerCoinbase(); return err }},
	{Name: KeyMineExtraData, Check: func(p *Properties) error { _, err := p.MineExtraData(); return err }},
	{Name: KeyMineMinGasPrice, Check: func(p *Properties) error { _, err := p.MineMinGasPrice(); return err }},
	int64Rule(KeyMineMinBlockTimeout, 0),
	intRule(KeyMineCPUThreads, 0, maxInt),
	boolRule(KeyMineFullDataSet),
}

const maxInt = 1<<31 - 1

// Rules returns the registered checks.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Validate runs every rule against p and aggregates the failures. It
// returns nil or a *MergeValidationError.
func Validate(p *Properties) error {
	var failed []ValidationError
	for _, r := range rules {
		if err := r.Check(p); err != nil {
			failed = append(failed, ValidationError{Check: r.Name, Cause: err})
		}
	}

	if len(failed) > 0 {
		return &MergeValidationError{Errors: failed}
	}
	return nil
}

func unlessSet(set func(o overrides) bool, r Rule) Rule {
	check := r.Check
	r.Check = func(p *Properties) error {
		if set(p.currentOverrides()) {
			return nil
		}
		return check(p)
	}
	return r
}

func boolRule(key string) Rule {
	return Rule{Name: key, Check: func(p *Properties) error {
		_, err := p.Bool(key)
		return err
	}}
}

func stringRule(key string) Rule {
	return Rule{Name: key, Check: func(p *Properties) error {
		_, err := p.String(key)
		return err
	}}
}

func nonBlankRule(key string) Rule {
	return Rule{Name: key, Check: func(p *Properties) error {
		s, err := p.String(key)
		if err != nil {
			return err
		}
		if isBlank(s) {
			return fmt.Errorf("%w: '%s' must not be blank", ErrInvalidValue, key)
		}
		return nil
	}}
}

func optionalStringRule(key string) Rule {
	return Rule{Name: key, Check: func(p *Properties) error {
		if !p.Has(key) {
			return nil
		}
		_, err := p.String(key)
		return err
	}}
}

func stringListRule(key string) Rule {
	return Rule{Name: key, Check: func(p *Properties) error {
		_, err := p.StringList(key)
		return err
	}}
}

func intRule(key string, lo, hi int) Rule {
	return Rule{Name: key, Check: func(p *Properties) error {
		n, err := p.Int(key)
		if err != nil {
			return err
		}
		return inRange(key, n, lo, hi)
	}}
}

func optionalIntRule(key string, lo, hi int) Rule {
	r := intRule(key, lo, hi)
	check := r.Check
	r.Check = func(p *Properties) error {
		if !p.Has(key) {
			return nil
		}
		return check(p)
	}
	return r
}

func int64Rule(key string, lo int64) Rule {
	return Rule{Name: key, Check: func(p *Properties) error {
		n, err := p.Int64(key)
		if err != nil {
			return err
		}
		if n < lo {
			return fmt.Errorf("%w: '%s' is %d, must be at least %d", ErrInvalidValue, key, n, lo)
		}
		return nil
	}}
}

func floatRule(key string, lo, hi float64) Rule {
	return Rule{Name: key, Check: func(p *Properties) error {
		f, err := p.Float64(key)
		if err != nil {
			return err
		}
		if f < lo || f > hi {
			return fmt.Errorf("%w: '%s' is %v, must be within [%v, %v]", ErrInvalidValue, key, f, lo, hi)
		}
		return nil
	}}
}

func inRange(key string, n, lo, hi int) error {
	if n < lo || n > hi {
		return fmt.Errorf("%w: '%s' is %d, must be within [%d, %d]", ErrInvalidValue, key, n, lo, hi)
	}
	return nil
}

func checkNodeNameHash(p *Properties) error {
	_, err := p.nodeNameHasher()
	return err
}

// checkPrivateKey checks the format of an explicit key only. Resolving a
// generated key would touch the disk.
func checkPrivateKey(p *Properties) error {
	if !p.Has(KeyPeerPrivateKey) {
		return nil
	}
	raw, err := p.String(KeyPeerPrivateKey)
	if err != nil {
		return err
	}
	_, err = identity.ParsePrivateKey(raw)
	return err
}

func checkBlockchainConfig(p *Properties) error {
	if p.network.Injected() {
		return nil
	}
	_, err := network.Select(p)
	return err
}

// peerEntries adapts an object list to the parser's entry type.
func peerEntries(objs []*Object) []peer.Entry {
	entries := make([]peer.Entry, len(objs))
	for i, o := range objs {
		entries[i] = o
	}
	return entries
}
