package config

// Configuration keys. The names are shared with configuration files written
// for earlier releases and must not change.
const (
	KeyDatabaseDir   = "database.dir"
	KeyDatabaseReset = "database.reset"

	KeyDiscoveryEnabled        = "peer.discovery.enabled"
	KeyDiscoveryPersist        = "peer.discovery.persist"
	KeyDiscoveryWorkers        = "peer.discovery.workers"
	KeyDiscoveryTouchPeriod    = "peer.discovery.touchPeriod"
	KeyDiscoveryTouchMaxNodes  = "peer.discovery.touchMaxNodes"
	KeyDiscoveryIPList         = "peer.discovery.ip.list"
	KeyDiscoveryBindIP         = "peer.discovery.bind.ip"
	KeyDiscoveryExternalIP     = "peer.discovery.external.ip"
	KeyDiscoveryPublicHomeNode = "peer.discovery.public.home.node"

	KeyPeerActive             = "peer.active"
	KeyPeerTrusted            = "peer.trusted"
	KeyPeerPrivateKey         = "peer.privateKey"
	KeyPeerNetworkID          = "peer.networkId"
	KeyPeerMaxActivePeers     = "peer.maxActivePeers"
	KeyPeerListenPort         = "peer.listen.port"
	KeyPeerConnectionTimeout  = "peer.connection.timeout"
	KeyPeerChannelReadTimeout = "peer.channel.read.timeout"
	KeyPeerCapabilities       = "peer.capabilities"
	KeyPeerNodeNameHash       = "peer.nodeName.hash"
	KeyP2PVersion             = "peer.p2p.version"
	KeyP2PFramingMaxSize      = "peer.p2p.framing.maxSize"
	KeyP2PEIP8                = "peer.p2p.eip8"

	KeyTransactionApproveTimeout    = "transaction.approve.timeout"
	KeyTransactionOutdatedThreshold = "transaction.outdated.threshold"

	KeySamplesDir      = "samples.dir"
	KeyCoinbaseSecret  = "coinbase.secret"
	KeyTraceStartBlock = "trace.startblock"
	KeyRecordBlocks    = "record.blocks"
	KeyPlayVM          = "play.vm"
	KeyBlockchainOnly  = "blockchain.only"
	KeyHelloPhrase     = "hello.phrase"
	KeyRootHashStart   = "root.hash.start"

	KeyDumpFull           = "dump.full"
	KeyDumpDir            = "dump.dir"
	KeyDumpStyle          = "dump.style"
	KeyDumpBlock          = "dump.block"
	KeyDumpCleanOnRestart = "dump.clean.on.restart"

	KeySyncEnabled             = "sync.enabled"
	KeySyncMaxHashesAsk        = "sync.max.hashes.ask"
	KeySyncMaxBlocksAsk        = "sync.max.blocks.ask"
	KeySyncPeerCount           = "sync.peer.count"
	KeySyncVersion             = "sync.version"
	KeySyncExitOnBlockConflict = "sync.exitOnBlockConflict"

	KeyVMTrace                 = "vm.structured.trace"
	KeyVMTraceCompressed       = "vm.structured.compressed"
	KeyVMTraceInitStorageLimit = "vm.structured.initStorageLimit"
	KeyVMTraceDir              = "vm.structured.dir"

	KeyDetailsInMemoryStorageLimit = "details.inmemory.storage.limit"
	KeyCacheFlushMemory            = "cache.flush.memory"
	KeyCacheFlushBlocks            = "cache.flush.blocks"
	KeyKeyValueDataSource          = "keyvalue.datasource"
	KeyRedisEnabled                = "redis.enabled"

	KeyGenesis = "genesis"

	KeyMineStart           = "mine.start"
	KeyMineCoinbase        = "mine.coinbase"
	KeyMineExtraData       = "mine.extraData"
	KeyMineExtraDataHex    = "mine.extraDataHex"
	KeyMineMinGasPrice     = "mine.minGasPrice"
	KeyMineMinBlockTimeout = "mine.minBlockTimeoutMsec"
	KeyMineCPUThreads      = "mine.cpuMineThreads"
	KeyMineFullDataSet     = "mine.fullDataSet"

	KeyVMTestLoadLocal = "GitHubTests.VMTest.loadLocal"
	KeyBlocksLoader    = "blocks.loader"
)

// Fallbacks of optional keys.
const (
	DefaultP2PVersion = 5
	// NoFraming disables RLPx frame splitting.
	NoFraming = 1<<31 - 1

	defaultBindIP = "0.0.0.0"
)
