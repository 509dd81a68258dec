// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package network selects the fork-schedule configuration a node runs with.
//
// A configuration is picked either by one of the built-in names ("main",
// "olympic", "morden", "testnet", "sepolia", "holesky") read from
// "blockchain.config.name", or by a class reference read from
// "blockchain.config.class" that must have been registered with
// [RegisterClass]. Setting both keys is an error.
package network

import (
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

// Config is a network fork-schedule configuration.
type Config interface {
	// Name is the identifier the configuration was selected by.
	Name() string
	// NetworkID is the devp2p network id peers must agree on.
	NetworkID() uint64
	// ChainConfig is the fork schedule.
	ChainConfig() *params.ChainConfig
}

// Built-in configuration names.
const (
	Main    = "main"
	Olympic = "olympic"
	Morden  = "morden"
	Testnet = "testnet"
	Sepolia = "sepolia"
	Holesky = "holesky"
)

type staticConfig struct {
	name      string
	networkID uint64
	chain     *params.ChainConfig
}

func (c *staticConfig) Name() string                     { return c.name }
func (c *staticConfig) NetworkID() uint64                { return c.networkID }
func (c *staticConfig) ChainConfig() *params.ChainConfig { return c.chain }

// New wraps a chain config as a Config.
func New(name string, networkID uint64, chain *params.ChainConfig) Config {
	return &staticConfig{name: name, networkID: networkID, chain: chain}
}

// builtins is the closed set of names accepted by "blockchain.config.name".
var builtins = map[string]func() Config{
	Main: func() Config {
		return New(Main, 1, params.MainnetChainConfig)
	},
	Olympic: func() Config {
		return New(Olympic, 0, &params.ChainConfig{ChainID: big.NewInt(0)})
	},
	Morden: func() Config {
		return New(Morden, 2, &params.ChainConfig{
			ChainID:        big.NewInt(2),
			HomesteadBlock: big.NewInt(494_000),
			EIP150Block:    big.NewInt(1_783_000),
			EIP155Block:    big.NewInt(1_885_000),
			EIP158Block:    big.NewInt(1_885_000),
		})
	},
	Testnet: func() Config {
		return New(Testnet, 3, &params.ChainConfig{
			ChainID:             big.NewInt(3),
			HomesteadBlock:      big.NewInt(0),
			EIP150Block:         big.NewInt(0),
			EIP155Block:         big.NewInt(10),
			EIP158Block:         big.NewInt(10),
			ByzantiumBlock:      big.NewInt(1_700_000),
			ConstantinopleBlock: big.NewInt(4_230_000),
			PetersburgBlock:     big.NewInt(4_939_394),
			IstanbulBlock:       big.NewInt(6_485_846),
			MuirGlacierBlock:    big.NewInt(7_117_117),
			BerlinBlock:         big.NewInt(9_812_189),
			LondonBlock:         big.NewInt(10_499_401),
		})
	},
	Sepolia: func() Config {
		return New(Sepolia, 11_155_111, params.SepoliaChainConfig)
	},
	Holesky: func() Config {
		return New(Holesky, 17_000, params.HoleskyChainConfig)
	},
}

// IsBuiltin reports whether name is one of the built-in configurations.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// BuiltinNames lists the built-in configuration names.
func BuiltinNames() []string {
	return []string{Main, Olympic, Morden, Testnet, Sepolia, Holesky}
}

// ForkAt names the most recent block-number activated fork of cfg at block.
func ForkAt(cfg Config, block uint64) string {
	c := cfg.ChainConfig()
	if c == nil {
		return "frontier"
	}

	num := new(big.Int).SetUint64(block)
	switch {
	case c.IsLondon(num):
		return "london"
	case c.IsBerlin(num):
		return "berlin"
	case c.IsIstanbul(num):
		return "istanbul"
	case c.IsPetersburg(num):
		return "petersburg"
	case c.IsConstantinople(num):
		return "constantinople"
	case c.IsByzantium(num):
		return "byzantium"
	case c.IsEIP158(num):
		return "spurious-dragon"
	case c.IsEIP150(num):
		return "tangerine-whistle"
	case c.IsHomestead(num):
		return "homestead"
	default:
		return "frontier"
	}
}
