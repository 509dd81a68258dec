// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package peer turns raw peer-list configuration entries into typed node
// descriptors.
//
// Two lists are understood:
//   - active peers ("peer.active"): every entry is either a URL form
//     ({url: "<id>@host:port"}, the enode:// scheme is added when missing) or
//     a structured form ({ip, port, nodeId | nodeName}). Structured node ids
//     must decode to exactly 64 bytes; a nodeName is hashed with a pluggable
//     [NameHasher] and used as a private key seed.
//   - trusted peers ("peer.trusted"): every entry may carry a node id and/or
//     an IP mask. Node ids here are hex-decoded without a length check.
//
// Entries are read through the [Entry] interface so the package does not
// depend on how the configuration stores them.
package peer
