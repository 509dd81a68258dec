// Package resources embeds the built-in configuration defaults.
package resources

import "embed"

// FS holds nodeconf.yaml, the lowest-priority configuration layer.
//
//go:embed nodeconf.yaml
var FS embed.FS
