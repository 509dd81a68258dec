// Package config resolves the node configuration from layered sources.
//
// Layers, lowest priority first:
//  1. built-in defaults (resources/nodeconf.yaml);
//  2. the resource named by NODECONF_CONF_RES;
//  3. the user.conf.yaml resource and <user dir>/config/nodeconf.yaml;
//  4. the file named by NODECONF_CONF_FILE;
//  5. test-nodeconf.yaml and test-user.yaml resources, in tests only;
//  6. the source passed through [Options.API];
//  7. NODECONF_<PATH> process environment variables.
//
// A key resolves to the value of the highest layer defining it. The merged
// result is validated by a fixed set of named rules when [New] builds it
// and again on every override pushed through [Properties.Override],
// [Properties.OverridePairs] or [Properties.OverrideMap]. Overrides only
// ever add layers.
package config
