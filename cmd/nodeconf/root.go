package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/go-node-config/internal/config"
	"github.com/MKhiriev/go-node-config/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	sets     []string
	logLevel string
	testMode bool
)

var rootCmd = &cobra.Command{
	Use:   "nodeconf",
	Short: "Resolve the layered configuration of a p2p node",
	Long: `nodeconf merges the built-in defaults, resource and user files, the
process environment and command line overrides into the configuration a node
starts with, validates it and prints derived values.

Environment:
  NODECONF_CONF_RES    extra resource layered over the defaults
  NODECONF_CONF_FILE   file layered over the user sources (same as --config)
  NODECONF_RESOURCES   directory serving as the resource file system
  NODECONF_USER_DIR    directory holding config/nodeconf.yaml
  NODECONF_<KEY>       any key, with "." written as "_"`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file layered over the user sources")
	rootCmd.PersistentFlags().StringArrayVar(&sets, "set", nil, "override a key, key=value (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test", false, "include the test resources")
}

// loadProperties builds the configuration from the flags and the process
// environment.
func loadProperties() (*config.Properties, error) {
	if err := logger.SetLevel(logLevel); err != nil {
		return nil, err
	}

	environ := os.Environ()
	if cfgFile != "" {
		environ = append(environ, config.EnvPrefix+"CONF_FILE="+cfgFile)
	}

	api, err := parseSets(sets)
	if err != nil {
		return nil, err
	}

	return config.New(config.Options{
		Env:       environ,
		API:       api,
		Test:      testMode,
		Logger:    logger.NewConsoleLogger("nodeconf"),
		BuildInfo: buildInfo(),
	})
}

// parseSets turns key=value flags into a source. Values keep any further
// "=" characters.
func parseSets(flags []string) (*config.Source, error) {
	kv := make([]string, 0, 2*len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set '%s': want key=value", f)
		}
		kv = append(kv, strings.TrimSpace(key), value)
	}
	return config.FromPairs("command line", kv...)
}
