package main

import (
	"fmt"

	"github.com/MKhiriev/go-node-config/internal/network"
	"github.com/spf13/cobra"
)

var networkBlock uint64

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the merged configuration as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadProperties()
		if err != nil {
			return err
		}

		out, err := p.Dump()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var nodeIDCmd = &cobra.Command{
	Use:   "node-id",
	Short: "Print the node id",
	Long: `Print the node id derived from peer.privateKey. Without an explicit key
the identity is read from, or generated into, the database directory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadProperties()
		if err != nil {
			return err
		}

		id, err := p.NodeID()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%x\n", id)
		return nil
	},
}

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "Print the active peers and the number of trusted entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadProperties()
		if err != nil {
			return err
		}

		active, err := p.PeerActive()
		if err != nil {
			return err
		}
		trusted, err := p.PeerTrusted()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, s := range active {
			fmt.Fprintln(out, s)
		}
		fmt.Fprintf(out, "active: %d, trusted entries: %d\n", len(active), trusted.Len())
		return nil
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Print the selected blockchain configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		p, err := loadProperties()
		if err != nil {
			return err
		}

		cfg, err := p.BlockchainConfig()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "name: %s\n", cfg.Name())
		fmt.Fprintf(out, "networkId: %d\n", cfg.NetworkID())
		fmt.Fprintf(out, "fork at block %d: %s\n", networkBlock, network.ForkAt(cfg, networkBlock))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, _ []string) {
		printBuildInfo(cmd.OutOrStdout(), buildInfo())
	},
}

func init() {
	networkCmd.Flags().Uint64Var(&networkBlock, "block", 0, "block number to report the active fork at")

	rootCmd.AddCommand(dumpCmd, nodeIDCmd, peersCmd, networkCmd, versionCmd)
}
