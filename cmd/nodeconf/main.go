// Command nodeconf resolves the layered node configuration and prints the
// values a node would start with.
//
// Usage:
//
//	# Print the merged configuration
//	nodeconf dump
//
//	# Layer a file over the user sources and override single keys
//	nodeconf --config node.yaml --set peer.listen.port=30304 dump
//
//	# Print the node id, generating the identity on first use
//	nodeconf node-id
package main

import (
	"fmt"
	"io"

	"github.com/MKhiriev/go-node-config/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
	buildBranch  string
)

func main() {
	Execute()
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit, buildBranch)
}

func printBuildInfo(w io.Writer, info models.AppBuildInfo) {
	fmt.Fprintf(w, "Build version: %s-%s\n", info.Version(), info.VersionModifier())
	fmt.Fprintf(w, "Build date: %s\n", orNA(info.BuildDate()))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(info.BuildCommit()))
	fmt.Fprintf(w, "Build branch: %s\n", orNA(info.BuildBranch()))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
