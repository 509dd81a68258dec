// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// UnknownVersion is reported when no build version was injected.
const UnknownVersion = "-.-.-"

// Version modifiers reported by [AppBuildInfo.VersionModifier].
const (
	ModifierRelease  = "RELEASE"
	ModifierSnapshot = "SNAPSHOT"
)

// ReleaseBranch is the branch whose builds are releases.
const ReleaseBranch = "master"

// AppBuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are typically injected by linker flags during CI/CD and shown in
// CLI version output for diagnostics and release traceability.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
	buildBranch  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit, buildBranch string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
		buildBranch:  buildBranch,
	}
}

// BuildVersion returns the semantic version string of the build.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// BuildDate returns the build timestamp string.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit returns the source-control commit hash used for the build.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// BuildBranch returns the source-control branch the build was made from.
func (a AppBuildInfo) BuildBranch() string {
	return a.buildBranch
}

// Version returns the build version with quotes stripped, or
// [UnknownVersion] when none was injected.
func (a AppBuildInfo) Version() string {
	v := strings.TrimSpace(strings.ReplaceAll(a.buildVersion, "'", ""))
	if v == "" {
		return UnknownVersion
	}
	return v
}

// VersionModifier is [ModifierRelease] for builds of [ReleaseBranch] and
// [ModifierSnapshot] otherwise.
func (a AppBuildInfo) VersionModifier() string {
	if a.buildBranch == ReleaseBranch {
		return ModifierRelease
	}
	return ModifierSnapshot
}
