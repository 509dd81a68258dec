package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAppBuildInfo_Getters verifies that injected values are returned as is.
func TestAppBuildInfo_Getters(t *testing.T) {
	info := NewAppBuildInfo("1.2.3", "2026-10-17", "abc123", "dev")

	assert.Equal(t, "1.2.3", info.BuildVersion())
	assert.Equal(t, "2026-10-17", info.BuildDate())
	assert.Equal(t, "abc123", info.BuildCommit())
	assert.Equal(t, "dev", info.BuildBranch())
}

// TestAppBuildInfo_Version verifies quote stripping and the unknown marker.
func TestAppBuildInfo_Version(t *testing.T) {
	assert.Equal(t, "1.2.3", NewAppBuildInfo("'1.2.3'", "", "", "").Version())
	assert.Equal(t, UnknownVersion, NewAppBuildInfo("", "", "", "").Version())
	assert.Equal(t, UnknownVersion, AppBuildInfo{}.Version())
}

// TestAppBuildInfo_VersionModifier verifies RELEASE only for master builds.
func TestAppBuildInfo_VersionModifier(t *testing.T) {
	assert.Equal(t, ModifierRelease, NewAppBuildInfo("", "", "", "master").VersionModifier())
	assert.Equal(t, ModifierSnapshot, NewAppBuildInfo("", "", "", "feature/x").VersionModifier())
	assert.Equal(t, ModifierSnapshot, AppBuildInfo{}.VersionModifier())
}
