// Package version reports the tablekit build version.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DevVersion is reported when no valid version was stamped at build time.
const DevVersion = "0.0.0-dev"

// Set at build time with
//
//	-ldflags "-X github.com/rshade/tablekit/pkg/version.version=1.2.3 -X github.com/rshade/tablekit/pkg/version.gitCommit=abc123"
//
//nolint:gochecknoglobals // Stamped by the linker.
var (
	version   = ""
	gitCommit = ""
)

// GetVersion returns the stamped version normalized to semver, or
// DevVersion when none was stamped or it does not parse.
func GetVersion() string {
	return normalize(version)
}

// GetGitCommit returns the stamped commit, or "unknown".
func GetGitCommit() string {
	if gitCommit == "" {
		return "unknown"
	}
	return gitCommit
}

func normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DevVersion
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return DevVersion
	}
	return v.String()
}
