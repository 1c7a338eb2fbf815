// Package version provides version information for the readmegen CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"golang.org/x/mod/semver"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// cueModule is the module path of the CUE SDK used for config validation.
const cueModule = "cuelang.org/go"

// fallbackCUESDKVersion is reported when build info is unavailable, e.g. in
// binaries built without module support.
const fallbackCUESDKVersion = "v0.15.4"

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// CUESDKVersion is the CUE SDK version linked into the binary.
	CUESDKVersion string `json:"cueSDKVersion"`
}

// GetInfo returns the current version information.
func GetInfo() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		CUESDKVersion: cueSDKVersion(),
	}
}

// String returns a human-readable version string. Versions that are not
// plain semver releases are marked as development builds.
func (i Info) String() string {
	v := i.Version
	if !IsRelease(v) {
		v += " (development build)"
	}
	return fmt.Sprintf("readmegen version %s\n  Commit:    %s\n  Built:     %s\n  Go:        %s\n  CUE SDK:   %s",
		v, i.GitCommit, i.BuildDate, i.GoVersion, i.CUESDKVersion)
}

// IsRelease reports whether v is a valid semantic version without a
// prerelease suffix.
func IsRelease(v string) bool {
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

// UserAgent returns the User-Agent sent to remote APIs.
func UserAgent() string {
	return "readmegen/" + Version
}

func cueSDKVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fallbackCUESDKVersion
	}
	return moduleVersion(info.Deps, cueModule, fallbackCUESDKVersion)
}

// moduleVersion returns the version of path among deps, following
// replacements. Invalid or missing versions yield fallback.
func moduleVersion(deps []*debug.Module, path, fallback string) string {
	for _, m := range deps {
		if m.Path != path {
			continue
		}
		if m.Replace != nil {
			m = m.Replace
		}
		if semver.IsValid(m.Version) {
			return m.Version
		}
	}
	return fallback
}
