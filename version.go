package genplist

import (
	"runtime/debug"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// Version is set at build time with
	// -ldflags "-X github.com/frantjc/genplist.Version=...".
	Version = "0.0.0"
	// Prerelease is set at build time with
	// -ldflags "-X github.com/frantjc/genplist.Prerelease=...".
	Prerelease = ""
)

// SemVer returns the semantic version of genplist.
func SemVer() string {
	version := Version

	if Version == "0.0.0" {
		if buildInfo, ok := debug.ReadBuildInfo(); ok && semver.IsValid(buildInfo.Main.Version) {
			return strings.TrimPrefix(buildInfo.Main.Version, "v")
		}
	}

	if Prerelease != "" {
		version += "-" + Prerelease
	}

	return version
}
