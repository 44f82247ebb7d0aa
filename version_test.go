package genplist_test

import (
	"testing"

	"github.com/frantjc/genplist"
	"golang.org/x/mod/semver"
)

func TestSemVer(t *testing.T) {
	if v := genplist.SemVer(); !semver.IsValid("v" + v) {
		t.Errorf("expected valid semantic version, got %s", v)
	}
}

func TestSemVerPrerelease(t *testing.T) {
	version, prerelease := genplist.Version, genplist.Prerelease
	t.Cleanup(func() {
		genplist.Version, genplist.Prerelease = version, prerelease
	})

	genplist.Version, genplist.Prerelease = "1.2.3", "rc.1"

	if v := genplist.SemVer(); v != "1.2.3-rc.1" {
		t.Errorf("expected 1.2.3-rc.1, got %s", v)
	}
}
