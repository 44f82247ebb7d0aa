package ios

import (
	xslice "github.com/frantjc/x/slice"
)

// Info is the subset of an app's Info.plist
// that is needed to describe it in a Manifest.
type Info struct {
	CFBundleDisplayName        string   `plist:"CFBundleDisplayName"`
	CFBundleExecutable         string   `plist:"CFBundleExecutable"`
	CFBundleIdentifier         string   `plist:"CFBundleIdentifier"`
	CFBundleName               string   `plist:"CFBundleName"`
	CFBundlePackageType        string   `plist:"CFBundlePackageType"`
	CFBundleShortVersionString string   `plist:"CFBundleShortVersionString"`
	CFBundleSupportedPlatforms []string `plist:"CFBundleSupportedPlatforms"`
	CFBundleVersion            string   `plist:"CFBundleVersion"`
	MinimumOSVersion           string   `plist:"MinimumOSVersion"`
}

// Title is the name that iOS shows for the app.
func (i *Info) Title() string {
	return xslice.Coalesce(i.CFBundleDisplayName, i.CFBundleName)
}

// Version is the user-facing version of the app,
// falling back to its build number.
func (i *Info) Version() string {
	return xslice.Coalesce(i.CFBundleShortVersionString, i.CFBundleVersion)
}
