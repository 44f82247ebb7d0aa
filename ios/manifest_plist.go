package ios

import (
	"net/url"

	"howett.net/plist"
)

const (
	SchemeITMSServices = "itms-services"
	ContentTypeIPA     = "application/octet-stream"
	ContentTypePlist   = "application/x-plist"
)

// ManifestIndent is the indent of a pretty-printed manifest.
const ManifestIndent = "  "

const (
	KindSoftwarePackage = "software-package"
	KindSoftware        = "software"
)

// Manifest is the manifest.plist that the itms-services
// installer fetches to install an .ipa over the air.
//
// Fields are declared in the order they are encoded.
type Manifest struct {
	Items []ManifestItem `plist:"items"`
}

type ManifestItem struct {
	Assets   []ManifestItemAsset   `plist:"assets"`
	Metadata *ManifestItemMetadata `plist:"metadata"`
}

type ManifestItemAsset struct {
	Kind string `plist:"kind"`
	URL  string `plist:"url"`
}

type ManifestItemMetadata struct {
	BundleIdentifier string `plist:"bundle-identifier"`
	BundleVersion    string `plist:"bundle-version"`
	Kind             string `plist:"kind"`
	Title            string `plist:"title"`
}

// NewManifest returns a Manifest describing a single
// software package that can be fetched from fetchURL.
// The given strings are used as-is.
func NewManifest(bundleID, name, version, fetchURL string) *Manifest {
	return &Manifest{
		Items: []ManifestItem{
			{
				Assets: []ManifestItemAsset{
					{
						Kind: KindSoftwarePackage,
						URL:  fetchURL,
					},
				},
				Metadata: &ManifestItemMetadata{
					BundleIdentifier: bundleID,
					BundleVersion:    version,
					Kind:             KindSoftware,
					Title:            name,
				},
			},
		},
	}
}

// MarshalManifest encodes the manifest as an XML property list.
// A non-empty indent pretty-prints it.
func MarshalManifest(manifest *Manifest, indent string) ([]byte, error) {
	if indent != "" {
		return plist.MarshalIndent(manifest, plist.XMLFormat, indent)
	}

	return plist.Marshal(manifest, plist.XMLFormat)
}

// GenerateManifest builds and encodes the manifest for the given app.
func GenerateManifest(bundleID, name, version, fetchURL string) ([]byte, error) {
	return MarshalManifest(NewManifest(bundleID, name, version, fetchURL), "")
}

// InstallURL returns the itms-services link which
// prompts an iOS device to install the app that
// the manifest at manifestURL describes.
func InstallURL(manifestURL *url.URL) *url.URL {
	values := url.Values{}
	values.Add("action", "download-manifest")
	values.Add("url", manifestURL.String())

	return &url.URL{
		Scheme:   SchemeITMSServices,
		Opaque:   "//",
		RawQuery: values.Encode(),
	}
}
