package command

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/frantjc/genplist/internal/api"
	"github.com/frantjc/genplist/ios"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var (
		out = new(bytes.Buffer)
		cmd = SetCommon(NewGenPlist(), "1.2.3")
	)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func decodeManifest(t *testing.T, s string) *ios.ManifestItem {
	t.Helper()

	manifest := &ios.Manifest{}
	_, err := plist.Unmarshal([]byte(s), manifest)
	require.NoError(t, err)
	require.Len(t, manifest.Items, 1)
	require.Len(t, manifest.Items[0].Assets, 1)
	require.NotNil(t, manifest.Items[0].Metadata)

	return &manifest.Items[0]
}

func writeIPA(t *testing.T, info *ios.Info) string {
	t.Helper()

	b, err := plist.Marshal(info, plist.XMLFormat)
	require.NoError(t, err)

	name := filepath.Join(t.TempDir(), "app.ipa")

	f, err := os.Create(name)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)

	w, err := zw.Create("Payload/MyApp.app/Info.plist")
	require.NoError(t, err)

	_, err = w.Write(b)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return name
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)

	assert.Equal(t, "genplist1.2.3 "+runtime.Version()+"\n", out)
}

func TestManifest(t *testing.T) {
	out, err := execute(t, "manifest",
		"--bundleid", "com.example.app",
		"--name", "MyApp",
		"--bundle-version", "1.2.3",
		"--fetchurl", "https://example.com/app.ipa",
	)
	require.NoError(t, err)

	item := decodeManifest(t, out)

	assert.Equal(t, "com.example.app", item.Metadata.BundleIdentifier)
	assert.Equal(t, "MyApp", item.Metadata.Title)
	assert.Equal(t, "1.2.3", item.Metadata.BundleVersion)
	assert.Equal(t, ios.KindSoftware, item.Metadata.Kind)
	assert.Equal(t, "https://example.com/app.ipa", item.Assets[0].URL)
	assert.Equal(t, ios.KindSoftwarePackage, item.Assets[0].Kind)
}

func TestManifestMatchesGenerateManifest(t *testing.T) {
	out, err := execute(t, "manifest",
		"--bundleid", "com.example.app",
		"--name", "MyApp",
		"--bundle-version", "1.2.3",
		"--fetchurl", "https://example.com/app.ipa",
	)
	require.NoError(t, err)

	b, err := ios.GenerateManifest("com.example.app", "MyApp", "1.2.3", "https://example.com/app.ipa")
	require.NoError(t, err)

	assert.Equal(t, string(b), out)
}

func TestManifestPrettyMatchesServer(t *testing.T) {
	out, err := execute(t, "manifest",
		"--bundleid", "com.example.app",
		"--name", "MyApp",
		"--bundle-version", "1.2.3",
		"--fetchurl", "https://example.com/app.ipa",
		"--pretty",
	)
	require.NoError(t, err)

	h, err := api.NewHandler()
	require.NoError(t, err)

	var (
		w = httptest.NewRecorder()
		r = httptest.NewRequest(http.MethodGet, "/genPlist?bundleid=com.example.app&name=MyApp&version=1.2.3&fetchurl=https%3A%2F%2Fexample.com%2Fapp.ipa&pretty=true", nil)
	)
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, w.Body.String(), out)
}

func TestManifestRequiresFields(t *testing.T) {
	_, err := execute(t, "manifest", "--bundleid", "com.example.app", "--name", "MyApp", "--bundle-version", "1.2.3")
	assert.Error(t, err)

	_, err = execute(t, "manifest", "--bundleid", "com.example.app", "--fetchurl", "https://example.com/app.ipa")
	assert.ErrorContains(t, err, "--name")
}

func TestManifestFromIPA(t *testing.T) {
	ipa := writeIPA(t, &ios.Info{
		CFBundleIdentifier:         "com.example.app",
		CFBundleName:               "MyApp",
		CFBundleShortVersionString: "1.2.3",
		CFBundleVersion:            "42",
	})

	out, err := execute(t, "manifest", "--ipa", ipa, "--fetchurl", "https://example.com/app.ipa", "--name", "Overridden", "--pretty")
	require.NoError(t, err)

	item := decodeManifest(t, out)

	assert.Equal(t, "com.example.app", item.Metadata.BundleIdentifier)
	assert.Equal(t, "Overridden", item.Metadata.Title)
	assert.Equal(t, "1.2.3", item.Metadata.BundleVersion)
	assert.Equal(t, "https://example.com/app.ipa", item.Assets[0].URL)
}

func TestLink(t *testing.T) {
	out, err := execute(t, "link",
		"--url", "https://genplist.example.com",
		"--bundleid", "com.example.app",
		"--name", "My App",
		"--bundle-version", "1.2.3",
		"--fetchurl", "https://example.com/app.ipa",
	)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "itms-services://?action=download-manifest&url=https%3A%2F%2Fgenplist.example.com%2FgenPlist%3F"), out)

	installURL, err := url.Parse(strings.TrimSpace(out))
	require.NoError(t, err)

	assert.Equal(t, ios.SchemeITMSServices, installURL.Scheme)
	assert.Equal(t, "download-manifest", installURL.Query().Get("action"))

	manifestURL, err := url.Parse(installURL.Query().Get("url"))
	require.NoError(t, err)

	assert.Equal(t, "genplist.example.com", manifestURL.Host)
	assert.Equal(t, "/genPlist", manifestURL.Path)
	assert.Equal(t, "com.example.app", manifestURL.Query().Get("bundleid"))
	assert.Equal(t, "My App", manifestURL.Query().Get("name"))
	assert.Equal(t, "1.2.3", manifestURL.Query().Get("version"))
	assert.Equal(t, "https://example.com/app.ipa", manifestURL.Query().Get("fetchurl"))
}

func TestLinkManifestURL(t *testing.T) {
	out, err := execute(t, "link", "--manifest-url", "https://example.com/manifest.plist")
	require.NoError(t, err)
	assert.Equal(t, "itms-services://?action=download-manifest&url=https%3A%2F%2Fexample.com%2Fmanifest.plist\n", out)

	installURL, err := url.Parse(strings.TrimSpace(out))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/manifest.plist", installURL.Query().Get("url"))

	_, err = execute(t, "link")
	assert.Error(t, err)
}
