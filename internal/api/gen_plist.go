package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/frantjc/genplist/ios"
	xslice "github.com/frantjc/x/slice"
	"github.com/go-logr/logr"
	"github.com/opencontainers/go-digest"
)

const (
	paramBundleID = "bundleid"
	paramName     = "name"
	paramVersion  = "version"
	paramFetchURL = "fetchurl"
)

var (
	requiredParams = []string{paramBundleID, paramName, paramVersion, paramFetchURL}
)

func (h *handler) handleGenPlist(w http.ResponseWriter, r *http.Request) error {
	var (
		query   = r.URL.Query()
		missing = []string{}
	)

	// Empty values are fine, only absent keys are not.
	for _, param := range requiredParams {
		if !query.Has(param) {
			missing = append(missing, param)
		}
	}

	if len(missing) > 0 {
		return &missingParamsError{params: missing}
	}

	if err := negotiate(w, r, ios.ContentTypePlist); err != nil {
		return err
	}

	indent := ""
	if wantsPretty(r) {
		indent = ios.ManifestIndent
	}

	manifest := ios.NewManifest(
		query.Get(paramBundleID),
		query.Get(paramName),
		query.Get(paramVersion),
		query.Get(paramFetchURL),
	)

	b, err := h.marshalManifest(manifest, indent)
	if err != nil {
		return newRequestError(fmt.Errorf("encode manifest: %w", err), http.StatusInternalServerError)
	}

	etag := strconv.Quote(digest.FromBytes(b).Encoded())
	w.Header().Set("ETag", etag)

	if ifNoneMatch := r.Header.Get("If-None-Match"); ifNoneMatch != "" && xslice.Some(strings.Split(ifNoneMatch, ","), func(s string, _ int) bool {
		s = strings.TrimPrefix(strings.TrimSpace(s), "W/")
		return s == etag || s == "*"
	}) {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	logr.FromContextOrDiscard(r.Context()).V(1).Info("generated manifest", "bundleIdentifier", manifest.Items[0].Metadata.BundleIdentifier, "etag", etag)

	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)

	return nil
}
