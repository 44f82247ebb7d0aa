package api

import (
	"net/http"

	"github.com/frantjc/genplist"
)

var (
	statusRunning = &genplist.Status{
		Status: "running",
		Endpoints: map[string]string{
			"GET /":         "Server status and documentation",
			"GET /genPlist": "Generate iOS installation manifest (query params: bundleid, name, version, fetchurl)",
		},
	}
)

func (h *handler) handleStatus(w http.ResponseWriter, _ *http.Request) error {
	_ = respondJSON(w, statusRunning, false)
	return nil
}
