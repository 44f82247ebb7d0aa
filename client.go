package genplist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/frantjc/genplist/ios"
	"howett.net/plist"
)

// Status is the document that genplist serves at /.
type Status struct {
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// Client talks to a genplist server.
type Client struct {
	HTTPClient *http.Client
	Base       *url.URL
}

func (c *Client) init() error {
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Base == nil {
		var err error
		c.Base, err = url.Parse("http://localhost:3788/")
		return err
	}
	return nil
}

// ManifestURL returns the URL that the server
// at c.Base serves the described app's manifest at.
func (c *Client) ManifestURL(bundleID, name, version, fetchURL string) (*url.URL, error) {
	if err := c.init(); err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("bundleid", bundleID)
	values.Set("name", name)
	values.Set("version", version)
	values.Set("fetchurl", fetchURL)

	manifestURL := c.Base.JoinPath("/genPlist")
	manifestURL.RawQuery = values.Encode()

	return manifestURL, nil
}

func (c *Client) get(ctx context.Context, u *url.URL, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", accept)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		defer res.Body.Close()

		body := map[string]string{}
		if err = json.NewDecoder(res.Body).Decode(&body); err == nil {
			if body["error"] != "" {
				return nil, fmt.Errorf("http status code %d: %s", res.StatusCode, body["error"])
			}
		}

		return nil, fmt.Errorf("http status code %d", res.StatusCode)
	}

	return res.Body, nil
}

// GetStatus fetches the server's status document.
func (c *Client) GetStatus(ctx context.Context) (*Status, error) {
	if err := c.init(); err != nil {
		return nil, err
	}

	rc, err := c.get(ctx, c.Base.JoinPath("/"), "application/json")
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	status := &Status{}
	if err = json.NewDecoder(rc).Decode(status); err != nil {
		return nil, err
	}

	return status, nil
}

// GetManifest has the server generate the manifest for the described app.
func (c *Client) GetManifest(ctx context.Context, bundleID, name, version, fetchURL string) (*ios.Manifest, error) {
	manifestURL, err := c.ManifestURL(bundleID, name, version, fetchURL)
	if err != nil {
		return nil, err
	}

	rc, err := c.get(ctx, manifestURL, ios.ContentTypePlist+", application/json;q=0.5")
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	manifest := &ios.Manifest{}
	if _, err = plist.Unmarshal(b, manifest); err != nil {
		return nil, err
	}

	return manifest, nil
}
