package service

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"time"
)

//go:embed assets/api-menu.json
var embeddedMenu []byte

// AssetSource fetches the static menu document.
type AssetSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// EmbeddedAsset serves the menu compiled into the binary.
type EmbeddedAsset struct{}

func (EmbeddedAsset) Fetch(context.Context) ([]byte, error) {
	return embeddedMenu, nil
}

// HTTPAsset downloads the menu from a URL.
type HTTPAsset struct {
	URL    string
	Client *http.Client
}

func NewHTTPAsset(url string, timeout time.Duration) *HTTPAsset {
	return &HTTPAsset{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (a *HTTPAsset) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", a.URL, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 8<<20))
}
