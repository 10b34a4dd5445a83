package shapes

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Fetcher retrieves the raw shape payload for one static-data version key.
type Fetcher interface {
	FetchTable(key string) ([]byte, error)
}

// HTTPFetcher fetches shape payloads over HTTP. The payload for key K lives
// at <BaseURL>/shapes-<K>.json.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// FetchTable downloads the shape payload for a version key and returns the
// raw bytes.
func (f *HTTPFetcher) FetchTable(key string) ([]byte, error) {
	url := fmt.Sprintf("%s/shapes-%s.json", strings.TrimRight(f.BaseURL, "/"), key)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}
