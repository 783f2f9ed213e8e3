package catalog

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

//go:embed data
var bundled embed.FS

// Source resolves a data locator such as "data/emoji/hands.json" to its raw
// JSON payload.
type Source interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
	Describe(locator string) string
}

// FSSource reads locators from a file system. The zero value reads the
// bundled data files.
type FSSource struct {
	FS fs.FS
}

// EmbedSource returns a source backed by the bundled data files.
func EmbedSource() FSSource {
	return FSSource{FS: bundled}
}

func (s FSSource) Fetch(ctx context.Context, locator string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fsys := s.FS
	if fsys == nil {
		fsys = bundled
	}
	return fs.ReadFile(fsys, strings.TrimPrefix(locator, "/"))
}

func (s FSSource) Describe(locator string) string {
	return "embed:" + strings.TrimPrefix(locator, "/")
}

// MaxCacheSize bounds the payloads kept by HTTPSource.
var MaxCacheSize = 1 << 20

// HTTPSource fetches locators relative to a base URL and keeps successful
// responses in memory for the life of the process.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client

	cache sync.Map
}

// NewHTTPSource returns a source rooted at baseURL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{BaseURL: baseURL, Client: http.DefaultClient}
}

func (s *HTTPSource) Describe(locator string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + strings.TrimLeft(locator, "/")
}

func (s *HTTPSource) Fetch(ctx context.Context, locator string) ([]byte, error) {
	url := s.Describe(locator)
	if v, ok := s.cache.Load(url); ok {
		return v.([]byte), nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build request for "+url)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	r, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to GET URL "+url)
	}
	defer r.Body.Close()

	if r.StatusCode < 200 || r.StatusCode > 299 {
		return nil, fmt.Errorf("bad status code %d for %s", r.StatusCode, url)
	}
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to read "+url)
	}
	if len(b) <= MaxCacheSize {
		s.cache.Store(url, b)
	}
	return b, nil
}
