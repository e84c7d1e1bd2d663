package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"portfolio.dconn.dev/internal/config"
	"portfolio.dconn.dev/internal/models"
)

// LoadError reports that the project store could not be fetched or parsed
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading projects from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source yields the full project collection in store order. Raw returns the
// store document exactly as stored.
type Source interface {
	Load(ctx context.Context) ([]models.Project, error)
	Raw(ctx context.Context) ([]byte, error)
	String() string
}

// New picks an HTTP source when a store URL is configured, else a file source
func New(cfg config.StoreConfig) Source {
	if cfg.URL != "" {
		return NewHTTPSource(cfg.URL, cfg.Retries, cfg.Timeout)
	}
	return &FileSource{Path: cfg.Path}
}

// FileSource reads the store from a JSON file on disk
type FileSource struct {
	Path string
}

// Load reads and parses the file
func (s *FileSource) Load(ctx context.Context) ([]models.Project, error) {
	data, err := s.Raw(ctx)
	if err != nil {
		return nil, err
	}
	return decode(s.Path, data)
}

// Raw reads the file
func (s *FileSource) Raw(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &LoadError{Source: s.Path, Err: err}
	}
	return data, nil
}

func (s *FileSource) String() string {
	return s.Path
}

// HTTPSource fetches the store over HTTP
type HTTPSource struct {
	URL    string
	client *retryablehttp.Client
}

// NewHTTPSource creates an HTTP source. retries is the number of extra
// attempts on transport failure or 5xx; timeout 0 means no timeout.
func NewHTTPSource(url string, retries int, timeout time.Duration) *HTTPSource {
	client := retryablehttp.NewClient()
	client.Logger = log.New(io.Discard, "", 0)
	client.RetryMax = retries
	client.RetryWaitMin = 100 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = timeout
	return &HTTPSource{URL: url, client: client}
}

// Load fetches and parses the store document
func (s *HTTPSource) Load(ctx context.Context) ([]models.Project, error) {
	data, err := s.Raw(ctx)
	if err != nil {
		return nil, err
	}
	return decode(s.URL, data)
}

// Raw fetches the store document
func (s *HTTPSource) Raw(ctx context.Context) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &LoadError{Source: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &LoadError{Source: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Source: s.URL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Source: s.URL, Err: err}
	}
	return data, nil
}

func (s *HTTPSource) String() string {
	return s.URL
}

// decode parses a JSON array of projects. null is treated as an empty store.
func decode(source string, data []byte) ([]models.Project, error) {
	var projects []models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("parsing: %w", err)}
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}
