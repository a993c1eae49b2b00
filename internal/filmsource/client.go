package filmsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"film_stats/internal/app"

	"github.com/rs/zerolog/log"
)

// Client loads the film dataset from a local file or an http(s) URL
type Client struct {
	source     string
	client     *http.Client
	fetchCount int64
	fetchMutex sync.Mutex
}

// NewClient creates a client for source. timeout bounds HTTP requests.
func NewClient(source string, timeout time.Duration) *Client {
	return &Client{
		source: source,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Source returns the configured dataset location
func (c *Client) Source() string {
	return c.source
}

// IncrementFetch safely increments the fetch counter
func (c *Client) IncrementFetch() {
	c.fetchMutex.Lock()
	c.fetchCount++
	c.fetchMutex.Unlock()
}

// GetFetchCount returns the number of fetch attempts made
func (c *Client) GetFetchCount() int64 {
	c.fetchMutex.Lock()
	defer c.fetchMutex.Unlock()
	return c.fetchCount
}

// IsRemote reports whether source is fetched over HTTP
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// FetchFilms loads and decodes the dataset. Failures are returned as *LoadError
// and are never retried.
func (c *Client) FetchFilms(ctx context.Context) ([]app.Film, error) {
	c.IncrementFetch()

	log.Debug().
		Str("source", c.source).
		Bool("remote", IsRemote(c.source)).
		Msg("Fetching film dataset")

	var (
		body []byte
		err  error
	)
	if IsRemote(c.source) {
		body, err = c.fetchRemote(ctx)
	} else {
		body, err = c.readLocal()
	}
	if err != nil {
		return nil, err
	}

	films, err := decodeFilms(c.source, body)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("source", c.source).
		Int("films", len(films)).
		Msg("Successfully fetched film dataset")

	return films, nil
}

// makeRequest creates and executes an HTTP GET request for the dataset
func (c *Client) makeRequest(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
	if err != nil {
		return nil, newLoadError(ErrTransport, c.source, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug().
			Err(err).
			Str("url", c.source).
			Msg("Dataset request failed")
		return nil, newLoadError(ErrTransport, c.source, fmt.Errorf("failed to make request: %w", err))
	}
	return resp, nil
}

// fetchRemote performs the request and returns the body of a 2xx response
func (c *Client) fetchRemote(ctx context.Context) ([]byte, error) {
	resp, err := c.makeRequest(ctx)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &LoadError{
			Kind:       ErrHTTPStatus,
			Source:     c.source,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newLoadError(ErrTransport, c.source, fmt.Errorf("failed to read response body: %w", err))
	}
	return body, nil
}

// readLocal reads a dataset file from disk
func (c *Client) readLocal() ([]byte, error) {
	path := strings.TrimPrefix(c.source, "file://")
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, newLoadError(ErrTransport, c.source, fmt.Errorf("failed to read file: %w", err))
	}
	return body, nil
}

// decodeFilms validates that body is a non-empty JSON array of film records
func decodeFilms(source string, body []byte) ([]app.Film, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, newLoadError(ErrFormat, source, nil)
	}

	var films []app.Film
	if err := json.Unmarshal(trimmed, &films); err != nil {
		return nil, newLoadError(ErrFormat, source, fmt.Errorf("failed to decode films: %w", err))
	}

	if len(films) == 0 {
		return nil, newLoadError(ErrEmptyDataset, source, nil)
	}
	return films, nil
}
