// Package source supplies the raw CSV text the dashboard is built from.
// Retrieval is a one-shot operation: any failure here is terminal for the
// process, there are no retries.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// FetchError is a transport-level failure retrieving the source file,
// including non-2xx responses.
type FetchError struct {
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError is a failure reading the response body as text.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to read CSV response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Source retrieves the raw transaction CSV document.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// HTTPSource fetches the CSV over HTTP.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates an HTTPSource for the given URL. client may be
// nil, in which case a client with a 30s timeout is used.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{url: url, client: client}
}

func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", &FetchError{Message: "invalid CSV source URL", Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &FetchError{Message: "failed to fetch CSV", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Message: fmt.Sprintf("HTTP %d when fetching CSV", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &DecodeError{Err: err}
	}
	return string(body), nil
}

// FileSource reads the CSV from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", &FetchError{Message: fmt.Sprintf("failed to read %s", s.path), Err: err}
	}
	return string(data), nil
}

// ForLocation returns an HTTPSource for http(s) URLs and a FileSource
// for anything else.
func ForLocation(location string, client *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, client)
	}
	return NewFileSource(location)
}
