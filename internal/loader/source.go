package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultMaxBytes caps the size of a dataset document.
const DefaultMaxBytes = 16 * 1024 * 1024

// ErrUnexpectedStatus is returned when an HTTP source answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// ErrDocumentTooLarge is returned when a document exceeds the size cap.
var ErrDocumentTooLarge = errors.New("dataset document too large")

// Source reads the raw dataset document.
type Source interface {
	// Fetch returns the raw document bytes.
	Fetch(ctx context.Context) ([]byte, error)

	// Location describes where the document comes from.
	Location() string
}

// NewSource returns an HTTPSource for http and https URLs and a FileSource
// for anything else. opts only apply to HTTP sources.
func NewSource(location string, timeout time.Duration, opts ...HTTPOption) Source {
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return NewHTTPSource(location, timeout, opts...)
	}
	return NewFileSource(strings.TrimPrefix(location, "file://"))
}

// FileSource reads the dataset from the local filesystem.
type FileSource struct {
	path     string
	maxBytes int64
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, maxBytes: DefaultMaxBytes}
}

// Fetch reads the file.
func (s *FileSource) Fetch(_ context.Context) ([]byte, error) {
	f, err := os.Open(s.path) //nolint:gosec // dataset path is user configuration
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return readLimited(f, s.maxBytes)
}

// Location returns the file path.
func (s *FileSource) Location() string {
	return s.path
}

// HTTPSource fetches the dataset with a single GET request.
type HTTPSource struct {
	url        string
	headers    map[string]string
	httpClient *http.Client
	maxBytes   int64
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHeaders adds request headers, e.g. an Authorization header for a
// private dataset endpoint.
func WithHeaders(headers map[string]string) HTTPOption {
	return func(s *HTTPSource) {
		if s.headers == nil {
			s.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			s.headers[k] = v
		}
	}
}

// NewHTTPSource creates an HTTPSource. A zero timeout means no timeout.
func NewHTTPSource(rawURL string, timeout time.Duration, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url: rawURL,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return errors.New("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch performs the GET request and returns the body.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	return readLimited(resp.Body, s.maxBytes)
}

// Location returns the URL.
func (s *HTTPSource) Location() string {
	return s.url
}

// readLimited reads r fully, failing when it holds more than maxBytes.
func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrDocumentTooLarge, maxBytes)
	}
	return data, nil
}
