// Package loader implements the layout load step: before a page renders,
// the posts index is fetched from the page's origin and handed to the page
// together with the current path.
package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gabriel-vasile/mimetype"
)

// IndexPath is the location of the posts index, relative to the origin.
const IndexPath = "/posts.json"

var (
	// ErrFetch is wrapped by every error caused by fetching the index.
	ErrFetch = errors.New("fetch posts index")
	// ErrNotJSON is returned when the index body does not decode as JSON.
	ErrNotJSON = errors.New("posts index is not JSON")
)

// StatusError reports a non-2xx response for the posts index.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %d %s", ErrFetch, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Unwrap() error {
	return ErrFetch
}

// Fetcher performs HTTP requests. [*http.Client] implements it.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result is what every page receives from the layout.
type Result struct {
	Path string `json:"path"`
	Res  any    `json:"res"`
}

type Loader struct {
	fetcher Fetcher
}

func New(f Fetcher) *Loader {
	return &Loader{fetcher: f}
}

// Load fetches the posts index from the origin of pageURL. It does not
// retry, and any failure is returned to the caller.
func (l *Loader) Load(ctx context.Context, pageURL *url.URL) (*Result, error) {
	indexURL := pageURL.ResolveReference(&url.URL{Path: IndexPath})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, indexURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := l.fetcher.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{URL: indexURL.String(), StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	var data any
	err = json.Unmarshal(body, &data)
	if err != nil {
		return nil, fmt.Errorf("%w (got %s): %w", ErrNotJSON, mimetype.Detect(body).String(), err)
	}

	return &Result{
		Path: pageURL.Path,
		Res:  data,
	}, nil
}
