package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != IndexPath {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestLoad(t *testing.T) {
	srv := httptest.NewServer(indexHandler(http.StatusOK, `{"posts": []}`))
	defer srv.Close()

	pageURL := mustParse(t, srv.URL+"/projects/positionn/?tab=demo")
	res, err := New(srv.Client()).Load(context.Background(), pageURL)
	require.NoError(t, err)
	assert.Equal(t, "/projects/positionn/", res.Path)
	assert.Equal(t, map[string]any{"posts": []any{}}, res.Res)
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		title   string
		handler http.Handler
		target  error
		status  int
	}{
		{
			title:   "Not JSON",
			handler: indexHandler(http.StatusOK, "<!doctype html><html><body>oops</body></html>"),
			target:  ErrNotJSON,
		},
		{
			title:   "Empty Body",
			handler: indexHandler(http.StatusOK, ""),
			target:  ErrNotJSON,
		},
		{
			title:   "Not Found",
			handler: indexHandler(http.StatusNotFound, `{"error": "missing"}`),
			target:  ErrFetch,
			status:  http.StatusNotFound,
		},
		{
			title:   "Server Error",
			handler: indexHandler(http.StatusInternalServerError, ""),
			target:  ErrFetch,
			status:  http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		l := New(HandlerFetcher{Handler: tt.handler})
		res, err := l.Load(context.Background(), mustParse(t, "http://localhost/"))
		assert.Nil(t, res, "failed for title: %s", tt.title)
		assert.ErrorIs(t, err, tt.target, "failed for title: %s", tt.title)

		if tt.status != 0 {
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr), "failed for title: %s", tt.title)
			assert.Equal(t, tt.status, statusErr.StatusCode, "failed for title: %s", tt.title)
			assert.Equal(t, "http://localhost/posts.json", statusErr.URL, "failed for title: %s", tt.title)
		}
	}
}

func TestLoadNotJSONReportsType(t *testing.T) {
	l := New(HandlerFetcher{Handler: indexHandler(http.StatusOK, "<!doctype html><html></html>")})
	_, err := l.Load(context.Background(), mustParse(t, "http://localhost/"))
	assert.ErrorContains(t, err, "text/html")
}

func TestLoadNetworkError(t *testing.T) {
	srv := httptest.NewServer(indexHandler(http.StatusOK, `{}`))
	pageURL := mustParse(t, srv.URL+"/")
	client := srv.Client()
	srv.Close()

	res, err := New(client).Load(context.Background(), pageURL)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(HandlerFetcher{Handler: indexHandler(http.StatusOK, `{}`)})
	_, err := l.Load(ctx, mustParse(t, "http://localhost/"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestLoadResolvesAgainstOrigin(t *testing.T) {
	var got string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.String()
		_, _ = w.Write([]byte(`{"posts": [{"slug": "a"}]}`))
	})

	res, err := New(HandlerFetcher{Handler: h}).Load(context.Background(), mustParse(t, "https://example.com/a/b/c/"))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/posts.json", got)
	assert.Equal(t, "/a/b/c/", res.Path)
}
