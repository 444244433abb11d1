package prerender

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/danielliu2707/folio/render"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// HTTPError is returned when a crawled path does not respond with a success.
type HTTPError struct {
	Path       string
	StatusCode int
	Referrer   string
}

func (e *HTTPError) Error() string {
	if e.Referrer == "" {
		return fmt.Sprintf("prerender: %d %s", e.StatusCode, e.Path)
	}
	return fmt.Sprintf("prerender: %d %s (linked from %s)", e.StatusCode, e.Path, e.Referrer)
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"}

// ignorable reports whether a failed response can be skipped. Missing images
// do not fail the build.
func ignorable(p string, code int) bool {
	return code == http.StatusNotFound && lo.Contains(imageExtensions, strings.ToLower(path.Ext(p)))
}

// linkSelectors lists the elements and attributes followed by the crawler.
// Scripts are left out: the analytics script is provided by the host.
var linkSelectors = [][2]string{
	{"a[href]", "href"},
	{"link[href]", "href"},
	{"img[src]", "src"},
}

type target struct {
	path     string
	referrer string
}

type crawler struct {
	b   *Builder
	out *afero.Afero

	mu     sync.Mutex
	report *Report
}

func (c *crawler) crawl(ctx context.Context, seeds []string) error {
	seen := map[string]bool{}
	var frontier []target
	for _, s := range seeds {
		p, ok := c.normalize(&url.URL{Path: "/"}, s)
		if ok && !seen[p] {
			seen[p] = true
			frontier = append(frontier, target{path: p})
		}
	}

	for len(frontier) > 0 {
		found := make([][]target, len(frontier))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.b.concurrency)
		for i, t := range frontier {
			g.Go(func() error {
				links, err := c.visit(gctx, t)
				found[i] = links
				return err
			})
		}

		err := g.Wait()
		if err != nil {
			return err
		}

		frontier = frontier[:0]
		for _, links := range found {
			for _, t := range links {
				if !seen[t.path] {
					seen[t.path] = true
					frontier = append(frontier, t)
				}
			}
		}
	}

	return nil
}

func (c *crawler) visit(ctx context.Context, t target) ([]target, error) {
	u := c.b.origin.ResolveReference(&url.URL{Path: t.path})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.b.fetcher.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 && res.StatusCode < 400 {
		loc, err := u.Parse(res.Header.Get("Location"))
		if err != nil {
			return nil, err
		}
		if p, ok := c.normalize(u, loc.String()); ok {
			return []target{{path: p, referrer: t.path}}, nil
		}
		return nil, nil
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if ignorable(t.path, res.StatusCode) {
			c.b.log.Warnw("skipping missing image", "path", t.path, "referrer", t.referrer)
			c.mu.Lock()
			c.report.Skipped = append(c.report.Skipped, t.path)
			c.mu.Unlock()
			return nil, nil
		}
		return nil, &HTTPError{Path: t.path, StatusCode: res.StatusCode, Referrer: t.referrer}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	isHTML := strings.HasPrefix(res.Header.Get("Content-Type"), "text/html")

	filename := strings.TrimPrefix(t.path, "/")
	if strings.HasSuffix(t.path, "/") {
		filename = path.Join(filename, "index.html")
	}

	err = c.write(filename, body)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if isHTML {
		c.report.Pages++
	} else {
		c.report.Files++
	}
	c.mu.Unlock()

	if !isHTML {
		return nil, nil
	}

	return c.links(u, t.path, body)
}

func (c *crawler) links(base *url.URL, from string, body []byte) ([]target, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("prerender: %s: %w", from, err)
	}

	var links []target
	for _, sel := range linkSelectors {
		doc.Find(sel[0]).Each(func(_ int, s *goquery.Selection) {
			ref, _ := s.Attr(sel[1])
			if p, ok := c.normalize(base, ref); ok {
				links = append(links, target{path: p, referrer: from})
			}
		})
	}

	return lo.UniqBy(links, func(t target) string { return t.path }), nil
}

// normalize resolves ref against base and returns its path when it points to
// the origin. Page paths always end with a slash.
func (c *crawler) normalize(base *url.URL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return "", false
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}

	u = base.ResolveReference(u)
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.Host != "" && u.Host != c.b.origin.Host {
		return "", false
	}

	p := path.Clean("/" + u.Path)
	if p != "/" && path.Ext(p) == "" {
		p += "/"
	}
	return p, true
}

func (c *crawler) write(filename string, data []byte) error {
	err := c.out.MkdirAll(path.Dir(filename), 0o755)
	if err != nil {
		return err
	}
	return c.out.WriteFile(filename, data, 0o644)
}

func (c *crawler) copyAssets() error {
	if c.b.assets == nil {
		return nil
	}

	exists, err := afero.DirExists(c.b.assets, "/")
	if err != nil || !exists {
		return err
	}

	dest := strings.TrimPrefix(render.AssetsBaseURL, "/")
	return afero.Walk(c.b.assets, "/", func(name string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		data, err := afero.ReadFile(c.b.assets, name)
		if err != nil {
			return err
		}

		err = c.write(path.Join(dest, name), data)
		if err == nil {
			c.mu.Lock()
			c.report.Files++
			c.mu.Unlock()
		}
		return err
	})
}
