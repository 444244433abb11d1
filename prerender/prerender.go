// Package prerender builds a static copy of the website by crawling the
// in-process router.
package prerender

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/danielliu2707/folio/loader"
	"github.com/danielliu2707/folio/log"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// lastFile holds the name of the current build directory, relative to the
// public directory.
const lastFile = "last"

const defaultConcurrency = 8

type Options struct {
	// Handler serves every page of the website.
	Handler http.Handler

	// Origin is the URL the website is served from. Absolute links to this
	// origin are crawled, others are not.
	Origin string

	// Assets is copied to the assets directory of the build, if set.
	Assets afero.Fs

	// Public is the parent of the build directories.
	Public afero.Fs

	// Concurrency bounds how many pages are rendered at once.
	Concurrency int
}

// Report summarizes a build.
type Report struct {
	Dir     string
	Pages   int
	Files   int
	Skipped []string
	Took    time.Duration
}

type Builder struct {
	mu sync.Mutex

	fetcher     loader.Fetcher
	origin      *url.URL
	assets      afero.Fs
	public      *afero.Afero
	concurrency int
	log         *zap.SugaredLogger

	// current is the name of the current build directory.
	current string
}

func NewBuilder(opts Options) (*Builder, error) {
	if opts.Handler == nil {
		return nil, errors.New("prerender: handler is required")
	}

	if opts.Public == nil {
		return nil, errors.New("prerender: public file system is required")
	}

	origin, err := url.Parse(opts.Origin)
	if err != nil {
		return nil, fmt.Errorf("prerender: invalid origin: %w", err)
	}
	if origin.Host == "" {
		return nil, fmt.Errorf("prerender: origin %q has no host", opts.Origin)
	}
	if origin.Scheme == "" {
		origin.Scheme = "https"
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Builder{
		fetcher:     loader.HandlerFetcher{Handler: opts.Handler},
		origin:      origin,
		assets:      opts.Assets,
		public:      &afero.Afero{Fs: opts.Public},
		concurrency: concurrency,
		log:         log.Named("prerender"),
	}, nil
}

// Current returns the name of the current build directory, or "" when
// nothing was built yet.
func (b *Builder) Current() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentLocked()
}

func (b *Builder) currentLocked() (string, error) {
	if b.current != "" {
		return b.current, nil
	}

	content, err := b.public.ReadFile(lastFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	b.current = string(content)
	return b.current, nil
}

// Build crawls the website from seeds into the current build directory. When
// clean is set, or there is no current build, a new directory is used and
// the previous one is removed once the new build succeeds.
func (b *Builder) Build(ctx context.Context, clean bool, seeds ...string) (*Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()

	previous, err := b.currentLocked()
	if err != nil {
		return nil, fmt.Errorf("prerender: could not read last build: %w", err)
	}

	dir := previous
	fresh := dir == "" || clean
	if fresh {
		dir = uuid.NewString()
	}

	err = b.public.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, err
	}

	c := &crawler{
		b:      b,
		out:    &afero.Afero{Fs: afero.NewBasePathFs(b.public, dir)},
		report: &Report{Dir: dir},
	}

	err = c.copyAssets()
	if err == nil {
		err = c.crawl(ctx, seeds)
	}
	if err != nil {
		if fresh {
			_ = b.public.RemoveAll(dir)
		}
		return nil, err
	}

	if fresh {
		err = b.public.WriteFile(lastFile, []byte(dir), 0o644)
		if err != nil {
			return nil, fmt.Errorf("prerender: could not write last dir: %w", err)
		}
		b.current = dir

		if previous != "" {
			err = b.public.RemoveAll(previous)
			if err != nil {
				b.log.Warnw("could not delete old build", "dir", previous, "err", err)
			}
		}
	}

	c.report.Took = time.Since(start)
	b.log.Infow("build finished", "dir", dir, "pages", c.report.Pages, "files", c.report.Files, "took", c.report.Took)
	return c.report, nil
}
