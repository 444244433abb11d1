package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/danielliu2707/folio/analytics"
	"github.com/danielliu2707/folio/config"
	"github.com/danielliu2707/folio/log"
	"github.com/danielliu2707/folio/posts"
	"github.com/danielliu2707/folio/render"
	"github.com/robfig/cron/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	// AssetsDirectory is the directory, relative to the source directory,
	// served under /assets/.
	AssetsDirectory = "assets"

	refreshSchedule = "@hourly"
	shutdownTimeout = 5 * time.Second
)

type Options struct {
	Config *config.Config

	// Source holds the posts and assets directories. Defaults to the source
	// directory on disk.
	Source afero.Fs

	// Analytics defaults to [analytics.Default].
	Analytics *analytics.Injector
}

type Server struct {
	c   *config.Config
	log *zap.SugaredLogger

	source    afero.Fs
	posts     *posts.Index
	renderer  *render.Renderer
	analytics *analytics.Injector
	static    *staticFs
	cron      *cron.Cron
	handler   http.Handler

	server *http.Server
	cancel context.CancelFunc
}

func NewServer(opts Options) (*Server, error) {
	if opts.Config == nil {
		return nil, errors.New("server: config is required")
	}

	source := opts.Source
	if source == nil {
		source = afero.NewBasePathFs(afero.NewOsFs(), opts.Config.SourceDirectory)
	}

	injector := opts.Analytics
	if injector == nil {
		injector = analytics.Default()
	}

	renderer, err := render.NewRenderer(render.Options{
		Site:      opts.Config.Site,
		Analytics: injector,
	})
	if err != nil {
		return nil, err
	}

	s := &Server{
		c:   opts.Config,
		log: log.Named("server"),

		source: source,
		posts: posts.NewIndex(source, posts.Options{
			IncludeDrafts: opts.Config.Development,
		}),
		renderer:  renderer,
		analytics: injector,
		static:    newStaticFs(afero.NewBasePathFs(source, AssetsDirectory)),
		cron:      cron.New(),
	}

	s.handler = s.makeRouter()
	return s, nil
}

// Handler returns the router of the website.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Source returns the file system holding posts and assets.
func (s *Server) Source() afero.Fs {
	return s.source
}

// Posts returns the posts index.
func (s *Server) Posts() *posts.Index {
	return s.posts
}

func (s *Server) RegisterCron(schedule, name string, job func() error) error {
	_, err := s.cron.AddFunc(schedule, func() {
		err := job()
		if err != nil {
			s.log.Errorw("cron job failed", "job", name, "err", err)
		}
	})
	return err
}

func (s *Server) Start() error {
	// Make sure the index can be built before accepting requests.
	_, err := s.posts.Refresh()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	if s.c.Development {
		go func() {
			dir := filepath.Join(s.c.SourceDirectory, posts.DefaultDirectory)
			if err := s.posts.Watch(ctx, dir); err != nil {
				s.log.Warnw("posts watcher stopped", "dir", dir, "err", err)
			}
		}()
	} else {
		err = s.RegisterCron(refreshSchedule, "Refresh Posts", func() error {
			_, err := s.posts.Refresh()
			return err
		})
		if err != nil {
			cancel()
			return err
		}
		s.cron.Start()
	}

	ln, err := net.Listen("tcp", s.c.Addr())
	if err != nil {
		cancel()
		return err
	}

	errCh := make(chan error)
	s.server = &http.Server{Handler: s.handler, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		s.log.Infof("listening on %s", ln.Addr().String())
		errCh <- s.server.Serve(ln)
	}()

	err = <-errCh
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.cancel != nil {
		s.cancel()
	}

	<-s.cron.Stop().Done()

	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) withRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil && rvr != http.ErrAbortHandler {
				err := fmt.Errorf("panic while serving: %v: %s", rvr, string(debug.Stack()))
				s.log.Error(err)
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// withCleanPath redirects page paths to their clean form, which always ends
// with a slash. Paths with a file extension, and exempt, are only cleaned.
func withCleanPath(exempt ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clean := cleanPath(r.URL.Path, exempt)
			if r.URL.Path != clean {
				u := *r.URL
				u.Path = clean
				u.RawPath = ""
				http.Redirect(w, r, u.RequestURI(), http.StatusPermanentRedirect)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func cleanPath(p string, exempt []string) string {
	clean := path.Clean("/" + p)
	if clean == "/" || path.Ext(clean) != "" {
		return clean
	}

	for _, e := range exempt {
		if clean == e {
			return clean
		}
	}

	return clean + "/"
}

const contentSecurityPolicy = "style-src 'self' 'unsafe-inline' https://giscus.app"

func (s *Server) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

func setCacheControl(w http.ResponseWriter, immutable bool) {
	if immutable {
		w.Header().Set("Cache-Control", "public, max-age=15552000, immutable")
	} else {
		w.Header().Set("Cache-Control", "no-cache, no-store, max-age=0")
	}
}
