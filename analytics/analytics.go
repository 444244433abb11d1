// Package analytics wires the page view telemetry of the website. It must
// be injected exactly once per process, before the server starts.
package analytics

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danielliu2707/folio/log"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

// ModeFor maps the development flag to a [Mode].
func ModeFor(dev bool) Mode {
	if dev {
		return Development
	}
	return Production
}

var ErrAlreadyInjected = errors.New("analytics: already injected")

const (
	debugScriptURL      = "https://cdn.vercel-insights.com/v1/script.debug.js"
	productionScriptURL = "/_vercel/insights/script.js"
	queueScript         = `<script>window.va = window.va || function () { (window.vaq = window.vaq || []).push(arguments); };</script>`
)

// PageView is a single reported page load.
type PageView struct {
	Path     string
	Referrer string
	Time     time.Time
}

type Reporter interface {
	Report(ctx context.Context, v PageView) error
}

type Options struct {
	Mode     Mode
	Reporter Reporter
}

type Injector struct {
	once     sync.Once
	injected atomic.Bool
	mode     Mode
	reporter Reporter
	log      *zap.SugaredLogger
}

// Inject initializes the injector. Only the first call has an effect; the
// following ones return [ErrAlreadyInjected].
func (i *Injector) Inject(opts Options) error {
	err := ErrAlreadyInjected
	i.once.Do(func() {
		i.mode = opts.Mode
		if i.mode == "" {
			i.mode = Production
		}
		i.reporter = opts.Reporter
		i.log = log.Named("analytics")
		i.injected.Store(true)
		i.log.Infow("injected", "mode", i.mode)
		err = nil
	})
	return err
}

// Injected reports whether [Injector.Inject] has been called.
func (i *Injector) Injected() bool {
	return i.injected.Load()
}

// Mode returns the injected mode, or "" before injection.
func (i *Injector) Mode() Mode {
	if !i.Injected() {
		return ""
	}
	return i.mode
}

// Script returns the tags to include in the head of every page.
func (i *Injector) Script() template.HTML {
	switch i.Mode() {
	case Development:
		return template.HTML(queueScript + `<script defer src="` + debugScriptURL + `"></script>`)
	case Production:
		return template.HTML(queueScript + `<script defer src="` + productionScriptURL + `"></script>`)
	default:
		return ""
	}
}

// Middleware reports successful HTML page loads to the reporter. It does
// nothing until the injector is injected.
func (i *Injector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !i.Injected() || i.reporter == nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		if ww.Status() != http.StatusOK || !strings.HasPrefix(ww.Header().Get("Content-Type"), "text/html") {
			return
		}

		err := i.reporter.Report(r.Context(), PageView{
			Path:     r.URL.Path,
			Referrer: r.Referer(),
			Time:     time.Now(),
		})
		if err != nil {
			i.log.Warnw("failed to report page view", "path", r.URL.Path, "err", err)
		}
	})
}

var std = &Injector{}

// Default returns the process-wide injector.
func Default() *Injector {
	return std
}

// Inject injects the process-wide injector.
func Inject(dev bool, r Reporter) error {
	return std.Inject(Options{Mode: ModeFor(dev), Reporter: r})
}
