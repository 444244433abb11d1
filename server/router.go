package server

import (
	"net/http"

	"github.com/danielliu2707/folio/loader"
	"github.com/danielliu2707/folio/log"
	"github.com/danielliu2707/folio/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	healthzPath  = "/healthz"
	projectsPath = "/projects/"
	projectPath  = "/projects/{id}/"
	postsPath    = "/posts/"
)

func (s *Server) makeRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withRecoverer)
	r.Use(log.WithZap)
	r.Use(withCleanPath(healthzPath))
	r.Use(middleware.GetHead)
	r.Use(s.withSecurityHeaders)
	r.Use(s.analytics.Middleware)

	r.Get(healthzPath, s.healthzGet)
	r.Get(loader.IndexPath, s.postsJSONGet)
	r.Get(render.AssetsBaseURL+"/*", s.assetsGet)

	r.Get("/", s.indexGet)
	r.Get(projectsPath, s.projectsGet)
	r.Get(projectPath, s.projectGet)
	r.Get(postsPath, s.postsGet)
	r.Get("/*", s.postGet)

	r.NotFound(s.serveNotFound)
	return r
}
