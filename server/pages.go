package server

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielliu2707/folio/loader"
	"github.com/danielliu2707/folio/render"
	"github.com/danielliu2707/folio/site"
	"github.com/go-chi/chi/v5"
)

const recentPosts = 5

// pageURL is the absolute URL of the page being requested.
func pageURL(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	host := r.Host
	if host == "" {
		host = "localhost"
	}

	return &url.URL{Scheme: scheme, Host: host, Path: r.URL.Path}
}

// load runs the layout loader for the requested page. When it fails, the
// error page is served and false is returned.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*loader.Result, bool) {
	res, err := loader.New(loader.HandlerFetcher{Handler: s.handler}).Load(r.Context(), pageURL(r))
	if err != nil {
		s.serveErrorPage(w, r, http.StatusInternalServerError, err)
		return nil, false
	}
	return res, true
}

func (s *Server) serveHTML(w http.ResponseWriter, r *http.Request, code int, layout string, p *render.Page) {
	var buf bytes.Buffer
	err := s.renderer.Render(&buf, layout, p)
	if err != nil {
		s.log.Errorw("failed to render page", "path", r.URL.Path, "layout", layout, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	setCacheControl(w, false)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func (s *Server) serveErrorPage(w http.ResponseWriter, r *http.Request, code int, err error) {
	description := "Something went wrong."
	if code == http.StatusNotFound {
		description = "This page could not be found."
	}

	if err != nil {
		s.log.Errorw("error while serving page", "path", r.URL.Path, "code", code, "err", err)
	}

	s.serveHTML(w, r, code, render.LayoutError, &render.Page{
		Layout:      &loader.Result{Path: r.URL.Path},
		Title:       http.StatusText(code),
		Description: description,
		StatusCode:  code,
	})
}

func (s *Server) serveNotFound(w http.ResponseWriter, r *http.Request) {
	s.serveErrorPage(w, r, http.StatusNotFound, nil)
}

func (s *Server) healthzGet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	setCacheControl(w, false)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) postsJSONGet(w http.ResponseWriter, r *http.Request) {
	data, err := s.posts.JSON()
	if err != nil {
		s.log.Errorw("failed to build posts index", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	setCacheControl(w, false)
	_, _ = w.Write(data)
}

func (s *Server) assetsGet(w http.ResponseWriter, r *http.Request) {
	if asset := s.renderer.AssetByPath(r.URL.Path); asset != nil {
		setCacheControl(w, true)
		w.Header().Set("Content-Type", asset.Type)
		http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(asset.Body))
		return
	}

	http.StripPrefix(render.AssetsBaseURL, s.static).ServeHTTP(w, r)
}

func (s *Server) indexGet(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.load(w, r)
	if !ok {
		return
	}

	snap, err := s.posts.Snapshot()
	if err != nil {
		s.serveErrorPage(w, r, http.StatusInternalServerError, err)
		return
	}

	s.serveHTML(w, r, http.StatusOK, render.LayoutIndex, &render.Page{
		Layout:     layout,
		Title:      s.c.Site.Title,
		Highlights: site.Highlights(),
		Posts:      snap.Recent(recentPosts),
	})
}

func (s *Server) projectsGet(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.load(w, r)
	if !ok {
		return
	}

	s.serveHTML(w, r, http.StatusOK, render.LayoutProjects, &render.Page{
		Layout:      layout,
		Title:       "Projects",
		Breadcrumbs: site.Breadcrumbs(layout.Path),
		Projects:    site.Projects(),
		Apps:        site.Apps(),
	})
}

func (s *Server) projectGet(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.load(w, r)
	if !ok {
		return
	}

	project, ok := site.ProjectByID(chi.URLParam(r, "id"))
	if !ok {
		s.serveNotFound(w, r)
		return
	}

	crumbs := site.Breadcrumbs(layout.Path)
	crumbs[len(crumbs)-1].Label = project.Name

	s.serveHTML(w, r, http.StatusOK, render.LayoutProject, &render.Page{
		Layout:      layout,
		Title:       project.Name,
		Description: project.Description,
		Breadcrumbs: crumbs,
		Project:     &project,
	})
}

func (s *Server) postsGet(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.load(w, r)
	if !ok {
		return
	}

	snap, err := s.posts.Snapshot()
	if err != nil {
		s.serveErrorPage(w, r, http.StatusInternalServerError, err)
		return
	}

	s.serveHTML(w, r, http.StatusOK, render.LayoutPosts, &render.Page{
		Layout:      layout,
		Title:       "Posts",
		Breadcrumbs: site.Breadcrumbs(layout.Path),
		Posts:       snap.Posts,
	})
}

func (s *Server) postGet(w http.ResponseWriter, r *http.Request) {
	layout, ok := s.load(w, r)
	if !ok {
		return
	}

	snap, err := s.posts.Snapshot()
	if err != nil {
		s.serveErrorPage(w, r, http.StatusInternalServerError, err)
		return
	}

	crumbs := site.Breadcrumbs(layout.Path)

	post, ok := snap.Post(strings.Trim(layout.Path, "/"))
	if !ok {
		// Directories of nested posts list their posts.
		section := snap.Section(layout.Path)
		if len(section) == 0 {
			s.serveNotFound(w, r)
			return
		}

		s.serveHTML(w, r, http.StatusOK, render.LayoutPosts, &render.Page{
			Layout:      layout,
			Title:       crumbs[len(crumbs)-1].Label,
			Breadcrumbs: crumbs,
			Posts:       section,
		})
		return
	}

	if post.Title != "" {
		crumbs[len(crumbs)-1].Label = post.Title
	}

	s.serveHTML(w, r, http.StatusOK, render.LayoutPost, &render.Page{
		Layout:      layout,
		Title:       post.Title,
		Description: post.Summary,
		Breadcrumbs: crumbs,
		Post:        &post,
	})
}
