// Package render turns pages into HTML using the layouts and partials
// embedded in the binary.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/danielliu2707/folio/loader"
	"github.com/danielliu2707/folio/posts"
	"github.com/danielliu2707/folio/site"
	"github.com/spf13/afero"
)

const (
	LayoutError    string = "error"
	LayoutIndex    string = "index"
	LayoutProjects string = "projects"
	LayoutProject  string = "project"
	LayoutPosts    string = "posts"
	LayoutPost     string = "post"
)

//go:embed templates
var embedded embed.FS

// ScriptProvider returns markup injected in the head of every page.
type ScriptProvider interface {
	Script() template.HTML
}

type Options struct {
	Site site.Config

	// Templates overrides the embedded templates. It must contain
	// layouts/baseof.html, layouts/*.html, partials/*.html and
	// assets/main.css.
	Templates afero.Fs

	Analytics ScriptProvider
}

type Renderer struct {
	site      site.Config
	analytics ScriptProvider
	layouts   map[string]*template.Template
	assets    *assetsBuilder
}

func NewRenderer(opts Options) (*Renderer, error) {
	templates := opts.Templates
	if templates == nil {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, err
		}
		templates = afero.FromIOFS{FS: sub}
	}

	r := &Renderer{
		site:      opts.Site,
		analytics: opts.Analytics,
		assets:    newAssetsBuilder(templates),
	}

	err := r.assets.build()
	if err != nil {
		return nil, fmt.Errorf("render: assets: %w", err)
	}

	r.layouts, err = newTemplatesBuilder(templates).load(r.templateFuncs())
	if err != nil {
		return nil, fmt.Errorf("render: templates: %w", err)
	}

	return r, nil
}

// Page is the data every layout is executed with.
type Page struct {
	// set by caller of [Renderer.Render]
	Layout      *loader.Result
	Title       string
	Description string
	StatusCode  int
	Breadcrumbs []site.Crumb
	Highlights  []site.Highlight
	Apps        []site.Highlight
	Projects    []site.Project
	Project     *site.Project
	Posts       []posts.Post
	Post        *posts.Post

	// set by [Renderer.Render]
	Site         site.Config
	Header       []site.NavItem
	Footer       []site.NavItem
	Themes       []site.Theme
	DefaultTheme site.Theme
	Analytics    template.HTML
	Stylesheet   *Asset
}

// Path is the path of the page being rendered.
func (p *Page) Path() string {
	if p.Layout == nil {
		return ""
	}
	return p.Layout.Path
}

// FullTitle is the document title.
func (p *Page) FullTitle() string {
	if p.Title == "" || p.Title == p.Site.Title {
		return p.Site.Title
	}
	return p.Title + " | " + p.Site.Title
}

// Render executes a layout into w. The output is buffered so nothing is
// written when the template fails.
func (r *Renderer) Render(w io.Writer, layout string, p *Page) error {
	tpl, ok := r.layouts[layout]
	if !ok {
		return fmt.Errorf("render: layout %q not found", layout)
	}

	p.Site = r.site
	p.Header = site.Header()
	p.Footer = site.Footer()
	p.Themes = site.Themes()
	p.DefaultTheme = site.DefaultTheme()
	p.Stylesheet = r.assets.stylesheet
	if r.analytics != nil {
		p.Analytics = r.analytics.Script()
	}

	var buf bytes.Buffer
	err := tpl.Execute(&buf, p)
	if err != nil {
		return fmt.Errorf("render: %s: %w", layout, err)
	}

	_, err = buf.WriteTo(w)
	return err
}

// HasLayout reports whether a layout exists.
func (r *Renderer) HasLayout(layout string) bool {
	_, ok := r.layouts[layout]
	return ok
}
