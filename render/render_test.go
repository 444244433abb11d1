package render

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/danielliu2707/folio/loader"
	"github.com/danielliu2707/folio/posts"
	"github.com/danielliu2707/folio/site"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptStub string

func (s scriptStub) Script() template.HTML {
	return template.HTML(s)
}

func testSite() site.Config {
	cfg := site.Identity()
	cfg.Protocol = "https://"
	cfg.Domain = "example.com"
	return cfg
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	r, err := NewRenderer(Options{
		Site:      testSite(),
		Analytics: scriptStub(`<script defer src="/_vercel/insights/script.js"></script>`),
	})
	require.NoError(t, err)
	return r
}

func TestLayouts(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	for _, layout := range []string{LayoutError, LayoutIndex, LayoutProjects, LayoutProject, LayoutPosts, LayoutPost} {
		assert.True(t, r.HasLayout(layout), layout)
	}
	assert.False(t, r.HasLayout("baseof"))
}

func TestRenderIndex(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	var buf bytes.Buffer
	err := r.Render(&buf, LayoutIndex, &Page{
		Layout:     &loader.Result{Path: "/"},
		Highlights: site.Highlights(),
		Posts: []posts.Post{
			{Slug: "hello", Path: "/hello/", Title: "Hello", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Summary: "First."},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<html lang="en-US" data-theme="lemonade">`)
	assert.Contains(t, out, "<title>Daniel Liu</title>")
	assert.Contains(t, out, `<link rel="canonical" href="https://example.com/">`)
	assert.Contains(t, out, `/_vercel/insights/script.js`)
	assert.Contains(t, out, r.assets.stylesheet.Path)
	assert.Contains(t, out, "About Me")
	assert.Contains(t, out, `href="/hello/"`)
	assert.Contains(t, out, "Tuesday, Mar 5, 24")
	assert.Contains(t, out, `value="dracula"`)
	assert.NotContains(t, out, `class="breadcrumbs"`)
}

func TestRenderProjectLinks(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	tests := []struct {
		name     string
		project  site.Project
		contains []string
		excludes []string
	}{
		{
			name:     "combined",
			project:  site.Project{ID: "a", Name: "A", Img: "/a.png", Link: "https://a.example"},
			contains: []string{`href="https://a.example"`, ">Link<"},
			excludes: []string{">GitHub<", ">Demo<"},
		},
		{
			name:     "split",
			project:  site.Project{ID: "b", Name: "B", Img: "/b.png", GitHub: "https://github.com/b", Demo: "https://b.example"},
			contains: []string{`href="https://github.com/b"`, `href="https://b.example"`},
			excludes: []string{">Link<"},
		},
		{
			name:     "split without demo",
			project:  site.Project{ID: "c", Name: "C", Img: "/c.png", GitHub: "https://github.com/c"},
			contains: []string{`href="https://github.com/c"`},
			excludes: []string{">Demo<", ">Link<"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := tt.project
			err := r.Render(&buf, LayoutProject, &Page{
				Layout:      &loader.Result{Path: p.Path()},
				Title:       p.Name,
				Project:     &p,
				Breadcrumbs: site.Breadcrumbs(p.Path()),
			})
			require.NoError(t, err)

			out := buf.String()
			assert.Contains(t, out, "<title>"+p.Name+" | Daniel Liu</title>")
			assert.Contains(t, out, `class="breadcrumbs"`)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderActiveNav(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	var buf bytes.Buffer
	err := r.Render(&buf, LayoutProjects, &Page{
		Layout:   &loader.Result{Path: "/projects/"},
		Title:    "Projects",
		Projects: site.Projects(),
		Apps:     site.Apps(),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `<li class="active">`)
	assert.Contains(t, out, "NBA Position Predictor")
}

func TestRenderPostContentIsNotEscaped(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	var buf bytes.Buffer
	err := r.Render(&buf, LayoutPost, &Page{
		Layout: &loader.Result{Path: "/hello/"},
		Post:   &posts.Post{Slug: "hello", Title: "Hello <b>", Content: template.HTML("<p>Body</p>")},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<p>Body</p>")
	assert.Contains(t, out, "Hello &lt;b&gt;")
}

func TestRenderUnknownLayout(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	var buf bytes.Buffer
	err := r.Render(&buf, "nope", &Page{})
	assert.ErrorContains(t, err, `layout "nope" not found`)
	assert.Zero(t, buf.Len())
}

func TestCustomTemplates(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "assets/main.css", []byte("body{}"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "layouts/baseof.html", []byte(`[{{ template "greet" . }}|{{ block "main" . }}{{ end }}]`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "layouts/index.html", []byte(`{{ define "main" }}{{ .Title }}{{ end }}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "partials/greet.html", []byte(`hi {{ .Site.Author.Name }}`), 0o644))

	r, err := NewRenderer(Options{Site: testSite(), Templates: fs})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, LayoutIndex, &Page{Title: "Home"}))
	assert.Equal(t, "[hi Daniel Liu|Home]", buf.String())

	assert.NotNil(t, r.AssetByPath(r.assets.stylesheet.Path))
	assert.Nil(t, r.AssetByPath("/assets/main.css"))
}

func TestMissingTemplates(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer(Options{Templates: afero.NewMemMapFs()})
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := fingerprint("main.css", "text/css", []byte("body{}"))
	assert.Regexp(t, `^/assets/main\.[0-9a-f]{16}\.css$`, a.Path)
	assert.Regexp(t, `^sha256-`, a.Integrity)
	assert.Equal(t, a.Path, fingerprint("main.css", "text/css", []byte("body{}")).Path)
	assert.NotEqual(t, a.Path, fingerprint("main.css", "text/css", []byte("p{}")).Path)
}

func TestURLFuncs(t *testing.T) {
	t.Parallel()

	abs := absoluteURL("https://example.com")
	rel := relativeURL("https://example.com")

	assert.Equal(t, "https://example.com/posts/", abs("/posts/"))
	assert.Equal(t, "https://other.com/x", abs("https://other.com/x"))
	assert.Equal(t, "/posts/", rel("/posts/"))
	assert.Equal(t, "/assets/pfp.png", rel("https://example.com/assets/pfp.png"))
	assert.True(t, isExternal("https://github.com"))
	assert.False(t, isExternal("/projects"))
}
