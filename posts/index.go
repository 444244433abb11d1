// Package posts builds the posts index served at /posts.json from the
// markdown files of the posts directory.
package posts

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/danielliu2707/folio/log"
	"github.com/maypok86/otter/v2"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"
)

const (
	DefaultDirectory = "posts"
	snapshotKey      = "posts"
)

type Post struct {
	Slug    string        `json:"slug"`
	Path    string        `json:"path"`
	Title   string        `json:"title"`
	Date    time.Time     `json:"date,omitzero"`
	Updated time.Time     `json:"updated,omitzero"`
	Tags    []string      `json:"tags,omitempty"`
	Summary string        `json:"summary,omitempty"`
	Image   string        `json:"image,omitempty"`
	Draft   bool          `json:"-"`
	Content template.HTML `json:"-"`
}

// Snapshot is an immutable, fully built index.
type Snapshot struct {
	Posts []Post
	JSON  []byte

	bySlug map[string]int
}

// Post looks up a post by slug.
func (s *Snapshot) Post(slug string) (Post, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return Post{}, false
	}
	return s.Posts[i], true
}

// Section returns the posts whose slug is nested under prefix, newest first.
func (s *Snapshot) Section(prefix string) []Post {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return nil
	}

	return lo.Filter(s.Posts, func(p Post, _ int) bool {
		return strings.HasPrefix(p.Slug, prefix+"/")
	})
}

// Recent returns up to n of the newest posts.
func (s *Snapshot) Recent(n int) []Post {
	return s.Posts[:min(n, len(s.Posts))]
}

type Options struct {
	// Directory holding the markdown files, relative to the file system root.
	Directory     string
	IncludeDrafts bool
}

type Index struct {
	fs     afero.Fs
	dir    string
	drafts bool
	md     goldmark.Markdown
	cache  *otter.Cache[string, *Snapshot]
	log    *zap.SugaredLogger
}

func NewIndex(fs afero.Fs, opts Options) *Index {
	dir := opts.Directory
	if dir == "" {
		dir = DefaultDirectory
	}

	return &Index{
		fs:     fs,
		dir:    dir,
		drafts: opts.IncludeDrafts,
		md:     newMarkdown(),
		cache: otter.Must(&otter.Options[string, *Snapshot]{
			MaximumSize: 1,
		}),
		log: log.Named("posts"),
	}
}

// Snapshot returns the cached index, building it if needed.
func (i *Index) Snapshot() (*Snapshot, error) {
	if s, ok := i.cache.GetIfPresent(snapshotKey); ok {
		return s, nil
	}
	return i.Refresh()
}

// JSON returns the encoded index.
func (i *Index) JSON() ([]byte, error) {
	s, err := i.Snapshot()
	if err != nil {
		return nil, err
	}
	return s.JSON, nil
}

// Refresh rebuilds the index and replaces the cached one.
func (i *Index) Refresh() (*Snapshot, error) {
	start := time.Now()
	s, err := i.build()
	if err != nil {
		return nil, err
	}

	i.cache.Set(snapshotKey, s)
	i.log.Infow("index built", "posts", len(s.Posts), "took", time.Since(start))
	return s, nil
}

// Invalidate drops the cached index. The next read rebuilds it.
func (i *Index) Invalidate() {
	i.cache.Invalidate(snapshotKey)
}

func (i *Index) build() (*Snapshot, error) {
	posts, err := i.walk()
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(posts, func(a, b Post) int {
		switch {
		case a.Date.Equal(b.Date):
			return strings.Compare(a.Slug, b.Slug)
		case a.Date.IsZero():
			return 1
		case b.Date.IsZero():
			return -1
		default:
			return b.Date.Compare(a.Date)
		}
	})

	bySlug := make(map[string]int, len(posts))
	for idx, p := range posts {
		if _, ok := bySlug[p.Slug]; ok {
			return nil, fmt.Errorf("duplicate post slug %q", p.Slug)
		}
		bySlug[p.Slug] = idx
	}

	data, err := json.Marshal(struct {
		Posts []Post `json:"posts"`
	}{posts})
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Posts:  posts,
		JSON:   data,
		bySlug: bySlug,
	}, nil
}

func (i *Index) walk() ([]Post, error) {
	posts := []Post{}

	exists, err := afero.DirExists(i.fs, i.dir)
	if err != nil {
		return nil, err
	}
	if !exists {
		i.log.Warnw("posts directory does not exist", "dir", i.dir)
		return posts, nil
	}

	err = afero.Walk(i.fs, i.dir, func(name string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.EqualFold(filepath.Ext(name), ".md") {
			return nil
		}

		raw, err := afero.ReadFile(i.fs, name)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(i.dir, name)
		if err != nil {
			return err
		}

		p, err := parsePost(i.md, filepath.ToSlash(rel), raw)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if p.Draft && !i.drafts {
			i.log.Debugw("skipping draft", "slug", p.Slug)
			return nil
		}

		posts = append(posts, *p)
		return nil
	})

	return posts, err
}
