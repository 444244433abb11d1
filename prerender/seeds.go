package prerender

import (
	"strings"

	"github.com/danielliu2707/folio/loader"
	"github.com/danielliu2707/folio/site"
	"github.com/samber/lo"
)

// Seeds returns the paths every build starts from: the home page, the posts
// index and every internal link of the navigation, highlights, apps and
// projects.
func Seeds() []string {
	seeds := []string{"/", "/posts/", loader.IndexPath}
	seeds = append(seeds, site.NavLinks(site.Header())...)
	seeds = append(seeds, site.NavLinks(site.Footer())...)

	for _, h := range append(site.Highlights(), site.Apps()...) {
		seeds = append(seeds, h.Link)
	}

	for _, p := range site.Projects() {
		seeds = append(seeds, p.Path())
	}

	return lo.Uniq(lo.Filter(seeds, func(s string, _ int) bool {
		return strings.HasPrefix(s, "/")
	}))
}
