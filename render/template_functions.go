package render

import (
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/danielliu2707/folio/site"
)

func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"now":        time.Now,
		"absURL":     absoluteURL(r.site.URL()),
		"relURL":     relativeURL(r.site.URL()),
		"formatDate": site.Date().Format,
		"isActive":   func(item site.NavItem, path string) bool { return item.IsActive(path) },
		"isExternal": isExternal,
		"join":       strings.Join,
	}
}

func resolvedURL(baseStr, refStr string) *url.URL {
	base, err := url.Parse(baseStr)
	if err != nil {
		return nil
	}
	page, err := url.Parse(refStr)
	if err != nil {
		return nil
	}
	return base.ResolveReference(page)
}

func absoluteURL(baseStr string) func(string) string {
	return func(refStr string) string {
		resolved := resolvedURL(baseStr, refStr)
		if resolved == nil {
			return ""
		}
		return resolved.String()
	}
}

func relativeURL(baseStr string) func(string) string {
	return func(refStr string) string {
		resolved := resolvedURL(baseStr, refStr)
		if resolved == nil {
			return refStr
		}

		// Take out everything before the path.
		resolved.User = nil
		resolved.Host = ""
		resolved.Scheme = ""
		return resolved.String()
	}
}

func isExternal(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}
