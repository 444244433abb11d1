package site

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxNavDepth is the deepest navigation tree accepted by [Validate]. A root
// item with children has depth 2.
const MaxNavDepth = 2

// NavItem is an entry of a navigation menu. Items with children are rendered
// as dropdowns and usually have no link of their own.
type NavItem struct {
	Text     string    `json:"text"`
	Link     string    `json:"link,omitempty"`
	Children []NavItem `json:"children,omitempty"`
}

// HasChildren reports whether the item is a dropdown.
func (n NavItem) HasChildren() bool {
	return len(n.Children) > 0
}

// IsActive reports whether the item, or one of its children, points at the
// current path. "/projects" matches "/projects/" and "/projects/x/".
func (n NavItem) IsActive(currentPath string) bool {
	if n.Link != "" && pathMatches(n.Link, currentPath) {
		return true
	}
	for _, child := range n.Children {
		if child.IsActive(currentPath) {
			return true
		}
	}
	return false
}

func pathMatches(link, currentPath string) bool {
	if !strings.HasPrefix(link, "/") {
		return false
	}

	link = strings.TrimSuffix(link, "/")
	current := strings.TrimSuffix(currentPath, "/")
	if link == "" {
		return current == ""
	}

	return current == link || strings.HasPrefix(current, link+"/")
}

var header = []NavItem{
	{Text: "About Me", Link: "/about_me"},
	{Text: "Resume", Link: "/assets/resume.pdf"},
	{Text: "Projects", Link: "/projects"},
	{
		Text: "Course Reflections",
		Children: []NavItem{
			{Text: "ThoughtSpot SQL", Link: "/courses/thoughtspot"},
			{Text: "Databricks SQL", Link: "/courses/databricks"},
		},
	},
}

var footer = []NavItem{
	{Text: "Linkedin", Link: "https://www.linkedin.com/in/daniel-liu-80693a20b/"},
	{Text: "Github", Link: "https://github.com/danielliu2707"},
}

// Header returns the header navigation.
func Header() []NavItem {
	return cloneNav(header)
}

// Footer returns the footer navigation.
func Footer() []NavItem {
	return cloneNav(footer)
}

func cloneNav(items []NavItem) []NavItem {
	if items == nil {
		return nil
	}

	out := make([]NavItem, len(items))
	for i, it := range items {
		it.Children = cloneNav(it.Children)
		out[i] = it
	}
	return out
}

// NavLinks flattens the given trees into the list of their links, in order.
func NavLinks(items []NavItem) []string {
	var links []string
	for _, it := range items {
		if it.Link != "" {
			links = append(links, it.Link)
		}
		links = append(links, NavLinks(it.Children)...)
	}
	return links
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

var titleCaser = cases.Title(language.English)

// Breadcrumbs builds breadcrumbs for a path. The first crumb is always the
// home page. Segments matching a header link take the label of that link.
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}

	crumbs := []Crumb{{Href: "/", Label: "Home", Active: currentPath == "/"}}
	clean := path.Clean(currentPath)
	if clean == "/" || clean == "." {
		return crumbs
	}

	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, part := range parts {
		href += "/" + part
		crumbs = append(crumbs, Crumb{
			Href:   href + "/",
			Label:  labelFor(href, part),
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

func labelFor(href, segment string) string {
	for _, it := range header {
		if strings.TrimSuffix(it.Link, "/") == href {
			return it.Text
		}
	}

	s := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	return titleCaser.String(s)
}
