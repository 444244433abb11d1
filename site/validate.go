package site

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Validate checks every registry and returns all violations joined
// together, or nil.
func Validate() error {
	return errors.Join(
		ValidateHighlights("highlights", highlights),
		ValidateHighlights("apps", apps),
		ValidateProjects(projects),
		ValidateNav("header", header),
		ValidateNav("footer", footer),
		ValidateThemes(themes),
	)
}

// ValidateHighlights requires a title and a link on every card.
func ValidateHighlights(registry string, hh []Highlight) error {
	var errs []error
	for i, h := range hh {
		if h.Title == "" {
			errs = append(errs, fmt.Errorf("%s[%d]: title is empty", registry, i))
		}
		if h.Link == "" {
			errs = append(errs, fmt.Errorf("%s[%d] %q: link is empty", registry, i, h.Title))
		}
	}
	return errors.Join(errs...)
}

// ValidateProjects requires unique non-empty ids, names and images.
func ValidateProjects(pp []Project) error {
	var errs []error
	for i, p := range pp {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: id is empty", i))
		}
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("projects[%d] %q: name is empty", i, p.ID))
		}
		if p.Img == "" {
			errs = append(errs, fmt.Errorf("projects[%d] %q: img is empty", i, p.ID))
		}
	}

	dups := lo.FindDuplicatesBy(pp, func(p Project) string { return p.ID })
	for _, p := range dups {
		errs = append(errs, fmt.Errorf("projects: id %q is not unique", p.ID))
	}

	return errors.Join(errs...)
}

// ValidateNav requires text on every item and limits the depth of the tree
// to [MaxNavDepth]. Items without a link must have children.
func ValidateNav(registry string, items []NavItem) error {
	return validateNav(registry, items, 1)
}

func validateNav(prefix string, items []NavItem, depth int) error {
	var errs []error
	for i, it := range items {
		name := fmt.Sprintf("%s[%d]", prefix, i)
		if it.Text == "" {
			errs = append(errs, fmt.Errorf("%s: text is empty", name))
		}
		if it.Link == "" && !it.HasChildren() {
			errs = append(errs, fmt.Errorf("%s %q: neither link nor children", name, it.Text))
		}
		if it.HasChildren() {
			if depth >= MaxNavDepth {
				errs = append(errs, fmt.Errorf("%s %q: nested deeper than %d levels", name, it.Text, MaxNavDepth))
				continue
			}
			errs = append(errs, validateNav(name+".children", it.Children, depth+1))
		}
	}
	return errors.Join(errs...)
}

// ValidateThemes requires unique non-empty names and non-empty labels.
func ValidateThemes(tt []Theme) error {
	var errs []error
	for i, t := range tt {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("themes[%d]: name is empty", i))
		}
		if t.Text == "" {
			errs = append(errs, fmt.Errorf("themes[%d] %q: text is empty", i, t.Name))
		}
	}

	for _, t := range lo.FindDuplicatesBy(tt, func(t Theme) string { return t.Name }) {
		errs = append(errs, fmt.Errorf("themes: name %q is not unique", t.Name))
	}

	return errors.Join(errs...)
}
