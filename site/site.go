// Package site holds the static, read-only registries that describe the
// website: identity, navigation, themes, highlight cards and projects.
//
// Registries are initialized once and exposed through accessors that return
// copies, so callers can never mutate the shared values.
package site

// Author identifies the owner of the website.
type Author struct {
	Avatar string `json:"avatar" yaml:"avatar"`
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
	Bio    string `json:"bio,omitempty" yaml:"bio,omitempty"`
}

// Config is the global site identity. Protocol and Domain depend on the
// environment and are filled in by config.ResolveSite.
type Config struct {
	Protocol    string `json:"protocol" yaml:"protocol"`
	Domain      string `json:"domain" yaml:"domain"`
	Title       string `json:"title" yaml:"title"`
	Subtitle    string `json:"subtitle" yaml:"subtitle"`
	Lang        string `json:"lang" yaml:"lang"`
	Description string `json:"description" yaml:"description"`
	Author      Author `json:"author" yaml:"author"`
	ThemeColor  string `json:"themeColor" yaml:"themeColor"`
}

// URL returns the origin of the website, e.g. "https://example.com".
func (c Config) URL() string {
	return c.Protocol + c.Domain
}

// Identity returns the static part of the site configuration. Protocol and
// Domain are left empty.
func Identity() Config {
	return Config{
		Title:       "Daniel Liu",
		Subtitle:    "",
		Lang:        "en-US",
		Description: "",
		Author: Author{
			Avatar: "/assets/pfp.png",
			Name:   "Daniel Liu",
		},
		ThemeColor: "#3D4451",
	}
}
