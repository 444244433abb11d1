package site

import "slices"

// Theme is a selectable visual theme. Name must match a theme identifier
// known to the stylesheet; it is not validated.
type Theme struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

var themes = []Theme{
	{Name: "lemonade", Text: "🍋 Lemonade"},
	{Name: "cmyk", Text: "🖨 Light"},
	{Name: "night", Text: "🌃 Night"},
	{Name: "dracula", Text: "🧛 Dark"},
	{Name: "valentine", Text: "🌸 Valentine"},
	{Name: "aqua", Text: "💦 Aqua"},
	{Name: "synthwave", Text: "🌃 Synthwave"},
	{Name: "lofi", Text: "🎶 Lo-Fi"},
	{Name: "cupcake", Text: "🧁 Cupcake"},
	{Name: "garden", Text: "🏡 Garden"},
	{Name: "retro", Text: "🌇 Retro"},
	{Name: "black", Text: "🖤 Black"},
}

// Themes returns the themes in menu order.
func Themes() []Theme {
	return slices.Clone(themes)
}

// DefaultTheme is the first theme of the menu.
func DefaultTheme() Theme {
	return themes[0]
}

// ThemeByName looks up a theme by its machine name.
func ThemeByName(name string) (Theme, bool) {
	i := slices.IndexFunc(themes, func(t Theme) bool { return t.Name == name })
	if i < 0 {
		return Theme{}, false
	}
	return themes[i], true
}
