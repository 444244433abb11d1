package site

import "slices"

// Highlight is a small card shown on a landing page.
type Highlight struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

var highlights = []Highlight{
	{
		Icon:        "👤",
		Title:       "About Me",
		Description: "Learn about my professional background and interests.",
		Link:        "/about_me",
	},
	{
		Icon:        "💼",
		Title:       "Projects",
		Description: "Explore my personal projects built for fun and learning.",
		Link:        "/projects",
	},
	{
		Icon:        "📄",
		Title:       "Resume",
		Description: "Download my latest resume.",
		Link:        "/assets/resume.pdf",
	},
}

var apps = []Highlight{
	{
		Icon:        "🏀",
		Title:       "NBA Position Predictor",
		Description: "Find your ideal basketball position and NBA twin with Positionn.",
		Link:        "/projects/positionn",
	},
}

// Highlights returns the homepage cards in display order.
func Highlights() []Highlight {
	return slices.Clone(highlights)
}

// Apps returns the app cards in display order.
func Apps() []Highlight {
	return slices.Clone(apps)
}
