package site

import "slices"

// Project is a portfolio entry. Img is required; every other field but ID
// and Name is optional and simply not rendered when empty.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Tags        []string `json:"tags,omitempty"`
	Feature     string   `json:"feature,omitempty"`
	Description string   `json:"description,omitempty"`
	Img         string   `json:"img"`
	GitHub      string   `json:"github,omitempty"`
	Demo        string   `json:"demo,omitempty"`

	// Deprecated: use GitHub and Demo instead.
	Link string `json:"link,omitempty"`
}

// LinkKind tells which shape of links a project carries.
type LinkKind int

const (
	// LinkSplit projects have separate source and demo links.
	LinkSplit LinkKind = iota
	// LinkCombined projects have a single legacy link.
	LinkCombined
)

func (k LinkKind) String() string {
	switch k {
	case LinkCombined:
		return "combined"
	default:
		return "split"
	}
}

// LinkInfo is the resolved form of a project's links. URL is only set for
// [LinkCombined]; GitHub and Demo only for [LinkSplit].
type LinkInfo struct {
	Kind   LinkKind
	URL    string
	GitHub string
	Demo   string
}

// Links resolves the legacy and split link fields into a single shape. The
// split fields win whenever either of them is set.
func (p Project) Links() LinkInfo {
	if p.GitHub == "" && p.Demo == "" && p.Link != "" {
		return LinkInfo{Kind: LinkCombined, URL: p.Link}
	}

	return LinkInfo{Kind: LinkSplit, GitHub: p.GitHub, Demo: p.Demo}
}

// Path is the page of the project on this website.
func (p Project) Path() string {
	return "/projects/" + p.ID + "/"
}

var projects = []Project{
	{
		ID:          "positionn",
		Name:        "Positionn",
		Tags:        []string{"Python", "Machine Learning", "Streamlit"},
		Description: "An app that predicts your ideal basketball position and finds your NBA twin! 🏀",
		Img:         "/assets/positionnlogo.png",
		GitHub:      "https://github.com/danielliu2707/positionn",
		Demo:        "/projects/positionn",
	},
	{
		ID:          "nykfailures",
		Name:        "NYK Failures",
		Tags:        []string{"Python", "R", "EDA"},
		Description: "Uncovering and addressing the New York Knicks' struggles while providing actionable solutions for the future. 🏀",
		Img:         "/assets/nyklogo.png",
		GitHub:      "https://github.com/danielliu2707/NYK_Failures",
		Demo:        "https://drive.google.com/file/d/1OBnAP1nrQ0fHDhyn8HT1saRg5REImPkD/view?usp=sharing",
	},
	{
		ID:          "tunebuild",
		Name:        "TuneBuild",
		Tags:        []string{"Python", "Machine Learning", "Flask"},
		Description: "A developer only app that generates Spotify playlists tailored to your music taste. 🎶",
		Img:         "/assets/tunebuildlogo.png",
		GitHub:      "https://github.com/danielliu2707/TuneBuild/tree/main",
	},
}

// Projects returns the portfolio entries in display order.
func Projects() []Project {
	pp := make([]Project, len(projects))
	for i, p := range projects {
		p.Tags = slices.Clone(p.Tags)
		pp[i] = p
	}
	return pp
}

// ProjectByID looks up a project by its routing key.
func ProjectByID(id string) (Project, bool) {
	for _, p := range Projects() {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
