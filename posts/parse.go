package posts

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	"github.com/karlseguin/typed"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	yaml "gopkg.in/yaml.v3"
)

const summaryLength = 200

var errNoFrontMatter = errors.New("missing front matter")

var htmlRemover = bluemonday.StrictPolicy()

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Footnote,
			extension.Typographer,
			extension.Linkify,
			extension.TaskList,
		),
	)
}

// parsePost parses a markdown file with YAML front matter. The slug is
// derived from the file name relative to the posts directory.
func parsePost(md goldmark.Markdown, name string, raw []byte) (*Post, error) {
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(raw, []byte("---\n")) {
		return nil, errNoFrontMatter
	}

	rest := append([]byte("\n"), raw[4:]...)
	splits := bytes.SplitN(rest, []byte("\n---"), 2)
	if len(splits) != 2 {
		return nil, errNoFrontMatter
	}

	fm := map[string]any{}
	err := yaml.Unmarshal(splits[0], &fm)
	if err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}
	meta := typed.New(fm)

	body := bytes.TrimSpace(splits[1])

	var content bytes.Buffer
	err = md.Convert(body, &content)
	if err != nil {
		return nil, err
	}

	slug := slugFromName(name)
	p := &Post{
		Slug:    slug,
		Path:    "/" + slug + "/",
		Title:   meta.String("title"),
		Tags:    meta.Strings("tags"),
		Summary: meta.String("summary"),
		Image:   meta.String("image"),
		Draft:   meta.Bool("draft"),
		Content: template.HTML(content.String()),
	}

	if p.Title == "" {
		p.Title = slug
	}

	p.Date, err = parseDate(fm["date"])
	if err != nil {
		return nil, fmt.Errorf("front matter date: %w", err)
	}

	p.Updated, err = parseDate(fm["updated"])
	if err != nil {
		return nil, fmt.Errorf("front matter updated: %w", err)
	}

	if p.Summary == "" {
		p.Summary, err = summarize(md, body)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return d, nil
	case string:
		if d == "" {
			return time.Time{}, nil
		}
		return dateparse.ParseAny(d)
	default:
		return time.Time{}, fmt.Errorf("unsupported value %v", v)
	}
}

// slugFromName turns "hello-world.md" and "hello-world/index.md" into
// "hello-world".
func slugFromName(name string) string {
	name = strings.TrimSuffix(path.Clean(name), path.Ext(name))
	if path.Base(name) == "index" && path.Dir(name) != "." {
		name = path.Dir(name)
	}
	return strings.Trim(name, "/")
}

// summarize returns the plain text of the first paragraph of a markdown body.
func summarize(md goldmark.Markdown, body []byte) (string, error) {
	var first []byte
	for _, block := range bytes.Split(body, []byte("\n\n")) {
		block = bytes.TrimSpace(block)
		if len(block) == 0 || block[0] == '#' || block[0] == '<' || bytes.HasPrefix(block, []byte("```")) {
			continue
		}
		first = block
		break
	}

	if first == nil {
		return "", nil
	}

	var buf bytes.Buffer
	err := md.Convert(first, &buf)
	if err != nil {
		return "", err
	}

	return truncate(makePlainText(buf.String()), summaryLength), nil
}

func makePlainText(text string) string {
	text = htmlRemover.Sanitize(text)
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "…"
}
