package posts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs
}

func TestIndex(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"posts/old.md": `---
title: Old Post
date: 2022-01-02
tags: [sql, databricks]
---

# Heading

The **first** paragraph of the old post.

The second paragraph.
`,
		"posts/new/index.md": `---
title: New Post
date: "2024-05-06T10:00:00Z"
summary: Custom summary.
image: /assets/new.png
---
Body.
`,
		"posts/draft.md": `---
title: Draft
date: 2025-01-01
draft: true
---
Not yet.
`,
		"posts/notes.txt": "ignored",
	})

	idx := NewIndex(fs, Options{})
	s, err := idx.Snapshot()
	require.NoError(t, err)
	require.Len(t, s.Posts, 2)

	assert.Equal(t, "new", s.Posts[0].Slug)
	assert.Equal(t, "/new/", s.Posts[0].Path)
	assert.Equal(t, "Custom summary.", s.Posts[0].Summary)
	assert.Equal(t, "/assets/new.png", s.Posts[0].Image)
	assert.Equal(t, time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC), s.Posts[0].Date.UTC())

	assert.Equal(t, "old", s.Posts[1].Slug)
	assert.Equal(t, "Old Post", s.Posts[1].Title)
	assert.Equal(t, []string{"sql", "databricks"}, s.Posts[1].Tags)
	assert.Equal(t, "The first paragraph of the old post.", s.Posts[1].Summary)
	assert.Contains(t, string(s.Posts[1].Content), "<strong>first</strong>")

	_, ok := s.Post("draft")
	assert.False(t, ok)

	p, ok := s.Post("old")
	require.True(t, ok)
	assert.Equal(t, "Old Post", p.Title)

	assert.Len(t, s.Recent(1), 1)
	assert.Len(t, s.Recent(10), 2)
}

func TestSnapshotSection(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"posts/courses/thoughtspot.md": "---\ntitle: ThoughtSpot\ndate: 2023-01-01\n---\nA.\n",
		"posts/courses/databricks.md":  "---\ntitle: Databricks\ndate: 2023-02-01\n---\nB.\n",
		"posts/coursework.md":          "---\ntitle: Coursework\n---\nC.\n",
	})

	s, err := NewIndex(fs, Options{}).Snapshot()
	require.NoError(t, err)

	section := s.Section("/courses/")
	require.Len(t, section, 2)
	assert.Equal(t, "courses/databricks", section[0].Slug)
	assert.Equal(t, "courses/thoughtspot", section[1].Slug)

	assert.Empty(t, s.Section("/"))
	assert.Empty(t, s.Section("nope"))

	_, ok := s.Post("courses/thoughtspot")
	assert.True(t, ok)
}

func TestIndexDrafts(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"posts/draft.md": "---\ntitle: Draft\ndraft: true\n---\nNot yet.\n",
	})

	s, err := NewIndex(fs, Options{IncludeDrafts: true}).Snapshot()
	require.NoError(t, err)
	require.Len(t, s.Posts, 1)
	assert.True(t, s.Posts[0].Draft)
}

func TestIndexJSON(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"posts/hello.md": "---\ntitle: Hello\ndate: 2023-03-04\n---\nHello world.\n",
	})

	data, err := NewIndex(fs, Options{}).JSON()
	require.NoError(t, err)

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded["posts"], 1)
	assert.Equal(t, "hello", decoded["posts"][0]["slug"])
	assert.Equal(t, "Hello world.", decoded["posts"][0]["summary"])
	assert.NotContains(t, decoded["posts"][0], "updated")
	assert.NotContains(t, decoded["posts"][0], "Content")
}

func TestIndexEmpty(t *testing.T) {
	data, err := NewIndex(afero.NewMemMapFs(), Options{}).JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"posts": []}`, string(data))
}

func TestIndexCacheAndInvalidate(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"posts/a.md": "---\ntitle: A\n---\nA.\n",
	})

	idx := NewIndex(fs, Options{})
	s, err := idx.Snapshot()
	require.NoError(t, err)
	require.Len(t, s.Posts, 1)

	require.NoError(t, afero.WriteFile(fs, "posts/b.md", []byte("---\ntitle: B\n---\nB.\n"), 0644))

	s, err = idx.Snapshot()
	require.NoError(t, err)
	assert.Len(t, s.Posts, 1, "snapshot should be served from cache")

	idx.Invalidate()
	s, err = idx.Snapshot()
	require.NoError(t, err)
	assert.Len(t, s.Posts, 2)
}

func TestIndexErrors(t *testing.T) {
	tests := []struct {
		title   string
		content string
	}{
		{title: "No Front Matter", content: "Just text.\n"},
		{title: "Unterminated Front Matter", content: "---\ntitle: x\n"},
		{title: "Bad YAML", content: "---\ntitle: [\n---\nx\n"},
		{title: "Bad Date", content: "---\ntitle: x\ndate: not a date\n---\nx\n"},
	}

	for _, tt := range tests {
		fs := writeFiles(t, map[string]string{"posts/bad.md": tt.content})
		_, err := NewIndex(fs, Options{}).Snapshot()
		assert.Error(t, err, "failed for title: %s", tt.title)
	}
}

func TestSlugFromName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello-world.md", "hello-world"},
		{"hello-world/index.md", "hello-world"},
		{"2024/trip.md", "2024/trip"},
		{"index.md", "index"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, slugFromName(tt.input), "failed for input: %s", tt.input)
	}
}

func TestSummarize(t *testing.T) {
	md := newMarkdown()

	tests := []struct {
		title    string
		input    string
		expected string
	}{
		{
			title:    "Plain Text",
			input:    "Hello, World!",
			expected: "Hello, World!",
		},
		{
			title:    "Skips Headings And Code",
			input:    "# Title\n\n```go\nx := 1\n```\n\nReal *content* & more.",
			expected: "Real content & more.",
		},
		{
			title:    "Link Text",
			input:    "See [my site](https://example.com).",
			expected: "See my site.",
		},
		{
			title:    "Empty",
			input:    "# Only a heading",
			expected: "",
		},
	}

	for _, tt := range tests {
		got, err := summarize(md, []byte(tt.input))
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "failed for title: %s", tt.title)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abc", 2))
}
