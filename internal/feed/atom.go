package feed

import (
	"encoding/xml"
	"fmt"

	"newswatch/internal/model"
)

// AtomAdapter parses Atom feeds: <entry> elements, link targets in
// href attributes, <published> with <updated> as fallback.
type AtomAdapter struct{}

func (AtomAdapter) Parse(data []byte) ([]model.Item, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("feed: parse atom: %w", err)
	}

	entries := root.children("entry")
	items := make([]model.Item, 0, len(entries))
	for _, e := range entries {
		raw := e.text("published", "updated")
		it := model.Item{
			Title:       NormalizeText(e.text("title")),
			Link:        entryLink(e),
			Description: NormalizeText(e.text("summary", "content")),
			Author:      atomAuthor(e),
			PubDateRaw:  raw,
		}
		if t, ok := ParseDate(raw); ok {
			it.PubDate = &t
		}
		items = append(items, it)
	}
	return items, nil
}

// entryLink prefers the alternate (or untyped) link; any link is
// better than none.
func entryLink(e *xmlNode) string {
	links := e.children("link")
	for _, l := range links {
		rel := l.attr("rel")
		if rel == "" || rel == "alternate" {
			if h := l.attr("href"); h != "" {
				return h
			}
		}
	}
	for _, l := range links {
		if h := l.attr("href"); h != "" {
			return h
		}
	}
	return ""
}

func atomAuthor(e *xmlNode) string {
	if a := e.child("author"); a != nil {
		return NormalizeText(a.text("name"))
	}
	return ""
}
