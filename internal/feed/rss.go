package feed

import (
	"encoding/xml"
	"fmt"
	"strings"

	"newswatch/internal/model"
)

// xmlNode is a permissive element tree. Lookups match on local names
// only, so namespaced variants (media:content, dc:creator) resolve the
// same way as plain ones.
type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Text    string     `xml:",chardata"`
	Nodes   []xmlNode  `xml:",any"`
}

func (n *xmlNode) child(name string) *xmlNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

func (n *xmlNode) children(name string) []*xmlNode {
	var out []*xmlNode
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// text returns the first non-empty trimmed text among children named
// by any of the given local names, tried in order.
func (n *xmlNode) text(names ...string) string {
	for _, name := range names {
		for _, c := range n.children(name) {
			if s := strings.TrimSpace(c.Text); s != "" {
				return s
			}
		}
	}
	return ""
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// RSSAdapter parses RSS 2.0 and close-enough dialects. Entry discovery
// is lenient: <channel><item> first, then the most frequent repeated
// child tag of the container, so near-RSS custom XML still yields items.
type RSSAdapter struct{}

func (RSSAdapter) Parse(data []byte) ([]model.Item, error) {
	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("feed: parse rss: %w", err)
	}

	container := &root
	if ch := root.child("channel"); ch != nil {
		container = ch
	}
	entries := container.children("item")
	if len(entries) == 0 {
		entries = mostFrequentChildren(container)
	}

	items := make([]model.Item, 0, len(entries))
	for _, e := range entries {
		raw := e.text("pubDate", "published", "updated", "date")
		it := model.Item{
			Title:       NormalizeText(e.text("title", "headline", "name")),
			Link:        e.text("link", "url", "guid"),
			Description: NormalizeText(e.text("description", "summary", "subtitle")),
			Author:      NormalizeText(e.text("author", "creator")),
			Image:       entryImage(e),
			PubDateRaw:  raw,
		}
		if t, ok := ParseDate(raw); ok {
			it.PubDate = &t
		}
		items = append(items, it)
	}
	return items, nil
}

// mostFrequentChildren falls back to the dominant repeated tag when the
// container carries no <item> elements. A tag must repeat to qualify;
// singleton metadata like <title> never becomes an entry.
func mostFrequentChildren(container *xmlNode) []*xmlNode {
	counts := map[string]int{}
	for i := range container.Nodes {
		counts[container.Nodes[i].XMLName.Local]++
	}
	top, topCount := "", 1
	for tag, c := range counts {
		if c > topCount {
			top, topCount = tag, c
		}
	}
	if top == "" {
		return nil
	}
	return container.children(top)
}

// entryImage pulls the first usable image reference from the common
// carriers: <image>, media:content, media:thumbnail, <enclosure>.
func entryImage(e *xmlNode) string {
	for _, name := range []string{"image", "content", "thumbnail", "enclosure"} {
		for _, c := range e.children(name) {
			if u := c.attr("url"); u != "" {
				return u
			}
			if s := strings.TrimSpace(c.Text); s != "" {
				return s
			}
		}
	}
	return ""
}
