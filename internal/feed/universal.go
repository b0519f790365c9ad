package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"

	"newswatch/internal/model"
)

// UniversalAdapter handles RSS, Atom and JSON feeds through gofeed.
// It is the default for sources that follow their format's spec
// closely enough not to need the lenient hand-rolled parsers.
type UniversalAdapter struct{}

func (UniversalAdapter) Parse(data []byte) ([]model.Item, error) {
	f, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("feed: parse: %w", err)
	}

	items := make([]model.Item, 0, len(f.Items))
	for _, src := range f.Items {
		it := model.Item{
			Title:       NormalizeText(src.Title),
			Link:        src.Link,
			Description: NormalizeText(src.Description),
			PubDateRaw:  src.Published,
		}
		if len(src.Authors) > 0 && src.Authors[0] != nil {
			it.Author = NormalizeText(src.Authors[0].Name)
		}
		if src.PublishedParsed != nil {
			t := src.PublishedParsed.UTC()
			it.PubDate = &t
		}
		if src.Image != nil {
			it.Image = src.Image.URL
		} else if len(src.Enclosures) > 0 && src.Enclosures[0] != nil {
			it.Image = src.Enclosures[0].URL
		}
		items = append(items, it)
	}
	return items, nil
}
