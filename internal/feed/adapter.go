// Package feed turns raw fetched payloads into normalized items. Each
// adapter is a pure function over a complete buffer; the pipeline
// depends only on the Adapter contract, never on per-source logic.
package feed

import (
	"fmt"
	"sort"

	"newswatch/internal/model"
)

// Adapter parses one fetched payload into items. An error means the
// payload was not even parseable as the expected container format;
// zero items is a valid, non-error outcome.
type Adapter interface {
	Parse(data []byte) ([]model.Item, error)
}

var registry = map[string]Adapter{
	"rss":       RSSAdapter{},
	"atom":      AtomAdapter{},
	"universal": UniversalAdapter{},
}

// Lookup resolves a configured adapter name.
func Lookup(name string) (Adapter, error) {
	a, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("feed: unknown adapter %q (have %v)", name, Names())
	}
	return a, nil
}

// Names lists registered adapter names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
