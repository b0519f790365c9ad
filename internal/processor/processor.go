// Package processor orchestrates one feed's pipeline: fetch, parse,
// filter against the watermark, score, notify, advance the watermark.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"newswatch/internal/feed"
	"newswatch/internal/fetcher"
	"newswatch/internal/model"
	"newswatch/internal/notify"
	"newswatch/internal/relevance"
	"newswatch/internal/state"
)

// Feed is one configured feed with its adapter already resolved.
type Feed struct {
	Name    string
	URLs    []string
	Adapter feed.Adapter
	Prompt  string
}

// Fetcher retrieves raw payloads for a set of URLs.
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) []fetcher.Outcome
}

// Processor runs the per-feed pipeline. The scorer's concurrency gate
// is the only resource shared across feeds; everything else is keyed
// per feed.
type Processor struct {
	Fetcher   Fetcher
	Store     state.Store
	Scorer    relevance.Scorer
	Notifier  notify.Notifier
	Threshold int              // items must score strictly above this
	Now       func() time.Time // nil means time.Now
}

func (p *Processor) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

// Run executes one full pass for a feed. It never returns an error:
// failures below the feed boundary are contained and logged, anything
// unrecoverable becomes a best-effort critical alert, and the
// watermark always advances to the time captured at the start of the
// run so a slow run leaves no gap in the next filter window.
func (p *Processor) Run(ctx context.Context, f Feed) {
	start := p.now()
	slog.Info("processing feed", "feed", f.Name)

	func() {
		defer func() {
			if r := recover(); r != nil {
				p.reportCritical(ctx, f.Name, fmt.Errorf("panic: %v\n%s", r, debug.Stack()))
			}
		}()
		if err := p.runOnce(ctx, f); err != nil {
			p.reportCritical(ctx, f.Name, err)
		}
	}()

	if err := p.Store.Set(ctx, f.Name, start); err != nil {
		// The run's outcome stands; the risk is reprocessing this window.
		slog.Error("watermark write failed", "feed", f.Name, "err", err)
	} else {
		slog.Info("watermark advanced", "feed", f.Name, "to", state.FormatTime(start))
	}
}

func (p *Processor) runOnce(ctx context.Context, f Feed) error {
	last, haveLast, err := p.Store.Get(ctx, f.Name)
	if err != nil {
		return fmt.Errorf("load watermark: %w", err)
	}
	if haveLast {
		slog.Info("last run", "feed", f.Name, "at", state.FormatTime(last))
	} else {
		slog.Info("first run, no previous timestamp", "feed", f.Name)
	}

	outcomes := p.Fetcher.FetchAll(ctx, f.URLs)

	var items []model.Item
	for _, o := range outcomes {
		if o.Err != nil {
			slog.Error("fetch failed", "feed", f.Name, "url", o.URL, "err", o.Err)
			continue
		}
		parsed, err := f.Adapter.Parse(o.Body)
		if err != nil {
			slog.Error("parse failed", "feed", f.Name, "url", o.URL, "err", err)
			continue
		}
		items = append(items, parsed...)
	}

	fresh := FilterNew(items, last, haveLast)
	if len(fresh) == 0 {
		slog.Info("no new items", "feed", f.Name)
		return nil
	}
	slog.Info("new items found", "feed", f.Name, "count", len(fresh))

	results := p.scoreAll(ctx, f, fresh)

	batch := model.Batch{Feed: f.Name}
	for i, it := range fresh {
		if results[i].err != nil {
			slog.Error("scoring failed", "feed", f.Name, "title", it.Title, "err", results[i].err)
			continue
		}
		ev := results[i].eval
		if ev.Score > p.Threshold {
			slog.Info("relevant item", "feed", f.Name, "title", it.Title, "score", ev.Score)
			batch.Items = append(batch.Items, model.ScoredItem{Item: it, Evaluation: ev})
		}
	}
	if len(batch.Items) == 0 {
		return nil
	}

	subject := fmt.Sprintf("News Alert: %s", f.Name)
	if err := p.Notifier.Send(ctx, subject, FormatBody(batch)); err != nil {
		slog.Error("notification failed", "feed", f.Name, "err", err)
	}
	return nil
}

// FilterNew keeps items that carry a timestamp strictly after the
// watermark, newest first. Without a prior watermark every timestamped
// item counts as new. Items without a resolvable timestamp are never
// eligible; there is no safe way to compare them against the watermark.
func FilterNew(items []model.Item, last time.Time, haveLast bool) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.PubDate == nil {
			continue
		}
		if haveLast && !it.PubDate.After(last) {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PubDate.After(*out[j].PubDate)
	})
	return out
}

type scoreResult struct {
	eval model.Evaluation
	err  error
}

// scoreAll scores every item concurrently under the scorer's gate.
// Completion order is unordered; results land at the index of their
// originating item, so pairing is by identity, never by arrival.
func (p *Processor) scoreAll(ctx context.Context, f Feed, items []model.Item) []scoreResult {
	results := make([]scoreResult, len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ev, err := p.Scorer.Score(ctx, f.Prompt, items[i].Description)
			results[i] = scoreResult{eval: ev, err: err}
		}(i)
	}
	wg.Wait()
	return results
}

// FormatBody renders the notification body for a non-empty batch, in
// the batch's (timestamp-descending) order.
func FormatBody(b model.Batch) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d relevant articles in %s:\n\n", len(b.Items), b.Feed)
	for _, si := range b.Items {
		sb.WriteString("---\n")
		fmt.Fprintf(&sb, "Title: %s\n", si.Item.Title)
		fmt.Fprintf(&sb, "Link: %s\n", si.Item.Link)
		fmt.Fprintf(&sb, "Relevance Score: %d\n", si.Evaluation.Score)
		fmt.Fprintf(&sb, "Reasoning: %s\n\n", si.Evaluation.Reasoning)
	}
	return sb.String()
}

func (p *Processor) reportCritical(ctx context.Context, feedName string, cause error) {
	slog.Error("critical error processing feed", "feed", feedName, "err", cause)
	if p.Notifier == nil {
		return
	}
	subject := fmt.Sprintf("CRITICAL ERROR in newswatch: failed to process '%s'", feedName)
	body := fmt.Sprintf("newswatch failed to process the '%s' feed.\n\nError:\n%v\n", feedName, cause)
	if err := p.Notifier.Send(ctx, subject, body); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("failed to send critical-error alert", "feed", feedName, "err", err)
	}
}
