// Package relevance rates feed items against a feed-specific question
// through an LLM call, under a process-wide concurrency gate.
package relevance

import (
	"context"
	"fmt"

	"newswatch/internal/model"
)

// Scorer produces a relevance verdict for one item's text. prompt is
// the feed-specific question injected verbatim ahead of the text.
type Scorer interface {
	Score(ctx context.Context, prompt, text string) (model.Evaluation, error)
}

// ScoreError reports a scoring call that failed after exhausting its
// retry budget. It affects only the item it belongs to.
type ScoreError struct {
	Attempts int
	Err      error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("relevance: scoring failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ScoreError) Unwrap() error { return e.Err }
