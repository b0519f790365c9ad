package model

import "time"

// Item is the normalized shape every feed adapter emits.
type Item struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description"`
	Author      string     `json:"author,omitempty"`
	Image       string     `json:"image,omitempty"`
	PubDate     *time.Time `json:"pub_date"`     // UTC; nil when the source date could not be parsed
	PubDateRaw  string     `json:"pub_date_raw"` // original rendering, kept for diagnostics
}

// Evaluation is the structured relevance verdict for one item.
type Evaluation struct {
	Score     int    `json:"score"`
	Reasoning string `json:"reasoning"`
}

// ScoredItem pairs an item with its relevance verdict.
type ScoredItem struct {
	Item       Item
	Evaluation Evaluation
}

// Batch holds the items that cleared the relevance threshold for one
// feed run, in the order they should appear in the notification body.
type Batch struct {
	Feed  string
	Items []ScoredItem
}
