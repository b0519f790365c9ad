package feed

import (
	"testing"
	"time"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips tags and decodes entities",
			in:   "<p>Two companies &amp; a deal</p>",
			want: "Two companies & a deal",
		},
		{
			name: "folds smart punctuation",
			in:   "“Great” — isn’t it…",
			want: `"Great" - isn't it...`,
		},
		{
			name: "collapses whitespace and nbsp",
			in:   "one two   three\n\nfour",
			want: "one two three four",
		},
		{
			name: "empty stays empty",
			in:   "   ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "rfc1123 with numeric zone",
			in:     "Fri, 02 Jan 2026 12:00:00 +0300",
			want:   time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "rfc1123 gmt",
			in:     "Thu, 01 Jan 2026 01:00:00 GMT",
			want:   time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "iso8601",
			in:     "2026-01-02T00:00:00Z",
			want:   time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "colon offset variant",
			in:     "Fri, 02 Jan 2026 12:00:00 +03:00",
			want:   time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name: "garbage is absent, not guessed",
			in:   "sometime last week",
		},
		{
			name: "empty",
			in:   "  ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
