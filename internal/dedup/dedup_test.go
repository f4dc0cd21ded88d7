package dedup

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"rss_digest/internal/model"
)

var now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

var sortStrings = cmpopts.SortSlices(func(a, b string) bool { return a < b })

func TestDedupe(t *testing.T) {
	tests := []struct {
		name      string
		items     []model.Item
		seen      map[string]model.SeenRecord
		wantURLs  []string
		wantStore []string
	}{
		{
			name: "new items pass through with normalized urls",
			items: []model.Item{
				{Title: "A", URL: "HTTPS://Example.com/a", Source: "example.com"},
				{Title: "B", URL: "https://example.com/b", Source: "example.com"},
			},
			seen:      map[string]model.SeenRecord{},
			wantURLs:  []string{"https://example.com/a", "https://example.com/b"},
			wantStore: []string{"https://example.com/a", "https://example.com/b"},
		},
		{
			name: "already seen urls dropped",
			items: []model.Item{
				{Title: "A", URL: "https://Example.com/a?x=1", Source: "example.com"},
			},
			seen: map[string]model.SeenRecord{
				"https://example.com/a?x=1": {Title: "A", Source: "example.com", FirstSeen: now.Add(-24 * time.Hour)},
			},
			wantURLs:  nil,
			wantStore: []string{"https://example.com/a?x=1"},
		},
		{
			name: "different scheme is not a duplicate",
			items: []model.Item{
				{Title: "A", URL: "http://example.com/a?x=1", Source: "example.com"},
			},
			seen: map[string]model.SeenRecord{
				"https://example.com/a?x=1": {Title: "A", Source: "example.com", FirstSeen: now.Add(-24 * time.Hour)},
			},
			wantURLs:  []string{"http://example.com/a?x=1"},
			wantStore: []string{"http://example.com/a?x=1", "https://example.com/a?x=1"},
		},
		{
			name: "first occurrence wins within a batch",
			items: []model.Item{
				{Title: "first", URL: "https://example.com/a", Source: "example.com"},
				{Title: "second", URL: "HTTPS://EXAMPLE.COM/a", Source: "example.com"},
			},
			seen:      map[string]model.SeenRecord{},
			wantURLs:  []string{"https://example.com/a"},
			wantStore: []string{"https://example.com/a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &model.SeenState{SeenURLs: tt.seen}
			got := Dedupe(tt.items, state, now)

			var gotURLs []string
			for _, item := range got {
				gotURLs = append(gotURLs, item.URL)
			}
			if diff := cmp.Diff(tt.wantURLs, gotURLs); diff != "" {
				t.Errorf("new item URLs mismatch (-want +got):\n%s", diff)
			}

			var gotStore []string
			for url := range state.SeenURLs {
				gotStore = append(gotStore, url)
			}
			if diff := cmp.Diff(tt.wantStore, gotStore, sortStrings); diff != "" {
				t.Errorf("store keys mismatch (-want +got):\n%s", diff)
			}

			if state.LastRun == nil || !state.LastRun.Equal(now) {
				t.Errorf("LastRun = %v, want %v", state.LastRun, now)
			}
		})
	}
}

func TestDedupeKeepsFirstSeenSnapshot(t *testing.T) {
	state := model.NewSeenState()
	first := []model.Item{{Title: "original title", URL: "https://example.com/a", Source: "example.com"}}
	Dedupe(first, state, now)

	later := now.Add(48 * time.Hour)
	second := []model.Item{{Title: "renamed title", URL: "https://example.com/a", Source: "elsewhere"}}
	if got := Dedupe(second, state, later); len(got) != 0 {
		t.Fatalf("expected repeat URL to be dropped, got %d items", len(got))
	}

	want := model.SeenRecord{Title: "original title", Source: "example.com", FirstSeen: now}
	if diff := cmp.Diff(want, state.SeenURLs["https://example.com/a"]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if state.LastRun == nil || !state.LastRun.Equal(later) {
		t.Errorf("LastRun = %v, want %v", state.LastRun, later)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	items := []model.Item{
		{Title: "A", URL: "https://example.com/a", Source: "example.com"},
		{Title: "B", URL: "https://example.com/b", Source: "example.com"},
	}

	state := model.NewSeenState()
	if got := Dedupe(items, state, now); len(got) != 2 {
		t.Fatalf("first pass: expected 2 new items, got %d", len(got))
	}
	if got := Dedupe(items, state, now.Add(time.Hour)); len(got) != 0 {
		t.Fatalf("second pass: expected 0 new items, got %d", len(got))
	}
}
