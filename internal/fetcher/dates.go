package fetcher

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
)

// ResolveDate extracts a best-effort publication time for a feed entry,
// in UTC. Candidates are tried in order: published, updated, created;
// the first that parses wins. A candidate that fails to parse never
// blocks the next one. Returns nil when no candidate parses; naive
// timestamps are assumed UTC.
func ResolveDate(entry *gofeed.Item) *time.Time {
	candidates := []struct {
		parsed *time.Time
		raw    string
	}{
		{entry.PublishedParsed, entry.Published},
		{entry.UpdatedParsed, entry.Updated},
		{nil, entry.Custom["created"]},
	}

	for _, c := range candidates {
		if c.parsed != nil {
			t := c.parsed.UTC()
			return &t
		}
		if c.raw == "" {
			continue
		}
		if t, err := dateparse.ParseIn(c.raw, time.UTC); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
