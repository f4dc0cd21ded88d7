// Package dedup filters fetched items against the seen store.
package dedup

import (
	"time"

	"rss_digest/internal/model"
	"rss_digest/internal/urlnorm"
)

// Dedupe returns the items whose normalized URL is not yet in the
// state, in input order. New items get their URL rewritten to the
// normalized form and a SeenRecord inserted with now as the first-seen
// time, so a URL repeated within one batch survives only once. The
// state's LastRun is set to now whether or not anything was new; the
// caller must persist the mutated state.
func Dedupe(items []model.Item, state *model.SeenState, now time.Time) []model.Item {
	if state.SeenURLs == nil {
		state.SeenURLs = make(map[string]model.SeenRecord)
	}

	var fresh []model.Item
	for _, item := range items {
		key := urlnorm.Normalize(item.URL)
		if _, seen := state.SeenURLs[key]; seen {
			continue
		}
		state.SeenURLs[key] = model.SeenRecord{
			Title:     item.Title,
			Source:    item.Source,
			FirstSeen: now,
		}
		item.URL = key
		fresh = append(fresh, item)
	}

	state.LastRun = &now
	return fresh
}
