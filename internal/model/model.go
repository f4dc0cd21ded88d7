// Package model defines the domain types used across the application.
package model

import "time"

// Item is the unit flowing through the pipeline. Feed entries and seed
// URLs both produce Items; the Deduplicator rewrites URL to its
// normalized form once an item passes deduplication.
type Item struct {
	Title     string
	URL       string
	Source    string
	Published *time.Time
}

// SeenRecord is the snapshot stored for a normalized URL the first time
// it is seen. Title and Source are not updated on later encounters.
type SeenRecord struct {
	Title     string
	Source    string
	FirstSeen time.Time
}

// SeenState is the persisted seen store: every normalized URL ever
// emitted, plus the timestamp of the most recent completed run. It is
// loaded once per run, mutated in memory, and saved back wholesale.
type SeenState struct {
	SeenURLs map[string]SeenRecord
	LastRun  *time.Time
}

// NewSeenState returns an empty state with an initialized map.
func NewSeenState() *SeenState {
	return &SeenState{SeenURLs: make(map[string]SeenRecord)}
}
