// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"

	"rss_digest/internal/model"
)

// Storage persists the seen store between runs. Load reads the whole
// store into memory; Save replaces the persisted copy wholesale in a
// single transaction. A store that has never been saved loads as an
// empty state.
type Storage interface {
	Load(ctx context.Context) (*model.SeenState, error)
	Save(ctx context.Context, state *model.SeenState) error
	Close() error
}
