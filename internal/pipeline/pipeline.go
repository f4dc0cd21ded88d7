// Package pipeline sequences one fetch-dedupe-digest run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rss_digest/internal/config"
	"rss_digest/internal/dedup"
	"rss_digest/internal/digest"
	"rss_digest/internal/fetcher"
	"rss_digest/internal/model"
	"rss_digest/internal/storage"
)

// ErrNoSources is returned when both source lists are empty; it is the
// only error that should abort the process.
var ErrNoSources = errors.New("no RSS sources or seed URLs configured")

// Pipeline runs the fetch-dedupe-digest sequence for a single invocation.
type Pipeline struct {
	cfg     *config.Config
	store   storage.Storage
	fetcher *fetcher.Fetcher
	log     *slog.Logger
	now     func() time.Time
}

// New creates a Pipeline.
func New(cfg *config.Config, store storage.Storage, f *fetcher.Fetcher, log *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		store:   store,
		fetcher: f,
		log:     log,
		now:     time.Now,
	}
}

// SetClock overrides the time source (useful for testing).
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Run executes one complete run: load source lists, fetch each feed
// sequentially, load seed URLs, deduplicate against the seen store,
// persist the store exactly once, and write the day's digest. A feed
// that still fails after its retry contributes zero items; only the
// no-sources condition returns an error.
func (p *Pipeline) Run(ctx context.Context) error {
	feeds, err := config.ReadSourceList(p.cfg.RSSSourcesFile)
	if err != nil {
		return err
	}
	seeds, err := config.ReadSourceList(p.cfg.SeedURLsFile)
	if err != nil {
		return err
	}
	if len(feeds) == 0 && len(seeds) == 0 {
		return ErrNoSources
	}

	state, err := p.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load seen store: %w", err)
	}

	var items []model.Item
	for _, feedURL := range feeds {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		got, err := p.fetcher.Fetch(ctx, feedURL)
		if err != nil {
			p.log.Error("fetch feed", "url", feedURL, "error", err)
			continue
		}
		p.log.Debug("fetched feed", "url", feedURL, "items", len(got))
		items = append(items, got...)
	}
	items = append(items, fetcher.LoadSeeds(seeds)...)

	now := p.now().UTC()
	fresh := dedup.Dedupe(items, state, now)

	if err := p.store.Save(ctx, state); err != nil {
		return fmt.Errorf("save seen store: %w", err)
	}

	doc := digest.Render(fresh, p.cfg.DigestTitle, now)
	path, err := digest.Write(p.cfg.DigestsDir, now, doc)
	if err != nil {
		return err
	}

	p.log.Info("run complete", "feeds", len(feeds), "seeds", len(seeds), "new_items", len(fresh), "digest", path)
	return nil
}
