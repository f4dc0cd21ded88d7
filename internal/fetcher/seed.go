package fetcher

import (
	"rss_digest/internal/model"
	"rss_digest/internal/urlnorm"
)

// LoadSeeds converts bare seed URLs into minimal items without any
// network access. The URL doubles as the title and the publication
// date is unknown.
func LoadSeeds(urls []string) []model.Item {
	items := make([]model.Item, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		items = append(items, model.Item{
			Title:  u,
			URL:    u,
			Source: urlnorm.HostLabel(u),
		})
	}
	return items
}
