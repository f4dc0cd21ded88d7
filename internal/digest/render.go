// Package digest renders the daily digest document and writes it to disk.
package digest

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"rss_digest/internal/model"
)

const dateLayout = "2006-01-02"

// Render produces the markdown digest for one run: a titled header with
// the UTC date, a count line, and one section per source in
// case-insensitive ascending order. Items within a section are sorted
// newest first; items with no known date sink to the bottom, keeping
// their relative order. The result ends with exactly one newline.
func Render(items []model.Item, title string, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s - %s\n\n", title, date.UTC().Format(dateLayout))
	fmt.Fprintf(&b, "New items: %d\n", len(items))

	if len(items) == 0 {
		b.WriteString("\nNo new articles.\n")
		return finish(b.String())
	}

	groups := make(map[string][]model.Item)
	var sources []string
	for _, item := range items {
		if _, ok := groups[item.Source]; !ok {
			sources = append(sources, item.Source)
		}
		groups[item.Source] = append(groups[item.Source], item)
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return strings.ToLower(sources[i]) < strings.ToLower(sources[j])
	})

	for _, source := range sources {
		fmt.Fprintf(&b, "\n## %s\n\n", source)

		group := groups[source]
		sort.SliceStable(group, func(i, j int) bool {
			return pubTime(group[i]).After(pubTime(group[j]))
		})
		for _, item := range group {
			fmt.Fprintf(&b, "- [%s](%s)", item.Title, item.URL)
			if item.Published != nil {
				fmt.Fprintf(&b, " (%s)", item.Published.UTC().Format(dateLayout))
			}
			b.WriteString("\n")
		}
	}

	return finish(b.String())
}

// pubTime returns the sort key for an item; the zero time stands in for
// an unknown date so undated items order last.
func pubTime(item model.Item) time.Time {
	if item.Published == nil {
		return time.Time{}
	}
	return *item.Published
}

func finish(s string) string {
	return strings.TrimRight(s, " \t\n") + "\n"
}
