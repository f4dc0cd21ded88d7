package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"rss_digest/internal/model"
)

var day = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

func datePtr(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		items []model.Item
		want  string
	}{
		{
			name:  "empty run",
			items: nil,
			want: "# Test Digest - 2024-06-01\n" +
				"\n" +
				"New items: 0\n" +
				"\n" +
				"No new articles.\n",
		},
		{
			name: "groups sorted case-insensitively, items newest first",
			items: []model.Item{
				{Title: "old", URL: "https://zeta.example.com/old", Source: "Zeta Blog", Published: datePtr("2024-01-01")},
				{Title: "new", URL: "https://zeta.example.com/new", Source: "Zeta Blog", Published: datePtr("2024-01-02")},
				{Title: "solo", URL: "https://alpha.example.com/solo", Source: "alpha.example.com", Published: datePtr("2024-03-01")},
			},
			want: "# Test Digest - 2024-06-01\n" +
				"\n" +
				"New items: 3\n" +
				"\n" +
				"## alpha.example.com\n" +
				"\n" +
				"- [solo](https://alpha.example.com/solo) (2024-03-01)\n" +
				"\n" +
				"## Zeta Blog\n" +
				"\n" +
				"- [new](https://zeta.example.com/new) (2024-01-02)\n" +
				"- [old](https://zeta.example.com/old) (2024-01-01)\n",
		},
		{
			name: "unknown dates sink and keep relative order",
			items: []model.Item{
				{Title: "first undated", URL: "https://a.example.com/1", Source: "a.example.com"},
				{Title: "dated", URL: "https://a.example.com/2", Source: "a.example.com", Published: datePtr("2024-01-01")},
				{Title: "second undated", URL: "https://a.example.com/3", Source: "a.example.com"},
			},
			want: "# Test Digest - 2024-06-01\n" +
				"\n" +
				"New items: 3\n" +
				"\n" +
				"## a.example.com\n" +
				"\n" +
				"- [dated](https://a.example.com/2) (2024-01-01)\n" +
				"- [first undated](https://a.example.com/1)\n" +
				"- [second undated](https://a.example.com/3)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.items, "Test Digest", day)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderAllUndated(t *testing.T) {
	items := []model.Item{
		{Title: "one", URL: "https://a.example.com/1", Source: "a.example.com"},
		{Title: "two", URL: "https://a.example.com/2", Source: "a.example.com"},
		{Title: "three", URL: "https://a.example.com/3", Source: "a.example.com"},
	}

	got := Render(items, "Test Digest", day)
	for _, title := range []string{"one", "two", "three"} {
		if !strings.Contains(got, "- ["+title+"]") {
			t.Errorf("missing item %q in digest:\n%s", title, got)
		}
	}
	if strings.Contains(got, ") (") {
		t.Errorf("undated items must not carry a date suffix:\n%s", got)
	}

	// Discovery order preserved when everything ties.
	one := strings.Index(got, "- [one]")
	two := strings.Index(got, "- [two]")
	three := strings.Index(got, "- [three]")
	if !(one < two && two < three) {
		t.Errorf("undated items reordered: positions %d %d %d\n%s", one, two, three, got)
	}
}

func TestRenderTrailingNewline(t *testing.T) {
	got := Render(nil, "Test Digest", day)
	if !strings.HasSuffix(got, "\n") || strings.HasSuffix(got, "\n\n") {
		t.Errorf("expected exactly one trailing newline, got %q", got)
	}
}
