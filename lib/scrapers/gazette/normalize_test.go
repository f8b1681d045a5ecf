package gazette

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateKeepsFirstPositionLastTitle(t *testing.T) {
	in := []Article{
		{Title: "X", Url: "https://gazette.test/stories/a"},
		{Title: "Y", Url: "https://gazette.test/stories/b"},
		{Title: "Z", Url: "https://gazette.test/stories/a"},
	}
	want := []Article{
		{Title: "Z", Url: "https://gazette.test/stories/a"},
		{Title: "Y", Url: "https://gazette.test/stories/b"},
	}

	got := Deduplicate(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestDeduplicateIsIdempotent(t *testing.T) {
	in := []Article{
		{Title: "X", Url: "/a"},
		{Title: "Y", Url: "/b"},
		{Title: "Z", Url: "/a"},
		{Title: "W", Url: "/c"},
		{Title: "V", Url: "/b"},
	}

	once := Deduplicate(in)
	twice := Deduplicate(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatal(diff)
	}
}

func TestNavigationFilterNeedsBothConditions(t *testing.T) {
	cases := []struct {
		name    string
		article Article
		dropped bool
	}{
		{
			name:    "short title on a listing url",
			article: Article{Title: "News", Url: "/news/"},
			dropped: true,
		},
		{
			name:    "long title survives a marker url",
			article: Article{Title: "Breaking News Today", Url: "/news/123"},
			dropped: false,
		},
		{
			name:    "two word title on a category page",
			article: Article{Title: "Local Sports", Url: "/category/sports/"},
			dropped: true,
		},
		{
			name:    "short title on a story url",
			article: Article{Title: "Obituaries", Url: "/stories/obituaries-march"},
			dropped: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := FilterNavigation([]Article{c.article})
			if c.dropped {
				require.Empty(t, got)
			} else {
				require.Equal(t, []Article{c.article}, got)
			}
		})
	}
}

func TestNormalizeFiltersBeforeDedup(t *testing.T) {
	in := []Article{
		{Title: "News", Url: "/news/"},
		{Title: "Council Votes Tonight", Url: "/stories/council"},
		{Title: "Council Votes Again Tonight", Url: "/stories/council"},
	}
	want := []Article{
		{Title: "Council Votes Again Tonight", Url: "/stories/council"},
	}

	got := Normalize(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}
