package gazette

import "strings"

// path fragments that mark section indexes and other listing pages
// rather than stories
var navigationMarkers = []string{
	"/news/",
	"/category/",
	"/tag/",
	"/author/",
	"/page/",
	"/section/",
}

// drops records that look like site navigation. both conditions must
// hold: a title of at most two words on its own is not enough to
// drop, the url must also contain a listing-page marker.
func FilterNavigation(articles []Article) []Article {
	var out []Article
	for _, a := range articles {
		if isNavigation(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func isNavigation(a Article) bool {
	if len(strings.Fields(a.Title)) > 2 {
		return false
	}
	for _, marker := range navigationMarkers {
		if strings.Contains(a.Url, marker) {
			return true
		}
	}
	return false
}

// collapses articles sharing a url. the kept slot takes the position
// of the first occurrence and the title of the last occurrence seen.
func Deduplicate(articles []Article) []Article {
	seen := make(map[string]int, len(articles))
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if at, ok := seen[a.Url]; ok {
			out[at].Title = a.Title
			continue
		}
		seen[a.Url] = len(out)
		out = append(out, a)
	}
	return out
}

// the navigation filter runs before dedup so a filtered entry can
// never claim a url's position
func Normalize(articles []Article) []Article {
	return Deduplicate(FilterNavigation(articles))
}
