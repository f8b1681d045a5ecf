package gazette

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const containersPage = `<html><body>
<nav><a href="/news/">News</a></nav>
<article class="story">
	<h2 class="story-title"><a href="/stories/city-budget">City Budget Passes</a></h2>
	<p>The council voted 5-2 on Tuesday.</p>
</article>
<article class="story">
	<h2 class="story-title"><a href="/stories/river-cleanup">River Cleanup Begins</a></h2>
</article>
<article class="teaser">
	<h3>Teaser Without A Link</h3>
</article>
<article class="promo">
	<a href="/stories/promo">&nbsp;</a>
</article>
</body></html>`

const headingsPage = `<html><body>
<div class="feed">
	<h2 class="story-title"><a href="/stories/school-bond">School Bond On Ballot</a></h2>
	<a href="/stories/school-bond-photos"><h3 class="story-title">Bond Rally In Photos</h3></a>
	<h3 class="story-title">Headline Missing Its Link</h3>
</div>
</body></html>`

const broadPage = `<html><body>
<div class="legacy-layout">
	<h3><a href="/stories/harbor-fire">Harbor Fire Contained</a></h3>
	<h4><a href="/stories/ferry-delays">Ferry Delays Expected</a></h4>
	<h5>No Link At All</h5>
</div>
</body></html>`

const emptyPage = `<html><body><p>nothing to see</p></body></html>`

func parsePage(t *testing.T, page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func testClient(t *testing.T) *Client {
	client, err := NewClient(context.Background(), ClientOptions{
		BaseUrl: "https://gazette.test",
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

// wraps each strategy so its invocations can be counted
func countedStrategies(client *Client, calls []int) []Strategy {
	strategies := client.Strategies()
	wrapped := make([]Strategy, len(strategies))
	for i, strat := range strategies {
		i, strat := i, strat
		wrapped[i] = Strategy{
			Name: strat.Name,
			Extract: func(doc *goquery.Document) []Article {
				calls[i]++
				return strat.Extract(doc)
			},
		}
	}
	return wrapped
}

func TestFirstStrategyWinsAndStopsChain(t *testing.T) {
	client := testClient(t)
	doc := parsePage(t, containersPage)

	calls := make([]int, 3)
	got := Extract(context.Background(), doc, countedStrategies(client, calls))

	require.Equal(t, client.extractContainers(doc), got)
	require.Equal(t, []int{1, 0, 0}, calls)
}

func TestBroadFallbackRunsLast(t *testing.T) {
	client := testClient(t)
	doc := parsePage(t, broadPage)

	calls := make([]int, 3)
	got := Extract(context.Background(), doc, countedStrategies(client, calls))

	require.Equal(t, []int{1, 1, 1}, calls)
	require.Equal(t, []Article{
		{Title: "Harbor Fire Contained", Url: "https://gazette.test/stories/harbor-fire"},
		{Title: "Ferry Delays Expected", Url: "https://gazette.test/stories/ferry-delays"},
	}, got)
}

func TestAllStrategiesEmptyIsValid(t *testing.T) {
	client := testClient(t)
	doc := parsePage(t, emptyPage)

	calls := make([]int, 3)
	got := Extract(context.Background(), doc, countedStrategies(client, calls))

	require.Empty(t, got)
	require.Equal(t, []int{1, 1, 1}, calls)
}

func TestContainersSkipMalformedEntries(t *testing.T) {
	client := testClient(t)
	doc := parsePage(t, containersPage)

	got := client.extractContainers(doc)
	require.Equal(t, []Article{
		{Title: "City Budget Passes", Url: "https://gazette.test/stories/city-budget"},
		{Title: "River Cleanup Begins", Url: "https://gazette.test/stories/river-cleanup"},
	}, got)
}

func TestHeadingsFindAdjacentLinks(t *testing.T) {
	client := testClient(t)
	doc := parsePage(t, headingsPage)

	got := client.extractHeadings(doc)
	require.Equal(t, []Article{
		{Title: "School Bond On Ballot", Url: "https://gazette.test/stories/school-bond"},
		{Title: "Bond Rally In Photos", Url: "https://gazette.test/stories/school-bond-photos"},
	}, got)
}

func TestHeadingsIgnoreContainerPage(t *testing.T) {
	client := testClient(t)

	require.Empty(t, client.extractHeadings(parsePage(t, broadPage)))
	require.Empty(t, client.extractBroad(parsePage(t, emptyPage)))
}
