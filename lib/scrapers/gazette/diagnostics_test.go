package gazette

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"newsdesk-backend/lib/kv"
	"newsdesk-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestRecordOverwritesBoundedSnapshots(t *testing.T) {
	store, err := kv.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	recorder := NewRecorder(store)

	page := "<html><body>" + strings.Repeat("<article><h2><a href=\"/stories/x\">A Story Headline</a></h2></article>", 20) + "</body></html>"
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	doc := Document{
		Body:       []byte(page),
		StatusCode: 200,
		FetchedAt:  timezone.Now(),
	}
	articles := make([]Article, 30)
	for i := range articles {
		articles[i] = Article{Title: "A Story Headline", Url: "/stories/" + strconv.Itoa(i)}
	}

	recorder.Record(ctx, doc, parsed, articles)

	html, ok, err := store.Get(ctx, KeyDebugHtml)
	require.NoError(t, err)
	require.True(t, ok)
	require.LessOrEqual(t, len(html), 3000)
	require.True(t, strings.HasPrefix(page, html))

	rawMatches, ok, err := store.Get(ctx, KeyDebugMatches)
	require.NoError(t, err)
	require.True(t, ok)
	var matches []string
	require.NoError(t, json.Unmarshal([]byte(rawMatches), &matches))
	require.Len(t, matches, 5)
	require.Contains(t, matches[0], "<article>")

	rawArticles, ok, err := store.Get(ctx, KeyDebugArticles)
	require.NoError(t, err)
	require.True(t, ok)
	var sampled []Article
	require.NoError(t, json.Unmarshal([]byte(rawArticles), &sampled))
	require.Len(t, sampled, 10)

	rawStamp, ok, err := store.Get(ctx, KeyDebugTimestamp)
	require.NoError(t, err)
	require.True(t, ok)
	stamp, err := strconv.ParseInt(rawStamp, 10, 64)
	require.NoError(t, err)
	require.Equal(t, doc.FetchedAt.Unix(), stamp)

	// a second run replaces every slot instead of accumulating
	later := Document{
		Body:       []byte("<html><body>empty</body></html>"),
		StatusCode: 200,
		FetchedAt:  doc.FetchedAt.Add(1),
	}
	laterParsed, err := goquery.NewDocumentFromReader(strings.NewReader(string(later.Body)))
	require.NoError(t, err)
	recorder.Record(ctx, later, laterParsed, nil)

	html, _, err = store.Get(ctx, KeyDebugHtml)
	require.NoError(t, err)
	require.Equal(t, string(later.Body), html)

	rawMatches, _, err = store.Get(ctx, KeyDebugMatches)
	require.NoError(t, err)
	require.Equal(t, "[]", rawMatches)
}

func TestRecordFailedFetchKeepsBody(t *testing.T) {
	store, err := kv.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	recorder := NewRecorder(store)

	doc := Document{
		Body:       []byte("<html>access denied</html>"),
		StatusCode: 403,
		FetchedAt:  timezone.Now(),
	}
	recorder.RecordFailedFetch(ctx, doc)

	html, ok, err := store.Get(ctx, KeyDebugHtml)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, string(doc.Body), html)
}
