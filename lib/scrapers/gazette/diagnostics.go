package gazette

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"newsdesk-backend/lib/kv"

	"github.com/PuerkitoBio/goquery"
)

const (
	KeyDebugHtml      = "debug:html"
	KeyDebugMatches   = "debug:matches"
	KeyDebugArticles  = "debug:articles"
	KeyDebugTimestamp = "debug:timestamp"
)

// bounds keep every snapshot small enough to eyeball in a kv browser
const (
	htmlSnapshotBytes    = 3000
	matchSnapshotCount   = 5
	articleSnapshotCount = 10
)

// Recorder persists a fixed set of named snapshots describing the
// latest run. every slot is overwritten each time, no history is
// kept. a failed write is logged and otherwise ignored, diagnostics
// never block a run from returning its articles.
type Recorder struct {
	store kv.Store
}

func NewRecorder(store kv.Store) Recorder {
	return Recorder{store: store}
}

func (r Recorder) put(ctx context.Context, key, value string) {
	err := r.store.Put(ctx, key, value)
	if err != nil {
		slog.WarnContext(ctx, "failed to write diagnostic snapshot", "key", key, "err", err)
	}
}

func (r Recorder) Record(ctx context.Context, doc Document, parsed *goquery.Document, articles []Article) {
	ctx, span := tracer.Start(ctx, "recorder:Record")
	defer span.End()

	r.put(ctx, KeyDebugHtml, prefixBytes(doc.Body, htmlSnapshotBytes))
	r.put(ctx, KeyDebugMatches, encodeJson(containerSamples(parsed, matchSnapshotCount)))

	sample := articles
	if len(sample) > articleSnapshotCount {
		sample = sample[:articleSnapshotCount]
	}
	r.put(ctx, KeyDebugArticles, encodeJson(sample))
	r.put(ctx, KeyDebugTimestamp, strconv.FormatInt(doc.FetchedAt.Unix(), 10))
}

// records what little there is to record when the upstream refused
// the fetch, so the failure can still be inspected afterwards
func (r Recorder) RecordFailedFetch(ctx context.Context, doc Document) {
	ctx, span := tracer.Start(ctx, "recorder:RecordFailedFetch")
	defer span.End()

	r.put(ctx, KeyDebugHtml, prefixBytes(doc.Body, htmlSnapshotBytes))
	r.put(ctx, KeyDebugTimestamp, strconv.FormatInt(doc.FetchedAt.Unix(), 10))
}

// a bounded sample of the structural matches the container strategy
// keys off of, kept as raw fragments since that is what you want to
// look at when the selectors stop matching
func containerSamples(parsed *goquery.Document, limit int) []string {
	samples := []string{}
	parsed.Find("article").EachWithBreak(func(i int, container *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		fragment, err := goquery.OuterHtml(container)
		if err != nil {
			return true
		}
		samples = append(samples, fragment)
		return true
	})
	return samples
}

func prefixBytes(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

func encodeJson(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(encoded)
}
