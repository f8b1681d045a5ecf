// Package digest runs the scheduled story-extraction worker: load the
// session credential, fetch the stories page, run the extraction
// chain, normalize, snapshot diagnostics and store the result.
package digest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"newsdesk-backend/lib/kv"
	"newsdesk-backend/lib/scrapers/gazette"
	"newsdesk-backend/lib/timezone"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/digest")

// the latest cleaned article set, stored so the site can serve it
// without triggering a scrape
const KeyLatestArticles = "articles:latest"

type Service struct {
	store      kv.Store
	sessions   gazette.SessionStore
	client     *gazette.Client
	recorder   gazette.Recorder
	strategies []gazette.Strategy
}

type Options struct {
	// defaults to the production stories page
	BaseUrl string
}

func NewService(ctx context.Context, store kv.Store, opts Options) (Service, error) {
	client, err := gazette.NewClient(ctx, gazette.ClientOptions{
		BaseUrl: opts.BaseUrl,
	})
	if err != nil {
		return Service{}, err
	}

	return Service{
		store:      store,
		sessions:   gazette.NewSessionStore(store),
		client:     client,
		recorder:   gazette.NewRecorder(store),
		strategies: client.Strategies(),
	}, nil
}

// one stateless invocation of fetch+extract+normalize. every run
// re-reads the credential from the store, nothing is carried over in
// process between invocations.
func (s Service) scrape(ctx context.Context) ([]gazette.Article, gazette.Document, error) {
	ctx, span := tracer.Start(ctx, "scrape")
	defer span.End()

	cred, err := s.sessions.Load(ctx)
	if err != nil {
		// no credential means no fetch attempt at all
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load session credential")
		return nil, gazette.Document{}, err
	}
	if cred.Stale(timezone.Now()) {
		slog.WarnContext(
			ctx, "session credential is stale, proceeding anyway",
			"updated_at", cred.UpdatedAt,
		)
		span.AddEvent("stale credential")
	}

	doc, err := s.client.Fetch(ctx, cred)
	if err != nil {
		// keep whatever body came back so the refusal can be inspected
		if doc.StatusCode != 0 {
			s.recorder.RecordFailedFetch(ctx, doc)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, doc, err
	}

	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse stories page")
		return nil, doc, err
	}

	extracted := gazette.Extract(ctx, parsed, s.strategies)
	articles := gazette.Normalize(extracted)
	span.SetAttributes(
		attribute.Int("extracted", len(extracted)),
		attribute.Int("kept", len(articles)),
	)

	s.recorder.Record(ctx, doc, parsed, articles)
	return articles, doc, nil
}

// Run executes one cycle and persists the cleaned article set. an
// empty set is a valid result and is stored like any other.
func (s Service) Run(ctx context.Context) ([]gazette.Article, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	articles, _, err := s.scrape(ctx)
	if err != nil {
		return nil, err
	}

	if articles == nil {
		articles = []gazette.Article{}
	}
	encoded, err := json.Marshal(articles)
	if err == nil {
		err = s.store.Put(ctx, KeyLatestArticles, string(encoded))
	}
	if err != nil {
		// storage trouble shouldn't eat a successful scrape
		slog.WarnContext(ctx, "failed to store latest articles", "err", err)
		span.RecordError(err)
	}

	slog.InfoContext(ctx, "scrape complete", "articles", len(articles))
	return articles, nil
}

// re-runs the worker on a fixed interval until the context closes
func (s Service) RunDaemon(ctx context.Context, interval time.Duration) {
	slog.InfoContext(ctx, "start daemon", "task", "scrape stories", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_, err := s.Run(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "scheduled scrape failed", "err", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

type ArticleView struct {
	Title string `json:"title"`
	Url   string `json:"url"`
}

type DebugInfo struct {
	ResponseStatus int    `json:"responseStatus"`
	HtmlLength     int    `json:"htmlLength"`
	Timestamp      string `json:"timestamp"`
}

type InspectReport struct {
	Status       string        `json:"status"`
	ArticleCount int           `json:"articleCount"`
	Articles     []ArticleView `json:"articles"`
	DebugInfo    DebugInfo     `json:"debugInfo"`
}

// Inspect re-runs fetch+extract on demand and reports both the
// articles and the response metadata of that fresh fetch. prior
// snapshots are untouched except by the new run overwriting them.
func (s Service) Inspect(ctx context.Context) (InspectReport, error) {
	ctx, span := tracer.Start(ctx, "Inspect")
	defer span.End()

	articles, doc, err := s.scrape(ctx)
	if err != nil {
		return InspectReport{}, err
	}

	views := make([]ArticleView, 0, len(articles))
	for _, a := range articles {
		views = append(views, ArticleView{Title: a.Title, Url: a.Url})
	}

	return InspectReport{
		Status:       "ok",
		ArticleCount: len(views),
		Articles:     views,
		DebugInfo: DebugInfo{
			ResponseStatus: doc.StatusCode,
			HtmlLength:     len(doc.Body),
			Timestamp:      doc.FetchedAt.Format(time.RFC3339),
		},
	}, nil
}
