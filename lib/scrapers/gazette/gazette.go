// Package gazette scrapes the members-only stories page of The
// Gazette. Authentication rides on a session cookie minted out-of-band
// and read from the durable store, the scraper itself never logs in.
package gazette

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"newsdesk-backend/lib/restyutil"
	"newsdesk-backend/lib/telemetry"
	"newsdesk-backend/lib/timezone"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const BaseUrl = "https://www.thegazette.news"

const storiesPath = "/stories"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	// defaults to BaseUrl, overridable for staging mirrors and tests
	BaseUrl string
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	rawBaseUrl := opts.BaseUrl
	if rawBaseUrl == "" {
		rawBaseUrl = BaseUrl
	}
	baseUrl, err := url.Parse(rawBaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(rawBaseUrl)
	// the publication fronts everything with cloudflare
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/gazette/http")
	restyutil.InstrumentClient(client, restyInstrumentOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

// the fetched stories page along with the response metadata the
// diagnostics surface reports. only lives for one invocation.
type Document struct {
	Body       []byte
	StatusCode int
	FetchedAt  time.Time
}

type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Code)
}

// Fetch retrieves the stories page authenticated by the session
// credential. the document is populated even when the status is not a
// success so callers can snapshot what the upstream actually said.
// retry policy, if any, belongs to the caller.
func (c *Client) Fetch(ctx context.Context, cred Credential) (Document, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("cookie", cred.Value).
		Get(storiesPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch stories page")
		return Document{}, err
	}

	doc := Document{
		Body:       res.Body(),
		StatusCode: res.StatusCode(),
		FetchedAt:  timezone.Now(),
	}
	span.SetAttributes(
		attribute.Int("status", doc.StatusCode),
		attribute.Int("length", len(doc.Body)),
	)

	if !res.IsSuccess() {
		err := StatusError{Code: res.StatusCode()}
		span.SetStatus(codes.Error, err.Error())
		return doc, err
	}
	return doc, nil
}
