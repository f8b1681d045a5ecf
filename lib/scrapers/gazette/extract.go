package gazette

import (
	"context"
	"log/slog"
	"strings"

	"newsdesk-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// one extracted story. Url is always absolute, relative hrefs are
// qualified against the client's base url before anything compares
// them.
type Article struct {
	Title string `json:"title"`
	Url   string `json:"url"`
}

// one self-contained extraction method in the fallback chain
type Strategy struct {
	Name    string
	Extract func(doc *goquery.Document) []Article
}

// the fallback chain, most specific first. the layout of the stories
// page has drifted several times, each strategy matches one
// generation of it.
func (c *Client) Strategies() []Strategy {
	return []Strategy{
		{Name: "containers", Extract: c.extractContainers},
		{Name: "headings", Extract: c.extractHeadings},
		{Name: "broad", Extract: c.extractBroad},
	}
}

// runs strategies in order, the first non-empty result wins and later
// strategies do not run. every strategy coming back empty is a valid
// outcome, not an error.
func Extract(ctx context.Context, doc *goquery.Document, strategies []Strategy) []Article {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()

	for _, strat := range strategies {
		articles := strat.Extract(doc)
		span.AddEvent("strategy", trace.WithAttributes(
			attribute.String("name", strat.Name),
			attribute.Int("count", len(articles)),
		))
		if len(articles) > 0 {
			slog.DebugContext(
				ctx, "extraction strategy matched",
				"strategy", strat.Name,
				"count", len(articles),
			)
			return articles
		}
	}

	slog.WarnContext(ctx, "no extraction strategy matched the page")
	return nil
}

func (c *Client) article(heading *goquery.Selection, link *goquery.Selection) (Article, bool) {
	href := strings.TrimSpace(link.AttrOr("href", ""))
	title := htmlutil.CleanText(heading.Text())
	if href == "" || title == "" {
		return Article{}, false
	}

	abs := htmlutil.AbsoluteHref(c.BaseUrl, href)
	if abs == "" {
		return Article{}, false
	}
	return Article{Title: title, Url: abs}, true
}

// generation 1: stories sit in repeating <article> containers, each
// holding a heading and a link. containers missing either are
// skipped, never abort the pass.
func (c *Client) extractContainers(doc *goquery.Document) []Article {
	var articles []Article
	doc.Find("article").Each(func(_ int, container *goquery.Selection) {
		heading := container.Find("h1, h2, h3").First()
		link := container.Find("a[href]").First()

		a, ok := c.article(heading, link)
		if !ok {
			return
		}
		articles = append(articles, a)
	})
	return articles
}

// generation 2: no containers, but story headings carry the
// "story-title" class with the link either inside the heading or
// wrapping it
func (c *Client) extractHeadings(doc *goquery.Document) []Article {
	var articles []Article
	doc.Find("h2.story-title, h3.story-title").Each(func(_ int, heading *goquery.Selection) {
		link := heading.Find("a[href]").First()
		if link.Length() == 0 {
			link = heading.Closest("a[href]")
		}

		a, ok := c.article(heading, link)
		if !ok {
			return
		}
		articles = append(articles, a)
	})
	return articles
}

// last resort: any heading/link pair at all. noisy, the normalizer
// cleans up after it.
func (c *Client) extractBroad(doc *goquery.Document) []Article {
	var articles []Article
	doc.Find("h1, h2, h3, h4, h5").Each(func(_ int, heading *goquery.Selection) {
		link := heading.Find("a[href]").First()
		if link.Length() == 0 {
			link = heading.Closest("a[href]")
		}

		a, ok := c.article(heading, link)
		if !ok {
			return
		}
		articles = append(articles, a)
	})
	return articles
}
