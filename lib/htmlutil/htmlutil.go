package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// collapses runs of whitespace and strips characters that wouldn't
// survive a terminal, titles scraped out of markup tend to carry both
func CleanText(s string) string {
	out := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			out.WriteRune(c)
		}
	}
	cleaned := strings.Trim(out.String(), " \t\n")
	return innerWhitespace.ReplaceAllString(cleaned, " ")
}

// resolves href against base, returning "" when href does not parse.
// already-absolute references pass through unchanged.
func AbsoluteHref(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
