package extractor

import (
	"errors"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"pagewatch/internal/signals"
)

// ErrFieldMissing reports that a required field is absent from the page.
var ErrFieldMissing = errors.New("required field missing")

// Locator finds the watched signal inside a parsed document.
type Locator interface {
	Locate(doc *html.Node, page *url.URL) (signals.Signal, error)
	// Field names what the locator looks for, for logs and errors.
	Field() string
}

// HiddenInput reads <input type="hidden"> fields by name. MonthField is
// required; YearField is optional and degrades to "".
type HiddenInput struct {
	MonthField string
	YearField  string
}

func (h HiddenInput) Field() string {
	return "input[name=" + h.MonthField + "][type=hidden]"
}

func (h HiddenInput) Locate(doc *html.Node, _ *url.URL) (signals.Signal, error) {
	month, ok := findHiddenValue(doc, h.MonthField)
	if !ok {
		return signals.Signal{}, ErrFieldMissing
	}
	var year string
	if h.YearField != "" {
		year, _ = findHiddenValue(doc, h.YearField)
	}
	return signals.Composite(month, year), nil
}

// PDFLink returns the first anchor, in document order, whose href ends with
// ".pdf" (case-insensitive). No match yields an empty scalar signal.
type PDFLink struct{}

func (PDFLink) Field() string { return "a[href$=.pdf]" }

func (PDFLink) Locate(doc *html.Node, page *url.URL) (signals.Signal, error) {
	var found string
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "a" {
			return true
		}
		href, ok := getAttr(n, "href")
		if !ok || !strings.HasSuffix(strings.ToLower(href), ".pdf") {
			return true
		}
		found = ResolveLink(href, page)
		return false
	})
	return signals.Scalar(found), nil
}

// ResolveLink prefixes root-relative references ("/x.pdf") with the page
// origin. Everything else, including protocol-relative "//host/x", is returned
// verbatim.
func ResolveLink(href string, page *url.URL) string {
	if page == nil || !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") {
		return href
	}
	return page.Scheme + "://" + page.Host + href
}

// findHiddenValue reads the value of the first hidden input with the given
// name. An input without a value attribute counts as missing.
func findHiddenValue(doc *html.Node, name string) (string, bool) {
	var input *html.Node
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "input" {
			return true
		}
		if v, _ := getAttr(n, "name"); v != name {
			return true
		}
		if t, _ := getAttr(n, "type"); !strings.EqualFold(t, "hidden") {
			return true
		}
		input = n
		return false
	})
	if input == nil {
		return "", false
	}
	value, ok := getAttr(input, "value")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// walk visits nodes depth-first in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
