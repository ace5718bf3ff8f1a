// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// duckDuckGoEndpoint is the DuckDuckGo HTML search endpoint. Declared as a
// var so tests can substitute an httptest server.
var duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGo is the web-search adapter. It posts the query to the HTML
// interface and scrapes result titles, links, and snippets.
type DuckDuckGo struct {
	Client    *http.Client
	UserAgent string
	Log       *zap.Logger
}

// Name returns the provider name.
func (d *DuckDuckGo) Name() string { return "DuckDuckGo" }

// Tag returns types.SourceWeb.
func (d *DuckDuckGo) Tag() types.SourceTag { return types.SourceWeb }

// Search returns up to maxResults organic hits. Ads are skipped.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) []types.Document {
	return bestEffort(ctx, d, d.Log, query, maxResults, d.search)
}

func (d *DuckDuckGo) search(ctx context.Context, query string, maxResults int) ([]types.Document, error) {
	form := url.Values{"q": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, duckDuckGoEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", d.UserAgent)

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DuckDuckGo request: %w", err)
	}
	defer resp.Body.Close()

	// DuckDuckGo answers bot challenges with 202 and no results.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DuckDuckGo returned HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing DuckDuckGo response: %w", err)
	}
	return parseDuckDuckGo(doc, d.Name(), maxResults), nil
}

// parseDuckDuckGo walks the result page. A "result__a" anchor opens a new
// hit; a "result__snippet" in the same result block fills its text.
func parseDuckDuckGo(doc *html.Node, provider string, maxResults int) []types.Document {
	var docs []types.Document
	open := false
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch {
			case hasClass(n, "result--ad"):
				return true
			case hasClass(n, "result"):
				open = false
			case hasClass(n, "result__a"):
				if len(docs) == maxResults {
					return false
				}
				docs = append(docs, types.Document{
					Source:   types.SourceWeb,
					Provider: provider,
					Title:    nodeText(n),
					URL:      unwrapRedirect(attr(n, "href")),
				})
				open = true
				return true
			case hasClass(n, "result__snippet"):
				if open {
					docs[len(docs)-1].Text = nodeText(n)
					open = false
				}
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(doc)
	return docs
}

// unwrapRedirect turns DuckDuckGo's "//duckduckgo.com/l/?uddg=<target>"
// links into the target URL. Other links are returned absolute.
func unwrapRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" && strings.HasSuffix(u.Path, "/l/") {
		return target
	}
	return href
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText returns the whitespace-collapsed text content of n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return collapseSpace(b.String())
}
