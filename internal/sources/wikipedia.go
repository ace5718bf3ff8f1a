// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// wikipediaAPIBase is the MediaWiki action API endpoint; %s is the language
// edition. Declared as a var so tests can substitute an httptest server.
var wikipediaAPIBase = "https://%s.wikipedia.org/w/api.php"

// Wikipedia is the encyclopedia adapter. One request searches for the query
// and fetches the plain-text intro of every matching page.
type Wikipedia struct {
	Client *http.Client
	// Language is the edition subdomain ("en", "de", ...). Empty means "en".
	Language string
	// ExcerptLen caps the extract in characters. Zero keeps the whole intro.
	ExcerptLen int
	UserAgent  string
	Log        *zap.Logger
}

// Name returns the provider name.
func (w *Wikipedia) Name() string { return "Wikipedia" }

// Tag returns types.SourceEncyclopedia.
func (w *Wikipedia) Tag() types.SourceTag { return types.SourceEncyclopedia }

// Search returns up to maxResults pages in search rank order.
// Disambiguation pages are skipped.
func (w *Wikipedia) Search(ctx context.Context, query string, maxResults int) []types.Document {
	return bestEffort(ctx, w, w.Log, query, maxResults, w.search)
}

func (w *Wikipedia) search(ctx context.Context, query string, maxResults int) ([]types.Document, error) {
	lang := w.Language
	if lang == "" {
		lang = "en"
	}

	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"generator":     {"search"},
		"gsrsearch":     {query},
		// Over-fetch so skipped disambiguation pages do not shrink the result.
		"gsrlimit":    {fmt.Sprintf("%d", maxResults+2)},
		"prop":        {"extracts|info|pageprops"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"inprop":      {"url"},
		"ppprop":      {"disambiguation"},
		"redirects":   {"1"},
	}
	reqURL := fmt.Sprintf(wikipediaAPIBase, lang) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", w.UserAgent)

	resp, err := w.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Wikipedia API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Wikipedia API returned HTTP %d", resp.StatusCode)
	}

	var wr wikipediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("parsing Wikipedia response: %w", err)
	}
	if wr.Error != nil {
		return nil, fmt.Errorf("Wikipedia API error %s: %s", wr.Error.Code, wr.Error.Info)
	}

	pages := wr.Query.Pages
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].Index < pages[j].Index })

	var docs []types.Document
	for _, p := range pages {
		if p.Missing || p.PageProps.Disambiguation != nil {
			continue
		}
		docs = append(docs, types.Document{
			Source:   types.SourceEncyclopedia,
			Provider: w.Name(),
			Title:    p.Title,
			URL:      p.FullURL,
			Text:     types.TruncateRunes(strings.TrimSpace(p.Extract), w.ExcerptLen),
		})
		if len(docs) == maxResults {
			break
		}
	}
	return docs, nil
}

// MediaWiki action API JSON structures (formatversion=2).
type wikipediaResponse struct {
	Query struct {
		Pages []wikipediaPage `json:"pages"`
	} `json:"query"`
	Error *wikipediaError `json:"error"`
}

type wikipediaPage struct {
	PageID    int    `json:"pageid"`
	Title     string `json:"title"`
	Index     int    `json:"index"`
	Extract   string `json:"extract"`
	FullURL   string `json:"fullurl"`
	Missing   bool   `json:"missing"`
	PageProps struct {
		// Present (as an empty string) only on disambiguation pages.
		Disambiguation *string `json:"disambiguation"`
	} `json:"pageprops"`
}

type wikipediaError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}
