// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,url,externalIds"

// SemanticScholar is the alternative paper adapter backed by the Semantic
// Scholar Graph API. Unauthenticated callers share a small rate limit and
// get 429 under normal use, so the request goes through httputil.DoWithRetry.
// That backoff covers only this documented 429; every other failure is
// handled best-effort like the other adapters, and no other adapter or the
// summarizer retries.
type SemanticScholar struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
	Log       *zap.Logger
}

// Name returns the provider name.
func (b *SemanticScholar) Name() string { return "Semantic Scholar" }

// Tag returns types.SourcePapers.
func (b *SemanticScholar) Tag() types.SourceTag { return types.SourcePapers }

// Search returns up to maxResults papers.
func (b *SemanticScholar) Search(ctx context.Context, query string, maxResults int) []types.Document {
	return bestEffort(ctx, b, b.Log, query, maxResults, b.search)
}

func (b *SemanticScholar) search(ctx context.Context, query string, maxResults int) ([]types.Document, error) {
	params := url.Values{
		"query":  {query},
		"limit":  {fmt.Sprintf("%d", maxResults)},
		"fields": {semanticFields},
	}
	reqURL := semanticAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.UserAgent)
	if b.APIKey != "" {
		req.Header.Set("x-api-key", b.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0, b.Log)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var docs []types.Document
	for _, paper := range sr.Data {
		docs = append(docs, types.Document{
			Source:   types.SourcePapers,
			Provider: b.Name(),
			Title:    paper.Title,
			URL:      paper.link(),
			Text:     paper.Abstract,
		})
	}
	return docs, nil
}

// link prefers the arXiv abstract page, then the Semantic Scholar page.
func (p semanticPaper) link() string {
	switch {
	case p.ExternalIDs.ArXiv != "":
		return "http://arxiv.org/abs/" + p.ExternalIDs.ArXiv
	case p.URL != "":
		return p.URL
	case p.PaperID != "":
		return "https://www.semanticscholar.org/paper/" + p.PaperID
	default:
		return ""
	}
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total int             `json:"total"`
	Data  []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID     string              `json:"paperId"`
	Title       string              `json:"title"`
	Abstract    string              `json:"abstract"`
	URL         string              `json:"url"`
	ExternalIDs semanticExternalIDs `json:"externalIds"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
