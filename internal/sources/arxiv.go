// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Arxiv is the default paper adapter. Documents use the entry id
// (http://arxiv.org/abs/...) as URL and the abstract as text.
type Arxiv struct {
	Client    *http.Client
	UserAgent string
	Log       *zap.Logger
}

// Name returns the provider name.
func (b *Arxiv) Name() string { return "arXiv" }

// Tag returns types.SourcePapers.
func (b *Arxiv) Tag() types.SourceTag { return types.SourcePapers }

// Search returns up to maxResults papers ranked by relevance.
func (b *Arxiv) Search(ctx context.Context, query string, maxResults int) []types.Document {
	return bestEffort(ctx, b, b.Log, query, maxResults, b.search)
}

func (b *Arxiv) search(ctx context.Context, query string, maxResults int) ([]types.Document, error) {
	params := url.Values{
		"search_query": {"all:" + strings.Join(strings.Fields(query), " ")},
		"start":        {"0"},
		"max_results":  {fmt.Sprintf("%d", maxResults)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}
	reqURL := arxivAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var docs []types.Document
	for _, entry := range feed.Entries {
		id := strings.TrimSpace(entry.ID)
		// The API reports query errors as a single entry with an error id.
		if id == "" || strings.Contains(id, "/api/errors") {
			continue
		}
		docs = append(docs, types.Document{
			Source:   types.SourcePapers,
			Provider: b.Name(),
			Title:    collapseSpace(entry.Title),
			URL:      id,
			Text:     collapseSpace(entry.Summary),
		})
	}
	return docs, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID      string `xml:"id"`
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
}
