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

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

// openAlexMaxPerPage is the API's page size limit.
const openAlexMaxPerPage = 200

// OpenAlex is the alternative paper adapter backed by the OpenAlex Works API.
type OpenAlex struct {
	Client *http.Client
	// Email is sent as mailto parameter for polite pool access.
	Email     string
	UserAgent string
	Log       *zap.Logger
}

// Name returns the provider name.
func (b *OpenAlex) Name() string { return "OpenAlex" }

// Tag returns types.SourcePapers.
func (b *OpenAlex) Tag() types.SourceTag { return types.SourcePapers }

// Search returns up to maxResults works.
func (b *OpenAlex) Search(ctx context.Context, query string, maxResults int) []types.Document {
	return bestEffort(ctx, b, b.Log, query, maxResults, b.search)
}

func (b *OpenAlex) search(ctx context.Context, query string, maxResults int) ([]types.Document, error) {
	params := url.Values{
		"search":   {query},
		"per_page": {fmt.Sprintf("%d", min(maxResults, openAlexMaxPerPage))},
		"page":     {"1"},
	}
	if b.Email != "" {
		params.Set("mailto", b.Email)
	}
	reqURL := openAlexSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	var docs []types.Document
	for _, work := range oar.Results {
		link := work.DOI
		if link == "" {
			link = work.ID
		}
		docs = append(docs, types.Document{
			Source:   types.SourcePapers,
			Provider: b.Name(),
			Title:    work.Title,
			URL:      link,
			Text:     reconstructAbstract(work.AbstractInvertedIndex),
		})
	}
	return docs, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to a list of positions
// where that word appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID                    string           `json:"id"`
	Title                 string           `json:"title"`
	DOI                   string           `json:"doi"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}
