// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources wraps the external search APIs behind a single Adapter
// interface. Each adapter turns one API response into types.Document records.
//
// Adapters are best-effort: Search never returns an error. A failed request,
// a bad status, or an unparseable body is logged at warn level and the
// adapter returns whatever it collected, possibly nothing. One failing source
// therefore never blocks the others.
package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Adapter searches one external API. Each backend (Wikipedia, DuckDuckGo,
// arXiv, Semantic Scholar, OpenAlex) implements this interface.
type Adapter interface {
	// Name is the display name of the backing service.
	Name() string
	// Tag is the source class the adapter's documents carry.
	Tag() types.SourceTag
	// Search returns at most maxResults documents for query. It never fails;
	// errors are logged and degrade to fewer (or zero) documents.
	Search(ctx context.Context, query string, maxResults int) []types.Document
}

// NewHTTPClient returns the client shared by all adapters.
func NewHTTPClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// New builds the encyclopedia, web, and paper adapters in gather order.
func New(cfg types.Config, client *http.Client, log *zap.Logger) ([]Adapter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	papers, err := NewPaperAdapter(cfg, client, log)
	if err != nil {
		return nil, err
	}
	return []Adapter{
		&Wikipedia{
			Client:     client,
			Language:   cfg.Sources.WikipediaLanguage,
			ExcerptLen: cfg.Sources.EncyclopediaExcerpt,
			UserAgent:  cfg.HTTP.UserAgent,
			Log:        log,
		},
		&DuckDuckGo{Client: client, UserAgent: cfg.HTTP.UserAgent, Log: log},
		papers,
	}, nil
}

// NewPaperAdapter returns the paper backend selected by
// cfg.Sources.PaperBackend.
func NewPaperAdapter(cfg types.Config, client *http.Client, log *zap.Logger) (Adapter, error) {
	switch cfg.Sources.PaperBackend {
	case types.PaperBackendArxiv, "":
		return &Arxiv{Client: client, UserAgent: cfg.HTTP.UserAgent, Log: log}, nil
	case types.PaperBackendSemanticScholar:
		return &SemanticScholar{
			Client:    client,
			APIKey:    cfg.Sources.SemanticScholarAPIKey,
			UserAgent: cfg.HTTP.UserAgent,
			Log:       log,
		}, nil
	case types.PaperBackendOpenAlex:
		return &OpenAlex{
			Client:    client,
			Email:     cfg.Sources.OpenAlexEmail,
			UserAgent: cfg.HTTP.UserAgent,
			Log:       log,
		}, nil
	default:
		return nil, fmt.Errorf("unknown paper backend %q", cfg.Sources.PaperBackend)
	}
}

// searchFunc is the fallible half of an adapter: it returns the documents it
// managed to build plus the first error it hit.
type searchFunc func(ctx context.Context, query string, maxResults int) ([]types.Document, error)

// bestEffort runs fn and swallows its error after logging it at info, so a
// failing source only shows up to the user as fewer documents. A blank query
// or a non-positive cap returns nothing without touching the network.
func bestEffort(ctx context.Context, a Adapter, log *zap.Logger, query string, maxResults int, fn searchFunc) []types.Document {
	query = strings.TrimSpace(query)
	if query == "" || maxResults <= 0 {
		return nil
	}
	if log == nil {
		log = zap.NewNop()
	}

	docs, err := fn(ctx, query, maxResults)
	if len(docs) > maxResults {
		docs = docs[:maxResults]
	}
	if err != nil {
		log.Info("source search failed",
			zap.String("source", string(a.Tag())),
			zap.String("provider", a.Name()),
			zap.Int("collected", len(docs)),
			zap.Error(err))
	}
	return docs
}

// collapseSpace joins whitespace-separated fields with single spaces.
// Atom titles and abstracts arrive hard-wrapped.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
