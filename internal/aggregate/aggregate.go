// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate fans a query out to every source adapter and
// concatenates their documents in adapter order. It neither deduplicates
// nor reranks.
package aggregate

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/metrics"
	"github.com/pdiddy/research-assistant/internal/sources"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Source pairs an adapter with its result cap.
type Source struct {
	Adapter    sources.Adapter
	MaxResults int
}

// Aggregator gathers documents from a fixed, ordered list of sources.
type Aggregator struct {
	sources  []Source
	parallel bool
	log      *zap.Logger
	metrics  *metrics.Recorder
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithParallel runs the sources concurrently. Output order is unchanged.
func WithParallel(parallel bool) Option {
	return func(a *Aggregator) { a.parallel = parallel }
}

// WithLogger sets the logger used for per-source counts.
func WithLogger(log *zap.Logger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

// WithMetrics records per-source document counts on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(a *Aggregator) { a.metrics = r }
}

// New returns an Aggregator over srcs, which are queried in the given order.
func New(srcs []Source, opts ...Option) *Aggregator {
	a := &Aggregator{sources: srcs, log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FromConfig pairs adapters with the caps in cfg by source tag.
func FromConfig(adapters []sources.Adapter, cfg types.SourcesConfig) []Source {
	srcs := make([]Source, 0, len(adapters))
	for _, ad := range adapters {
		srcs = append(srcs, Source{Adapter: ad, MaxResults: capFor(ad.Tag(), cfg)})
	}
	return srcs
}

func capFor(tag types.SourceTag, cfg types.SourcesConfig) int {
	switch tag {
	case types.SourceEncyclopedia:
		return cfg.EncyclopediaResults
	case types.SourceWeb:
		return cfg.WebResults
	case types.SourcePapers:
		return cfg.PaperResults
	default:
		return 0
	}
}

// Gather queries every source and returns their documents concatenated in
// source order. An empty result means no source found anything.
func (a *Aggregator) Gather(ctx context.Context, query string) []types.Document {
	batches := make([][]types.Document, len(a.sources))

	if a.parallel {
		var wg sync.WaitGroup
		for i, src := range a.sources {
			wg.Add(1)
			go func(i int, src Source) {
				defer wg.Done()
				batches[i] = a.search(ctx, src, query)
			}(i, src)
		}
		wg.Wait()
	} else {
		for i, src := range a.sources {
			batches[i] = a.search(ctx, src, query)
		}
	}

	var docs []types.Document
	for _, b := range batches {
		docs = append(docs, b...)
	}
	return docs
}

func (a *Aggregator) search(ctx context.Context, src Source, query string) []types.Document {
	start := time.Now()
	docs := src.Adapter.Search(ctx, query, src.MaxResults)

	a.metrics.ObserveSource(src.Adapter.Tag(), len(docs))
	a.log.Info("source searched",
		zap.String("source", string(src.Adapter.Tag())),
		zap.String("provider", src.Adapter.Name()),
		zap.Int("documents", len(docs)),
		zap.Duration("elapsed", time.Since(start)))
	return docs
}
