// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/pdiddy/research-assistant/internal/aggregate"
	"github.com/pdiddy/research-assistant/internal/metrics"
	"github.com/pdiddy/research-assistant/internal/prompt"
	"github.com/pdiddy/research-assistant/internal/research"
	"github.com/pdiddy/research-assistant/internal/sources"
	"github.com/pdiddy/research-assistant/internal/summarize"
	"github.com/pdiddy/research-assistant/pkg/types"

	"go.uber.org/zap"
)

// newHTTPClient builds the client shared by the adapters and the summarizer.
// Tests replace it to observe outbound requests.
var newHTTPClient = sources.NewHTTPClient

// newPipeline wires the adapters, aggregator, prompt options, and
// summarizer described by cfg. rec may be nil.
func newPipeline(cfg types.Config, log *zap.Logger, rec *metrics.Recorder) (*research.Pipeline, error) {
	client := newHTTPClient(cfg.HTTP)

	adapters, err := sources.New(cfg, client, log)
	if err != nil {
		return nil, err
	}
	agg := aggregate.New(
		aggregate.FromConfig(adapters, cfg.Sources),
		aggregate.WithParallel(cfg.Sources.Parallel),
		aggregate.WithLogger(log),
		aggregate.WithMetrics(rec),
	)

	return &research.Pipeline{
		Gatherer:   agg,
		Summarizer: summarize.New(cfg.Summarizer, cfg.Prompt.SystemPrompt, client, log),
		Model:      cfg.Summarizer.Model,
		Prompt:     prompt.Options{ExcerptLength: cfg.Prompt.ExcerptLength},
		Metrics:    rec,
		Log:        log,
	}, nil
}
