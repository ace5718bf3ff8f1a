// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research runs one query cycle: gather documents from every source,
// render the prompt, and ask the language model for a cited answer. Both the
// line-mode command and the form server drive this pipeline.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/metrics"
	"github.com/pdiddy/research-assistant/internal/prompt"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// ErrEmptyQuery is returned for a blank question. Nothing is fetched.
var ErrEmptyQuery = errors.New("query is empty: provide a research question")

// ErrNoInformation is returned when every source came back empty. The
// summarizer is not called.
var ErrNoInformation = errors.New("no information found")

// Gatherer collects documents for a query from all sources, in source order.
type Gatherer interface {
	Gather(ctx context.Context, query string) []types.Document
}

// Summarizer turns a rendered prompt into an answer.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Stage identifies a point in the query cycle reported through Progress.
type Stage int

const (
	// StageGathering fires before the sources are queried.
	StageGathering Stage = iota
	// StageSummarizing fires after gathering, once documents were found.
	StageSummarizing
)

// Event is one progress notification.
type Event struct {
	Stage Stage
	// Documents is the number of gathered documents (StageSummarizing only).
	Documents int
	// Model is the language model about to be called (StageSummarizing only).
	Model string
}

// Progress receives pipeline events. It may be nil.
type Progress func(Event)

// Pipeline wires a Gatherer to a Summarizer through the prompt builder.
type Pipeline struct {
	Gatherer   Gatherer
	Summarizer Summarizer
	// Model is recorded on every Report.
	Model   string
	Prompt  prompt.Options
	Metrics *metrics.Recorder
	Log     *zap.Logger
}

// Run answers query. It returns ErrEmptyQuery for a blank query and
// ErrNoInformation (with a Report holding no documents) when nothing was
// gathered. A summarizer failure is returned wrapped, together with the
// Report of what was gathered.
func (p *Pipeline) Run(ctx context.Context, query string, progress Progress) (*Report, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	if progress == nil {
		progress = func(Event) {}
	}

	report := &Report{
		ID:        uuid.New(),
		Query:     query,
		Model:     p.Model,
		StartedAt: time.Now().UTC(),
	}
	log = log.With(zap.String("report_id", report.ID.String()))
	finish := func(outcome string) {
		report.Duration = time.Since(report.StartedAt)
		p.Metrics.ObserveQuery(outcome, report.Duration)
		log.Info("query finished",
			zap.String("outcome", outcome),
			zap.Int("documents", len(report.Documents)),
			zap.Duration("duration", report.Duration))
	}

	progress(Event{Stage: StageGathering})
	report.Documents = p.Gatherer.Gather(ctx, query)
	if len(report.Documents) == 0 {
		finish(metrics.OutcomeNoInfo)
		return report, ErrNoInformation
	}

	text, err := prompt.Build(query, report.Documents, p.Prompt)
	if err != nil {
		finish(metrics.OutcomeFailed)
		return report, fmt.Errorf("building prompt: %w", err)
	}

	progress(Event{Stage: StageSummarizing, Documents: len(report.Documents), Model: p.Model})
	answer, err := p.Summarizer.Summarize(ctx, text)
	if err != nil {
		finish(metrics.OutcomeFailed)
		log.Error("summarization failed", zap.Error(err))
		return report, err
	}
	report.Answer = answer
	finish(metrics.OutcomeAnswered)
	return report, nil
}
