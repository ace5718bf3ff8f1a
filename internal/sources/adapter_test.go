// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/research-assistant/internal/config"
	"github.com/pdiddy/research-assistant/internal/logging"
	"github.com/pdiddy/research-assistant/pkg/types"
)

func testConfig() types.Config {
	return types.Config{
		HTTP: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "research-assistant-test/0.1"},
		Sources: types.SourcesConfig{
			EncyclopediaResults: 2,
			WebResults:          3,
			PaperResults:        2,
			EncyclopediaExcerpt: 1000,
			WikipediaLanguage:   "en",
			PaperBackend:        types.PaperBackendArxiv,
		},
	}
}

// fixtureServer serves body with status and points *endpoint at it for the
// duration of the test.
func fixtureServer(t *testing.T, endpoint *string, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	old := *endpoint
	*endpoint = ts.URL
	t.Cleanup(func() { *endpoint = old })
	return ts
}

func TestNewBuildsAdaptersInGatherOrder(t *testing.T) {
	tests := []struct {
		backend  types.PaperBackend
		provider string
	}{
		{types.PaperBackendArxiv, "arXiv"},
		{"", "arXiv"},
		{types.PaperBackendSemanticScholar, "Semantic Scholar"},
		{types.PaperBackendOpenAlex, "OpenAlex"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := testConfig()
			cfg.Sources.PaperBackend = tt.backend

			adapters, err := New(cfg, http.DefaultClient, nil)
			require.NoError(t, err)
			require.Len(t, adapters, 3)

			for i, tag := range types.SourceTags {
				assert.Equal(t, tag, adapters[i].Tag())
			}
			assert.Equal(t, "Wikipedia", adapters[0].Name())
			assert.Equal(t, "DuckDuckGo", adapters[1].Name())
			assert.Equal(t, tt.provider, adapters[2].Name())
		})
	}
}

func TestNewUnknownPaperBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Sources.PaperBackend = "pubmed"
	_, err := New(cfg, http.DefaultClient, zap.NewNop())
	assert.Error(t, err)
}

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient(types.HTTPConfig{Timeout: 7 * time.Second})
	assert.Equal(t, 7*time.Second, c.Timeout)
}

type stubAdapter struct{}

func (stubAdapter) Name() string         { return "Stub" }
func (stubAdapter) Tag() types.SourceTag { return types.SourceWeb }
func (stubAdapter) Search(context.Context, string, int) []types.Document {
	return nil
}

func TestBestEffort(t *testing.T) {
	docs := []types.Document{{Title: "a"}, {Title: "b"}, {Title: "c"}}

	t.Run("blank query skips the call", func(t *testing.T) {
		called := false
		got := bestEffort(context.Background(), stubAdapter{}, nil, "   ", 3,
			func(context.Context, string, int) ([]types.Document, error) {
				called = true
				return docs, nil
			})
		assert.Empty(t, got)
		assert.False(t, called)
	})

	t.Run("zero cap skips the call", func(t *testing.T) {
		called := false
		got := bestEffort(context.Background(), stubAdapter{}, nil, "q", 0,
			func(context.Context, string, int) ([]types.Document, error) {
				called = true
				return docs, nil
			})
		assert.Empty(t, got)
		assert.False(t, called)
	})

	t.Run("trims query and caps results", func(t *testing.T) {
		var gotQuery string
		got := bestEffort(context.Background(), stubAdapter{}, nil, "  q  ", 2,
			func(_ context.Context, q string, _ int) ([]types.Document, error) {
				gotQuery = q
				return docs, nil
			})
		assert.Equal(t, "q", gotQuery)
		assert.Len(t, got, 2)
	})

	t.Run("error keeps partial results and logs", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		got := bestEffort(context.Background(), stubAdapter{}, zap.New(core), "q", 5,
			func(context.Context, string, int) ([]types.Document, error) {
				return docs[:1], errors.New("connection reset")
			})
		assert.Len(t, got, 1)

		entries := logs.All()
		require.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "web", fields["source"])
		assert.Equal(t, "Stub", fields["provider"])
		assert.Equal(t, "connection reset", fields["error"])
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	})

	t.Run("error is silent at the default log level", func(t *testing.T) {
		v := viper.New()
		config.SetDefaults(v)
		cfg, err := config.Load(v)
		require.NoError(t, err)
		level, err := logging.ParseLevel(cfg.Log.Level)
		require.NoError(t, err)
		core, logs := observer.New(level)
		got := bestEffort(context.Background(), stubAdapter{}, zap.New(core), "q", 5,
			func(context.Context, string, int) ([]types.Document, error) {
				return nil, errors.New("HTTP 500")
			})
		assert.Empty(t, got)
		assert.Zero(t, logs.Len())
	})
}

