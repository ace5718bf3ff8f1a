// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const sampleDuckDuckGoHTML = `<!DOCTYPE html>
<html><body>
<div id="links" class="results">
  <div class="result results_links results_links_deep result--ad">
    <div class="links_main links_deep result__body">
      <h2 class="result__title"><a rel="nofollow" class="result__a" href="https://ads.example.com/">Sponsored Quantum Kit</a></h2>
      <a class="result__snippet" href="https://ads.example.com/">Buy now.</a>
    </div>
  </div>
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.quantamagazine.org%2Fentanglement%2F&amp;rut=abc">Entanglement <b>Explained</b></a>
      </h2>
      <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.quantamagazine.org%2Fentanglement%2F">
        When two particles are <b>entangled</b>, measuring one
        tells you about the other.</a>
    </div>
  </div>
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title"><a rel="nofollow" class="result__a" href="https://plato.stanford.edu/entries/qt-entangle/">The Stanford Encyclopedia entry</a></h2>
      <a class="result__snippet" href="https://plato.stanford.edu/entries/qt-entangle/">A philosophical survey.</a>
    </div>
  </div>
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title"><a rel="nofollow" class="result__a" href="https://example.org/no-snippet">No snippet here</a></h2>
    </div>
  </div>
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title"><a rel="nofollow" class="result__a" href="https://example.org/fourth">Fourth</a></h2>
      <a class="result__snippet" href="https://example.org/fourth">Fourth snippet.</a>
    </div>
  </div>
</div>
</body></html>`

func newTestDuckDuckGo(t *testing.T) *DuckDuckGo {
	return &DuckDuckGo{Client: http.DefaultClient, UserAgent: "research-assistant-test/0.1", Log: zaptest.NewLogger(t)}
}

func TestDuckDuckGoSearch(t *testing.T) {
	var gotMethod, gotQ, gotCT string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		r.ParseForm()
		gotQ = r.PostForm.Get("q")
		w.Write([]byte(sampleDuckDuckGoHTML))
	}))
	t.Cleanup(ts.Close)
	old := duckDuckGoEndpoint
	duckDuckGoEndpoint = ts.URL
	t.Cleanup(func() { duckDuckGoEndpoint = old })

	docs := newTestDuckDuckGo(t).Search(context.Background(), "quantum entanglement", 3)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/x-www-form-urlencoded", gotCT)
	assert.Equal(t, "quantum entanglement", gotQ)

	require.Len(t, docs, 3)
	assert.Equal(t, types.Document{
		Source:   types.SourceWeb,
		Provider: "DuckDuckGo",
		Title:    "Entanglement Explained",
		URL:      "https://www.quantamagazine.org/entanglement/",
		Text:     "When two particles are entangled, measuring one tells you about the other.",
	}, docs[0])
	assert.Equal(t, "https://plato.stanford.edu/entries/qt-entangle/", docs[1].URL)
	assert.Equal(t, "A philosophical survey.", docs[1].Text)
	assert.Equal(t, "No snippet here", docs[2].Title)
	assert.Empty(t, docs[2].Text)
}

func TestDuckDuckGoFailuresAreEmpty(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"no results", http.StatusOK, `<html><body><div class="no-results">No results.</div></body></html>`},
		{"bot challenge", http.StatusAccepted, sampleDuckDuckGoHTML},
		{"server error", http.StatusServiceUnavailable, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixtureServer(t, &duckDuckGoEndpoint, tt.status, tt.body)
			assert.Empty(t, newTestDuckDuckGo(t).Search(context.Background(), "anything", 3))
		})
	}
}

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2Fdoc%2F&rut=1", "https://go.dev/doc/"},
		{"https://duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com", "https://example.com"},
		{"https://example.com/page?uddg=x", "https://example.com/page?uddg=x"},
		{"//example.com/path", "https://example.com/path"},
		{"https://example.com/", "https://example.com/"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, unwrapRedirect(tt.in))
		})
	}
}
