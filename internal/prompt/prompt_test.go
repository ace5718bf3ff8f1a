// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func entanglementDocs() []types.Document {
	return []types.Document{
		{
			Source: types.SourceEncyclopedia,
			Title:  "Quantum entanglement",
			URL:    "https://en.wikipedia.org/wiki/Quantum_entanglement",
			Text:   "Quantum entanglement is the phenomenon where particles share a single quantum state.",
		},
		{
			Source: types.SourceWeb,
			Title:  "Entanglement Explained",
			URL:    "https://www.quantamagazine.org/entanglement/",
			Text:   "When two particles are entangled, measuring one tells you about the other.",
		},
		{
			Source: types.SourcePapers,
			Title:  "Entanglement purification of noisy quantum states",
			URL:    "http://arxiv.org/abs/quant-ph/0101012v4",
			Text:   "We study how entangled pairs can be distilled.",
		},
	}
}

func TestBuildThreeSources(t *testing.T) {
	const query = "What is quantum entanglement?"
	got, err := Build(query, entanglementDocs(), Options{ExcerptLength: DefaultExcerptLength})
	require.NoError(t, err)

	for _, d := range entanglementDocs() {
		assert.Contains(t, got, d.Title)
		assert.Contains(t, got, "("+string(d.Source)+")")
		assert.Contains(t, got, "URL: "+d.URL)
	}
	assert.True(t, strings.HasSuffix(got, "Question: "+query), "prompt must end with the question")
	assert.Contains(t, got, "Cite sources using [numbers].")
}

func TestBuildLayout(t *testing.T) {
	docs := []types.Document{
		{Source: types.SourceWeb, Title: "Go", URL: "https://go.dev", Text: "The Go language."},
		{Source: types.SourcePapers, Title: "No URL", Text: ""},
	}
	got, err := Build("what is go", docs, Options{})
	require.NoError(t, err)

	want := "You are a helpful AI research assistant.\n" +
		"Use the following sources to answer the user's question clearly and factually.\n" +
		"Cite sources using [numbers].\n" +
		"\n" +
		"Sources:\n" +
		"[1] (web) Go: The Go language.\n" +
		"URL: https://go.dev\n" +
		"\n" +
		"[2] (papers) No URL: \n" +
		"URL: \n" +
		"\n" +
		"Question: what is go"
	assert.Equal(t, want, got)
}

func TestBuildQueryVerbatim(t *testing.T) {
	queries := []string{
		"plain question",
		"symbols <b>&amp; {{.Query}} [1]",
		"unicode: Schrödinger's 猫?",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			got, err := Build(q, entanglementDocs(), Options{ExcerptLength: 50})
			require.NoError(t, err)
			assert.Contains(t, got, q)
			assert.True(t, strings.HasSuffix(got, q))
		})
	}
}

func TestBuildNoDocuments(t *testing.T) {
	got, err := Build("q", nil, Options{ExcerptLength: DefaultExcerptLength})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "Sources:\nQuestion: q"))
}

func TestBuildTruncatesTextOnly(t *testing.T) {
	longTitle := strings.Repeat("T", 600)
	longURL := "https://example.com/" + strings.Repeat("u", 600)
	text := strings.Repeat("a", 10) + strings.Repeat("b", 590)

	tests := []struct {
		name   string
		length int
		want   string
	}{
		{"truncated to exactly ten", 10, strings.Repeat("a", 10)},
		{"default length", DefaultExcerptLength, text[:DefaultExcerptLength]},
		{"disabled", 0, text},
		{"longer than text", 1000, text},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := []types.Document{{Source: types.SourceWeb, Title: longTitle, URL: longURL, Text: text}}
			got, err := Build("q", docs, Options{ExcerptLength: tt.length})
			require.NoError(t, err)

			assert.Contains(t, got, "[1] (web) "+longTitle+": "+tt.want+"\nURL: "+longURL+"\n")
		})
	}
}

