// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func sampleReport() *Report {
	return &Report{
		ID:        uuid.MustParse("6f1c9a52-3a8e-4c47-9d0e-0c2d6b8a1f11"),
		Query:     "What is quantum entanglement?",
		Documents: sampleDocs(),
		Answer:    "Entanglement correlates particles [1][3].",
		Model:     "gpt-4o-mini",
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	WriteText(sampleReport(), &buf)

	want := "===== ANSWER =====\n" +
		"Entanglement correlates particles [1][3].\n" +
		"\n" +
		"===== SOURCES =====\n" +
		"[1] Wikipedia: Quantum entanglement (https://en.wikipedia.org/wiki/Quantum_entanglement)\n" +
		"[2] DuckDuckGo: Entanglement Explained (https://www.quantamagazine.org/entanglement/)\n" +
		"[3] arXiv: Entanglement purification (http://arxiv.org/abs/quant-ph/0101012v4)\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTextNoResults(t *testing.T) {
	for _, r := range []*Report{nil, {Query: "q"}} {
		var buf bytes.Buffer
		WriteText(r, &buf)
		assert.Equal(t, "No results found.\n", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(sampleReport(), &buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "6f1c9a52-3a8e-4c47-9d0e-0c2d6b8a1f11", got["id"])
	assert.Equal(t, "What is quantum entanglement?", got["query"])
	assert.EqualValues(t, 1.5e9, got["duration_ns"])

	docs := got["documents"].([]any)
	require.Len(t, docs, 3)
	first := docs[0].(map[string]any)
	assert.Equal(t, "encyclopedia", first["source"])
	assert.Equal(t, "Wikipedia", first["provider"])
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(sampleReport(), &buf))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "6f1c9a52-3a8e-4c47-9d0e-0c2d6b8a1f11", got["id"])
	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.Equal(t, "1.5s", got["duration"])
	assert.Contains(t, buf.String(), "source: papers")
}

func TestExportAndReadReport(t *testing.T) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "report"+ext)
			want := sampleReport()
			require.NoError(t, Export(want, path))

			got, err := ReadReport(path)
			require.NoError(t, err)
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Query, got.Query)
			assert.Equal(t, want.Answer, got.Answer)
			assert.Equal(t, want.Documents, got.Documents)
			assert.Equal(t, want.Duration, got.Duration)
			assert.True(t, want.StartedAt.Equal(got.StartedAt))
		})
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	err := Export(sampleReport(), filepath.Join(t.TempDir(), "report.txt"))
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestReadReportMissing(t *testing.T) {
	_, err := ReadReport(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
