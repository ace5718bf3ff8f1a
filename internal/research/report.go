// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Report is the outcome of one query cycle.
type Report struct {
	ID        uuid.UUID        `json:"id" yaml:"id"`
	Query     string           `json:"query" yaml:"query"`
	Documents []types.Document `json:"documents" yaml:"documents"`
	Answer    string           `json:"answer" yaml:"answer"`
	Model     string           `json:"model" yaml:"model"`
	StartedAt time.Time        `json:"started_at" yaml:"started_at"`
	Duration  time.Duration    `json:"duration_ns" yaml:"duration"`
}

// WriteText writes the answer followed by the numbered source list.
func WriteText(r *Report, w io.Writer) {
	if r == nil || len(r.Documents) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintln(w, "===== ANSWER =====")
	fmt.Fprintln(w, r.Answer)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "===== SOURCES =====")
	for i, d := range r.Documents {
		fmt.Fprintf(w, "[%d] %s: %s (%s)\n", i+1, d.Provider, d.Title, d.URL)
	}
}

// WriteJSON writes r as indented JSON.
func WriteJSON(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteYAML writes r as YAML.
func WriteYAML(r *Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// Export writes r to path as JSON (.json) or YAML (.yaml, .yml).
func Export(r *Report, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(r, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(r)
	default:
		return fmt.Errorf("unsupported report format %q: use .json, .yaml, or .yml", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a report written by Export.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r Report
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &r)
	} else {
		err = yaml.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}
