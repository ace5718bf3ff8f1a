// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt renders gathered documents and the user's question into
// the single text block sent to the language model.
package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// DefaultExcerptLength is the number of characters of each document's text
// included in the prompt.
const DefaultExcerptLength = 400

// promptTmpl numbers every document from 1, labels it with its source tag,
// and ends with the question restated for the model.
var promptTmpl = template.Must(template.New("prompt").Parse(`You are a helpful AI research assistant.
Use the following sources to answer the user's question clearly and factually.
Cite sources using [numbers].

Sources:
{{range .Blocks}}[{{.Number}}] ({{.Source}}) {{.Title}}: {{.Excerpt}}
URL: {{.URL}}

{{end}}Question: {{.Query}}`))

// Options controls prompt rendering.
type Options struct {
	// ExcerptLength caps each document's text in characters. Zero or
	// negative disables truncation.
	ExcerptLength int
}

// block is one rendered document.
type block struct {
	Number  int
	Source  types.SourceTag
	Title   string
	Excerpt string
	URL     string
}

// Build renders query and docs. Titles and URLs are never truncated; text is
// cut to exactly opts.ExcerptLength characters when longer.
func Build(query string, docs []types.Document, opts Options) (string, error) {
	blocks := make([]block, len(docs))
	for i, d := range docs {
		blocks[i] = block{
			Number:  i + 1,
			Source:  d.Source,
			Title:   d.Title,
			Excerpt: types.TruncateRunes(d.Text, opts.ExcerptLength),
			URL:     d.URL,
		}
	}

	var buf bytes.Buffer
	data := struct {
		Blocks []block
		Query  string
	}{Blocks: blocks, Query: query}
	if err := promptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}
