// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-assistant pipeline.
package types

import "unicode/utf8"

// SourceTag identifies which class of information source produced a Document.
type SourceTag string

const (
	SourceEncyclopedia SourceTag = "encyclopedia"
	SourceWeb          SourceTag = "web"
	SourcePapers       SourceTag = "papers"
)

// SourceTags lists every known tag in gather order.
var SourceTags = []SourceTag{SourceEncyclopedia, SourceWeb, SourcePapers}

// Valid reports whether t is one of the three known source tags.
func (t SourceTag) Valid() bool {
	switch t {
	case SourceEncyclopedia, SourceWeb, SourcePapers:
		return true
	}
	return false
}

// Document is one normalized search hit from any source. Documents live for
// a single query and are never persisted by the pipeline.
type Document struct {
	// Source is the class of source that produced this document.
	Source SourceTag `json:"source" yaml:"source"`

	// Provider is the display name of the backing service (e.g. "Wikipedia", "arXiv").
	Provider string `json:"provider" yaml:"provider"`

	// Title is the page, result, or paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// URL is the canonical address of the hit. It may be empty.
	URL string `json:"url" yaml:"url"`

	// Text is a content excerpt, snippet, or abstract. It may be empty.
	Text string `json:"text" yaml:"text"`
}

// TruncateRunes cuts s to at most n characters (runes). n <= 0 leaves s
// unchanged.
func TruncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
