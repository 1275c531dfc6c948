// Package readability adapts go-readability as a generic
// boilerplate-removal extractor.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/veritext/veritext"
)

// Ensure Extractor implements veritext.Extractor at compile time.
var _ veritext.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*veritext.ExtractResult, error) {
	if rawHTML == "" {
		return nil, veritext.Errorf(veritext.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &veritext.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
