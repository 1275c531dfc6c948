package mock

import "github.com/veritext/veritext"

var _ veritext.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of veritext.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*veritext.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*veritext.ExtractResult, error) {
	return e.ExtractFn(html)
}
