package mock

import (
	"context"

	"github.com/veritext/veritext"
)

var _ veritext.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of veritext.Strategy.
type Strategy struct {
	NameFn    func() string
	ExtractFn func(ctx context.Context, req veritext.ExtractionRequest) (*veritext.ExtractionResult, error)
}

func (s *Strategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

func (s *Strategy) Extract(ctx context.Context, req veritext.ExtractionRequest) (*veritext.ExtractionResult, error) {
	return s.ExtractFn(ctx, req)
}
