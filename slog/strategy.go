// Package slog provides logging decorators for extraction components.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/veritext/veritext"
)

// Ensure LoggingStrategy implements veritext.Strategy.
var _ veritext.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with structured logging of each
// attempt. Tier failures are expected in a fallback ladder, so they log
// at warn level rather than error.
type LoggingStrategy struct {
	next   veritext.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next veritext.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Name delegates to the wrapped strategy.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}

// Extract delegates to the wrapped strategy and logs the outcome.
func (s *LoggingStrategy) Extract(ctx context.Context, req veritext.ExtractionRequest) (*veritext.ExtractionResult, error) {
	begin := time.Now()
	result, err := s.next.Extract(ctx, req)
	if err != nil {
		s.logger.Warn("extraction attempt failed",
			"strategy", s.next.Name(),
			"url", req.URL,
			"code", veritext.ErrorCode(err),
			"err", veritext.ErrorMessage(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}

	s.logger.Info("extraction attempt succeeded",
		"strategy", s.next.Name(),
		"url", req.URL,
		"chars", len(result.Content),
		"duration", time.Since(begin),
	)
	return result, nil
}
