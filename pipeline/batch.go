package pipeline

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/veritext/veritext"
	"github.com/veritext/veritext/bloom"
	"golang.org/x/sync/errgroup"
)

// Batch dedup filter sizing.
const (
	batchExpectedURLs      = 10000
	batchFalsePositiveRate = 0.01
)

// ProgressEvent reports progress during a batch extraction.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// ExtractAll extracts every URL in the list and returns one result per
// input, in input order. Repeated URLs are skipped after their first
// occurrence and reported as unsuccessful results. The progress
// callback, if provided, receives events as extraction proceeds.
func (p *Pipeline) ExtractAll(ctx context.Context, urls []string, maxChars int, progress ProgressFunc) []*veritext.ExtractionResult {
	total := len(urls)
	results := make([]*veritext.ExtractionResult, total)

	// Workers report progress concurrently; serialize for the callback.
	var progressMu sync.Mutex
	notify := func(event ProgressEvent) {
		if progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		progress(event)
	}

	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	// Dedup happens up front so workers never race on the filter.
	seen := bloom.NewFilter(batchExpectedURLs, batchFalsePositiveRate)
	pending := make([]int, 0, total)
	for i, rawURL := range urls {
		if seen.Seen(rawURL) {
			results[i] = veritext.NewFailure(
				veritext.Errorf(veritext.EINVALID, "duplicate of an earlier URL in the batch"))
			notify(ProgressEvent{Type: ProgressSkipped, Total: total, URL: rawURL})
			continue
		}
		pending = append(pending, i)
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, i := range pending {
		g.Go(func() error {
			rawURL := urls[i]

			if p.RateLimiter != nil {
				if host := urlHost(rawURL); host != "" {
					if err := p.RateLimiter.Wait(gctx, host); err != nil {
						results[i] = veritext.NewFailure(
							veritext.Errorf(veritext.EINTERNAL, "rate limit wait canceled: %v", err))
						return nil
					}
				}
			}

			result := p.Extract(gctx, veritext.ExtractionRequest{URL: rawURL, MaxChars: maxChars})
			results[i] = result

			event := ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Add(1)),
				Total:     total,
				URL:       rawURL,
			}
			if !result.Success {
				event.Type = ProgressFailed
				event.Error = errors.New(result.Error)
			}
			notify(event)
			return nil
		})
	}
	_ = g.Wait()

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return results
}

func urlHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
