// Package pipeline orchestrates content extraction. It classifies a URL
// into a source category, walks that category's ladder of extraction
// strategies until one succeeds, and stamps the winning result with
// provenance metadata. Batch extraction adds deduplication, per-domain
// rate limiting and bounded concurrency on top of the single-URL path.
package pipeline

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/veritext/veritext"
)

// Pipeline routes extraction requests to category-specific strategy
// ladders. Social media URLs go straight to remote rendering; known
// publishers try their structured strategy first, then the lightweight
// fetch, then remote rendering; everything else skips the structured
// tier.
type Pipeline struct {
	// Classify maps a URL to its source category. Defaults to
	// veritext.Classify when nil.
	Classify func(rawURL string) veritext.SourceCategory

	// Publishers holds the structured strategy per publisher category.
	Publishers map[veritext.SourceCategory]veritext.Strategy

	// Lightweight is the plain-HTTP strategy shared by all non-social
	// categories.
	Lightweight veritext.Strategy

	// Remote holds the remote rendering strategy per category. A
	// category without an entry falls back to the generic web entry.
	Remote map[veritext.SourceCategory]veritext.Strategy

	// RateLimiter, when set, spaces out batch requests per domain.
	RateLimiter veritext.DomainLimiter

	// Concurrency bounds the batch worker pool. Defaults to 4.
	Concurrency int
}

// Extract runs the fallback ladder for a single URL. It always returns
// a result: a failed ladder yields an unsuccessful result carrying the
// last tier's error, so batch callers never lose track of a URL.
func (p *Pipeline) Extract(ctx context.Context, req veritext.ExtractionRequest) *veritext.ExtractionResult {
	if err := req.Validate(); err != nil {
		return veritext.NewFailure(err)
	}

	category := p.classify(req.URL)
	ladder := p.ladder(category)
	if len(ladder) == 0 {
		err := veritext.Errorf(veritext.EUNSUPPORTED, "no extraction strategy available for category %s", category)
		return p.stampFailure(veritext.NewFailure(err), category)
	}

	var lastErr error
	for _, strategy := range ladder {
		if ctx.Err() != nil {
			lastErr = veritext.Errorf(veritext.EINTERNAL, "extraction canceled: %v", ctx.Err())
			break
		}

		result, err := strategy.Extract(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}

		return p.stampSuccess(result, category)
	}

	return p.stampFailure(veritext.NewFailure(lastErr), category)
}

func (p *Pipeline) classify(rawURL string) veritext.SourceCategory {
	if p.Classify != nil {
		return p.Classify(rawURL)
	}
	return veritext.Classify(rawURL)
}

// ladder returns the ordered strategies for a category. Tiers without a
// configured strategy are skipped rather than treated as failures.
func (p *Pipeline) ladder(category veritext.SourceCategory) []veritext.Strategy {
	var tiers []veritext.Strategy

	if !category.IsSocialMedia() {
		if category.IsKnownPublisher() {
			if s, ok := p.Publishers[category]; ok {
				tiers = append(tiers, s)
			}
		}
		if p.Lightweight != nil {
			tiers = append(tiers, p.Lightweight)
		}
	}

	if remote := p.remoteFor(category); remote != nil {
		tiers = append(tiers, remote)
	}

	return tiers
}

func (p *Pipeline) remoteFor(category veritext.SourceCategory) veritext.Strategy {
	if s, ok := p.Remote[category]; ok {
		return s
	}
	return p.Remote[veritext.CategoryGenericWeb]
}

// stampSuccess adds provenance metadata to a successful result: a fresh
// request ID, the source category and a content hash for downstream
// dedup.
func (p *Pipeline) stampSuccess(result *veritext.ExtractionResult, category veritext.SourceCategory) *veritext.ExtractionResult {
	if result.Metadata == nil {
		result.Metadata = make(map[string]any)
	}
	result.Metadata[veritext.MetaRequestID] = uuid.NewString()
	result.Metadata[veritext.MetaSourceCategory] = string(category)
	result.Metadata[veritext.MetaContentHash] = fmt.Sprintf("%x", xxhash.Sum64String(result.Content))
	return result
}

func (p *Pipeline) stampFailure(result *veritext.ExtractionResult, category veritext.SourceCategory) *veritext.ExtractionResult {
	if result.Metadata == nil {
		result.Metadata = make(map[string]any)
	}
	result.Metadata[veritext.MetaRequestID] = uuid.NewString()
	result.Metadata[veritext.MetaSourceCategory] = string(category)
	return result
}
