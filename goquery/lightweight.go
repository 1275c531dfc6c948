// Package goquery implements the local extraction tiers: a lightweight
// generic DOM-to-text strategy and the profile-driven structured publisher
// strategy, both built on CSS selection.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/veritext/veritext"
)

// blockSelector lists the block-level elements a container is reduced to.
const blockSelector = "p, h1, h2, h3, h4, h5, h6, li"

// Ensure Lightweight implements veritext.Strategy at compile time.
var _ veritext.Strategy = (*Lightweight)(nil)

// Lightweight is the cheap extraction tier: a direct HTTP fetch and a
// generic DOM-to-text reduction, no JavaScript, no publisher knowledge.
type Lightweight struct {
	fetcher veritext.Fetcher
}

// NewLightweight creates a new Lightweight strategy over the given fetcher.
func NewLightweight(fetcher veritext.Fetcher) *Lightweight {
	return &Lightweight{fetcher: fetcher}
}

// Name returns the strategy's identifier.
func (s *Lightweight) Name() string {
	return "lightweight_http"
}

// Extract fetches the URL and reduces the page to newline-joined text.
// The body container is chosen by priority: main, then article, then body.
func (s *Lightweight) Extract(ctx context.Context, req veritext.ExtractionRequest) (*veritext.ExtractionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	rawHTML := string(resp.Body)

	// A corrupt payload signals a silent decompression or encoding
	// mismatch; parsing it would only produce garbage downstream.
	verdict := veritext.DetectCorruption(rawHTML, veritext.CorruptionSampleSize, veritext.PayloadCorruptionThreshold)
	if verdict.IsCorrupt {
		return nil, veritext.Errorf(veritext.ECORRUPT,
			"payload corrupt: %.0f%% non-printable characters in sample", verdict.NonPrintableRatio*100)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, veritext.Errorf(veritext.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, iframe, noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	description := strings.TrimSpace(doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))

	container := selectContainer(doc)
	text := containerText(container)

	content, err := veritext.FinalizeContent(text, req.MaxChars)
	if err != nil {
		return nil, err
	}

	result := veritext.NewSuccess(s.Name(), content)
	if title != "" {
		result.Metadata[veritext.MetaTitle] = title
	}
	if description != "" {
		result.Metadata[veritext.MetaDescription] = description
	}
	return result, nil
}

// selectContainer picks the body candidate container by priority:
// main, article, body — first present wins.
func selectContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{"main", "article", "body"} {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return doc.Selection
}

// containerText reduces a container to newline-joined block texts. A
// container without block elements falls back to its flat text.
func containerText(container *goquery.Selection) string {
	var blocks []string
	container.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return strings.TrimSpace(container.Text())
	}
	return strings.Join(blocks, "\n")
}
