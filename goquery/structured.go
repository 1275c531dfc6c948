package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/veritext/veritext"
)

// Ensure Structured implements veritext.Strategy at compile time.
var _ veritext.Strategy = (*Structured)(nil)

// Structured is the publisher-aware extraction tier. One generic
// implementation parameterized by a publisher profile replaces any
// per-publisher dispatch: adding a publisher is a data change, not a code
// branch.
type Structured struct {
	profile   *veritext.Profile
	fetcher   veritext.Fetcher
	fallback  veritext.Extractor
	converter veritext.Converter
}

// NewStructured creates a Structured strategy for the given profile.
// The fetcher should already carry the profile's network quirks
// (relaxed TLS, forced UTF-8); the fallback extractor and converter
// provide the readability-style safety net.
func NewStructured(profile *veritext.Profile, fetcher veritext.Fetcher, fallback veritext.Extractor, converter veritext.Converter) *Structured {
	return &Structured{
		profile:   profile,
		fetcher:   fetcher,
		fallback:  fallback,
		converter: converter,
	}
}

// Name returns the strategy's identifier, e.g. "structured_g1".
func (s *Structured) Name() string {
	return "structured_" + s.profile.Name
}

// Extract fetches the article and collects its body under the profile's
// rules, falling back to the generic boilerplate-removal extractor when
// the known markup yields nothing.
func (s *Structured) Extract(ctx context.Context, req veritext.ExtractionRequest) (*veritext.ExtractionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	url := req.URL
	if s.profile.RewriteURL != nil {
		url = s.profile.RewriteURL(url)
	}

	resp, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	rawHTML := string(resp.Body)

	verdict := veritext.DetectCorruption(rawHTML, veritext.CorruptionSampleSize, veritext.PayloadCorruptionThreshold)
	if verdict.IsCorrupt {
		return nil, veritext.Errorf(veritext.ECORRUPT,
			"payload corrupt: %.0f%% non-printable characters in sample", verdict.NonPrintableRatio*100)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, veritext.Errorf(veritext.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	schemaMeta := extractSchemaMetadata(doc, s.profile.SchemaTypes)

	body := s.collectBody(doc)

	// The safety net is computed regardless of the structured outcome:
	// publisher markup changes should degrade to generic extraction, not
	// to total tier failure.
	fallbackText := s.fallbackText(rawHTML)

	selected := body
	if strings.TrimSpace(selected) == "" {
		selected = fallbackText
	}

	content, err := veritext.FinalizeContent(selected, req.MaxChars)
	if err != nil {
		return nil, err
	}

	result := veritext.NewSuccess(s.Name(), content)
	if title != "" {
		result.Metadata[veritext.MetaTitle] = title
	}
	for k, v := range schemaMeta {
		result.Metadata[k] = v
	}
	return result, nil
}

// collectBody walks the profile's container candidates in priority order
// and returns the joined body paragraphs of the first container that
// yields any.
func (s *Structured) collectBody(doc *goquery.Document) string {
	for _, selector := range s.profile.ContainerSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		if paras := s.collectParagraphs(container); len(paras) > 0 {
			return strings.Join(paras, "\n\n")
		}
	}
	return ""
}

// collectParagraphs iterates the container's structural nodes in document
// order, applying the profile's noise rules and stop markers.
func (s *Structured) collectParagraphs(container *goquery.Selection) []string {
	minLen := s.profile.MinParagraph()

	var paras []string
	container.Find("p, h2, h3, h4, h5, h6, blockquote").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())

		if isHeading(sel) {
			// A stop marker in an intertitle means everything from
			// here on is navigational, not article body.
			if matchesStopMarker(text, s.profile.StopMarkers) {
				return false
			}
			if len([]rune(text)) >= minLen {
				paras = append(paras, text)
			}
			return true
		}

		if s.excludedByClass(sel) {
			return true
		}
		if len([]rune(text)) < minLen {
			return true
		}
		paras = append(paras, text)
		return true
	})
	return paras
}

// excludedByClass applies the profile's class policy to a paragraph.
func (s *Structured) excludedByClass(sel *goquery.Selection) bool {
	class, hasClass := sel.Attr("class")

	if s.profile.ClasslessOnly {
		// Noise elements in these publishers always carry at least one
		// generated utility class; any class at all disqualifies.
		return hasClass
	}

	if !hasClass {
		return false
	}
	for _, c := range strings.Fields(class) {
		for _, noise := range s.profile.NoiseClasses {
			if strings.EqualFold(c, noise) {
				return true
			}
		}
	}
	return false
}

// fallbackText runs the generic boilerplate-removal extractor and converts
// its content HTML to readable text. Best-effort: any failure yields "".
func (s *Structured) fallbackText(rawHTML string) string {
	res, err := s.fallback.Extract(rawHTML)
	if err != nil || res == nil || strings.TrimSpace(res.ContentHTML) == "" {
		return ""
	}
	text, err := s.converter.Convert(res.ContentHTML)
	if err != nil {
		return ""
	}
	return text
}

// isHeading reports whether the node is a structural heading/intertitle.
func isHeading(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// matchesStopMarker does a case-insensitive substring match of the heading
// text against the profile's stop markers.
func matchesStopMarker(text string, markers []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, m := range markers {
		if m != "" && strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
