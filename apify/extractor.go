package apify

import (
	"context"
	"strings"
	"time"

	"github.com/veritext/veritext"
)

// Default actor IDs. The social actor logs into the target platform and
// renders the post; the crawler actor drives a headless browser against
// arbitrary pages.
const (
	ActorSocialScraper = "apify~social-media-scraper"
	ActorWebCrawler    = "apify~website-content-crawler"
)

// JobSpec describes the actor and resource budget used for a rendering
// job.
type JobSpec struct {
	ActorID  string
	MemoryMB int
	Timeout  time.Duration
}

// DefaultJobSpecs returns the per-category rendering budgets. Social
// platforms get a small dedicated actor; everything else runs the
// full browser crawler with a larger memory ceiling.
func DefaultJobSpecs() map[veritext.SourceCategory]JobSpec {
	social := JobSpec{ActorID: ActorSocialScraper, MemoryMB: 1024, Timeout: 60 * time.Second}
	web := JobSpec{ActorID: ActorWebCrawler, MemoryMB: 4096, Timeout: 120 * time.Second}

	return map[veritext.SourceCategory]JobSpec{
		veritext.CategoryFacebook:   social,
		veritext.CategoryInstagram:  social,
		veritext.CategoryTwitter:    social,
		veritext.CategoryTikTok:     social,
		veritext.CategoryG1:         web,
		veritext.CategoryFolha:      web,
		veritext.CategoryEstadao:    web,
		veritext.CategoryAosFatos:   web,
		veritext.CategoryLupa:       web,
		veritext.CategoryGenericWeb: web,
	}
}

// Ensure Extractor implements veritext.Strategy at compile time.
var _ veritext.Strategy = (*Extractor)(nil)

// Extractor runs a remote rendering job and extracts the text of its
// first output record. It is the last rung of every fallback ladder and
// the only rung for social media URLs.
type Extractor struct {
	client    *Client
	spec      JobSpec
	converter veritext.Converter
}

// NewExtractor creates an extraction strategy running jobs per spec on
// the given client. The converter turns HTML-only job output into
// readable text and may be nil when the actor always emits text.
func NewExtractor(client *Client, spec JobSpec, converter veritext.Converter) *Extractor {
	return &Extractor{
		client:    client,
		spec:      spec,
		converter: converter,
	}
}

// Name implements veritext.Strategy.
func (e *Extractor) Name() string {
	return "remote_rendering"
}

// actorInput is the request body shared by the rendering actors.
type actorInput struct {
	StartURLs []startURL `json:"startUrls"`
	MaxDepth  int        `json:"maxCrawlDepth"`
}

type startURL struct {
	URL string `json:"url"`
}

// Extract implements veritext.Strategy. It submits a single-URL run,
// waits for it to finish and reads the first dataset record. Output
// fields are tried in order: plain text, markdown, then raw HTML put
// through the converter.
func (e *Extractor) Extract(ctx context.Context, req veritext.ExtractionRequest) (*veritext.ExtractionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	input := actorInput{
		StartURLs: []startURL{{URL: req.URL}},
		MaxDepth:  0,
	}

	run, err := e.client.StartRun(ctx, e.spec.ActorID, input, e.spec.MemoryMB, e.spec.Timeout)
	if err != nil {
		return nil, err
	}

	// Give the poll loop slack beyond the server-side timeout so a run
	// that finishes at the deadline is still observed.
	run, err = e.client.WaitForRun(ctx, run.ID, e.spec.Timeout+30*time.Second)
	if err != nil {
		return nil, err
	}
	if run.Status != StatusSucceeded {
		return nil, veritext.Errorf(veritext.EREMOTE, "rendering job %s finished with status %s", run.ID, run.Status)
	}

	items, err := e.client.DatasetItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, veritext.Errorf(veritext.EREMOTE, "rendering job %s produced no output for %s", run.ID, req.URL)
	}

	text, err := e.itemText(items[0])
	if err != nil {
		return nil, err
	}

	content, err := veritext.FinalizeContent(text, req.MaxChars)
	if err != nil {
		return nil, err
	}

	result := veritext.NewSuccess(e.Name(), content)
	if title := stringField(items[0], "title"); title != "" {
		result.Metadata[veritext.MetaTitle] = title
	}
	return result, nil
}

// itemText picks the best textual field out of a dataset record.
func (e *Extractor) itemText(item map[string]any) (string, error) {
	if text := stringField(item, "text"); text != "" {
		return text, nil
	}
	if md := stringField(item, "markdown"); md != "" {
		return md, nil
	}
	if html := stringField(item, "html"); html != "" {
		if e.converter == nil {
			return "", veritext.Errorf(veritext.EREMOTE, "rendering job returned HTML only and no converter is configured")
		}
		return e.converter.Convert(html)
	}
	return "", veritext.Errorf(veritext.EREMOTE, "rendering job record has no usable text field")
}

func stringField(item map[string]any, key string) string {
	s, _ := item[key].(string)
	return strings.TrimSpace(s)
}
