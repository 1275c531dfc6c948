package veritext

import "context"

// MinContentLength is the minimum-length gate applied to extracted content
// after all cleanup. Anything shorter is "page fetched but essentially
// empty", not a success.
const MinContentLength = 50

// ExtractionRequest describes a single extraction call. It is caller-owned
// and read-only through the pipeline.
type ExtractionRequest struct {
	URL string `json:"url"`

	// MaxChars truncates the returned content to a prefix of this many
	// characters when positive. No word-boundary awareness.
	MaxChars int `json:"max_chars,omitempty"`
}

// Validate returns an error if the request contains invalid fields.
func (r *ExtractionRequest) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "extraction request URL required")
	}
	if r.MaxChars < 0 {
		return Errorf(EINVALID, "max_chars must not be negative")
	}
	return nil
}

// ExtractionResult is the single output contract every strategy and the
// orchestrator produce. Success implies non-empty content that already
// passed the minimum-length gate; failure implies empty content.
type ExtractionResult struct {
	Success  bool           `json:"success"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
	Error    string         `json:"error,omitempty"`
}

// Metadata keys populated by strategies and the orchestrator.
const (
	MetaExtractionTool = "extraction_tool"
	MetaTitle          = "title"
	MetaDescription    = "description"
	MetaSourceCategory = "source_category"
	MetaRequestID      = "request_id"
	MetaContentHash    = "content_hash"
)

// NewSuccess builds a successful result produced by the named tool.
// The content is expected to have passed FinalizeContent already.
func NewSuccess(tool, content string) *ExtractionResult {
	return &ExtractionResult{
		Success: true,
		Content: content,
		Metadata: map[string]any{
			MetaExtractionTool: tool,
		},
	}
}

// NewFailure builds a failed result carrying the error's message.
func NewFailure(err error) *ExtractionResult {
	return &ExtractionResult{
		Success:  false,
		Content:  "",
		Metadata: map[string]any{},
		Error:    ErrorMessage(err),
	}
}

// Strategy is one extraction tier in a category's fallback ladder.
// A returned error means the tier failed and the orchestrator should
// advance to the next tier; a returned result is a success whose content
// already passed the minimum-length gate and truncation.
type Strategy interface {
	// Name returns the strategy's identifier, recorded in result
	// metadata as the extraction tool.
	Name() string

	// Extract fetches and extracts content for the request.
	// The context controls timeout and cancellation.
	Extract(ctx context.Context, req ExtractionRequest) (*ExtractionResult, error)
}
