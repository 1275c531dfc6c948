package veritext

// Converter converts HTML to Markdown. Markdown doubles as the pipeline's
// readable-text form for content that only exists as HTML (the fallback
// extractor's output, remote rendering results without a text field).
type Converter interface {
	// Convert transforms clean HTML content into Markdown.
	Convert(html string) (string, error)
}
