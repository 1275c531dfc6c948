package veritext

// ExtractResult holds the output of a generic boilerplate-removal pass
// over an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// Extractor removes boilerplate from HTML pages using readability-style
// heuristics. The structured publisher tier runs one of these over every
// page as a safety net for when the publisher's known markup fails.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
