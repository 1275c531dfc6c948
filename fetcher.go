package veritext

import "context"

// FetchResponse is a fetched HTTP document. Body has already been decoded
// to UTF-8 according to the declared charset unless the fetcher was
// configured otherwise.
type FetchResponse struct {
	Body        []byte
	ContentType string
	StatusCode  int
	FinalURL    string
}

// Fetcher retrieves documents over HTTP. Implementations present a
// realistic browser identity and share a pooled client across requests;
// they do not execute JavaScript.
type Fetcher interface {
	// Fetch retrieves the document at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResponse, error)

	// Close releases client resources.
	Close() error
}
