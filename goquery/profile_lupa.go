package goquery

import "github.com/veritext/veritext"

// NewLupaProfile returns the extraction profile for Agência Lupa.
//
// Lupa's edge terminates TLS with a configuration that fails a verified
// handshake from Go's default client, so the fetcher built for this
// profile — and only this one — relaxes certificate verification. Longer
// captions on check imagery push the paragraph floor up to 40 characters.
func NewLupaProfile() *veritext.Profile {
	return &veritext.Profile{
		Name:     "lupa",
		Category: veritext.CategoryLupa,
		ContainerSelectors: []string{
			".post-inner",
			".content-text",
			"article",
		},
		NoiseClasses: []string{
			"etiqueta",
			"share",
			"newsletter",
			"post-tags",
		},
		StopMarkers: []string{
			"leia também",
		},
		SchemaTypes:        []string{"ClaimReview", "NewsArticle"},
		MinParagraphLength: 40,
		InsecureTLS:        true,
	}
}
