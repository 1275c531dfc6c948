package goquery

import "github.com/veritext/veritext"

// NewAosFatosProfile returns the extraction profile for Aos Fatos
// (aosfatos.org).
//
// Aos Fatos renders every non-body element with generated utility classes,
// so the classless-only policy holds: a paragraph carrying any class
// attribute at all is chrome, not article text. Checks publish their
// verdict as ClaimReview structured data.
func NewAosFatosProfile() *veritext.Profile {
	return &veritext.Profile{
		Name:     "aosfatos",
		Category: veritext.CategoryAosFatos,
		ContainerSelectors: []string{
			".entry-content",
			"article",
		},
		ClasslessOnly: true,
		SchemaTypes:   []string{"ClaimReview", "NewsArticle"},
	}
}
