package goquery

import "github.com/veritext/veritext"

// NewG1Profile returns the extraction profile for G1 (g1.globo.com).
//
// G1 keeps article paragraphs under .content-text containers and marks
// section intertitles with plain headings. "Veja também" and "Mais vídeos"
// intertitles open the related-content block, so body collection stops
// there.
func NewG1Profile() *veritext.Profile {
	return &veritext.Profile{
		Name:     "g1",
		Category: veritext.CategoryG1,
		ContainerSelectors: []string{
			".mc-article-body",
			".content-text",
			"article",
		},
		NoiseClasses: []string{
			"content-ad",
			"content-publicidade",
			"content-video",
			"content-media",
			"social-share",
		},
		StopMarkers: []string{
			"veja também",
			"mais vídeos",
			"veja os vídeos",
		},
		SchemaTypes: []string{"NewsArticle"},
	}
}
