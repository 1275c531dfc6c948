package goquery

import "github.com/veritext/veritext"

// NewEstadaoProfile returns the extraction profile for Estadão
// (estadao.com.br).
func NewEstadaoProfile() *veritext.Profile {
	return &veritext.Profile{
		Name:     "estadao",
		Category: veritext.CategoryEstadao,
		ContainerSelectors: []string{
			".news-body",
			".styles__NewsBody",
			"article",
		},
		NoiseClasses: []string{
			"ads",
			"advertising",
			"newsletter",
			"related-news",
			"tags",
			"paywall",
		},
		StopMarkers: []string{
			"leia também",
			"veja mais",
		},
		SchemaTypes: []string{"NewsArticle"},
	}
}
