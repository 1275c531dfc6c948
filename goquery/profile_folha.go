package goquery

import (
	"net/url"
	"strings"

	"github.com/veritext/veritext"
)

// NewFolhaProfile returns the extraction profile for Folha de S.Paulo.
//
// Two network quirks live here as profile data rather than extractor
// branches: the bare folha.uol.com.br host redirects article URLs to
// section listings, so it is rewritten to the canonical www1 host before
// fetching; and the site's charset declaration is unreliable, so the body
// is decoded as raw UTF-8 bytes.
func NewFolhaProfile() *veritext.Profile {
	return &veritext.Profile{
		Name:     "folha",
		Category: veritext.CategoryFolha,
		ContainerSelectors: []string{
			".c-news__body",
			"article",
		},
		NoiseClasses: []string{
			"c-advertising",
			"c-newsletter",
			"c-top-links",
			"c-related-links",
			"toolbar",
		},
		SchemaTypes: []string{"NewsArticle"},
		RewriteURL:  rewriteFolhaHost,
		ForceUTF8:   true,
	}
}

// rewriteFolhaHost rewrites the bare or www Folha host to the canonical
// www1 host that serves articles directly.
func rewriteFolhaHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	host := strings.ToLower(u.Hostname())
	if host == "folha.uol.com.br" || host == "www.folha.uol.com.br" {
		u.Host = "www1.folha.uol.com.br"
		return u.String()
	}
	return rawURL
}
