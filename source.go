package veritext

import (
	"net/url"
	"strings"
)

// SourceCategory identifies the kind of site a URL points at. It is derived
// purely from the URL string, never from a network response, and is
// immutable once classified.
type SourceCategory string

// Social media categories. These sources sit behind JavaScript and
// anti-bot defenses, so only the remote rendering tier applies.
const (
	CategoryFacebook  SourceCategory = "facebook"
	CategoryInstagram SourceCategory = "instagram"
	CategoryTwitter   SourceCategory = "twitter"
	CategoryTikTok    SourceCategory = "tiktok"
)

// Known publisher categories, one per structured-extractor-supported outlet.
const (
	CategoryG1       SourceCategory = "g1"
	CategoryFolha    SourceCategory = "folha"
	CategoryEstadao  SourceCategory = "estadao"
	CategoryAosFatos SourceCategory = "aosfatos"
	CategoryLupa     SourceCategory = "lupa"
)

// CategoryGenericWeb is the fallthrough for unmatched hosts.
const CategoryGenericWeb SourceCategory = "generic_web"

// IsSocialMedia reports whether the category is a social platform.
func (c SourceCategory) IsSocialMedia() bool {
	switch c {
	case CategoryFacebook, CategoryInstagram, CategoryTwitter, CategoryTikTok:
		return true
	}
	return false
}

// IsKnownPublisher reports whether the category has a dedicated
// structured extractor.
func (c SourceCategory) IsKnownPublisher() bool {
	switch c {
	case CategoryG1, CategoryFolha, CategoryEstadao, CategoryAosFatos, CategoryLupa:
		return true
	}
	return false
}

// sourcePattern matches a host (exact or as a domain suffix) plus an
// optional path prefix. Patterns are checked in order; first match wins.
type sourcePattern struct {
	category   SourceCategory
	host       string
	pathPrefix string
}

// sourcePatterns is the ordered classification table: social platforms
// first (including short-link aliases), then known publishers. Adding a
// publisher is a pure data change here plus a profile registration.
var sourcePatterns = []sourcePattern{
	{category: CategoryFacebook, host: "facebook.com"},
	{category: CategoryFacebook, host: "fb.com"},
	{category: CategoryFacebook, host: "fb.watch"},
	{category: CategoryInstagram, host: "instagram.com"},
	{category: CategoryInstagram, host: "instagr.am"},
	{category: CategoryTwitter, host: "twitter.com"},
	{category: CategoryTwitter, host: "x.com"},
	{category: CategoryTwitter, host: "t.co"},
	{category: CategoryTikTok, host: "tiktok.com"},

	// Lupa lives under a Folha subdomain path, so it must precede the
	// Folha pattern.
	{category: CategoryLupa, host: "piaui.folha.uol.com.br", pathPrefix: "/lupa"},
	{category: CategoryLupa, host: "lupa.uol.com.br"},
	{category: CategoryG1, host: "g1.globo.com"},
	{category: CategoryFolha, host: "folha.uol.com.br"},
	{category: CategoryEstadao, host: "estadao.com.br"},
	{category: CategoryAosFatos, host: "aosfatos.org"},
}

// Classify maps a URL to its source category. It is a total function:
// malformed or unmatched URLs classify as CategoryGenericWeb.
func Classify(rawURL string) SourceCategory {
	host, path := splitHostPath(rawURL)
	if host == "" {
		return CategoryGenericWeb
	}
	for _, p := range sourcePatterns {
		if !matchHost(host, p.host) {
			continue
		}
		if p.pathPrefix != "" && !strings.HasPrefix(path, p.pathPrefix) {
			continue
		}
		return p.category
	}
	return CategoryGenericWeb
}

// splitHostPath extracts the lowercased host and path from a raw URL,
// tolerating scheme-less input like "www.example.com/page".
func splitHostPath(rawURL string) (host, path string) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", ""
	}
	return strings.ToLower(u.Hostname()), strings.ToLower(u.Path)
}

// matchHost reports whether host equals pattern or is a subdomain of it.
// Suffix matching covers aliases like m.facebook.com and vm.tiktok.com
// without letting "x.com" match "netflix.com".
func matchHost(host, pattern string) bool {
	return host == pattern || strings.HasSuffix(host, "."+pattern)
}
