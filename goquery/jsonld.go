package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Structured-data metadata keys, beyond the shared ones in the root package.
const (
	metaAuthor       = "author"
	metaPublished    = "date_published"
	metaModified     = "date_modified"
	metaHeadline     = "headline"
	metaReviewRating = "review_rating"
)

// extractSchemaMetadata searches every embedded JSON-LD block for a node
// whose @type matches one of the target schema types and mines the usual
// article fields from it. Entirely best-effort: malformed blocks are
// skipped and an empty map is a normal outcome.
func extractSchemaMetadata(doc *goquery.Document, schemaTypes []string) map[string]any {
	meta := make(map[string]any)
	if len(schemaTypes) == 0 {
		return meta
	}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return true
		}
		if node := findSchemaNode(payload, schemaTypes); node != nil {
			mineSchemaNode(node, meta)
			return false
		}
		return true
	})

	return meta
}

// findSchemaNode locates the first object matching any target type. It
// checks the value itself, the elements of a top-level array, and the
// members of an @graph list.
func findSchemaNode(payload any, schemaTypes []string) map[string]any {
	switch v := payload.(type) {
	case map[string]any:
		if typeMatches(v["@type"], schemaTypes) {
			return v
		}
		if graph, ok := v["@graph"].([]any); ok {
			return findSchemaNode(graph, schemaTypes)
		}
	case []any:
		for _, item := range v {
			if node, ok := item.(map[string]any); ok && typeMatches(node["@type"], schemaTypes) {
				return node
			}
		}
	}
	return nil
}

// typeMatches handles @type declared as a single string or as a list,
// both of which are valid JSON-LD.
func typeMatches(declared any, schemaTypes []string) bool {
	switch v := declared.(type) {
	case string:
		for _, want := range schemaTypes {
			if strings.EqualFold(v, want) {
				return true
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				for _, want := range schemaTypes {
					if strings.EqualFold(s, want) {
						return true
					}
				}
			}
		}
	}
	return false
}

// mineSchemaNode copies the interesting article fields out of a matched
// schema node.
func mineSchemaNode(node map[string]any, meta map[string]any) {
	if author := authorName(node["author"]); author != "" {
		meta[metaAuthor] = author
	}
	if s, ok := node["datePublished"].(string); ok && s != "" {
		meta[metaPublished] = s
	}
	if s, ok := node["dateModified"].(string); ok && s != "" {
		meta[metaModified] = s
	}
	if s, ok := node["headline"].(string); ok && s != "" {
		meta[metaHeadline] = s
	}
	// ClaimReview carries its verdict in reviewRating.alternateName.
	if rating, ok := node["reviewRating"].(map[string]any); ok {
		if s, ok := rating["alternateName"].(string); ok && s != "" {
			meta[metaReviewRating] = s
		}
	}
}

// authorName normalizes the schema.org author shapes: a plain string, a
// Person/Organization object, or a list of either.
func authorName(v any) string {
	switch a := v.(type) {
	case string:
		return strings.TrimSpace(a)
	case map[string]any:
		if name, ok := a["name"].(string); ok {
			return strings.TrimSpace(name)
		}
	case []any:
		var names []string
		for _, item := range a {
			if name := authorName(item); name != "" {
				names = append(names, name)
			}
		}
		return strings.Join(names, ", ")
	}
	return ""
}
