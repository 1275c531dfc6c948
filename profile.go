package veritext

// DefaultMinParagraphLength excludes captions and labels from body
// collection when a profile does not tune its own value.
const DefaultMinParagraphLength = 30

// Profile is the per-publisher configuration driving the structured
// extractor: where the article body lives, what counts as noise, where the
// body ends, and which structured-metadata schema to mine. It is static
// data, created once at startup and never mutated.
type Profile struct {
	// Name identifies the publisher, e.g. "g1".
	Name string

	// Category is the source category this profile serves.
	Category SourceCategory

	// ContainerSelectors are body container candidates tried in priority
	// order; the first container yielding any candidate paragraph wins.
	ContainerSelectors []string

	// NoiseClasses lists CSS class names whose presence on a paragraph
	// excludes it from the body.
	NoiseClasses []string

	// ClasslessOnly accepts only paragraphs carrying no CSS class
	// attribute at all. Useful when the publisher's noise elements are
	// guaranteed to carry generated utility classes, making the absence
	// of any class a markup-structure-independent body signal.
	ClasslessOnly bool

	// StopMarkers are case-insensitive phrases that, found in a
	// structural heading, terminate body collection: everything after is
	// navigational ("see also", "more videos") rather than article body.
	StopMarkers []string

	// SchemaTypes are the JSON-LD @type values to search for metadata
	// (e.g. "NewsArticle", "ClaimReview").
	SchemaTypes []string

	// MinParagraphLength is the per-paragraph length floor for body
	// candidates. Zero means DefaultMinParagraphLength.
	MinParagraphLength int

	// RewriteURL is an optional pre-fetch hook, e.g. canonical-host
	// rewriting for publishers that redirect the alias host to a section
	// page instead of the article.
	RewriteURL func(rawURL string) string

	// ForceUTF8 bypasses declared-charset decoding and treats the
	// response body as UTF-8 bytes, for publishers whose charset
	// declaration is wrong.
	ForceUTF8 bool

	// InsecureTLS marks a publisher whose TLS stack cannot complete a
	// handshake against a verifying client. The fetcher built for this
	// profile, and only that fetcher, relaxes verification.
	InsecureTLS bool
}

// Validate returns an error if the profile contains invalid fields.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "profile name required")
	}
	if p.Category == "" {
		return Errorf(EINVALID, "profile category required")
	}
	if len(p.ContainerSelectors) == 0 {
		return Errorf(EINVALID, "profile %q needs at least one container selector", p.Name)
	}
	return nil
}

// MinParagraph returns the effective per-paragraph length floor.
func (p *Profile) MinParagraph() int {
	if p.MinParagraphLength > 0 {
		return p.MinParagraphLength
	}
	return DefaultMinParagraphLength
}

// ProfileRegistry manages publisher extraction profiles keyed by source
// category.
type ProfileRegistry interface {
	// Register adds a profile, replacing any existing one for the
	// same category.
	Register(p *Profile)

	// Get returns the profile for a category, or nil if none is
	// registered.
	Get(category SourceCategory) *Profile

	// List returns all registered profiles.
	List() []*Profile
}
