package goquery

import "github.com/veritext/veritext"

var _ veritext.ProfileRegistry = (*Registry)(nil)

// Registry manages publisher extraction profiles keyed by source category.
// It is populated once at startup and read-only afterwards, so concurrent
// extraction requests share it without locking.
type Registry struct {
	profiles map[veritext.SourceCategory]*veritext.Profile
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[veritext.SourceCategory]*veritext.Profile),
	}
}

// Register adds a profile, replacing any existing one for the same category.
func (r *Registry) Register(p *veritext.Profile) {
	r.profiles[p.Category] = p
}

// Get returns the profile for a category, or nil if none is registered.
func (r *Registry) Get(category veritext.SourceCategory) *veritext.Profile {
	return r.profiles[category]
}

// List returns all registered profiles.
func (r *Registry) List() []*veritext.Profile {
	profiles := make([]*veritext.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p)
	}
	return profiles
}

// RegisterDefaultProfiles registers every built-in publisher profile.
func RegisterDefaultProfiles(r veritext.ProfileRegistry) {
	r.Register(NewG1Profile())
	r.Register(NewFolhaProfile())
	r.Register(NewEstadaoProfile())
	r.Register(NewAosFatosProfile())
	r.Register(NewLupaProfile())
}
