package oauth

import "fmt"

// Registry holds the configured providers keyed by name. It performs no
// auth logic itself.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry registers the given providers. Names must be unique.
func NewRegistry(list ...Provider) *Registry {
	providers := make(map[string]Provider, len(list))
	for _, p := range list {
		providers[p.Name()] = p
	}
	return &Registry{providers: providers}
}

// Get returns the provider by name or an error if not registered.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("oauth: unknown provider %q", name)
	}
	return p, nil
}

// Names lists the registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
