package provider

import (
	"fmt"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
)

// ResolvedTarget is the routing decision for one request: which provider to
// call, at which endpoint, with which native variant. Derived
// deterministically from the requested model and size; never mutated.
type ResolvedTarget struct {
	Provider       string
	CanonicalModel string
	// Alias holds the caller's compatibility alias when one was used.
	// The substitution is internal; the caller-visible identity stays
	// the alias.
	Alias    string
	Endpoint string
	// Variant is attached to the submit request for multi-variant
	// providers; empty for single-variant ones.
	Variant string
}

// Resolve normalizes a requested model/size pair to a routing target.
// Pure function over the catalog; the only failure is domain.ErrInvalidModel.
func (c *Catalog) Resolve(requestedModel string, size model.ImageSize) (*ResolvedTarget, error) {
	alias := ""
	name := requestedModel
	if name == "" {
		name = c.defaultModel
	}
	entry, ok := c.models[name]
	if !ok {
		canonical, isAlias := c.aliases[name]
		if !isAlias {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidModel, requestedModel)
		}
		alias = name
		name = canonical
		entry = c.models[name]
	}

	p := c.providers[entry.provider]
	variant := entry.variant
	if variant == "" && p.MultiVariant {
		variant = p.Variants[size]
		if variant == "" {
			variant = p.FallbackVariant
		}
	}
	return &ResolvedTarget{
		Provider:       p.Name,
		CanonicalModel: name,
		Alias:          alias,
		Endpoint:       p.Endpoint,
		Variant:        variant,
	}, nil
}
