package provider

import "image-gateway/internal/domain/model"

// Provider describes one upstream generation backend.
type Provider struct {
	Name         string
	Endpoint     string // submit path, joined to the upstream base URL
	MultiVariant bool
	// Variants maps a requested image size to the provider-native variant.
	// Only consulted for multi-variant providers.
	Variants        map[model.ImageSize]string
	FallbackVariant string
}

type modelEntry struct {
	provider string
	// variant embedded in the canonical model name; empty means
	// "derive from the requested size".
	variant string
}

// Catalog is the static registry mapping logical model names to providers.
// It holds no state and is safe for concurrent use.
type Catalog struct {
	providers    map[string]*Provider
	models       map[string]modelEntry
	aliases      map[string]string
	defaultModel string
}

// DefaultCatalog returns the built-in provider table.
func DefaultCatalog() *Catalog {
	flux := &Provider{
		Name:         "flux",
		Endpoint:     "/submit/flux",
		MultiVariant: true,
		Variants: map[model.ImageSize]string{
			model.Size256:  "flux-schnell",
			model.Size512:  "flux-schnell",
			model.Size1024: "flux-dev",
			model.SizeWide: "flux-pro",
			model.SizeTall: "flux-pro",
		},
		FallbackVariant: "flux-schnell",
	}
	turbo := &Provider{
		Name:     "turbo",
		Endpoint: "/submit/turbo",
	}
	return &Catalog{
		providers: map[string]*Provider{
			flux.Name:  flux,
			turbo.Name: turbo,
		},
		models: map[string]modelEntry{
			"flux":         {provider: "flux"}, // variant derived from size
			"flux-schnell": {provider: "flux", variant: "flux-schnell"},
			"flux-dev":     {provider: "flux", variant: "flux-dev"},
			"flux-pro":     {provider: "flux", variant: "flux-pro"},
			"sdxl-turbo":   {provider: "turbo"},
		},
		aliases: map[string]string{
			"dall-e-2":         "flux",
			"dall-e-3":         "flux-dev",
			"stable-diffusion": "sdxl-turbo",
		},
		defaultModel: "flux",
	}
}

// WithDefaultModel overrides the model used when the caller sends none.
// The name must be a canonical model; unknown names keep the built-in default.
func (c *Catalog) WithDefaultModel(name string) *Catalog {
	if _, ok := c.models[name]; ok {
		c.defaultModel = name
	}
	return c
}

// Models lists the canonical model names.
func (c *Catalog) Models() []string {
	out := make([]string, 0, len(c.models))
	for name := range c.models {
		out = append(out, name)
	}
	return out
}

// Provider looks up a provider by name.
func (c *Catalog) Provider(name string) (*Provider, bool) {
	p, ok := c.providers[name]
	return p, ok
}
