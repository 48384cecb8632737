package provider

import (
	"errors"
	"testing"

	"image-gateway/internal/domain"
	"image-gateway/internal/domain/model"
)

func TestResolveCanonicalModels(t *testing.T) {
	c := DefaultCatalog()

	cases := []struct {
		name        string
		model       string
		size        model.ImageSize
		wantProv    string
		wantVariant string
	}{
		{"embedded variant wins over size", "flux-pro", model.Size256, "flux", "flux-pro"},
		{"embedded variant, no size", "flux-dev", "", "flux", "flux-dev"},
		{"size mapped variant small", "flux", model.Size256, "flux", "flux-schnell"},
		{"size mapped variant medium", "flux", model.Size1024, "flux", "flux-dev"},
		{"size mapped variant wide", "flux", model.SizeWide, "flux", "flux-pro"},
		{"size mapped variant tall", "flux", model.SizeTall, "flux", "flux-pro"},
		{"absent size falls back", "flux", "", "flux", "flux-schnell"},
		{"single variant provider", "sdxl-turbo", model.Size1024, "turbo", ""},
		{"empty model uses default", "", model.Size512, "flux", "flux-schnell"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			target, err := c.Resolve(tc.model, tc.size)
			if err != nil {
				t.Fatalf("Resolve(%q, %q) failed: %v", tc.model, tc.size, err)
			}
			if target.Provider != tc.wantProv {
				t.Errorf("provider = %q, want %q", target.Provider, tc.wantProv)
			}
			if target.Variant != tc.wantVariant {
				t.Errorf("variant = %q, want %q", target.Variant, tc.wantVariant)
			}
			if _, ok := c.Provider(target.Provider); !ok {
				t.Errorf("resolved provider %q is not in the catalog", target.Provider)
			}
			if target.Alias != "" {
				t.Errorf("alias = %q, want empty for canonical model", target.Alias)
			}
		})
	}
}

func TestResolveAliases(t *testing.T) {
	c := DefaultCatalog()

	cases := []struct {
		alias         string
		size          model.ImageSize
		wantCanonical string
		wantVariant   string
	}{
		{"dall-e-2", model.Size512, "flux", "flux-schnell"},
		{"dall-e-3", model.Size256, "flux-dev", "flux-dev"},
		{"stable-diffusion", "", "sdxl-turbo", ""},
	}

	for _, tc := range cases {
		t.Run(tc.alias, func(t *testing.T) {
			target, err := c.Resolve(tc.alias, tc.size)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tc.alias, err)
			}
			if target.Alias != tc.alias {
				t.Errorf("alias = %q, want %q", target.Alias, tc.alias)
			}
			if target.CanonicalModel != tc.wantCanonical {
				t.Errorf("canonical = %q, want %q", target.CanonicalModel, tc.wantCanonical)
			}
			if target.Variant != tc.wantVariant {
				t.Errorf("variant = %q, want %q", target.Variant, tc.wantVariant)
			}
		})
	}
}

func TestResolveUnknownModel(t *testing.T) {
	c := DefaultCatalog()
	for _, name := range []string{"gpt-4o", "flux-ultra", "dall-e-4"} {
		if _, err := c.Resolve(name, model.Size1024); !errors.Is(err, domain.ErrInvalidModel) {
			t.Errorf("Resolve(%q) = %v, want ErrInvalidModel", name, err)
		}
	}
}

func TestResolveAllSupportedSizesForAllModels(t *testing.T) {
	c := DefaultCatalog()
	sizes := []model.ImageSize{"", model.Size256, model.Size512, model.Size1024, model.SizeWide, model.SizeTall}
	for _, name := range c.Models() {
		for _, size := range sizes {
			target, err := c.Resolve(name, size)
			if err != nil {
				t.Fatalf("Resolve(%q, %q) failed: %v", name, size, err)
			}
			if _, ok := c.Provider(target.Provider); !ok {
				t.Errorf("Resolve(%q, %q): provider %q missing from catalog", name, size, target.Provider)
			}
		}
	}
}

func TestWithDefaultModel(t *testing.T) {
	c := DefaultCatalog().WithDefaultModel("sdxl-turbo")
	target, err := c.Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve default failed: %v", err)
	}
	if target.CanonicalModel != "sdxl-turbo" {
		t.Errorf("default model = %q, want sdxl-turbo", target.CanonicalModel)
	}

	// Unknown override keeps the built-in default.
	c2 := DefaultCatalog().WithDefaultModel("nope")
	target, err = c2.Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve default failed: %v", err)
	}
	if target.CanonicalModel != "flux" {
		t.Errorf("default model = %q, want flux", target.CanonicalModel)
	}
}
