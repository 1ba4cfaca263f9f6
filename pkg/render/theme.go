package render

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ErrThemeNotFound is returned by StaticSelector for unknown theme names.
var ErrThemeNotFound = errors.New("render: theme not found")

// StaticSelector resolves selections against a fixed set of manifests. It is
// the selector used when themes come from configuration instead of a theme
// registry.
type StaticSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*StaticSelector)(nil)

// NewStaticSelector registers manifests by name. The first manifest becomes
// the default theme.
func NewStaticSelector(defaultVariant string, manifests ...*theme.Manifest) (*StaticSelector, error) {
	s := &StaticSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		name := strings.TrimSpace(manifest.Name)
		if name == "" {
			return nil, errors.New("render: theme manifest name is required")
		}
		if _, exists := s.manifests[name]; exists {
			return nil, fmt.Errorf("render: theme %q already registered", name)
		}
		s.manifests[name] = manifest
		if s.defaultTheme == "" {
			s.defaultTheme = name
		}
	}
	return s, nil
}

// Select returns the named manifest, falling back to the defaults for empty
// arguments.
func (s *StaticSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.defaultVariant
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// ResolveTheme selects a theme and flattens it into renderer configuration.
// A nil selector yields a nil config.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme: %w", err)
	}
	return RendererConfigFromSelection(selection), nil
}

// RendererConfigFromSelection merges base and variant tokens and derives CSS
// variables ("brand" becomes "--brand").
func RendererConfigFromSelection(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
		Tokens:  map[string]string{},
		CSSVars: map[string]string{},
	}
	if selection.Manifest == nil {
		return cfg
	}
	for key, value := range selection.Manifest.Tokens {
		cfg.Tokens[key] = value
	}
	if v, ok := selection.Manifest.Variants[selection.Variant]; ok {
		for key, value := range v.Tokens {
			cfg.Tokens[key] = value
		}
	}
	for key, value := range cfg.Tokens {
		cfg.CSSVars[CSSVarName(key)] = value
	}
	return cfg
}

// CSSVarName prefixes token names with "--" unless already present.
func CSSVarName(token string) string {
	token = strings.TrimSpace(token)
	if token == "" || strings.HasPrefix(token, "--") {
		return token
	}
	return "--" + strings.ReplaceAll(token, ".", "-")
}
