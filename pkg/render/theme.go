package render

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ErrThemeNotFound is returned when no manifest is registered for a theme
// name.
var ErrThemeNotFound = theme.ErrThemeNotFound

// ThemeConfig is the resolved theme handed to renderers.
type ThemeConfig struct {
	Theme   string            `json:"theme"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
	CSSVars map[string]string `json:"css_vars,omitempty"`
}

// NewThemeRegistry registers manifests in a go-theme memory registry. With
// no manifests the built-in pizzeria theme is registered.
func NewThemeRegistry(manifests ...*theme.Manifest) (*theme.MemoryRegistry, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	registry := theme.NewRegistry()
	for _, manifest := range manifests {
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme: %w", err)
		}
	}
	return registry, nil
}

// DefaultThemeSelector selects from the built-in themes, defaulting to
// defaultTheme (pizzeria when empty) and defaultVariant.
func DefaultThemeSelector(defaultTheme, defaultVariant string) (theme.Selector, error) {
	registry, err := NewThemeRegistry()
	if err != nil {
		return theme.Selector{}, err
	}
	defaultTheme = strings.TrimSpace(defaultTheme)
	if defaultTheme == "" {
		defaultTheme = DefaultManifest().Name
	}
	return theme.Selector{
		Registry:       registry,
		DefaultTheme:   defaultTheme,
		DefaultVariant: strings.TrimSpace(defaultVariant),
	}, nil
}

// ThemeFromSelection converts a go-theme selection into renderer config. A
// variant the manifest does not declare is dropped; its tokens are the base
// tokens anyway.
func ThemeFromSelection(sel *theme.Selection) *ThemeConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	variant := sel.Variant
	if _, ok := sel.Manifest.Variants[variant]; !ok {
		variant = ""
	}
	return &ThemeConfig{
		Theme:   sel.Manifest.Name,
		Variant: variant,
		Tokens:  sel.Tokens(),
		CSSVars: sel.CSSVariables("--"),
	}
}

// CSSDeclarations renders the CSS variables as sorted "name: value;" pairs.
func (c *ThemeConfig) CSSDeclarations() string {
	if c == nil || len(c.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(c.CSSVars))
	for name := range c.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s;", name, c.CSSVars[name])
	}
	return b.String()
}
