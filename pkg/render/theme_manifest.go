package render

import theme "github.com/goliatone/go-theme"

// DefaultManifest is the built-in pizzeria theme with a dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "pizzeria",
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-bg":      "#fffaf3",
			"color-text":    "#2b2118",
			"color-accent":  "#c0392b",
			"color-success": "#1e7d32",
			"color-failure": "#b3261e",
			"radius":        "6px",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-bg":   "#1d1a17",
					"color-text": "#f4ede4",
				},
			},
		},
	}
}
