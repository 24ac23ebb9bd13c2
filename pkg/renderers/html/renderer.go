package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-orderform/pkg/render"
	rendertemplate "github.com/goliatone/go-orderform/pkg/render/template"
	gotemplate "github.com/goliatone/go-orderform/pkg/render/template/gotemplate"
)

const (
	// Name is the registry key of the HTML renderer.
	Name = "html"
	// DefaultTitle is used for pages rendered without a title.
	DefaultTitle = "Bloom Pizza"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme resolves the page theme through selector. Pages that already
// carry a ThemeConfig keep it.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		if selector == nil {
			return
		}
		cfg.selector = selector
		cfg.themeName = name
		cfg.themeVariant = variant
	}
}

// WithThemeProvider resolves the page theme from provider, the way
// theme.Selector does: an empty name selects defaultTheme.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(cfg *config) {
		if provider == nil {
			return
		}
		cfg.selector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
	}
}

// Renderer renders application pages as HTML documents.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *render.ThemeConfig
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options. The theme
// is resolved once here; an unknown theme name is an error.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.selector == nil {
		selector, err := render.DefaultThemeSelector("", "")
		if err != nil {
			return nil, fmt.Errorf("html renderer: %w", err)
		}
		cfg.selector = selector
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	selection, err := cfg.selector.Select(cfg.themeName, cfg.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("html renderer: select theme: %w", err)
	}
	// theme.Selector falls back to its default theme for unknown names.
	if name := strings.TrimSpace(cfg.themeName); name != "" && selection.Manifest != nil && selection.Manifest.Name != name {
		return nil, fmt.Errorf("html renderer: select theme: %w: %s", render.ErrThemeNotFound, name)
	}

	return &Renderer{
		templates: renderer,
		theme:     render.ThemeFromSelection(selection),
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Theme returns the theme resolved at construction.
func (r *Renderer) Theme() *render.ThemeConfig {
	return r.theme
}

func (r *Renderer) Render(_ context.Context, page render.Page, data render.PageData) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	var name string
	switch page {
	case render.PageHome:
		name = "home"
	case render.PageOrder:
		if data.Form == nil {
			return nil, fmt.Errorf("html renderer: page %q requires a form", page)
		}
		name = "order"
	default:
		return nil, fmt.Errorf("html renderer: unknown page %q", page)
	}

	if data.Title == "" {
		data.Title = DefaultTitle
	}
	if data.Theme == nil {
		data.Theme = r.theme
	}
	if len(data.Links) == 0 {
		data.Links = render.DefaultLinks(page)
	}

	result, err := r.templates.RenderTemplate(name, map[string]any{
		"page":      string(page),
		"title":     data.Title,
		"links":     data.Links,
		"form":      data.Form,
		"theme":     data.Theme,
		"theme_css": data.Theme.CSSDeclarations(),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render %s: %w", name, err)
	}
	return []byte(result), nil
}
