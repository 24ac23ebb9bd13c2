// Package orderform is the quick start entry point: it re-exports the types
// callers need and wires the store, gateway and renderers with defaults.
package orderform

import (
	"context"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-orderform/pkg/gateway"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/renderers/html"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/state"
	"github.com/goliatone/go-orderform/pkg/validation"
)

// FormValues aliases model.FormValues.
type FormValues = model.FormValues

// Topping aliases model.Topping.
type Topping = model.Topping

// Size aliases model.Size.
type Size = model.Size

// FieldErrors aliases model.FieldErrors.
type FieldErrors = model.FieldErrors

// Feedback aliases model.Feedback.
type Feedback = model.Feedback

// Store aliases state.Store.
type Store = state.Store

// Snapshot aliases state.Snapshot.
type Snapshot = state.Snapshot

// Client aliases gateway.Client.
type Client = gateway.Client

// SubmissionError aliases gateway.SubmissionError.
type SubmissionError = gateway.SubmissionError

// NewStore returns a form store over the embedded catalog unless
// state.WithSchema says otherwise.
func NewStore(options ...state.Option) *Store {
	return state.New(options...)
}

// NewValidator returns a validator for the embedded catalog.
func NewValidator() *validation.Validator {
	return validation.New(schema.Default())
}

// NewGateway returns a client for the order endpoint, defaulting to
// gateway.DefaultEndpoint.
func NewGateway(options ...gateway.Option) (*Client, error) {
	return gateway.New(options...)
}

// Submit sends the store's values through client and records the outcome on
// the store.
func Submit(ctx context.Context, store *Store, client *Client) error {
	return store.Submit(ctx, client)
}

// NewHTMLRenderer returns the HTML page renderer.
func NewHTMLRenderer(options ...html.Option) (*html.Renderer, error) {
	return html.New(options...)
}

// WithThemeSelector resolves the HTML theme through selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) html.Option {
	return html.WithTheme(selector, name, variant)
}

// RenderOrderPage renders the order page for store as HTML.
func RenderOrderPage(ctx context.Context, renderer render.Renderer, store *Store) ([]byte, error) {
	view := render.NewFormView(store.Schema(), store.Snapshot(), render.ViewOptions{})
	return renderer.Render(ctx, render.PageOrder, render.PageData{Form: &view})
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the stylesheet, script and images the pages reference.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(orderform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
