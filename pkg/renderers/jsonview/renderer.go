// Package jsonview renders page data as JSON for clients that negotiate
// application/json instead of HTML.
package jsonview

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-orderform/pkg/render"
)

// Name is the registry key of the JSON renderer.
const Name = "json"

type Option func(*Renderer)

// WithIndent pretty-prints the output using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer encodes render.PageData using its json tags.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

type document struct {
	Page string `json:"page"`
	render.PageData
}

func (r *Renderer) Render(_ context.Context, page render.Page, data render.PageData) ([]byte, error) {
	if page == render.PageOrder && data.Form == nil {
		return nil, fmt.Errorf("json renderer: page %q requires a form", page)
	}

	doc := document{Page: string(page), PageData: data}
	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode %s: %w", page, err)
	}
	return out, nil
}
