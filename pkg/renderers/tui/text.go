package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-orderform/pkg/render"
)

// TextName is the registry key of the plain text renderer.
const TextName = "text"

// TextRenderer prints pages as plain text, the way the terminal session
// shows the form.
type TextRenderer struct {
	theme Theme
}

var _ render.Renderer = (*TextRenderer)(nil)

// NewTextRenderer returns a text renderer using theme prefixes for banners.
func NewTextRenderer(theme Theme) *TextRenderer {
	return &TextRenderer{theme: theme}
}

func (r *TextRenderer) Name() string {
	return TextName
}

func (r *TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *TextRenderer) Render(_ context.Context, page render.Page, data render.PageData) ([]byte, error) {
	var b strings.Builder
	switch page {
	case render.PageHome:
		b.WriteString("Welcome to Bloom Pizza!\n\n")
		b.WriteString("Order at /order\n")
	case render.PageOrder:
		if data.Form == nil {
			return nil, fmt.Errorf("text renderer: page %q requires a form", page)
		}
		r.writeForm(&b, data.Form)
	default:
		return nil, fmt.Errorf("text renderer: unknown page %q", page)
	}
	return []byte(b.String()), nil
}

func (r *TextRenderer) writeForm(b *strings.Builder, form *render.FormView) {
	b.WriteString("Order Your Pizza\n")
	if form.Success != "" {
		fmt.Fprintf(b, "%s%s\n", r.theme.SuccessPrefix, form.Success)
	}
	if form.Failure != "" {
		fmt.Fprintf(b, "%s%s\n", r.theme.ErrorPrefix, form.Failure)
	}
	b.WriteByte('\n')

	fmt.Fprintf(b, "%s: %s\n", form.FullName.Label, form.FullName.Value)
	r.writeError(b, form.FullName.Error)

	size := form.SizePlaceholder
	for _, opt := range form.SizeOptions {
		if opt.Selected {
			size = opt.Label
		}
	}
	fmt.Fprintf(b, "%s: %s\n", form.Size.Label, size)
	r.writeError(b, form.Size.Error)

	b.WriteString("Toppings:\n")
	for _, topping := range form.Toppings {
		mark := " "
		if topping.Checked {
			mark = "x"
		}
		fmt.Fprintf(b, "  [%s] %s\n", mark, topping.Label)
	}

	if form.Submittable {
		b.WriteString("Submit: ready\n")
	} else {
		b.WriteString("Submit: disabled\n")
	}
}

func (r *TextRenderer) writeError(b *strings.Builder, msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintf(b, "  %s%s\n", r.theme.ErrorPrefix, msg)
}
