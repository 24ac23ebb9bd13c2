package render

import (
	"context"
)

// Page identifies a screen of the application.
type Page string

const (
	PageHome  Page = "home"
	PageOrder Page = "order"
)

// Renderer converts page data into a byte representation (HTML, text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, data PageData) ([]byte, error)
}
