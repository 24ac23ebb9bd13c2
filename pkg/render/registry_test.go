package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, render.Page, render.PageData) ([]byte, error) {
	return []byte(s.name), nil
}

func newStubRegistry() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "html", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})
	return registry
}

func TestRegistryRegister(t *testing.T) {
	registry := newStubRegistry()

	if err := registry.Register(stubRenderer{name: "html"}); !errors.Is(err, render.ErrDuplicateRenderer) {
		t.Fatalf("expected duplicate registration error, got %v", err)
	}
	if err := registry.Register(stubRenderer{}); !errors.Is(err, render.ErrInvalidRenderer) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	if err := registry.Register(nil); !errors.Is(err, render.ErrInvalidRenderer) {
		t.Fatalf("expected nil renderer error, got %v", err)
	}

	if diff := cmp.Diff([]string{"html", "json"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("json") || registry.Has("text") {
		t.Fatalf("Has reported wrong membership")
	}
	if _, err := registry.Get("text"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
}

func TestRegistryNegotiate(t *testing.T) {
	registry := newStubRegistry()

	cases := map[string]string{
		"":                                 "html",
		"*/*":                              "html",
		"text/plain":                       "html",
		"application/json":                 "json",
		"APPLICATION/JSON; q=0.8":          "json",
		"image/webp, application/json":     "json",
		"application/xhtml+xml,text/plain": "html",
	}
	for accept, want := range cases {
		got, err := registry.Negotiate(accept, "html")
		if err != nil {
			t.Fatalf("negotiate %q: %v", accept, err)
		}
		if got.Name() != want {
			t.Fatalf("negotiate %q = %q, want %q", accept, got.Name(), want)
		}
	}

	if _, err := registry.Negotiate("", "text"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected missing fallback error, got %v", err)
	}
}
