package render

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrInvalidRenderer is returned when a renderer is nil or unnamed.
	ErrInvalidRenderer = errors.New("render: renderer needs a name")
	// ErrDuplicateRenderer is returned when a name is registered twice.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
	// ErrRendererNotFound is returned when no renderer answers a name.
	ErrRendererNotFound = errors.New("render: renderer not registered")
)

// mediaAliases maps media types browsers send onto the type a renderer
// declares.
var mediaAliases = map[string]string{
	"application/xhtml+xml": "text/html",
}

// Registry holds the page renderers of one server, keyed by name and by the
// media type of their ContentType.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
	byType map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Renderer),
		byType: make(map[string]string),
	}
}

// Register adds renderer under its Name. The first renderer registered for
// a media type answers Accept negotiation for it.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil || renderer.Name() == "" {
		return ErrInvalidRenderer
	}
	name := renderer.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[name]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateRenderer, name)
	}
	r.byName[name] = renderer
	if mediaType := parseMediaType(renderer.ContentType()); mediaType != "" {
		if _, taken := r.byType[mediaType]; !taken {
			r.byType[mediaType] = name
		}
	}
	return nil
}

// MustRegister is Register for wiring code that cannot recover.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[name]
	return ok
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Negotiate picks the renderer for an Accept header. Media ranges are tried
// in header order; the first one a renderer declares wins. Wildcards, an
// empty header and unmatched types select fallback.
func (r *Registry) Negotiate(accept, fallback string) (Renderer, error) {
	r.mu.RLock()
	for _, part := range strings.Split(accept, ",") {
		mediaType := parseMediaType(part)
		if alias, ok := mediaAliases[mediaType]; ok {
			mediaType = alias
		}
		if name, ok := r.byType[mediaType]; ok {
			renderer := r.byName[name]
			r.mu.RUnlock()
			return renderer, nil
		}
	}
	r.mu.RUnlock()
	return r.Get(fallback)
}

func parseMediaType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return ""
	}
	return mediaType
}
