// Package server exposes the order form over HTTP. Every request builds its
// own store from the posted values, so the server keeps no per-user state.
package server

import (
	"errors"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/render"
	"github.com/goliatone/go-orderform/pkg/renderers/html"
	"github.com/goliatone/go-orderform/pkg/renderers/jsonview"
	"github.com/goliatone/go-orderform/pkg/renderers/tui"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/state"
	"github.com/goliatone/go-orderform/pkg/validation"
)

// ErrSubmitterRequired is returned by New without a submitter.
var ErrSubmitterRequired = errors.New("server: submitter is required")

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and submission logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSchema overrides the catalog and rules.
func WithSchema(sch *schema.Schema) Option {
	return func(s *Server) {
		if sch != nil {
			s.schema = sch
		}
	}
}

// WithRegistry supplies the renderers used for content negotiation. It must
// contain an "html" renderer.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.renderers = registry
		}
	}
}

// WithAssets serves files under /assets/.
func WithAssets(files fs.FS) Option {
	return func(s *Server) {
		s.assets = files
	}
}

// WithRequestTimeout bounds each call to the order endpoint. Zero leaves
// the request context as is.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// Server routes the landing page, the order form and its validation API.
type Server struct {
	submitter      state.Submitter
	schema         *schema.Schema
	validator      *validation.Validator
	renderers      *render.Registry
	assets         fs.FS
	logger         *zap.Logger
	requestTimeout time.Duration
	mux            *http.ServeMux
}

// New builds the server. Without WithRegistry the html, json and text
// renderers are registered with their defaults.
func New(submitter state.Submitter, options ...Option) (*Server, error) {
	if submitter == nil {
		return nil, ErrSubmitterRequired
	}
	s := &Server{
		submitter: submitter,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.schema == nil {
		s.schema = schema.Default()
	}
	s.validator = validation.New(s.schema)

	if s.renderers == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			return nil, err
		}
		s.renderers = registry
		if s.assets == nil {
			s.assets = html.AssetsFS()
		}
	}
	if !s.renderers.Has(html.Name) {
		return nil, errors.New("server: registry has no html renderer")
	}

	s.routes()
	return s, nil
}

// DefaultRegistry registers the built-in renderers.
func DefaultRegistry(options ...html.Option) (*render.Registry, error) {
	page, err := html.New(options...)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	registry.MustRegister(page)
	registry.MustRegister(jsonview.New())
	registry.MustRegister(tui.NewTextRenderer(tui.DefaultTheme))
	return registry, nil
}

func (s *Server) routes() {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /order", s.handleOrderForm)
	mux.HandleFunc("POST /order", s.handleOrderSubmit)
	mux.HandleFunc("GET /order/validate", s.handleValidateField)
	mux.HandleFunc("POST /order/validate", s.handleValidateForm)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.assets != nil {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(s.assets)))
	}
	s.mux = mux
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return logRequests(s.logger, s.mux)
}

func (s *Server) newStore() *state.Store {
	return state.New(state.WithSchema(s.schema))
}
