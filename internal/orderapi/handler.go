// Package orderapi serves a local stand-in for the remote order endpoint so
// the form can be exercised end to end during development.
package orderapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/validation"
)

const maxBodyBytes = 1 << 20

// Response messages returned by the stub.
const (
	MessageInvalidPayload = "Invalid order payload"
	MessageOutOfStock     = "Size out of stock"
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for request outcomes.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithSchema validates orders against s instead of the default catalog.
func WithSchema(s *schema.Schema) Option {
	return func(h *Handler) {
		if s != nil {
			h.schema = s
		}
	}
}

// WithOutOfStock rejects orders for the given sizes.
func WithOutOfStock(sizes ...model.Size) Option {
	return func(h *Handler) {
		for _, size := range sizes {
			h.outOfStock[size] = struct{}{}
		}
	}
}

// Handler implements POST /api/order.
type Handler struct {
	route      *routers.Route
	schema     *schema.Schema
	validator  *validation.Validator
	logger     *zap.Logger
	outOfStock map[model.Size]struct{}
	mux        *http.ServeMux
}

// New loads the embedded OpenAPI document and returns the handler.
func New(ctx context.Context, options ...Option) (*Handler, error) {
	route, err := loadRoute(ctx)
	if err != nil {
		return nil, err
	}
	h := &Handler{
		route:      route,
		logger:     zap.NewNop(),
		outOfStock: make(map[model.Size]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	if h.schema == nil {
		h.schema = schema.Default()
	}
	h.validator = validation.New(h.schema)

	h.mux = http.NewServeMux()
	h.mux.HandleFunc("POST "+OrderPath, h.createOrder)
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.reject(w, http.StatusBadRequest, MessageInvalidPayload, err)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	input := &openapi3filter.RequestValidationInput{
		Request: r,
		Route:   h.route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		h.reject(w, http.StatusBadRequest, MessageInvalidPayload, err)
		return
	}

	var req model.OrderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.reject(w, http.StatusBadRequest, MessageInvalidPayload, err)
		return
	}

	values, unknown := h.formValues(req)
	if unknown != "" {
		h.reject(w, http.StatusUnprocessableEntity, fmt.Sprintf("Unknown topping %q", unknown), nil)
		return
	}
	if err := h.validator.ValidateAll(values); err != nil {
		h.reject(w, http.StatusUnprocessableEntity, h.firstMessage(err), err)
		return
	}
	if _, ok := h.outOfStock[values.Size]; ok {
		h.reject(w, http.StatusUnprocessableEntity, MessageOutOfStock, nil)
		return
	}

	receipt := model.OrderReceipt{
		FullName: strings.TrimSpace(values.FullName),
		Size:     values.Size,
		Toppings: []string{},
	}
	for _, topping := range values.SelectedToppings() {
		receipt.Toppings = append(receipt.Toppings, topping.Text)
	}
	message := fmt.Sprintf("Thank you for your order, %s! Your %s pizza with %d topping(s) is on the way.",
		receipt.FullName, h.schema.SizeLabel(receipt.Size), len(receipt.Toppings))

	h.logger.Info("order accepted",
		zap.String("size", string(receipt.Size)),
		zap.Int("toppings", len(receipt.Toppings)),
	)
	writeJSON(w, http.StatusCreated, model.OrderResponse{Message: message, Data: &receipt})
}

// formValues maps the wire payload onto the catalog. Toppings absent from
// the payload stay unselected. The first id missing from the catalog is
// returned as unknown.
func (h *Handler) formValues(req model.OrderRequest) (values model.FormValues, unknown string) {
	values = h.schema.InitialValues()
	values.FullName = req.FullName
	values.Size = req.Size
	for _, sent := range req.Toppings {
		found := false
		for i := range values.Toppings {
			if values.Toppings[i].ID == sent.ID {
				values.Toppings[i].Selected = sent.Selected
				found = true
				break
			}
		}
		if !found {
			return model.FormValues{}, sent.ID
		}
	}
	return values, ""
}

func (h *Handler) firstMessage(err error) string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return MessageInvalidPayload
	}
	for _, key := range h.schema.Keys() {
		if fieldErr, ok := errs[key]; ok {
			return fieldErr.Message
		}
	}
	return MessageInvalidPayload
}

func (h *Handler) reject(w http.ResponseWriter, status int, message string, cause error) {
	fields := []zap.Field{zap.Int("status", status), zap.String("message", message)}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	h.logger.Info("order rejected", fields...)
	writeJSON(w, status, model.OrderResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
