package orderapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
)

// OrderPath is the route of the order operation.
const OrderPath = "/api/order"

//go:embed openapi.yaml
var documentYAML []byte

// Document returns the raw OpenAPI document describing the stub.
func Document() []byte {
	return append([]byte(nil), documentYAML...)
}

// loadRoute parses and validates the embedded document and resolves the
// order operation into a route for request validation.
func loadRoute(ctx context.Context) (*routers.Route, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(documentYAML)
	if err != nil {
		return nil, fmt.Errorf("orderapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("orderapi: validate document: %w", err)
	}
	if doc.Paths == nil {
		return nil, errors.New("orderapi: document does not contain any paths")
	}
	item := doc.Paths.Value(OrderPath)
	if item == nil || item.Post == nil {
		return nil, fmt.Errorf("orderapi: document has no POST %s", OrderPath)
	}
	return &routers.Route{
		Spec:      doc,
		Path:      OrderPath,
		PathItem:  item,
		Method:    http.MethodPost,
		Operation: item.Post,
	}, nil
}
