package orderapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/gateway"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/state"
)

func newServer(t *testing.T, options ...Option) *httptest.Server {
	t.Helper()
	h, err := New(context.Background(), options...)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string) (int, model.OrderResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+OrderPath, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out model.OrderResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return resp.StatusCode, out
}

func TestCreateOrderAccepts(t *testing.T) {
	srv := newServer(t)

	status, resp := post(t, srv, `{"fullName":" Alice ","size":"M","toppings":[{"topping_id":"1","text":"Pepperoni","selected":true},{"topping_id":"5","text":"Ham","selected":true}]}`)

	if status != http.StatusCreated {
		t.Fatalf("status = %d (%s)", status, resp.Message)
	}
	want := model.OrderResponse{
		Message: "Thank you for your order, Alice! Your Medium pizza with 2 topping(s) is on the way.",
		Data: &model.OrderReceipt{
			FullName: "Alice",
			Size:     model.SizeM,
			Toppings: []string{"Pepperoni", "Ham"},
		},
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateOrderRejections(t *testing.T) {
	srv := newServer(t, WithOutOfStock(model.SizeL))

	cases := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{
			name:    "out of stock",
			body:    `{"fullName":"Alice","size":"L","toppings":[]}`,
			status:  http.StatusUnprocessableEntity,
			message: MessageOutOfStock,
		},
		{
			name:    "short name",
			body:    `{"fullName":"Al","size":"M","toppings":[]}`,
			status:  http.StatusUnprocessableEntity,
			message: "full name must be at least 3 characters",
		},
		{
			name:    "bad size",
			body:    `{"fullName":"Alice","size":"XL","toppings":[]}`,
			status:  http.StatusUnprocessableEntity,
			message: "size must be S or M or L",
		},
		{
			name:    "unknown topping",
			body:    `{"fullName":"Alice","size":"M","toppings":[{"topping_id":"9","selected":true}]}`,
			status:  http.StatusUnprocessableEntity,
			message: `Unknown topping "9"`,
		},
		{
			name:    "missing toppings",
			body:    `{"fullName":"Alice","size":"M"}`,
			status:  http.StatusBadRequest,
			message: MessageInvalidPayload,
		},
		{
			name:    "wrong type",
			body:    `{"fullName":42,"size":"M","toppings":[]}`,
			status:  http.StatusBadRequest,
			message: MessageInvalidPayload,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, resp := post(t, srv, tc.body)
			if status != tc.status {
				t.Fatalf("status = %d, want %d (%s)", status, tc.status, resp.Message)
			}
			if resp.Message != tc.message {
				t.Fatalf("message = %q, want %q", resp.Message, tc.message)
			}
			if resp.Data != nil {
				t.Fatalf("rejected order should carry no data")
			}
		})
	}
}

func TestCreateOrderRejectsOtherMethods(t *testing.T) {
	srv := newServer(t)
	resp, err := http.Get(srv.URL + OrderPath)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestGatewayRoundTripAgainstStub(t *testing.T) {
	srv := newServer(t, WithOutOfStock(model.SizeS))
	client, err := gateway.New(gateway.WithEndpoint(srv.URL + OrderPath))
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}

	store := state.New()
	store.SetFullName("Alice")
	store.SetSize(model.SizeS)

	err = store.Submit(context.Background(), client)
	var subErr *gateway.SubmissionError
	if !errors.As(err, &subErr) || subErr.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 submission error, got %v", err)
	}
	if got := store.Feedback().Failure; got != MessageOutOfStock {
		t.Fatalf("failure banner = %q", got)
	}
	if store.Values().FullName != "Alice" {
		t.Fatalf("values should be kept after failure")
	}

	store.SetSize(model.SizeM)
	if err := store.ToggleTopping("3", true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := store.Submit(context.Background(), client); err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := "Thank you for your order, Alice! Your Medium pizza with 1 topping(s) is on the way."
	if got := store.Feedback().Success; got != want {
		t.Fatalf("success banner = %q", got)
	}
	if store.Values().FullName != "" {
		t.Fatalf("values should reset after success")
	}
}

func TestDocumentIsServedVerbatim(t *testing.T) {
	if !strings.Contains(string(Document()), "operationId: createOrder") {
		t.Fatalf("unexpected document")
	}
}
