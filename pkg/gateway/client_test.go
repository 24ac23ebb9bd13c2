package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/gateway"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/testsupport"
)

func aliceMedium() model.FormValues {
	values := schema.Default().InitialValues()
	values.FullName = "Alice"
	values.Size = model.SizeM
	return values
}

func TestSubmitSuccessReturnsServerMessage(t *testing.T) {
	endpoint := testsupport.NewOrderEndpoint(t, testsupport.Reply{
		Status: http.StatusCreated,
		Body:   `{"message":"Thank you for your order, Alice!"}`,
	})
	client, err := gateway.New(gateway.WithEndpoint(endpoint.URL()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	values := aliceMedium()
	before := values.Clone()

	result, err := client.Submit(context.Background(), values)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Message != "Thank you for your order, Alice!" || result.Status != http.StatusCreated {
		t.Fatalf("unexpected result %+v", result)
	}
	if diff := cmp.Diff(before, values); diff != "" {
		t.Fatalf("submit mutated values (-want +got):\n%s", diff)
	}

	requests := endpoint.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	want := model.OrderRequest{FullName: "Alice", Size: model.SizeM, Toppings: []model.Topping{}}
	if diff := cmp.Diff(want, requests[0]); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitSendsSelectedToppings(t *testing.T) {
	endpoint := testsupport.NewOrderEndpoint(t, testsupport.Reply{Body: `{"message":"ok"}`})
	client, err := gateway.New(gateway.WithEndpoint(endpoint.URL()), gateway.WithHeader("X-Order-Source", "test"))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	values := aliceMedium()
	values.Toppings[1].Selected = true
	values.Toppings[3].Selected = true

	if _, err := client.Submit(context.Background(), values); err != nil {
		t.Fatalf("submit: %v", err)
	}

	raw := endpoint.RawBodies()[0]
	wantRaw := `{"fullName":"Alice","size":"M","toppings":[{"topping_id":"2","text":"Green Peppers","selected":true},{"topping_id":"4","text":"Mushrooms","selected":true}]}`
	if raw != wantRaw {
		t.Fatalf("unexpected wire body\nwant: %s\n got: %s", wantRaw, raw)
	}
}

func TestSubmitRejectedUsesServerMessage(t *testing.T) {
	endpoint := testsupport.NewOrderEndpoint(t, testsupport.Reply{
		Status: http.StatusUnprocessableEntity,
		Body:   `{"message":"Size out of stock"}`,
	})
	client, _ := gateway.New(gateway.WithEndpoint(endpoint.URL()))

	_, err := client.Submit(context.Background(), aliceMedium())
	var subErr *gateway.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
	if subErr.Status != http.StatusUnprocessableEntity || subErr.Message != "Size out of stock" {
		t.Fatalf("unexpected submission error %+v", subErr)
	}
	if got := gateway.FailureMessage(err, client.FallbackMessage()); got != "Size out of stock" {
		t.Fatalf("unexpected failure message %q", got)
	}
}

func TestSubmitRejectedWithoutBodyUsesFallback(t *testing.T) {
	endpoint := testsupport.NewOrderEndpoint(t, testsupport.Reply{Status: http.StatusInternalServerError})
	client, _ := gateway.New(gateway.WithEndpoint(endpoint.URL()), gateway.WithFallbackMessage("Order failed"))

	_, err := client.Submit(context.Background(), aliceMedium())
	var subErr *gateway.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
	if subErr.Message != "Order failed" {
		t.Fatalf("expected fallback message, got %q", subErr.Message)
	}
}

func TestSubmitRejectedWithMalformedBodyUsesFallback(t *testing.T) {
	endpoint := testsupport.NewOrderEndpoint(t, testsupport.Reply{Status: http.StatusBadGateway, Body: `<html>bad gateway</html>`})
	client, _ := gateway.New(gateway.WithEndpoint(endpoint.URL()))

	_, err := client.Submit(context.Background(), aliceMedium())
	if got := gateway.FailureMessage(err, ""); got != gateway.DefaultFallbackMessage {
		t.Fatalf("unexpected failure message %q", got)
	}
}

func TestSubmitNetworkFailureUsesFallback(t *testing.T) {
	endpoint := testsupport.NewOrderEndpoint(t, testsupport.Reply{})
	url := endpoint.URL()
	endpoint.Close()

	client, _ := gateway.New(gateway.WithEndpoint(url))
	_, err := client.Submit(context.Background(), aliceMedium())

	var subErr *gateway.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}
	if subErr.Status != 0 || subErr.Err == nil {
		t.Fatalf("expected transport failure, got %+v", subErr)
	}
	if subErr.Message != gateway.DefaultFallbackMessage {
		t.Fatalf("expected fallback, got %q", subErr.Message)
	}
	if strings.Contains(subErr.Message, "undefined") {
		t.Fatalf("fallback must be a fixed message")
	}
}

func TestSubmitHonoursContextCancellation(t *testing.T) {
	endpoint := testsupport.NewOrderEndpoint(t, testsupport.Reply{Body: `{"message":"ok"}`})
	client, _ := gateway.New(gateway.WithEndpoint(endpoint.URL()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Submit(ctx, aliceMedium())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestNewRequiresEndpoint(t *testing.T) {
	if _, err := gateway.New(gateway.WithEndpoint("  ")); !errors.Is(err, gateway.ErrEndpointRequired) {
		t.Fatalf("expected ErrEndpointRequired, got %v", err)
	}
	client, err := gateway.New()
	if err != nil {
		t.Fatalf("new default client: %v", err)
	}
	if client.Endpoint() != gateway.DefaultEndpoint {
		t.Fatalf("unexpected default endpoint %q", client.Endpoint())
	}
}

func TestFailureMessageForForeignErrors(t *testing.T) {
	if got := gateway.FailureMessage(errors.New("boom"), "fallback"); got != "fallback" {
		t.Fatalf("unexpected message %q", got)
	}
}
