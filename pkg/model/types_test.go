package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/model"
)

func TestToppingKeyRoundTrip(t *testing.T) {
	key := model.ToppingKey(" 3 ")
	if key != "topping_3" {
		t.Fatalf("unexpected key %q", key)
	}
	id, ok := model.ToppingID(key)
	if !ok || id != "3" {
		t.Fatalf("expected id 3, got %q (ok=%v)", id, ok)
	}
	if _, ok := model.ToppingID("fullName"); ok {
		t.Fatalf("fullName must not parse as a topping key")
	}
	if _, ok := model.ToppingID("topping_"); ok {
		t.Fatalf("empty topping id must not parse")
	}
}

func TestSizeWireValues(t *testing.T) {
	got := []model.Size{model.SizeNone, model.SizeS, model.SizeM, model.SizeL}
	want := []model.Size{"", "S", "M", "L"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("size values mismatch (-want +got):\n%s", diff)
	}
}

func TestFormValuesCloneDoesNotShareToppings(t *testing.T) {
	values := model.FormValues{
		FullName: "Alice",
		Toppings: []model.Topping{{ID: "1", Text: "Pepperoni"}},
	}
	clone := values.Clone()
	clone.Toppings[0].Selected = true

	if values.Toppings[0].Selected {
		t.Fatalf("clone mutated the original toppings")
	}
}

func TestNewOrderRequestSendsSelectedToppingsOnly(t *testing.T) {
	values := model.FormValues{
		FullName: "  Alice ",
		Size:     model.SizeM,
		Toppings: []model.Topping{
			{ID: "1", Text: "Pepperoni", Selected: true},
			{ID: "2", Text: "Green Peppers"},
			{ID: "5", Text: "Ham", Selected: true},
		},
	}

	got := model.NewOrderRequest(values)
	want := model.OrderRequest{
		FullName: "Alice",
		Size:     model.SizeM,
		Toppings: []model.Topping{
			{ID: "1", Text: "Pepperoni", Selected: true},
			{ID: "5", Text: "Ham", Selected: true},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order request mismatch (-want +got):\n%s", diff)
	}
}

func TestNewOrderRequestUsesEmptyToppingList(t *testing.T) {
	got := model.NewOrderRequest(model.FormValues{FullName: "Alice", Size: model.SizeS})
	if got.Toppings == nil || len(got.Toppings) != 0 {
		t.Fatalf("expected empty non-nil toppings, got %#v", got.Toppings)
	}
}

func TestFieldErrorsEmpty(t *testing.T) {
	errs := model.FieldErrors{model.FieldFullName: "", model.FieldSize: ""}
	if !errs.Empty() {
		t.Fatalf("expected empty errors")
	}
	errs[model.FieldSize] = "size must be S or M or L"
	if errs.Empty() || !errs.Has(model.FieldSize) {
		t.Fatalf("expected size error to be reported")
	}
	var nilErrs model.FieldErrors
	if nilErrs.Get(model.FieldSize) != "" {
		t.Fatalf("nil errors should read empty")
	}
}
