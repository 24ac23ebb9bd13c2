package model

import "strings"

// OrderRequest is the JSON body posted to the order endpoint. Toppings holds
// only the selected entries.
type OrderRequest struct {
	FullName string    `json:"fullName"`
	Size     Size      `json:"size"`
	Toppings []Topping `json:"toppings"`
}

// OrderResponse is the JSON body returned by the order endpoint for both
// accepted and rejected orders.
type OrderResponse struct {
	Message string        `json:"message"`
	Data    *OrderReceipt `json:"data,omitempty"`
}

// OrderReceipt echoes an accepted order.
type OrderReceipt struct {
	FullName string   `json:"fullName"`
	Size     Size     `json:"size"`
	Toppings []string `json:"toppings"`
}

// NewOrderRequest builds the wire payload from form values. The name is
// trimmed the same way validation trims it.
func NewOrderRequest(values FormValues) OrderRequest {
	selected := values.SelectedToppings()
	if selected == nil {
		selected = []Topping{}
	}
	return OrderRequest{
		FullName: strings.TrimSpace(values.FullName),
		Size:     values.Size,
		Toppings: selected,
	}
}
