// Package model defines the order form data shared by the schema, validator,
// state store, gateway and renderers. FormValues always carries the full,
// fixed topping catalog in catalog order; only Topping.Selected changes after
// the values are created. FieldErrors is keyed by the same field keys the
// schema uses ("fullName", "size", "topping_<id>") and Feedback is the single
// success/failure slot filled after a submission round-trip. The Order* types
// describe the JSON exchanged with the order endpoint.
package model
