package model

import "strings"

// Size is the pizza size selected in the form. The empty value means no
// selection was made yet.
type Size string

const (
	SizeNone Size = ""
	SizeS    Size = "S"
	SizeM    Size = "M"
	SizeL    Size = "L"
)

// Field keys used by FieldErrors and the validation schema.
const (
	FieldFullName      = "fullName"
	FieldSize          = "size"
	ToppingFieldPrefix = "topping_"
)

// ToppingKey returns the field key for a topping identity.
func ToppingKey(id string) string {
	return ToppingFieldPrefix + strings.TrimSpace(id)
}

// ToppingID extracts the topping identity from a field key. The boolean is
// false when key is not a topping key.
func ToppingID(key string) (string, bool) {
	if !strings.HasPrefix(key, ToppingFieldPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(key, ToppingFieldPrefix)
	if id == "" {
		return "", false
	}
	return id, true
}

// Topping is one entry of the fixed topping catalog together with its
// selection flag.
type Topping struct {
	ID       string `json:"topping_id"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

// FormValues is the current content of the order form.
type FormValues struct {
	FullName string    `json:"fullName"`
	Size     Size      `json:"size"`
	Toppings []Topping `json:"toppings"`
}

// Clone returns a deep copy so callers can hand values out without sharing
// the toppings backing array.
func (v FormValues) Clone() FormValues {
	out := v
	if v.Toppings != nil {
		out.Toppings = append([]Topping(nil), v.Toppings...)
	}
	return out
}

// Topping looks a topping up by identity.
func (v FormValues) Topping(id string) (Topping, bool) {
	for _, topping := range v.Toppings {
		if topping.ID == id {
			return topping, true
		}
	}
	return Topping{}, false
}

// SelectedToppings returns the selected toppings in catalog order.
func (v FormValues) SelectedToppings() []Topping {
	var out []Topping
	for _, topping := range v.Toppings {
		if topping.Selected {
			out = append(out, topping)
		}
	}
	return out
}

// FieldErrors maps field keys to their current error message. Valid fields
// carry an empty string.
type FieldErrors map[string]string

// Get returns the message stored for key.
func (e FieldErrors) Get(key string) string {
	if e == nil {
		return ""
	}
	return e[key]
}

// Has reports whether key currently carries a message.
func (e FieldErrors) Has(key string) bool {
	return e.Get(key) != ""
}

// Empty reports whether no field carries a message.
func (e FieldErrors) Empty() bool {
	for _, message := range e {
		if message != "" {
			return false
		}
	}
	return true
}

// Clone copies the map.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for key, message := range e {
		out[key] = message
	}
	return out
}

// Feedback holds the banner produced by the last submission. At most one of
// Success and Failure is non-empty.
type Feedback struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
}

// IsZero reports whether no banner is set.
func (f Feedback) IsZero() bool {
	return f.Success == "" && f.Failure == ""
}
