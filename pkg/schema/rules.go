package schema

import "github.com/goliatone/go-orderform/pkg/model"

// RuleKind tags the variant a Rule holds.
type RuleKind string

const (
	// RuleLength bounds the rune length of a string value.
	RuleLength RuleKind = "length"
	// RuleOneOf requires a string value to be a member of Rule.OneOf.
	RuleOneOf RuleKind = "oneOf"
	// RuleBoolean accepts any boolean.
	RuleBoolean RuleKind = "boolean"
)

// Error codes reported by validators for the rule variants.
const (
	CodeRequired = "required"
	CodeMin      = "min"
	CodeMax      = "max"
	CodeOneOf    = "oneOf"
	CodeType     = "type"
)

// Messages holds the user-facing text for each failure code of a rule.
type Messages struct {
	Required string `json:"required,omitempty"`
	Min      string `json:"min,omitempty"`
	Max      string `json:"max,omitempty"`
	OneOf    string `json:"oneOf,omitempty"`
}

// For returns the message registered for code.
func (m Messages) For(code string) string {
	switch code {
	case CodeRequired:
		return m.Required
	case CodeMin:
		return m.Min
	case CodeMax:
		return m.Max
	case CodeOneOf:
		return m.OneOf
	default:
		return ""
	}
}

// Rule is the validation constraint attached to one field. Which of the
// parameters apply depends on Kind.
type Rule struct {
	Field    string   `json:"field"`
	Kind     RuleKind `json:"kind"`
	Trim     bool     `json:"trim,omitempty"`
	Required bool     `json:"required,omitempty"`
	Min      int      `json:"min,omitempty"`
	Max      int      `json:"max,omitempty"`
	OneOf    []string `json:"oneOf,omitempty"`
	Messages Messages `json:"messages"`
}

func (r Rule) clone() Rule {
	out := r
	if r.OneOf != nil {
		out.OneOf = append([]string(nil), r.OneOf...)
	}
	return out
}

// SizeOption is one entry of the size select.
type SizeOption struct {
	Value model.Size `json:"value" yaml:"value"`
	Label string     `json:"label" yaml:"label"`
}

// ToppingOption is one entry of the fixed topping catalog.
type ToppingOption struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}
