package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/schema"
)

// ErrUnknownField is returned when a key has no rule in the schema.
var ErrUnknownField = errors.New("validation: unknown field")

// FieldError describes a single field whose value violates its rule.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Errors collects field errors keyed by field key.
type Errors map[string]*FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e[key].Message))
	}
	return "validation: " + strings.Join(parts, "; ")
}

// Messages flattens the collection into model.FieldErrors.
func (e Errors) Messages() model.FieldErrors {
	out := make(model.FieldErrors, len(e))
	for key, fieldErr := range e {
		out[key] = fieldErr.Message
	}
	return out
}

// Validator applies a schema to individual fields or to whole form values.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	schema *schema.Schema
}

// New returns a validator for s, falling back to schema.Default when s is nil.
func New(s *schema.Schema) *Validator {
	if s == nil {
		s = schema.Default()
	}
	return &Validator{schema: s}
}

// Schema exposes the schema the validator evaluates.
func (v *Validator) Schema() *schema.Schema {
	return v.schema
}

// ValidateField checks one value against the rule registered for key. The
// returned error is nil, a *FieldError, or wraps ErrUnknownField.
func (v *Validator) ValidateField(key string, value any) error {
	rule, ok := v.schema.Rule(key)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, key)
	}
	if fieldErr := evaluate(rule, value); fieldErr != nil {
		return fieldErr
	}
	return nil
}

// ValidateAll checks every field of values and returns Errors when at least
// one field fails.
func (v *Validator) ValidateAll(values model.FormValues) error {
	errs := make(Errors)
	for _, key := range v.schema.Keys() {
		value, ok := fieldValue(values, key)
		if !ok {
			continue
		}
		rule, _ := v.schema.Rule(key)
		if fieldErr := evaluate(rule, value); fieldErr != nil {
			errs[key] = fieldErr
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// FieldErrors evaluates every field and returns the full error map, with an
// empty entry for each valid field.
func (v *Validator) FieldErrors(values model.FormValues) model.FieldErrors {
	out := v.schema.InitialErrors()
	var errs Errors
	if err := v.ValidateAll(values); errors.As(err, &errs) {
		for key, fieldErr := range errs {
			out[key] = fieldErr.Message
		}
	}
	return out
}

// Submittable reports whether fullName and size both satisfy their rules.
// Topping selections never influence the outcome.
func (v *Validator) Submittable(values model.FormValues) bool {
	return v.ValidateField(model.FieldFullName, values.FullName) == nil &&
		v.ValidateField(model.FieldSize, values.Size) == nil
}

// Message returns the user-facing text of a validation error, or "" when err
// is nil or not a field error.
func Message(err error) string {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Message
	}
	return ""
}

func fieldValue(values model.FormValues, key string) (any, bool) {
	switch key {
	case model.FieldFullName:
		return values.FullName, true
	case model.FieldSize:
		return values.Size, true
	}
	if id, ok := model.ToppingID(key); ok {
		topping, found := values.Topping(id)
		return topping.Selected, found
	}
	return nil, false
}

func evaluate(rule schema.Rule, value any) *FieldError {
	switch rule.Kind {
	case schema.RuleLength:
		text, ok := asString(value)
		if !ok {
			return typeError(rule, "string")
		}
		if rule.Trim {
			text = strings.TrimSpace(text)
		}
		if text == "" && rule.Required {
			return failure(rule, schema.CodeRequired)
		}
		length := utf8.RuneCountInString(text)
		if length < rule.Min {
			return failure(rule, schema.CodeMin)
		}
		if rule.Max > 0 && length > rule.Max {
			return failure(rule, schema.CodeMax)
		}
		return nil

	case schema.RuleOneOf:
		text, ok := asString(value)
		if !ok {
			return typeError(rule, "string")
		}
		if rule.Trim {
			text = strings.TrimSpace(text)
		}
		if text == "" {
			if rule.Required {
				return failure(rule, schema.CodeRequired)
			}
			return nil
		}
		for _, allowed := range rule.OneOf {
			if text == allowed {
				return nil
			}
		}
		return failure(rule, schema.CodeOneOf)

	case schema.RuleBoolean:
		if _, ok := value.(bool); !ok {
			return typeError(rule, "boolean")
		}
		return nil

	default:
		return &FieldError{
			Field:   rule.Field,
			Code:    schema.CodeType,
			Message: fmt.Sprintf("%s has an unsupported rule %q", rule.Field, rule.Kind),
		}
	}
}

func failure(rule schema.Rule, code string) *FieldError {
	message := rule.Messages.For(code)
	if message == "" {
		message = fmt.Sprintf("%s is invalid (%s)", rule.Field, code)
	}
	return &FieldError{Field: rule.Field, Code: code, Message: message}
}

func typeError(rule schema.Rule, want string) *FieldError {
	return &FieldError{
		Field:   rule.Field,
		Code:    schema.CodeType,
		Message: fmt.Sprintf("%s must be a %s", rule.Field, want),
	}
}

func asString(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case model.Size:
		return string(typed), true
	case nil:
		return "", true
	default:
		return "", false
	}
}
