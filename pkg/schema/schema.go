package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-orderform/pkg/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	// ErrEmptyCatalog is returned when a catalog document has no content.
	ErrEmptyCatalog = errors.New("schema: catalog is empty")

	defaultOnce   sync.Once
	defaultSchema *Schema
	defaultErr    error
)

// Schema is the immutable rule set and catalog of the order form. All
// accessors return copies.
type Schema struct {
	rules           map[string]Rule
	keys            []string
	sizes           []SizeOption
	sizePlaceholder string
	toppings        []ToppingOption
	fallback        string
}

type catalogFile struct {
	FullName struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"fullName"`
	Sizes           []SizeOption    `yaml:"sizes"`
	SizePlaceholder string          `yaml:"sizePlaceholder"`
	Toppings        []ToppingOption `yaml:"toppings"`
	Messages        struct {
		FullNameTooShort   string `yaml:"fullNameTooShort"`
		FullNameTooLong    string `yaml:"fullNameTooLong"`
		SizeIncorrect      string `yaml:"sizeIncorrect"`
		SubmissionFallback string `yaml:"submissionFallback"`
	} `yaml:"messages"`
}

// Default returns the schema built from the embedded catalog. The catalog is
// parsed once per process.
func Default() *Schema {
	defaultOnce.Do(func() {
		defaultSchema, defaultErr = Parse(defaultCatalog)
	})
	if defaultErr != nil {
		panic(fmt.Errorf("schema: embedded catalog: %w", defaultErr))
	}
	return defaultSchema
}

// LoadFile parses a catalog document from disk.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a Schema from a YAML (or JSON) catalog document.
func Parse(data []byte) (*Schema, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmptyCatalog
	}
	var doc catalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse catalog: %w", err)
	}
	return build(doc)
}

func build(doc catalogFile) (*Schema, error) {
	if doc.FullName.Min < 0 || doc.FullName.Max < doc.FullName.Min || doc.FullName.Max == 0 {
		return nil, fmt.Errorf("schema: invalid fullName bounds [%d,%d]", doc.FullName.Min, doc.FullName.Max)
	}
	if len(doc.Sizes) == 0 {
		return nil, errors.New("schema: catalog defines no sizes")
	}
	if len(doc.Toppings) == 0 {
		return nil, errors.New("schema: catalog defines no toppings")
	}

	s := &Schema{
		rules:           make(map[string]Rule, 2+len(doc.Toppings)),
		sizePlaceholder: strings.TrimSpace(doc.SizePlaceholder),
		fallback:        strings.TrimSpace(doc.Messages.SubmissionFallback),
	}

	short := strings.TrimSpace(doc.Messages.FullNameTooShort)
	s.add(Rule{
		Field:    model.FieldFullName,
		Kind:     RuleLength,
		Trim:     true,
		Required: true,
		Min:      doc.FullName.Min,
		Max:      doc.FullName.Max,
		Messages: Messages{
			Required: short,
			Min:      short,
			Max:      strings.TrimSpace(doc.Messages.FullNameTooLong),
		},
	})

	sizeMsg := strings.TrimSpace(doc.Messages.SizeIncorrect)
	allowed := make([]string, 0, len(doc.Sizes))
	seenSizes := make(map[model.Size]struct{}, len(doc.Sizes))
	for _, opt := range doc.Sizes {
		value := model.Size(strings.TrimSpace(string(opt.Value)))
		if value == model.SizeNone {
			return nil, errors.New("schema: size option with empty value")
		}
		if _, dup := seenSizes[value]; dup {
			return nil, fmt.Errorf("schema: duplicate size %q", value)
		}
		seenSizes[value] = struct{}{}
		allowed = append(allowed, string(value))
		s.sizes = append(s.sizes, SizeOption{Value: value, Label: strings.TrimSpace(opt.Label)})
	}
	s.add(Rule{
		Field:    model.FieldSize,
		Kind:     RuleOneOf,
		Required: true,
		OneOf:    allowed,
		Messages: Messages{Required: sizeMsg, OneOf: sizeMsg},
	})

	seenToppings := make(map[string]struct{}, len(doc.Toppings))
	for _, opt := range doc.Toppings {
		id := strings.TrimSpace(opt.ID)
		if id == "" {
			return nil, errors.New("schema: topping with empty id")
		}
		if _, dup := seenToppings[id]; dup {
			return nil, fmt.Errorf("schema: duplicate topping %q", id)
		}
		seenToppings[id] = struct{}{}
		s.toppings = append(s.toppings, ToppingOption{ID: id, Text: strings.TrimSpace(opt.Text)})
		s.add(Rule{Field: model.ToppingKey(id), Kind: RuleBoolean})
	}

	return s, nil
}

func (s *Schema) add(rule Rule) {
	s.rules[rule.Field] = rule
	s.keys = append(s.keys, rule.Field)
}

// Rule returns the rule registered for a field key.
func (s *Schema) Rule(key string) (Rule, bool) {
	if s == nil {
		return Rule{}, false
	}
	rule, ok := s.rules[key]
	if !ok {
		return Rule{}, false
	}
	return rule.clone(), true
}

// Keys lists every field key in form order: fullName, size, then toppings.
func (s *Schema) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Sizes lists the selectable sizes.
func (s *Schema) Sizes() []SizeOption {
	if s == nil {
		return nil
	}
	return append([]SizeOption(nil), s.sizes...)
}

// SizeLabel returns the display label for size, falling back to the raw value.
func (s *Schema) SizeLabel(size model.Size) string {
	for _, opt := range s.Sizes() {
		if opt.Value == size && opt.Label != "" {
			return opt.Label
		}
	}
	return string(size)
}

// SizePlaceholder is the text of the neutral size option.
func (s *Schema) SizePlaceholder() string {
	if s == nil {
		return ""
	}
	return s.sizePlaceholder
}

// Toppings lists the fixed topping catalog.
func (s *Schema) Toppings() []ToppingOption {
	if s == nil {
		return nil
	}
	return append([]ToppingOption(nil), s.toppings...)
}

// FallbackMessage is shown when a submission fails without a server message.
func (s *Schema) FallbackMessage() string {
	if s == nil {
		return ""
	}
	return s.fallback
}

// InitialValues returns the default form values: empty name, no size and
// every catalog topping unselected.
func (s *Schema) InitialValues() model.FormValues {
	values := model.FormValues{Toppings: make([]model.Topping, 0, len(s.toppings))}
	for _, opt := range s.toppings {
		values.Toppings = append(values.Toppings, model.Topping{ID: opt.ID, Text: opt.Text})
	}
	return values
}

// InitialErrors returns an error map with an empty entry per field key.
func (s *Schema) InitialErrors() model.FieldErrors {
	errs := make(model.FieldErrors, len(s.keys))
	for _, key := range s.keys {
		errs[key] = ""
	}
	return errs
}

// Normalize projects arbitrary values onto the catalog: toppings are
// rebuilt in catalog order, unknown identities are dropped and the selection
// of known ones is kept.
func (s *Schema) Normalize(values model.FormValues) model.FormValues {
	out := s.InitialValues()
	out.FullName = values.FullName
	out.Size = values.Size
	for i, topping := range out.Toppings {
		if current, ok := values.Topping(topping.ID); ok {
			out.Toppings[i].Selected = current.Selected
		}
	}
	return out
}
