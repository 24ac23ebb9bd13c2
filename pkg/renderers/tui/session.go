package tui

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/state"
)

// Outcome reports how a session ended.
type Outcome struct {
	Submitted bool
	Feedback  model.Feedback
	// Order holds the values that were sent on the last attempt.
	Order model.FormValues
}

// Session walks a user through the order form on a terminal. Every answer
// goes through the store, so the same rules and eligibility apply as on the
// web form.
type Session struct {
	driver       PromptDriver
	store        *state.Store
	submitter    state.Submitter
	outputFormat OutputFormat
	theme        Theme
}

// New builds a session. A submitter is required; the survey driver and a
// fresh store are used unless overridden.
func New(options ...Option) (*Session, error) {
	s := &Session{
		outputFormat: OutputFormatPrettyText,
		theme:        DefaultTheme,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.submitter == nil {
		return nil, ErrSubmitterRequired
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	if s.store == nil {
		s.store = state.New()
	}
	return s, nil
}

// Store exposes the store backing the session.
func (s *Session) Store() *state.Store {
	return s.store
}

// Run prompts for every field, confirms, and submits. A failed submission
// shows the failure banner and offers another attempt with the values kept.
// Declining to submit or to retry ends the session without error; the
// returned Outcome carries the last feedback.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	for {
		if err := s.collect(ctx); err != nil {
			return Outcome{}, err
		}

		if err := s.info(ctx, s.theme.InfoPrefix+summary(s.store.Values(), s.store.Schema())); err != nil {
			return Outcome{}, err
		}
		confirmed, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Place this order?", Default: true})
		if err != nil {
			return Outcome{}, err
		}
		if !confirmed {
			return Outcome{Order: s.store.Values()}, nil
		}

		order := s.store.Values()
		err = s.store.Submit(ctx, s.submitter)
		feedback := s.store.Feedback()
		if err == nil {
			if err := s.info(ctx, s.theme.SuccessPrefix+feedback.Success); err != nil {
				return Outcome{}, err
			}
			if err := s.echo(ctx, order); err != nil {
				return Outcome{}, err
			}
			return Outcome{Submitted: true, Feedback: feedback, Order: order}, nil
		}
		if ctx.Err() != nil {
			return Outcome{Feedback: feedback, Order: order}, ctx.Err()
		}

		if err := s.info(ctx, s.theme.ErrorPrefix+feedback.Failure); err != nil {
			return Outcome{}, err
		}
		retry, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if err != nil {
			return Outcome{}, err
		}
		if !retry {
			return Outcome{Feedback: feedback, Order: order}, nil
		}
	}
}

func (s *Session) collect(ctx context.Context) error {
	if err := s.promptFullName(ctx); err != nil {
		return err
	}
	if err := s.promptSize(ctx); err != nil {
		return err
	}
	return s.promptToppings(ctx)
}

func (s *Session) promptFullName(ctx context.Context) error {
	for {
		value, err := s.driver.Input(ctx, InputConfig{
			Message:     "Full Name",
			Default:     s.store.Values().FullName,
			Placeholder: "Type full name",
		})
		if err != nil {
			return err
		}
		s.store.SetFullName(value)
		msg := s.store.Errors().Get(model.FieldFullName)
		if msg == "" {
			return nil
		}
		if err := s.info(ctx, s.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
}

func (s *Session) promptSize(ctx context.Context) error {
	sch := s.store.Schema()
	sizes := sch.Sizes()
	options := make([]string, 0, len(sizes)+1)
	options = append(options, sch.SizePlaceholder())
	current := s.store.Values().Size
	defaultIndex := 0
	for i, opt := range sizes {
		options = append(options, opt.Label)
		if opt.Value == current {
			defaultIndex = i + 1
		}
	}

	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      "Size",
			Options:      options,
			DefaultIndex: defaultIndex,
		})
		if err != nil {
			return err
		}
		size := model.SizeNone
		if idx > 0 && idx <= len(sizes) {
			size = sizes[idx-1].Value
		}
		s.store.SetSize(size)
		msg := s.store.Errors().Get(model.FieldSize)
		if msg == "" {
			return nil
		}
		defaultIndex = 0
		if err := s.info(ctx, s.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
}

func (s *Session) promptToppings(ctx context.Context) error {
	current := s.store.Values().Toppings
	options := make([]string, 0, len(current))
	var defaults []int
	for i, topping := range current {
		options = append(options, topping.Text)
		if topping.Selected {
			defaults = append(defaults, i)
		}
	}

	picked, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Toppings",
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}
	chosen := make(map[int]struct{}, len(picked))
	for _, idx := range picked {
		chosen[idx] = struct{}{}
	}
	for i, topping := range current {
		_, selected := chosen[i]
		if selected == topping.Selected {
			continue
		}
		if err := s.store.ToggleTopping(topping.ID, selected); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) echo(ctx context.Context, order model.FormValues) error {
	switch s.outputFormat {
	case OutputFormatNone:
		return nil
	case OutputFormatJSON:
		payload, err := json.MarshalIndent(model.NewOrderRequest(order), "", "  ")
		if err != nil {
			return fmt.Errorf("tui: encode order: %w", err)
		}
		return s.info(ctx, string(payload))
	default:
		return s.info(ctx, s.theme.InfoPrefix+summary(order, s.store.Schema()))
	}
}

func (s *Session) info(ctx context.Context, msg string) error {
	if strings.TrimSpace(msg) == "" {
		return nil
	}
	return s.driver.Info(ctx, msg)
}

func summary(values model.FormValues, sch *schema.Schema) string {
	var toppings []string
	for _, topping := range values.SelectedToppings() {
		toppings = append(toppings, topping.Text)
	}
	list := "no toppings"
	if len(toppings) > 0 {
		list = strings.Join(toppings, ", ")
	}
	return fmt.Sprintf("Order for %s: %s pizza, %s", strings.TrimSpace(values.FullName), sch.SizeLabel(values.Size), list)
}
