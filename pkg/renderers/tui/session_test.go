package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/gateway"
	"github.com/goliatone/go-orderform/pkg/model"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	infoMessages []string
	inputErr     error
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) sawInfo(fragment string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, fragment) {
			return true
		}
	}
	return false
}

type stubSubmitter struct {
	results []gateway.Result
	errs    []error
	calls   []model.FormValues
}

func (s *stubSubmitter) Submit(_ context.Context, values model.FormValues) (gateway.Result, error) {
	idx := len(s.calls)
	s.calls = append(s.calls, values)
	var (
		result gateway.Result
		err    error
	)
	if idx < len(s.results) {
		result = s.results[idx]
	}
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	return result, err
}

func TestSessionRepromptsInvalidFieldsAndSubmits(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Al", "Alice"},
		selectIdx: []int{0, 2},
		multiIdx:  [][]int{{0, 4}},
		confirm:   []bool{true},
	}
	submitter := &stubSubmitter{
		results: []gateway.Result{{Status: 201, Message: "Thank you, Alice!"}},
	}
	session, err := New(WithPromptDriver(driver), WithSubmitter(submitter))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	outcome, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, want := range []string{
		"✗ full name must be at least 3 characters",
		"✗ size must be S or M or L",
		"Order for Alice: Medium pizza, Pepperoni, Ham",
		"✓ Thank you, Alice!",
	} {
		if !driver.sawInfo(want) {
			t.Fatalf("expected info %q, got %v", want, driver.infoMessages)
		}
	}

	if !outcome.Submitted || outcome.Feedback.Success != "Thank you, Alice!" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if len(submitter.calls) != 1 {
		t.Fatalf("expected one submission, got %d", len(submitter.calls))
	}
	sent := submitter.calls[0]
	if sent.FullName != "Alice" || sent.Size != model.SizeM {
		t.Fatalf("unexpected submitted values %+v", sent)
	}
	var picked []string
	for _, topping := range sent.SelectedToppings() {
		picked = append(picked, topping.ID)
	}
	if diff := cmp.Diff([]string{"1", "5"}, picked); diff != "" {
		t.Fatalf("toppings mismatch (-want +got):\n%s", diff)
	}

	if values := session.Store().Values(); values.FullName != "" || values.Size != model.SizeNone {
		t.Fatalf("store should reset after success, got %+v", values)
	}
}

func TestSessionRetriesAfterFailure(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Alice", "Alice"},
		selectIdx: []int{3, 2},
		multiIdx:  [][]int{nil, nil},
		confirm:   []bool{true, true, true},
	}
	submitter := &stubSubmitter{
		results: []gateway.Result{{}, {Status: 201, Message: "On the way"}},
		errs:    []error{&gateway.SubmissionError{Status: 422, Message: "Size out of stock"}},
	}
	session, err := New(WithPromptDriver(driver), WithSubmitter(submitter), WithOutputFormat(OutputFormatNone))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	outcome, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !driver.sawInfo("✗ Size out of stock") {
		t.Fatalf("expected failure banner, got %v", driver.infoMessages)
	}
	if len(submitter.calls) != 2 {
		t.Fatalf("expected two submissions, got %d", len(submitter.calls))
	}
	if submitter.calls[0].Size != model.SizeL || submitter.calls[1].Size != model.SizeM {
		t.Fatalf("unexpected sizes %q then %q", submitter.calls[0].Size, submitter.calls[1].Size)
	}
	if !outcome.Submitted || outcome.Feedback.Failure != "" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestSessionFailureWithoutRetryKeepsValues(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Alice"},
		selectIdx: []int{1},
		multiIdx:  [][]int{{2}},
		confirm:   []bool{true, false},
	}
	submitter := &stubSubmitter{errs: []error{errors.New("dial tcp: connection refused")}}
	session, err := New(WithPromptDriver(driver), WithSubmitter(submitter))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	outcome, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "Something went wrong with your order, please try again"
	if outcome.Submitted || outcome.Feedback.Failure != want {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if values := session.Store().Values(); values.FullName != "Alice" || values.Size != model.SizeS {
		t.Fatalf("values should be kept after failure, got %+v", values)
	}
}

func TestSessionDeclineSkipsSubmission(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Alice"},
		selectIdx: []int{1},
		multiIdx:  [][]int{nil},
		confirm:   []bool{false},
	}
	submitter := &stubSubmitter{}
	session, err := New(WithPromptDriver(driver), WithSubmitter(submitter))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	outcome, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Submitted || len(submitter.calls) != 0 {
		t.Fatalf("expected no submission, outcome %+v calls %d", outcome, len(submitter.calls))
	}
	if !driver.sawInfo("Order for Alice: Small pizza, no toppings") {
		t.Fatalf("expected summary, got %v", driver.infoMessages)
	}
}

func TestSessionEchoesJSON(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"  Alice  "},
		selectIdx: []int{2},
		multiIdx:  [][]int{{1}},
		confirm:   []bool{true},
	}
	submitter := &stubSubmitter{results: []gateway.Result{{Status: 201, Message: "ok"}}}
	session, err := New(WithPromptDriver(driver), WithSubmitter(submitter), WithOutputFormat(OutputFormatJSON))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}

	if _, err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !driver.sawInfo(`"fullName": "Alice"`) || !driver.sawInfo(`"text": "Green Peppers"`) {
		t.Fatalf("expected JSON echo, got %v", driver.infoMessages)
	}
}

func TestSessionPropagatesAbort(t *testing.T) {
	driver := &stubDriver{inputErr: ErrAborted}
	session, err := New(WithPromptDriver(driver), WithSubmitter(&stubSubmitter{}))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := session.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNewRequiresSubmitter(t *testing.T) {
	if _, err := New(WithPromptDriver(&stubDriver{})); !errors.Is(err, ErrSubmitterRequired) {
		t.Fatalf("expected ErrSubmitterRequired, got %v", err)
	}
}
