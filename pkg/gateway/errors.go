package gateway

import (
	"errors"
	"fmt"
)

// DefaultFallbackMessage is used when a failed submission carries no server
// message.
const DefaultFallbackMessage = "Something went wrong with your order, please try again"

// ErrEndpointRequired is returned by New when the endpoint is blank.
var ErrEndpointRequired = errors.New("gateway: endpoint is required")

// SubmissionError reports a rejected or unreachable submission. Status is 0
// when no HTTP response was received.
type SubmissionError struct {
	Status  int
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("gateway: submit order: %v", e.Err)
		}
		return "gateway: submit order: no response"
	}
	return fmt.Sprintf("gateway: submit order: status %d: %s", e.Status, e.Message)
}

func (e *SubmissionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FailureMessage returns the banner text for err: the server message carried
// by a *SubmissionError, or fallback for anything else.
func FailureMessage(err error, fallback string) string {
	var subErr *SubmissionError
	if errors.As(err, &subErr) && subErr.Message != "" {
		return subErr.Message
	}
	if fallback == "" {
		return DefaultFallbackMessage
	}
	return fallback
}
