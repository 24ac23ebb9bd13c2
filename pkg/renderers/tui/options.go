package tui

import "github.com/goliatone/go-orderform/pkg/state"

// OutputFormat controls how the placed order is echoed after a successful
// submission.
type OutputFormat string

const (
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
	// OutputFormatJSON emits the order payload as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatNone skips the echo.
	OutputFormatNone OutputFormat = "none"
)

// Theme holds the prefixes the session prepends to printed messages.
type Theme struct {
	InfoPrefix    string
	ErrorPrefix   string
	SuccessPrefix string
}

// DefaultTheme marks success and failure lines with plain glyphs.
var DefaultTheme = Theme{
	InfoPrefix:    "",
	ErrorPrefix:   "✗ ",
	SuccessPrefix: "✓ ",
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithStore runs the session against an existing store, e.g. one prefilled
// from flags.
func WithStore(store *state.Store) Option {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSubmitter sets the collaborator that sends the order.
func WithSubmitter(submitter state.Submitter) Option {
	return func(s *Session) {
		s.submitter = submitter
	}
}

// WithOutputFormat selects how the placed order is echoed.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
