// Package gateway performs the order submission round-trip. A Client posts
// the current form values to the order endpoint and maps the reply to a
// Result (2xx) or a *SubmissionError (non-2xx or transport failure). The
// client never validates, retries or mutates the values it is given; callers
// gate submission on eligibility and reset their state on success.
package gateway
