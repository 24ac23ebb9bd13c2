package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	feedbackPolicyOnce sync.Once
	feedbackPolicy     *bluemonday.Policy
)

// SanitizeFeedback strips any markup from a server-supplied banner message
// and collapses whitespace. Templates escape the result again on output.
func SanitizeFeedback(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := feedbackSanitizer().Sanitize(trimmed)
	// StrictPolicy leaves entities encoded; unescape so the template engine
	// does not double-encode them.
	cleaned = html.UnescapeString(cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}

func feedbackSanitizer() *bluemonday.Policy {
	feedbackPolicyOnce.Do(func() {
		feedbackPolicy = bluemonday.StrictPolicy()
	})
	return feedbackPolicy
}
