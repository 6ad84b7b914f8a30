package chat

import (
	"github.com/FACorreiaa/juanito/internal/app/catalog"
	"github.com/FACorreiaa/juanito/internal/pkg/rules"
)

// Responder is the offline guide: the first fallback rule with a keyword in the
// message picks the canned reply, otherwise the default redirect is used.
type Responder struct {
	matcher      *rules.Matcher[string]
	defaultReply string
}

func NewResponder(content catalog.ChatContent) *Responder {
	return &Responder{
		matcher:      rules.NewMatcher(content.Fallback),
		defaultReply: content.DefaultReply,
	}
}

// Reply returns the canned answer and the name of the rule that chose it,
// "default" when none matched.
func (r *Responder) Reply(message string) (string, string) {
	if text, name, ok := r.matcher.Match(message); ok {
		return text, name
	}
	return r.defaultReply, "default"
}
