package usecase

import (
	"net/url"
	"strings"
)

// DefaultChatBaseURL is where conversations open when no base is configured.
const DefaultChatBaseURL = "https://whaticket.com"

// ChatLinker builds outbound links to the external chat tool.
type ChatLinker struct {
	base string
}

// NewChatLinker creates a linker for base. Trailing slashes are dropped.
func NewChatLinker(base string) ChatLinker {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultChatBaseURL
	}
	return ChatLinker{base: base}
}

// Link returns <base>/conversations/<id>. An absent or blank id yields false
// and the chat action is disabled.
func (l ChatLinker) Link(conversationID *string) (string, bool) {
	if conversationID == nil {
		return "", false
	}
	id := strings.TrimSpace(*conversationID)
	if id == "" {
		return "", false
	}
	return l.base + "/conversations/" + url.PathEscape(id), true
}
