package service

import (
	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/llm"
)

// ContextAssembler builds the exact message list submitted to the
// completion service for one request: personality preamble, cross-session
// background window, then the active session's turns in order.
type ContextAssembler struct {
	store  domain.SessionStore
	window int
}

// NewContextAssembler creates an assembler with the given cross-session
// window size
func NewContextAssembler(store domain.SessionStore, window int) *ContextAssembler {
	return &ContextAssembler{store: store, window: window}
}

// Assemble produces the completion request payload. The cross-session
// portion takes the most recent turns in file-iteration order, truncated to
// the window; files are not ordered relative to each other first, so this
// is a best-effort recency window rather than a chronological merge.
func (a *ContextAssembler) Assemble(profile string, current []domain.Turn) []llm.Message {
	messages := make([]llm.Message, 0, a.window+len(current)+1)
	messages = append(messages, llm.Message{Role: string(domain.RoleSystem), Content: profile})

	background := a.store.All()
	if len(background) > a.window {
		background = background[len(background)-a.window:]
	}
	messages = append(messages, messagesOf(background)...)
	messages = append(messages, messagesOf(current)...)

	return llm.FilterValid(messages)
}

// messagesOf converts valid turns into wire messages
func messagesOf(turns []domain.Turn) []llm.Message {
	out := make([]llm.Message, 0, len(turns))
	for _, t := range domain.FilterValid(turns) {
		out = append(out, llm.Message{Role: string(t.Role), Content: t.Content})
	}
	return out
}
