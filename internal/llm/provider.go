package llm

import "context"

// Message is one element of a completion request, in the wire shape the
// remote service expects
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Valid reports whether the message carries both role and content. The
// service may reject malformed requests, so invalid elements are dropped
// before submission.
func (m Message) Valid() bool {
	return m.Role != "" && m.Content != ""
}

// FilterValid drops messages missing role or content
func FilterValid(messages []Message) []Message {
	out := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Valid() {
			out = append(out, m)
		}
	}
	return out
}

// Request contains completion parameters
type Request struct {
	Messages []Message
	Model    string
}

// Response contains a completion result
type Response struct {
	Content    string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for completion-service providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete submits the ordered message list and returns the single
	// assistant reply
	Complete(ctx context.Context, req Request) (*Response, error)
}
