package service

import (
	"context"
	"strings"
	"time"

	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/llm"
	"github.com/rs/zerolog/log"
)

const (
	provisionalPrefix     = "session_"
	provisionalTimeFormat = "2006-01-02_15-04-05"
	namedDateFormat       = "2006-01-02"
)

const titleInstruction = "Based on this conversation, suggest a short and descriptive session title (1-4 words max). " +
	"Make it filename-safe: no quotes, slashes, colons, or emojis. Use lowercase and underscores. " +
	"Examples: python_loops, brewing_basics, ai_personality_reset"

// ProvisionalName derives a timestamp-based session name for a session
// created without an explicit name
func ProvisionalName(t time.Time) string {
	return provisionalPrefix + t.Format(provisionalTimeFormat)
}

// IsProvisional reports whether a session name is still timestamp-derived
func IsProvisional(name string) bool {
	return strings.HasPrefix(name, provisionalPrefix)
}

// SessionIdentity owns the Provisional to Named transition: asking the
// completion service for a title scoped to the session's own turns and
// renaming the on-disk file to <date>__<slug>.
type SessionIdentity struct {
	store  domain.SessionStore
	router *llm.Router
	now    func() time.Time
}

// NewSessionIdentity creates a session identity manager
func NewSessionIdentity(store domain.SessionStore, router *llm.Router) *SessionIdentity {
	return &SessionIdentity{store: store, router: router, now: time.Now}
}

// Promote attempts the Provisional to Named transition. It returns the
// active name and whether a rename happened. A session already Named is
// left untouched; a failed title request leaves the session Provisional
// and is not retried on later turns.
func (si *SessionIdentity) Promote(ctx context.Context, name string, turns []domain.Turn, since time.Time) (string, bool) {
	if !IsProvisional(name) {
		return name, false
	}

	slug := si.generateTitle(ctx, turns, since)
	if slug == "" {
		return name, false
	}

	newName := si.now().Format(namedDateFormat) + "__" + slug
	if err := si.store.Rename(name, newName); err != nil {
		log.Warn().Err(err).Str("session", name).Str("title", newName).Msg("failed to rename session")
		return name, false
	}

	log.Info().Str("from", name).Str("to", newName).Msg("session promoted")
	return newName, true
}

func (si *SessionIdentity) generateTitle(ctx context.Context, turns []domain.Turn, since time.Time) string {
	messages := append(messagesOf(turnsSince(turns, since)), llm.Message{
		Role:    string(domain.RoleUser),
		Content: titleInstruction,
	})

	provider, err := si.router.GetProvider("")
	if err != nil {
		log.Warn().Err(err).Msg("no provider available for session titling")
		return ""
	}

	resp, err := provider.Complete(ctx, llm.Request{Messages: messages})
	if err != nil {
		log.Warn().Err(err).Msg("session title generation failed")
		return ""
	}

	return slugify(resp.Content)
}

// slugify normalizes a suggested title into a filename-safe slug
func slugify(title string) string {
	return strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
}

// turnsSince returns the conversational turns recorded at or after the
// given instant. Turns without timestamps are treated as predating it.
func turnsSince(turns []domain.Turn, since time.Time) []domain.Turn {
	out := make([]domain.Turn, 0, len(turns))
	for _, t := range turns {
		if !t.Conversational() || t.Timestamp == nil {
			continue
		}
		if t.Timestamp.Before(since) {
			continue
		}
		out = append(out, t)
	}
	return out
}
