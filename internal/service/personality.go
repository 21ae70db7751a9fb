package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/llm"
	"github.com/rs/zerolog/log"
)

// FallbackPersonality is used when neither a personality file nor a user
// profile exists
const FallbackPersonality = "You are a helpful assistant."

const rebuildInstruction = "Based on this message history, generate a new personality description for this assistant. " +
	"Make it natural, aligned with how it usually talks, and reflect its behavior. Just return the personality."

// PersonalityManager owns the single active personality profile: loading it
// for every session's context assembly and rebuilding it from accumulated
// cross-session history.
type PersonalityManager struct {
	profiles domain.ProfileStore
	sessions domain.SessionStore
	router   *llm.Router
	window   int
}

// NewPersonalityManager creates a personality manager with the given
// rebuild window size
func NewPersonalityManager(profiles domain.ProfileStore, sessions domain.SessionStore, router *llm.Router, window int) *PersonalityManager {
	return &PersonalityManager{profiles: profiles, sessions: sessions, router: router, window: window}
}

// Load returns the active profile text. When no personality file exists
// yet, the initial system preamble is synthesized from the first-run user
// profile; with neither present the fixed fallback applies.
func (m *PersonalityManager) Load() string {
	if profile, ok := m.profiles.LoadPersonality(); ok {
		return profile
	}
	if user, ok := m.profiles.LoadUserProfile(); ok {
		return SynthesizePreamble(user)
	}
	return FallbackPersonality
}

// Rebuild regenerates the profile from the most recent cross-session
// history and fully replaces the stored profile. On missing history or a
// failed completion it returns a diagnostic string and leaves the stored
// profile untouched.
func (m *PersonalityManager) Rebuild(ctx context.Context) string {
	history := m.sessions.All()
	if len(history) > m.window {
		history = history[len(history)-m.window:]
	}
	if len(history) == 0 {
		return "No memory found."
	}

	messages := append(messagesOf(history), llm.Message{
		Role:    string(domain.RoleUser),
		Content: rebuildInstruction,
	})

	provider, err := m.router.GetProvider("")
	if err != nil {
		return fmt.Sprintf("Failed to regenerate personality: %v", err)
	}

	resp, err := provider.Complete(ctx, llm.Request{Messages: messages})
	if err != nil {
		log.Error().Err(err).Msg("personality rebuild completion failed")
		return fmt.Sprintf("Failed to regenerate personality: %v", err)
	}

	if err := m.profiles.SavePersonality(resp.Content); err != nil {
		log.Error().Err(err).Msg("failed to persist rebuilt personality")
		return fmt.Sprintf("Failed to regenerate personality: %v", err)
	}

	return resp.Content
}

// SynthesizePreamble builds the initial system preamble from a first-run
// user profile
func SynthesizePreamble(p domain.UserProfile) string {
	return fmt.Sprintf(
		"You are a personal AI assistant for %s. Your tone should be %s. Their goals include: %s.",
		p.Name,
		strings.Join(p.Tone, ", "),
		strings.Join(p.Goals, ", "),
	)
}

// InitialPersonality is the richer profile written at first-run setup,
// matching the preamble but nudging proactive behavior
func InitialPersonality(p domain.UserProfile) string {
	return fmt.Sprintf(
		"You are a personal AI assistant for %s. You speak with a tone that is %s. Their goals include: %s. "+
			"Be proactive, insightful, and reflect the user's style when responding.",
		p.Name,
		strings.Join(p.Tone, ", "),
		strings.Join(p.Goals, ", "),
	)
}
