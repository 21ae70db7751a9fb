package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/export"
	"github.com/mverhey/confidant/internal/llm"
	"github.com/rs/zerolog/log"
)

// ApologyReply is the fixed user-facing string returned when the
// completion service fails. No service failure crashes the engine.
const ApologyReply = "Sorry, something went wrong when trying to talk to the assistant."

// ConversationEngine orchestrates the turn lifecycle for one session:
// command dispatch, context assembly, completion calls, persistence, and
// identity promotion. One engine instance owns one session at a time;
// callers must serialize all operations against it.
type ConversationEngine struct {
	store       domain.SessionStore
	assembler   *ContextAssembler
	personality *PersonalityManager
	identity    *SessionIdentity
	summarizer  *Summarizer
	exporter    export.Exporter
	router      *llm.Router

	sessionName  string
	turns        []domain.Turn
	promptCount  int
	initialized  bool
	sessionStart time.Time
	now          func() time.Time
}

// NewConversationEngine constructs an engine. With an empty sessionName a
// provisional timestamp-derived name is minted; with an explicit name any
// existing history is loaded from the store.
func NewConversationEngine(
	store domain.SessionStore,
	assembler *ContextAssembler,
	personality *PersonalityManager,
	identity *SessionIdentity,
	summarizer *Summarizer,
	exporter export.Exporter,
	router *llm.Router,
	sessionName string,
) *ConversationEngine {
	e := &ConversationEngine{
		store:       store,
		assembler:   assembler,
		personality: personality,
		identity:    identity,
		summarizer:  summarizer,
		exporter:    exporter,
		router:      router,
		now:         time.Now,
	}

	e.sessionStart = e.now()
	if sessionName == "" {
		sessionName = ProvisionalName(e.sessionStart)
	}
	e.sessionName = sessionName
	e.turns = store.Load(sessionName)

	return e
}

// SessionName returns the session's current name
func (e *ConversationEngine) SessionName() string {
	return e.sessionName
}

// Turns returns a copy of the session's in-memory turns
func (e *ConversationEngine) Turns() []domain.Turn {
	out := make([]domain.Turn, len(e.turns))
	copy(out, e.turns)
	return out
}

// Send handles one user input and returns the reply text. Control inputs
// short-circuit normal turn handling and never count toward the turn
// counter or context growth. Service failures degrade to the fixed apology
// string; the unanswered user turn stays only in volatile memory.
func (e *ConversationEngine) Send(ctx context.Context, input string) string {
	switch ParseCommand(input) {
	case CommandGetPersonality:
		return e.personality.Load()
	case CommandRegenPersonality:
		return e.personality.Rebuild(ctx)
	case CommandExportSummary:
		return e.ExportSummary(ctx)
	}

	userAt := e.now()
	e.turns = append(e.turns, domain.Turn{
		Role:      domain.RoleUser,
		Content:   input,
		Timestamp: &userAt,
	})
	e.promptCount++

	messages := e.assembler.Assemble(e.personality.Load(), e.turns)

	provider, err := e.router.GetProvider("")
	if err != nil {
		log.Error().Err(err).Msg("no completion provider available")
		return ApologyReply
	}

	resp, err := provider.Complete(ctx, llm.Request{Messages: messages})
	if err != nil {
		log.Error().Err(err).Str("session", e.sessionName).Msg("completion request failed")
		return ApologyReply
	}

	assistantAt := e.now()
	e.turns = append(e.turns, domain.Turn{
		Role:      domain.RoleAssistant,
		Content:   resp.Content,
		Timestamp: &assistantAt,
	})
	e.initialized = true

	// Promotion fires exactly once, after the second user turn completes.
	// A failed title request leaves the session Provisional for good.
	if e.promptCount == 2 {
		if newName, ok := e.identity.Promote(ctx, e.sessionName, e.turns, e.sessionStart); ok {
			e.sessionName = newName
		}
	}

	e.persist(ctx)

	return resp.Content
}

// ExportSummary generates the full session summary and hands it to the
// export collaborator, returning the resulting file location or a failure
// message
func (e *ConversationEngine) ExportSummary(ctx context.Context) string {
	summary := e.summarizer.Summary(ctx, e.turns, e.sessionStart)
	path, err := e.exporter.Export(e.sessionName, summary)
	if err != nil {
		return fmt.Sprintf("Failed to export summary: %v", err)
	}
	return fmt.Sprintf("Summary exported to %s", path)
}

// persist saves the session, attaching a tooltip only once a first full
// assistant reply has ever been produced in this engine's lifetime. Write
// failures are logged; in-memory state stays authoritative for the rest of
// the process.
func (e *ConversationEngine) persist(ctx context.Context) {
	tooltip := ""
	if e.initialized {
		tooltip = e.summarizer.Tooltip(ctx, e.turns, e.sessionStart)
	}
	if err := e.store.Save(e.sessionName, e.turns, tooltip); err != nil {
		log.Error().Err(err).Str("session", e.sessionName).Msg("failed to persist session")
	}
}
