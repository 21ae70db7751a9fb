package service

import (
	"context"
	"time"

	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/llm"
	"github.com/rs/zerolog/log"
)

const (
	// TooltipPlaceholder is returned when tooltip generation fails
	TooltipPlaceholder = "No summary available."
	// SummaryPlaceholder is returned when full-summary generation fails
	SummaryPlaceholder = "Summary unavailable."
)

const tooltipInstruction = "In one sentence, describe what this chat session is about. " +
	"Keep it short, clear, and without quotes or emojis."

const summaryInstruction = "Generate a clean, helpful session summary using the structure below. Include only real content actually discussed in the session.\n\n" +
	"1. Overview - TL;DR summary of what was covered. Bullet points or a short paragraph.\n\n" +
	"2. Full Summary - Paragraph-style explanation of the chat flow. Mention if code or projects were discussed.\n\n" +
	"3. Key Concepts - Bullet list of the topics, tools, or ideas that were talked about.\n\n" +
	"4. Code Snippets - Include real code from the session only here. Add comments if there are multiple examples.\n\n" +
	"5. Next Steps - Include anything the user mentioned they'd like to do, even casually. For example, if they said " +
	"'next steps would be...' or 'I want to...', treat that as a valid future action.\n\n" +
	"Skip sections only if they are 100% irrelevant. Do not invent content, but do not overlook user intent either."

// Summarizer produces short and long natural-language session summaries by
// issuing dedicated completion requests scoped to the current session's
// turns. Both operations fail soft to fixed placeholder strings.
type Summarizer struct {
	router *llm.Router
}

// NewSummarizer creates a summarizer
func NewSummarizer(router *llm.Router) *Summarizer {
	return &Summarizer{router: router}
}

// Tooltip generates the one-sentence session description persisted as
// session metadata
func (s *Summarizer) Tooltip(ctx context.Context, turns []domain.Turn, since time.Time) string {
	return s.generate(ctx, turns, since, tooltipInstruction, TooltipPlaceholder)
}

// Summary generates the structured multi-section session report handed to
// the export collaborator
func (s *Summarizer) Summary(ctx context.Context, turns []domain.Turn, since time.Time) string {
	return s.generate(ctx, turns, since, summaryInstruction, SummaryPlaceholder)
}

func (s *Summarizer) generate(ctx context.Context, turns []domain.Turn, since time.Time, instruction, placeholder string) string {
	messages := append(messagesOf(turnsSince(turns, since)), llm.Message{
		Role:    string(domain.RoleUser),
		Content: instruction,
	})

	provider, err := s.router.GetProvider("")
	if err != nil {
		log.Warn().Err(err).Msg("no provider available for summary generation")
		return placeholder
	}

	resp, err := provider.Complete(ctx, llm.Request{Messages: messages})
	if err != nil {
		log.Warn().Err(err).Msg("summary generation failed")
		return placeholder
	}

	return resp.Content
}
