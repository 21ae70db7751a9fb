package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSummarizer_Tooltip(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, requestEndingWith(tooltipInstruction)).
		Return(&llm.Response{Content: "A chat about budgeting"}, nil)

	s := NewSummarizer(mockRouter(provider))
	now := time.Now()
	turns := []domain.Turn{{Role: domain.RoleUser, Content: "budget help", Timestamp: &now}}

	got := s.Tooltip(context.Background(), turns, now.Add(-time.Minute))
	assert.Equal(t, "A chat about budgeting", got)
}

func TestSummarizer_TooltipFailsSoft(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything).
		Return(nil, errors.New("service unavailable"))

	s := NewSummarizer(mockRouter(provider))
	got := s.Tooltip(context.Background(), nil, time.Now())
	assert.Equal(t, TooltipPlaceholder, got)
}

func TestSummarizer_Summary(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, requestEndingWith(summaryInstruction)).
		Return(&llm.Response{Content: "1. Overview\n- budgeting basics"}, nil)

	s := NewSummarizer(mockRouter(provider))
	got := s.Summary(context.Background(), nil, time.Now())
	assert.Equal(t, "1. Overview\n- budgeting basics", got)
}

func TestSummarizer_SummaryFailsSoft(t *testing.T) {
	provider := new(MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything).
		Return(nil, errors.New("service unavailable"))

	s := NewSummarizer(mockRouter(provider))
	got := s.Summary(context.Background(), nil, time.Now())
	assert.Equal(t, SummaryPlaceholder, got)
}
