package service

import (
	"context"

	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/llm"
	"github.com/stretchr/testify/mock"
)

// MockSessionStore mocks the domain.SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Load(name string) []domain.Turn {
	args := m.Called(name)
	return args.Get(0).([]domain.Turn)
}

func (m *MockSessionStore) Save(name string, turns []domain.Turn, tooltip string) error {
	args := m.Called(name, turns, tooltip)
	return args.Error(0)
}

func (m *MockSessionStore) List() []domain.SessionInfo {
	args := m.Called()
	return args.Get(0).([]domain.SessionInfo)
}

func (m *MockSessionStore) Delete(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockSessionStore) Rename(oldName, newName string) error {
	args := m.Called(oldName, newName)
	return args.Error(0)
}

func (m *MockSessionStore) All() []domain.Turn {
	args := m.Called()
	return args.Get(0).([]domain.Turn)
}

// MockProfileStore mocks the domain.ProfileStore interface
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) LoadPersonality() (string, bool) {
	args := m.Called()
	return args.String(0), args.Bool(1)
}

func (m *MockProfileStore) SavePersonality(profile string) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockProfileStore) LoadUserProfile() (domain.UserProfile, bool) {
	args := m.Called()
	return args.Get(0).(domain.UserProfile), args.Bool(1)
}

func (m *MockProfileStore) SaveUserProfile(p domain.UserProfile) error {
	args := m.Called(p)
	return args.Error(0)
}

// MockProvider mocks the llm.Provider interface
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) AvailableModels() []string { return []string{"mock-model"} }

func (m *MockProvider) DefaultModel() string { return "mock-model" }

func (m *MockProvider) IsConfigured() bool { return true }

func (m *MockProvider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}

// mockRouter wraps a MockProvider in a router with it as default
func mockRouter(p *MockProvider) *llm.Router {
	r := llm.NewRouter("mock")
	r.RegisterProvider(p)
	return r
}

// requestEndingWith matches a completion request whose final message
// carries the given content, which is how the instruction prompts are
// distinguished from ordinary chat requests
func requestEndingWith(content string) interface{} {
	return mock.MatchedBy(func(req llm.Request) bool {
		return len(req.Messages) > 0 && req.Messages[len(req.Messages)-1].Content == content
	})
}
