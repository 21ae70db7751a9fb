package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/export"
	"github.com/mverhey/confidant/internal/llm"
	"github.com/mverhey/confidant/internal/repository/file"
	"github.com/mverhey/confidant/internal/service"
)

type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Name() string              { return "stub" }
func (p *stubProvider) AvailableModels() []string { return []string{"stub-model"} }
func (p *stubProvider) DefaultModel() string      { return "stub-model" }
func (p *stubProvider) IsConfigured() bool        { return true }

func (p *stubProvider) Complete(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.Response{Content: p.reply, Model: "stub-model"}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func newTestRouter(t *testing.T, provider llm.Provider) (http.Handler, *file.SessionStore) {
	t.Helper()

	sessions, err := file.NewSessionStore(t.TempDir())
	require.NoError(t, err)
	profiles, err := file.NewProfileStore(t.TempDir())
	require.NoError(t, err)
	exporter, err := export.NewHTMLExporter(t.TempDir())
	require.NoError(t, err)

	llmRouter := llm.NewRouter("stub")
	llmRouter.RegisterProvider(provider)

	assembler := service.NewContextAssembler(sessions, 25)
	personality := service.NewPersonalityManager(profiles, sessions, llmRouter, 50)
	identity := service.NewSessionIdentity(sessions, llmRouter)
	summarizer := service.NewSummarizer(llmRouter)

	manager := service.NewManager(func(name string) *service.ConversationEngine {
		return service.NewConversationEngine(sessions, assembler, personality, identity, summarizer, exporter, llmRouter, name)
	})

	sessionHandler := NewSessionHandler(sessions, manager)
	personalityHandler := NewPersonalityHandler(personality)
	setupHandler := NewSetupHandler(profiles)

	r := chi.NewRouter()
	r.Get("/health", HealthCheck)
	r.Get("/llm-providers", ListProviders(llmRouter))
	r.Post("/setup", setupHandler.Create)
	r.Route("/personality", func(r chi.Router) {
		r.Get("/", personalityHandler.Get)
		r.Post("/rebuild", personalityHandler.Rebuild)
	})
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", sessionHandler.List)
		r.Post("/", sessionHandler.Create)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/turns", sessionHandler.GetTurns)
			r.Delete("/", sessionHandler.Delete)
			r.Post("/messages", sessionHandler.Send)
			r.Post("/export", sessionHandler.Export)
		})
	})

	return r, sessions
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHealthCheck(t *testing.T) {
	h, _ := newTestRouter(t, &stubProvider{reply: "ok"})

	rec, env := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestListProviders(t *testing.T) {
	h, _ := newTestRouter(t, &stubProvider{reply: "ok"})

	rec, env := do(t, h, http.MethodGet, "/llm-providers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var data struct {
		Providers       []llm.ProviderInfo `json:"providers"`
		DefaultProvider string             `json:"default_provider"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "stub", data.DefaultProvider)
	require.Len(t, data.Providers, 1)
	assert.Equal(t, "stub", data.Providers[0].Name)
}

func TestSessionLifecycle(t *testing.T) {
	h, _ := newTestRouter(t, &stubProvider{reply: "hi there"})

	// create a fresh provisional session
	rec, env := do(t, h, http.MethodPost, "/sessions/", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &created))
	name := created["session"]
	require.True(t, service.IsProvisional(name))

	// first message
	rec, env = do(t, h, http.MethodPost, "/sessions/"+name+"/messages", `{"input":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var sent map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &sent))
	assert.Equal(t, "hi there", sent["reply"])
	assert.Equal(t, name, sent["session"])

	// persisted turns are visible
	rec, env = do(t, h, http.MethodGet, "/sessions/"+name+"/turns", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var turns []domain.Turn
	require.NoError(t, json.Unmarshal(env.Data, &turns))
	require.Len(t, turns, 2)
	assert.Equal(t, "hello", turns[0].Content)
	assert.Equal(t, "hi there", turns[1].Content)

	// listed with its tooltip
	rec, env = do(t, h, http.MethodGet, "/sessions/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sessions []domain.SessionInfo
	require.NoError(t, json.Unmarshal(env.Data, &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, name, sessions[0].Name)
	assert.Equal(t, "hi there", sessions[0].Tooltip)

	// delete and confirm gone
	rec, _ = do(t, h, http.MethodDelete, "/sessions/"+name+"/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	_, env = do(t, h, http.MethodGet, "/sessions/", "")
	require.NoError(t, json.Unmarshal(env.Data, &sessions))
	assert.Empty(t, sessions)
}

func TestSend_SecondMessageRenamesSession(t *testing.T) {
	h, _ := newTestRouter(t, &stubProvider{reply: "budget basics"})

	_, env := do(t, h, http.MethodPost, "/sessions/", "")
	var created map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &created))
	name := created["session"]

	_, env = do(t, h, http.MethodPost, "/sessions/"+name+"/messages", `{"input":"one"}`)
	var sent map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &sent))
	require.Equal(t, name, sent["session"])

	// the stub's reply doubles as the suggested title
	_, env = do(t, h, http.MethodPost, "/sessions/"+name+"/messages", `{"input":"two"}`)
	require.NoError(t, json.Unmarshal(env.Data, &sent))
	assert.NotEqual(t, name, sent["session"])
	assert.False(t, service.IsProvisional(sent["session"]))
	assert.True(t, strings.HasSuffix(sent["session"], "__budget_basics"))
}

func TestSend_RequiresInput(t *testing.T) {
	h, _ := newTestRouter(t, &stubProvider{reply: "hi"})

	rec, env := do(t, h, http.MethodPost, "/sessions/some-session/messages", `{"input":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	rec, _ = do(t, h, http.MethodPost, "/sessions/some-session/messages", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSend_CompletionFailureReturnsApology(t *testing.T) {
	h, store := newTestRouter(t, &stubProvider{err: assert.AnError})

	_, env := do(t, h, http.MethodPost, "/sessions/", "")
	var created map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &created))
	name := created["session"]

	rec, env := do(t, h, http.MethodPost, "/sessions/"+name+"/messages", `{"input":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var sent map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &sent))
	assert.Equal(t, service.ApologyReply, sent["reply"])

	// nothing was written for the failed turn
	assert.Empty(t, store.Load(name))
}

func TestSetupAndPersonality(t *testing.T) {
	h, _ := newTestRouter(t, &stubProvider{reply: "ok"})

	rec, _ := do(t, h, http.MethodPost, "/setup", `{"name":"Jordan","goals":["build savings"],"tone":["direct"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	_, env := do(t, h, http.MethodGet, "/personality/", "")
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Contains(t, data["profile"], "Jordan")
	assert.Contains(t, data["profile"], "direct")
}

func TestSetup_Validation(t *testing.T) {
	h, _ := newTestRouter(t, &stubProvider{reply: "ok"})

	rec, env := do(t, h, http.MethodPost, "/setup", `{"name":"Jordan"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestPersonalityRebuild_NoHistory(t *testing.T) {
	h, _ := newTestRouter(t, &stubProvider{reply: "ok"})

	_, env := do(t, h, http.MethodPost, "/personality/rebuild", "")
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "No memory found.", data["profile"])
}

func TestExportSession(t *testing.T) {
	h, _ := newTestRouter(t, &stubProvider{reply: "1. Overview"})

	_, env := do(t, h, http.MethodPost, "/sessions/", "")
	var created map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &created))
	name := created["session"]

	rec, env := do(t, h, http.MethodPost, "/sessions/"+name+"/export", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Contains(t, data["result"], "Summary exported to")
	assert.Contains(t, data["result"], name+".html")
}
