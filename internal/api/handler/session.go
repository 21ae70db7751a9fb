package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mverhey/confidant/internal/api/response"
	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/service"
)

var validate = validator.New()

// SessionHandler exposes session lifecycle and turn handling to the
// front-end
type SessionHandler struct {
	store   domain.SessionStore
	manager *service.Manager
}

// NewSessionHandler creates a session handler
func NewSessionHandler(store domain.SessionStore, manager *service.Manager) *SessionHandler {
	return &SessionHandler{store: store, manager: manager}
}

// List returns all sessions, newest first
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.store.List())
}

// Create opens a fresh provisional session and returns its name
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	engine := h.manager.Open("")
	response.Created(w, map[string]string{"session": engine.SessionName()})
}

// GetTurns returns a session's persisted conversational turns
func (h *SessionHandler) GetTurns(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		response.BadRequest(w, "Missing session name")
		return
	}
	response.OK(w, h.store.Load(name))
}

// Delete removes a session. Deleting an unknown name succeeds silently.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		response.BadRequest(w, "Missing session name")
		return
	}

	if err := h.store.Delete(name); err != nil {
		response.InternalError(w, "Failed to delete session")
		return
	}
	h.manager.Drop(name)

	response.OK(w, map[string]string{"message": "Session deleted"})
}

type sendRequest struct {
	Input string `json:"input" validate:"required"`
}

// Send routes one user input to the named session's engine. The active
// session name is echoed back since auto-titling may rename the session.
func (h *SessionHandler) Send(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		response.BadRequest(w, "Missing session name")
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "Input is required")
		return
	}

	turnID := uuid.NewString()
	log.Debug().Str("turn_id", turnID).Str("session", name).Msg("turn received")

	reply, active := h.manager.Send(r.Context(), name, req.Input)

	log.Debug().Str("turn_id", turnID).Str("session", active).Msg("turn handled")

	response.OK(w, map[string]string{
		"reply":   reply,
		"session": active,
	})
}

// Export generates the session's full summary and hands it to the export
// collaborator
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		response.BadRequest(w, "Missing session name")
		return
	}

	response.OK(w, map[string]string{
		"result": h.manager.Export(r.Context(), name),
	})
}
