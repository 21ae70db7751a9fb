package handler

import (
	"net/http"

	"github.com/mverhey/confidant/internal/api/response"
	"github.com/mverhey/confidant/internal/service"
)

// PersonalityHandler exposes the shared personality profile
type PersonalityHandler struct {
	personality *service.PersonalityManager
}

// NewPersonalityHandler creates a personality handler
func NewPersonalityHandler(personality *service.PersonalityManager) *PersonalityHandler {
	return &PersonalityHandler{personality: personality}
}

// Get returns the active profile text
func (h *PersonalityHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"profile": h.personality.Load()})
}

// Rebuild resynthesizes the profile from accumulated cross-session history
func (h *PersonalityHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"profile": h.personality.Rebuild(r.Context())})
}
