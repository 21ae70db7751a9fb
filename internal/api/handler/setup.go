package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mverhey/confidant/internal/api/response"
	"github.com/mverhey/confidant/internal/domain"
	"github.com/mverhey/confidant/internal/service"
)

// SetupHandler persists the first-run user profile and synthesizes the
// initial personality. The setup wizard UI itself lives in the front-end;
// this is the surface it submits to.
type SetupHandler struct {
	profiles domain.ProfileStore
}

// NewSetupHandler creates a setup handler
func NewSetupHandler(profiles domain.ProfileStore) *SetupHandler {
	return &SetupHandler{profiles: profiles}
}

type setupRequest struct {
	Name  string   `json:"name" validate:"required"`
	Age   string   `json:"age"`
	Goals []string `json:"goals" validate:"required,min=1"`
	Tone  []string `json:"tone" validate:"required,min=1"`
}

// Create writes the user profile and the initial personality profile
func (h *SetupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "Name, goals, and tone are required")
		return
	}

	profile := domain.UserProfile{
		Name:  req.Name,
		Age:   req.Age,
		Goals: req.Goals,
		Tone:  req.Tone,
	}

	if err := h.profiles.SaveUserProfile(profile); err != nil {
		response.InternalError(w, "Failed to save user profile")
		return
	}
	if err := h.profiles.SavePersonality(service.InitialPersonality(profile)); err != nil {
		response.InternalError(w, "Failed to save personality")
		return
	}

	response.Created(w, map[string]string{"message": "Setup complete"})
}
