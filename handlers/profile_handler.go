package handlers

import (
	"net/http"

	"github.com/karimdoss-design/campustad/middleware"
	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Me returns the caller's own profile, resolved from the token.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	profile, err := h.profileService.GetByID(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"profile": profile}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter models.ProfileFilter
	if roleStr := r.URL.Query().Get("role"); roleStr != "" {
		role := models.ProfileRole(roleStr)
		filter.Role = &role
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := models.ProfileStatus(statusStr)
		filter.Status = &status
	}

	profiles, err := h.profileService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"profiles": profiles}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type setProfileStatusInput struct {
	Role   models.ProfileRole   `json:"role"`
	Status models.ProfileStatus `json:"status"`
}

func (h *ProfileHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	profileID, err := getIDFromURL(r, "profileID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input setProfileStatusInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.profileService.SetStatus(r.Context(), profileID, input.Role, input.Status); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ok": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
