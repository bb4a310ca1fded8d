package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/server/middleware"
	"github.com/jonathan/resume-editor/internal/types"
)

// ProfileStore is the storage surface the handlers need. *db.DB
// implements it; tests substitute a fake.
type ProfileStore interface {
	ListProfiles(ctx context.Context, userID uuid.UUID) ([]types.Profile, error)
	GetProfile(ctx context.Context, userID, id uuid.UUID) (*types.Profile, error)
	CreateProfile(ctx context.Context, userID uuid.UUID, name string, resume types.Resume) (*types.Profile, error)
	UpdateProfile(ctx context.Context, userID, id uuid.UUID, changes db.ProfileChanges) (*types.Profile, error)
	DeleteProfile(ctx context.Context, userID, id uuid.UUID) error
}

// CreateProfileRequest is the body for POST /profiles.
type CreateProfileRequest struct {
	Name   string       `json:"name" validate:"required,min=1,max=100"`
	Resume types.Resume `json:"resume"`
}

// UpdateProfileRequest is the body for PUT /profiles/{id}. Nil fields
// are left unchanged.
type UpdateProfileRequest struct {
	Name      *string       `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Resume    *types.Resume `json:"resume,omitempty"`
	IsActive  *bool         `json:"is_active,omitempty"`
	UpdatedAt *int64        `json:"updated_at,omitempty"`
}

// ProfileHandlers serves the profile CRUD endpoints.
type ProfileHandlers struct {
	store    ProfileStore
	validate *validator.Validate
}

// NewProfileHandlers creates the handler set.
func NewProfileHandlers(store ProfileStore) *ProfileHandlers {
	return &ProfileHandlers{
		store:    store,
		validate: validator.New(),
	}
}

// HandleList returns all profiles owned by the authenticated user.
func (h *ProfileHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profiles, err := h.store.ListProfiles(r.Context(), userID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// HandleCreate stores a new profile. The response carries the
// server-assigned identifiers, which may differ from what the client
// sent.
func (h *ProfileHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	profile, err := h.store.CreateProfile(r.Context(), userID, req.Name, req.Resume)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	jsonResponse(w, http.StatusCreated, profile)
}

// HandleUpdate applies a partial update and returns the stored profile.
func (h *ProfileHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	profile, err := h.store.UpdateProfile(r.Context(), userID, id, db.ProfileChanges{
		Name:      req.Name,
		Resume:    req.Resume,
		IsActive:  req.IsActive,
		UpdatedAt: req.UpdatedAt,
	})
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	jsonResponse(w, http.StatusOK, profile)
}

// HandleDelete removes a profile.
func (h *ProfileHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid profile ID format")
		return
	}

	existing, err := h.store.GetProfile(r.Context(), userID, id)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing == nil {
		errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	if err := h.store.DeleteProfile(r.Context(), userID, id); err != nil {
		errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func jsonResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}
