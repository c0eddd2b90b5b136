package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"clearcomply/internal/model"
	"clearcomply/internal/service"
)

// ProfileHandler handles business profile endpoints
type ProfileHandler struct {
	profileSvc *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileSvc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// Create handles POST /v1/profiles
//
//	@Summary	Create a business profile
//	@Tags		profiles
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		model.BusinessProfile	true	"Business profile"
//	@Success	201		{object}	model.BusinessProfile
//	@Failure	400		{object}	map[string]string
//	@Router		/profiles [post]
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var profile model.BusinessProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.profileSvc.Create(r.Context(), &profile)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /v1/profiles
//
//	@Summary	List business profiles
//	@Tags		profiles
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]interface{}
//	@Router		/profiles [get]
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"profiles": profiles})
}

// Get handles GET /v1/profiles/{profileId}
//
//	@Summary	Get a business profile
//	@Tags		profiles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		profileId	path		string	true	"Profile ID"
//	@Success	200			{object}	model.BusinessProfile
//	@Failure	404			{object}	map[string]string
//	@Router		/profiles/{profileId} [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["profileId"]

	profile, err := h.profileSvc.Get(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Update handles PUT /v1/profiles/{profileId}
//
//	@Summary	Update a business profile
//	@Tags		profiles
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		profileId	path		string					true	"Profile ID"
//	@Param		request		body		model.BusinessProfile	true	"Business profile"
//	@Success	200			{object}	model.BusinessProfile
//	@Failure	404			{object}	map[string]string
//	@Router		/profiles/{profileId} [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["profileId"]

	var profile model.BusinessProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	profile.ID = profileID

	updated, err := h.profileSvc.Update(r.Context(), &profile)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /v1/profiles/{profileId}
//
//	@Summary	Delete a business profile
//	@Tags		profiles
//	@Produce	json
//	@Security	BearerAuth
//	@Param		profileId	path		string	true	"Profile ID"
//	@Success	200			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Router		/profiles/{profileId} [delete]
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profileID := mux.Vars(r)["profileId"]

	if err := h.profileSvc.Delete(r.Context(), profileID); err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
