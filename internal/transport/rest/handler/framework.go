package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"clearcomply/internal/model"
	"clearcomply/internal/service"
)

// FrameworkHandler handles compliance framework endpoints
type FrameworkHandler struct {
	frameworkSvc *service.FrameworkService
}

// NewFrameworkHandler creates a new framework handler
func NewFrameworkHandler(frameworkSvc *service.FrameworkService) *FrameworkHandler {
	return &FrameworkHandler{frameworkSvc: frameworkSvc}
}

// Create handles POST /v1/frameworks
//
//	@Summary	Create a compliance framework
//	@Tags		frameworks
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		model.Framework	true	"Framework definition"
//	@Success	201		{object}	model.Framework
//	@Failure	400		{object}	map[string]string
//	@Router		/frameworks [post]
func (h *FrameworkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var framework model.Framework
	if err := json.NewDecoder(r.Body).Decode(&framework); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.frameworkSvc.Create(r.Context(), &framework)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /v1/frameworks
//
//	@Summary	List compliance frameworks
//	@Tags		frameworks
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]interface{}
//	@Router		/frameworks [get]
func (h *FrameworkHandler) List(w http.ResponseWriter, r *http.Request) {
	frameworks, err := h.frameworkSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"frameworks": frameworks})
}

// Get handles GET /v1/frameworks/{frameworkId}
//
//	@Summary	Get a compliance framework
//	@Tags		frameworks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		frameworkId	path		string	true	"Framework ID"
//	@Success	200			{object}	model.Framework
//	@Failure	404			{object}	map[string]string
//	@Router		/frameworks/{frameworkId} [get]
func (h *FrameworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	frameworkID := mux.Vars(r)["frameworkId"]

	framework, err := h.frameworkSvc.Get(r.Context(), frameworkID)
	if err != nil {
		if errors.Is(err, service.ErrFrameworkNotFound) {
			writeError(w, http.StatusNotFound, "framework not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, framework)
}

// Delete handles DELETE /v1/frameworks/{frameworkId}
//
//	@Summary	Delete a compliance framework
//	@Tags		frameworks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		frameworkId	path		string	true	"Framework ID"
//	@Success	200			{object}	map[string]string
//	@Failure	404			{object}	map[string]string
//	@Router		/frameworks/{frameworkId} [delete]
func (h *FrameworkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	frameworkID := mux.Vars(r)["frameworkId"]

	if err := h.frameworkSvc.Delete(r.Context(), frameworkID); err != nil {
		if errors.Is(err, service.ErrFrameworkNotFound) {
			writeError(w, http.StatusNotFound, "framework not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
