package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"clearcomply/internal/engine"
	"clearcomply/internal/model"
	"clearcomply/internal/service"
	"clearcomply/internal/transport/rest/middleware"
)

// AssessmentHandler handles assessment lifecycle endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// Start handles POST /v1/assessments
//
//	@Summary	Start an assessment session
//	@Tags		assessments
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		model.StartAssessmentRequest	true	"Framework and optional business profile"
//	@Success	201		{object}	model.StartAssessmentResponse
//	@Failure	404		{object}	map[string]string
//	@Router		/assessments [post]
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.StartAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.assessmentSvc.Start(r.Context(), hostID, &req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /v1/assessments
//
//	@Summary	List the host's assessments
//	@Tags		assessments
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	map[string]interface{}
//	@Router		/assessments [get]
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	metas, err := h.assessmentSvc.ListByHost(r.Context(), hostID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"assessments": metas})
}

// Get handles GET /v1/assessments/{assessmentId}
//
//	@Summary	Get assessment status
//	@Tags		assessments
//	@Produce	json
//	@Security	BearerAuth
//	@Param		assessmentId	path		string	true	"Assessment ID"
//	@Success	200				{object}	model.AssessmentMeta
//	@Failure	404				{object}	map[string]string
//	@Router		/assessments/{assessmentId} [get]
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	meta, err := h.assessmentSvc.GetMeta(r.Context(), assessmentID)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, meta)
}

// Resume handles POST /v1/assessments/{assessmentId}/resume
//
//	@Summary	Resume a saved assessment session
//	@Tags		assessments
//	@Produce	json
//	@Param		assessmentId	path		string	true	"Assessment ID"
//	@Success	200				{object}	model.StartAssessmentResponse
//	@Failure	404				{object}	map[string]string
//	@Router		/assessments/{assessmentId}/resume [post]
func (h *AssessmentHandler) Resume(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	resp, err := h.assessmentSvc.Resume(r.Context(), assessmentID)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CurrentQuestion handles GET /v1/assessments/{assessmentId}/question/current
//
//	@Summary	Get the question at the current position
//	@Tags		assessment-flow
//	@Produce	json
//	@Security	BearerAuth
//	@Param		assessmentId	path		string	true	"Assessment ID"
//	@Success	200				{object}	model.NextQuestionResponse
//	@Failure	404				{object}	map[string]string
//	@Router		/assessments/{assessmentId}/question/current [get]
func (h *AssessmentHandler) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	assessmentID := middleware.GetAssessmentID(r.Context())

	resp, err := h.assessmentSvc.CurrentQuestion(r.Context(), assessmentID)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SubmitAnswer handles POST /v1/assessments/{assessmentId}/answers
//
//	@Summary	Answer the active question
//	@Tags		assessment-flow
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		assessmentId	path		string						true	"Assessment ID"
//	@Param		request			body		model.SubmitAnswerRequest	true	"Answer value"
//	@Success	200				{object}	model.SubmitAnswerResponse
//	@Failure	400				{object}	map[string]string
//	@Router		/assessments/{assessmentId}/answers [post]
func (h *AssessmentHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	assessmentID := middleware.GetAssessmentID(r.Context())

	var req model.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.assessmentSvc.SubmitAnswer(r.Context(), assessmentID, &req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// NextQuestion handles POST /v1/assessments/{assessmentId}/next
//
//	@Summary	Advance to the next question
//	@Description	May enter AI mode when the recorded answer triggers follow-up generation.
//	@Tags			assessment-flow
//	@Produce		json
//	@Security		BearerAuth
//	@Param			assessmentId	path		string	true	"Assessment ID"
//	@Success		200				{object}	model.NextQuestionResponse
//	@Failure		404				{object}	map[string]string
//	@Router			/assessments/{assessmentId}/next [post]
func (h *AssessmentHandler) NextQuestion(w http.ResponseWriter, r *http.Request) {
	assessmentID := middleware.GetAssessmentID(r.Context())

	resp, err := h.assessmentSvc.NextQuestion(r.Context(), assessmentID)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Progress handles GET /v1/assessments/{assessmentId}/progress
//
//	@Summary	Get assessment progress
//	@Tags		assessment-flow
//	@Produce	json
//	@Security	BearerAuth
//	@Param		assessmentId	path		string	true	"Assessment ID"
//	@Success	200				{object}	model.Progress
//	@Router		/assessments/{assessmentId}/progress [get]
func (h *AssessmentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	assessmentID := middleware.GetAssessmentID(r.Context())

	progress, err := h.assessmentSvc.Progress(r.Context(), assessmentID)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// Save handles POST /v1/assessments/{assessmentId}/save
//
//	@Summary	Snapshot the session for later resumption
//	@Tags		assessment-flow
//	@Produce	json
//	@Security	BearerAuth
//	@Param		assessmentId	path		string	true	"Assessment ID"
//	@Success	200				{object}	map[string]string
//	@Router		/assessments/{assessmentId}/save [post]
func (h *AssessmentHandler) Save(w http.ResponseWriter, r *http.Request) {
	assessmentID := middleware.GetAssessmentID(r.Context())

	if err := h.assessmentSvc.Save(r.Context(), assessmentID); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// Results handles GET /v1/assessments/{assessmentId}/results
//
//	@Summary	Get the compiled compliance report
//	@Tags		assessments
//	@Produce	json
//	@Security	BearerAuth
//	@Param		assessmentId	path		string	true	"Assessment ID"
//	@Success	200				{object}	model.Result
//	@Failure	409				{object}	map[string]string
//	@Router		/assessments/{assessmentId}/results [get]
func (h *AssessmentHandler) Results(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	result, err := h.assessmentSvc.Results(r.Context(), assessmentID)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ResultsByFramework handles GET /v1/frameworks/{frameworkId}/results
//
//	@Summary	List stored reports for a framework
//	@Tags		frameworks
//	@Produce	json
//	@Security	BearerAuth
//	@Param		frameworkId	path		string	true	"Framework ID"
//	@Success	200			{object}	map[string]interface{}
//	@Router		/frameworks/{frameworkId}/results [get]
func (h *AssessmentHandler) ResultsByFramework(w http.ResponseWriter, r *http.Request) {
	frameworkID := mux.Vars(r)["frameworkId"]

	results, err := h.assessmentSvc.ResultsByFramework(r.Context(), frameworkID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// Destroy handles DELETE /v1/assessments/{assessmentId}
//
//	@Summary	End an assessment session
//	@Description	Takes a final snapshot and releases the live session. The snapshot remains resumable until it expires.
//	@Tags			assessments
//	@Produce		json
//	@Security		BearerAuth
//	@Param			assessmentId	path		string	true	"Assessment ID"
//	@Success		200				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/assessments/{assessmentId} [delete]
func (h *AssessmentHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	assessmentID := mux.Vars(r)["assessmentId"]

	if err := h.assessmentSvc.Destroy(r.Context(), assessmentID); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

// statusFor maps the service error taxonomy to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrAssessmentNotFound),
		errors.Is(err, service.ErrFrameworkNotFound),
		errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrAssessmentIncomplete),
		errors.Is(err, engine.ErrEngineDestroyed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
