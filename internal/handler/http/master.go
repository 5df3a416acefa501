package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/master/batch"
	"github.com/Dev4EM/emp-sub000/internal/domain/master/program"
	"github.com/Dev4EM/emp-sub000/internal/domain/master/session"
	"github.com/Dev4EM/emp-sub000/internal/handler/http/response"
	"github.com/Dev4EM/emp-sub000/internal/service/master"
)

type MasterHandler interface {
	CreateProgram(w http.ResponseWriter, r *http.Request)
	GetProgram(w http.ResponseWriter, r *http.Request)
	ListPrograms(w http.ResponseWriter, r *http.Request)
	UpdateProgram(w http.ResponseWriter, r *http.Request)
	DeleteProgram(w http.ResponseWriter, r *http.Request)

	CreateBatch(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	ListBatches(w http.ResponseWriter, r *http.Request)
	UpdateBatch(w http.ResponseWriter, r *http.Request)
	DeleteBatch(w http.ResponseWriter, r *http.Request)

	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	ListSessions(w http.ResponseWriter, r *http.Request)
	UpdateSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== PROGRAM HANDLERS ====================

// CreateProgram implements MasterHandler.
func (h *masterHandlerImpl) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req program.CreateProgramRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.masterService.CreateProgram(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Program created", result)
}

// GetProgram implements MasterHandler.
func (h *masterHandlerImpl) GetProgram(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetProgram(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPrograms implements MasterHandler.
func (h *masterHandlerImpl) ListPrograms(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListPrograms(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateProgram implements MasterHandler.
func (h *masterHandlerImpl) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	var req program.UpdateProgramRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.masterService.UpdateProgram(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Program updated", nil)
}

// DeleteProgram implements MasterHandler.
func (h *masterHandlerImpl) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteProgram(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Program deleted", nil)
}

// ==================== BATCH HANDLERS ====================

// CreateBatch implements MasterHandler.
func (h *masterHandlerImpl) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req batch.CreateBatchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.masterService.CreateBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Batch created", result)
}

// GetBatch implements MasterHandler.
func (h *masterHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListBatches implements MasterHandler.
func (h *masterHandlerImpl) ListBatches(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListBatches(r.Context(), getStringQueryParam(r, "program_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateBatch implements MasterHandler.
func (h *masterHandlerImpl) UpdateBatch(w http.ResponseWriter, r *http.Request) {
	var req batch.UpdateBatchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.masterService.UpdateBatch(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch updated", nil)
}

// DeleteBatch implements MasterHandler.
func (h *masterHandlerImpl) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteBatch(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch deleted", nil)
}

// ==================== SESSION HANDLERS ====================

// CreateSession implements MasterHandler.
func (h *masterHandlerImpl) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req session.CreateSessionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.masterService.CreateSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Session created", result)
}

// GetSession implements MasterHandler.
func (h *masterHandlerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListSessions implements MasterHandler.
func (h *masterHandlerImpl) ListSessions(w http.ResponseWriter, r *http.Request) {
	batchID := r.URL.Query().Get("batch_id")
	if batchID == "" {
		response.BadRequest(w, "Query parameter 'batch_id' is required", nil)
		return
	}

	result, err := h.masterService.ListSessions(r.Context(), batchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSession implements MasterHandler.
func (h *masterHandlerImpl) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var req session.UpdateSessionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.masterService.UpdateSession(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session updated", nil)
}

// DeleteSession implements MasterHandler.
func (h *masterHandlerImpl) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Session deleted", nil)
}
