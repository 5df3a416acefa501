package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/schedule"
	"github.com/Dev4EM/emp-sub000/internal/handler/http/response"
)

type ScheduleHandler interface {
	CreateShift(w http.ResponseWriter, r *http.Request)
	GetShift(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)
	UpdateShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)

	CreateOverride(w http.ResponseWriter, r *http.Request)
	DeleteOverride(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// CreateShift implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", result)
}

// GetShift implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetShift(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetShift(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListShifts implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateShift implements ScheduleHandler.
func (h *scheduleHandlerImpl) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpdateShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.scheduleService.UpdateShift(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated", nil)
}

// DeleteShift implements ScheduleHandler.
func (h *scheduleHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.DeleteShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// CreateOverride implements ScheduleHandler.
func (h *scheduleHandlerImpl) CreateOverride(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateOverrideRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.CreateOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Week-off override created", result)
}

// DeleteOverride implements ScheduleHandler.
func (h *scheduleHandlerImpl) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduleService.DeleteOverride(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week-off override deleted", nil)
}
