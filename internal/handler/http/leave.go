package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/leave"
	"github.com/Dev4EM/emp-sub000/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	GetMyLeaves(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

func leaveFilterFromQuery(r *http.Request) leave.Filter {
	return leave.Filter{
		EmployeeID: getStringQueryParam(r, "employee_id"),
		Status:     getStringQueryParam(r, "status"),
		StartDate:  getStringQueryParam(r, "start_date"),
		EndDate:    getStringQueryParam(r, "end_date"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}
}

// Apply implements LeaveHandler.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave ID is required", nil)
		return
	}

	if err := h.leaveService.Cancel(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

// GetMyLeaves implements LeaveHandler.
func (h *leaveHandlerImpl) GetMyLeaves(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.GetMyLeaves(r.Context(), leaveFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ListLeaves(r.Context(), leaveFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave ID is required", nil)
		return
	}

	result, err := h.leaveService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", result)
}
