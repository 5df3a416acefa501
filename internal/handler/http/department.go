package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/department"
	"github.com/Dev4EM/emp-sub000/internal/handler/http/response"
)

type DepartmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type departmentHandlerImpl struct {
	departmentService department.DepartmentService
}

func NewDepartmentHandler(departmentService department.DepartmentService) DepartmentHandler {
	return &departmentHandlerImpl{
		departmentService: departmentService,
	}
}

// Create implements DepartmentHandler.
func (h *departmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.departmentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created", result)
}

// Get implements DepartmentHandler.
func (h *departmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Department ID is required", nil)
		return
	}

	result, err := h.departmentService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements DepartmentHandler.
func (h *departmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.departmentService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements DepartmentHandler.
func (h *departmentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req department.UpdateDepartmentRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.departmentService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated", result)
}

// Delete implements DepartmentHandler.
func (h *departmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Department ID is required", nil)
		return
	}

	if err := h.departmentService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted", nil)
}
