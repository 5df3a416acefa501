package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/employee"
	"github.com/Dev4EM/emp-sub000/internal/handler/http/response"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
	}
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMe implements EmployeeHandler.
func (h *employeeHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.GetMe(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.Filter{
		DepartmentID: getStringQueryParam(r, "department_id"),
		Search:       getStringQueryParam(r, "search"),
		Page:         getIntQueryParam(r, "page", 1),
		Limit:        getIntQueryParam(r, "limit", 20),
	}

	result, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements EmployeeHandler.
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", result)
}

// Delete implements EmployeeHandler.
func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if err := h.employeeService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}
