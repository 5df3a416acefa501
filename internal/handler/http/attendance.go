package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dev4EM/emp-sub000/internal/domain/attendance"
	"github.com/Dev4EM/emp-sub000/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyPunches(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	DayStatus(w http.ResponseWriter, r *http.Request)
	MyDayStatus(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	MySummary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getStringQueryParam gets an optional string query parameter
func getStringQueryParam(r *http.Request, key string) *string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	return &val
}

func attendanceFilterFromQuery(r *http.Request) attendance.Filter {
	return attendance.Filter{
		EmployeeID: getStringQueryParam(r, "employee_id"),
		StartDate:  getStringQueryParam(r, "start_date"),
		EndDate:    getStringQueryParam(r, "end_date"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest

	// Body is optional; location coordinates may be omitted entirely.
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest

	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyPunches implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyPunches(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetMyPunches(r.Context(), attendanceFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListPunches(r.Context(), attendanceFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DayStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) DayStatus(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	day, err := time.Parse("2006-01-02", r.URL.Query().Get("day"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'day' must be a date (YYYY-MM-DD)", nil)
		return
	}

	result, err := h.attendanceService.ResolveDayStatus(r.Context(), employeeID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyDayStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyDayStatus(w http.ResponseWriter, r *http.Request) {
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("day"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'day' must be a date (YYYY-MM-DD)", nil)
		return
	}

	result, err := h.attendanceService.MyDayStatus(r.Context(), day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	req := attendance.SummaryRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.attendanceService.Summary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) MySummary(w http.ResponseWriter, r *http.Request) {
	req := attendance.SummaryRequest{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	result, err := h.attendanceService.MySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
