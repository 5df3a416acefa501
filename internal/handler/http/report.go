package http

import (
	"fmt"
	"net/http"

	"github.com/Dev4EM/emp-sub000/internal/domain/report"
	"github.com/Dev4EM/emp-sub000/internal/handler/http/response"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func reportRequestFromQuery(r *http.Request) report.MonthlyReportRequest {
	return report.MonthlyReportRequest{
		Year:       getIntQueryParam(r, "year", 0),
		Month:      getIntQueryParam(r, "month", 0),
		EmployeeID: getStringQueryParam(r, "employee_id"),
	}
}

// Monthly implements ReportHandler.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.MonthlyReport(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements ReportHandler.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	format := report.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = report.FormatCSV
	}

	result, err := h.reportService.Export(r.Context(), reportRequestFromQuery(r), format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Content)
}
