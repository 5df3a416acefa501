package report

import (
	"context"
)

type ReportService interface {
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)
	Export(ctx context.Context, req MonthlyReportRequest, format ExportFormat) (ExportResult, error)
}
