package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/gameday/internal/config"
	"github.com/jakechorley/gameday/pkg/core/model"
)

// ReportWriter appends rows to a spreadsheet tab
type ReportWriter interface {
	AppendRows(spreadsheetID, sheetRange string, values [][]interface{}) error
}

var reportHeader = []interface{}{
	"Volunteer", "Department", "Scheduled", "Present", "Absent", "Total", "Attendance rate",
}

// BuildReportRows renders per-volunteer summaries as spreadsheet rows.
// The attendance rate is formatted to one decimal here, at the
// presentation boundary; the model keeps it unrounded.
func BuildReportRows(views []*model.VolunteerView) [][]interface{} {
	rows := make([][]interface{}, 0, len(views)+1)
	rows = append(rows, reportHeader)

	for _, view := range views {
		department := view.Volunteer.Department
		if department == "" {
			department = model.DepartmentUnassigned
		}
		rows = append(rows, []interface{}{
			view.Volunteer.FullName(),
			department,
			view.Summary.Scheduled,
			view.Summary.Present,
			view.Summary.Absent,
			view.Summary.Total,
			fmt.Sprintf("%.1f%%", view.Summary.AttendanceRate()),
		})
	}

	return rows
}

// ExportSeasonReport loads the attendance matrix and appends one summary
// row per volunteer to the configured report sheet
func ExportSeasonReport(ctx context.Context, database MatrixStore, writer ReportWriter, cfg *config.Config, logger *zap.Logger) (int, error) {
	if cfg.ReportSheetID == "" || cfg.ReportTab == "" {
		return 0, fmt.Errorf("reportSheetID and reportTab must be configured")
	}

	matrix, err := LoadMatrix(ctx, database, logger)
	if err != nil {
		return 0, fmt.Errorf("failed to load matrix: %w", err)
	}

	rows := BuildReportRows(matrix.Views())

	logger.Info("Exporting season report",
		zap.String("sheet_id", cfg.ReportSheetID),
		zap.String("tab", cfg.ReportTab),
		zap.Int("volunteers", len(rows)-1))

	if err := writer.AppendRows(cfg.ReportSheetID, cfg.ReportTab, rows); err != nil {
		return 0, fmt.Errorf("failed to append report rows: %w", err)
	}

	return len(rows) - 1, nil
}
