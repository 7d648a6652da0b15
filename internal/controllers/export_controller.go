package controllers

import (
	"net/http"

	"github.com/threecat/bonus-service/internal/services"
	"github.com/threecat/bonus-service/internal/utils"
)

type ExportController struct {
	pipeline   *services.PipelineService
	bonus      *services.BonusService
	exporter   *services.ExportService
	locationID string
}

func NewExportController(pipeline *services.PipelineService, bonus *services.BonusService, exporter *services.ExportService, locationID string) *ExportController {
	return &ExportController{pipeline: pipeline, bonus: bonus, exporter: exporter, locationID: locationID}
}

// GET /api/v1/export/allocations
func (c *ExportController) ExportAllocationsHandler(w http.ResponseWriter, r *http.Request) {
	allocations := c.bonus.Allocations("")
	if len(allocations) == 0 {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNoData, "No bonus data available to export", nil)
		return
	}
	start, end, _ := c.pipeline.Window()
	utils.RespondWithCSV(w, c.exporter.DetailedFilename(c.locationID, start, end), c.exporter.DetailedCSV(allocations))
}

// GET /api/v1/export/summary
func (c *ExportController) ExportSummaryHandler(w http.ResponseWriter, r *http.Request) {
	allocations := c.bonus.Allocations("")
	if len(allocations) == 0 {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNoData, "No bonus data available to export", nil)
		return
	}
	start, end, _ := c.pipeline.Window()
	csv := c.exporter.SummaryCSV(c.bonus.ShiftSummaries(), c.bonus.EmployeeSummaries())
	utils.RespondWithCSV(w, c.exporter.SummaryFilename(c.locationID, start, end), csv)
}

// GET /api/v1/export/payroll
func (c *ExportController) ExportPayrollHandler(w http.ResponseWriter, r *http.Request) {
	allocations := c.bonus.Allocations("")
	if len(allocations) == 0 {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNoData, "No bonus data available to export", nil)
		return
	}
	start, end, _ := c.pipeline.Window()
	utils.RespondWithCSV(w, c.exporter.PayrollFilename(c.locationID, start, end), c.exporter.PayrollCSV(allocations))
}
