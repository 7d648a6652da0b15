package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/threecat/bonus-service/internal/dtos"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/services"
	"github.com/threecat/bonus-service/internal/utils"
)

var bonusValidate = validator.New()

type BonusController struct {
	pipeline *services.PipelineService
	bonus    *services.BonusService
}

func NewBonusController(pipeline *services.PipelineService, bonus *services.BonusService) *BonusController {
	return &BonusController{pipeline: pipeline, bonus: bonus}
}

// POST /api/v1/bonuses/calculate
func (c *BonusController) CalculateHandler(w http.ResponseWriter, r *http.Request) {
	allocations := c.pipeline.Recalculate(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, dtos.BonusListResponse{
		Allocations: allocations,
		Count:       len(allocations),
		TotalPaid:   totalPaid(allocations),
	})
}

// GET /api/v1/bonuses?date=YYYY-MM-DD
func (c *BonusController) ListHandler(w http.ResponseWriter, r *http.Request) {
	allocations := c.bonus.Allocations(r.URL.Query().Get("date"))
	utils.RespondWithJSON(w, http.StatusOK, dtos.BonusListResponse{
		Allocations: allocations,
		Count:       len(allocations),
		TotalPaid:   totalPaid(allocations),
	})
}

// GET /api/v1/bonuses/summary
func (c *BonusController) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	shiftSummaries := c.bonus.ShiftSummaries()
	employeeSummaries := c.bonus.EmployeeSummaries()

	shifts := make([]dtos.ShiftSummaryDTO, 0, len(shiftSummaries))
	var total float64
	var count int
	for _, s := range shiftSummaries {
		shifts = append(shifts, dtos.ShiftSummaryDTO{
			Date:          s.Date,
			Shift:         string(s.Shift),
			DrinkCount:    s.DrinkCount,
			BonusPool:     s.BonusPool,
			TotalHours:    s.TotalHours,
			EmployeeCount: s.EmployeeCount,
			TotalPaid:     s.TotalPaid,
		})
		total += s.TotalPaid
		count += s.EmployeeCount
	}

	employees := make([]dtos.EmployeeSummaryDTO, 0, len(employeeSummaries))
	for _, e := range employeeSummaries {
		employees = append(employees, dtos.EmployeeSummaryDTO{
			EmployeeID:   e.EmployeeID,
			EmployeeName: e.EmployeeName,
			ShiftCount:   e.ShiftCount,
			TotalHours:   e.TotalHours,
			TotalBonus:   e.TotalBonus,
			BonusPerHour: e.BonusPerHour,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.BonusSummaryResponse{
		Shifts:     shifts,
		Employees:  employees,
		TotalPaid:  total,
		TotalCount: count,
	})
}

// GET /api/v1/bonuses/day-filters
func (c *BonusController) ListDayFiltersHandler(w http.ResponseWriter, r *http.Request) {
	filters := c.bonus.DayFilters()
	utils.RespondWithJSON(w, http.StatusOK, dtos.DayFilterListResponse{Filters: filters, Count: len(filters)})
}

// POST /api/v1/bonuses/day-filters
func (c *BonusController) SetDayFilterHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.DayFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := bonusValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid day filter request", nil, err)
		return
	}

	c.pipeline.SetDayFilter(r.Context(), req.Date, *req.Enabled, req.Reason)
	filters := c.bonus.DayFilters()
	utils.RespondWithJSON(w, http.StatusOK, dtos.DayFilterListResponse{Filters: filters, Count: len(filters)})
}

func totalPaid(allocations []models.BonusAllocation) float64 {
	var total float64
	for _, a := range allocations {
		total += a.BonusAmount
	}
	return total
}
