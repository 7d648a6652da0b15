package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/threecat/bonus-service/internal/constants"
	"github.com/threecat/bonus-service/internal/dtos"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/services"
	"github.com/threecat/bonus-service/internal/utils"
)

var eligibilityValidate = validator.New()

type EligibilityController struct {
	pipeline *services.PipelineService
	elig     *services.EligibilityService
}

func NewEligibilityController(pipeline *services.PipelineService, elig *services.EligibilityService) *EligibilityController {
	return &EligibilityController{pipeline: pipeline, elig: elig}
}

// GET /api/v1/eligibility/shifts
func (c *EligibilityController) ListShiftsHandler(w http.ResponseWriter, r *http.Request) {
	shifts := c.elig.ShiftRecords()
	utils.RespondWithJSON(w, http.StatusOK, dtos.ShiftEligibilityListResponse{Shifts: shifts, Count: len(shifts)})
}

// GET /api/v1/eligibility/employees
func (c *EligibilityController) ListEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	employees := c.elig.EmployeeRecords()
	utils.RespondWithJSON(w, http.StatusOK, dtos.EmployeeEligibilityListResponse{Employees: employees, Count: len(employees)})
}

// POST /api/v1/eligibility/shifts/toggle
func (c *EligibilityController) ToggleShiftHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ToggleShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := eligibilityValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid shift toggle request", nil, err)
		return
	}

	key := models.ShiftKey{Date: req.Date, Shift: models.ShiftType(req.Shift)}
	if err := c.elig.ToggleShift(key, *req.IsEligible, constants.UpdatedByManager); err != nil {
		if errors.Is(err, utils.ErrShiftKeyNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "No such shift in the current timesheet", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to toggle shift eligibility", nil, err)
		return
	}

	c.pipeline.Recalculate(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, dtos.ShiftEligibilityListResponse{Shifts: c.elig.ShiftRecords(), Count: 1})
}

// POST /api/v1/eligibility/employees/toggle
func (c *EligibilityController) ToggleEmployeeHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ToggleEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := eligibilityValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid employee toggle request", nil, err)
		return
	}

	key := models.EmployeeShiftKey{EmployeeID: req.EmployeeID, Date: req.Date, Shift: models.ShiftType(req.Shift)}
	if err := c.elig.ToggleEmployee(key, *req.IsEligible, constants.UpdatedByManager); err != nil {
		if errors.Is(err, utils.ErrShiftKeyNotFound) {
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Employee did not work that shift", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to toggle employee eligibility", nil, err)
		return
	}

	c.pipeline.Recalculate(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, dtos.EmployeeEligibilityListResponse{Employees: c.elig.EmployeeRecords(), Count: 1})
}

// POST /api/v1/eligibility/shifts/bulk
func (c *EligibilityController) BulkShiftsHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.BulkShiftUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := eligibilityValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid bulk shift update request", nil, err)
		return
	}

	keys := make([]models.ShiftKey, 0, len(req.Keys))
	for _, k := range req.Keys {
		keys = append(keys, models.ShiftKey{Date: k.Date, Shift: models.ShiftType(k.Shift)})
	}
	updated := c.elig.BulkUpdateShifts(keys, *req.IsEligible, constants.UpdatedByManager)
	c.pipeline.Recalculate(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, dtos.BulkUpdateResponse{Updated: updated})
}

// POST /api/v1/eligibility/employees/bulk
func (c *EligibilityController) BulkEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.BulkEmployeeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := eligibilityValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid bulk employee update request", nil, err)
		return
	}

	keys := make([]models.EmployeeShiftKey, 0, len(req.Keys))
	for _, k := range req.Keys {
		keys = append(keys, models.EmployeeShiftKey{EmployeeID: k.EmployeeID, Date: k.Date, Shift: models.ShiftType(k.Shift)})
	}
	updated := c.elig.BulkUpdateEmployees(keys, *req.IsEligible, constants.UpdatedByManager)
	c.pipeline.Recalculate(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, dtos.BulkUpdateResponse{Updated: updated})
}

// POST /api/v1/eligibility/criteria-filter
func (c *EligibilityController) CriteriaFilterHandler(w http.ResponseWriter, r *http.Request) {
	req := dtos.CriteriaFilterRequest{
		MinDrinksPerShift:    constants.DefaultMinDrinksPerShift,
		MinEmployeesPerShift: constants.DefaultMinEmployeesPerShift,
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
			return
		}
		if err := eligibilityValidate.Struct(req); err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid criteria filter request", nil, err)
			return
		}
	}

	disabled := c.pipeline.ApplyCriteriaFilter(r.Context(), services.EligibilityCriteria{
		MinDrinksPerShift:    req.MinDrinksPerShift,
		MinEmployeesPerShift: req.MinEmployeesPerShift,
		ExcludeWeekends:      req.ExcludeWeekends,
		ExcludeHolidays:      req.ExcludeHolidays,
	})
	utils.RespondWithJSON(w, http.StatusOK, dtos.CriteriaFilterResponse{Disabled: disabled})
}
