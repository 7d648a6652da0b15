package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/threecat/bonus-service/internal/dtos"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/services"
	"github.com/threecat/bonus-service/internal/utils"
)

var settingsValidate = validator.New()

type SettingsController struct {
	pipeline *services.PipelineService
}

func NewSettingsController(pipeline *services.PipelineService) *SettingsController {
	return &SettingsController{pipeline: pipeline}
}

// GET /api/v1/settings
func (c *SettingsController) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, settingsToDTO(c.pipeline.Settings()))
}

// PUT /api/v1/settings
//
// Replacing the split policy re-derives everything downstream of it:
// segments, buckets, eligibility and allocations.
func (c *SettingsController) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := settingsValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid settings payload", nil, err)
		return
	}

	settings, err := settingsFromDTO(req)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil)
		return
	}

	c.pipeline.UpdateSettings(r.Context(), settings)
	utils.RespondWithJSON(w, http.StatusOK, settingsToDTO(c.pipeline.Settings()))
}

func settingsFromDTO(req dtos.UpdateSettingsRequest) (services.PipelineSettings, error) {
	morningStart, morningEnd, err := parseClockRange(req.Split.MorningHours)
	if err != nil {
		return services.PipelineSettings{}, fmt.Errorf("morning_hours: %w", err)
	}
	nightStart, nightEnd, err := parseClockRange(req.Split.NightHours)
	if err != nil {
		return services.PipelineSettings{}, fmt.Errorf("night_hours: %w", err)
	}
	customCutoff, err := utils.ParseClockTime(req.Split.CustomSplitTime)
	if err != nil {
		return services.PipelineSettings{}, fmt.Errorf("custom_split_time: %w", err)
	}
	if morningEnd <= morningStart {
		return services.PipelineSettings{}, fmt.Errorf("morning_hours: range end must follow start")
	}

	return services.PipelineSettings{
		Split: models.SplitSettings{
			Method:       models.SplitMethod(req.Split.SplitMethod),
			MorningStart: morningStart,
			MorningEnd:   morningEnd,
			NightStart:   nightStart,
			NightEnd:     nightEnd,
			CustomCutoff: customCutoff,
		},
		RatePerDrink: req.RatePerDrink,
	}, nil
}

func settingsToDTO(settings services.PipelineSettings) dtos.SettingsResponse {
	return dtos.SettingsResponse{
		Split: dtos.SplitSettingsDTO{
			SplitMethod:     string(settings.Split.Method),
			MorningHours:    utils.MinutesToClock(settings.Split.MorningStart) + "-" + utils.MinutesToClock(settings.Split.MorningEnd),
			NightHours:      utils.MinutesToClock(settings.Split.NightStart) + "-" + utils.MinutesToClock(settings.Split.NightEnd),
			CustomSplitTime: utils.MinutesToClock(settings.Split.CustomCutoff),
		},
		RatePerDrink: settings.RatePerDrink,
	}
}

func parseClockRange(s string) (start, end int, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM-HH:MM, got %q", s)
	}
	start, err = utils.ParseClockTime(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}
	end, err = utils.ParseClockTime(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}
