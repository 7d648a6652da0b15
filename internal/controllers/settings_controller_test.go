package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/threecat/bonus-service/internal/constants"
	"github.com/threecat/bonus-service/internal/dtos"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/repositories"
	"github.com/threecat/bonus-service/internal/services"
	"github.com/threecat/bonus-service/internal/timeclock"
)

type noopFetcher struct{}

func (noopFetcher) FetchShiftRange(context.Context, string, string) ([]timeclock.ShiftDisplay, error) {
	return nil, nil
}

func testPipeline() (*services.PipelineService, *services.EligibilityService, *services.BonusService) {
	elig := services.NewEligibilityService()
	bonus := services.NewBonusService()
	pipeline := services.NewPipelineService(noopFetcher{}, services.NewOrderService(), elig, bonus, repositories.NewMemoryStateStore(), services.PipelineSettings{
		Split: models.SplitSettings{
			Method:       models.SplitTimeBased,
			MorningStart: 6 * 60,
			MorningEnd:   14 * 60,
			NightStart:   14 * 60,
			NightEnd:     23 * 60,
			CustomCutoff: 14 * 60,
		},
		RatePerDrink: constants.DefaultBonusRatePerDrink,
	})
	return pipeline, elig, bonus
}

func TestGetSettingsRendersClockRanges(t *testing.T) {
	pipeline, _, _ := testPipeline()
	controller := NewSettingsController(pipeline)

	rec := httptest.NewRecorder()
	controller.GetSettingsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dtos.SettingsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "time-based", resp.Split.SplitMethod)
	require.Equal(t, "06:00-14:00", resp.Split.MorningHours)
	require.Equal(t, "14:00-23:00", resp.Split.NightHours)
	require.Equal(t, "14:00", resp.Split.CustomSplitTime)
	require.Equal(t, constants.DefaultBonusRatePerDrink, resp.RatePerDrink)
}

func TestUpdateSettingsParsesAndApplies(t *testing.T) {
	pipeline, _, _ := testPipeline()
	controller := NewSettingsController(pipeline)

	body := `{"split":{"split_method":"custom","morning_hours":"05:00-13:00","night_hours":"13:00-22:00","custom_split_time":"15:30"},"rate_per_drink":0.15}`
	rec := httptest.NewRecorder()
	controller.UpdateSettingsHandler(rec, httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	settings := pipeline.Settings()
	require.Equal(t, models.SplitCustom, settings.Split.Method)
	require.Equal(t, 15*60+30, settings.Split.CustomCutoff)
	require.Equal(t, 5*60, settings.Split.MorningStart)
	require.Equal(t, 0.15, settings.RatePerDrink)
}

func TestUpdateSettingsRejectsBadRange(t *testing.T) {
	pipeline, _, _ := testPipeline()
	controller := NewSettingsController(pipeline)

	body := `{"split":{"split_method":"custom","morning_hours":"five to one","night_hours":"13:00-22:00","custom_split_time":"15:30"},"rate_per_drink":0.15}`
	rec := httptest.NewRecorder()
	controller.UpdateSettingsHandler(rec, httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSettingsRejectsUnknownMethod(t *testing.T) {
	pipeline, _, _ := testPipeline()
	controller := NewSettingsController(pipeline)

	body := `{"split":{"split_method":"lunar","morning_hours":"05:00-13:00","night_hours":"13:00-22:00","custom_split_time":"15:30"},"rate_per_drink":0.15}`
	rec := httptest.NewRecorder()
	controller.UpdateSettingsHandler(rec, httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
