package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/threecat/bonus-service/internal/constants"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/utils"
)

const AppName = "bonus-service"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	// Optional. Empty means state lives in process memory only.
	DBUrl string

	TimeclockBaseURL    string
	TimeclockLocationID int

	// DemoMode swaps the timeclock client for the mock roster.
	DemoMode bool

	RatePerDrink  float64
	SplitSettings models.SplitSettings
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("No .env file found; reading config from environment")
	}

	cfg := &Config{
		AppName:  AppName,
		AppPort:  envOrDefault("APP_PORT", "8080"),
		AppUrl:   envOrDefault("APP_URL", "http://localhost:3000"),
		DBUrl:    os.Getenv("DATABASE_URL"),
		DemoMode: os.Getenv("DEMO_MODE") == "true",
	}

	cfg.TimeclockBaseURL = os.Getenv("TIMECLOCK_BASE_URL")
	if cfg.TimeclockBaseURL == "" && !cfg.DemoMode {
		utils.Logger.Fatal("TIMECLOCK_BASE_URL env var is missing")
	}

	locationID := envOrDefault("TIMECLOCK_LOCATION_ID", "435860")
	id, err := strconv.Atoi(locationID)
	if err != nil {
		utils.Logger.Fatalf("TIMECLOCK_LOCATION_ID must be numeric, got %q", locationID)
	}
	cfg.TimeclockLocationID = id

	cfg.RatePerDrink = constants.DefaultBonusRatePerDrink
	if raw := os.Getenv("BONUS_RATE_PER_DRINK"); raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate <= 0 {
			utils.Logger.Fatalf("BONUS_RATE_PER_DRINK must be a positive number, got %q", raw)
		}
		cfg.RatePerDrink = rate
	}

	cfg.SplitSettings = defaultSplitSettings()
	return cfg
}

// LocationID returns the location as the string key used by the export
// filename code map.
func (c *Config) LocationID() string {
	return strconv.Itoa(c.TimeclockLocationID)
}

func defaultSplitSettings() models.SplitSettings {
	morningStart, morningEnd := mustParseRange(constants.DefaultMorningHours)
	nightStart, nightEnd := mustParseRange(constants.DefaultNightHours)
	cutoff, err := utils.ParseClockTime(constants.DefaultCustomSplitTime)
	if err != nil {
		utils.Logger.Fatalf("Invalid default custom split time: %v", err)
	}
	return models.SplitSettings{
		Method:       models.SplitTimeBased,
		MorningStart: morningStart,
		MorningEnd:   morningEnd,
		NightStart:   nightStart,
		NightEnd:     nightEnd,
		CustomCutoff: cutoff,
	}
}

func mustParseRange(s string) (start, end int) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		utils.Logger.Fatalf("Invalid default clock range %q: want \"HH:MM-HH:MM\"", s)
	}
	var err error
	start, err = utils.ParseClockTime(parts[0])
	if err != nil {
		utils.Logger.Fatalf("Invalid default clock range %q: %v", s, err)
	}
	end, err = utils.ParseClockTime(parts[1])
	if err != nil {
		utils.Logger.Fatalf("Invalid default clock range %q: %v", s, err)
	}
	return start, end
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
