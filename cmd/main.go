package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/threecat/bonus-service/internal/app"
	"github.com/threecat/bonus-service/internal/config"
	"github.com/threecat/bonus-service/internal/constants"
	"github.com/threecat/bonus-service/internal/controllers"
	"github.com/threecat/bonus-service/internal/repositories"
	"github.com/threecat/bonus-service/internal/routes"
	"github.com/threecat/bonus-service/internal/services"
	"github.com/threecat/bonus-service/internal/timeclock"
	"github.com/threecat/bonus-service/internal/utils"
	_ "time/tzdata"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize bonus-service:", err)
	}
	defer application.Close()

	// State store: Postgres when configured, in-memory otherwise.
	var store repositories.StateStore
	if application.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repositories.EnsureSchema(ctx, application.DB); err != nil {
			cancel()
			utils.Logger.Fatal("Failed to ensure state schema:", err)
		}
		cancel()
		store = repositories.NewPgStateStore(application.DB)
	} else {
		store = repositories.NewMemoryStateStore()
	}

	// Services
	orderService := services.NewOrderService()
	eligService := services.NewEligibilityService()
	bonusService := services.NewBonusService()
	exportService := services.NewExportService()

	var fetcher services.PunchFetcher
	if cfg.DemoMode {
		utils.Logger.Warn("DEMO_MODE enabled; serving the mock roster instead of timeclock data")
		fetcher = services.NewMockFetcher()
	} else {
		fetcher = timeclock.NewClient(cfg.TimeclockBaseURL, cfg.TimeclockLocationID)
	}

	pipeline := services.NewPipelineService(fetcher, orderService, eligService, bonusService, store, services.PipelineSettings{
		Split:        cfg.SplitSettings,
		RatePerDrink: cfg.RatePerDrink,
	})
	if cfg.DemoMode {
		pipeline.UseConverter(services.ConvertPunchesProportional)
	}

	if err := pipeline.Restore(context.Background()); err != nil {
		utils.Logger.WithError(err).Warn("Could not restore persisted pipeline state; starting empty")
	}

	// Controllers
	healthController := controllers.NewHealthController()
	orderController := controllers.NewOrderController(pipeline)
	timesheetController := controllers.NewTimesheetController(pipeline)
	eligibilityController := controllers.NewEligibilityController(pipeline, eligService)
	bonusController := controllers.NewBonusController(pipeline, bonusService)
	exportController := controllers.NewExportController(pipeline, bonusService, exportService, cfg.LocationID())
	settingsController := controllers.NewSettingsController(pipeline)

	// Router setup
	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.OrdersUpload, orderController.UploadOrdersHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.OrdersSummary, orderController.GetOrderSummaryHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.TimesheetReload, timesheetController.ReloadHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.TimesheetSegments, timesheetController.ListSegmentsHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.EligibilityShifts, eligibilityController.ListShiftsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.EligibilityShiftToggle, eligibilityController.ToggleShiftHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.EligibilityShiftsBulk, eligibilityController.BulkShiftsHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.EligibilityEmployees, eligibilityController.ListEmployeesHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.EligibilityEmployeeToggle, eligibilityController.ToggleEmployeeHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.EligibilityEmployeesBulk, eligibilityController.BulkEmployeesHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.EligibilityCriteriaFilter, eligibilityController.CriteriaFilterHandler).Methods(http.MethodPost)

	router.HandleFunc(routes.BonusCalculate, bonusController.CalculateHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.BonusList, bonusController.ListHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BonusSummary, bonusController.SummaryHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BonusDayFilters, bonusController.ListDayFiltersHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.BonusDayFilters, bonusController.SetDayFilterHandler).Methods(http.MethodPost)

	router.HandleFunc(routes.ExportAllocations, exportController.ExportAllocationsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ExportSummary, exportController.ExportSummaryHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.ExportPayroll, exportController.ExportPayrollHandler).Methods(http.MethodGet)

	router.HandleFunc(routes.Settings, settingsController.GetSettingsHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Settings, settingsController.UpdateSettingsHandler).Methods(http.MethodPut)

	// Nightly refresh keeps the current window's punches in sync with
	// late timeclock edits. Skipped until an operator loads a window.
	c := cron.New(cron.WithLocation(time.UTC))
	_, err = c.AddFunc(constants.RefreshCronSpec, func() {
		start, end, _ := pipeline.Window()
		if start == "" || end == "" {
			utils.Logger.Info("Skipping scheduled refresh; no date range loaded yet")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), constants.RefreshJobTimeout)
		defer cancel()
		utils.Logger.Infof("Starting scheduled timesheet refresh for %s to %s", start, end)
		if _, _, err := pipeline.Reload(ctx, start, end); err != nil {
			utils.Logger.WithError(err).Error("Scheduled timesheet refresh failed")
		}
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule timesheet refresh cron")
	}
	c.Start()
	defer c.Stop()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("bonus-service failed to start:", err)
	}
}
