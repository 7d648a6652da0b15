package services

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/threecat/bonus-service/internal/constants"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/repositories"
	"github.com/threecat/bonus-service/internal/timeclock"
	"github.com/threecat/bonus-service/internal/utils"
)

// PunchFetcher is the slice of the timeclock client the pipeline needs.
type PunchFetcher interface {
	FetchShiftRange(ctx context.Context, startDate, endDate string) ([]timeclock.ShiftDisplay, error)
}

// PunchConverter turns raw punches into shift segments. Real data uses
// ConvertPunches; the mock roster pairs with ConvertPunchesProportional.
type PunchConverter func([]timeclock.ShiftDisplay, models.SplitSettings) ([]models.ShiftSegment, int)

// PipelineState is the persisted snapshot of everything derived from
// the last reload and order upload.
type PipelineState struct {
	Generation     int64                    `json:"generation"`
	StartDate      string                   `json:"start_date"`
	EndDate        string                   `json:"end_date"`
	Punches        []timeclock.ShiftDisplay `json:"punches"`
	Segments       []models.ShiftSegment    `json:"segments"`
	SkippedPunches int                      `json:"skipped_punches"`
	Orders         []models.OrderRecord     `json:"orders"`
	DroppedOrders  int                      `json:"dropped_orders"`
	Totals         models.ShiftBucketTotals `json:"totals"`
	Eligibility    EligibilitySnapshot      `json:"eligibility"`
	Allocations    []models.BonusAllocation `json:"allocations"`
	DayFilters     []models.DayFilter       `json:"day_filters"`
	LastReloadedAt time.Time                `json:"last_reloaded_at"`
}

// PipelineSettings are the operator-tunable knobs, persisted separately
// from the derived state so a settings change survives a snapshot wipe.
type PipelineSettings struct {
	Split        models.SplitSettings `json:"split"`
	RatePerDrink float64              `json:"rate_per_drink"`
}

// PipelineService owns the derived state of the whole computation and
// sequences the stages: reload timesheets, ingest orders, regenerate
// eligibility, recalculate allocations, persist. Reloads are guarded by
// a generation counter so that when two reloads race, only the one
// issued last may commit; the earlier one is rejected as stale no
// matter which HTTP response arrives first.
type PipelineService struct {
	mu           sync.Mutex
	nextGen      int64
	committedGen int64

	fetcher PunchFetcher
	convert PunchConverter
	orders  *OrderService
	elig    *EligibilityService
	bonus   *BonusService
	store   repositories.StateStore

	settings PipelineSettings
	state    PipelineState
}

func NewPipelineService(fetcher PunchFetcher, orders *OrderService, elig *EligibilityService, bonus *BonusService, store repositories.StateStore, settings PipelineSettings) *PipelineService {
	return &PipelineService{
		fetcher:  fetcher,
		convert:  ConvertPunches,
		orders:   orders,
		elig:     elig,
		bonus:    bonus,
		store:    store,
		settings: settings,
		state: PipelineState{
			Totals: make(models.ShiftBucketTotals),
		},
	}
}

// UseConverter swaps the punch-to-segment conversion. Demo deployments
// install ConvertPunchesProportional here alongside the mock fetcher.
func (p *PipelineService) UseConverter(convert PunchConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.convert = convert
}

// Restore loads the persisted snapshot and settings, if any, and
// rehydrates the downstream services from them.
func (p *PipelineService) Restore(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var settings PipelineSettings
	found, err := p.store.Load(ctx, constants.StorageKeySettings, &settings)
	if err != nil {
		return err
	}
	if found {
		p.settings = settings
	}

	var state PipelineState
	found, err = p.store.Load(ctx, constants.StorageKeyPipelineState, &state)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if state.Totals == nil {
		state.Totals = make(models.ShiftBucketTotals)
	}

	p.state = state
	p.nextGen = state.Generation
	p.committedGen = state.Generation
	p.elig.Restore(state.Eligibility)
	p.bonus.RestoreAllocations(state.Allocations, state.DayFilters)
	utils.Logger.Infof("Restored pipeline state: generation %d, %d segments, %d orders", state.Generation, len(state.Segments), len(state.Orders))
	return nil
}

// Reload fetches the punch data for the window, segments it, rebuilds
// eligibility and recalculates allocations. The fetch runs outside the
// lock; the commit re-checks the generation so a reload that was
// superseded while in flight changes nothing and reports ErrStaleReload.
func (p *PipelineService) Reload(ctx context.Context, startDate, endDate string) (segments []models.ShiftSegment, skipped int, err error) {
	p.mu.Lock()
	p.nextGen++
	gen := p.nextGen
	settings := p.settings
	p.mu.Unlock()

	punches, err := p.fetcher.FetchShiftRange(ctx, startDate, endDate)
	if err != nil {
		return nil, 0, err
	}
	if len(punches) == 0 {
		return nil, 0, utils.ErrNoTimesheetData
	}

	segments, skipped = p.convert(punches, settings.Split)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen < p.nextGen || gen <= p.committedGen {
		utils.Logger.Warnf("Discarding reload generation %d, superseded by %d", gen, p.nextGen)
		return nil, 0, utils.ErrStaleReload
	}
	p.committedGen = gen

	p.state.Generation = gen
	p.state.StartDate = startDate
	p.state.EndDate = endDate
	p.state.Punches = punches
	p.state.Segments = segments
	p.state.SkippedPunches = skipped
	p.state.LastReloadedAt = time.Now().UTC()

	p.elig.Regenerate(segments)
	p.recalculateLocked()
	p.persistLocked(ctx)
	return segments, skipped, nil
}

// IngestOrders parses an uploaded order export, replaces the order set
// and recounts drinks per shift. Existing segments and eligibility are
// untouched; allocations are recalculated against the new counts.
func (p *PipelineService) IngestOrders(ctx context.Context, r io.Reader) (accepted, dropped int, err error) {
	orders, dropped, err := p.orders.ParseOrderExport(r)
	if err != nil {
		return 0, 0, err
	}
	if len(orders) == 0 {
		return 0, dropped, utils.ErrNoOrderData
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Orders = orders
	p.state.DroppedOrders = dropped
	p.state.Totals = p.orders.CountDrinksByShift(orders, p.settings.Split)
	p.recalculateLocked()
	p.persistLocked(ctx)
	return len(orders), dropped, nil
}

// Recalculate recomputes allocations from the current state. Called
// after eligibility toggles and day filter changes.
func (p *PipelineService) Recalculate(ctx context.Context) []models.BonusAllocation {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.recalculateLocked()
	p.persistLocked(ctx)
	return out
}

// ApplyCriteriaFilter runs the automatic eligibility filter against the
// current drink totals and segments, then recalculates.
func (p *PipelineService) ApplyCriteriaFilter(ctx context.Context, criteria EligibilityCriteria) (disabled int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	disabled = p.elig.ApplyCriteriaFilter(criteria, p.state.Totals, p.state.Segments)
	p.recalculateLocked()
	p.persistLocked(ctx)
	return disabled
}

// SetDayFilter toggles one date's participation and recalculates.
func (p *PipelineService) SetDayFilter(ctx context.Context, date string, enabled bool, reason string) {
	p.bonus.SetDayFilter(date, enabled, reason)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recalculateLocked()
	p.persistLocked(ctx)
}

// Settings returns the current knobs.
func (p *PipelineService) Settings() PipelineSettings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

// UpdateSettings replaces the knobs and re-derives everything that
// depends on them: segments are re-split from the retained punches,
// orders re-classified, eligibility regenerated and allocations
// recalculated.
func (p *PipelineService) UpdateSettings(ctx context.Context, settings PipelineSettings) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settings = settings
	if err := p.store.Save(ctx, constants.StorageKeySettings, settings); err != nil {
		utils.Logger.Errorf("Failed to persist settings: %v", err)
	}

	if len(p.state.Punches) > 0 {
		segments, skipped := p.convert(p.state.Punches, settings.Split)
		p.state.Segments = segments
		p.state.SkippedPunches = skipped
		p.elig.Regenerate(segments)
	}
	if len(p.state.Orders) > 0 {
		p.state.Totals = p.orders.CountDrinksByShift(p.state.Orders, settings.Split)
	}
	p.recalculateLocked()
	p.persistLocked(ctx)
}

// Segments returns the current segmented timesheet.
func (p *PipelineService) Segments() []models.ShiftSegment {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.ShiftSegment, len(p.state.Segments))
	copy(out, p.state.Segments)
	return out
}

// OrderTotals returns the per-shift drink counts.
func (p *PipelineService) OrderTotals() models.ShiftBucketTotals {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(models.ShiftBucketTotals, len(p.state.Totals))
	for k, v := range p.state.Totals {
		counts := *v
		out[k] = &counts
	}
	return out
}

// Window returns the last reloaded date range and timestamp.
func (p *PipelineService) Window() (startDate, endDate string, reloadedAt time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.StartDate, p.state.EndDate, p.state.LastReloadedAt
}

// OrderCounts reports how many order rows were accepted and dropped in
// the last upload.
func (p *PipelineService) OrderCounts() (accepted, dropped int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.state.Orders), p.state.DroppedOrders
}

func (p *PipelineService) recalculateLocked() []models.BonusAllocation {
	allocations := p.bonus.Calculate(p.state.Segments, p.state.Totals, p.elig, p.settings.RatePerDrink)
	p.state.Allocations = allocations
	return allocations
}

func (p *PipelineService) persistLocked(ctx context.Context) {
	p.state.Eligibility = p.elig.Snapshot()
	p.state.DayFilters = p.bonus.DayFilters()
	if err := p.store.Save(ctx, constants.StorageKeyPipelineState, p.state); err != nil {
		utils.Logger.Errorf("Failed to persist pipeline state: %v", err)
	}
}
