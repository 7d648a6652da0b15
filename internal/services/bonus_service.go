package services

import (
	"math"
	"sort"
	"sync"

	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/utils"
)

// ShiftSummary aggregates one shift's allocations for reporting.
type ShiftSummary struct {
	Date          string           `json:"date"`
	Shift         models.ShiftType `json:"shift"`
	DrinkCount    int              `json:"drink_count"`
	BonusPool     float64          `json:"bonus_pool"`
	TotalHours    float64          `json:"total_hours"`
	EmployeeCount int              `json:"employee_count"`
	TotalPaid     float64          `json:"total_paid"`
}

// EmployeeSummary aggregates one employee's allocations across the
// whole window.
type EmployeeSummary struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	ShiftCount   int     `json:"shift_count"`
	TotalHours   float64 `json:"total_hours"`
	TotalBonus   float64 `json:"total_bonus"`
	BonusPerHour float64 `json:"bonus_per_hour"`
}

// BonusService computes pro-rata drink bonuses and keeps the latest
// allocation set plus the per-date filters that exclude whole days from
// the payout.
type BonusService struct {
	mu          sync.RWMutex
	allocations []models.BonusAllocation
	dayFilters  map[string]models.DayFilter
}

func NewBonusService() *BonusService {
	return &BonusService{
		dayFilters: make(map[string]models.DayFilter),
	}
}

// Calculate recomputes every allocation from the current segments,
// drink totals and eligibility. For each eligible (date, shift) the
// pool is drinks times the per-drink rate, split across participating
// employees in proportion to hours worked. Trainees and individually
// ineligible employees never participate; their hours do not dilute
// the pool either. Shifts whose date is filtered out, whose shift
// record is disabled, or whose participating hours sum to zero produce
// no allocations.
func (s *BonusService) Calculate(segments []models.ShiftSegment, totals models.ShiftBucketTotals, elig *EligibilityService, ratePerDrink float64) []models.BonusAllocation {
	s.mu.Lock()
	defer s.mu.Unlock()

	byShift := make(map[models.ShiftKey][]models.ShiftSegment)
	for _, seg := range segments {
		if seg.Shift == models.ShiftUnassigned {
			continue
		}
		key := models.ShiftKey{Date: seg.Date, Shift: seg.Shift}
		byShift[key] = append(byShift[key], seg)
	}

	keys := make([]models.ShiftKey, 0, len(byShift))
	for key := range byShift {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			return keys[i].Date < keys[j].Date
		}
		return keys[i].Shift < keys[j].Shift
	})

	allocations := make([]models.BonusAllocation, 0)
	for _, key := range keys {
		if filter, ok := s.dayFilters[key.Date]; ok && !filter.Enabled {
			continue
		}
		if !elig.ShiftEligible(key) {
			continue
		}
		drinks := totals.Count(key)
		if drinks == 0 {
			continue
		}

		var participants []models.ShiftSegment
		for _, seg := range byShift[key] {
			if seg.IsTrainee {
				continue
			}
			if !elig.Effective(seg.Key()) {
				continue
			}
			participants = append(participants, seg)
		}

		var totalHours float64
		for _, seg := range participants {
			totalHours += seg.HoursWorked
		}
		if totalHours == 0 {
			continue
		}

		pool := utils.RoundHours(float64(drinks) * ratePerDrink)

		sort.Slice(participants, func(i, j int) bool {
			return participants[i].EmployeeName < participants[j].EmployeeName
		})
		for _, seg := range participants {
			ratio := seg.HoursWorked / totalHours
			// Shares stay unrounded so they sum back to the pool;
			// cent rounding happens at the export and summary layer.
			allocations = append(allocations, models.BonusAllocation{
				Date:            key.Date,
				Shift:           key.Shift,
				EmployeeID:      seg.EmployeeID,
				EmployeeName:    seg.EmployeeName,
				Role:            seg.Role,
				HoursWorked:     seg.HoursWorked,
				Multiplier:      1,
				AdjustedHours:   seg.HoursWorked,
				BonusAmount:     pool * ratio,
				DrinkCount:      drinks,
				BonusPool:       pool,
				HoursRatio:      ratio,
				TotalShiftHours: totalHours,
			})
		}
	}

	s.allocations = allocations
	utils.Logger.Infof("Calculated %d bonus allocations across %d shifts", len(allocations), len(keys))
	return allocations
}

// Allocations returns the latest allocation set, optionally restricted
// to one date.
func (s *BonusService) Allocations(date string) []models.BonusAllocation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if date == "" {
		out := make([]models.BonusAllocation, len(s.allocations))
		copy(out, s.allocations)
		return out
	}
	out := make([]models.BonusAllocation, 0)
	for _, a := range s.allocations {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// ShiftSummaries folds the allocations into one row per (date, shift).
func (s *BonusService) ShiftSummaries() []ShiftSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[models.ShiftKey]*ShiftSummary)
	var order []models.ShiftKey
	for _, a := range s.allocations {
		key := models.ShiftKey{Date: a.Date, Shift: a.Shift}
		sum, ok := index[key]
		if !ok {
			sum = &ShiftSummary{
				Date:       a.Date,
				Shift:      a.Shift,
				DrinkCount: a.DrinkCount,
				BonusPool:  a.BonusPool,
				TotalHours: a.TotalShiftHours,
			}
			index[key] = sum
			order = append(order, key)
		}
		sum.EmployeeCount++
		sum.TotalPaid = roundCents(sum.TotalPaid + a.BonusAmount)
	}

	out := make([]ShiftSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *index[key])
	}
	return out
}

// EmployeeSummaries folds the allocations into one row per employee,
// ordered by name.
func (s *BonusService) EmployeeSummaries() []EmployeeSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index := make(map[string]*EmployeeSummary)
	for _, a := range s.allocations {
		sum, ok := index[a.EmployeeID]
		if !ok {
			sum = &EmployeeSummary{EmployeeID: a.EmployeeID, EmployeeName: a.EmployeeName}
			index[a.EmployeeID] = sum
		}
		sum.ShiftCount++
		sum.TotalHours = utils.RoundHours(sum.TotalHours + a.HoursWorked)
		sum.TotalBonus = roundCents(sum.TotalBonus + a.BonusAmount)
	}

	out := make([]EmployeeSummary, 0, len(index))
	for _, sum := range index {
		if sum.TotalHours > 0 {
			sum.BonusPerHour = roundCents(sum.TotalBonus / sum.TotalHours)
		}
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeName < out[j].EmployeeName })
	return out
}

// SetDayFilter records whether a date participates in the payout.
// Recalculation is the caller's responsibility.
func (s *BonusService) SetDayFilter(date string, enabled bool, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayFilters[date] = models.DayFilter{Date: date, Enabled: enabled, Reason: reason}
}

// DayFilters returns the recorded filters ordered by date.
func (s *BonusService) DayFilters() []models.DayFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.DayFilter, 0, len(s.dayFilters))
	for _, f := range s.dayFilters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// RestoreAllocations replaces the allocation set from a persisted
// snapshot.
func (s *BonusService) RestoreAllocations(allocations []models.BonusAllocation, filters []models.DayFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allocations = allocations
	s.dayFilters = make(map[string]models.DayFilter, len(filters))
	for _, f := range filters {
		s.dayFilters[f.Date] = f
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
