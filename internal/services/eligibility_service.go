package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/threecat/bonus-service/internal/constants"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/utils"
)

// EligibilityCriteria are the thresholds for the automatic shift-level
// day filter.
type EligibilityCriteria struct {
	MinDrinksPerShift    int  `json:"min_drinks_per_shift"`
	MinEmployeesPerShift int  `json:"min_employees_per_shift"`
	ExcludeWeekends      bool `json:"exclude_weekends"`
	ExcludeHolidays      bool `json:"exclude_holidays"`
}

// EligibilitySnapshot is the persistable form of the engine's records.
type EligibilitySnapshot struct {
	Shifts    []models.ShiftEligibility    `json:"shifts"`
	Employees []models.EmployeeEligibility `json:"employees"`
}

// EligibilityService maintains the per-shift and per-employee
// eligibility records. Default is eligible on first observation; a
// record can be disabled manually (with a reason) or by the automatic
// criteria filter, and manual overrides survive subsequent automatic
// passes. Records are only ever regenerated wholesale after a reload.
type EligibilityService struct {
	mu        sync.RWMutex
	shifts    map[models.ShiftKey]*models.ShiftEligibility
	employees map[models.EmployeeShiftKey]*models.EmployeeEligibility
	roster    map[models.EmployeeShiftKey]string // key → employee name, for lazy creation
}

func NewEligibilityService() *EligibilityService {
	return &EligibilityService{
		shifts:    make(map[models.ShiftKey]*models.ShiftEligibility),
		employees: make(map[models.EmployeeShiftKey]*models.EmployeeEligibility),
		roster:    make(map[models.EmployeeShiftKey]string),
	}
}

// Regenerate rebuilds every record from the freshly segmented
// timesheet: default-eligible for each observed key, no dangling
// entries for shifts that left the window. Manual overrides whose key
// recurs in the new timesheet are preserved; automatic reasons are
// discarded, since the data they were judged on has been replaced.
func (s *EligibilityService) Regenerate(segments []models.ShiftSegment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	prevShifts := s.shifts
	prevEmployees := s.employees

	s.shifts = make(map[models.ShiftKey]*models.ShiftEligibility)
	s.employees = make(map[models.EmployeeShiftKey]*models.EmployeeEligibility)
	s.roster = make(map[models.EmployeeShiftKey]string)

	for _, seg := range segments {
		if seg.Shift == models.ShiftUnassigned {
			continue
		}

		shiftKey := models.ShiftKey{Date: seg.Date, Shift: seg.Shift}
		if _, ok := s.shifts[shiftKey]; !ok {
			if prev, ok := prevShifts[shiftKey]; ok && prev.ManualOverride {
				kept := *prev
				s.shifts[shiftKey] = &kept
			} else {
				s.shifts[shiftKey] = &models.ShiftEligibility{
					ID:          uuid.New(),
					Date:        seg.Date,
					Shift:       seg.Shift,
					IsEligible:  true,
					LastUpdated: now,
					UpdatedBy:   constants.UpdatedBySystem,
				}
			}
		}

		empKey := seg.Key()
		s.roster[empKey] = seg.EmployeeName
		if _, ok := s.employees[empKey]; !ok {
			if prev, ok := prevEmployees[empKey]; ok && prev.ManualOverride {
				kept := *prev
				s.employees[empKey] = &kept
			} else {
				s.employees[empKey] = &models.EmployeeEligibility{
					ID:            uuid.New(),
					EmployeeID:    seg.EmployeeID,
					EmployeeName:  seg.EmployeeName,
					Date:          seg.Date,
					Shift:         seg.Shift,
					IsEligible:    true,
					InfractionIDs: []string{},
					LastUpdated:   now,
					UpdatedBy:     constants.UpdatedBySystem,
				}
			}
		}
	}

	utils.Logger.Infof("Regenerated eligibility: %d shift records, %d employee records", len(s.shifts), len(s.employees))
}

// ToggleShift sets a shift's eligibility directly. Disabling stamps the
// manual reason; enabling clears it. The record becomes a manual
// override either way, so later automatic passes leave it alone.
func (s *EligibilityService) ToggleShift(key models.ShiftKey, isEligible bool, updatedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.shifts[key]
	if !ok {
		return utils.ErrShiftKeyNotFound
	}
	rec.IsEligible = isEligible
	rec.Reason = ""
	if !isEligible {
		rec.Reason = constants.ReasonManuallyDisabled
	}
	rec.ManualOverride = true
	rec.OverrideReason = rec.Reason
	rec.LastUpdated = time.Now().UTC()
	rec.UpdatedBy = updatedBy
	return nil
}

// ToggleEmployee sets one employee's eligibility for one shift. A
// record is created lazily when the employee appears in the segmented
// timesheet but has never been toggled.
func (s *EligibilityService) ToggleEmployee(key models.EmployeeShiftKey, isEligible bool, updatedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setEmployeeLocked(key, isEligible, reasonFor(isEligible, constants.ReasonManuallyDisabled), updatedBy)
}

// BulkUpdateShifts applies one transition to a set of shift keys with
// the shared bulk reason.
func (s *EligibilityService) BulkUpdateShifts(keys []models.ShiftKey, isEligible bool, updatedBy string) (updated int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, key := range keys {
		rec, ok := s.shifts[key]
		if !ok {
			continue
		}
		rec.IsEligible = isEligible
		rec.Reason = reasonFor(isEligible, constants.ReasonBulkDisabled)
		rec.ManualOverride = true
		rec.OverrideReason = rec.Reason
		rec.LastUpdated = now
		rec.UpdatedBy = updatedBy
		updated++
	}
	return updated
}

// BulkUpdateEmployees applies one transition to a set of employee keys.
func (s *EligibilityService) BulkUpdateEmployees(keys []models.EmployeeShiftKey, isEligible bool, updatedBy string) (updated int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if err := s.setEmployeeLocked(key, isEligible, reasonFor(isEligible, constants.ReasonBulkDisabled), updatedBy); err == nil {
			updated++
		}
	}
	return updated
}

func (s *EligibilityService) setEmployeeLocked(key models.EmployeeShiftKey, isEligible bool, reason, updatedBy string) error {
	now := time.Now().UTC()
	rec, ok := s.employees[key]
	if !ok {
		name, known := s.roster[key]
		if !known {
			return utils.ErrShiftKeyNotFound
		}
		rec = &models.EmployeeEligibility{
			ID:            uuid.New(),
			EmployeeID:    key.EmployeeID,
			EmployeeName:  name,
			Date:          key.Date,
			Shift:         key.Shift,
			InfractionIDs: []string{},
		}
		s.employees[key] = rec
	}
	rec.IsEligible = isEligible
	rec.Reason = reason
	rec.ManualOverride = true
	rec.LastUpdated = now
	rec.UpdatedBy = updatedBy
	return nil
}

func reasonFor(isEligible bool, disabledReason string) string {
	if isEligible {
		return ""
	}
	return disabledReason
}

// ApplyCriteriaFilter runs the automatic shift-level day filter. A
// shift is disabled when its drink count or staffing is non-zero but
// under threshold, or when the date is a weekend and weekend exclusion
// is on. Zero counts never auto-disable: "no orders" is a different
// condition from "under-threshold orders". Failing criteria concatenate
// into one semicolon-joined reason. Manual overrides keep their
// effective state.
func (s *EligibilityService) ApplyCriteriaFilter(criteria EligibilityCriteria, totals models.ShiftBucketTotals, segments []models.ShiftSegment) (disabled int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staffing := make(map[models.ShiftKey]int)
	for _, seg := range segments {
		if seg.IsTrainee || seg.Shift == models.ShiftUnassigned {
			continue
		}
		staffing[models.ShiftKey{Date: seg.Date, Shift: seg.Shift}]++
	}

	now := time.Now().UTC()
	for key, rec := range s.shifts {
		if rec.ManualOverride {
			continue
		}

		var reasons []string
		drinks := totals.Count(key)
		if drinks > 0 && drinks < criteria.MinDrinksPerShift {
			reasons = append(reasons, fmt.Sprintf("%s shift: %d drinks (min: %d)", shiftLabel(key.Shift), drinks, criteria.MinDrinksPerShift))
		}
		if staff := staffing[key]; staff > 0 && staff < criteria.MinEmployeesPerShift {
			reasons = append(reasons, fmt.Sprintf("%s shift: %d employees (min: %d)", shiftLabel(key.Shift), staff, criteria.MinEmployeesPerShift))
		}
		if criteria.ExcludeWeekends && utils.IsWeekend(key.Date) {
			reasons = append(reasons, constants.ReasonWeekendExcluded)
		}
		if criteria.ExcludeHolidays && utils.IsClosureHoliday(key.Date) {
			reasons = append(reasons, constants.ReasonHolidayExcluded)
		}

		rec.IsEligible = len(reasons) == 0
		rec.Reason = strings.Join(reasons, "; ")
		rec.LastUpdated = now
		rec.UpdatedBy = constants.UpdatedByAutoFilter
		if !rec.IsEligible {
			disabled++
		}
	}
	return disabled
}

func shiftLabel(t models.ShiftType) string {
	if t == models.ShiftMorning {
		return "Morning"
	}
	return "Night"
}

// Effective resolves an employee's bonus eligibility for a shift: the
// AND of the employee record and the shift record, absence meaning
// eligible.
func (s *EligibilityService) Effective(key models.EmployeeShiftKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.employees[key]; ok && !rec.IsEligible {
		return false
	}
	if rec, ok := s.shifts[key.ShiftKeyOf()]; ok && !rec.IsEligible {
		return false
	}
	return true
}

// ShiftEligible resolves shift-level eligibility alone.
func (s *EligibilityService) ShiftEligible(key models.ShiftKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.shifts[key]
	return !ok || rec.IsEligible
}

// ShiftRecords returns the shift-level records ordered by (date, shift).
func (s *EligibilityService) ShiftRecords() []models.ShiftEligibility {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ShiftEligibility, 0, len(s.shifts))
	for _, rec := range s.shifts {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Shift < out[j].Shift
	})
	return out
}

// EmployeeRecords returns the employee-level records ordered by
// (date, shift, employee name).
func (s *EligibilityService) EmployeeRecords() []models.EmployeeEligibility {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.EmployeeEligibility, 0, len(s.employees))
	for _, rec := range s.employees {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Shift != out[j].Shift {
			return out[i].Shift < out[j].Shift
		}
		return out[i].EmployeeName < out[j].EmployeeName
	})
	return out
}

// Snapshot exports the records for persistence.
func (s *EligibilityService) Snapshot() EligibilitySnapshot {
	return EligibilitySnapshot{
		Shifts:    s.ShiftRecords(),
		Employees: s.EmployeeRecords(),
	}
}

// Restore replaces the records from a persisted snapshot, rebuilding
// the roster index from the snapshot's employee records.
func (s *EligibilityService) Restore(snap EligibilitySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shifts = make(map[models.ShiftKey]*models.ShiftEligibility, len(snap.Shifts))
	for i := range snap.Shifts {
		rec := snap.Shifts[i]
		s.shifts[rec.Key()] = &rec
	}
	s.employees = make(map[models.EmployeeShiftKey]*models.EmployeeEligibility, len(snap.Employees))
	s.roster = make(map[models.EmployeeShiftKey]string, len(snap.Employees))
	for i := range snap.Employees {
		rec := snap.Employees[i]
		s.employees[rec.Key()] = &rec
		s.roster[rec.Key()] = rec.EmployeeName
	}
}
