package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/threecat/bonus-service/internal/constants"
	"github.com/threecat/bonus-service/internal/models"
)

// ExportService renders the allocation data into the three CSV shapes
// the back office consumes: the detailed per-allocation sheet, the
// shift/employee summary report, and the Gusto payroll import file.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// FilenameComponents derives the store code and compact date period
// used in export filenames. Unknown locations fall back to a generic
// code rather than failing the export.
func (s *ExportService) FilenameComponents(locationID, startDate, endDate string) (storeCode, datePeriod string) {
	storeCode, ok := constants.LocationCodes[locationID]
	if !ok {
		storeCode = constants.UnknownLocationCode
	}
	start := strings.ReplaceAll(startDate, "-", "")
	end := strings.ReplaceAll(endDate, "-", "")
	if start == end {
		return storeCode, start
	}
	return storeCode, start + "-" + end
}

// DetailedFilename names the per-allocation export.
func (s *ExportService) DetailedFilename(locationID, startDate, endDate string) string {
	code, period := s.FilenameComponents(locationID, startDate, endDate)
	return fmt.Sprintf("bonus-allocations-%s-%s.csv", code, period)
}

// SummaryFilename names the summary report export.
func (s *ExportService) SummaryFilename(locationID, startDate, endDate string) string {
	code, period := s.FilenameComponents(locationID, startDate, endDate)
	return fmt.Sprintf("bonus-summary-%s-%s.csv", code, period)
}

// PayrollFilename names the payroll import export.
func (s *ExportService) PayrollFilename(locationID, startDate, endDate string) string {
	code, period := s.FilenameComponents(locationID, startDate, endDate)
	return fmt.Sprintf("gusto-bonus-import-%s-%s.csv", code, period)
}

// DetailedCSV renders one row per allocation, ordered by date, then
// shift, then employee name. Morning shifts print as AM, night as PM.
func (s *ExportService) DetailedCSV(allocations []models.BonusAllocation) string {
	rows := make([]models.BonusAllocation, len(allocations))
	copy(rows, allocations)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		if rows[i].Shift != rows[j].Shift {
			return rows[i].Shift < rows[j].Shift
		}
		return rows[i].EmployeeName < rows[j].EmployeeName
	})

	var b strings.Builder
	b.WriteString("Date,Shift (AM/PM),Employee,Role,Hours Worked,Multiplier,Adjusted Hours,Drinks,Bonus Pool,Bonus Amount")
	for _, a := range rows {
		b.WriteString("\n")
		b.WriteString(strings.Join([]string{
			a.Date,
			shiftAbbrev(a.Shift),
			a.EmployeeName,
			a.Role,
			formatNumber(a.HoursWorked),
			formatNumber(a.Multiplier),
			formatNumber(a.AdjustedHours),
			strconv.Itoa(a.DrinkCount),
			fmt.Sprintf("%.2f", a.BonusPool),
			fmt.Sprintf("%.2f", a.BonusAmount),
		}, ","))
	}
	return b.String()
}

// SummaryCSV renders the two-section summary report: a shift section
// with one row per (date, shift) and an employee section with one row
// per employee.
func (s *ExportService) SummaryCSV(shiftSummaries []ShiftSummary, employeeSummaries []EmployeeSummary) string {
	var b strings.Builder
	b.WriteString("Type,Date/Employee,Shift/Shifts,Drinks/Total Bonus,Employees/Bonus Pool,Total Bonus")
	b.WriteString("\nSHIFT SUMMARY")
	for _, sum := range shiftSummaries {
		b.WriteString("\n")
		b.WriteString(strings.Join([]string{
			"Shift",
			sum.Date,
			shiftAbbrev(sum.Shift),
			strconv.Itoa(sum.DrinkCount),
			strconv.Itoa(sum.EmployeeCount),
			fmt.Sprintf("%.2f", sum.TotalPaid),
		}, ","))
	}
	b.WriteString("\n\nEMPLOYEE SUMMARY")
	for _, sum := range employeeSummaries {
		b.WriteString("\n")
		b.WriteString(strings.Join([]string{
			"Employee",
			sum.EmployeeName,
			strconv.Itoa(sum.ShiftCount),
			fmt.Sprintf("%.2f", sum.TotalBonus),
			"",
			"",
		}, ","))
	}
	return b.String()
}

type payrollRow struct {
	lastName   string
	firstName  string
	employeeID string
	totalBonus float64
}

// PayrollCSV groups allocations per employee and renders the Gusto
// import format. The first name token is the first name and the rest
// the last name; allocations with no employee id carry the sentinel so
// the payroll operator can spot and fix them. Names are quoted, rows
// sorted by last name.
func (s *ExportService) PayrollCSV(allocations []models.BonusAllocation) string {
	index := make(map[string]*payrollRow)
	for _, a := range allocations {
		row, ok := index[a.EmployeeName]
		if !ok {
			first, last := splitName(a.EmployeeName)
			id := a.EmployeeID
			if id == "" {
				id = constants.UnknownEmployeeIDSentinel
			}
			row = &payrollRow{lastName: last, firstName: first, employeeID: id}
			index[a.EmployeeName] = row
		}
		row.totalBonus = roundCents(row.totalBonus + a.BonusAmount)
	}

	rows := make([]*payrollRow, 0, len(index))
	for _, row := range index {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].lastName < rows[j].lastName })

	var b strings.Builder
	b.WriteString("last_name,first_name,gusto_employee_id,custom_earning_special_bonus")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("\n%q,%q,%s,%.2f", row.lastName, row.firstName, row.employeeID, row.totalBonus))
	}
	return b.String()
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func shiftAbbrev(t models.ShiftType) string {
	if t == models.ShiftMorning {
		return "AM"
	}
	return "PM"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
