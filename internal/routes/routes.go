package routes

const (
	Health = "/health"

	OrdersUpload  = "/api/v1/orders/upload"
	OrdersSummary = "/api/v1/orders/summary"

	TimesheetReload   = "/api/v1/timesheet/reload"
	TimesheetSegments = "/api/v1/timesheet/segments"

	EligibilityShifts         = "/api/v1/eligibility/shifts"
	EligibilityShiftToggle    = "/api/v1/eligibility/shifts/toggle"
	EligibilityShiftsBulk     = "/api/v1/eligibility/shifts/bulk"
	EligibilityEmployees      = "/api/v1/eligibility/employees"
	EligibilityEmployeeToggle = "/api/v1/eligibility/employees/toggle"
	EligibilityEmployeesBulk  = "/api/v1/eligibility/employees/bulk"
	EligibilityCriteriaFilter = "/api/v1/eligibility/criteria-filter"

	BonusCalculate  = "/api/v1/bonuses/calculate"
	BonusList       = "/api/v1/bonuses"
	BonusSummary    = "/api/v1/bonuses/summary"
	BonusDayFilters = "/api/v1/bonuses/day-filters"

	ExportAllocations = "/api/v1/export/allocations"
	ExportPayroll     = "/api/v1/export/payroll"
	ExportSummary     = "/api/v1/export/summary"

	Settings = "/api/v1/settings"
)
