package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrNoTimesheetData  = errors.New("no_timesheet_data")
	ErrNoOrderData      = errors.New("no_order_data")
	ErrStaleReload      = errors.New("stale_reload_discarded")
	ErrShiftKeyNotFound = errors.New("shift_key_not_found")

	// For the timeclock collaborator; callers pick a remedy message from these.
	ErrTimeclockTimeout     = errors.New("timeclock_timeout")
	ErrTimeclockUnreachable = errors.New("timeclock_unreachable")
	ErrTimeclockServer      = errors.New("timeclock_server_error")
	ErrTimeclockRequest     = errors.New("timeclock_bad_request")
)

// ParseError reports a clock-time or date string that matched no known
// format. It aborts processing of the one record that carried it, never
// the whole batch.
type ParseError struct {
	Input string
	Kind  string // "clock_time" or "date"
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s %q", e.Kind, e.Input)
}

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
