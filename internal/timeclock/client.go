package timeclock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/threecat/bonus-service/internal/constants"
	"github.com/threecat/bonus-service/internal/utils"
)

// BreakPeriod is one break as the timeclock vendor reports it, clock
// strings in 12-hour local time.
type BreakPeriod struct {
	StartTime       string `json:"start_time"` // e.g. "12:30 PM"
	EndTime         string `json:"end_time"`   // e.g. "1:00 PM"
	IsUnpaid        bool   `json:"is_unpaid"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ShiftDisplay is one raw punch row from the vendor's shifts-display
// endpoint. Overtime classification arrives pre-computed; this service
// never re-derives it. Break fields are optional: older punches carry
// only the aggregate unpaid_break_hours.
type ShiftDisplay struct {
	EmployeeID           string        `json:"employee_id"`
	UserID               int           `json:"user_id"`
	UserName             string        `json:"user_name"`
	ClockedInPacific     string        `json:"clocked_in_pacific"`  // "h:mm AM/PM"
	ClockedOutPacific    string        `json:"clocked_out_pacific"` // "h:mm AM/PM"
	ClockedInDatePacific string        `json:"clocked_in_date_pacific"`
	RegularHours         float64       `json:"regular_hours"`
	OvertimeHours        float64       `json:"overtime_hours"`
	DoubleOTHours        float64       `json:"double_ot_hours"`
	NetWorkedHours       float64       `json:"net_worked_hours"`
	BreakDurationMinutes float64       `json:"break_duration_minutes"`
	UnpaidBreakHours     *float64      `json:"unpaid_break_hours,omitempty"`
	PaidBreakHours       *float64      `json:"paid_break_hours,omitempty"`
	Role                 string        `json:"role,omitempty"`
	BreakPeriods         []BreakPeriod `json:"break_periods,omitempty"`
}

type shiftRangeRequest struct {
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	LocationID int    `json:"location_id"`
}

// Client wraps the remote timeclock shifts-display endpoint. It does no
// retrying; it only classifies failures so the caller can suggest a
// remedy (retry, narrow the date range).
type Client struct {
	baseURL    string
	locationID int
	httpClient *http.Client
}

func NewClient(baseURL string, locationID int) *Client {
	return &Client{
		baseURL:    baseURL,
		locationID: locationID,
		httpClient: &http.Client{Timeout: constants.TimeclockRequestTimeout},
	}
}

// FetchShiftRange pulls raw punch rows for [startDate, endDate], both
// YYYY-MM-DD inclusive. Long ranges are fetched from the prior Monday so
// the vendor's weekly overtime annotations stay correct, then filtered
// back down to the requested window.
func (c *Client) FetchShiftRange(ctx context.Context, startDate, endDate string) ([]ShiftDisplay, error) {
	fetchStart := startDate
	if isLongRange(startDate, endDate) {
		fetchStart = priorMonday(startDate)
		if fetchStart != startDate {
			utils.Logger.Debugf("Adjusted timeclock fetch start to %s (prior Monday)", fetchStart)
		}
	}

	payload, err := json.Marshal(shiftRangeRequest{
		StartDate:  fetchStart,
		EndDate:    endDate,
		LocationID: c.locationID,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/time-punch/shifts-display", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", utils.ErrTimeclockServer, resp.StatusCode, string(body))
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", utils.ErrTimeclockRequest, resp.StatusCode, string(body))
	}

	var shifts []ShiftDisplay
	if err := json.NewDecoder(resp.Body).Decode(&shifts); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", utils.ErrTimeclockServer, err)
	}

	filtered := filterByDateRange(shifts, startDate, endDate)
	utils.Logger.Infof("Timeclock returned %d punches, %d within %s..%s", len(shifts), len(filtered), startDate, endDate)
	return filtered, nil
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", utils.ErrTimeclockTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", utils.ErrTimeclockTimeout, err)
	}
	return fmt.Errorf("%w: %v", utils.ErrTimeclockUnreachable, err)
}

func isLongRange(startDate, endDate string) bool {
	start, err1 := time.Parse("2006-01-02", startDate)
	end, err2 := time.Parse("2006-01-02", endDate)
	if err1 != nil || err2 != nil {
		return false
	}
	return end.Sub(start) > time.Duration(constants.LongRangeDays)*24*time.Hour
}

func priorMonday(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	daysSinceMonday := (int(d.Weekday()) - int(time.Monday) + 7) % 7
	return d.AddDate(0, 0, -daysSinceMonday).Format("2006-01-02")
}

func filterByDateRange(shifts []ShiftDisplay, startDate, endDate string) []ShiftDisplay {
	out := make([]ShiftDisplay, 0, len(shifts))
	for _, s := range shifts {
		date, err := utils.NormalizeDate(s.ClockedInDatePacific)
		if err != nil {
			utils.Logger.Warnf("Skipping punch for %s: unparseable date %q", s.UserName, s.ClockedInDatePacific)
			continue
		}
		if date >= startDate && date <= endDate {
			out = append(out, s)
		}
	}
	return out
}
