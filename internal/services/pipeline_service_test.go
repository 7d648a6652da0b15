package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/threecat/bonus-service/internal/constants"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/repositories"
	"github.com/threecat/bonus-service/internal/timeclock"
	"github.com/threecat/bonus-service/internal/utils"
)

// stubFetcher serves canned punches, optionally blocking until released
// so tests can interleave two in-flight reloads deterministically.
type stubFetcher struct {
	mu      sync.Mutex
	punches []timeclock.ShiftDisplay
	block   chan struct{}
}

func (f *stubFetcher) FetchShiftRange(_ context.Context, _, _ string) ([]timeclock.ShiftDisplay, error) {
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.punches, nil
}

func stubPunches(names ...string) []timeclock.ShiftDisplay {
	unpaid := 0.5
	punches := make([]timeclock.ShiftDisplay, 0, len(names))
	for i, name := range names {
		punches = append(punches, timeclock.ShiftDisplay{
			EmployeeID:           "emp" + name,
			UserName:             name,
			ClockedInPacific:     "10:30 AM",
			ClockedOutPacific:    "6:15 PM",
			ClockedInDatePacific: "2024-06-03",
			NetWorkedHours:       7.25,
			UnpaidBreakHours:     &unpaid,
			BreakPeriods: []timeclock.BreakPeriod{
				{StartTime: "1:00 PM", EndTime: "1:30 PM", IsUnpaid: true, DurationMinutes: 30},
			},
			Role: []string{"Barista", "Shift Lead"}[i%2],
		})
	}
	return punches
}

func newTestPipeline(fetcher PunchFetcher, store repositories.StateStore) (*PipelineService, *EligibilityService, *BonusService) {
	elig := NewEligibilityService()
	bonus := NewBonusService()
	pipeline := NewPipelineService(fetcher, NewOrderService(), elig, bonus, store, PipelineSettings{
		Split:        timeBasedSettings(),
		RatePerDrink: constants.DefaultBonusRatePerDrink,
	})
	return pipeline, elig, bonus
}

func TestReloadSegmentsAndRegeneratesEligibility(t *testing.T) {
	fetcher := &stubFetcher{punches: stubPunches("Alice", "Bob")}
	pipeline, elig, _ := newTestPipeline(fetcher, repositories.NewMemoryStateStore())

	segments, skipped, err := pipeline.Reload(context.Background(), "2024-06-03", "2024-06-03")
	require.NoError(t, err)
	require.Zero(t, skipped)
	require.Len(t, segments, 4) // two swing shifts, two segments each

	require.Len(t, elig.ShiftRecords(), 2)
	require.Len(t, elig.EmployeeRecords(), 4)

	start, end, reloadedAt := pipeline.Window()
	require.Equal(t, "2024-06-03", start)
	require.Equal(t, "2024-06-03", end)
	require.WithinDuration(t, time.Now().UTC(), reloadedAt, time.Minute)
}

func TestReloadEmptyWindowReportsNoData(t *testing.T) {
	fetcher := &stubFetcher{}
	pipeline, _, _ := newTestPipeline(fetcher, repositories.NewMemoryStateStore())

	_, _, err := pipeline.Reload(context.Background(), "2024-06-03", "2024-06-03")
	require.ErrorIs(t, err, utils.ErrNoTimesheetData)
}

func TestReloadSupersededByNewerGeneration(t *testing.T) {
	release := make(chan struct{})
	fetcher := &stubFetcher{punches: stubPunches("Alice"), block: release}
	pipeline, _, _ := newTestPipeline(fetcher, repositories.NewMemoryStateStore())

	firstErr := make(chan error, 1)
	go func() {
		_, _, err := pipeline.Reload(context.Background(), "2024-06-01", "2024-06-02")
		firstErr <- err
	}()

	// Wait for the first reload to be in flight, then run a second one
	// to completion.
	time.Sleep(20 * time.Millisecond)
	fetcher.mu.Lock()
	fetcher.block = nil
	fetcher.punches = stubPunches("Alice", "Bob", "Carol")
	fetcher.mu.Unlock()

	_, _, err := pipeline.Reload(context.Background(), "2024-06-03", "2024-06-03")
	require.NoError(t, err)

	// Release the first fetch; its commit must be refused.
	close(release)
	require.ErrorIs(t, <-firstErr, utils.ErrStaleReload)

	// The committed state is the second reload's.
	start, _, _ := pipeline.Window()
	require.Equal(t, "2024-06-03", start)
	require.Len(t, pipeline.Segments(), 6)
}

func TestIngestOrdersRecalculates(t *testing.T) {
	fetcher := &stubFetcher{punches: stubPunches("Alice", "Bob")}
	pipeline, _, bonus := newTestPipeline(fetcher, repositories.NewMemoryStateStore())

	_, _, err := pipeline.Reload(context.Background(), "2024-06-03", "2024-06-03")
	require.NoError(t, err)

	orderCSV := "Order #,Ordered At,Status,Customer,Items,Total\n" +
		"1,11:00 AM 6/3/2024,Completed,A,\"Tea; Tea\",$8\n" +
		"2,3:00 PM 6/3/2024,Completed,B,Tea,$4\n"
	accepted, dropped, err := pipeline.IngestOrders(context.Background(), strings.NewReader(orderCSV))
	require.NoError(t, err)
	require.Equal(t, 2, accepted)
	require.Zero(t, dropped)

	totals := pipeline.OrderTotals()
	require.Equal(t, 2, totals.Count(models.ShiftKey{Date: "2024-06-03", Shift: models.ShiftMorning}))
	require.Equal(t, 1, totals.Count(models.ShiftKey{Date: "2024-06-03", Shift: models.ShiftNight}))

	allocations := bonus.Allocations("")
	require.Len(t, allocations, 4)
}

func TestPersistAndRestoreRoundTrip(t *testing.T) {
	store := repositories.NewMemoryStateStore()
	fetcher := &stubFetcher{punches: stubPunches("Alice", "Bob")}
	pipeline, _, _ := newTestPipeline(fetcher, store)

	_, _, err := pipeline.Reload(context.Background(), "2024-06-03", "2024-06-03")
	require.NoError(t, err)
	pipeline.SetDayFilter(context.Background(), "2024-06-03", false, "Holiday")

	// A fresh pipeline over the same store comes back with everything.
	restored, elig, bonus := newTestPipeline(&stubFetcher{}, store)
	require.NoError(t, restored.Restore(context.Background()))

	require.Len(t, restored.Segments(), 4)
	require.Len(t, elig.ShiftRecords(), 2)
	filters := bonus.DayFilters()
	require.Len(t, filters, 1)
	require.Equal(t, "Holiday", filters[0].Reason)

	start, end, _ := restored.Window()
	require.Equal(t, "2024-06-03", start)
	require.Equal(t, "2024-06-03", end)
}

func TestUpdateSettingsRederivesSegments(t *testing.T) {
	fetcher := &stubFetcher{punches: stubPunches("Alice")}
	pipeline, _, _ := newTestPipeline(fetcher, repositories.NewMemoryStateStore())

	_, _, err := pipeline.Reload(context.Background(), "2024-06-03", "2024-06-03")
	require.NoError(t, err)
	require.Len(t, pipeline.Segments(), 2) // swing shift across 14:00

	// Move the cutoff before the clock-in: the punch becomes pure night.
	settings := pipeline.Settings()
	settings.Split.Method = models.SplitCustom
	settings.Split.CustomCutoff = 10 * 60
	pipeline.UpdateSettings(context.Background(), settings)

	segments := pipeline.Segments()
	require.Len(t, segments, 1)
	require.Equal(t, models.ShiftNight, segments[0].Shift)
	require.Equal(t, settings, pipeline.Settings())
}
