package timeclock

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/threecat/bonus-service/internal/utils"
)

func testClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		locationID: 435860,
		httpClient: &http.Client{Timeout: 2 * time.Second},
	}
}

func TestFetchShiftRangeFiltersToWindow(t *testing.T) {
	var gotReq shiftRangeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/time-punch/shifts-display", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))

		_ = json.NewEncoder(w).Encode([]ShiftDisplay{
			{EmployeeID: "emp1", UserName: "Alice", ClockedInDatePacific: "6/3/2024"},
			{EmployeeID: "emp2", UserName: "Bob", ClockedInDatePacific: "6/10/2024"},
		})
	}))
	defer server.Close()

	shifts, err := testClient(server.URL).FetchShiftRange(context.Background(), "2024-06-03", "2024-06-04")
	require.NoError(t, err)
	require.Equal(t, 435860, gotReq.LocationID)
	require.Equal(t, "2024-06-03", gotReq.StartDate)

	// The out-of-window punch is filtered out.
	require.Len(t, shifts, 1)
	require.Equal(t, "Alice", shifts[0].UserName)
}

func TestFetchShiftRangeLongWindowStartsPriorMonday(t *testing.T) {
	var gotReq shiftRangeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))
		_ = json.NewEncoder(w).Encode([]ShiftDisplay{})
	}))
	defer server.Close()

	// 2024-06-05 is a Wednesday; a 10-day window fetches from Monday
	// 2024-06-03 so weekly overtime annotations stay correct.
	_, err := testClient(server.URL).FetchShiftRange(context.Background(), "2024-06-05", "2024-06-15")
	require.NoError(t, err)
	require.Equal(t, "2024-06-03", gotReq.StartDate)
	require.Equal(t, "2024-06-15", gotReq.EndDate)
}

func TestFetchShiftRangeClassifiesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchShiftRange(context.Background(), "2024-06-03", "2024-06-04")
	require.ErrorIs(t, err, utils.ErrTimeclockServer)
}

func TestFetchShiftRangeClassifiesBadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad range", http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchShiftRange(context.Background(), "2024-06-03", "2024-06-04")
	require.ErrorIs(t, err, utils.ErrTimeclockRequest)
}

func TestFetchShiftRangeClassifiesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := testClient(server.URL)
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.FetchShiftRange(context.Background(), "2024-06-03", "2024-06-04")
	require.ErrorIs(t, err, utils.ErrTimeclockTimeout)
}

func TestFetchShiftRangeClassifiesUnreachable(t *testing.T) {
	// A closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testClient(server.URL).FetchShiftRange(context.Background(), "2024-06-03", "2024-06-04")
	require.ErrorIs(t, err, utils.ErrTimeclockUnreachable)
}

func TestFetchShiftRangeClassifiesMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchShiftRange(context.Background(), "2024-06-03", "2024-06-04")
	require.ErrorIs(t, err, utils.ErrTimeclockServer)
}
