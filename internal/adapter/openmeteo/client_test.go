package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monsoonworks/rainharvest-service/internal/domain"
	"github.com/monsoonworks/rainharvest-service/internal/observability"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(time.Second, observability.NewMetricsForTesting(), testLogger())
	client.baseURL = server.URL
	return client
}

func frozenAt2026(t *testing.T) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func TestFetchMonthlyRainfall_BucketsByMonth(t *testing.T) {
	frozenAt2026(t)

	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"start_date": r.URL.Query().Get("start_date"),
			"end_date":   r.URL.Query().Get("end_date"),
			"daily":      r.URL.Query().Get("daily"),
		}
		w.Write([]byte(`{
			"daily": {
				"time": ["2025-01-10", "2025-01-20", "2025-06-15", "2025-12-31"],
				"precipitation_sum": [5.5, 4.5, 120.0, 2.0]
			}
		}`))
	})

	obs, err := client.FetchMonthlyRainfall(context.Background(), 19.0760, 72.8777)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-01", gotQuery["start_date"], "queries the last full calendar year")
	assert.Equal(t, "2025-12-31", gotQuery["end_date"])
	assert.Equal(t, "precipitation_sum", gotQuery["daily"])

	assert.InDelta(t, 10.0, obs.MonthlyRainfallMm[0], 1e-9)
	assert.InDelta(t, 120.0, obs.MonthlyRainfallMm[5], 1e-9)
	assert.InDelta(t, 2.0, obs.MonthlyRainfallMm[11], 1e-9)
	assert.InDelta(t, 132.0, obs.AnnualRainfallMm, 1e-9)
	assert.Equal(t, "Observed 2025", obs.Label)
	assert.InDelta(t, 0.9, obs.Confidence, 1e-9)
}

func TestFetchMonthlyRainfall_SkipsNullDays(t *testing.T) {
	frozenAt2026(t)

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"daily": {
				"time": ["2025-03-01", "2025-03-02", "2025-03-03"],
				"precipitation_sum": [10.0, null, 6.0]
			}
		}`))
	})

	obs, err := client.FetchMonthlyRainfall(context.Background(), 18.52, 73.85)
	require.NoError(t, err)

	assert.InDelta(t, 16.0, obs.MonthlyRainfallMm[2], 1e-9)
	assert.InDelta(t, 16.0, obs.AnnualRainfallMm, 1e-9)
}

func TestFetchMonthlyRainfall_APIError(t *testing.T) {
	frozenAt2026(t)

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.FetchMonthlyRainfall(context.Background(), 18.52, 73.85)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestFetchMonthlyRainfall_MalformedResponses(t *testing.T) {
	frozenAt2026(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>gateway error</html>`},
		{"empty series", `{"daily": {"time": [], "precipitation_sum": []}}`},
		{"length mismatch", `{"daily": {"time": ["2025-01-01", "2025-01-02"], "precipitation_sum": [1.0]}}`},
		{"bad date", `{"daily": {"time": ["January 1st"], "precipitation_sum": [1.0]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.FetchMonthlyRainfall(context.Background(), 18.52, 73.85)

			assert.Error(t, err)
		})
	}
}

func TestFetchMonthlyRainfall_ContextCancelled(t *testing.T) {
	frozenAt2026(t)

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"daily": {"time": ["2025-01-01"], "precipitation_sum": [1.0]}}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchMonthlyRainfall(ctx, 18.52, 73.85)

	assert.Error(t, err)
}
