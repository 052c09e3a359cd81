// Package openmeteo implements domain.ClimateDataSource against the
// Open-Meteo historical weather archive. The client fetches daily
// precipitation sums for the most recent full calendar year and buckets them
// into a monthly rainfall profile.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/monsoonworks/rainharvest-service/internal/domain"
	"github.com/monsoonworks/rainharvest-service/internal/observability"
)

// observedConfidence is reported for profiles built from archive observations.
// Higher than any static tier: this is measured data for the exact coordinate.
const observedConfidence = 0.9

// Client implements domain.ClimateDataSource using the Open-Meteo archive API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo archive client. The API needs no credential;
// the timeout bounds each request.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://archive-api.open-meteo.com/v1/archive",
		metrics: metrics,
		logger:  logger,
	}
}

// FetchMonthlyRainfall retrieves last year's daily precipitation for a
// coordinate and aggregates it by month.
func (c *Client) FetchMonthlyRainfall(ctx context.Context, lat, lon float64) (domain.ClimateObservation, error) {
	year := domain.Now().UTC().Year() - 1

	params := url.Values{
		"latitude":   {fmt.Sprintf("%.4f", lat)},
		"longitude":  {fmt.Sprintf("%.4f", lon)},
		"start_date": {fmt.Sprintf("%d-01-01", year)},
		"end_date":   {fmt.Sprintf("%d-12-31", year)},
		"daily":      {"precipitation_sum"},
		"timezone":   {"UTC"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.ClimateObservation{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ClimateAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.ClimateObservation{}, fmt.Errorf("archive request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.ClimateObservation{}, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var archive response
	if err := json.NewDecoder(resp.Body).Decode(&archive); err != nil {
		return domain.ClimateObservation{}, fmt.Errorf("decode response: %w", err)
	}

	return bucketByMonth(archive, year)
}

// bucketByMonth sums daily precipitation into twelve monthly totals. Days with
// missing values (null in the feed) are skipped.
func bucketByMonth(archive response, year int) (domain.ClimateObservation, error) {
	days := archive.Daily.Time
	sums := archive.Daily.PrecipitationSum
	if len(days) == 0 || len(days) != len(sums) {
		return domain.ClimateObservation{}, fmt.Errorf("malformed archive response: %d dates, %d values", len(days), len(sums))
	}

	obs := domain.ClimateObservation{
		Label:      fmt.Sprintf("Observed %d", year),
		Confidence: observedConfidence,
	}
	for i, day := range days {
		if sums[i] == nil {
			continue
		}
		t, err := time.Parse("2006-01-02", day)
		if err != nil {
			return domain.ClimateObservation{}, fmt.Errorf("parse archive date %q: %w", day, err)
		}
		obs.MonthlyRainfallMm[t.Month()-1] += *sums[i]
		obs.AnnualRainfallMm += *sums[i]
	}
	return obs, nil
}

// Open-Meteo archive API response types.

type response struct {
	Daily daily `json:"daily"`
}

type daily struct {
	Time             []string   `json:"time"`
	PrecipitationSum []*float64 `json:"precipitation_sum"`
}
