// Command seeddemo generates a deterministic demo community fixture using the
// real assessment engine, so demo dashboards show data the pipeline would
// actually produce. A frozen clock and a seeded RNG make repeated runs
// byte-identical for the same flags.
//
// Usage:
//
//	go run ./cmd/seeddemo -out data/demo/community.json -count 25 -seed 42 \
//	  -city Pune -state Maharashtra
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/monsoonworks/rainharvest-service/internal/adapter/memstore"
	"github.com/monsoonworks/rainharvest-service/internal/domain"
	"github.com/monsoonworks/rainharvest-service/internal/engine"
	"github.com/monsoonworks/rainharvest-service/internal/observability"
)

// fixture is the JSON document written for demo frontends: the raw records,
// the aggregated community view, and a jittered monthly series for charts.
type fixture struct {
	Assessments    []domain.Assessment  `json:"assessments"`
	Community      domain.CommunityView `json:"community"`
	DisplayMonthly [12]int64            `json:"display_monthly_liters"`
}

var roofTypes = []domain.RoofType{domain.RoofConcrete, domain.RoofMetal, domain.RoofTiled, domain.RoofOther}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the demo fixture JSON")
	count := flag.Int("count", 25, "number of demo assessments to generate")
	seed := flag.Int64("seed", 42, "RNG seed for roof variety and display jitter")
	city := flag.String("city", "Pune", "demo neighborhood city")
	state := flag.String("state", "Maharashtra", "demo neighborhood state")
	lat := flag.Float64("lat", 18.5204, "base latitude for demo rooftops")
	lon := flag.Float64("lon", 73.8567, "base longitude for demo rooftops")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *count < 1 {
		return fmt.Errorf("-count must be at least 1")
	}

	// Freeze time so record IDs differ but timestamps reproduce exactly.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	rng := rand.New(rand.NewSource(*seed))
	store := memstore.New()
	assessor := engine.New(nil, store, nil, discardLogger(), observability.NewMetricsForTesting())

	ctx := context.Background()
	var records []domain.Assessment
	for i := 0; i < *count; i++ {
		input := domain.AssessmentInput{
			UserID:    fmt.Sprintf("demo-user-%03d", i+1),
			UserEmail: fmt.Sprintf("demo%03d@example.org", i+1),
			Location: domain.Location{
				Latitude:  *lat + (rng.Float64()-0.5)*0.02,
				Longitude: *lon + (rng.Float64()-0.5)*0.02,
				City:      *city,
				State:     *state,
				Country:   "India",
			},
			RoofAreaM2:     40 + rng.Float64()*260,
			RoofType:       roofTypes[rng.Intn(len(roofTypes))],
			WaterDemandLPD: 150 + rng.Float64()*450,
		}
		record, err := assessor.ComputeAssessment(ctx, input)
		if err != nil {
			return fmt.Errorf("computing demo assessment %d: %w", i+1, err)
		}
		records = append(records, record)
	}

	neighborhoodID := records[0].NeighborhoodID
	view, err := assessor.ComputeCommunityView(ctx, neighborhoodID, records[0].UserID)
	if err != nil {
		return fmt.Errorf("aggregating demo community: %w", err)
	}

	fix := fixture{
		Assessments:    records,
		Community:      view,
		DisplayMonthly: domain.JitterMonthly(view.MonthlyTotalsLiters, *seed, 0.1),
	}

	if err := writeJSON(*out, fix); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}

	log.Printf("wrote %d assessments for neighborhood %s: %s", len(records), neighborhoodID, *out)
	log.Printf("community total: %d liters, top score: %d", view.TotalLiters, view.Entries[0].Score)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
