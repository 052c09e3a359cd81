// Package engine orchestrates the assessment pipeline: climate resolution,
// harvest calculation, the derived sizing/cost/impact stages, scoring, and
// community aggregation. It owns the store and publisher boundaries; the
// numeric stages themselves live in the domain package.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/monsoonworks/rainharvest-service/internal/domain"
	"github.com/monsoonworks/rainharvest-service/internal/observability"
)

// AssessmentStore persists and retrieves assessment records. Store failures
// propagate to the caller; the engine cannot serve community views without it.
type AssessmentStore interface {
	Save(ctx context.Context, a domain.Assessment) error
	FindByNeighborhood(ctx context.Context, neighborhoodID string) ([]domain.Assessment, error)
}

// Pinger is optionally implemented by stores that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// EventPublisher emits completed assessments to downstream consumers.
// Publishing is best-effort; failures are logged and counted, never surfaced.
type EventPublisher interface {
	PublishAssessment(ctx context.Context, a domain.Assessment) error
}

// Assessor runs the full calculation chain per submission. It is stateless
// across requests; concurrent invocations are independent.
type Assessor struct {
	climate   domain.ClimateDataSource // nil disables external enrichment
	store     AssessmentStore
	publisher EventPublisher // nil disables event publishing
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates an Assessor. Pass a nil climate source or publisher to disable
// the corresponding integration.
func New(climate domain.ClimateDataSource, store AssessmentStore, publisher EventPublisher, logger *slog.Logger, metrics *observability.Metrics) *Assessor {
	return &Assessor{
		climate:   climate,
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness reports whether the engine can serve traffic. A store that
// supports pinging is consulted; otherwise a configured store is enough.
func (a *Assessor) CheckReadiness(ctx context.Context) error {
	if a.store == nil {
		return errors.New("assessment store not configured")
	}
	if p, ok := a.store.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("assessment store unreachable: %w", err)
		}
	}
	return nil
}

// ComputeAssessment runs the full pipeline for one submission and persists the
// resulting record. Degenerate numeric input produces a zero-valued record,
// not an error; only store failures are returned.
func (a *Assessor) ComputeAssessment(ctx context.Context, input domain.AssessmentInput) (domain.Assessment, error) {
	start := time.Now()

	climate := domain.ResolveClimate(ctx, input.Location.Latitude, input.Location.Longitude, a.climate, a.logger)
	a.metrics.ClimateLookups.WithLabelValues(climate.Source).Inc()

	harvest := domain.ComputeHarvest(input.RoofAreaM2, input.RoofType, climate.MonthlyRainfallMm)
	system := domain.RecommendSystem(harvest.AnnualLiters, input.WaterDemandLPD, input.RoofAreaM2)
	costs := domain.EstimateCosts(system.Tier, input.RoofAreaM2, harvest.AnnualLiters)
	environmental := domain.EstimateImpact(harvest.AnnualLiters)
	recharge := domain.SizeRechargeStructures(input.RoofAreaM2, climate.PercolationRate, harvest.AnnualLiters)
	score := domain.ScoreSustainability(input.RoofAreaM2, input.WaterDemandLPD, climate.AnnualRainfallMm, harvest.AnnualLiters, environmental.WaterSavedLiters)
	achievements := domain.EvaluateAchievements(environmental.WaterSavedLiters, score, input.RoofAreaM2)

	record := domain.Assessment{
		ID:             domain.NewAssessmentID(),
		UserID:         input.UserID,
		UserEmail:      input.UserEmail,
		Location:       input.Location,
		RoofAreaM2:     input.RoofAreaM2,
		RoofType:       input.RoofType,
		WaterDemandLPD: input.WaterDemandLPD,
		Climate:        climate,
		Harvest:        harvest,
		System:         system,
		Costs:          costs,
		Environmental:  environmental,
		Recharge:       recharge,
		Score:          score,
		Achievements:   achievements,
		NeighborhoodID: domain.NeighborhoodID(input.Location),
		CreatedAt:      domain.Now(),
	}

	if err := a.store.Save(ctx, record); err != nil {
		a.metrics.StoreErrors.Inc()
		return domain.Assessment{}, fmt.Errorf("save assessment: %w", err)
	}

	if a.publisher != nil {
		if err := a.publisher.PublishAssessment(ctx, record); err != nil {
			a.metrics.PublishErrors.Inc()
			a.logger.Warn("assessment event publish failed",
				"assessment_id", record.ID,
				"neighborhood_id", record.NeighborhoodID,
				"error", err,
			)
		}
	}

	a.metrics.AssessmentsComputed.Inc()
	a.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())

	a.logger.Info("assessment computed",
		"assessment_id", record.ID,
		"neighborhood_id", record.NeighborhoodID,
		"climate_source", climate.Source,
		"annual_liters", harvest.AnnualLiters,
		"score", score,
	)
	return record, nil
}

// ComputeCommunityView aggregates a neighborhood's assessments into the ranked
// leaderboard. An empty neighborhood yields an explicit empty view; only store
// failures are returned.
func (a *Assessor) ComputeCommunityView(ctx context.Context, neighborhoodID, requestingUserID string) (domain.CommunityView, error) {
	assessments, err := a.store.FindByNeighborhood(ctx, neighborhoodID)
	if err != nil {
		a.metrics.StoreErrors.Inc()
		return domain.CommunityView{}, fmt.Errorf("load neighborhood %s: %w", neighborhoodID, err)
	}

	view := domain.AggregateCommunity(assessments, requestingUserID)
	a.metrics.CommunityViews.Inc()
	return view, nil
}
