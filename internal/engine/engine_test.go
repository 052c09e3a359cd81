package engine_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monsoonworks/rainharvest-service/internal/domain"
	"github.com/monsoonworks/rainharvest-service/internal/engine"
	"github.com/monsoonworks/rainharvest-service/internal/observability"
)

// --- mocks ---

type mockStore struct {
	saved      []domain.Assessment
	saveErr    error
	findResult []domain.Assessment
	findErr    error
	pingErr    error
	pinged     int
}

func (m *mockStore) Save(_ context.Context, a domain.Assessment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockStore) FindByNeighborhood(_ context.Context, _ string) ([]domain.Assessment, error) {
	return m.findResult, m.findErr
}

func (m *mockStore) Ping(_ context.Context) error {
	m.pinged++
	return m.pingErr
}

// noPingStore satisfies AssessmentStore without a Ping method.
type noPingStore struct{}

func (noPingStore) Save(context.Context, domain.Assessment) error { return nil }

func (noPingStore) FindByNeighborhood(context.Context, string) ([]domain.Assessment, error) {
	return nil, nil
}

type mockPublisher struct {
	published []domain.Assessment
	err       error
}

func (m *mockPublisher) PublishAssessment(_ context.Context, a domain.Assessment) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, a)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMetrics() *observability.Metrics {
	// Fresh registry to avoid "already registered" panics across tests.
	return observability.NewMetricsForTesting()
}

func validInput() domain.AssessmentInput {
	return domain.AssessmentInput{
		UserID: "u-1",
		Location: domain.Location{
			Latitude:  19.0760,
			Longitude: 72.8777,
			City:      "Mumbai",
			State:     "Maharashtra",
		},
		RoofAreaM2:     120,
		RoofType:       domain.RoofConcrete,
		WaterDemandLPD: 400,
	}
}

// --- tests ---

func TestComputeAssessment_FullPipeline(t *testing.T) {
	frozen := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	store := &mockStore{}
	pub := &mockPublisher{}
	assessor := engine.New(nil, store, pub, discardLogger(), newTestMetrics())

	record, err := assessor.ComputeAssessment(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "u-1", record.UserID)
	assert.Equal(t, frozen, record.CreatedAt)
	assert.NotEmpty(t, record.NeighborhoodID)

	// Every derived stage must be populated from a single pass.
	assert.Equal(t, "Mumbai", record.Climate.ZoneLabel)
	assert.Positive(t, record.Harvest.AnnualLiters)
	assert.NotEmpty(t, record.System.Tier)
	assert.Positive(t, record.Costs.TotalCost)
	assert.Positive(t, record.Environmental.WaterSavedLiters)
	assert.NotEmpty(t, record.Recharge.Structures)
	assert.GreaterOrEqual(t, record.Score, 0)
	assert.LessOrEqual(t, record.Score, 100)
	assert.Len(t, record.Achievements, 5)

	require.Len(t, store.saved, 1)
	assert.Equal(t, record.ID, store.saved[0].ID)
	require.Len(t, pub.published, 1)
	assert.Equal(t, record.ID, pub.published[0].ID)
}

func TestComputeAssessment_DegenerateInputStillSucceeds(t *testing.T) {
	store := &mockStore{}
	assessor := engine.New(nil, store, nil, discardLogger(), newTestMetrics())

	record, err := assessor.ComputeAssessment(context.Background(), domain.AssessmentInput{})
	require.NoError(t, err, "zero inputs degrade to a zero-valued record, never an error")

	assert.Equal(t, int64(0), record.Harvest.AnnualLiters)
	assert.Equal(t, 0, record.Score)
	assert.False(t, record.System.Recommended)
	assert.Len(t, store.saved, 1)
}

func TestComputeAssessment_StoreErrorPropagates(t *testing.T) {
	store := &mockStore{saveErr: errors.New("connection refused")}
	assessor := engine.New(nil, store, nil, discardLogger(), newTestMetrics())

	_, err := assessor.ComputeAssessment(context.Background(), validInput())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "save assessment")
}

func TestComputeAssessment_PublishFailureIsNonFatal(t *testing.T) {
	store := &mockStore{}
	pub := &mockPublisher{err: errors.New("broker down")}
	assessor := engine.New(nil, store, pub, discardLogger(), newTestMetrics())

	record, err := assessor.ComputeAssessment(context.Background(), validInput())

	require.NoError(t, err, "event publishing is best-effort")
	assert.NotEmpty(t, record.ID)
	assert.Len(t, store.saved, 1)
}

func TestComputeCommunityView(t *testing.T) {
	store := &mockStore{
		findResult: []domain.Assessment{
			{ID: "a-1", UserID: "u-1", RoofAreaM2: 500, Harvest: domain.HarvestResult{AnnualLiters: 1000}},
			{ID: "a-2", UserID: "u-2", RoofAreaM2: 100, Harvest: domain.HarvestResult{AnnualLiters: 2000}},
		},
	}
	assessor := engine.New(nil, store, nil, discardLogger(), newTestMetrics())

	view, err := assessor.ComputeCommunityView(context.Background(), "hood-1", "u-2")
	require.NoError(t, err)

	require.Len(t, view.Entries, 2)
	assert.Equal(t, "a-1", view.Entries[0].AssessmentID)
	assert.Equal(t, 2, view.UserRank)
	assert.Equal(t, int64(3000), view.TotalLiters)
}

func TestComputeCommunityView_EmptyNeighborhood(t *testing.T) {
	assessor := engine.New(nil, &mockStore{}, nil, discardLogger(), newTestMetrics())

	view, err := assessor.ComputeCommunityView(context.Background(), "empty", "u-1")

	require.NoError(t, err, "empty neighborhoods are a valid, empty view")
	assert.Empty(t, view.Entries)
	assert.Equal(t, 0, view.UserRank)
}

func TestComputeCommunityView_StoreErrorPropagates(t *testing.T) {
	store := &mockStore{findErr: errors.New("timeout")}
	assessor := engine.New(nil, store, nil, discardLogger(), newTestMetrics())

	_, err := assessor.ComputeCommunityView(context.Background(), "hood-1", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "hood-1")
}

func TestCheckReadiness(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		assessor := engine.New(nil, nil, nil, discardLogger(), newTestMetrics())
		assert.Error(t, assessor.CheckReadiness(context.Background()))
	})

	t.Run("pinging store healthy", func(t *testing.T) {
		store := &mockStore{}
		assessor := engine.New(nil, store, nil, discardLogger(), newTestMetrics())
		assert.NoError(t, assessor.CheckReadiness(context.Background()))
		assert.Equal(t, 1, store.pinged)
	})

	t.Run("store without ping is assumed healthy", func(t *testing.T) {
		assessor := engine.New(nil, noPingStore{}, nil, discardLogger(), newTestMetrics())
		assert.NoError(t, assessor.CheckReadiness(context.Background()))
	})

	t.Run("pinging store unreachable", func(t *testing.T) {
		store := &mockStore{pingErr: errors.New("no route to host")}
		assessor := engine.New(nil, store, nil, discardLogger(), newTestMetrics())
		err := assessor.CheckReadiness(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unreachable")
	})
}
