// Package postgres persists assessments in PostgreSQL via sqlx. Records are
// stored as JSONB payloads keyed by id and neighborhood, since the engine
// treats the store as opaque CRUD and never queries inside a record.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/monsoonworks/rainharvest-service/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS assessments (
	id              TEXT PRIMARY KEY,
	user_id         TEXT NOT NULL DEFAULT '',
	neighborhood_id TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	payload         JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessments_neighborhood
	ON assessments (neighborhood_id, created_at DESC);
`

// Store is a PostgreSQL-backed assessment store.
type Store struct {
	db *sqlx.DB
}

// Open connects to Postgres, applies the schema, and returns the store.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save inserts an assessment record. IDs are unique per submission, so
// conflicts indicate a programming error and are surfaced.
func (s *Store) Save(ctx context.Context, a domain.Assessment) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, user_id, neighborhood_id, created_at, payload)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.NeighborhoodID, a.CreatedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("insert assessment %s: %w", a.ID, err)
	}
	return nil
}

// FindByNeighborhood returns a neighborhood's assessments, most recent first.
func (s *Store) FindByNeighborhood(ctx context.Context, neighborhoodID string) ([]domain.Assessment, error) {
	var payloads [][]byte
	err := s.db.SelectContext(ctx, &payloads,
		`SELECT payload FROM assessments
		 WHERE neighborhood_id = $1
		 ORDER BY created_at DESC`,
		neighborhoodID,
	)
	if err != nil {
		return nil, fmt.Errorf("select neighborhood %s: %w", neighborhoodID, err)
	}

	assessments := make([]domain.Assessment, 0, len(payloads))
	for _, p := range payloads {
		var a domain.Assessment
		if err := json.Unmarshal(p, &a); err != nil {
			return nil, fmt.Errorf("unmarshal assessment payload: %w", err)
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}

// Ping reports store connectivity for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
