package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mediekroken/digisvar/internal/config"
)

// SQLStore persists route events to SQLite or Postgres through database/sql.
type SQLStore struct {
	db       *sql.DB
	postgres bool
}

const schema = `
CREATE TABLE IF NOT EXISTS route_events (
	id          TEXT PRIMARY KEY,
	route       TEXT NOT NULL,
	intent      TEXT,
	topic_hint  TEXT,
	question    TEXT NOT NULL,
	faq_id      TEXT,
	latency_ms  INTEGER NOT NULL,
	occurred_at TIMESTAMP NOT NULL
)`

// Open creates a SQL store for the configured analytics driver. The schema
// is created on open. Returns (nil, nil) for the "none" driver.
func Open(cfg config.AnalyticsConfig) (*SQLStore, error) {
	var (
		db       *sql.DB
		postgres bool
		err      error
	)

	switch cfg.Driver {
	case "none", "":
		return nil, nil
	case "sqlite":
		db, err = sql.Open("sqlite3", cfg.SQLite.Path)
	case "postgres":
		postgres = true
		db, err = sql.Open("postgres", cfg.Postgres.DSN)
		if err == nil {
			db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
			db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
			db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		}
	default:
		return nil, fmt.Errorf("unknown analytics driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open analytics store: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping analytics store: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create analytics schema: %w", err)
	}

	return &SQLStore{db: db, postgres: postgres}, nil
}

// NewSQLStore wraps an existing database handle and ensures the schema.
func NewSQLStore(db *sql.DB, postgres bool) (*SQLStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create analytics schema: %w", err)
	}
	return &SQLStore{db: db, postgres: postgres}, nil
}

// Record inserts one route event.
func (s *SQLStore) Record(ctx context.Context, event RouteEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	query := `INSERT INTO route_events (id, route, intent, topic_hint, question, faq_id, latency_ms, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if s.postgres {
		query = `INSERT INTO route_events (id, route, intent, topic_hint, question, faq_id, latency_ms, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	}

	_, err := s.db.ExecContext(ctx, query,
		event.ID.String(), event.Route, event.Intent, event.TopicHint,
		event.Question, event.FaqID, event.LatencyMs, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("insert route event: %w", err)
	}
	return nil
}

// CountByRoute returns the number of recorded events per route.
func (s *SQLStore) CountByRoute(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT route, COUNT(*) FROM route_events GROUP BY route`)
	if err != nil {
		return nil, fmt.Errorf("count route events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var route string
		var count int
		if err := rows.Scan(&route, &count); err != nil {
			return nil, fmt.Errorf("scan route count: %w", err)
		}
		counts[route] = count
	}
	return counts, rows.Err()
}

// Close closes the underlying database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
