package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	estimationdomain "timeline-ai/backend/internal/features/estimation/domain"
	"timeline-ai/backend/internal/features/jobs/domain"
)

const createJobsTable = `CREATE TABLE IF NOT EXISTS jobs (
	id            UUID PRIMARY KEY,
	file_url      TEXT NOT NULL,
	timeline_json JSONB,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// postgresStore is the JobRepository backed by a pgx connection pool.
type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and makes sure the jobs table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (domain.JobRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := pool.Exec(ctx, createJobsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create jobs table: %w", err)
	}
	log.Info().Msg("Connected to job database")
	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) Insert(ctx context.Context, job *domain.Job) error {
	var timeline any
	if job.TimelineJSON != nil {
		data, err := json.Marshal(job.TimelineJSON)
		if err != nil {
			return fmt.Errorf("failed to marshal timeline: %w", err)
		}
		timeline = string(data)
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO jobs (id, file_url, timeline_json, created_at) VALUES ($1, $2, $3, $4)`,
		job.ID, job.FileURL, timeline, job.CreatedAt)
	return err
}

func (s *postgresStore) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	var (
		job      domain.Job
		timeline []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, file_url, timeline_json, created_at FROM jobs WHERE id = $1`, id).
		Scan(&job.ID, &job.FileURL, &timeline, &job.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(timeline) > 0 {
		job.TimelineJSON = &estimationdomain.ProjectTimeline{}
		if err := json.Unmarshal(timeline, job.TimelineJSON); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stored timeline: %w", err)
		}
	}
	return &job, nil
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}
