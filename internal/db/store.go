package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when no job matches the requested id.
	ErrNotFound = errors.New("print job not found")
	// ErrConflict is returned when a job id already exists. With random
	// uuid ids this should never happen in practice.
	ErrConflict = errors.New("print job id already exists")
)

// Store is the durable key-value mapping from job id to payload. It is
// constructed once at process start and injected into everything that
// needs persistence; there is no package-level handle.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

// PutJob inserts a new record. Jobs are append-only: there is no update
// or delete path.
func (s *Store) PutJob(ctx context.Context, job *PrintJob) error {
	_, err := s.db.ExecContext(ctx, InsertJob, job.ID, job.DataJSON, job.CreatedAt)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("%w: %s", ErrConflict, job.ID)
		}
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*PrintJob, error) {
	j := &PrintJob{}
	err := s.db.QueryRowContext(ctx, GetJobByID, id).Scan(&j.ID, &j.DataJSON, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// CountJobs reports the number of persisted jobs. It doubles as the
// store reachability probe for the health endpoint.
func (s *Store) CountJobs(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, CountJobs).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}
