package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orrn/printbridge/internal/db"
)

// viewPath is the fixed path of the human-facing print page.
const viewPath = "/view"

var (
	ErrNoItems     = errors.New("submission contains no label items")
	ErrEmptyMarkup = errors.New("label item has no markup content")
)

// JobService turns a validated submission into a persisted job and a
// caller-facing view link.
type JobService struct {
	store *db.Store
}

func NewJobService(store *db.Store) *JobService {
	return &JobService{store: store}
}

// CreateJob validates the items, assigns a fresh id and persists the
// submission. One durable write, no other side effects.
func (s *JobService) CreateJob(ctx context.Context, items []LabelItem) (*db.PrintJob, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	dataJSON, err := json.Marshal(Submission{Data: items})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize submission: %w", err)
	}

	job := &db.PrintJob{
		ID:        uuid.NewString(),
		DataJSON:  string(dataJSON),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.PutJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*db.PrintJob, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", db.ErrNotFound)
	}
	return s.store.GetJob(ctx, id)
}

func (s *JobService) CountJobs(ctx context.Context) (int64, error) {
	return s.store.CountJobs(ctx)
}

// ViewURL builds the shareable link for a job from the externally
// reachable base address.
func ViewURL(baseURL, jobID string) string {
	return fmt.Sprintf("%s%s?id=%s", strings.TrimRight(baseURL, "/"), viewPath, jobID)
}

func validateItems(items []LabelItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for i, item := range items {
		if len(item) == 0 {
			return fmt.Errorf("%w: item %d", ErrEmptyMarkup, i)
		}
		for field, markup := range item {
			if strings.TrimSpace(markup) == "" {
				return fmt.Errorf("%w: item %d field %q", ErrEmptyMarkup, i, field)
			}
		}
	}
	return nil
}
