package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/salesops/kpireport/internal/domain"
	"github.com/salesops/kpireport/internal/repository"
)

type taskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) ListCompleted(ctx context.Context, from, to time.Time) ([]domain.TaskRow, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	query := `
		SELECT assignee, title, completed_at, outcome
		FROM planfix_tasks
		WHERE removed = false
		  AND completed_at IS NOT NULL
		  AND completed_at >= $1
		  AND completed_at < $2
	`

	var rows []domain.TaskRow
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("error listing completed tasks: %w", err)
	}

	log.Debug().
		Time("from", from).
		Time("to", to).
		Int("tasks", len(rows)).
		Msg("completed tasks fetched")
	return rows, nil
}
