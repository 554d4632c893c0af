package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/salesops/kpireport/internal/domain"
	"github.com/salesops/kpireport/internal/repository"
)

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) ListActive(ctx context.Context) ([]domain.ClientRow, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	// Lifecycle dates are text columns written by the sync, so the date
	// range filter lives in the aggregator, not here.
	query := `
		SELECT manager, date_new, date_in_progress, date_acquired
		FROM planfix_clients
		WHERE removed = false
	`

	var rows []domain.ClientRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}

	log.Debug().Int("clients", len(rows)).Msg("client records fetched")
	return rows, nil
}
