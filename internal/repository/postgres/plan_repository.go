package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/salesops/kpireport/internal/domain"
	"github.com/salesops/kpireport/internal/repository"
)

type planRepository struct {
	db *DB
}

func NewPlanRepository(db *DB) repository.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) GetPlan(ctx context.Context, month, year int) (*domain.PlanRow, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	// The sync job stores the month as a zero-padded two-digit string.
	query := `
		SELECT month, year, premia,
		       nwi, wtr, psk, kzi, wdm, spt, ofw, zam, prc
		FROM kpi_metrics
		WHERE month = $1 AND year = $2
	`

	var row domain.PlanRow
	if err := r.db.GetContext(ctx, &row, query, fmt.Sprintf("%02d", month), year); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("error loading plan for %02d.%d: %w", month, year, err)
	}

	log.Debug().Int("month", month).Int("year", year).Msg("plan row loaded")
	return &row, nil
}
