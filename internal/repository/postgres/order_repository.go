package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/salesops/kpireport/internal/domain"
	"github.com/salesops/kpireport/internal/repository"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) ListActive(ctx context.Context) ([]domain.OrderRow, error) {
	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	// Order timestamps and money fields are text exactly as exported by
	// the CRM; parsing them is the aggregator's job.
	query := `
		SELECT manager_id, offer_sent_at, confirmed_at, realized_at,
		       net_value, commission
		FROM planfix_orders
		WHERE removed = false
	`

	var rows []domain.OrderRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}

	log.Debug().Int("orders", len(rows)).Msg("order records fetched")
	return rows, nil
}
