// Package repository defines the read-only query contracts over the store
// populated by the CRM sync. Implementations live in repository/postgres;
// tests substitute in-memory fakes.
package repository

import (
	"context"
	"time"

	"github.com/salesops/kpireport/internal/domain"
)

// PlanRepository loads the monthly plan targets.
type PlanRepository interface {
	// GetPlan returns the kpi_metrics row for (month, year) or
	// domain.ErrPlanNotFound.
	GetPlan(ctx context.Context, month, year int) (*domain.PlanRow, error)
}

// TaskRepository scans synced CRM tasks.
type TaskRepository interface {
	// ListCompleted returns non-deleted tasks completed in [from, to).
	ListCompleted(ctx context.Context, from, to time.Time) ([]domain.TaskRow, error)
}

// ClientRepository scans synced CRM clients.
type ClientRepository interface {
	// ListActive returns all non-deleted client records. Lifecycle dates
	// are text columns, so range filtering happens in the aggregator.
	ListActive(ctx context.Context) ([]domain.ClientRow, error)
}

// OrderRepository scans synced CRM orders.
type OrderRepository interface {
	// ListActive returns all non-deleted order records. Date and money
	// columns are text and get parsed by the aggregator.
	ListActive(ctx context.Context) ([]domain.OrderRow, error)
}
