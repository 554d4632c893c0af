// Package kpi implements the coefficient and bonus computation: plan
// weighting, actuals aggregation over the synced CRM tables, and the
// capped, weighted, rounded coefficient math.
package kpi

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/salesops/kpireport/internal/domain"
	"github.com/salesops/kpireport/internal/repository"
)

// LoadPlan fetches the kpi_metrics row for the period and derives the
// per-indicator weights. Returns domain.ErrPlanNotFound when the period has
// no plan; the caller must not fall back to zero targets.
func LoadPlan(ctx context.Context, repo repository.PlanRepository, period domain.Period) (*domain.Plan, error) {
	row, err := repo.GetPlan(ctx, period.Month, period.Year)
	if err != nil {
		return nil, err
	}
	return BuildPlan(row, period), nil
}

// BuildPlan turns a raw plan row into weighted entries. An indicator is
// active only when its target is non-null and positive; a zero target would
// make the coefficient ratio undefined, so it deactivates the indicator the
// same way null does. Weights are an equal split over the active entries.
func BuildPlan(row *domain.PlanRow, period domain.Period) *domain.Plan {
	plan := &domain.Plan{
		Period:  period,
		Entries: make(map[domain.Indicator]domain.PlanEntry, len(domain.PlanIndicators)),
	}
	if row.BaseBonus.Valid {
		plan.BaseBonus = decimal.NewFromFloat(row.BaseBonus.Float64)
	}

	active := 0
	for _, ind := range domain.PlanIndicators {
		target := row.TargetFor(ind)
		entry := domain.PlanEntry{Indicator: ind, Weight: decimal.Zero}
		if target.Valid {
			entry.Value = decimal.NewFromFloat(target.Float64)
			entry.Active = entry.Value.IsPositive()
		}
		if entry.Active {
			active++
		}
		plan.Entries[ind] = entry
	}

	if active == 0 {
		return plan
	}

	weight := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(active)))
	for ind, entry := range plan.Entries {
		if entry.Active {
			entry.Weight = weight
			plan.Entries[ind] = entry
		}
	}
	return plan
}
