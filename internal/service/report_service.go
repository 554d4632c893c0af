package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/salesops/kpireport/internal/cache"
	"github.com/salesops/kpireport/internal/domain"
	"github.com/salesops/kpireport/internal/kpi"
	"github.com/salesops/kpireport/internal/repository"
)

// ReportService runs the full report pipeline: plan load, actuals
// aggregation, coefficient calculation, additional bonus. One invocation is
// one top-to-bottom pass; there is no partial-result mode, a failed query
// fails the whole report.
type ReportService struct {
	plans      repository.PlanRepository
	aggregator *kpi.Aggregator
	managers   []domain.ManagerRef
	cache      cache.ReportCache
}

func NewReportService(
	plans repository.PlanRepository,
	tasks repository.TaskRepository,
	clients repository.ClientRepository,
	orders repository.OrderRepository,
	managers []domain.ManagerRef,
	cacheImpl cache.ReportCache,
) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ReportService{
		plans:      plans,
		aggregator: kpi.NewAggregator(tasks, clients, orders, managers),
		managers:   managers,
		cache:      cacheImpl,
	}
}

// Managers returns the configured registry.
func (s *ReportService) Managers() []domain.ManagerRef {
	return s.managers
}

// Generate produces the monthly report for the period over its calendar
// month range.
func (s *ReportService) Generate(ctx context.Context, period domain.Period) (*domain.Report, error) {
	from, to := period.Range()
	return s.GenerateRange(ctx, period, from, to)
}

// GenerateRange produces the report for the period's plan over an explicit
// [from, to) range. The plan is loaded first: without one there is nothing
// to measure against and no zero-filled report is produced.
func (s *ReportService) GenerateRange(ctx context.Context, period domain.Period, from, to time.Time) (*domain.Report, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	if report, ok, err := s.cache.Get(ctx, period, from, to); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("report cache get failed")
	}

	plan, err := kpi.LoadPlan(ctx, s.plans, period)
	if err != nil {
		return nil, err
	}

	var (
		grid       domain.ActualsGrid
		additional map[string]decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		grid, err = s.aggregator.Aggregate(gctx, from, to)
		return err
	})
	g.Go(func() (err error) {
		additional, err = s.aggregator.AdditionalBonus(gctx, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &domain.Report{
		Period:      period,
		From:        from,
		To:          to,
		Results:     kpi.Calculate(plan, grid, additional, s.managers),
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.cache.Set(ctx, report); err != nil {
		log.Warn().Err(err).Msg("report cache set failed")
	}

	log.Info().
		Str("period", period.String()).
		Time("from", from).
		Time("to", to).
		Int("managers", len(report.Results)).
		Msg("report generated")
	return report, nil
}
