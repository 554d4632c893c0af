package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesops/kpireport/internal/domain"
)

var managers = []domain.ManagerRef{
	{Name: "Jan Kowalski", CRMID: "860"},
	{Name: "Anna Nowak", CRMID: "943"},
}

type fixedStore struct {
	plan       *domain.PlanRow
	planErr    error
	tasks      []domain.TaskRow
	clients    []domain.ClientRow
	orders     []domain.OrderRow
	taskCalls  int
	orderCalls int
}

func (f *fixedStore) GetPlan(ctx context.Context, month, year int) (*domain.PlanRow, error) {
	if f.planErr != nil {
		return nil, f.planErr
	}
	return f.plan, nil
}

func (f *fixedStore) ListCompleted(ctx context.Context, from, to time.Time) ([]domain.TaskRow, error) {
	f.taskCalls++
	return f.tasks, nil
}

type clientStore struct{ rows []domain.ClientRow }

func (c *clientStore) ListActive(ctx context.Context) ([]domain.ClientRow, error) {
	return c.rows, nil
}

type orderStore struct {
	store *fixedStore
}

func (o *orderStore) ListActive(ctx context.Context) ([]domain.OrderRow, error) {
	o.store.orderCalls++
	return o.store.orders, nil
}

func newService(store *fixedStore) *ReportService {
	return NewReportService(store, store, &clientStore{rows: store.clients}, &orderStore{store: store}, managers, nil)
}

func nf(v float64) sql.NullFloat64 { return sql.NullFloat64{Float64: v, Valid: true} }
func ns(s string) sql.NullString   { return sql.NullString{String: s, Valid: true} }

func fixture() *fixedStore {
	done := func(day int) sql.NullTime {
		return sql.NullTime{Time: time.Date(2026, 5, day, 12, 0, 0, 0, time.UTC), Valid: true}
	}
	return &fixedStore{
		plan: &domain.PlanRow{
			BaseBonus: nf(1000),
			NWI:       nf(10),
			SPT:       nf(2),
			PRC:       nf(5000),
		},
		tasks: []domain.TaskRow{
			{Assignee: "Jan Kowalski", Title: "Spotkanie / ABC", CompletedAt: done(4)},
			{Assignee: "Jan Kowalski", Title: "Spotkanie / DEF", CompletedAt: done(6)},
		},
		clients: []domain.ClientRow{
			{Manager: "Jan Kowalski", DateNew: ns("2026-05-05")},
		},
		orders: []domain.OrderRow{
			{ManagerCRMID: "860", RealizedAt: ns("10-05-2026"), NetValue: ns("2 500,00"), Commission: ns("125,00")},
		},
	}
}

func TestGenerateMissingPeriodDoesNotAggregate(t *testing.T) {
	store := fixture()
	store.planErr = domain.ErrPlanNotFound

	_, err := newService(store).Generate(context.Background(), domain.Period{Month: 5, Year: 2026})
	require.ErrorIs(t, err, domain.ErrPlanNotFound)
	assert.Zero(t, store.taskCalls, "actuals must not be aggregated without a plan")
	assert.Zero(t, store.orderCalls)
}

func TestGenerateRejectsInvalidPeriod(t *testing.T) {
	_, err := newService(fixture()).Generate(context.Background(), domain.Period{Month: 13, Year: 2024})
	require.Error(t, err)
}

func TestGenerateFullPipeline(t *testing.T) {
	report, err := newService(fixture()).Generate(context.Background(), domain.Period{Month: 5, Year: 2026})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	jan := report.Results[0]
	// Three active entries, weight 1/3 each: NWI 1/10, SPT 2/2, PRC 2500/5000.
	assert.Equal(t, "0.03", jan.Coefficients[domain.IndicatorNWI].Value.StringFixed(2))
	assert.Equal(t, "0.33", jan.Coefficients[domain.IndicatorSPT].Value.StringFixed(2))
	assert.Equal(t, "0.17", jan.Coefficients[domain.IndicatorPRC].Value.StringFixed(2))
	assert.Equal(t, "0.53", jan.SumCoefficient.StringFixed(2))
	assert.Equal(t, "530.00", jan.PrimaryBonus.StringFixed(2))
	assert.Equal(t, "125.00", jan.AdditionalBonus.StringFixed(2))

	anna := report.Results[1]
	assert.Equal(t, "0.00", anna.SumCoefficient.StringFixed(2))
	assert.Equal(t, "0.00", anna.AdditionalBonus.StringFixed(2))
}

func TestGenerateIsIdempotent(t *testing.T) {
	svc := newService(fixture())
	period := domain.Period{Month: 5, Year: 2026}

	first, err := svc.Generate(context.Background(), period)
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), period)
	require.NoError(t, err)

	// Byte-identical result sets for a fixed store snapshot and range.
	a, err := json.Marshal(first.Results)
	require.NoError(t, err)
	b, err := json.Marshal(second.Results)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGeneratePropagatesQueryFailure(t *testing.T) {
	store := fixture()
	store.planErr = errors.New("connection refused")

	_, err := newService(store).Generate(context.Background(), domain.Period{Month: 5, Year: 2026})
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrPlanNotFound)
}
