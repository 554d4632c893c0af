package kpi

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/salesops/kpireport/internal/domain"
	"github.com/salesops/kpireport/internal/repository"
	"github.com/salesops/kpireport/pkg/numeric"
)

const (
	clientDateLayout = "2006-01-02"
	orderDateLayout  = "02-01-2006"
)

// Aggregator computes per-manager actuals for a date range by scanning the
// synced task, client, and order tables.
type Aggregator struct {
	tasks    repository.TaskRepository
	clients  repository.ClientRepository
	orders   repository.OrderRepository
	managers []domain.ManagerRef

	byName  map[string]bool
	byCRMID map[string]string
}

func NewAggregator(
	tasks repository.TaskRepository,
	clients repository.ClientRepository,
	orders repository.OrderRepository,
	managers []domain.ManagerRef,
) *Aggregator {
	a := &Aggregator{
		tasks:    tasks,
		clients:  clients,
		orders:   orders,
		managers: managers,
		byName:   make(map[string]bool, len(managers)),
		byCRMID:  make(map[string]string, len(managers)),
	}
	for _, m := range managers {
		a.byName[m.Name] = true
		a.byCRMID[m.CRMID] = m.Name
	}
	return a
}

// Aggregate returns the full manager×indicator grid of actuals over
// [from, to). The three scans are independent reads and run concurrently;
// any query failure aborts the whole aggregation, since a grid with a
// silently missing bucket would produce wrong bonus amounts.
func (a *Aggregator) Aggregate(ctx context.Context, from, to time.Time) (domain.ActualsGrid, error) {
	var (
		taskRows   []domain.TaskRow
		clientRows []domain.ClientRow
		orderRows  []domain.OrderRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		taskRows, err = a.tasks.ListCompleted(gctx, from, to)
		return err
	})
	g.Go(func() (err error) {
		clientRows, err = a.clients.ListActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		orderRows, err = a.orders.ListActive(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	grid := domain.NewActualsGrid(a.managers)
	a.aggregateTasks(grid, taskRows, from, to)
	a.aggregateClients(grid, clientRows, from, to)
	a.aggregateOrders(grid, orderRows, from, to)
	return grid, nil
}

func (a *Aggregator) aggregateTasks(grid domain.ActualsGrid, rows []domain.TaskRow, from, to time.Time) {
	one := decimal.NewFromInt(1)
	for _, row := range rows {
		if !a.byName[row.Assignee] {
			continue
		}
		if !row.CompletedAt.Valid || !domain.InRange(row.CompletedAt.Time, from, to) {
			continue
		}
		ind, ok := domain.ClassifyTaskTitle(row.Title)
		if !ok {
			// Most tasks are unrelated to the KPIs.
			continue
		}

		grid.Add(row.Assignee, ind, one)
		grid.Add(row.Assignee, domain.IndicatorTTL, one)

		if ind == domain.IndicatorPRZ &&
			row.Outcome.Valid &&
			strings.TrimSpace(row.Outcome.String) == domain.OutcomeInterested {
			grid.Add(row.Assignee, domain.IndicatorKZI, one)
		}
	}
}

func (a *Aggregator) aggregateClients(grid domain.ActualsGrid, rows []domain.ClientRow, from, to time.Time) {
	one := decimal.NewFromInt(1)
	for _, row := range rows {
		if !a.byName[row.Manager] {
			continue
		}
		for ind, raw := range map[domain.Indicator]string{
			domain.IndicatorNWI: nullString(row.DateNew),
			domain.IndicatorWTR: nullString(row.DateInProgress),
			domain.IndicatorPSK: nullString(row.DateAcquired),
		} {
			t, ok := parseDate(raw, clientDateLayout)
			if !ok {
				continue
			}
			if domain.InRange(t, from, to) {
				grid.Add(row.Manager, ind, one)
			}
		}
	}
}

func (a *Aggregator) aggregateOrders(grid domain.ActualsGrid, rows []domain.OrderRow, from, to time.Time) {
	one := decimal.NewFromInt(1)
	for _, row := range rows {
		name, ok := a.byCRMID[row.ManagerCRMID]
		if !ok {
			continue
		}

		// An offer only counts when it carries a non-zero net value.
		if t, ok := parseDate(nullString(row.OfferSentAt), orderDateLayout); ok && domain.InRange(t, from, to) {
			if net, ok := numeric.ParseAmount(nullString(row.NetValue)); ok && !net.IsZero() {
				grid.Add(name, domain.IndicatorOFW, one)
			}
		}

		if t, ok := parseDate(nullString(row.ConfirmedAt), orderDateLayout); ok && domain.InRange(t, from, to) {
			grid.Add(name, domain.IndicatorZAM, one)
		}

		if t, ok := parseDate(nullString(row.RealizedAt), orderDateLayout); ok && domain.InRange(t, from, to) {
			net, ok := numeric.ParseAmount(nullString(row.NetValue))
			if !ok {
				log.Warn().
					Str("manager_id", row.ManagerCRMID).
					Str("net_value", nullString(row.NetValue)).
					Msg("unparseable order net value, counted as zero")
			}
			grid.Add(name, domain.IndicatorPRC, net)
		}
	}
}

// AdditionalBonus sums the order commission field over orders realized in
// [from, to), grouped by manager. Uncapped and unweighted; every manager in
// the registry gets an entry even when no orders matched.
func (a *Aggregator) AdditionalBonus(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	rows, err := a.orders.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(a.managers))
	for _, m := range a.managers {
		sums[m.Name] = decimal.Zero
	}

	for _, row := range rows {
		name, ok := a.byCRMID[row.ManagerCRMID]
		if !ok {
			continue
		}
		t, ok := parseDate(nullString(row.RealizedAt), orderDateLayout)
		if !ok || !domain.InRange(t, from, to) {
			continue
		}
		commission, ok := numeric.ParseAmount(nullString(row.Commission))
		if !ok && nullString(row.Commission) != "" {
			log.Warn().
				Str("manager_id", row.ManagerCRMID).
				Str("commission", nullString(row.Commission)).
				Msg("unparseable order commission, counted as zero")
		}
		sums[name] = sums[name].Add(commission)
	}
	return sums, nil
}
