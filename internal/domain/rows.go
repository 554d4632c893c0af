package domain

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Raw rows as synced from the CRM. Soft-deleted records are filtered in the
// queries; nullable and text-typed columns are kept as-is here and cleaned
// up by the aggregator, because the upstream sync writes whatever the CRM
// export contained.

// TaskRow is one planfix_tasks record.
type TaskRow struct {
	Assignee    string         `db:"assignee"`
	Title       string         `db:"title"`
	CompletedAt sql.NullTime   `db:"completed_at"`
	Outcome     sql.NullString `db:"outcome"`
}

// ClientRow is one planfix_clients record. The lifecycle date columns are
// text in the store ("YYYY-MM-DD" or empty).
type ClientRow struct {
	Manager        string         `db:"manager"`
	DateNew        sql.NullString `db:"date_new"`
	DateInProgress sql.NullString `db:"date_in_progress"`
	DateAcquired   sql.NullString `db:"date_acquired"`
}

// OrderRow is one planfix_orders record. Dates are "DD-MM-YYYY" text, money
// columns are locale-formatted text.
type OrderRow struct {
	ManagerCRMID string         `db:"manager_id"`
	OfferSentAt  sql.NullString `db:"offer_sent_at"`
	ConfirmedAt  sql.NullString `db:"confirmed_at"`
	RealizedAt   sql.NullString `db:"realized_at"`
	NetValue     sql.NullString `db:"net_value"`
	Commission   sql.NullString `db:"commission"`
}

// PlanRow is the kpi_metrics record for one period. Target columns are
// nullable; a null target deactivates the indicator for the month.
type PlanRow struct {
	Month     string          `db:"month"`
	Year      int             `db:"year"`
	BaseBonus sql.NullFloat64 `db:"premia"`
	NWI       sql.NullFloat64 `db:"nwi"`
	WTR       sql.NullFloat64 `db:"wtr"`
	PSK       sql.NullFloat64 `db:"psk"`
	KZI       sql.NullFloat64 `db:"kzi"`
	WDM       sql.NullFloat64 `db:"wdm"`
	SPT       sql.NullFloat64 `db:"spt"`
	OFW       sql.NullFloat64 `db:"ofw"`
	ZAM       sql.NullFloat64 `db:"zam"`
	PRC       sql.NullFloat64 `db:"prc"`
}

// TargetFor returns the raw target column for a plan-bearing indicator.
func (r PlanRow) TargetFor(ind Indicator) sql.NullFloat64 {
	switch ind {
	case IndicatorNWI:
		return r.NWI
	case IndicatorWTR:
		return r.WTR
	case IndicatorPSK:
		return r.PSK
	case IndicatorKZI:
		return r.KZI
	case IndicatorWDM:
		return r.WDM
	case IndicatorSPT:
		return r.SPT
	case IndicatorOFW:
		return r.OFW
	case IndicatorZAM:
		return r.ZAM
	case IndicatorPRC:
		return r.PRC
	}
	return sql.NullFloat64{}
}

// ActualsGrid is the aggregator output: every manager name maps to a value
// for every indicator, zero-filled up front so downstream ratio math never
// sees an absent cell.
type ActualsGrid map[string]map[Indicator]decimal.Decimal

// NewActualsGrid pre-populates the full manager×indicator grid with zeros.
func NewActualsGrid(managers []ManagerRef) ActualsGrid {
	grid := make(ActualsGrid, len(managers))
	for _, m := range managers {
		cells := make(map[Indicator]decimal.Decimal, len(AllIndicators))
		for _, ind := range AllIndicators {
			cells[ind] = decimal.Zero
		}
		grid[m.Name] = cells
	}
	return grid
}

// Add accumulates v into one grid cell; unknown managers are ignored, the
// queries already filter on the registry.
func (g ActualsGrid) Add(manager string, ind Indicator, v decimal.Decimal) {
	if cells, ok := g[manager]; ok {
		cells[ind] = cells[ind].Add(v)
	}
}

// InRange reports whether t falls inside the half-open [from, to) interval.
func InRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
