package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Period is one reporting month. The plan store keys plans by month and
// year; the month travels as an int here and is zero-padded only at the
// query boundary.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("month %d out of range 1..12", p.Month)
	}
	if p.Year < 2000 || p.Year > 2100 {
		return fmt.Errorf("year %d out of range", p.Year)
	}
	return nil
}

// Range returns the half-open [start, end) interval covering the month.
func (p Period) Range() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (p Period) String() string {
	return fmt.Sprintf("%02d.%d", p.Month, p.Year)
}

// PlanEntry is one indicator's target for a period. Active is false when
// the stored value is null or not positive; inactive entries carry weight
// zero and are excluded from the coefficient sum.
type PlanEntry struct {
	Indicator Indicator       `json:"indicator"`
	Value     decimal.Decimal `json:"value"`
	Active    bool            `json:"active"`
	Weight    decimal.Decimal `json:"weight"`
}

// Plan is the full target set for one period plus the base bonus the summed
// coefficient is multiplied by.
type Plan struct {
	Period    Period                  `json:"period"`
	Entries   map[Indicator]PlanEntry `json:"entries"`
	BaseBonus decimal.Decimal         `json:"base_bonus"`
}

// Coefficient is one indicator's contribution to a manager's bonus.
type Coefficient struct {
	Indicator Indicator       `json:"indicator"`
	Actual    decimal.Decimal `json:"actual"`
	Plan      decimal.Decimal `json:"plan"`
	Weight    decimal.Decimal `json:"weight"`
	Value     decimal.Decimal `json:"value"`
}

// ManagerResult is the per-manager outcome of one report run: the contract
// handed to the report formatter. It is recomputed from the store on every
// invocation and never persisted.
type ManagerResult struct {
	Manager         ManagerRef                `json:"manager"`
	Actuals         map[Indicator]decimal.Decimal `json:"actuals"`
	Coefficients    map[Indicator]Coefficient `json:"coefficients"`
	SumCoefficient  decimal.Decimal           `json:"sum_coefficient"`
	PrimaryBonus    decimal.Decimal           `json:"primary_bonus"`
	AdditionalBonus decimal.Decimal           `json:"additional_bonus"`
}

// Report is one full report generation result.
type Report struct {
	Period      Period          `json:"period"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Results     []ManagerResult `json:"results"`
	GeneratedAt time.Time       `json:"generated_at"`
}
