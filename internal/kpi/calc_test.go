package kpi

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesops/kpireport/internal/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func gridWith(manager string, values map[domain.Indicator]decimal.Decimal) domain.ActualsGrid {
	grid := domain.NewActualsGrid(testManagers)
	for ind, v := range values {
		grid[manager][ind] = v
	}
	return grid
}

func TestCalculateEndToEnd(t *testing.T) {
	// Plan: NWI 10, WTR 20, PSK 30, equal weights 1/3, base bonus 1000.
	// Jan: NWI 10/10, WTR capped 25->20, PSK 15/30.
	plan := BuildPlan(&domain.PlanRow{
		BaseBonus: valid(1000),
		NWI:       valid(10),
		WTR:       valid(20),
		PSK:       valid(30),
	}, domain.Period{Month: 5, Year: 2026})

	grid := gridWith("Jan Kowalski", map[domain.Indicator]decimal.Decimal{
		domain.IndicatorNWI: decimal.NewFromInt(10),
		domain.IndicatorWTR: decimal.NewFromInt(25),
		domain.IndicatorPSK: decimal.NewFromInt(15),
	})

	results := Calculate(plan, grid, map[string]decimal.Decimal{
		"Jan Kowalski": dec(t, "321.505"),
	}, testManagers)
	require.Len(t, results, 2)

	jan := results[0]
	require.Equal(t, "Jan Kowalski", jan.Manager.Name)

	assert.True(t, jan.Coefficients[domain.IndicatorNWI].Value.Equal(dec(t, "0.33")))
	assert.True(t, jan.Coefficients[domain.IndicatorWTR].Value.Equal(dec(t, "0.33")))
	assert.True(t, jan.Coefficients[domain.IndicatorPSK].Value.Equal(dec(t, "0.17")))
	assert.True(t, jan.SumCoefficient.Equal(dec(t, "0.83")))
	assert.True(t, jan.PrimaryBonus.Equal(dec(t, "830")))
	assert.True(t, jan.AdditionalBonus.Equal(dec(t, "321.51")))

	// A manager with no activity gets an all-zero result, not absence.
	anna := results[1]
	require.Equal(t, "Anna Nowak", anna.Manager.Name)
	assert.True(t, anna.SumCoefficient.IsZero())
	assert.True(t, anna.PrimaryBonus.IsZero())
	assert.True(t, anna.AdditionalBonus.IsZero())
}

func TestCalculateCappingLaw(t *testing.T) {
	plan := BuildPlan(&domain.PlanRow{
		BaseBonus: valid(500),
		ZAM:       valid(4),
	}, domain.Period{Month: 1, Year: 2026})

	// Overshoot by an arbitrary margin: coefficient may not exceed the
	// indicator's weight.
	grid := gridWith("Jan Kowalski", map[domain.Indicator]decimal.Decimal{
		domain.IndicatorZAM: decimal.NewFromInt(400),
	})

	results := Calculate(plan, grid, nil, testManagers)
	jan := results[0]
	coeff := jan.Coefficients[domain.IndicatorZAM]

	assert.True(t, coeff.Value.Equal(decimal.NewFromInt(1)))
	assert.True(t, coeff.Value.LessThanOrEqual(coeff.Weight))
	assert.True(t, jan.PrimaryBonus.Equal(decimal.NewFromInt(500)))
}

func TestCalculateUncappedRevenue(t *testing.T) {
	plan := BuildPlan(&domain.PlanRow{
		BaseBonus: valid(1000),
		PRC:       valid(10000),
	}, domain.Period{Month: 1, Year: 2026})

	// PRC is monetary and uncapped: 150% achieved yields 1.5 * weight.
	grid := gridWith("Jan Kowalski", map[domain.Indicator]decimal.Decimal{
		domain.IndicatorPRC: decimal.NewFromInt(15000),
	})

	results := Calculate(plan, grid, nil, testManagers)
	jan := results[0]

	assert.True(t, jan.Coefficients[domain.IndicatorPRC].Value.Equal(dec(t, "1.5")))
	assert.True(t, jan.PrimaryBonus.Equal(decimal.NewFromInt(1500)))
}

func TestCalculateSkipsInactiveEntries(t *testing.T) {
	plan := BuildPlan(&domain.PlanRow{
		BaseBonus: valid(1000),
		NWI:       valid(10),
		WDM:       valid(0), // zero plan: inactive, no division by zero
	}, domain.Period{Month: 1, Year: 2026})

	grid := gridWith("Jan Kowalski", map[domain.Indicator]decimal.Decimal{
		domain.IndicatorNWI: decimal.NewFromInt(5),
		domain.IndicatorWDM: decimal.NewFromInt(50),
	})

	results := Calculate(plan, grid, nil, testManagers)
	jan := results[0]

	_, hasWDM := jan.Coefficients[domain.IndicatorWDM]
	assert.False(t, hasWDM)
	assert.True(t, jan.SumCoefficient.Equal(dec(t, "0.5")))
}
