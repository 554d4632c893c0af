package kpi

import (
	"github.com/shopspring/decimal"

	"github.com/salesops/kpireport/internal/domain"
	"github.com/salesops/kpireport/pkg/numeric"
)

const coefficientPlaces = 2

// Calculate combines the plan and the actuals grid into one result per
// manager, in registry order.
//
// Per active plan entry: the actual is clamped to the plan for capped
// indicators, the ratio is weighted and rounded half away from zero to two
// places. Inactive entries (null or non-positive plan) contribute nothing.
// The coefficient sum and the base-bonus product are rounded the same way.
func Calculate(
	plan *domain.Plan,
	grid domain.ActualsGrid,
	additional map[string]decimal.Decimal,
	managers []domain.ManagerRef,
) []domain.ManagerResult {
	results := make([]domain.ManagerResult, 0, len(managers))

	for _, m := range managers {
		actuals := grid[m.Name]
		result := domain.ManagerResult{
			Manager:      m,
			Actuals:      actuals,
			Coefficients: make(map[domain.Indicator]domain.Coefficient, len(plan.Entries)),
		}

		sum := decimal.Zero
		for _, ind := range domain.PlanIndicators {
			entry := plan.Entries[ind]
			if !entry.Active {
				continue
			}

			actual := actuals[ind]
			used := actual
			if domain.CappedIndicators[ind] && used.GreaterThan(entry.Value) {
				used = entry.Value
			}

			coeff := domain.Coefficient{
				Indicator: ind,
				Actual:    actual,
				Plan:      entry.Value,
				Weight:    entry.Weight,
				Value: numeric.RoundHalfUp(
					used.Div(entry.Value).Mul(entry.Weight), coefficientPlaces),
			}
			result.Coefficients[ind] = coeff
			sum = sum.Add(coeff.Value)
		}

		result.SumCoefficient = numeric.RoundHalfUp(sum, coefficientPlaces)
		result.PrimaryBonus = numeric.RoundHalfUp(
			plan.BaseBonus.Mul(result.SumCoefficient), coefficientPlaces)
		result.AdditionalBonus = numeric.RoundHalfUp(additional[m.Name], coefficientPlaces)

		results = append(results, result)
	}

	return results
}
