package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesops/kpireport/internal/domain"
)

func TestRenderCSV(t *testing.T) {
	manager := domain.ManagerRef{Name: "Jan Kowalski", CRMID: "860"}
	report := &domain.Report{
		Period: domain.Period{Month: 5, Year: 2026},
		Results: []domain.ManagerResult{
			{
				Manager: manager,
				Actuals: map[domain.Indicator]decimal.Decimal{
					domain.IndicatorNWI: decimal.NewFromInt(7),
				},
				Coefficients: map[domain.Indicator]domain.Coefficient{
					domain.IndicatorNWI: {Indicator: domain.IndicatorNWI, Value: decimal.RequireFromString("0.33")},
				},
				SumCoefficient:  decimal.RequireFromString("0.33"),
				PrimaryBonus:    decimal.RequireFromString("330"),
				AdditionalBonus: decimal.RequireFromString("12.5"),
			},
		},
	}

	data, err := RenderCSV(report)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	header, row := records[0], records[1]
	require.Equal(t, len(header), len(row))
	assert.Equal(t, "manager", header[0])
	assert.Equal(t, "Jan Kowalski", row[0])
	assert.Equal(t, "860", row[1])

	byColumn := make(map[string]string, len(header))
	for i, name := range header {
		byColumn[name] = row[i]
	}
	assert.Equal(t, "7.00", byColumn["actual_NWI"])
	// Indicators without records render as explicit zeros.
	assert.Equal(t, "0.00", byColumn["actual_ZAM"])
	assert.Equal(t, "0.33", byColumn["coeff_NWI"])
	assert.Equal(t, "330.00", byColumn["primary_bonus"])
	assert.Equal(t, "12.50", byColumn["additional_bonus"])
}

func TestObjectKey(t *testing.T) {
	period := domain.Period{Month: 5, Year: 2026}
	assert.Equal(t, "reports/kpi_05_2026.csv", ObjectKey("reports", period))
	assert.Equal(t, "kpi_05_2026.csv", ObjectKey("", period))
}
