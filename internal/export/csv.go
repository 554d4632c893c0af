// Package export renders a finished report to CSV for archival. Formatting
// for chat delivery lives outside this repository; this is the machine
// readable artifact.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/salesops/kpireport/internal/domain"
)

// RenderCSV renders one row per manager: every indicator actual, every
// coefficient, the sums, and the bonus amounts.
func RenderCSV(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"manager", "crm_id"}
	for _, ind := range domain.AllIndicators {
		header = append(header, "actual_"+string(ind))
	}
	for _, ind := range domain.PlanIndicators {
		header = append(header, "coeff_"+string(ind))
	}
	header = append(header, "sum_coefficient", "primary_bonus", "additional_bonus")
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, result := range report.Results {
		record := []string{result.Manager.Name, result.Manager.CRMID}
		for _, ind := range domain.AllIndicators {
			record = append(record, result.Actuals[ind].StringFixed(2))
		}
		for _, ind := range domain.PlanIndicators {
			record = append(record, result.Coefficients[ind].Value.StringFixed(2))
		}
		record = append(record,
			result.SumCoefficient.StringFixed(2),
			result.PrimaryBonus.StringFixed(2),
			result.AdditionalBonus.StringFixed(2),
		)
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes the rendered report to path.
func WriteCSV(report *domain.Report, path string) error {
	data, err := RenderCSV(report)
	if err != nil {
		return fmt.Errorf("failed to render report CSV: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ObjectKey is the archive key for a report export, e.g.
// "reports/kpi_05_2026.csv".
func ObjectKey(prefix string, period domain.Period) string {
	if prefix == "" {
		return fmt.Sprintf("kpi_%02d_%d.csv", period.Month, period.Year)
	}
	return fmt.Sprintf("%s/kpi_%02d_%d.csv", prefix, period.Month, period.Year)
}
