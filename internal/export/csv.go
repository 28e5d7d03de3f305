package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"tripbudget/internal/domain"
)

// BudgetCSV renders a report as the tabular export the finance team
// imports into their sheets. Summary rows keep quantity and unit price
// blank by convention.
func BudgetCSV(rep domain.BudgetReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Scope", "Category", "Item", "Unit", "Quantity", "Unit Price (RMB)", "Total (RMB)"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range rep.Rows {
		rec := []string{
			row.Scope,
			string(row.Category),
			row.Item,
			row.Unit,
			"",
			"",
			formatFloat(row.Total),
		}
		if !row.Summary {
			rec[4] = formatFloat(row.Quantity)
			rec[5] = formatFloat(row.UnitPrice)
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
