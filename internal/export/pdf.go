package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"tripbudget/internal/domain"
	"tripbudget/internal/utils"
)

// BudgetPDF renders the report as a printable document, one table row per
// line item with the summary block at the end.
func BudgetPDF(rep domain.BudgetReport) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Trip Budget", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP BUDGET")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	widths := []float64{45, 25, 75, 25, 25, 35, 40}
	headers := []string{"Scope", "Category", "Item", "Unit", "Qty", "Unit Price", "Total"}

	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rep.Rows {
		if row.Summary {
			pdf.SetFont("Helvetica", "B", 9)
		}
		qty, price := "", ""
		if !row.Summary {
			qty = fmt.Sprintf("%g", row.Quantity)
			price = utils.FormatMoney(row.UnitPrice)
		}
		cells := []string{
			row.Scope,
			string(row.Category),
			row.Item,
			row.Unit,
			qty,
			price,
			utils.FormatMoney(row.Total),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		if row.Summary {
			pdf.SetFont("Helvetica", "", 9)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Attraction prices are sourced externally at computation time; zero-priced rows may reflect free admission or an unresolvable lookup.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BUDGET_%s.pdf", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}
