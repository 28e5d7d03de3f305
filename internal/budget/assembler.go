package budget

import (
	"math"

	"tripbudget/internal/config"
	"tripbudget/internal/domain"
)

const totalScope = "TOTAL"

// assemble concatenates per-trip rows in input trip order and appends the
// summary block: grand total, converted total, and (when enabled) the
// per-person and per-student averages. The grand total must equal the
// arithmetic sum of every prior row.
func assemble(trips []domain.TripRecord, perTrip [][]domain.LineItem, r config.Rates, includeAverages bool) (domain.BudgetReport, error) {
	var rows []domain.LineItem
	var grand float64
	for _, tripRows := range perTrip {
		for _, row := range tripRows {
			grand += row.Total
		}
		rows = append(rows, tripRows...)
	}

	converted := round2(grand / r.ExchangeRate)

	rows = append(rows,
		domain.LineItem{Scope: totalScope, Item: "Grand total (RMB)", Total: grand, Summary: true},
		domain.LineItem{Scope: totalScope, Item: "Grand total (USD)", Total: converted, Summary: true},
	)

	report := domain.BudgetReport{
		GrandTotal:     grand,
		ConvertedTotal: converted,
	}

	if includeAverages {
		people := 0
		students := 0
		for _, t := range trips {
			people += TotalPeople(t, r)
			students += t.StudentCount
		}
		if people == 0 {
			return domain.BudgetReport{}, domain.ValidationError{Field: "totalPeople", Msg: "zero headcount, cannot compute per-person average"}
		}
		if students == 0 {
			return domain.BudgetReport{}, domain.ValidationError{Field: "studentCount", Msg: "zero students, cannot compute per-student average"}
		}
		report.PerPerson = round2(grand / float64(people))
		report.PerStudent = round2(grand / float64(students))
		rows = append(rows,
			domain.LineItem{Scope: totalScope, Item: "Per person (RMB)", Total: report.PerPerson, Summary: true},
			domain.LineItem{Scope: totalScope, Item: "Per student (RMB)", Total: report.PerStudent, Summary: true},
		)
	}

	report.Rows = rows
	return report, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
