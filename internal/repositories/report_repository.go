package repositories

import (
	"database/sql"

	intconfig "tripbudget/internal/config"
	"tripbudget/internal/domain"
	"tripbudget/internal/utils"
)

type ReportRepository struct {
	DB *sql.DB
}

func (r ReportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Save persists the report header and every line item in one transaction
// so a stored budget is never missing rows.
func (r ReportRepository) Save(rep domain.BudgetReport) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO budget_reports (grand_total, converted_total, per_person, per_student, generated_at)
		VALUES (?,?,?,?,?)
	`, rep.GrandTotal, rep.ConvertedTotal, rep.PerPerson, rep.PerStudent, utils.FormatDateTime(utils.NowUTC()))
	if err != nil {
		return 0, err
	}
	reportID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO budget_lines (report_id, position, scope, category, item, unit, quantity, unit_price, total, is_summary)
		VALUES (?,?,?,?,?,?,?,?,?,?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, row := range rep.Rows {
		if _, err := stmt.Exec(
			reportID, i, row.Scope, string(row.Category), row.Item, row.Unit,
			row.Quantity, row.UnitPrice, row.Total, row.Summary,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return reportID, nil
}

func (r ReportRepository) GetByID(id int64) (domain.BudgetReport, error) {
	var rep domain.BudgetReport
	err := r.db().QueryRow(`
		SELECT id, grand_total, converted_total, per_person, per_student, generated_at
		FROM budget_reports
		WHERE id=?
	`, id).Scan(&rep.ID, &rep.GrandTotal, &rep.ConvertedTotal, &rep.PerPerson, &rep.PerStudent, &rep.GeneratedAt)
	if err == sql.ErrNoRows {
		return rep, domain.NotFoundError{Resource: "budget report"}
	}
	if err != nil {
		return rep, err
	}

	rows, err := r.db().Query(`
		SELECT scope, category, item, unit, quantity, unit_price, total, is_summary
		FROM budget_lines
		WHERE report_id=?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return rep, err
	}
	defer rows.Close()

	for rows.Next() {
		var li domain.LineItem
		var category string
		if err := rows.Scan(
			&li.Scope,
			&category,
			&li.Item,
			&li.Unit,
			&li.Quantity,
			&li.UnitPrice,
			&li.Total,
			&li.Summary,
		); err != nil {
			return rep, err
		}
		li.Category = domain.Category(category)
		rep.Rows = append(rep.Rows, li)
	}
	return rep, rows.Err()
}
