package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"tripbudget/internal/domain"
)

func TestReportRepositorySave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rep := domain.BudgetReport{
		GrandTotal:     80950,
		ConvertedTotal: 11401.41,
		PerPerson:      1798.89,
		PerStudent:     2023.75,
		Rows: []domain.LineItem{
			{Scope: "Beijing", Category: domain.CategoryHotel, Item: "Room-night", Unit: "room-night", Quantity: 75, UnitPrice: 450, Total: 33750},
			{Scope: "TOTAL", Item: "Grand total (RMB)", Total: 80950, Summary: true},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO budget_reports").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectPrepare("INSERT INTO budget_lines")
	mock.ExpectExec("INSERT INTO budget_lines").
		WithArgs(int64(3), 0, "Beijing", "Hotel", "Room-night", "room-night", 75.0, 450.0, 33750.0, false).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO budget_lines").
		WithArgs(int64(3), 1, "TOTAL", "", "Grand total (RMB)", "", 0.0, 0.0, 80950.0, true).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	id, err := ReportRepository{DB: db}.Save(rep)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if id != 3 {
		t.Fatalf("report id = %d, want 3", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReportRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM budget_reports").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "grand_total", "converted_total", "per_person", "per_student", "generated_at"}).
			AddRow(3, 80950.0, 11401.41, 1798.89, 2023.75, "2025-04-01 12:00:00"))

	mock.ExpectQuery("FROM budget_lines").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"scope", "category", "item", "unit", "quantity", "unit_price", "total", "is_summary"}).
			AddRow("Beijing", "Hotel", "Room-night", "room-night", 75.0, 450.0, 33750.0, false).
			AddRow("TOTAL", "", "Grand total (RMB)", "", 0.0, 0.0, 80950.0, true))

	rep, err := ReportRepository{DB: db}.GetByID(3)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if rep.GrandTotal != 80950 {
		t.Fatalf("grand total = %v", rep.GrandTotal)
	}
	if len(rep.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rep.Rows))
	}
	if rep.Rows[0].Category != domain.CategoryHotel {
		t.Fatalf("first row category = %s", rep.Rows[0].Category)
	}
	if !rep.Rows[1].Summary {
		t.Fatalf("second row should be summary")
	}
}

func TestReportRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM budget_reports").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "grand_total", "converted_total", "per_person", "per_student", "generated_at"}))

	_, err = ReportRepository{DB: db}.GetByID(42)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
