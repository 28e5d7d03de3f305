package repositories

import (
	"database/sql"
	"strings"

	intconfig "tripbudget/internal/config"
	"tripbudget/internal/domain"
	"tripbudget/internal/utils"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns trips in submission order. Places and cities are stored as
// separator-joined text, the same shape the intake step delivers.
func (r TripRepository) List() ([]domain.TripRecord, error) {
	rows, err := r.db().Query(`
		SELECT id, label, start_date, end_date, student_count, teacher_count, places, cities
		FROM trips
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TripRecord{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) GetByID(id int64) (domain.TripRecord, error) {
	row := r.db().QueryRow(`
		SELECT id, label, start_date, end_date, student_count, teacher_count, places, cities
		FROM trips
		WHERE id=?
	`, id)

	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return domain.TripRecord{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, err
}

func (r TripRepository) Create(t domain.TripRecord) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO trips (label, start_date, end_date, student_count, teacher_count, places, cities)
		VALUES (?,?,?,?,?,?,?)
	`, t.Label, t.StartDate, t.EndDate, t.StudentCount, t.TeacherCount,
		strings.Join(t.Places, ", "), strings.Join(t.Cities, ", "))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r TripRepository) Update(t domain.TripRecord) error {
	res, err := r.db().Exec(`
		UPDATE trips
		SET label=?, start_date=?, end_date=?, student_count=?, teacher_count=?, places=?, cities=?
		WHERE id=?
	`, t.Label, t.StartDate, t.EndDate, t.StudentCount, t.TeacherCount,
		strings.Join(t.Places, ", "), strings.Join(t.Cities, ", "), t.ID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func (r TripRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(s rowScanner) (domain.TripRecord, error) {
	var t domain.TripRecord
	var places, cities string
	err := s.Scan(
		&t.ID,
		&t.Label,
		&t.StartDate,
		&t.EndDate,
		&t.StudentCount,
		&t.TeacherCount,
		&places,
		&cities,
	)
	if err != nil {
		return t, err
	}
	t.Places = utils.SplitPlaces(places)
	t.Cities = utils.SplitPlaces(cities)
	return t, nil
}
