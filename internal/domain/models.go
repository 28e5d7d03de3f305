package domain

import (
	"strings"
	"time"

	"tripbudget/internal/utils"
)

// Category names one budget section. Report rows are grouped per trip in
// the fixed order below.
type Category string

const (
	CategoryHotel      Category = "Hotel"
	CategoryMeals      Category = "Meals"
	CategoryGuide      Category = "Guide"
	CategoryAttraction Category = "Attraction"
	CategoryTransport  Category = "Transport"
)

// CategoryOrder is the presentation order of sections within one trip.
var CategoryOrder = []Category{
	CategoryHotel,
	CategoryMeals,
	CategoryGuide,
	CategoryAttraction,
	CategoryTransport,
}

// TripRecord is one normalized trip submission (or one city leg of it).
// Dates are YYYY-MM-DD strings as delivered by the intake step.
type TripRecord struct {
	ID           int64    `json:"id,omitempty"`
	Label        string   `json:"label"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	StudentCount int      `json:"studentCount"`
	TeacherCount int      `json:"teacherCount"`
	Places       []string `json:"places"`
	Cities       []string `json:"cities"`
}

// Nights returns end-start in days. Validate must have passed first.
func (t TripRecord) Nights() int {
	start, err1 := utils.ParseDate(t.StartDate)
	end, err2 := utils.ParseDate(t.EndDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(end.Sub(start) / (24 * time.Hour))
}

// Days is the trip duration inclusive of both endpoints.
func (t TripRecord) Days() int {
	return t.Nights() + 1
}

// Validate surfaces malformed records before any money math runs.
func (t TripRecord) Validate() error {
	if strings.TrimSpace(t.Label) == "" {
		return ValidationError{Field: "label", Msg: "required"}
	}
	start, err := utils.ParseDate(t.StartDate)
	if err != nil {
		return ValidationError{Field: "startDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	end, err := utils.ParseDate(t.EndDate)
	if err != nil {
		return ValidationError{Field: "endDate", Msg: "expected YYYY-MM-DD", Err: err}
	}
	if end.Before(start) {
		return ValidationError{Field: "endDate", Msg: "before startDate"}
	}
	if t.StudentCount < 0 {
		return ValidationError{Field: "studentCount", Msg: "negative"}
	}
	if t.TeacherCount < 0 {
		return ValidationError{Field: "teacherCount", Msg: "negative"}
	}
	return nil
}

// PriceQuote is the admission price pair for one place. The zero value is
// the documented degraded fallback when lookup cannot produce a result.
type PriceQuote struct {
	Adult   float64 `json:"adult"`
	Student float64 `json:"student"`
}

// LineItem is one budget row. For non-summary rows Total is always
// Quantity*UnitPrice; summary rows carry Total only and set Summary.
type LineItem struct {
	Scope     string   `json:"scope"`
	Category  Category `json:"category,omitempty"`
	Item      string   `json:"item"`
	Unit      string   `json:"unit,omitempty"`
	Quantity  float64  `json:"quantity"`
	UnitPrice float64  `json:"unitPrice"`
	Total     float64  `json:"total"`
	Summary   bool     `json:"summary,omitempty"`
}

// BudgetReport is the full itemized budget across all trips, terminated by
// summary rows. The scalar fields duplicate the summary rows for callers
// that do not want to scan the row list.
type BudgetReport struct {
	ID             int64      `json:"id,omitempty"`
	Rows           []LineItem `json:"rows"`
	GrandTotal     float64    `json:"grandTotal"`
	ConvertedTotal float64    `json:"convertedTotal"`
	PerPerson      float64    `json:"perPerson"`
	PerStudent     float64    `json:"perStudent"`
	GeneratedAt    string     `json:"generatedAt,omitempty"`
}
