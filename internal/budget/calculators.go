package budget

import (
	"math"

	"tripbudget/internal/config"
	"tripbudget/internal/domain"
)

// The category calculators are pure functions over one trip and one rate
// card. Zero-valued inputs (zero nights, zero students) produce zero-total
// rows rather than dropping the category, so every report keeps the same
// auditable shape.

// Rooms assumes StudentsPerRoom students share a room; teachers and guides
// get individual rooms.
func Rooms(t domain.TripRecord, r config.Rates) int {
	perRoom := r.StudentsPerRoom
	if perRoom < 1 {
		perRoom = 1
	}
	studentRooms := (t.StudentCount + perRoom - 1) / perRoom
	return studentRooms + t.TeacherCount + r.GuideCount
}

// TotalPeople counts students, teachers and accompanying guides.
func TotalPeople(t domain.TripRecord, r config.Rates) int {
	return t.StudentCount + t.TeacherCount + r.GuideCount
}

func HotelRow(t domain.TripRecord, r config.Rates) domain.LineItem {
	qty := float64(t.Nights() * Rooms(t, r))
	return domain.LineItem{
		Scope:     t.Label,
		Category:  domain.CategoryHotel,
		Item:      "Room-night",
		Unit:      "room-night",
		Quantity:  qty,
		UnitPrice: r.HotelRatePerRoomNight,
		Total:     qty * r.HotelRatePerRoomNight,
	}
}

// MealRows splits total meals into standard and special portions by
// StandardMealShare (rounding the standard share to the nearest meal, the
// special portion takes the remainder) and emits one row per portion.
func MealRows(t domain.TripRecord, r config.Rates) []domain.LineItem {
	totalMeals := t.Days() * r.MealsPerDay * TotalPeople(t, r)
	stdMeals := int(math.Round(float64(totalMeals) * r.StandardMealShare))
	specMeals := totalMeals - stdMeals

	return []domain.LineItem{
		{
			Scope:     t.Label,
			Category:  domain.CategoryMeals,
			Item:      "Standard meal",
			Unit:      "meal",
			Quantity:  float64(stdMeals),
			UnitPrice: r.StandardMealRate,
			Total:     float64(stdMeals) * r.StandardMealRate,
		},
		{
			Scope:     t.Label,
			Category:  domain.CategoryMeals,
			Item:      "Special meal",
			Unit:      "meal",
			Quantity:  float64(specMeals),
			UnitPrice: r.SpecialMealRate,
			Total:     float64(specMeals) * r.SpecialMealRate,
		},
	}
}

func GuideRow(t domain.TripRecord, r config.Rates) domain.LineItem {
	qty := float64(t.Days() * r.GuideCount)
	return domain.LineItem{
		Scope:     t.Label,
		Category:  domain.CategoryGuide,
		Item:      "Guide-day",
		Unit:      "day",
		Quantity:  qty,
		UnitPrice: r.GuideRatePerDay,
		Total:     qty * r.GuideRatePerDay,
	}
}

// BusRow charges one bus per trip regardless of group size.
func BusRow(t domain.TripRecord, r config.Rates) domain.LineItem {
	qty := float64(t.Days())
	return domain.LineItem{
		Scope:     t.Label,
		Category:  domain.CategoryTransport,
		Item:      "Bus rental",
		Unit:      "day",
		Quantity:  qty,
		UnitPrice: r.BusRatePerDay,
		Total:     qty * r.BusRatePerDay,
	}
}

// TransferRow charges one per-person fare per inter-city leg. A single-city
// trip yields a zero-quantity row. Guides count toward the headcount when
// TransferIncludesGuides is set.
func TransferRow(t domain.TripRecord, r config.Rates) domain.LineItem {
	legs := distinctCities(t.Cities) - 1
	if legs < 0 {
		legs = 0
	}
	people := t.StudentCount + t.TeacherCount
	if r.TransferIncludesGuides {
		people += r.GuideCount
	}
	qty := float64(legs * people)
	return domain.LineItem{
		Scope:     t.Label,
		Category:  domain.CategoryTransport,
		Item:      "Inter-city transfer",
		Unit:      "person-leg",
		Quantity:  qty,
		UnitPrice: r.TransferRatePerPerson,
		Total:     qty * r.TransferRatePerPerson,
	}
}

func distinctCities(cities []string) int {
	seen := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		if c == "" {
			continue
		}
		seen[c] = struct{}{}
	}
	return len(seen)
}
