package budget

import (
	"testing"

	"tripbudget/internal/config"
	"tripbudget/internal/domain"
)

func sampleTrip() domain.TripRecord {
	return domain.TripRecord{
		Label:        "Beijing",
		StartDate:    "2025-04-01",
		EndDate:      "2025-04-04",
		StudentCount: 40,
		TeacherCount: 4,
		Places:       []string{"Museum, Park"},
		Cities:       []string{"Beijing"},
	}
}

func TestRoomsRoundsStudentPairsUp(t *testing.T) {
	r := config.DefaultRates()
	trip := sampleTrip()
	trip.StudentCount = 41
	trip.TeacherCount = 4
	// ceil(41/2)=21 + 4 teachers + 1 guide
	if got := Rooms(trip, r); got != 26 {
		t.Fatalf("rooms = %d, want 26", got)
	}
}

func TestHotelRow(t *testing.T) {
	r := config.DefaultRates()
	row := HotelRow(sampleTrip(), r)
	// rooms = 20+4+1 = 25, nights = 3 -> 75 room-nights at 450
	if row.Quantity != 75 {
		t.Fatalf("quantity = %v, want 75", row.Quantity)
	}
	if row.Total != 33750 {
		t.Fatalf("total = %v, want 33750", row.Total)
	}
	if row.Total != row.Quantity*row.UnitPrice {
		t.Fatalf("total not reproducible from quantity*unit_price")
	}
}

func TestMealRowsSplitPolicy(t *testing.T) {
	r := config.DefaultRates()
	rows := MealRows(sampleTrip(), r)
	if len(rows) != 2 {
		t.Fatalf("expected standard+special rows, got %d", len(rows))
	}
	// 4 days * 2 meals * 45 people = 360 meals; 75% standard = 270
	std, special := rows[0], rows[1]
	if std.Quantity != 270 || special.Quantity != 90 {
		t.Fatalf("split = %v/%v, want 270/90", std.Quantity, special.Quantity)
	}
	if std.Total != 270*80 || special.Total != 90*150 {
		t.Fatalf("totals = %v/%v", std.Total, special.Total)
	}
}

func TestGuideAndBusRows(t *testing.T) {
	r := config.DefaultRates()
	trip := sampleTrip()

	guide := GuideRow(trip, r)
	if guide.Quantity != 4 || guide.Total != 3600 {
		t.Fatalf("guide row = %v qty, %v total", guide.Quantity, guide.Total)
	}

	bus := BusRow(trip, r)
	if bus.Quantity != 4 || bus.Total != 6000 {
		t.Fatalf("bus row = %v qty, %v total", bus.Quantity, bus.Total)
	}
}

func TestTransferRowMultiCity(t *testing.T) {
	r := config.DefaultRates()
	trip := sampleTrip()
	trip.TeacherCount = 3
	trip.Cities = []string{"Beijing", "Xi'an", "Chengdu"}
	// 2 legs * (40+3+1) people * 950
	row := TransferRow(trip, r)
	if row.Quantity != 88 {
		t.Fatalf("quantity = %v, want 88", row.Quantity)
	}
	if row.Total != 83600 {
		t.Fatalf("total = %v, want 83600", row.Total)
	}
}

func TestTransferRowSingleCityIsZeroButEmitted(t *testing.T) {
	r := config.DefaultRates()
	row := TransferRow(sampleTrip(), r)
	if row.Quantity != 0 || row.Total != 0 {
		t.Fatalf("single-city transfer should be zero, got %v/%v", row.Quantity, row.Total)
	}
	if row.Item == "" {
		t.Fatalf("zero transfer row must still be a full row")
	}
}

func TestTransferRowExcludesGuidesWhenConfigured(t *testing.T) {
	r := config.DefaultRates()
	r.TransferIncludesGuides = false
	trip := sampleTrip()
	trip.Cities = []string{"Beijing", "Xi'an"}
	row := TransferRow(trip, r)
	if row.Quantity != 44 {
		t.Fatalf("quantity = %v, want 44 (40 students + 4 teachers)", row.Quantity)
	}
}

func TestZeroPeopleDoesNotPanic(t *testing.T) {
	r := config.DefaultRates()
	trip := sampleTrip()
	trip.StudentCount = 0
	trip.TeacherCount = 0

	if row := HotelRow(trip, r); row.Quantity != 3 { // 1 guide room * 3 nights
		t.Fatalf("hotel quantity = %v, want 3", row.Quantity)
	}
	rows := MealRows(trip, r)
	// 4 days * 2 meals * 1 guide = 8 meals
	if rows[0].Quantity+rows[1].Quantity != 8 {
		t.Fatalf("meal quantities = %v+%v, want 8 total", rows[0].Quantity, rows[1].Quantity)
	}
}
