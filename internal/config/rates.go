package config

import "tripbudget/internal/domain"

// Rates parameterizes every budget calculator. It is always passed as a
// constructed value so different rate regimes (years, currencies) can
// coexist and be tested in isolation.
type Rates struct {
	HotelRatePerRoomNight float64 `json:"hotelRatePerRoomNight"`
	BusRatePerDay         float64 `json:"busRatePerDay"`
	StandardMealRate      float64 `json:"standardMealRate"`
	SpecialMealRate       float64 `json:"specialMealRate"`
	GuideRatePerDay       float64 `json:"guideRatePerDay"`
	TransferRatePerPerson float64 `json:"transferRatePerPerson"`

	// ExchangeRate is RMB per one unit of the converted currency.
	ExchangeRate float64 `json:"exchangeRate"`

	MealsPerDay     int `json:"mealsPerDay"`
	GuideCount      int `json:"guideCount"`
	StudentsPerRoom int `json:"studentsPerRoom"`

	// StandardMealShare is the fraction of total meals billed at the
	// standard rate; the remainder is billed at the special rate.
	StandardMealShare float64 `json:"standardMealShare"`

	// TransferIncludesGuides controls whether guides count toward the
	// per-person inter-city transfer headcount.
	TransferIncludesGuides bool `json:"transferIncludesGuides"`
}

// DefaultRates mirrors the production 2024 price card (RMB).
func DefaultRates() Rates {
	return Rates{
		HotelRatePerRoomNight:  450,
		BusRatePerDay:          1500,
		StandardMealRate:       80,
		SpecialMealRate:        150,
		GuideRatePerDay:        900,
		TransferRatePerPerson:  950,
		ExchangeRate:           7.1,
		MealsPerDay:            2,
		GuideCount:             1,
		StudentsPerRoom:        2,
		StandardMealShare:      0.75,
		TransferIncludesGuides: true,
	}
}

// Validate rejects missing or non-positive constants before any report is
// computed with them.
func (r Rates) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"hotelRatePerRoomNight", r.HotelRatePerRoomNight > 0},
		{"busRatePerDay", r.BusRatePerDay > 0},
		{"standardMealRate", r.StandardMealRate > 0},
		{"specialMealRate", r.SpecialMealRate > 0},
		{"guideRatePerDay", r.GuideRatePerDay > 0},
		{"transferRatePerPerson", r.TransferRatePerPerson > 0},
		{"exchangeRate", r.ExchangeRate > 0},
		{"mealsPerDay", r.MealsPerDay > 0},
		{"studentsPerRoom", r.StudentsPerRoom > 0},
	}
	for _, c := range checks {
		if !c.ok {
			return domain.ConfigurationError{Field: c.name, Msg: "must be positive"}
		}
	}
	if r.GuideCount < 0 {
		return domain.ConfigurationError{Field: "guideCount", Msg: "negative"}
	}
	if r.StandardMealShare < 0 || r.StandardMealShare > 1 {
		return domain.ConfigurationError{Field: "standardMealShare", Msg: "must be within [0,1]"}
	}
	return nil
}
