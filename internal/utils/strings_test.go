package utils

import (
	"reflect"
	"testing"
)

func TestSplitPlacesMixedSeparators(t *testing.T) {
	got := SplitPlaces("Forbidden City， Summer Palace; 天坛, ,  Great Wall ；")
	want := []string{"Forbidden City", "Summer Palace", "天坛", "Great Wall"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitPlaces = %v, want %v", got, want)
	}
}

func TestSplitPlacesEmpty(t *testing.T) {
	if got := SplitPlaces("  ; ，, "); len(got) != 0 {
		t.Fatalf("expected no places, got %v", got)
	}
}

func TestFormatRMB(t *testing.T) {
	if got := FormatRMB(83600); got != "¥83,600.00" {
		t.Fatalf("FormatRMB = %q", got)
	}
	if got := FormatRMB(-1234.5); got != "-¥1,234.50" {
		t.Fatalf("FormatRMB negative = %q", got)
	}
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("¥1,234.50")
	if err != nil {
		t.Fatalf("ParseAmount error: %v", err)
	}
	if got != 1234.5 {
		t.Fatalf("ParseAmount = %v", got)
	}
	if _, err := ParseAmount(""); err == nil {
		t.Fatalf("expected error for empty amount")
	}
}
