package datatype

import "testing"

func TestNormalize_BodyFatFractionToPercent(t *testing.T) {
	value, unit, err := Normalize(TypeBodyFat, 0.21)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if value != 21.0 {
		t.Errorf("value = %v, want 21.0", value)
	}
	if unit != "percent" {
		t.Errorf("unit = %q, want %q", unit, "percent")
	}
}

func TestNormalize_Passthrough(t *testing.T) {
	tests := []struct {
		id    string
		value float64
		unit  string
	}{
		{TypeWeight, 72.5, "kg"},
		{TypeSteps, 8421, "count"},
		{TypeHeartRate, 61, "count/min"},
		{TypeHRV, 44.2, "ms"},
		{TypeDistance, 5000, "m"},
		{TypeActiveCalories, 312, "kcal"},
	}
	for _, tt := range tests {
		value, unit, err := Normalize(tt.id, tt.value)
		if err != nil {
			t.Fatalf("Normalize(%q) failed: %v", tt.id, err)
		}
		if value != tt.value {
			t.Errorf("Normalize(%q) value = %v, want %v", tt.id, value, tt.value)
		}
		if unit != tt.unit {
			t.Errorf("Normalize(%q) unit = %q, want %q", tt.id, unit, tt.unit)
		}
	}
}

func TestNormalize_UnknownType(t *testing.T) {
	if _, _, err := Normalize("blood-pressure", 120); err == nil {
		t.Fatal("expected error for composite type")
	}
}

func TestWorkoutTypeLabel(t *testing.T) {
	if got := WorkoutTypeLabel(37); got != "running" {
		t.Errorf("code 37 = %q, want running", got)
	}
	if got := WorkoutTypeLabel(13); got != "cycling" {
		t.Errorf("code 13 = %q, want cycling", got)
	}
	if got := WorkoutTypeLabel(9999); got != "other" {
		t.Errorf("unknown code = %q, want other", got)
	}
}
