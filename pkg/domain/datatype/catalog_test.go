package datatype

import "testing"

func TestResolve_SupportedTypes(t *testing.T) {
	tests := []struct {
		id    string
		unit  string
		style AggregationStyle
	}{
		{TypeSteps, "count", StyleCumulative},
		{TypeWeight, "kg", StyleDiscrete},
		{TypeHeight, "m", StyleDiscrete},
		{TypeHeartRate, "count/min", StyleDiscrete},
		{TypeHRV, "ms", StyleDiscrete},
		{TypeDistance, "m", StyleCumulative},
		{TypeActiveCalories, "kcal", StyleCumulative},
		{TypeTotalCalories, "kcal", StyleCumulative},
		{TypeBodyFat, "percent", StyleDiscrete},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			desc, ok := Resolve(tt.id)
			if !ok {
				t.Fatalf("Resolve(%q) not found", tt.id)
			}
			if desc.Unit != tt.unit {
				t.Errorf("unit = %q, want %q", desc.Unit, tt.unit)
			}
			if desc.Style != tt.style {
				t.Errorf("style = %v, want %v", desc.Style, tt.style)
			}
			if desc.QueryRecordType == "" {
				t.Error("missing query record type")
			}
			if len(desc.RecordTypes) == 0 {
				t.Error("missing record types")
			}
		})
	}
}

func TestResolve_CompositeTypesExcluded(t *testing.T) {
	// Sleep, blood pressure and mindfulness resolve to category/correlation
	// records and are handled by dedicated branches, not the catalog.
	for _, id := range []string{TypeSleep, TypeSleepAnalysis, TypeBloodPressure, TypeMindfulness, "nonsense"} {
		if _, ok := Resolve(id); ok {
			t.Errorf("Resolve(%q) unexpectedly succeeded", id)
		}
	}
}
