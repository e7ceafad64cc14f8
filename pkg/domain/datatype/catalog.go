// Package datatype is the static registry mapping canonical data-type ids to
// provider record types, canonical units and aggregation styles. Read-only
// after init; no I/O.
package datatype

import (
	shared "github.com/flomentum/health-bridge/pkg"
)

// AggregationStyle selects how bucketed statistics summarize a data type.
type AggregationStyle int

const (
	// StyleCumulative sums samples per bucket (steps, calories, distance).
	StyleCumulative AggregationStyle = iota
	// StyleDiscrete averages samples per bucket (heart rate, weight, hrv).
	StyleDiscrete
)

// Canonical data-type ids accepted by the generic resolver.
const (
	TypeSteps          = "steps"
	TypeWeight         = "weight"
	TypeHeight         = "height"
	TypeHeartRate      = "heart-rate"
	TypeHRV            = "hrv"
	TypeDistance       = "distance"
	TypeActiveCalories = "active-calories"
	TypeTotalCalories  = "total-calories"
	TypeBodyFat        = "body-fat"
)

// Ids handled by dedicated branches instead of the catalog: they resolve to
// category or correlation records, not simple quantities.
const (
	TypeSleep         = "sleep"
	TypeSleepAnalysis = "sleepAnalysis"
	TypeBloodPressure = "blood-pressure"
	TypeMindfulness   = "mindfulness"
)

// Descriptor is the immutable description of one canonical data type.
type Descriptor struct {
	CanonicalID string
	// RecordTypes are all provider record types the id may resolve to.
	RecordTypes []string
	// QueryRecordType is the representative record type used for queries.
	QueryRecordType string
	// Unit is the canonical unit string surfaced to callers.
	Unit  string
	Style AggregationStyle
}

var catalog = map[string]Descriptor{
	TypeSteps: {
		CanonicalID:     TypeSteps,
		RecordTypes:     []string{shared.RecordTypeStepCount},
		QueryRecordType: shared.RecordTypeStepCount,
		Unit:            "count",
		Style:           StyleCumulative,
	},
	TypeWeight: {
		CanonicalID:     TypeWeight,
		RecordTypes:     []string{shared.RecordTypeBodyMass},
		QueryRecordType: shared.RecordTypeBodyMass,
		Unit:            "kg",
		Style:           StyleDiscrete,
	},
	TypeHeight: {
		CanonicalID:     TypeHeight,
		RecordTypes:     []string{shared.RecordTypeHeight},
		QueryRecordType: shared.RecordTypeHeight,
		Unit:            "m",
		Style:           StyleDiscrete,
	},
	TypeHeartRate: {
		CanonicalID:     TypeHeartRate,
		RecordTypes:     []string{shared.RecordTypeHeartRate},
		QueryRecordType: shared.RecordTypeHeartRate,
		Unit:            "count/min",
		Style:           StyleDiscrete,
	},
	TypeHRV: {
		CanonicalID:     TypeHRV,
		RecordTypes:     []string{shared.RecordTypeHRV},
		QueryRecordType: shared.RecordTypeHRV,
		Unit:            "ms",
		Style:           StyleDiscrete,
	},
	TypeDistance: {
		CanonicalID: TypeDistance,
		RecordTypes: []string{
			shared.RecordTypeDistanceCycling,
			shared.RecordTypeDistanceSwimming,
			shared.RecordTypeDistanceWalkingRunning,
			shared.RecordTypeDistanceSnowSports,
		},
		// One representative type; querying all distance types would
		// double-count multi-sport recordings.
		QueryRecordType: shared.RecordTypeDistanceWalkingRunning,
		Unit:            "m",
		Style:           StyleCumulative,
	},
	TypeActiveCalories: {
		CanonicalID:     TypeActiveCalories,
		RecordTypes:     []string{shared.RecordTypeActiveEnergy},
		QueryRecordType: shared.RecordTypeActiveEnergy,
		Unit:            "kcal",
		Style:           StyleCumulative,
	},
	TypeTotalCalories: {
		CanonicalID:     TypeTotalCalories,
		RecordTypes:     []string{shared.RecordTypeActiveEnergy, shared.RecordTypeBasalEnergy},
		QueryRecordType: shared.RecordTypeActiveEnergy,
		Unit:            "kcal",
		Style:           StyleCumulative,
	},
	TypeBodyFat: {
		CanonicalID:     TypeBodyFat,
		RecordTypes:     []string{shared.RecordTypeBodyFat},
		QueryRecordType: shared.RecordTypeBodyFat,
		Unit:            "percent",
		Style:           StyleDiscrete,
	},
}

// Resolve looks up the descriptor for a canonical id. Ids that map to
// composite or category records ("sleep", "blood-pressure", "mindfulness")
// are deliberately not resolvable here.
func Resolve(canonicalID string) (Descriptor, bool) {
	d, ok := catalog[canonicalID]
	return d, ok
}
