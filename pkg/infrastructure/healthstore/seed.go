package healthstore

import (
	"context"
	"fmt"
	"time"

	shared "github.com/flomentum/health-bridge/pkg"
)

// SeedDemoData populates the store with a plausible day of records: a
// morning run with heart rate, a GPS route and steps, plus body metrics and
// a night of sleep. Intended for local development only.
func (s *Store) SeedDemoData(ctx context.Context) error {
	all := make([]string, 0, len(shared.PermissionRecordTypes))
	seen := map[string]bool{}
	for _, recordTypes := range shared.PermissionRecordTypes {
		for _, recordType := range recordTypes {
			if !seen[recordType] {
				seen[recordType] = true
				all = append(all, recordType)
			}
		}
	}
	if _, err := s.RequestAuthorization(ctx, all); err != nil {
		return err
	}

	now := time.Now().Truncate(time.Minute)
	runStart := now.Add(-26 * time.Hour)
	runEnd := runStart.Add(45 * time.Minute)

	calories := 420.0
	distance := 8200.0
	workoutID, err := s.AddWorkout(ctx, shared.WorkoutRecord{
		ActivityCode:   37, // running
		Start:          runStart,
		End:            runEnd,
		DurationSec:    runEnd.Sub(runStart).Seconds(),
		EnergyKcal:     &calories,
		DistanceMeters: &distance,
		SourceName:     "Demo Watch",
		SourceBundleID: "com.flomentum.demo",
	})
	if err != nil {
		return err
	}

	var route []shared.Location
	for i := 0; i < 250; i++ {
		at := runStart.Add(time.Duration(i) * 10 * time.Second)
		route = append(route, shared.Location{
			Timestamp: at,
			Latitude:  52.5200 + float64(i)*0.0001,
			Longitude: 13.4050 + float64(i)*0.00008,
			Altitude:  34.0 + float64(i%20),
		})
	}
	if _, err := s.AddRoute(ctx, workoutID, route); err != nil {
		return err
	}

	for i := 0; i < 45; i++ {
		at := runStart.Add(time.Duration(i) * time.Minute)
		_, err := s.AddQuantitySample(ctx, shared.QuantitySample{
			RecordType: shared.RecordTypeHeartRate,
			Value:      135 + float64(i%25),
			Start:      at,
			End:        at,
			SourceName: "Demo Watch",
		})
		if err != nil {
			return err
		}
	}

	if _, err := s.AddQuantitySample(ctx, shared.QuantitySample{
		RecordType: shared.RecordTypeStepCount,
		Value:      6400,
		Start:      runStart,
		End:        runEnd,
		SourceName: "Demo Watch",
	}); err != nil {
		return err
	}

	for recordType, value := range map[string]float64{
		shared.RecordTypeBodyMass: 74.5,
		shared.RecordTypeHeight:   1.81,
		shared.RecordTypeBodyFat:  0.19,
		shared.RecordTypeHRV:      48,
	} {
		if _, err := s.AddQuantitySample(ctx, shared.QuantitySample{
			RecordType: recordType,
			Value:      value,
			Start:      now.Add(-20 * time.Hour),
			End:        now.Add(-20 * time.Hour),
			SourceName: "Demo Scale",
		}); err != nil {
			return err
		}
	}

	if _, err := s.AddCorrelation(ctx, shared.Correlation{
		RecordType: shared.RecordTypeBloodPressure,
		Start:      now.Add(-19 * time.Hour),
		End:        now.Add(-19 * time.Hour),
		Objects: []shared.QuantitySample{
			{RecordType: shared.RecordTypeBPSystolic, Value: 118, Start: now.Add(-19 * time.Hour), End: now.Add(-19 * time.Hour)},
			{RecordType: shared.RecordTypeBPDiastolic, Value: 76, Start: now.Add(-19 * time.Hour), End: now.Add(-19 * time.Hour)},
		},
	}); err != nil {
		return err
	}

	sleepStart := now.Add(-10 * time.Hour)
	for i, span := range []struct {
		offset   time.Duration
		duration time.Duration
		category int
	}{
		{0, 30 * time.Minute, shared.SleepCategoryInBed},
		{30 * time.Minute, 7 * time.Hour, shared.SleepCategoryAsleep},
	} {
		_, err := s.AddCategorySample(ctx, shared.CategorySample{
			UUID:       fmt.Sprintf("demo-sleep-%d", i),
			RecordType: shared.RecordTypeSleepAnalysis,
			Value:      span.category,
			Start:      sleepStart.Add(span.offset),
			End:        sleepStart.Add(span.offset + span.duration),
			SourceName: "Demo Watch",
		})
		if err != nil {
			return err
		}
	}

	return nil
}
