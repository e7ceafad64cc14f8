package healthstore

import (
	"context"
	"testing"
	"time"

	shared "github.com/flomentum/health-bridge/pkg"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAuthorizationRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if got := store.AuthorizationStatus(shared.RecordTypeStepCount); got != shared.AuthorizationNotDetermined {
		t.Errorf("fresh status = %v, want not determined", got)
	}

	granted, err := store.RequestAuthorization(ctx, []string{shared.RecordTypeStepCount, shared.RecordTypeHeartRate})
	if err != nil {
		t.Fatalf("RequestAuthorization failed: %v", err)
	}
	if !granted {
		t.Error("expected grant")
	}

	if got := store.AuthorizationStatus(shared.RecordTypeStepCount); got != shared.AuthorizationAuthorized {
		t.Errorf("status after grant = %v, want authorized", got)
	}
	if got := store.AuthorizationStatus(shared.RecordTypeBodyMass); got != shared.AuthorizationNotDetermined {
		t.Errorf("unrequested type = %v, want not determined", got)
	}
}

func TestQuerySamples_WindowAndSort(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	for i, value := range []float64{70, 71, 72} {
		at := base.Add(time.Duration(i) * 24 * time.Hour)
		_, err := store.AddQuantitySample(ctx, shared.QuantitySample{
			RecordType: shared.RecordTypeBodyMass,
			Value:      value,
			Start:      at,
			End:        at,
		})
		if err != nil {
			t.Fatalf("AddQuantitySample failed: %v", err)
		}
	}

	samples, err := store.QuerySamples(ctx, shared.SampleQuery{
		RecordType: shared.RecordTypeBodyMass,
		End:        base.Add(10 * 24 * time.Hour),
		StrictEnd:  true,
		Sort:       shared.SortStartDateDescending,
		Limit:      1,
	})
	if err != nil {
		t.Fatalf("QuerySamples failed: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("samples = %d, want 1", len(samples))
	}
	if samples[0].Value != 72 {
		t.Errorf("latest value = %v, want 72", samples[0].Value)
	}
}

func TestQuerySamples_StrictVsOverlap(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	windowStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(24 * time.Hour)

	// Starts before the window but overlaps into it.
	_, err := store.AddQuantitySample(ctx, shared.QuantitySample{
		RecordType: shared.RecordTypeHeartRate,
		Value:      60,
		Start:      windowStart.Add(-time.Hour),
		End:        windowStart.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("AddQuantitySample failed: %v", err)
	}

	strict, err := store.QuerySamples(ctx, shared.SampleQuery{
		RecordType:  shared.RecordTypeHeartRate,
		Start:       windowStart,
		End:         windowEnd,
		StrictStart: true,
		StrictEnd:   true,
	})
	if err != nil {
		t.Fatalf("QuerySamples failed: %v", err)
	}
	if len(strict) != 0 {
		t.Errorf("strict query matched %d samples, want 0", len(strict))
	}

	loose, err := store.QuerySamples(ctx, shared.SampleQuery{
		RecordType: shared.RecordTypeHeartRate,
		Start:      windowStart,
		End:        windowEnd,
	})
	if err != nil {
		t.Fatalf("QuerySamples failed: %v", err)
	}
	if len(loose) != 1 {
		t.Errorf("overlap query matched %d samples, want 1", len(loose))
	}
}

func TestQueryCorrelations_LoadsMembers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)

	_, err := store.AddCorrelation(ctx, shared.Correlation{
		RecordType: shared.RecordTypeBloodPressure,
		Start:      at,
		End:        at,
		Objects: []shared.QuantitySample{
			{RecordType: shared.RecordTypeBPSystolic, Value: 118, Start: at, End: at},
			{RecordType: shared.RecordTypeBPDiastolic, Value: 76, Start: at, End: at},
		},
	})
	if err != nil {
		t.Fatalf("AddCorrelation failed: %v", err)
	}

	correlations, err := store.QueryCorrelations(ctx, shared.SampleQuery{
		RecordType: shared.RecordTypeBloodPressure,
		End:        at.Add(time.Hour),
		StrictEnd:  true,
		Sort:       shared.SortStartDateDescending,
		Limit:      1,
	})
	if err != nil {
		t.Fatalf("QueryCorrelations failed: %v", err)
	}
	if len(correlations) != 1 {
		t.Fatalf("correlations = %d, want 1", len(correlations))
	}
	if len(correlations[0].Objects) != 2 {
		t.Fatalf("members = %d, want 2", len(correlations[0].Objects))
	}
	if correlations[0].Objects[0].Value != 118 || correlations[0].Objects[1].Value != 76 {
		t.Errorf("member values = %v/%v, want 118/76",
			correlations[0].Objects[0].Value, correlations[0].Objects[1].Value)
	}
}

func TestQueryStatistics_SumAndAverage(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, value := range []float64{1000, 2000, 3000} {
		at := start.Add(time.Duration(i) * time.Hour)
		if _, err := store.AddQuantitySample(ctx, shared.QuantitySample{
			RecordType: shared.RecordTypeStepCount,
			Value:      value,
			Start:      at,
			End:        at.Add(time.Minute),
		}); err != nil {
			t.Fatalf("AddQuantitySample failed: %v", err)
		}
	}

	sum, err := store.QueryStatistics(ctx, shared.StatisticsQuery{
		RecordType:  shared.RecordTypeStepCount,
		Start:       start,
		End:         start.Add(24 * time.Hour),
		StrictStart: true,
		Option:      shared.AggregateCumulativeSum,
	})
	if err != nil {
		t.Fatalf("QueryStatistics failed: %v", err)
	}
	if !sum.HasValue || sum.Value != 6000 {
		t.Errorf("sum = %+v, want 6000", sum)
	}

	avg, err := store.QueryStatistics(ctx, shared.StatisticsQuery{
		RecordType:  shared.RecordTypeStepCount,
		Start:       start,
		End:         start.Add(24 * time.Hour),
		StrictStart: true,
		Option:      shared.AggregateDiscreteAverage,
	})
	if err != nil {
		t.Fatalf("QueryStatistics failed: %v", err)
	}
	if !avg.HasValue || avg.Value != 2000 {
		t.Errorf("average = %+v, want 2000", avg)
	}

	empty, err := store.QueryStatistics(ctx, shared.StatisticsQuery{
		RecordType:  shared.RecordTypeHeartRate,
		Start:       start,
		End:         start.Add(24 * time.Hour),
		StrictStart: true,
		Option:      shared.AggregateCumulativeSum,
	})
	if err != nil {
		t.Fatalf("QueryStatistics failed: %v", err)
	}
	if empty.HasValue {
		t.Error("statistic over no samples must report no value")
	}
}

func TestQueryStatisticsCollection_AnchoredBuckets(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	anchor := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// Day 1 and day 3 carry steps; day 2 is empty.
	for _, at := range []time.Time{anchor.Add(8 * time.Hour), anchor.Add(56 * time.Hour)} {
		if _, err := store.AddQuantitySample(ctx, shared.QuantitySample{
			RecordType: shared.RecordTypeStepCount,
			Value:      5000,
			Start:      at,
			End:        at.Add(time.Minute),
		}); err != nil {
			t.Fatalf("AddQuantitySample failed: %v", err)
		}
	}

	stats, err := store.QueryStatisticsCollection(ctx, shared.CollectionQuery{
		RecordType:  shared.RecordTypeStepCount,
		Start:       anchor,
		End:         anchor.AddDate(0, 0, 3),
		StrictStart: true,
		Anchor:      anchor,
		Interval:    shared.IntervalDay,
		Option:      shared.AggregateCumulativeSum,
	})
	if err != nil {
		t.Fatalf("QueryStatisticsCollection failed: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("buckets = %d, want 3", len(stats))
	}
	if !stats[0].HasValue || stats[0].Value != 5000 {
		t.Errorf("bucket 1 = %+v, want 5000", stats[0])
	}
	if stats[1].HasValue {
		t.Error("empty day must report no value")
	}
	if !stats[2].HasValue || stats[2].Value != 5000 {
		t.Errorf("bucket 3 = %+v, want 5000", stats[2])
	}
	if !stats[0].Start.Equal(anchor) {
		t.Errorf("bucket 1 start = %v, want anchor %v", stats[0].Start, anchor)
	}
}

func TestQueryStatisticsCollection_TruncatedFinalBucket(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	anchor := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := anchor.Add(36 * time.Hour)

	// Inside the window, and inside the truncated second bucket.
	for _, at := range []time.Time{anchor.Add(8 * time.Hour), anchor.Add(30 * time.Hour)} {
		if _, err := store.AddQuantitySample(ctx, shared.QuantitySample{
			RecordType: shared.RecordTypeStepCount,
			Value:      5000,
			Start:      at,
			End:        at.Add(time.Minute),
		}); err != nil {
			t.Fatalf("AddQuantitySample failed: %v", err)
		}
	}
	// Past the query end but within a full second day bucket.
	if _, err := store.AddQuantitySample(ctx, shared.QuantitySample{
		RecordType: shared.RecordTypeStepCount,
		Value:      9999,
		Start:      anchor.Add(40 * time.Hour),
		End:        anchor.Add(40*time.Hour + time.Minute),
	}); err != nil {
		t.Fatalf("AddQuantitySample failed: %v", err)
	}

	stats, err := store.QueryStatisticsCollection(ctx, shared.CollectionQuery{
		RecordType:  shared.RecordTypeStepCount,
		Start:       anchor,
		End:         end,
		StrictStart: true,
		Anchor:      anchor,
		Interval:    shared.IntervalDay,
		Option:      shared.AggregateCumulativeSum,
	})
	if err != nil {
		t.Fatalf("QueryStatisticsCollection failed: %v", err)
	}

	if len(stats) != 2 {
		t.Fatalf("buckets = %d, want 2", len(stats))
	}
	if !stats[0].HasValue || stats[0].Value != 5000 {
		t.Errorf("bucket 1 = %+v, want 5000", stats[0])
	}
	if !stats[1].HasValue || stats[1].Value != 5000 {
		t.Errorf("final bucket = %+v, want 5000 (sample past query end excluded)", stats[1])
	}
	if !stats[1].End.Equal(end) {
		t.Errorf("final bucket end = %v, want query end %v", stats[1].End, end)
	}
}

func TestQueryRouteLocations_Chunking(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	workoutID, err := store.AddWorkout(ctx, shared.WorkoutRecord{
		ActivityCode: 37,
		Start:        start,
		End:          start.Add(45 * time.Minute),
		DurationSec:  2700,
	})
	if err != nil {
		t.Fatalf("AddWorkout failed: %v", err)
	}

	locations := make([]shared.Location, 250)
	for i := range locations {
		locations[i] = shared.Location{
			Timestamp: start.Add(time.Duration(i) * time.Second),
			Latitude:  52.5,
			Longitude: 13.4,
		}
	}
	routeID, err := store.AddRoute(ctx, workoutID, locations)
	if err != nil {
		t.Fatalf("AddRoute failed: %v", err)
	}

	refs, err := store.QueryRoutes(ctx, workoutID)
	if err != nil {
		t.Fatalf("QueryRoutes failed: %v", err)
	}
	if len(refs) != 1 || refs[0].UUID != routeID {
		t.Fatalf("refs = %+v, want one ref %q", refs, routeID)
	}

	var chunkSizes []int
	var doneFlags []bool
	var total int
	err = store.QueryRouteLocations(ctx, routeID, func(chunk []shared.Location, done bool) error {
		chunkSizes = append(chunkSizes, len(chunk))
		doneFlags = append(doneFlags, done)
		total += len(chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("QueryRouteLocations failed: %v", err)
	}

	if total != 250 {
		t.Errorf("total points = %d, want 250", total)
	}
	if len(chunkSizes) != 3 || chunkSizes[0] != 100 || chunkSizes[1] != 100 || chunkSizes[2] != 50 {
		t.Errorf("chunk sizes = %v, want [100 100 50]", chunkSizes)
	}
	for i, done := range doneFlags {
		if want := i == len(doneFlags)-1; done != want {
			t.Errorf("chunk %d done = %v, want %v", i, done, want)
		}
	}
}

func TestQueryWorkouts_WindowAndOptionals(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	energy := 420.0
	if _, err := store.AddWorkout(ctx, shared.WorkoutRecord{
		UUID:         "w1",
		ActivityCode: 37,
		Start:        start,
		End:          start.Add(45 * time.Minute),
		DurationSec:  2700,
		EnergyKcal:   &energy,
	}); err != nil {
		t.Fatalf("AddWorkout failed: %v", err)
	}
	if _, err := store.AddWorkout(ctx, shared.WorkoutRecord{
		UUID:         "w-outside",
		ActivityCode: 13,
		Start:        start.AddDate(0, 0, 5),
		End:          start.AddDate(0, 0, 5).Add(time.Hour),
		DurationSec:  3600,
	}); err != nil {
		t.Fatalf("AddWorkout failed: %v", err)
	}

	workouts, err := store.QueryWorkouts(ctx, start.Add(-time.Hour), start.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("QueryWorkouts failed: %v", err)
	}
	if len(workouts) != 1 {
		t.Fatalf("workouts = %d, want 1", len(workouts))
	}
	w := workouts[0]
	if w.UUID != "w1" {
		t.Errorf("uuid = %q, want w1", w.UUID)
	}
	if w.EnergyKcal == nil || *w.EnergyKcal != 420 {
		t.Errorf("energy = %v, want 420", w.EnergyKcal)
	}
	if w.DistanceMeters != nil {
		t.Error("distance must stay nil when not stored")
	}
}
