package query

import (
	"context"
	"errors"
	"testing"
	"time"

	shared "github.com/flomentum/health-bridge/pkg"
	"github.com/flomentum/health-bridge/pkg/testing/mocks"
)

func TestQueryAggregated_CumulativeSum(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)
	var gotQuery shared.CollectionQuery

	provider := &mocks.MockHealthProvider{
		QueryStatisticsCollectionFunc: func(ctx context.Context, q shared.CollectionQuery) ([]shared.Statistic, error) {
			gotQuery = q
			return []shared.Statistic{
				{Start: start, End: start.AddDate(0, 0, 1), Value: 8000, HasValue: true},
				{Start: start.AddDate(0, 0, 1), End: start.AddDate(0, 0, 2), HasValue: false},
				{Start: start.AddDate(0, 0, 2), End: start.AddDate(0, 0, 3), Value: 4200, HasValue: true},
			}, nil
		},
	}

	engine := NewAggregateEngine(provider, testLogger())
	resp, err := engine.QueryAggregated(context.Background(), start, end, "steps", "day")
	if err != nil {
		t.Fatalf("QueryAggregated failed: %v", err)
	}

	if gotQuery.Option != shared.AggregateCumulativeSum {
		t.Error("steps should aggregate as cumulative sum")
	}
	if gotQuery.Interval != shared.IntervalDay {
		t.Error("expected day interval")
	}
	if !gotQuery.Anchor.Equal(start) {
		t.Errorf("anchor = %v, want %v", gotQuery.Anchor, start)
	}

	// The empty middle day is skipped, not zero-filled.
	if len(resp.AggregatedData) != 2 {
		t.Fatalf("buckets = %d, want 2", len(resp.AggregatedData))
	}
	if resp.AggregatedData[0].Value != 8000 {
		t.Errorf("first bucket = %v, want 8000", resp.AggregatedData[0].Value)
	}
	if resp.AggregatedData[1].Value != 4200 {
		t.Errorf("second bucket = %v, want 4200", resp.AggregatedData[1].Value)
	}
	if resp.AggregatedData[0].StartDate != start.UnixMilli() {
		t.Errorf("first bucket start = %d, want %d", resp.AggregatedData[0].StartDate, start.UnixMilli())
	}
}

func TestQueryAggregated_DiscreteAverage(t *testing.T) {
	provider := &mocks.MockHealthProvider{
		QueryStatisticsCollectionFunc: func(ctx context.Context, q shared.CollectionQuery) ([]shared.Statistic, error) {
			if q.Option != shared.AggregateDiscreteAverage {
				t.Error("heart rate should aggregate as discrete average")
			}
			return nil, nil
		},
	}

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	resp, err := NewAggregateEngine(provider, testLogger()).QueryAggregated(context.Background(), start, start.Add(time.Hour), "heart-rate", "hour")
	if err != nil {
		t.Fatalf("QueryAggregated failed: %v", err)
	}
	if resp.AggregatedData == nil {
		t.Error("empty result should still serialize as an array")
	}
	if len(resp.AggregatedData) != 0 {
		t.Errorf("buckets = %d, want 0", len(resp.AggregatedData))
	}
}

func TestQueryAggregated_NormalizesBucketValues(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	provider := &mocks.MockHealthProvider{
		QueryStatisticsCollectionFunc: func(ctx context.Context, q shared.CollectionQuery) ([]shared.Statistic, error) {
			return []shared.Statistic{
				{Start: start, End: start.AddDate(0, 0, 1), Value: 0.19, HasValue: true},
			}, nil
		},
	}

	resp, err := NewAggregateEngine(provider, testLogger()).QueryAggregated(context.Background(), start, start.AddDate(0, 0, 1), "body-fat", "day")
	if err != nil {
		t.Fatalf("QueryAggregated failed: %v", err)
	}
	if len(resp.AggregatedData) != 1 {
		t.Fatalf("buckets = %d, want 1", len(resp.AggregatedData))
	}
	if resp.AggregatedData[0].Value != 19.0 {
		t.Errorf("value = %v, want 19.0 (fraction scaled to percent)", resp.AggregatedData[0].Value)
	}
}

func TestQueryAggregated_InvalidBucketBeforeProviderCall(t *testing.T) {
	called := false
	provider := &mocks.MockHealthProvider{
		QueryStatisticsCollectionFunc: func(ctx context.Context, q shared.CollectionQuery) ([]shared.Statistic, error) {
			called = true
			return nil, nil
		},
		QueryCategorySamplesFunc: func(ctx context.Context, q shared.SampleQuery) ([]shared.CategorySample, error) {
			called = true
			return nil, nil
		},
	}

	engine := NewAggregateEngine(provider, testLogger())
	for _, dataType := range []string{"steps", "mindfulness"} {
		start := time.Now()
		_, err := engine.QueryAggregated(context.Background(), start, start.Add(time.Hour), dataType, "fortnight")
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("%s: expected ValidationError, got %v", dataType, err)
		}
	}
	if called {
		t.Error("provider must not be queried for an invalid bucket")
	}
}

func TestQueryAggregated_InvalidDataType(t *testing.T) {
	engine := NewAggregateEngine(&mocks.MockHealthProvider{}, testLogger())
	start := time.Now()
	_, err := engine.QueryAggregated(context.Background(), start, start.Add(time.Hour), "sleep", "day")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestQueryAggregated_ProviderError(t *testing.T) {
	provider := &mocks.MockHealthProvider{
		QueryStatisticsCollectionFunc: func(ctx context.Context, q shared.CollectionQuery) ([]shared.Statistic, error) {
			return nil, errors.New("store unavailable")
		},
	}

	start := time.Now()
	_, err := NewAggregateEngine(provider, testLogger()).QueryAggregated(context.Background(), start, start.Add(time.Hour), "steps", "hour")
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}

func TestQueryAggregated_MindfulnessGroupsPerDay(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
	day2 := time.Date(2024, 3, 2, 21, 0, 0, 0, time.Local)

	provider := &mocks.MockHealthProvider{
		QueryCategorySamplesFunc: func(ctx context.Context, q shared.SampleQuery) ([]shared.CategorySample, error) {
			if q.RecordType != shared.RecordTypeMindfulSession {
				t.Errorf("record type = %q, want %q", q.RecordType, shared.RecordTypeMindfulSession)
			}
			return []shared.CategorySample{
				{Start: day1, End: day1.Add(10 * time.Minute)},
				{Start: day1.Add(12 * time.Hour), End: day1.Add(12*time.Hour + 5*time.Minute)},
				{Start: day2, End: day2.Add(20 * time.Minute)},
			}, nil
		},
	}

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	resp, err := NewAggregateEngine(provider, testLogger()).QueryAggregated(context.Background(), start, start.AddDate(0, 0, 3), "mindfulness", "day")
	if err != nil {
		t.Fatalf("QueryAggregated failed: %v", err)
	}

	if len(resp.AggregatedData) != 2 {
		t.Fatalf("buckets = %d, want 2", len(resp.AggregatedData))
	}
	// First day: 10min + 5min = 900 seconds; second day: 20min = 1200 seconds.
	if resp.AggregatedData[0].Value != 900 {
		t.Errorf("day 1 seconds = %v, want 900", resp.AggregatedData[0].Value)
	}
	if resp.AggregatedData[1].Value != 1200 {
		t.Errorf("day 2 seconds = %v, want 1200", resp.AggregatedData[1].Value)
	}
	if resp.AggregatedData[0].StartDate >= resp.AggregatedData[1].StartDate {
		t.Error("buckets must be in ascending day order")
	}
	wantEnd := time.Date(2024, 3, 2, 0, 0, 0, 0, time.Local).UnixMilli()
	if resp.AggregatedData[0].EndDate != wantEnd {
		t.Errorf("day 1 end = %d, want %d", resp.AggregatedData[0].EndDate, wantEnd)
	}
}
