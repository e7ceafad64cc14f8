// Package mocks provides a configurable HealthProvider for tests.
package mocks

import (
	"context"
	"time"

	shared "github.com/flomentum/health-bridge/pkg"
)

// MockHealthProvider implements shared.HealthProvider via optional func
// fields. Unset query funcs return empty results; unset auth funcs report
// authorized/granted.
type MockHealthProvider struct {
	IsAvailableFunc               func() bool
	AuthorizationStatusFunc       func(recordType string) shared.AuthorizationStatus
	RequestAuthorizationFunc      func(ctx context.Context, recordTypes []string) (bool, error)
	QuerySamplesFunc              func(ctx context.Context, q shared.SampleQuery) ([]shared.QuantitySample, error)
	QueryCategorySamplesFunc      func(ctx context.Context, q shared.SampleQuery) ([]shared.CategorySample, error)
	QueryCorrelationsFunc         func(ctx context.Context, q shared.SampleQuery) ([]shared.Correlation, error)
	QueryStatisticsFunc           func(ctx context.Context, q shared.StatisticsQuery) (shared.Statistic, error)
	QueryStatisticsCollectionFunc func(ctx context.Context, q shared.CollectionQuery) ([]shared.Statistic, error)
	QueryWorkoutsFunc             func(ctx context.Context, start, end time.Time) ([]shared.WorkoutRecord, error)
	QueryRoutesFunc               func(ctx context.Context, workoutUUID string) ([]shared.RouteRef, error)
	QueryRouteLocationsFunc       func(ctx context.Context, routeUUID string, fn func(chunk []shared.Location, done bool) error) error
}

func (m *MockHealthProvider) IsAvailable() bool {
	if m.IsAvailableFunc != nil {
		return m.IsAvailableFunc()
	}
	return true
}

func (m *MockHealthProvider) AuthorizationStatus(recordType string) shared.AuthorizationStatus {
	if m.AuthorizationStatusFunc != nil {
		return m.AuthorizationStatusFunc(recordType)
	}
	return shared.AuthorizationAuthorized
}

func (m *MockHealthProvider) RequestAuthorization(ctx context.Context, recordTypes []string) (bool, error) {
	if m.RequestAuthorizationFunc != nil {
		return m.RequestAuthorizationFunc(ctx, recordTypes)
	}
	return true, nil
}

func (m *MockHealthProvider) QuerySamples(ctx context.Context, q shared.SampleQuery) ([]shared.QuantitySample, error) {
	if m.QuerySamplesFunc != nil {
		return m.QuerySamplesFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockHealthProvider) QueryCategorySamples(ctx context.Context, q shared.SampleQuery) ([]shared.CategorySample, error) {
	if m.QueryCategorySamplesFunc != nil {
		return m.QueryCategorySamplesFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockHealthProvider) QueryCorrelations(ctx context.Context, q shared.SampleQuery) ([]shared.Correlation, error) {
	if m.QueryCorrelationsFunc != nil {
		return m.QueryCorrelationsFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockHealthProvider) QueryStatistics(ctx context.Context, q shared.StatisticsQuery) (shared.Statistic, error) {
	if m.QueryStatisticsFunc != nil {
		return m.QueryStatisticsFunc(ctx, q)
	}
	return shared.Statistic{Start: q.Start, End: q.End}, nil
}

func (m *MockHealthProvider) QueryStatisticsCollection(ctx context.Context, q shared.CollectionQuery) ([]shared.Statistic, error) {
	if m.QueryStatisticsCollectionFunc != nil {
		return m.QueryStatisticsCollectionFunc(ctx, q)
	}
	return nil, nil
}

func (m *MockHealthProvider) QueryWorkouts(ctx context.Context, start, end time.Time) ([]shared.WorkoutRecord, error) {
	if m.QueryWorkoutsFunc != nil {
		return m.QueryWorkoutsFunc(ctx, start, end)
	}
	return nil, nil
}

func (m *MockHealthProvider) QueryRoutes(ctx context.Context, workoutUUID string) ([]shared.RouteRef, error) {
	if m.QueryRoutesFunc != nil {
		return m.QueryRoutesFunc(ctx, workoutUUID)
	}
	return nil, nil
}

func (m *MockHealthProvider) QueryRouteLocations(ctx context.Context, routeUUID string, fn func(chunk []shared.Location, done bool) error) error {
	if m.QueryRouteLocationsFunc != nil {
		return m.QueryRouteLocationsFunc(ctx, routeUUID, fn)
	}
	return fn(nil, true)
}
