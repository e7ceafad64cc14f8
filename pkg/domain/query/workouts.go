package query

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	shared "github.com/flomentum/health-bridge/pkg"
	"github.com/flomentum/health-bridge/pkg/domain/datatype"
	"github.com/flomentum/health-bridge/pkg/types"
)

// Sub-query kinds used as keys in the error summary.
const (
	subQueryHeartRate = "heart-rate"
	subQueryRoute     = "route"
)

// defaultEnrichmentConcurrency bounds how many workouts are enriched at once.
const defaultEnrichmentConcurrency = 8

// Orchestrator fans out per-workout enrichment sub-queries (heart rate,
// route, steps) and joins the results into enriched workout records.
type Orchestrator struct {
	provider shared.HealthProvider
	logger   *slog.Logger
	limit    int
}

func NewOrchestrator(provider shared.HealthProvider, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		logger:   logger.With("component", "workout-orchestrator"),
		limit:    defaultEnrichmentConcurrency,
	}
}

// errorSummary keeps the most recent error message per sub-query kind across
// all workouts. Single writer at a time; per-workout attribution is not
// preserved.
type errorSummary struct {
	mu   sync.Mutex
	errs map[string]string
}

func (s *errorSummary) record(kind, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[kind] = msg
}

// QueryWorkouts fetches all workouts in [start, end) and enriches each with
// the requested sub-series. Sub-queries run concurrently and fail
// independently: a failed sub-query yields an empty series and an entry in
// the errors summary, never aborting siblings or other workouts. The overall
// call fails only if the workout-list fetch itself fails.
//
// The returned workout order matches the order the provider returned them,
// regardless of enrichment completion order. No timeout is imposed here;
// callers bound the call through ctx if they need one.
func (o *Orchestrator) QueryWorkouts(ctx context.Context, start, end time.Time, includeHeartRate, includeRoute, includeSteps bool) (*types.WorkoutsResponse, error) {
	records, err := o.provider.QueryWorkouts(ctx, start, end)
	if err != nil {
		return nil, NewProviderError("Error querying workouts", "", err)
	}

	o.logger.Debug("enriching workouts",
		"count", len(records),
		"include_heart_rate", includeHeartRate,
		"include_route", includeRoute,
		"include_steps", includeSteps,
	)

	summary := &errorSummary{errs: make(map[string]string)}
	results := make([]types.Workout, len(records))

	// Each worker writes only its own slot of results, so the slice needs no
	// lock; the error summary is the only contended state.
	var g errgroup.Group
	g.SetLimit(o.limit)
	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			results[i] = o.enrichWorkout(ctx, record, includeHeartRate, includeRoute, includeSteps, summary)
			return nil
		})
	}
	// Workers never return errors; failures land in the summary instead.
	_ = g.Wait()

	return &types.WorkoutsResponse{Workouts: results, Errors: summary.errs}, nil
}

// enrichWorkout builds the base workout fields synchronously, then launches
// the requested sub-queries concurrently and joins them. Each sub-query
// writes a distinct local; the join (wg.Wait) orders those writes before the
// reads below.
func (o *Orchestrator) enrichWorkout(ctx context.Context, record shared.WorkoutRecord, includeHeartRate, includeRoute, includeSteps bool, summary *errorSummary) types.Workout {
	workout := types.Workout{
		ID:             record.UUID,
		StartDate:      record.Start.Format(time.RFC3339),
		EndDate:        record.End.Format(time.RFC3339),
		WorkoutType:    datatype.WorkoutTypeLabel(record.ActivityCode),
		SourceName:     record.SourceName,
		SourceBundleID: record.SourceBundleID,
		Duration:       record.DurationSec,
	}
	if record.EnergyKcal != nil {
		workout.Calories = *record.EnergyKcal
	}
	if record.DistanceMeters != nil {
		workout.Distance = *record.DistanceMeters
	}

	var (
		wg        sync.WaitGroup
		heartRate []types.HeartRateSample
		route     []types.RoutePoint
		steps     *float64
	)

	if includeHeartRate {
		wg.Add(1)
		go func() {
			defer wg.Done()
			heartRate = o.queryHeartRate(ctx, record, summary)
		}()
	}
	if includeRoute {
		wg.Add(1)
		go func() {
			defer wg.Done()
			route = o.queryRoute(ctx, record, summary)
		}()
	}
	if includeSteps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			steps = o.querySteps(ctx, record)
		}()
	}
	wg.Wait()

	if includeHeartRate {
		workout.HeartRate = heartRate
	}
	if includeRoute {
		workout.Route = route
	}
	workout.Steps = steps

	return workout
}

// queryHeartRate fetches all heart-rate samples inside the workout span in
// provider order. On provider failure it records the error and yields an
// empty series.
func (o *Orchestrator) queryHeartRate(ctx context.Context, record shared.WorkoutRecord, summary *errorSummary) []types.HeartRateSample {
	samples, err := o.provider.QuerySamples(ctx, shared.SampleQuery{
		RecordType:  shared.RecordTypeHeartRate,
		Start:       record.Start,
		End:         record.End,
		StrictStart: true,
	})
	if err != nil {
		o.logger.Warn("heart rate sub-query failed", "workout_id", record.UUID, "error", err)
		summary.record(subQueryHeartRate, err.Error())
		return []types.HeartRateSample{}
	}

	result := make([]types.HeartRateSample, 0, len(samples))
	for _, sample := range samples {
		bpm, _, err := datatype.Normalize(datatype.TypeHeartRate, sample.Value)
		if err != nil {
			continue
		}
		result = append(result, types.HeartRateSample{
			Timestamp: sample.Start.Format(time.RFC3339),
			BPM:       bpm,
		})
	}
	return result
}

// queryRoute fetches every route series attached to the workout and joins
// their location streams. Each stream delivers locations in asynchronous
// chunks; a single mutex guards the growing accumulator so exactly one
// writer appends at a time. The sub-query resolves only once every series
// has reported completion.
func (o *Orchestrator) queryRoute(ctx context.Context, record shared.WorkoutRecord, summary *errorSummary) []types.RoutePoint {
	refs, err := o.provider.QueryRoutes(ctx, record.UUID)
	if err != nil {
		o.logger.Warn("route sub-query failed", "workout_id", record.UUID, "error", err)
		summary.record(subQueryRoute, err.Error())
		return []types.RoutePoint{}
	}

	var (
		mu     sync.Mutex
		points = []types.RoutePoint{}
		wg     sync.WaitGroup
	)

	for _, ref := range refs {
		wg.Add(1)
		go func(ref shared.RouteRef) {
			defer wg.Done()
			err := o.provider.QueryRouteLocations(ctx, ref.UUID, func(chunk []shared.Location, done bool) error {
				converted := make([]types.RoutePoint, 0, len(chunk))
				for _, loc := range chunk {
					converted = append(converted, types.RoutePoint{
						Timestamp: loc.Timestamp.Format(time.RFC3339),
						Lat:       loc.Latitude,
						Lng:       loc.Longitude,
						Alt:       loc.Altitude,
					})
				}
				mu.Lock()
				points = append(points, converted...)
				mu.Unlock()
				return nil
			})
			if err != nil {
				o.logger.Warn("route location stream failed", "route_id", ref.UUID, "error", err)
			}
		}(ref)
	}
	wg.Wait()

	return points
}

// querySteps runs a bucket-free cumulative-sum query over the workout's exact
// span. A statistic with no data means the field stays absent, not zero.
func (o *Orchestrator) querySteps(ctx context.Context, record shared.WorkoutRecord) *float64 {
	stat, err := o.provider.QueryStatistics(ctx, shared.StatisticsQuery{
		RecordType:  shared.RecordTypeStepCount,
		Start:       record.Start,
		End:         record.End,
		StrictStart: true,
		Option:      shared.AggregateCumulativeSum,
	})
	if err != nil {
		o.logger.Warn("steps sub-query failed", "workout_id", record.UUID, "error", err)
		return nil
	}
	if !stat.HasValue {
		return nil
	}
	return &stat.Value
}
