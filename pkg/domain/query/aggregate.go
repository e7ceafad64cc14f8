package query

import (
	"context"
	"log/slog"
	"sort"
	"time"

	shared "github.com/flomentum/health-bridge/pkg"
	"github.com/flomentum/health-bridge/pkg/domain/datatype"
	"github.com/flomentum/health-bridge/pkg/types"
)

// AggregateEngine answers time-bucketed statistics queries.
type AggregateEngine struct {
	provider shared.HealthProvider
	logger   *slog.Logger
}

func NewAggregateEngine(provider shared.HealthProvider, logger *slog.Logger) *AggregateEngine {
	return &AggregateEngine{
		provider: provider,
		logger:   logger.With("component", "aggregate-engine"),
	}
}

func bucketInterval(bucket string) (shared.BucketInterval, bool) {
	switch bucket {
	case "hour":
		return shared.IntervalHour, true
	case "day":
		return shared.IntervalDay, true
	case "week":
		return shared.IntervalWeek, true
	default:
		return 0, false
	}
}

// QueryAggregated buckets samples of one data type over [start, end) into
// hour/day/week intervals anchored at start. Cumulative types are summed per
// bucket, discrete types averaged. Intervals the provider holds no statistic
// for are skipped, never zero-filled; boundaries and ordering are
// deterministic for identical inputs.
func (e *AggregateEngine) QueryAggregated(ctx context.Context, start, end time.Time, dataType, bucket string) (*types.AggregatedResponse, error) {
	interval, ok := bucketInterval(bucket)
	if !ok {
		return nil, NewValidationError("Invalid bucket")
	}

	// Mindfulness has no quantity form; it is grouped per local calendar day
	// from raw category records.
	if dataType == datatype.TypeMindfulness {
		return e.mindfulnessDaily(ctx, start, end)
	}

	desc, ok := datatype.Resolve(dataType)
	if !ok {
		return nil, NewValidationError("Invalid data type")
	}

	option := shared.AggregateCumulativeSum
	if desc.Style == datatype.StyleDiscrete {
		option = shared.AggregateDiscreteAverage
	}

	stats, err := e.provider.QueryStatisticsCollection(ctx, shared.CollectionQuery{
		RecordType:  desc.QueryRecordType,
		Start:       start,
		End:         end,
		StrictStart: true,
		Anchor:      start,
		Interval:    interval,
		Option:      option,
	})
	if err != nil {
		return nil, NewProviderError("Error fetching aggregated data", "", err)
	}

	resp := &types.AggregatedResponse{AggregatedData: []types.AggregatedBucket{}}
	for _, stat := range stats {
		if !stat.HasValue {
			continue
		}
		// dataType resolved above, so normalization cannot fail here.
		value, _, _ := datatype.Normalize(dataType, stat.Value)
		resp.AggregatedData = append(resp.AggregatedData, types.AggregatedBucket{
			StartDate: msEpoch(stat.Start),
			EndDate:   msEpoch(stat.End),
			Value:     value,
		})
	}

	e.logger.Debug("aggregated query complete",
		"data_type", dataType,
		"bucket", bucket,
		"buckets", len(resp.AggregatedData),
	)

	return resp, nil
}

// mindfulnessDaily sums mindful-session durations per local calendar day.
// Days without a session produce no bucket.
func (e *AggregateEngine) mindfulnessDaily(ctx context.Context, start, end time.Time) (*types.AggregatedResponse, error) {
	samples, err := e.provider.QueryCategorySamples(ctx, shared.SampleQuery{
		RecordType:  shared.RecordTypeMindfulSession,
		Start:       start,
		End:         end,
		StrictStart: true,
	})
	if err != nil {
		return nil, NewProviderError("Error fetching aggregated data", "", err)
	}

	daily := make(map[time.Time]float64)
	for _, sample := range samples {
		local := sample.Start.In(time.Local)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
		daily[day] += sample.End.Sub(sample.Start).Seconds()
	}

	days := make([]time.Time, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	resp := &types.AggregatedResponse{AggregatedData: []types.AggregatedBucket{}}
	for _, day := range days {
		resp.AggregatedData = append(resp.AggregatedData, types.AggregatedBucket{
			StartDate: msEpoch(day),
			EndDate:   msEpoch(day.AddDate(0, 0, 1)),
			Value:     daily[day],
		})
	}

	return resp, nil
}
