// Package query holds the provider-facing query engines: latest samples,
// bucketed aggregates, sleep windows and workout enrichment.
package query

import (
	"context"
	"log/slog"
	"time"

	shared "github.com/flomentum/health-bridge/pkg"
	"github.com/flomentum/health-bridge/pkg/domain/datatype"
	"github.com/flomentum/health-bridge/pkg/types"
)

// SampleEngine answers "latest sample" queries for one canonical data type.
type SampleEngine struct {
	provider shared.HealthProvider
	logger   *slog.Logger
	now      func() time.Time
}

func NewSampleEngine(provider shared.HealthProvider, logger *slog.Logger) *SampleEngine {
	return &SampleEngine{
		provider: provider,
		logger:   logger.With("component", "sample-engine"),
		now:      time.Now,
	}
}

// QueryLatest fetches the single most recent record for the given canonical
// data type and normalizes it into the wire shape. Sleep and blood pressure
// resolve to category/correlation records and take dedicated branches; every
// other supported id goes through the datatype catalog.
func (e *SampleEngine) QueryLatest(ctx context.Context, dataType string) (*types.LatestSampleResponse, error) {
	if dataType == "" {
		return nil, NewValidationError("Missing data type")
	}

	e.logger.Debug("querying latest sample", "data_type", dataType)

	switch dataType {
	case datatype.TypeSleep, datatype.TypeSleepAnalysis:
		return e.latestSleep(ctx)
	case datatype.TypeBloodPressure:
		return e.latestBloodPressure(ctx)
	}

	desc, ok := datatype.Resolve(dataType)
	if !ok {
		return nil, NewValidationError("Invalid or unsupported data type")
	}

	samples, err := e.provider.QuerySamples(ctx, shared.SampleQuery{
		RecordType: desc.QueryRecordType,
		End:        e.now(),
		StrictEnd:  true,
		Sort:       shared.SortStartDateDescending,
		Limit:      1,
	})
	if err != nil {
		return nil, NewProviderError("Error fetching latest sample", CodeNoSample, err)
	}
	if len(samples) == 0 {
		return nil, NewNotFoundError("No sample found", CodeNoSample)
	}
	sample := samples[0]

	value, unit, err := datatype.Normalize(dataType, sample.Value)
	if err != nil {
		return nil, NewValidationError("Invalid or unsupported data type")
	}

	e.logger.Debug("latest sample fetched", "data_type", dataType, "value", value, "unit", unit)

	resp := &types.LatestSampleResponse{
		Value:     &value,
		Timestamp: msEpoch(sample.Start),
		Unit:      unit,
	}

	// Body fat carries its sample span alongside the value, matching the
	// sleep response shape.
	if dataType == datatype.TypeBodyFat {
		start := msEpoch(sample.Start)
		end := msEpoch(sample.End)
		resp.StartDate = &start
		resp.EndDate = &end
	}

	return resp, nil
}

func (e *SampleEngine) latestSleep(ctx context.Context) (*types.LatestSampleResponse, error) {
	samples, err := e.provider.QueryCategorySamples(ctx, shared.SampleQuery{
		RecordType: shared.RecordTypeSleepAnalysis,
		End:        e.now(),
		StrictEnd:  true,
		Sort:       shared.SortStartDateDescending,
		Limit:      1,
	})
	if err != nil {
		return nil, NewProviderError("Error fetching latest sleep sample", CodeNoSample, err)
	}
	if len(samples) == 0 {
		return nil, NewNotFoundError("No sleep sample found", CodeNoSample)
	}

	segment := buildSleepSegment(samples[0])
	hours := segment.Duration

	return &types.LatestSampleResponse{
		Value:     &hours,
		Unit:      "h",
		Timestamp: msEpoch(samples[0].Start),
		RawSample: &segment,
	}, nil
}

func (e *SampleEngine) latestBloodPressure(ctx context.Context) (*types.LatestSampleResponse, error) {
	correlations, err := e.provider.QueryCorrelations(ctx, shared.SampleQuery{
		RecordType: shared.RecordTypeBloodPressure,
		End:        e.now(),
		StrictEnd:  true,
		Sort:       shared.SortStartDateDescending,
		Limit:      1,
	})
	if err != nil {
		return nil, NewProviderError("Error fetching latest blood pressure sample", CodeNoSample, err)
	}
	if len(correlations) == 0 {
		return nil, NewNotFoundError("No blood pressure sample found", CodeNoSample)
	}
	correlation := correlations[0]

	var systolic, diastolic *float64
	for i := range correlation.Objects {
		obj := &correlation.Objects[i]
		switch obj.RecordType {
		case shared.RecordTypeBPSystolic:
			if systolic == nil {
				systolic = &obj.Value
			}
		case shared.RecordTypeBPDiastolic:
			if diastolic == nil {
				diastolic = &obj.Value
			}
		}
	}
	if systolic == nil || diastolic == nil {
		return nil, NewNotFoundError("Incomplete blood pressure data", CodeNoSample)
	}

	return &types.LatestSampleResponse{
		Systolic:  systolic,
		Diastolic: diastolic,
		Timestamp: msEpoch(correlation.Start),
		Unit:      "mmHg",
	}, nil
}
