package query

import (
	"context"
	"log/slog"
	"time"

	shared "github.com/flomentum/health-bridge/pkg"
	"github.com/flomentum/health-bridge/pkg/types"
)

// SleepEngine assembles normalized sleep segments over a query window.
type SleepEngine struct {
	provider shared.HealthProvider
	logger   *slog.Logger
}

func NewSleepEngine(provider shared.HealthProvider, logger *slog.Logger) *SleepEngine {
	return &SleepEngine{
		provider: provider,
		logger:   logger.With("component", "sleep-engine"),
	}
}

// QuerySleep returns every sleep segment fully contained in [start, end]
// in ascending start order, plus the summed duration. An empty window is a
// valid result, not an error.
func (e *SleepEngine) QuerySleep(ctx context.Context, start, end time.Time) (*types.SleepResponse, error) {
	// Ascending sort is requested explicitly; provider default order is not
	// relied on.
	samples, err := e.provider.QueryCategorySamples(ctx, shared.SampleQuery{
		RecordType:  shared.RecordTypeSleepAnalysis,
		Start:       start,
		End:         end,
		StrictStart: true,
		StrictEnd:   true,
		Sort:        shared.SortStartDateAscending,
	})
	if err != nil {
		return nil, NewProviderError("Error fetching sleep samples", CodeSleepQueryError, err)
	}

	resp := &types.SleepResponse{Segments: []types.SleepSegment{}}
	for _, sample := range samples {
		segment := buildSleepSegment(sample)
		resp.TotalHours += segment.Duration
		resp.Segments = append(resp.Segments, segment)
	}

	e.logger.Debug("sleep window assembled",
		"segments", len(resp.Segments),
		"total_hours", resp.TotalHours,
	)

	return resp, nil
}

// buildSleepSegment normalizes one sleep category sample: duration in hours,
// in-bed/asleep state from the raw category code, and the zone offset at the
// segment's start instant.
func buildSleepSegment(sample shared.CategorySample) types.SleepSegment {
	hours := sample.End.Sub(sample.Start).Hours()

	state := types.SleepStateAsleep
	if sample.Value == shared.SleepCategoryInBed {
		state = types.SleepStateInBed
	}

	return types.SleepSegment{
		UUID:           sample.UUID,
		TimeZone:       zoneOffsetString(sampleLocation(sample.TimeZoneID), sample.Start),
		StartDate:      sample.Start.Format(time.RFC3339),
		EndDate:        sample.End.Format(time.RFC3339),
		Duration:       hours,
		SleepState:     state,
		Source:         sample.SourceName,
		SourceBundleID: sample.SourceBundleID,
		Device:         deviceInfo(sample.Device),
	}
}

func deviceInfo(d *shared.DeviceInfo) *types.DeviceInfo {
	if d == nil {
		return nil
	}
	return &types.DeviceInfo{
		Name:            d.Name,
		Model:           d.Model,
		Manufacturer:    d.Manufacturer,
		HardwareVersion: d.HardwareVersion,
		SoftwareVersion: d.SoftwareVersion,
	}
}
