package shared

import (
	"context"
	"time"
)

// --- Provider Interfaces ---

// AuthorizationStatus mirrors the provider's per-record-type sharing state.
type AuthorizationStatus int

const (
	AuthorizationNotDetermined AuthorizationStatus = iota
	AuthorizationDenied
	AuthorizationAuthorized
)

func (s AuthorizationStatus) String() string {
	switch s {
	case AuthorizationNotDetermined:
		return "notDetermined"
	case AuthorizationDenied:
		return "denied"
	case AuthorizationAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// SortOrder controls how a sample query orders its results by start date.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortStartDateAscending
	SortStartDateDescending
)

// AggregationOption selects how a statistics query summarizes samples.
type AggregationOption int

const (
	AggregateCumulativeSum AggregationOption = iota
	AggregateDiscreteAverage
)

// BucketInterval is the statistics-collection interval size.
type BucketInterval int

const (
	IntervalHour BucketInterval = iota
	IntervalDay
	IntervalWeek
)

// SampleQuery describes a typed record query against the provider.
// A zero Start means "distant past"; a zero Limit means no limit.
type SampleQuery struct {
	RecordType  string
	Start       time.Time
	End         time.Time
	StrictStart bool
	StrictEnd   bool
	Sort        SortOrder
	Limit       int
}

// DeviceInfo is the raw device metadata attached to a sample, if any.
type DeviceInfo struct {
	Name            string
	Model           string
	Manufacturer    string
	HardwareVersion string
	SoftwareVersion string
}

// QuantitySample is one provider-native numeric observation. Value is in the
// provider's base unit for the record type; unit conversion happens downstream.
type QuantitySample struct {
	UUID           string
	RecordType     string
	Value          float64
	Start          time.Time
	End            time.Time
	SourceName     string
	SourceBundleID string
	Device         *DeviceInfo
	TimeZoneID     string
}

// CategorySample is one provider-native categorical observation (sleep,
// mindful session). Value is the provider's raw category code.
type CategorySample struct {
	UUID           string
	RecordType     string
	Value          int
	Start          time.Time
	End            time.Time
	SourceName     string
	SourceBundleID string
	Device         *DeviceInfo
	TimeZoneID     string
}

// Correlation is a composite record bundling related quantity samples
// (blood pressure: systolic + diastolic).
type Correlation struct {
	UUID       string
	RecordType string
	Start      time.Time
	End        time.Time
	Objects    []QuantitySample
}

// StatisticsQuery is a single-span aggregate over one record type.
type StatisticsQuery struct {
	RecordType  string
	Start       time.Time
	End         time.Time
	StrictStart bool
	Option      AggregationOption
}

// CollectionQuery is a bucketed statistics query anchored at Anchor.
type CollectionQuery struct {
	RecordType  string
	Start       time.Time
	End         time.Time
	StrictStart bool
	Anchor      time.Time
	Interval    BucketInterval
	Option      AggregationOption
}

// Statistic is one aggregate result. HasValue is false when the provider holds
// no samples for the span; callers must not treat that as zero.
type Statistic struct {
	Start    time.Time
	End      time.Time
	Value    float64
	HasValue bool
}

// WorkoutRecord is a provider workout as stored, before normalization.
type WorkoutRecord struct {
	UUID           string
	ActivityCode   uint32
	Start          time.Time
	End            time.Time
	DurationSec    float64
	EnergyKcal     *float64
	DistanceMeters *float64
	SourceName     string
	SourceBundleID string
}

// RouteRef identifies one route series attached to a workout.
type RouteRef struct {
	UUID string
}

// Location is one GPS fix inside a route series.
type Location struct {
	Timestamp time.Time
	Latitude  float64
	Longitude float64
	Altitude  float64
}

// HealthProvider is the external health-data source. Every query is a
// suspension point: implementations may block until the underlying store
// responds, and honor ctx cancellation where they can.
type HealthProvider interface {
	IsAvailable() bool

	AuthorizationStatus(recordType string) AuthorizationStatus
	// RequestAuthorization asks the user to grant read access for the given
	// record types. The provider cannot report per-type grants; it only
	// reports whether the prompt flow succeeded.
	RequestAuthorization(ctx context.Context, recordTypes []string) (bool, error)

	QuerySamples(ctx context.Context, q SampleQuery) ([]QuantitySample, error)
	QueryCategorySamples(ctx context.Context, q SampleQuery) ([]CategorySample, error)
	QueryCorrelations(ctx context.Context, q SampleQuery) ([]Correlation, error)

	QueryStatistics(ctx context.Context, q StatisticsQuery) (Statistic, error)
	QueryStatisticsCollection(ctx context.Context, q CollectionQuery) ([]Statistic, error)

	QueryWorkouts(ctx context.Context, start, end time.Time) ([]WorkoutRecord, error)
	QueryRoutes(ctx context.Context, workoutUUID string) ([]RouteRef, error)
	// QueryRouteLocations streams the locations of one route series. The
	// provider may deliver them in several chunks; done is true on the final
	// chunk. A non-nil error from fn aborts the stream.
	QueryRouteLocations(ctx context.Context, routeUUID string, fn func(chunk []Location, done bool) error) error
}
