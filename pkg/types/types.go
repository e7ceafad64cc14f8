// Package types holds the wire contract of the bridge. Field names are the
// stable contract consumed by callers; do not rename them.
package types

// DeviceInfo mirrors the raw device metadata a sample may carry.
type DeviceInfo struct {
	Name            string `json:"name,omitempty"`
	Model           string `json:"model,omitempty"`
	Manufacturer    string `json:"manufacturer,omitempty"`
	HardwareVersion string `json:"hardwareVersion,omitempty"`
	SoftwareVersion string `json:"softwareVersion,omitempty"`
}

// SleepSegment is one normalized sleep record. Duration is in hours; TimeZone
// is a signed "+HH:MM" offset taken at the segment's start instant. The same
// shape is echoed as rawSample on latest-sleep responses.
type SleepSegment struct {
	UUID           string      `json:"uuid"`
	TimeZone       string      `json:"timeZone"`
	StartDate      string      `json:"startDate"`
	EndDate        string      `json:"endDate"`
	Duration       float64     `json:"duration"`
	SleepState     string      `json:"sleepState"`
	Source         string      `json:"source"`
	SourceBundleID string      `json:"sourceBundleId"`
	Device         *DeviceInfo `json:"device"`
}

// Sleep states surfaced on SleepSegment.
const (
	SleepStateInBed  = "InBed"
	SleepStateAsleep = "Asleep"
)

// LatestSampleResponse is the result of a latest-sample query. Exactly one of
// the three layouts is populated: value (simple quantity and sleep),
// systolic+diastolic (blood pressure), or value with start/end echo (body fat).
type LatestSampleResponse struct {
	Value     *float64      `json:"value,omitempty"`
	Systolic  *float64      `json:"systolic,omitempty"`
	Diastolic *float64      `json:"diastolic,omitempty"`
	Timestamp int64         `json:"timestamp"`
	Unit      string        `json:"unit"`
	StartDate *int64        `json:"startDate,omitempty"`
	EndDate   *int64        `json:"endDate,omitempty"`
	RawSample *SleepSegment `json:"rawSample,omitempty"`
}

// AggregatedBucket is one time-bucket summary. Start/end are ms epoch.
// Buckets the provider has no statistic for are never emitted.
type AggregatedBucket struct {
	StartDate int64   `json:"startDate"`
	EndDate   int64   `json:"endDate"`
	Value     float64 `json:"value"`
}

// AggregatedResponse wraps the ordered bucket sequence.
type AggregatedResponse struct {
	AggregatedData []AggregatedBucket `json:"aggregatedData"`
}

// SleepResponse is the result of a sleep-window query.
type SleepResponse struct {
	TotalHours float64        `json:"totalHours"`
	Segments   []SleepSegment `json:"segments"`
}

// HeartRateSample is one heart-rate observation inside a workout span.
type HeartRateSample struct {
	Timestamp string  `json:"timestamp"`
	BPM       float64 `json:"bpm"`
}

// RoutePoint is one GPS fix of a workout route.
type RoutePoint struct {
	Timestamp string  `json:"timestamp"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Alt       float64 `json:"alt"`
}

// Workout is one enriched workout. HeartRate and Route are present iff the
// corresponding inclusion flag was set on the request (empty arrays when
// requested but empty); Steps is omitted when the provider has no statistic.
type Workout struct {
	ID             string            `json:"id"`
	StartDate      string            `json:"startDate"`
	EndDate        string            `json:"endDate"`
	WorkoutType    string            `json:"workoutType"`
	SourceName     string            `json:"sourceName"`
	SourceBundleID string            `json:"sourceBundleId"`
	Duration       float64           `json:"duration"`
	Calories       float64           `json:"calories"`
	Distance       float64           `json:"distance"`
	Steps          *float64          `json:"steps,omitempty"`
	HeartRate      []HeartRateSample `json:"heartRate,omitempty"`
	Route          []RoutePoint      `json:"route,omitempty"`
}

// WorkoutsResponse carries the enriched workouts plus a summary of sub-query
// failures keyed by kind ("heart-rate", "route"). Only the most recent
// message per kind survives.
type WorkoutsResponse struct {
	Workouts []Workout         `json:"workouts"`
	Errors   map[string]string `json:"errors"`
}

// --- Requests ---

type LatestSampleRequest struct {
	DataType string `json:"dataType"`
}

type AggregatedRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	DataType  string `json:"dataType"`
	Bucket    string `json:"bucket"`
}

type SleepRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type WorkoutsRequest struct {
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	IncludeHeartRate *bool  `json:"includeHeartRate"`
	IncludeRoute     *bool  `json:"includeRoute"`
	IncludeSteps     *bool  `json:"includeSteps"`
}

type PermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

// CheckPermissionsResponse reports the authorization state per permission
// name: "authorized", "denied", "notDetermined" or "unknown".
type CheckPermissionsResponse struct {
	Permissions map[string]string `json:"permissions"`
}

// RequestPermissionsResponse reports the assumed grant per permission name.
type RequestPermissionsResponse struct {
	Permissions map[string]bool `json:"permissions"`
}

type AvailableResponse struct {
	Available bool `json:"available"`
}
