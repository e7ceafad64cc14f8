package shared

// Provider record-type identifiers. These are the implementation-internal
// names the provider is queried with; canonical data-type ids map onto them
// via the datatype catalog.
const (
	RecordTypeStepCount              = "stepCount"
	RecordTypeBodyMass               = "bodyMass"
	RecordTypeHeight                 = "height"
	RecordTypeHeartRate              = "heartRate"
	RecordTypeHRV                    = "heartRateVariabilitySDNN"
	RecordTypeActiveEnergy           = "activeEnergyBurned"
	RecordTypeBasalEnergy            = "basalEnergyBurned"
	RecordTypeDistanceWalkingRunning = "distanceWalkingRunning"
	RecordTypeDistanceCycling        = "distanceCycling"
	RecordTypeDistanceSwimming       = "distanceSwimming"
	RecordTypeDistanceSnowSports     = "distanceDownhillSnowSports"
	RecordTypeBodyFat                = "bodyFatPercentage"
	RecordTypeBloodPressure          = "bloodPressure"
	RecordTypeBPSystolic             = "bloodPressureSystolic"
	RecordTypeBPDiastolic            = "bloodPressureDiastolic"
	RecordTypeSleepAnalysis          = "sleepAnalysis"
	RecordTypeMindfulSession         = "mindfulSession"
	RecordTypeWorkout                = "workout"
	RecordTypeWorkoutRoute           = "workoutRoute"
)

// Sleep-analysis category codes as stored by the provider.
const (
	SleepCategoryInBed  = 0
	SleepCategoryAsleep = 1
)

// PermissionRecordTypes maps permission names (canonical READ_* names plus the
// lower-case aliases callers use in practice) to the record types they cover.
// Pure data, no algorithmic behavior. Unknown names resolve to nothing.
var PermissionRecordTypes = map[string][]string{
	"READ_STEPS":           {RecordTypeStepCount},
	"READ_WEIGHT":          {RecordTypeBodyMass},
	"READ_HEIGHT":          {RecordTypeHeight},
	"READ_TOTAL_CALORIES":  {RecordTypeActiveEnergy, RecordTypeBasalEnergy},
	"READ_ACTIVE_CALORIES": {RecordTypeActiveEnergy},
	"READ_WORKOUTS":        {RecordTypeWorkout},
	"READ_HEART_RATE":      {RecordTypeHeartRate},
	"READ_ROUTE":           {RecordTypeWorkoutRoute},
	"READ_DISTANCE": {
		RecordTypeDistanceCycling,
		RecordTypeDistanceSwimming,
		RecordTypeDistanceWalkingRunning,
		RecordTypeDistanceSnowSports,
	},
	"READ_MINDFULNESS":    {RecordTypeMindfulSession},
	"READ_HRV":            {RecordTypeHRV},
	"READ_BLOOD_PRESSURE": {RecordTypeBPSystolic, RecordTypeBPDiastolic},
	"READ_BODY_FAT":       {RecordTypeBodyFat},
	"READ_SLEEP":          {RecordTypeSleepAnalysis},

	// Alternative permission names.
	"steps":                       {RecordTypeStepCount},
	"weight":                      {RecordTypeBodyMass},
	"height":                      {RecordTypeHeight},
	"calories":                    {RecordTypeActiveEnergy, RecordTypeBasalEnergy},
	"total-calories":              {RecordTypeActiveEnergy, RecordTypeBasalEnergy},
	"active-calories":             {RecordTypeActiveEnergy},
	"workouts":                    {RecordTypeWorkout},
	"heart-rate":                  {RecordTypeHeartRate},
	"heartrate":                   {RecordTypeHeartRate},
	"heart_rate":                  {RecordTypeHeartRate},
	"route":                       {RecordTypeWorkoutRoute},
	"distance":                    {RecordTypeDistanceCycling, RecordTypeDistanceSwimming, RecordTypeDistanceWalkingRunning, RecordTypeDistanceSnowSports},
	"mindfulness":                 {RecordTypeMindfulSession},
	"hrv":                         {RecordTypeHRV},
	"heart_rate_variability_sdnn": {RecordTypeHRV},
	"blood-pressure":              {RecordTypeBPSystolic, RecordTypeBPDiastolic},
	"bloodpressure":               {RecordTypeBPSystolic, RecordTypeBPDiastolic},
	"blood_pressure_systolic":     {RecordTypeBPSystolic, RecordTypeBPDiastolic},
	"blood_pressure_diastolic":    {RecordTypeBPSystolic, RecordTypeBPDiastolic},
	"body-fat":                    {RecordTypeBodyFat},
	"bodyfat":                     {RecordTypeBodyFat},
	"body_fat":                    {RecordTypeBodyFat},
	"sleep":                       {RecordTypeSleepAnalysis},
	"sleep-analysis":              {RecordTypeSleepAnalysis},
}

const (
	DefaultListenAddr = ":8080" // Can be overridden by HEALTH_BRIDGE_ADDR
)
