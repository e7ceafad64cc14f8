// Package healthstore is a SQLite-backed HealthProvider used for local
// development and the demo binary. It implements the full provider query
// surface, including chunked route-location streaming.
package healthstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	shared "github.com/flomentum/health-bridge/pkg"
)

const schema = `
CREATE TABLE IF NOT EXISTS auth_status (
	record_type TEXT PRIMARY KEY,
	status      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS quantity_samples (
	uuid             TEXT PRIMARY KEY,
	record_type      TEXT NOT NULL,
	value            REAL NOT NULL,
	start_ms         INTEGER NOT NULL,
	end_ms           INTEGER NOT NULL,
	source_name      TEXT NOT NULL DEFAULT '',
	source_bundle_id TEXT NOT NULL DEFAULT '',
	time_zone        TEXT NOT NULL DEFAULT '',
	correlation_uuid TEXT
);
CREATE INDEX IF NOT EXISTS idx_quantity_type_start ON quantity_samples (record_type, start_ms);
CREATE TABLE IF NOT EXISTS category_samples (
	uuid             TEXT PRIMARY KEY,
	record_type      TEXT NOT NULL,
	value            INTEGER NOT NULL,
	start_ms         INTEGER NOT NULL,
	end_ms           INTEGER NOT NULL,
	source_name      TEXT NOT NULL DEFAULT '',
	source_bundle_id TEXT NOT NULL DEFAULT '',
	time_zone        TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_category_type_start ON category_samples (record_type, start_ms);
CREATE TABLE IF NOT EXISTS correlations (
	uuid        TEXT PRIMARY KEY,
	record_type TEXT NOT NULL,
	start_ms    INTEGER NOT NULL,
	end_ms      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS workouts (
	uuid             TEXT PRIMARY KEY,
	activity_code    INTEGER NOT NULL,
	start_ms         INTEGER NOT NULL,
	end_ms           INTEGER NOT NULL,
	duration_sec     REAL NOT NULL,
	energy_kcal      REAL,
	distance_m       REAL,
	source_name      TEXT NOT NULL DEFAULT '',
	source_bundle_id TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS routes (
	uuid         TEXT PRIMARY KEY,
	workout_uuid TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS route_points (
	route_uuid TEXT NOT NULL,
	ts_ms      INTEGER NOT NULL,
	lat        REAL NOT NULL,
	lng        REAL NOT NULL,
	alt        REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_route_points ON route_points (route_uuid, ts_ms);
`

// locationChunkSize is how many route points are delivered per callback.
const locationChunkSize = 100

// Store is a HealthProvider backed by a local SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) IsAvailable() bool {
	return s.db.Ping() == nil
}

func (s *Store) AuthorizationStatus(recordType string) shared.AuthorizationStatus {
	var status int
	err := s.db.QueryRow("SELECT status FROM auth_status WHERE record_type = ?", recordType).Scan(&status)
	if err != nil {
		return shared.AuthorizationNotDetermined
	}
	return shared.AuthorizationStatus(status)
}

func (s *Store) RequestAuthorization(ctx context.Context, recordTypes []string) (bool, error) {
	for _, recordType := range recordTypes {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO auth_status (record_type, status) VALUES (?, ?) ON CONFLICT(record_type) DO UPDATE SET status = excluded.status",
			recordType, int(shared.AuthorizationAuthorized))
		if err != nil {
			return false, fmt.Errorf("failed to store authorization: %w", err)
		}
	}
	return true, nil
}

// sampleWhere translates a SampleQuery's time predicate, sort and limit into
// SQL. Non-strict boundaries admit samples that merely overlap the window,
// strict ones require the sample's own start/end inside it.
func sampleWhere(q shared.SampleQuery) (string, []any) {
	clause := "WHERE record_type = ?"
	args := []any{q.RecordType}

	if !q.Start.IsZero() {
		if q.StrictStart {
			clause += " AND start_ms >= ?"
		} else {
			clause += " AND end_ms >= ?"
		}
		args = append(args, q.Start.UnixMilli())
	}
	if !q.End.IsZero() {
		if q.StrictEnd {
			clause += " AND end_ms <= ?"
		} else {
			clause += " AND start_ms <= ?"
		}
		args = append(args, q.End.UnixMilli())
	}

	switch q.Sort {
	case shared.SortStartDateAscending:
		clause += " ORDER BY start_ms ASC"
	case shared.SortStartDateDescending:
		clause += " ORDER BY start_ms DESC"
	default:
		// Unspecified order still needs to be deterministic for tests.
		clause += " ORDER BY rowid ASC"
	}

	if q.Limit > 0 {
		clause += " LIMIT ?"
		args = append(args, q.Limit)
	}

	return clause, args
}

func (s *Store) QuerySamples(ctx context.Context, q shared.SampleQuery) ([]shared.QuantitySample, error) {
	clause, args := sampleWhere(q)
	rows, err := s.db.QueryContext(ctx,
		"SELECT uuid, record_type, value, start_ms, end_ms, source_name, source_bundle_id, time_zone FROM quantity_samples "+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var samples []shared.QuantitySample
	for rows.Next() {
		var sample shared.QuantitySample
		var startMs, endMs int64
		if err := rows.Scan(&sample.UUID, &sample.RecordType, &sample.Value, &startMs, &endMs,
			&sample.SourceName, &sample.SourceBundleID, &sample.TimeZoneID); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		sample.Start = time.UnixMilli(startMs)
		sample.End = time.UnixMilli(endMs)
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

func (s *Store) QueryCategorySamples(ctx context.Context, q shared.SampleQuery) ([]shared.CategorySample, error) {
	clause, args := sampleWhere(q)
	rows, err := s.db.QueryContext(ctx,
		"SELECT uuid, record_type, value, start_ms, end_ms, source_name, source_bundle_id, time_zone FROM category_samples "+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var samples []shared.CategorySample
	for rows.Next() {
		var sample shared.CategorySample
		var startMs, endMs int64
		if err := rows.Scan(&sample.UUID, &sample.RecordType, &sample.Value, &startMs, &endMs,
			&sample.SourceName, &sample.SourceBundleID, &sample.TimeZoneID); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		sample.Start = time.UnixMilli(startMs)
		sample.End = time.UnixMilli(endMs)
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

func (s *Store) QueryCorrelations(ctx context.Context, q shared.SampleQuery) ([]shared.Correlation, error) {
	clause, args := sampleWhere(q)
	rows, err := s.db.QueryContext(ctx,
		"SELECT uuid, record_type, start_ms, end_ms FROM correlations "+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var correlations []shared.Correlation
	for rows.Next() {
		var c shared.Correlation
		var startMs, endMs int64
		if err := rows.Scan(&c.UUID, &c.RecordType, &startMs, &endMs); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		c.Start = time.UnixMilli(startMs)
		c.End = time.UnixMilli(endMs)
		correlations = append(correlations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range correlations {
		memberRows, err := s.db.QueryContext(ctx,
			"SELECT uuid, record_type, value, start_ms, end_ms, source_name, source_bundle_id, time_zone FROM quantity_samples WHERE correlation_uuid = ? ORDER BY rowid ASC",
			correlations[i].UUID)
		if err != nil {
			return nil, fmt.Errorf("query failed: %w", err)
		}
		for memberRows.Next() {
			var sample shared.QuantitySample
			var startMs, endMs int64
			if err := memberRows.Scan(&sample.UUID, &sample.RecordType, &sample.Value, &startMs, &endMs,
				&sample.SourceName, &sample.SourceBundleID, &sample.TimeZoneID); err != nil {
				memberRows.Close()
				return nil, fmt.Errorf("scan failed: %w", err)
			}
			sample.Start = time.UnixMilli(startMs)
			sample.End = time.UnixMilli(endMs)
			correlations[i].Objects = append(correlations[i].Objects, sample)
		}
		if err := memberRows.Err(); err != nil {
			memberRows.Close()
			return nil, err
		}
		memberRows.Close()
	}

	return correlations, nil
}

func (s *Store) aggregate(ctx context.Context, recordType string, start, end time.Time, strictStart bool, option shared.AggregationOption) (shared.Statistic, error) {
	agg := "SUM(value)"
	if option == shared.AggregateDiscreteAverage {
		agg = "AVG(value)"
	}
	startCol := "end_ms"
	if strictStart {
		startCol = "start_ms"
	}

	var value sql.NullFloat64
	var count int
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s, COUNT(*) FROM quantity_samples WHERE record_type = ? AND %s >= ? AND start_ms < ?", agg, startCol),
		recordType, start.UnixMilli(), end.UnixMilli()).Scan(&value, &count)
	if err != nil {
		return shared.Statistic{}, fmt.Errorf("statistics query failed: %w", err)
	}

	stat := shared.Statistic{Start: start, End: end}
	if count > 0 && value.Valid {
		stat.Value = value.Float64
		stat.HasValue = true
	}
	return stat, nil
}

func (s *Store) QueryStatistics(ctx context.Context, q shared.StatisticsQuery) (shared.Statistic, error) {
	return s.aggregate(ctx, q.RecordType, q.Start, q.End, q.StrictStart, q.Option)
}

func stepInterval(t time.Time, interval shared.BucketInterval) time.Time {
	switch interval {
	case shared.IntervalHour:
		return t.Add(time.Hour)
	case shared.IntervalDay:
		return t.AddDate(0, 0, 1)
	default:
		return t.AddDate(0, 0, 7)
	}
}

func (s *Store) QueryStatisticsCollection(ctx context.Context, q shared.CollectionQuery) ([]shared.Statistic, error) {
	var stats []shared.Statistic
	for cur := q.Anchor; cur.Before(q.End); cur = stepInterval(cur, q.Interval) {
		next := stepInterval(cur, q.Interval)
		// The final bucket may be truncated: samples at or past the query end
		// never count, even when a full interval would reach them.
		if q.End.Before(next) {
			next = q.End
		}
		stat, err := s.aggregate(ctx, q.RecordType, cur, next, q.StrictStart, q.Option)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, nil
}

func (s *Store) QueryWorkouts(ctx context.Context, start, end time.Time) ([]shared.WorkoutRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT uuid, activity_code, start_ms, end_ms, duration_sec, energy_kcal, distance_m, source_name, source_bundle_id FROM workouts WHERE start_ms >= ? AND start_ms < ? ORDER BY rowid ASC",
		start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var workouts []shared.WorkoutRecord
	for rows.Next() {
		var w shared.WorkoutRecord
		var startMs, endMs int64
		var energy, distance sql.NullFloat64
		if err := rows.Scan(&w.UUID, &w.ActivityCode, &startMs, &endMs, &w.DurationSec,
			&energy, &distance, &w.SourceName, &w.SourceBundleID); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		w.Start = time.UnixMilli(startMs)
		w.End = time.UnixMilli(endMs)
		if energy.Valid {
			w.EnergyKcal = &energy.Float64
		}
		if distance.Valid {
			w.DistanceMeters = &distance.Float64
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (s *Store) QueryRoutes(ctx context.Context, workoutUUID string) ([]shared.RouteRef, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT uuid FROM routes WHERE workout_uuid = ? ORDER BY rowid ASC", workoutUUID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var refs []shared.RouteRef
	for rows.Next() {
		var ref shared.RouteRef
		if err := rows.Scan(&ref.UUID); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (s *Store) QueryRouteLocations(ctx context.Context, routeUUID string, fn func(chunk []shared.Location, done bool) error) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT ts_ms, lat, lng, alt FROM route_points WHERE route_uuid = ? ORDER BY ts_ms ASC", routeUUID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var all []shared.Location
	for rows.Next() {
		var loc shared.Location
		var tsMs int64
		if err := rows.Scan(&tsMs, &loc.Latitude, &loc.Longitude, &loc.Altitude); err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		loc.Timestamp = time.UnixMilli(tsMs)
		all = append(all, loc)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Deliver in chunks, final chunk flagged done, matching the streaming
	// contract even when everything fits in one chunk.
	for offset := 0; ; offset += locationChunkSize {
		endIdx := offset + locationChunkSize
		if endIdx >= len(all) {
			return fn(all[offset:], true)
		}
		if err := fn(all[offset:endIdx], false); err != nil {
			return err
		}
	}
}

// --- Write helpers (seeding, tests) ---

func orNewUUID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// AddQuantitySample inserts one quantity sample, generating a uuid when
// missing. Returns the stored uuid.
func (s *Store) AddQuantitySample(ctx context.Context, sample shared.QuantitySample) (string, error) {
	id := orNewUUID(sample.UUID)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO quantity_samples (uuid, record_type, value, start_ms, end_ms, source_name, source_bundle_id, time_zone) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, sample.RecordType, sample.Value, sample.Start.UnixMilli(), sample.End.UnixMilli(),
		sample.SourceName, sample.SourceBundleID, sample.TimeZoneID)
	if err != nil {
		return "", fmt.Errorf("insert failed: %w", err)
	}
	return id, nil
}

// AddCategorySample inserts one category sample.
func (s *Store) AddCategorySample(ctx context.Context, sample shared.CategorySample) (string, error) {
	id := orNewUUID(sample.UUID)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO category_samples (uuid, record_type, value, start_ms, end_ms, source_name, source_bundle_id, time_zone) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, sample.RecordType, sample.Value, sample.Start.UnixMilli(), sample.End.UnixMilli(),
		sample.SourceName, sample.SourceBundleID, sample.TimeZoneID)
	if err != nil {
		return "", fmt.Errorf("insert failed: %w", err)
	}
	return id, nil
}

// AddCorrelation inserts a composite record and its member samples.
func (s *Store) AddCorrelation(ctx context.Context, correlation shared.Correlation) (string, error) {
	id := orNewUUID(correlation.UUID)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO correlations (uuid, record_type, start_ms, end_ms) VALUES (?, ?, ?, ?)",
		id, correlation.RecordType, correlation.Start.UnixMilli(), correlation.End.UnixMilli())
	if err != nil {
		return "", fmt.Errorf("insert failed: %w", err)
	}
	for _, member := range correlation.Objects {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO quantity_samples (uuid, record_type, value, start_ms, end_ms, source_name, source_bundle_id, time_zone, correlation_uuid) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			orNewUUID(member.UUID), member.RecordType, member.Value, member.Start.UnixMilli(), member.End.UnixMilli(),
			member.SourceName, member.SourceBundleID, member.TimeZoneID, id)
		if err != nil {
			return "", fmt.Errorf("insert failed: %w", err)
		}
	}
	return id, nil
}

// AddWorkout inserts one workout record.
func (s *Store) AddWorkout(ctx context.Context, workout shared.WorkoutRecord) (string, error) {
	id := orNewUUID(workout.UUID)
	var energy, distance any
	if workout.EnergyKcal != nil {
		energy = *workout.EnergyKcal
	}
	if workout.DistanceMeters != nil {
		distance = *workout.DistanceMeters
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO workouts (uuid, activity_code, start_ms, end_ms, duration_sec, energy_kcal, distance_m, source_name, source_bundle_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, workout.ActivityCode, workout.Start.UnixMilli(), workout.End.UnixMilli(), workout.DurationSec,
		energy, distance, workout.SourceName, workout.SourceBundleID)
	if err != nil {
		return "", fmt.Errorf("insert failed: %w", err)
	}
	return id, nil
}

// AddRoute inserts a route series for a workout with its points.
func (s *Store) AddRoute(ctx context.Context, workoutUUID string, locations []shared.Location) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, "INSERT INTO routes (uuid, workout_uuid) VALUES (?, ?)", id, workoutUUID)
	if err != nil {
		return "", fmt.Errorf("insert failed: %w", err)
	}
	for _, loc := range locations {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO route_points (route_uuid, ts_ms, lat, lng, alt) VALUES (?, ?, ?, ?, ?)",
			id, loc.Timestamp.UnixMilli(), loc.Latitude, loc.Longitude, loc.Altitude)
		if err != nil {
			return "", fmt.Errorf("insert failed: %w", err)
		}
	}
	return id, nil
}
