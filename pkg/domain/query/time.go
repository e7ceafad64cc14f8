package query

import (
	"fmt"
	"time"
)

// msEpoch converts a time to the millisecond epoch used on the wire.
func msEpoch(t time.Time) int64 {
	return t.UnixMilli()
}

// zoneOffsetString formats the offset of loc at the given instant as a signed
// "+HH:MM" string ("-05:30", "+00:00").
func zoneOffsetString(loc *time.Location, at time.Time) string {
	_, offset := at.In(loc).Zone()
	hours := offset / 3600
	minutes := offset / 60
	if minutes < 0 {
		minutes = -minutes
	}
	return fmt.Sprintf("%+03d:%02d", hours, minutes%60)
}

// sampleLocation resolves the zone a sample was recorded in, falling back to
// the local zone when the provider carried no zone metadata.
func sampleLocation(timeZoneID string) *time.Location {
	if timeZoneID != "" {
		if loc, err := time.LoadLocation(timeZoneID); err == nil {
			return loc
		}
	}
	return time.Local
}
