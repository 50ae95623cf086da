package datetime

import (
	"sync"
	"time"

	"github.com/ttpr0/go-expansion/structs"
)

//*******************************************
// timezone table
//*******************************************

// Indexed timezone table. Index 0 is reserved for "unknown"; node
// records store indices into this table.
var timezone_names = []string{
	"",
	"Etc/UTC",
	"Europe/Berlin",
	"Europe/London",
	"Europe/Paris",
	"Europe/Warsaw",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"Asia/Tokyo",
	"Australia/Sydney",
}

var (
	tz_cache = make(map[int16]*time.Location)
	tz_mutex sync.Mutex
)

// Returns the location for a timezone index, nil for index 0 or
// unresolvable zones.
func FromIndex(index int16) *time.Location {
	if index <= 0 || int(index) >= len(timezone_names) {
		return nil
	}
	tz_mutex.Lock()
	defer tz_mutex.Unlock()
	if loc, ok := tz_cache[index]; ok {
		return loc
	}
	loc, err := time.LoadLocation(timezone_names[index])
	if err != nil {
		return nil
	}
	tz_cache[index] = loc
	return loc
}

// Returns the index of a timezone name, 0 if unknown.
func TimezoneIndex(name string) int16 {
	for i, n := range timezone_names {
		if n == name {
			return int16(i)
		}
	}
	return 0
}

//*******************************************
// date-time parsing
//*******************************************

const iso_format = "2006-01-02T15:04"

// the pivot date all schedule day counts are relative to
var pivot_date = time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC)

// Parses a local ISO date-time (YYYY-MM-DDTHH:MM, optionally with
// seconds) in the given timezone.
func ParseLocal(iso string, tz *time.Location) (time.Time, bool) {
	if tz == nil {
		tz = time.UTC
	}
	t, err := time.ParseInLocation(iso_format, iso, tz)
	if err != nil {
		t, err = time.ParseInLocation(iso_format+":05", iso, tz)
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}

// Returns seconds from the unix epoch for a local ISO date-time.
func SecondsSinceEpoch(iso string, tz *time.Location) int64 {
	t, ok := ParseLocal(iso, tz)
	if !ok {
		return 0
	}
	return t.Unix()
}

// Day of week of a local ISO date-time, 0 = sunday.
func DayOfWeek(iso string) int32 {
	t, ok := ParseLocal(iso, time.UTC)
	if !ok {
		return 0
	}
	return int32(t.Weekday())
}

// Day-of-week bitmask of a local ISO date-time, bit 0 = sunday.
func DayOfWeekMask(iso string) uint8 {
	return 1 << uint(DayOfWeek(iso))
}

// Seconds elapsed since local midnight of an ISO date-time.
func SecondsFromMidnight(iso string) int32 {
	t, ok := ParseLocal(iso, time.UTC)
	if !ok {
		return 0
	}
	return int32(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// Days between the schedule pivot date and a local ISO date-time.
func DaysFromPivotDate(iso string) int32 {
	t, ok := ParseLocal(iso, time.UTC)
	if !ok {
		return 0
	}
	return int32(t.Sub(pivot_date).Hours() / 24)
}

// Formats an instant as a local ISO date-time in the given timezone.
func SecondsToDate(secs int64, tz *time.Location) string {
	if tz == nil {
		tz = time.UTC
	}
	return time.Unix(secs, 0).In(tz).Format(iso_format)
}

// Current wall time as a local ISO date-time in the given timezone.
func CurrentISODateTime(tz *time.Location) string {
	if tz == nil {
		tz = time.UTC
	}
	return time.Now().In(tz).Format(iso_format)
}

//*******************************************
// seconds-of-week arithmetic
//*******************************************

// Folds a possibly negative or overflowing seconds-of-week value into
// [0, SECONDS_PER_WEEK).
func NormalizeSecondsOfWeek(sow int32) int32 {
	sow = sow % structs.SECONDS_PER_WEEK
	if sow < 0 {
		sow += structs.SECONDS_PER_WEEK
	}
	return sow
}

// Returns the signed offset difference in seconds between two
// timezones at a given instant.
func TimezoneDiff(seconds int64, origin, dest *time.Location) int32 {
	if origin == nil || dest == nil {
		return 0
	}
	t := time.Unix(seconds, 0)
	_, origin_offset := t.In(origin).Zone()
	_, dest_offset := t.In(dest).Zone()
	return int32(dest_offset - origin_offset)
}
