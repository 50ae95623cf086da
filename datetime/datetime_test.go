package datetime

import (
	"testing"
	"time"

	"github.com/ttpr0/go-expansion/structs"
)

func TestParseLocal(t *testing.T) {
	tz, _ := time.LoadLocation("Europe/Berlin")
	parsed, ok := ParseLocal("2024-06-05T08:30", tz)
	if !ok {
		t.Fatalf("ParseLocal failed")
	}
	if parsed.Hour() != 8 || parsed.Minute() != 30 {
		t.Errorf("parsed = %v; want 08:30 local", parsed)
	}
	if _, ok := ParseLocal("junk", tz); ok {
		t.Errorf("ParseLocal(junk) = ok; want failure")
	}
}

func TestDayOfWeekAndMidnight(t *testing.T) {
	// 2024-06-05 is a wednesday
	if dow := DayOfWeek("2024-06-05T08:00"); dow != 3 {
		t.Errorf("DayOfWeek = %v; want 3", dow)
	}
	if mask := DayOfWeekMask("2024-06-05T08:00"); mask != 1<<3 {
		t.Errorf("DayOfWeekMask = %v; want %v", mask, 1<<3)
	}
	if secs := SecondsFromMidnight("2024-06-05T08:30"); secs != 8*3600+30*60 {
		t.Errorf("SecondsFromMidnight = %v; want 30600", secs)
	}
}

func TestNormalizeSecondsOfWeek(t *testing.T) {
	if got := NormalizeSecondsOfWeek(100); got != 100 {
		t.Errorf("NormalizeSecondsOfWeek(100) = %v; want 100", got)
	}
	if got := NormalizeSecondsOfWeek(structs.SECONDS_PER_WEEK + 7); got != 7 {
		t.Errorf("NormalizeSecondsOfWeek(week+7) = %v; want 7", got)
	}
	if got := NormalizeSecondsOfWeek(-10); got != structs.SECONDS_PER_WEEK-10 {
		t.Errorf("NormalizeSecondsOfWeek(-10) = %v; want %v", got, structs.SECONDS_PER_WEEK-10)
	}
}

func TestTimezoneDiff(t *testing.T) {
	berlin, _ := time.LoadLocation("Europe/Berlin")
	london, _ := time.LoadLocation("Europe/London")

	// summer: berlin is one hour ahead of london
	instant := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC).Unix()
	if diff := TimezoneDiff(instant, london, berlin); diff != 3600 {
		t.Errorf("TimezoneDiff(london->berlin) = %v; want 3600", diff)
	}
	if diff := TimezoneDiff(instant, berlin, london); diff != -3600 {
		t.Errorf("TimezoneDiff(berlin->london) = %v; want -3600", diff)
	}
	if diff := TimezoneDiff(instant, nil, berlin); diff != 0 {
		t.Errorf("TimezoneDiff(nil origin) = %v; want 0", diff)
	}
}

func TestTimezoneTable(t *testing.T) {
	if index := TimezoneIndex("Europe/Berlin"); index == 0 {
		t.Errorf("TimezoneIndex(Europe/Berlin) = 0; want > 0")
	}
	if index := TimezoneIndex("Mars/Olympus"); index != 0 {
		t.Errorf("TimezoneIndex(unknown) = %v; want 0", index)
	}
	if loc := FromIndex(0); loc != nil {
		t.Errorf("FromIndex(0) = %v; want nil", loc)
	}
	if loc := FromIndex(TimezoneIndex("Europe/Berlin")); loc == nil {
		t.Errorf("FromIndex(berlin) = nil; want location")
	}
}

func TestSecondsSinceEpochRoundTrip(t *testing.T) {
	tz, _ := time.LoadLocation("Europe/Berlin")
	secs := SecondsSinceEpoch("2024-06-05T08:30", tz)
	if got := SecondsToDate(secs, tz); got != "2024-06-05T08:30" {
		t.Errorf("SecondsToDate = %v; want 2024-06-05T08:30", got)
	}
}

func TestDaysFromPivotDate(t *testing.T) {
	if days := DaysFromPivotDate("2014-01-01T00:00"); days != 0 {
		t.Errorf("DaysFromPivotDate(pivot) = %v; want 0", days)
	}
	if days := DaysFromPivotDate("2014-01-08T12:00"); days != 7 {
		t.Errorf("DaysFromPivotDate(pivot+7.5d) = %v; want 7", days)
	}
}
