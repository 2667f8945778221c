package attempts

import "time"

// seoul is the fixed time zone for calendar-day computation. "Today" is
// the same day for every user regardless of server or client locale.
var seoul = time.FixedZone("Asia/Seoul", 9*60*60)

// DayOf returns the Asia/Seoul calendar day of t as YYYY-MM-DD.
func DayOf(t time.Time) string {
	return t.In(seoul).Format("2006-01-02")
}

// Today returns the current Asia/Seoul calendar day.
func Today() string {
	return DayOf(time.Now())
}
