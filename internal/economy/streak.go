package economy

import "time"

// NextStreak applies the consecutive-day rule: a claim on the calendar day
// right after the previous claim extends the streak, any gap resets it to 1.
// lastClaim == nil means the account has never claimed.
//
// Both dates are compared at day granularity in UTC; callers must pass
// "today" from a single clock read so two checks in one request agree.
func NextStreak(streak int, lastClaim *time.Time, today time.Time) int {
	if lastClaim == nil || streak < 1 {
		return 1
	}
	last := DayUTC(*lastClaim)
	day := DayUTC(today)
	if last.AddDate(0, 0, 1).Equal(day) {
		return streak + 1
	}
	return 1
}

// ClaimedToday reports whether the last claim already happened on the same
// calendar day as today.
func ClaimedToday(lastClaim *time.Time, today time.Time) bool {
	if lastClaim == nil {
		return false
	}
	return DayUTC(*lastClaim).Equal(DayUTC(today))
}

// DayUTC truncates a time to its UTC calendar day. Persisting this value
// (rather than a formatted string) keeps the stored instant independent of
// the database session's TimeZone setting.
func DayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
