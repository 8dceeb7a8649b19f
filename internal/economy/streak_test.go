package economy

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestNextStreakConsecutiveDay(t *testing.T) {
	yesterday := day(2025, 3, 14)
	today := day(2025, 3, 15)

	if got := NextStreak(3, &yesterday, today); got != 4 {
		t.Fatalf("consecutive claim: streak = %d, want 4", got)
	}
}

func TestNextStreakGapResets(t *testing.T) {
	threeDaysAgo := day(2025, 3, 12)
	today := day(2025, 3, 15)

	if got := NextStreak(3, &threeDaysAgo, today); got != 1 {
		t.Fatalf("gap claim: streak = %d, want 1", got)
	}
}

func TestNextStreakFirstClaim(t *testing.T) {
	if got := NextStreak(0, nil, day(2025, 3, 15)); got != 1 {
		t.Fatalf("first claim: streak = %d, want 1", got)
	}
}

func TestNextStreakMonthBoundary(t *testing.T) {
	lastDay := day(2025, 2, 28)
	nextDay := day(2025, 3, 1)

	if got := NextStreak(5, &lastDay, nextDay); got != 6 {
		t.Fatalf("month boundary claim: streak = %d, want 6", got)
	}
}

func TestClaimedToday(t *testing.T) {
	morning := time.Date(2025, 3, 15, 0, 10, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 15, 23, 50, 0, 0, time.UTC)
	if !ClaimedToday(&morning, evening) {
		t.Fatalf("same-day claim must count as claimed")
	}

	yesterday := day(2025, 3, 14)
	if ClaimedToday(&yesterday, evening) {
		t.Fatalf("yesterday's claim must not count as today")
	}
	if ClaimedToday(nil, evening) {
		t.Fatalf("never claimed must not count as today")
	}
}

func TestDayUTC(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	// 08:59 JST is still the previous UTC day
	early := time.Date(2026, 8, 28, 8, 59, 0, 0, tokyo)
	if got := DayUTC(early); !got.Equal(day(2026, 8, 27)) {
		t.Fatalf("08:59 JST = %v, want 2026-08-27 UTC", got)
	}

	late := time.Date(2026, 8, 28, 9, 1, 0, 0, tokyo)
	if got := DayUTC(late); !got.Equal(day(2026, 8, 28)) {
		t.Fatalf("09:01 JST = %v, want 2026-08-28 UTC", got)
	}

	// the truncated value must count as the same day as its source,
	// so a claim stamped with DayUTC(now) is immediately ClaimedToday
	stamp := DayUTC(late)
	if !ClaimedToday(&stamp, late) {
		t.Fatalf("claim stamped with DayUTC must read as claimed today")
	}
}
