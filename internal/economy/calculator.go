// Package economy holds the pure accrual and reward arithmetic. Nothing in
// here touches the database or the clock; callers pass elapsed time in and
// persist the results themselves. All values are integers and every rounding
// is an explicit floor, so results are reproducible across callers.
package economy

// Default starting resources for a freshly provisioned account.
const (
	StartingCoins      = 0
	StartingCrystals   = 0
	StartingEnergy     = 1000
	StartingMaxEnergy  = 1000
	StartingEarnPerTap = 1
	StartingHourlyRate = 0
	StartingLeague     = 1
	StartingLevel      = 1

	// DailyBoosts is the per-day full-energy refill allowance, restored by
	// the daily reset.
	DailyBoosts = 6
)

// OfflineCapSeconds bounds idle hourly-income gains to a 12 hour window.
const OfflineCapSeconds = 43200

// ReferralReward is credited to the referral record for the referrer and
// claimed explicitly; WelcomeBonus goes straight to the referred account at
// creation.
const (
	ReferralReward = 5000
	WelcomeBonus   = 2500
)

// ComboSize is how many cards form the daily combo; ComboReward is the bonus
// for finding all of them.
const (
	ComboSize   = 3
	ComboReward = 50000
)

// TapEarnings returns the coins gained for a number of taps. The caller is
// responsible for debiting one energy per tap and rejecting the batch when
// energy is short.
func TapEarnings(earnPerTap, taps int64) int64 {
	if earnPerTap < 0 || taps < 0 {
		return 0
	}
	return earnPerTap * taps
}

// EnergyRegenerated returns the new energy value after elapsedSeconds of
// passive regeneration. Negative elapsed time (clock skew) counts as zero.
func EnergyRegenerated(elapsedSeconds, regenPerSecond, current, max int64) int64 {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	if regenPerSecond < 0 {
		regenPerSecond = 0
	}
	if current > max {
		return max
	}
	regen := current + elapsedSeconds*regenPerSecond
	if regen > max || regen < current { // overflow clamps to max
		return max
	}
	return regen
}

// HourlyAccrual returns floor(hourlyRate * elapsedSeconds / 3600), with
// elapsed time clamped to [0, OfflineCapSeconds].
func HourlyAccrual(hourlyRate, elapsedSeconds int64) int64 {
	if hourlyRate <= 0 {
		return 0
	}
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	if elapsedSeconds > OfflineCapSeconds {
		elapsedSeconds = OfflineCapSeconds
	}
	return hourlyRate * elapsedSeconds / 3600
}

// LevelUpThreshold returns the XP required to advance past the given level:
// floor(100 * 1.2^(level-1)).
func LevelUpThreshold(level int) int64 {
	if level < 1 {
		level = 1
	}
	xp := 100.0
	for i := 1; i < level; i++ {
		xp *= 1.2
	}
	return int64(xp)
}

// dailyStreakRewards maps streak day 1..7 to the claimable coin amount.
var dailyStreakRewards = []int64{100, 200, 300, 400, 500, 750, 1000}

// DailyStreakReward returns the coins for the given streak day. Days past
// the end of the table clamp to the last entry; the streak counter itself
// keeps growing.
func DailyStreakReward(streakDay int) int64 {
	if streakDay < 1 {
		streakDay = 1
	}
	if streakDay > len(dailyStreakRewards) {
		streakDay = len(dailyStreakRewards)
	}
	return dailyStreakRewards[streakDay-1]
}

// UpgradeCost returns the price of the next upgrade for a card currently at
// currentLevel. A card never bought before has currentLevel 0, so the first
// purchase costs exactly baseCost.
func UpgradeCost(baseCost int64, currentLevel int) int64 {
	if currentLevel < 0 {
		currentLevel = 0
	}
	return baseCost * int64(currentLevel+1)
}
