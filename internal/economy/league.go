package economy

// League promotion is gated by lifetime earned coins and pays a one-time
// bonus on entry. Both tables are fixed; leagues past the table are
// unreachable.

type leagueTier struct {
	threshold int64 // lifetime coins required to enter
	reward    int64 // one-time bonus granted on promotion
}

var leagueTiers = []leagueTier{
	{0, 0},               // 1 bronze
	{10000, 1000},        // 2 silver
	{100000, 10000},      // 3 gold
	{1000000, 50000},     // 4 platinum
	{10000000, 250000},   // 5 diamond
	{100000000, 1000000}, // 6 master
}

// MaxLeague is the highest reachable league.
var MaxLeague = len(leagueTiers)

// LeagueThreshold returns the lifetime coins required to enter the given
// league. League 1 is free; out-of-range leagues are unreachable (-1).
func LeagueThreshold(league int) int64 {
	if league < 1 || league > MaxLeague {
		return -1
	}
	return leagueTiers[league-1].threshold
}

// LeagueReward returns the one-time bonus for being promoted into league.
func LeagueReward(league int) int64 {
	if league < 1 || league > MaxLeague {
		return 0
	}
	return leagueTiers[league-1].reward
}

// CanPromote reports whether an account with the given lifetime earnings can
// move from its current league to the next one.
func CanPromote(league int, totalEarned int64) bool {
	if league < 1 || league >= MaxLeague {
		return false
	}
	return totalEarned >= leagueTiers[league].threshold
}
