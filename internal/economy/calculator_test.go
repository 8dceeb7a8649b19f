package economy

import "testing"

func TestEnergyRegeneratedBounds(t *testing.T) {
	const max = 1000
	for _, energy := range []int64{0, 1, 500, 999, 1000} {
		prev := int64(-1)
		for _, elapsed := range []int64{0, 1, 10, 60, 3600, 86400} {
			got := EnergyRegenerated(elapsed, 1, energy, max)
			if got < energy || got > max {
				t.Fatalf("EnergyRegenerated(%d, 1, %d, %d) = %d, outside [%d, %d]",
					elapsed, energy, max, got, energy, max)
			}
			if got < prev {
				t.Fatalf("regen not monotonic in elapsed: %d after %d", got, prev)
			}
			prev = got
		}
	}
}

func TestEnergyRegeneratedNegativeElapsed(t *testing.T) {
	if got := EnergyRegenerated(-100, 2, 50, 1000); got != 50 {
		t.Fatalf("negative elapsed must grant nothing, got %d", got)
	}
}

func TestEnergyRegeneratedRate(t *testing.T) {
	// 30 seconds at 2/sec from 100
	if got := EnergyRegenerated(30, 2, 100, 1000); got != 160 {
		t.Fatalf("expected 160, got %d", got)
	}
	// clamp at max
	if got := EnergyRegenerated(10000, 2, 100, 1000); got != 1000 {
		t.Fatalf("expected clamp to 1000, got %d", got)
	}
}

func TestHourlyAccrualCapped(t *testing.T) {
	rate := int64(3600)
	atCap := HourlyAccrual(rate, OfflineCapSeconds)
	for _, elapsed := range []int64{OfflineCapSeconds, OfflineCapSeconds + 1, OfflineCapSeconds * 10} {
		if got := HourlyAccrual(rate, elapsed); got != atCap {
			t.Fatalf("HourlyAccrual(%d, %d) = %d, want cap value %d", rate, elapsed, got, atCap)
		}
	}
}

func TestHourlyAccrualFloor(t *testing.T) {
	// 100/hour for 30 minutes = 50, for 59 seconds = floor(100*59/3600) = 1
	if got := HourlyAccrual(100, 1800); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
	if got := HourlyAccrual(100, 59); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := HourlyAccrual(100, -5); got != 0 {
		t.Fatalf("negative elapsed must yield 0, got %d", got)
	}
}

func TestTapEarnings(t *testing.T) {
	if got := TapEarnings(1, 100); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := TapEarnings(7, 3); got != 21 {
		t.Fatalf("expected 21, got %d", got)
	}
}

func TestLevelUpThreshold(t *testing.T) {
	cases := map[int]int64{
		1: 100,
		2: 120,
		3: 144,
		4: 172,
		5: 207,
	}
	for level, want := range cases {
		if got := LevelUpThreshold(level); got != want {
			t.Fatalf("LevelUpThreshold(%d) = %d, want %d", level, got, want)
		}
	}
}

func TestDailyStreakRewardTable(t *testing.T) {
	want := []int64{100, 200, 300, 400, 500, 750, 1000}
	for day, reward := range want {
		if got := DailyStreakReward(day + 1); got != reward {
			t.Fatalf("DailyStreakReward(%d) = %d, want %d", day+1, got, reward)
		}
	}
	// days past the table clamp to the last entry
	for _, day := range []int{8, 30, 365} {
		if got := DailyStreakReward(day); got != 1000 {
			t.Fatalf("DailyStreakReward(%d) = %d, want clamp 1000", day, got)
		}
	}
}

func TestUpgradeCostGrowsStrictly(t *testing.T) {
	base := int64(500)
	prev := int64(0)
	for level := 0; level < 10; level++ {
		cost := UpgradeCost(base, level)
		if cost != base*int64(level+1) {
			t.Fatalf("UpgradeCost(%d, %d) = %d", base, level, cost)
		}
		if cost <= prev {
			t.Fatalf("cost must strictly increase: level %d cost %d prev %d", level, cost, prev)
		}
		prev = cost
	}
}

func TestLeagueTables(t *testing.T) {
	if MaxLeague != 6 {
		t.Fatalf("tier table must cover leagues 1..6, got %d", MaxLeague)
	}
	if LeagueThreshold(1) != 0 {
		t.Fatalf("league 1 must be free")
	}
	prev := int64(-1)
	for l := 1; l <= MaxLeague; l++ {
		th := LeagueThreshold(l)
		if th <= prev {
			t.Fatalf("thresholds must strictly increase, league %d: %d", l, th)
		}
		prev = th
	}
	if LeagueThreshold(MaxLeague+1) != -1 {
		t.Fatalf("out-of-range league must be unreachable")
	}
	if CanPromote(MaxLeague, 1<<62) {
		t.Fatalf("cannot promote past the last league")
	}
	if !CanPromote(1, 10000) {
		t.Fatalf("10000 lifetime coins must unlock league 2")
	}
	if CanPromote(1, 9999) {
		t.Fatalf("9999 must not unlock league 2")
	}
}
