package domain

import "time"

// DailyCombo is the global once-per-day card puzzle. One row per calendar
// day; rotated atomically by the daily reset.
type DailyCombo struct {
	ID        int64     `db:"id" json:"id"`
	ComboDate time.Time `db:"combo_date" json:"combo_date"`
	CardIDs   []int64   `db:"card_ids" json:"card_ids"`
	Reward    int64     `db:"reward" json:"reward"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Contains reports whether the combo includes the given card.
func (c *DailyCombo) Contains(cardID int64) bool {
	for _, id := range c.CardIDs {
		if id == cardID {
			return true
		}
	}
	return false
}
