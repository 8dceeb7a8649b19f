package domain

import "time"

// Account is the authoritative game-state row for a player. Every balance
// mutation goes through the accounts table; anything the client holds is an
// advisory projection.
type Account struct {
	ID        int64  `db:"id" json:"id"`
	TgID      int64  `db:"tg_id" json:"tg_id"`
	Username  string `db:"username" json:"username"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	PhotoURL  string `db:"photo_url" json:"photo_url,omitempty"`

	Coins      int64 `db:"coins" json:"coins"`
	Crystals   int64 `db:"crystals" json:"crystals"`
	EarnPerTap int64 `db:"earn_per_tap" json:"earn_per_tap"`
	HourlyRate int64 `db:"hourly_rate" json:"hourly_rate"`

	Energy           int64     `db:"energy" json:"energy"`
	MaxEnergy        int64     `db:"max_energy" json:"max_energy"`
	EnergyRegenLevel int64     `db:"energy_regen_level" json:"energy_regen_level"`
	EnergyUpdatedAt  time.Time `db:"energy_updated_at" json:"energy_updated_at"`

	Level       int   `db:"level" json:"level"`
	XP          int64 `db:"xp" json:"xp"`
	League      int   `db:"league" json:"league"`
	TotalEarned int64 `db:"total_earned" json:"total_earned"`

	Streak        int        `db:"streak" json:"streak"`
	LastClaimDate *time.Time `db:"last_claim_date" json:"last_claim_date,omitempty"`

	ComboFound   []int64 `db:"combo_found" json:"combo_found"`
	ComboClaimed bool    `db:"combo_claimed" json:"combo_claimed"`
	BoostsLeft   int     `db:"boosts_left" json:"boosts_left"`

	HourlyCollectedAt time.Time `db:"hourly_collected_at" json:"hourly_collected_at"`

	ReferrerID *int64 `db:"referrer_id" json:"referrer_id,omitempty"`

	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	LastLoginAt time.Time `db:"last_login_at" json:"last_login_at"`
}

// TelegramUser is the identity extracted from verified init data.
type TelegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url"`
}
