package domain

import "time"

// Transaction is one ledger entry per balance mutation, written inside the
// same database transaction as the mutation itself.
type Transaction struct {
	ID        int64                  `db:"id" json:"id"`
	AccountID int64                  `db:"account_id" json:"account_id"`
	Type      string                 `db:"type" json:"type"`
	Amount    int64                  `db:"amount" json:"amount"`
	Meta      map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Transaction types
const (
	TxTypeTap           = "tap"
	TxTypeHourlyIncome  = "hourly_income"
	TxTypeDailyReward   = "daily_reward"
	TxTypeReferralBonus = "referral_bonus"
	TxTypeWelcomeBonus  = "welcome_bonus"
	TxTypeCardUpgrade   = "card_upgrade"
	TxTypeComboBonus    = "combo_bonus"
	TxTypeLeagueReward  = "league_reward"
	TxTypeMissionReward = "mission_reward"
)
