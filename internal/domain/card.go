package domain

// CardType - какой стат улучшает карта
type CardType string

const (
	CardTypeIncome CardType = "income" // только часовой доход
	CardTypeTap    CardType = "tap"    // + earn_per_tap
	CardTypeEnergy CardType = "energy" // + max_energy
	CardTypeRegen  CardType = "regen"  // + energy_regen_level
)

// Currency used to pay for an upgrade.
type Currency string

const (
	CurrencyCoins    Currency = "coins"
	CurrencyCrystals Currency = "crystals"
)

// Card is static catalog data, never owned directly.
type Card struct {
	ID               int64    `db:"id" json:"id"`
	Name             string   `db:"name" json:"name"`
	Description      string   `db:"description" json:"description"`
	CardType         CardType `db:"card_type" json:"card_type"`
	BaseCost         int64    `db:"base_cost" json:"base_cost"`
	CostCurrency     Currency `db:"cost_currency" json:"cost_currency"`
	BaseHourlyIncome int64    `db:"base_hourly_income" json:"base_hourly_income"`
	StatBonus        int64    `db:"stat_bonus" json:"stat_bonus"`
	CrystalYield     int64    `db:"crystal_yield" json:"crystal_yield"`
	IsActive         bool     `db:"is_active" json:"is_active"`
	SortOrder        int      `db:"sort_order" json:"sort_order"`
}

// UserCardWithDetails - карта с прогрессом (для API ответов)
type UserCardWithDetails struct {
	Card     Card  `json:"card"`
	Level    int   `json:"level"`
	NextCost int64 `json:"next_cost"`
}
