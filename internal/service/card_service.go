package service

import (
	"context"
	"errors"
	"time"

	"tapcoin_webapp/internal/domain"
	"tapcoin_webapp/internal/economy"
	"tapcoin_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// CardService covers the upgrade catalog and hourly passive income.
type CardService struct {
	db       *pgxpool.Pool
	cardRepo *repository.CardRepository
}

func NewCardService(db *pgxpool.Pool) *CardService {
	return &CardService{
		db:       db,
		cardRepo: repository.NewCardRepository(db),
	}
}

// Catalog returns all active cards annotated with the caller's owned level
// and the price of the next upgrade.
func (s *CardService) Catalog(ctx context.Context, accountID int64) ([]*domain.UserCardWithDetails, error) {
	cards, err := s.cardRepo.GetActiveCards(ctx)
	if err != nil {
		return nil, err
	}

	owned, err := s.cardRepo.GetUserCards(ctx, accountID)
	if err != nil {
		return nil, err
	}
	levels := make(map[int64]int, len(owned))
	for _, uc := range owned {
		levels[uc.Card.ID] = uc.Level
	}

	result := make([]*domain.UserCardWithDetails, 0, len(cards))
	for _, c := range cards {
		level := levels[c.ID]
		result = append(result, &domain.UserCardWithDetails{
			Card:     *c,
			Level:    level,
			NextCost: economy.UpgradeCost(c.BaseCost, level),
		})
	}
	return result, nil
}

// UpgradeResult is the authoritative state slice after a card upgrade.
type UpgradeResult struct {
	CardID     int64  `json:"card_id"`
	NewLevel   int    `json:"new_level"`
	NextCost   int64  `json:"next_cost"`
	Paid       int64  `json:"paid"`
	Currency   string `json:"currency"`
	Coins      int64  `json:"coins"`
	Crystals   int64  `json:"crystals"`
	HourlyRate int64  `json:"hourly_rate"`
}

// Upgrade buys the next level of a card. The debit, the level increment and
// the stat effects commit as one transaction; the conditional debit is the
// funds check, so a losing concurrent request fails cleanly instead of
// double-spending.
func (s *CardService) Upgrade(ctx context.Context, accountID, cardID int64) (*UpgradeResult, error) {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if !card.IsActive {
		return nil, repository.ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// serialize per-account upgrades
	if _, err := tx.Exec(ctx, `SELECT 1 FROM accounts WHERE id = $1 FOR UPDATE`, accountID); err != nil {
		return nil, err
	}

	var level int
	err = tx.QueryRow(ctx,
		`SELECT level FROM user_cards WHERE account_id = $1 AND card_id = $2 FOR UPDATE`,
		accountID, cardID,
	).Scan(&level)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	cost := economy.UpgradeCost(card.BaseCost, level)

	res := &UpgradeResult{
		CardID:   cardID,
		Paid:     cost,
		Currency: string(card.CostCurrency),
	}

	balanceCol := "coins"
	if card.CostCurrency == domain.CurrencyCrystals {
		balanceCol = "crystals"
	}
	err = tx.QueryRow(ctx,
		`UPDATE accounts SET `+balanceCol+` = `+balanceCol+` - $1
		 WHERE id = $2 AND `+balanceCol+` >= $1
		 RETURNING coins, crystals`,
		cost, accountID,
	).Scan(&res.Coins, &res.Crystals)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInsufficientFunds
	}
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO user_cards (account_id, card_id, level)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (account_id, card_id)
		 DO UPDATE SET level = user_cards.level + 1, updated_at = NOW()
		 RETURNING level`,
		accountID, cardID,
	).Scan(&res.NewLevel)
	if err != nil {
		return nil, err
	}

	// every level adds the card's hourly income; tap/energy/regen cards also
	// bump their stat
	statSQL := ""
	switch card.CardType {
	case domain.CardTypeTap:
		statSQL = `, earn_per_tap = earn_per_tap + $3`
	case domain.CardTypeEnergy:
		statSQL = `, max_energy = max_energy + $3`
	case domain.CardTypeRegen:
		statSQL = `, energy_regen_level = energy_regen_level + $3`
	}

	args := []interface{}{card.BaseHourlyIncome, accountID}
	if statSQL != "" {
		args = append(args, card.StatBonus)
	}
	err = tx.QueryRow(ctx,
		`UPDATE accounts SET hourly_rate = hourly_rate + $1`+statSQL+`
		 WHERE id = $2 RETURNING hourly_rate`,
		args...,
	).Scan(&res.HourlyRate)
	if err != nil {
		return nil, err
	}

	if card.CrystalYield > 0 {
		if err := tx.QueryRow(ctx,
			`UPDATE accounts SET crystals = crystals + $1 WHERE id = $2 RETURNING crystals`,
			card.CrystalYield, accountID,
		).Scan(&res.Crystals); err != nil {
			return nil, err
		}
	}

	if err = createTx(ctx, tx, accountID, domain.TxTypeCardUpgrade, -cost,
		map[string]interface{}{"card_id": cardID, "level": res.NewLevel, "currency": card.CostCurrency}); err != nil {
		return nil, err
	}

	res.NextCost = economy.UpgradeCost(card.BaseCost, res.NewLevel)
	return res, tx.Commit(ctx)
}

// CollectResult reports an hourly-income collection.
type CollectResult struct {
	Collected int64 `json:"collected"`
	Coins     int64 `json:"coins"`
}

// CollectHourly credits passive income accrued since the last collection,
// capped at the offline window.
func (s *CardService) CollectHourly(ctx context.Context, accountID int64) (*CollectResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		rate        int64
		collectedAt time.Time
	)
	err = tx.QueryRow(ctx,
		`SELECT hourly_rate, hourly_collected_at FROM accounts WHERE id = $1 FOR UPDATE`,
		accountID,
	).Scan(&rate, &collectedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	gain := economy.HourlyAccrual(rate, int64(now.Sub(collectedAt).Seconds()))

	res := &CollectResult{Collected: gain}
	err = tx.QueryRow(ctx,
		`UPDATE accounts
		 SET coins = coins + $1, total_earned = total_earned + $1, hourly_collected_at = $2
		 WHERE id = $3 RETURNING coins`,
		gain, now, accountID,
	).Scan(&res.Coins)
	if err != nil {
		return nil, err
	}

	if gain > 0 {
		if err = createTx(ctx, tx, accountID, domain.TxTypeHourlyIncome, gain, nil); err != nil {
			return nil, err
		}
	}

	return res, tx.Commit(ctx)
}

// PendingHourly returns the amount a collection would credit right now,
// without touching the row. Advisory only.
func PendingHourly(a *domain.Account, now time.Time) int64 {
	return economy.HourlyAccrual(a.HourlyRate, int64(now.Sub(a.HourlyCollectedAt).Seconds()))
}
