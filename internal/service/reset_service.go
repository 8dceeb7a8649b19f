package service

import (
	"context"
	"errors"
	"time"

	"tapcoin_webapp/internal/economy"
	"tapcoin_webapp/internal/logger"
	"tapcoin_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNoCards = errors.New("no active cards for combo")

// ResetService rotates the daily combo and resets the per-day account flags.
// The whole reset is one transaction: either the new combo is published AND
// every account's found/claimed/boost state is reset, or neither happens.
// The unique combo_date index makes the operation idempotent per calendar
// day, so the cron trigger and the admin trigger can race safely.
type ResetService struct {
	db *pgxpool.Pool
}

func NewResetService(db *pgxpool.Pool) *ResetService {
	return &ResetService{db: db}
}

// ResetResult reports a daily reset run.
type ResetResult struct {
	Date        string  `json:"date"`
	ComboCards  []int64 `json:"combo_cards"`
	AccountsHit int64   `json:"accounts_reset"`
	AlreadyRun  bool    `json:"already_run"`
}

// Run performs the reset for the given day.
func (s *ResetService) Run(ctx context.Context, today time.Time) (*ResetResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	day := today.UTC().Format("2006-01-02")

	cardIDs, err := repository.PickRandomCardIDs(ctx, tx, economy.ComboSize)
	if err != nil {
		return nil, err
	}
	if len(cardIDs) < economy.ComboSize {
		return nil, ErrNoCards
	}

	inserted, err := repository.InsertComboWithTx(ctx, tx, today, cardIDs, economy.ComboReward)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// today's reset already ran; report the published combo instead
		var existing []int64
		if err := tx.QueryRow(ctx,
			`SELECT card_ids FROM daily_combos WHERE combo_date = $1`, day,
		).Scan(&existing); err != nil {
			return nil, err
		}
		return &ResetResult{Date: day, ComboCards: existing, AlreadyRun: true}, tx.Commit(ctx)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE accounts
		 SET combo_found = '{}', combo_claimed = false, boosts_left = $1`,
		economy.DailyBoosts,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	logger.Info("daily reset applied", "date", day, "combo_cards", cardIDs, "accounts", tag.RowsAffected())
	return &ResetResult{Date: day, ComboCards: cardIDs, AccountsHit: tag.RowsAffected()}, nil
}
