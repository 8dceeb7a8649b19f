package service

import (
	"context"
	"errors"

	"tapcoin_webapp/internal/domain"
	"tapcoin_webapp/internal/economy"
	"tapcoin_webapp/internal/logger"
	"tapcoin_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountService maps verified Telegram identities to persistent accounts.
type AccountService struct {
	db          *pgxpool.Pool
	accountRepo *repository.AccountRepository
}

func NewAccountService(db *pgxpool.Pool) *AccountService {
	return &AccountService{
		db:          db,
		accountRepo: repository.NewAccountRepository(db),
	}
}

// GetOrCreate looks an account up by Telegram id, creating it on first
// contact. A valid referrerID additionally creates the referral record and
// credits the welcome bonus to the new account; an unknown referrer is
// silently skipped. Returns the account and whether it was just created.
func (s *AccountService) GetOrCreate(ctx context.Context, tgUser *domain.TelegramUser, referrerID int64) (*domain.Account, bool, error) {
	account, err := s.accountRepo.GetByTgID(ctx, tgUser.ID)
	if err == nil {
		if err := s.accountRepo.TouchLogin(ctx, account.ID); err != nil {
			logger.Warn("failed to update last login", "account_id", account.ID, "error", err)
		}
		return account, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	account, err = s.provision(ctx, tgUser, referrerID)
	if err != nil {
		// a concurrent first contact may have won the tg_id unique race
		if existing, getErr := s.accountRepo.GetByTgID(ctx, tgUser.ID); getErr == nil {
			return existing, false, nil
		}
		return nil, false, err
	}
	return account, true, nil
}

// provision creates the account, the referral record and the welcome bonus
// as one transaction so a partially referred account can never exist.
func (s *AccountService) provision(ctx context.Context, tgUser *domain.TelegramUser, referrerID int64) (*domain.Account, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var refPtr *int64
	if referrerID > 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, referrerID,
		).Scan(&exists); err != nil {
			return nil, err
		}
		if exists {
			refPtr = &referrerID
		} else {
			logger.Info("referrer not found, creating plain account", "referrer_id", referrerID, "tg_id", tgUser.ID)
		}
	}

	a := &domain.Account{
		TgID:      tgUser.ID,
		Username:  tgUser.Username,
		FirstName: tgUser.FirstName,
		LastName:  tgUser.LastName,
		PhotoURL:  tgUser.PhotoURL,
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO accounts (tg_id, username, first_name, last_name, photo_url,
			earn_per_tap, hourly_rate, energy, max_energy, boosts_left, referrer_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, coins, crystals, earn_per_tap, hourly_rate, energy, max_energy,
			energy_regen_level, energy_updated_at, level, xp, league, total_earned,
			streak, combo_claimed, boosts_left, hourly_collected_at, created_at, last_login_at`,
		a.TgID, a.Username, a.FirstName, a.LastName, a.PhotoURL,
		economy.StartingEarnPerTap, economy.StartingHourlyRate,
		economy.StartingEnergy, economy.StartingMaxEnergy, economy.DailyBoosts,
		refPtr,
	).Scan(
		&a.ID, &a.Coins, &a.Crystals, &a.EarnPerTap, &a.HourlyRate,
		&a.Energy, &a.MaxEnergy, &a.EnergyRegenLevel, &a.EnergyUpdatedAt,
		&a.Level, &a.XP, &a.League, &a.TotalEarned,
		&a.Streak, &a.ComboClaimed, &a.BoostsLeft, &a.HourlyCollectedAt,
		&a.CreatedAt, &a.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	a.ReferrerID = refPtr
	a.ComboFound = []int64{}

	if refPtr != nil {
		if err := repository.CreateReferralWithTx(ctx, tx, referrerID, a.ID, economy.ReferralReward); err != nil {
			return nil, err
		}

		if err := tx.QueryRow(ctx,
			`UPDATE accounts SET coins = coins + $1, total_earned = total_earned + $1
			 WHERE id = $2 RETURNING coins`,
			int64(economy.WelcomeBonus), a.ID,
		).Scan(&a.Coins); err != nil {
			return nil, err
		}
		a.TotalEarned += economy.WelcomeBonus

		if err := createTx(ctx, tx, a.ID, domain.TxTypeWelcomeBonus, economy.WelcomeBonus,
			map[string]interface{}{"referrer_id": referrerID}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// createTx is a shorthand for the ledger insert used across services.
func createTx(ctx context.Context, tx pgx.Tx, accountID int64, txType string, amount int64, meta map[string]interface{}) error {
	return repository.CreateTransactionWithTx(ctx, tx, accountID, txType, amount, meta)
}
