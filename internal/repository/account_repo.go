package repository

import (
	"context"
	"errors"

	"tapcoin_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

const accountColumns = `id, tg_id, COALESCE(username, ''), COALESCE(first_name, ''), COALESCE(last_name, ''),
	COALESCE(photo_url, ''), coins, crystals, earn_per_tap, hourly_rate,
	energy, max_energy, energy_regen_level, energy_updated_at,
	level, xp, league, total_earned, streak, last_claim_date,
	combo_found, combo_claimed, boosts_left, hourly_collected_at,
	referrer_id, created_at, last_login_at`

type AccountRepository struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID, &a.TgID, &a.Username, &a.FirstName, &a.LastName,
		&a.PhotoURL, &a.Coins, &a.Crystals, &a.EarnPerTap, &a.HourlyRate,
		&a.Energy, &a.MaxEnergy, &a.EnergyRegenLevel, &a.EnergyUpdatedAt,
		&a.Level, &a.XP, &a.League, &a.TotalEarned, &a.Streak, &a.LastClaimDate,
		&a.ComboFound, &a.ComboClaimed, &a.BoostsLeft, &a.HourlyCollectedAt,
		&a.ReferrerID, &a.CreatedAt, &a.LastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.ComboFound == nil {
		a.ComboFound = []int64{}
	}
	return &a, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *AccountRepository) GetByTgID(ctx context.Context, tgID int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE tg_id = $1`, tgID)
	return scanAccount(row)
}

// TouchLogin updates the last-login timestamp.
func (r *AccountRepository) TouchLogin(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE accounts SET last_login_at = NOW() WHERE id = $1`, id)
	return err
}

// LeaderboardEntry represents an account in the leaderboard
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	League    int    `json:"league"`
	Coins     int64  `json:"coins"`
}

// GetTopByCoins returns accounts ordered by coin balance desc.
func (r *AccountRepository) GetTopByCoins(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, COALESCE(username, ''), COALESCE(first_name, ''), league, coins
		FROM accounts
		ORDER BY coins DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.AccountID, &e.Username, &e.FirstName, &e.League, &e.Coins); err != nil {
			return nil, err
		}
		e.Rank = rank
		res = append(res, e)
		rank++
	}
	return res, rows.Err()
}
