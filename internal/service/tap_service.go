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

var (
	ErrNoEnergy    = errors.New("no energy")
	ErrNoBoosts    = errors.New("no boosts left")
	ErrInvalidTaps = errors.New("invalid tap count")
)

// TapService handles tap batches, passive energy regeneration and boosts.
// Energy is lazily regenerated: each mutation first rolls the stored value
// forward from energy_updated_at, under the account row lock.
type TapService struct {
	db      *pgxpool.Pool
	maxTaps int64
}

func NewTapService(db *pgxpool.Pool, maxTapsPerReq int) *TapService {
	if maxTapsPerReq <= 0 {
		maxTapsPerReq = 50
	}
	return &TapService{db: db, maxTaps: int64(maxTapsPerReq)}
}

// TapResult is the authoritative state slice returned after a tap batch.
type TapResult struct {
	Gained    int64 `json:"gained"`
	Coins     int64 `json:"coins"`
	Energy    int64 `json:"energy"`
	MaxEnergy int64 `json:"max_energy"`
	Level     int   `json:"level"`
	XP        int64 `json:"xp"`
}

// Tap applies a batch of taps all-or-nothing: either every tap in the batch
// is paid for with energy, or the whole request is rejected with ErrNoEnergy.
func (s *TapService) Tap(ctx context.Context, accountID int64, taps int64) (*TapResult, error) {
	if taps < 1 || taps > s.maxTaps {
		return nil, ErrInvalidTaps
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		energy, maxEnergy, regenLevel, earnPerTap, xp int64
		level                                         int
		updatedAt                                     time.Time
	)
	err = tx.QueryRow(ctx,
		`SELECT energy, max_energy, energy_regen_level, earn_per_tap, xp, level, energy_updated_at
		 FROM accounts WHERE id = $1 FOR UPDATE`, accountID,
	).Scan(&energy, &maxEnergy, &regenLevel, &earnPerTap, &xp, &level, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	elapsed := int64(now.Sub(updatedAt).Seconds())
	energy = economy.EnergyRegenerated(elapsed, regenLevel, energy, maxEnergy)
	if energy < taps {
		return nil, ErrNoEnergy
	}

	gained := economy.TapEarnings(earnPerTap, taps)
	newEnergy := energy - taps

	// taps feed XP one-to-one with coins earned
	xp += gained
	for xp >= economy.LevelUpThreshold(level) {
		xp -= economy.LevelUpThreshold(level)
		level++
	}

	res := &TapResult{
		Gained:    gained,
		Energy:    newEnergy,
		MaxEnergy: maxEnergy,
		Level:     level,
		XP:        xp,
	}
	err = tx.QueryRow(ctx,
		`UPDATE accounts
		 SET coins = coins + $1, total_earned = total_earned + $1,
			 energy = $2, energy_updated_at = $3, xp = $4, level = $5
		 WHERE id = $6
		 RETURNING coins`,
		gained, newEnergy, now, xp, level, accountID,
	).Scan(&res.Coins)
	if err != nil {
		return nil, err
	}

	if err = createTx(ctx, tx, accountID, domain.TxTypeTap, gained,
		map[string]interface{}{"taps": taps}); err != nil {
		return nil, err
	}

	return res, tx.Commit(ctx)
}

// SyncEnergy rolls passive regeneration forward and returns the refreshed
// account. One conditional statement, safe under concurrent taps because the
// regen window collapses to zero once energy_updated_at advances.
func (s *TapService) SyncEnergy(ctx context.Context, accountID int64) (*domain.Account, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		energy, maxEnergy, regenLevel int64
		updatedAt                     time.Time
	)
	err = tx.QueryRow(ctx,
		`SELECT energy, max_energy, energy_regen_level, energy_updated_at
		 FROM accounts WHERE id = $1 FOR UPDATE`, accountID,
	).Scan(&energy, &maxEnergy, &regenLevel, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	elapsed := int64(now.Sub(updatedAt).Seconds())
	energy = economy.EnergyRegenerated(elapsed, regenLevel, energy, maxEnergy)

	if _, err = tx.Exec(ctx,
		`UPDATE accounts SET energy = $1, energy_updated_at = $2 WHERE id = $3`,
		energy, now, accountID,
	); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	return repository.NewAccountRepository(s.db).GetByID(ctx, accountID)
}

// BoostResult reports the state after a full-energy refill.
type BoostResult struct {
	Energy     int64 `json:"energy"`
	MaxEnergy  int64 `json:"max_energy"`
	BoostsLeft int   `json:"boosts_left"`
}

// Boost consumes one daily boost and refills energy to max. The bounded
// counter is restored by the daily reset.
func (s *TapService) Boost(ctx context.Context, accountID int64) (*BoostResult, error) {
	var res BoostResult
	err := s.db.QueryRow(ctx,
		`UPDATE accounts
		 SET boosts_left = boosts_left - 1, energy = max_energy, energy_updated_at = NOW()
		 WHERE id = $1 AND boosts_left > 0
		 RETURNING energy, max_energy, boosts_left`,
		accountID,
	).Scan(&res.Energy, &res.MaxEnergy, &res.BoostsLeft)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if e := s.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists); e != nil {
			return nil, e
		}
		if !exists {
			return nil, repository.ErrNotFound
		}
		return nil, ErrNoBoosts
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}
