package repository

import (
	"context"
	"errors"

	"tapcoin_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAlreadyClaimed = errors.New("already claimed")

type ReferralRepository struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// CreateReferralWithTx inserts the referral record at account-creation time,
// inside the provisioning transaction. At most one referral per referred
// account.
func CreateReferralWithTx(ctx context.Context, tx pgx.Tx, referrerID, referredID, reward int64) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO referrals (referrer_id, referred_id, reward)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (referred_id) DO NOTHING`,
		referrerID, referredID, reward,
	)
	return err
}

// GetByReferrer returns all referrals made by an account, newest first.
func (r *ReferralRepository) GetByReferrer(ctx context.Context, referrerID int64) ([]domain.ReferralWithFriend, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ref.id, ref.referrer_id, ref.referred_id, ref.reward, ref.claimed,
			ref.created_at, ref.claimed_at,
			COALESCE(a.username, ''), COALESCE(a.first_name, '')
		 FROM referrals ref
		 JOIN accounts a ON a.id = ref.referred_id
		 WHERE ref.referrer_id = $1
		 ORDER BY ref.created_at DESC`,
		referrerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var referrals []domain.ReferralWithFriend
	for rows.Next() {
		var ref domain.ReferralWithFriend
		if err := rows.Scan(&ref.ID, &ref.ReferrerID, &ref.ReferredID, &ref.Reward, &ref.Claimed,
			&ref.CreatedAt, &ref.ClaimedAt, &ref.FriendUsername, &ref.FriendFirstName); err != nil {
			return nil, err
		}
		referrals = append(referrals, ref)
	}
	return referrals, rows.Err()
}

// Claim flips claimed false->true and credits the reward to the referrer in
// one transaction. The conditional UPDATE is the idempotency guard: a second
// claim matches zero rows.
func (r *ReferralRepository) Claim(ctx context.Context, referralID, referrerID int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var reward int64
	err = tx.QueryRow(ctx,
		`UPDATE referrals SET claimed = true, claimed_at = NOW()
		 WHERE id = $1 AND referrer_id = $2 AND claimed = false
		 RETURNING reward`,
		referralID, referrerID,
	).Scan(&reward)
	if errors.Is(err, pgx.ErrNoRows) {
		// distinguish missing from already claimed
		var exists bool
		if e := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM referrals WHERE id = $1 AND referrer_id = $2)`,
			referralID, referrerID).Scan(&exists); e != nil {
			return 0, e
		}
		if !exists {
			return 0, ErrNotFound
		}
		return 0, ErrAlreadyClaimed
	}
	if err != nil {
		return 0, err
	}

	var newBalance int64
	err = tx.QueryRow(ctx,
		`UPDATE accounts SET coins = coins + $1, total_earned = total_earned + $1
		 WHERE id = $2 RETURNING coins`,
		reward, referrerID,
	).Scan(&newBalance)
	if err != nil {
		return 0, err
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO transactions (account_id, type, amount, meta)
		 VALUES ($1, $2, $3, $4)`,
		referrerID, domain.TxTypeReferralBonus, reward,
		map[string]interface{}{"referral_id": referralID},
	); err != nil {
		return 0, err
	}

	return newBalance, tx.Commit(ctx)
}
