package repository

import (
	"context"
	"errors"
	"time"

	"tapcoin_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ComboRepository struct {
	db *pgxpool.Pool
}

func NewComboRepository(db *pgxpool.Pool) *ComboRepository {
	return &ComboRepository{db: db}
}

// GetForDate returns the combo for the given calendar day.
func (r *ComboRepository) GetForDate(ctx context.Context, day time.Time) (*domain.DailyCombo, error) {
	var c domain.DailyCombo
	err := r.db.QueryRow(ctx,
		`SELECT id, combo_date, card_ids, reward, created_at
		 FROM daily_combos WHERE combo_date = $1`,
		day.UTC().Format("2006-01-02"),
	).Scan(&c.ID, &c.ComboDate, &c.CardIDs, &c.Reward, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// InsertWithTx publishes a new combo inside the daily-reset transaction.
// Returns false when a combo for that day already exists, which makes the
// whole reset idempotent per calendar day.
func InsertComboWithTx(ctx context.Context, tx pgx.Tx, day time.Time, cardIDs []int64, reward int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`INSERT INTO daily_combos (combo_date, card_ids, reward)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (combo_date) DO NOTHING`,
		day.UTC().Format("2006-01-02"), cardIDs, reward,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
