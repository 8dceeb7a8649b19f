package repository

import (
	"context"

	"tapcoin_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetByAccountID returns recent ledger entries for an account.
func (r *TransactionRepository) GetByAccountID(ctx context.Context, accountID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, account_id, type, amount, meta, created_at
		 FROM transactions
		 WHERE account_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		accountID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.Meta, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}

// CreateWithTx writes a ledger entry inside the caller's transaction so the
// entry commits or rolls back with the balance mutation it describes.
func CreateTransactionWithTx(ctx context.Context, tx pgx.Tx, accountID int64, txType string, amount int64, meta map[string]interface{}) error {
	if meta == nil {
		meta = map[string]interface{}{}
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO transactions (account_id, type, amount, meta)
		 VALUES ($1, $2, $3, $4)`,
		accountID, txType, amount, meta,
	)
	return err
}
