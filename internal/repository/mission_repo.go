package repository

import (
	"context"
	"errors"

	"tapcoin_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MissionRepository struct {
	db *pgxpool.Pool
}

func NewMissionRepository(db *pgxpool.Pool) *MissionRepository {
	return &MissionRepository{db: db}
}

// GetActiveMissions возвращает все активные миссии
func (r *MissionRepository) GetActiveMissions(ctx context.Context) ([]*domain.Mission, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), mission_type, COALESCE(url, ''),
			reward, is_active, sort_order, created_at
		 FROM missions
		 WHERE is_active = true
		 ORDER BY sort_order, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Mission
	for rows.Next() {
		var m domain.Mission
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.MissionType, &m.URL,
			&m.Reward, &m.IsActive, &m.SortOrder, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}

func (r *MissionRepository) GetByID(ctx context.Context, id int64) (*domain.Mission, error) {
	var m domain.Mission
	err := r.db.QueryRow(ctx,
		`SELECT id, title, COALESCE(description, ''), mission_type, COALESCE(url, ''),
			reward, is_active, sort_order, created_at
		 FROM missions WHERE id = $1`, id,
	).Scan(&m.ID, &m.Title, &m.Description, &m.MissionType, &m.URL,
		&m.Reward, &m.IsActive, &m.SortOrder, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetCompletedIDs returns the ids of missions the account has completed.
func (r *MissionRepository) GetCompletedIDs(ctx context.Context, accountID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT mission_id FROM mission_completions WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		completed[id] = true
	}
	return completed, rows.Err()
}

// Complete records the completion and credits the reward in one transaction.
// The unique (account_id, mission_id) index is the idempotency guard.
func (r *MissionRepository) Complete(ctx context.Context, accountID int64, mission *domain.Mission) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`INSERT INTO mission_completions (account_id, mission_id)
		 VALUES ($1, $2)
		 ON CONFLICT (account_id, mission_id) DO NOTHING`,
		accountID, mission.ID,
	)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrAlreadyClaimed
	}

	var newBalance int64
	err = tx.QueryRow(ctx,
		`UPDATE accounts SET coins = coins + $1, total_earned = total_earned + $1
		 WHERE id = $2 RETURNING coins`,
		mission.Reward, accountID,
	).Scan(&newBalance)
	if err != nil {
		return 0, err
	}

	if err = CreateTransactionWithTx(ctx, tx, accountID, domain.TxTypeMissionReward, mission.Reward,
		map[string]interface{}{"mission_id": mission.ID}); err != nil {
		return 0, err
	}

	return newBalance, tx.Commit(ctx)
}
