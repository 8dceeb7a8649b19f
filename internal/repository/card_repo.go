package repository

import (
	"context"
	"errors"

	"tapcoin_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CardRepository struct {
	db *pgxpool.Pool
}

func NewCardRepository(db *pgxpool.Pool) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = `id, name, COALESCE(description, ''), card_type, base_cost, cost_currency,
	base_hourly_income, stat_bonus, crystal_yield, is_active, sort_order`

func scanCard(row pgx.Row) (*domain.Card, error) {
	var c domain.Card
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CardType, &c.BaseCost, &c.CostCurrency,
		&c.BaseHourlyIncome, &c.StatBonus, &c.CrystalYield, &c.IsActive, &c.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetActiveCards returns the purchasable catalog.
func (r *CardRepository) GetActiveCards(ctx context.Context) ([]*domain.Card, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE is_active = true ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *CardRepository) GetByID(ctx context.Context, id int64) (*domain.Card, error) {
	row := r.db.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)
	return scanCard(row)
}

// GetUserCardLevel returns the owned level for (account, card); 0 when the
// card has never been bought.
func (r *CardRepository) GetUserCardLevel(ctx context.Context, accountID, cardID int64) (int, error) {
	var level int
	err := r.db.QueryRow(ctx,
		`SELECT level FROM user_cards WHERE account_id = $1 AND card_id = $2`,
		accountID, cardID,
	).Scan(&level)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return level, err
}

// GetUserCards returns all ownership rows for an account with card details.
func (r *CardRepository) GetUserCards(ctx context.Context, accountID int64) ([]*domain.UserCardWithDetails, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, COALESCE(c.description, ''), c.card_type, c.base_cost, c.cost_currency,
			c.base_hourly_income, c.stat_bonus, c.crystal_yield, c.is_active, c.sort_order,
			uc.level
		FROM user_cards uc
		JOIN cards c ON c.id = uc.card_id
		WHERE uc.account_id = $1
		ORDER BY c.sort_order, c.id`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.UserCardWithDetails
	for rows.Next() {
		var d domain.UserCardWithDetails
		err := rows.Scan(&d.Card.ID, &d.Card.Name, &d.Card.Description, &d.Card.CardType,
			&d.Card.BaseCost, &d.Card.CostCurrency, &d.Card.BaseHourlyIncome,
			&d.Card.StatBonus, &d.Card.CrystalYield, &d.Card.IsActive, &d.Card.SortOrder,
			&d.Level)
		if err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	return result, rows.Err()
}

// PickRandomCardIDs selects a random subset of active card ids for the daily
// combo, inside the caller's transaction.
func PickRandomCardIDs(ctx context.Context, tx pgx.Tx, n int) ([]int64, error) {
	rows, err := tx.Query(ctx,
		`SELECT id FROM cards WHERE is_active = true ORDER BY random() LIMIT $1`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
