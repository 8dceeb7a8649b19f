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
	ErrAlreadyClaimed  = errors.New("already claimed")
	ErrComboIncomplete = errors.New("combo not complete")
	ErrCardNotOwned    = errors.New("card not owned")
	ErrNotEligible     = errors.New("not eligible")
)

// RewardService covers the daily streak, the combo puzzle and league
// promotion. Every claim is a single transaction with the account row
// locked, so a double-fired claim sees the flag already set.
type RewardService struct {
	db        *pgxpool.Pool
	comboRepo *repository.ComboRepository
	cardRepo  *repository.CardRepository
}

func NewRewardService(db *pgxpool.Pool) *RewardService {
	return &RewardService{
		db:        db,
		comboRepo: repository.NewComboRepository(db),
		cardRepo:  repository.NewCardRepository(db),
	}
}

// DailyClaimResult reports a daily reward claim.
type DailyClaimResult struct {
	Streak int   `json:"streak"`
	Reward int64 `json:"reward"`
	Coins  int64 `json:"coins"`
}

// ClaimDaily applies the consecutive-day streak rule for a claim made today.
func (s *RewardService) ClaimDaily(ctx context.Context, accountID int64, today time.Time) (*DailyClaimResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		streak    int
		lastClaim *time.Time
	)
	err = tx.QueryRow(ctx,
		`SELECT streak, last_claim_date FROM accounts WHERE id = $1 FOR UPDATE`,
		accountID,
	).Scan(&streak, &lastClaim)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if economy.ClaimedToday(lastClaim, today) {
		return nil, ErrAlreadyClaimed
	}

	newStreak := economy.NextStreak(streak, lastClaim, today)
	reward := economy.DailyStreakReward(newStreak)

	res := &DailyClaimResult{Streak: newStreak, Reward: reward}
	err = tx.QueryRow(ctx,
		`UPDATE accounts
		 SET streak = $1, last_claim_date = $2,
			 coins = coins + $3, total_earned = total_earned + $3
		 WHERE id = $4 RETURNING coins`,
		newStreak, economy.DayUTC(today), reward, accountID,
	).Scan(&res.Coins)
	if err != nil {
		return nil, err
	}

	if err = createTx(ctx, tx, accountID, domain.TxTypeDailyReward, reward,
		map[string]interface{}{"streak": newStreak}); err != nil {
		return nil, err
	}

	return res, tx.Commit(ctx)
}

// ComboState is the per-account view of today's puzzle. The combo's card
// ids are never revealed, only how many there are and which the account
// already found.
type ComboState struct {
	Date     string  `json:"date"`
	Size     int     `json:"size"`
	Found    []int64 `json:"found"`
	Reward   int64   `json:"reward"`
	Complete bool    `json:"complete"`
	Claimed  bool    `json:"claimed"`
}

// ComboStatus returns the caller's progress on today's combo.
func (s *RewardService) ComboStatus(ctx context.Context, accountID int64, today time.Time) (*ComboState, error) {
	combo, err := s.comboRepo.GetForDate(ctx, today)
	if err != nil {
		return nil, err
	}

	var (
		found   []int64
		claimed bool
	)
	err = s.db.QueryRow(ctx,
		`SELECT combo_found, combo_claimed FROM accounts WHERE id = $1`, accountID,
	).Scan(&found, &claimed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return s.comboState(combo, found, claimed), nil
}

func (s *RewardService) comboState(combo *domain.DailyCombo, found []int64, claimed bool) *ComboState {
	if found == nil {
		found = []int64{}
	}
	hits := 0
	for _, id := range found {
		if combo.Contains(id) {
			hits++
		}
	}
	return &ComboState{
		Date:     combo.ComboDate.UTC().Format("2006-01-02"),
		Size:     len(combo.CardIDs),
		Found:    found,
		Reward:   combo.Reward,
		Complete: hits == len(combo.CardIDs),
		Claimed:  claimed,
	}
}

// FindComboCard registers a guess for today's combo. The card must be owned;
// a wrong guess is not an error, it just doesn't land in the found set.
func (s *RewardService) FindComboCard(ctx context.Context, accountID, cardID int64, today time.Time) (*ComboState, error) {
	combo, err := s.comboRepo.GetForDate(ctx, today)
	if err != nil {
		return nil, err
	}

	level, err := s.cardRepo.GetUserCardLevel(ctx, accountID, cardID)
	if err != nil {
		return nil, err
	}
	if level < 1 {
		return nil, ErrCardNotOwned
	}

	if !combo.Contains(cardID) {
		// miss: report current state untouched
		return s.ComboStatus(ctx, accountID, today)
	}

	var (
		found   []int64
		claimed bool
	)
	// array_append only when not yet present keeps the guess idempotent
	err = s.db.QueryRow(ctx,
		`UPDATE accounts
		 SET combo_found = CASE WHEN $1 = ANY(combo_found) THEN combo_found
								ELSE array_append(combo_found, $1) END
		 WHERE id = $2
		 RETURNING combo_found, combo_claimed`,
		cardID, accountID,
	).Scan(&found, &claimed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return s.comboState(combo, found, claimed), nil
}

// ComboClaimResult reports a combo bonus claim.
type ComboClaimResult struct {
	Reward int64 `json:"reward"`
	Coins  int64 `json:"coins"`
}

// ClaimCombo pays the bonus once all combo cards were found today.
func (s *RewardService) ClaimCombo(ctx context.Context, accountID int64, today time.Time) (*ComboClaimResult, error) {
	combo, err := s.comboRepo.GetForDate(ctx, today)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		found   []int64
		claimed bool
	)
	err = tx.QueryRow(ctx,
		`SELECT combo_found, combo_claimed FROM accounts WHERE id = $1 FOR UPDATE`,
		accountID,
	).Scan(&found, &claimed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if claimed {
		return nil, ErrAlreadyClaimed
	}

	hits := 0
	for _, id := range found {
		if combo.Contains(id) {
			hits++
		}
	}
	if hits < len(combo.CardIDs) {
		return nil, ErrComboIncomplete
	}

	res := &ComboClaimResult{Reward: combo.Reward}
	err = tx.QueryRow(ctx,
		`UPDATE accounts
		 SET combo_claimed = true, coins = coins + $1, total_earned = total_earned + $1
		 WHERE id = $2 RETURNING coins`,
		combo.Reward, accountID,
	).Scan(&res.Coins)
	if err != nil {
		return nil, err
	}

	if err = createTx(ctx, tx, accountID, domain.TxTypeComboBonus, combo.Reward,
		map[string]interface{}{"combo_date": combo.ComboDate.UTC().Format("2006-01-02")}); err != nil {
		return nil, err
	}

	return res, tx.Commit(ctx)
}

// LeagueStatus is the caller's progression snapshot.
type LeagueStatus struct {
	League        int   `json:"league"`
	TotalEarned   int64 `json:"total_earned"`
	NextThreshold int64 `json:"next_threshold"` // -1 at the top league
	NextReward    int64 `json:"next_reward"`
	CanPromote    bool  `json:"can_promote"`
}

// League returns the promotion status for an account.
func (s *RewardService) League(ctx context.Context, accountID int64) (*LeagueStatus, error) {
	var (
		league      int
		totalEarned int64
	)
	err := s.db.QueryRow(ctx,
		`SELECT league, total_earned FROM accounts WHERE id = $1`, accountID,
	).Scan(&league, &totalEarned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &LeagueStatus{
		League:        league,
		TotalEarned:   totalEarned,
		NextThreshold: economy.LeagueThreshold(league + 1),
		NextReward:    economy.LeagueReward(league + 1),
		CanPromote:    economy.CanPromote(league, totalEarned),
	}, nil
}

// PromoteResult reports a league promotion.
type PromoteResult struct {
	League int   `json:"league"`
	Reward int64 `json:"reward"`
	Coins  int64 `json:"coins"`
}

// PromoteLeague moves the account into the next league and pays the one-time
// promotion bonus. League is monotonically non-decreasing by construction.
func (s *RewardService) PromoteLeague(ctx context.Context, accountID int64) (*PromoteResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		league      int
		totalEarned int64
	)
	err = tx.QueryRow(ctx,
		`SELECT league, total_earned FROM accounts WHERE id = $1 FOR UPDATE`, accountID,
	).Scan(&league, &totalEarned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if !economy.CanPromote(league, totalEarned) {
		return nil, ErrNotEligible
	}

	newLeague := league + 1
	reward := economy.LeagueReward(newLeague)

	res := &PromoteResult{League: newLeague, Reward: reward}
	err = tx.QueryRow(ctx,
		`UPDATE accounts
		 SET league = $1, coins = coins + $2, total_earned = total_earned + $2
		 WHERE id = $3 RETURNING coins`,
		newLeague, reward, accountID,
	).Scan(&res.Coins)
	if err != nil {
		return nil, err
	}

	if err = createTx(ctx, tx, accountID, domain.TxTypeLeagueReward, reward,
		map[string]interface{}{"league": newLeague}); err != nil {
		return nil, err
	}

	return res, tx.Commit(ctx)
}
