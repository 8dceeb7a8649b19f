package handlers

import (
	"tapcoin_webapp/internal/repository"
	"tapcoin_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds per-deployment knobs for the handler.
type HandlerConfig struct {
	BotToken         string
	BotUsername      string
	WebAppShortName  string
	AdminTelegramIDs []int64
	MaxTapsPerReq    int
}

type Handler struct {
	DB              *pgxpool.Pool
	Cfg             HandlerConfig
	AccountRepo     *repository.AccountRepository
	MissionRepo     *repository.MissionRepository
	ReferralRepo    *repository.ReferralRepository
	TransactionRepo *repository.TransactionRepository
	AccountService  *service.AccountService
	TapService      *service.TapService
	CardService     *service.CardService
	RewardService   *service.RewardService
	ResetService    *service.ResetService
}

func NewHandler(db *pgxpool.Pool, cfg HandlerConfig) *Handler {
	return &Handler{
		DB:              db,
		Cfg:             cfg,
		AccountRepo:     repository.NewAccountRepository(db),
		MissionRepo:     repository.NewMissionRepository(db),
		ReferralRepo:    repository.NewReferralRepository(db),
		TransactionRepo: repository.NewTransactionRepository(db),
		AccountService:  service.NewAccountService(db),
		TapService:      service.NewTapService(db, cfg.MaxTapsPerReq),
		CardService:     service.NewCardService(db),
		RewardService:   service.NewRewardService(db),
		ResetService:    service.NewResetService(db),
	}
}

// getAccountID извлекает account_id из контекста Gin
func getAccountID(c interface{ Get(key any) (any, bool) }) (int64, bool) {
	val, ok := c.Get("account_id")
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
