package integration

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"tapcoin_webapp/internal/domain"
	"tapcoin_webapp/internal/repository"
	"tapcoin_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	entries, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(migDir, name))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", name, err)
		}
	}
}

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func TestAccountProvisionAndTap(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	accounts := service.NewAccountService(db)
	taps := service.NewTapService(db, 50)

	tgID := rand.Int63n(1_000_000_000) + 1_000_000_000
	account, created, err := accounts.GetOrCreate(ctx, &domain.TelegramUser{
		ID:        tgID,
		Username:  "flowtester",
		FirstName: "Flow",
	}, 0)
	if err != nil {
		t.Fatalf("provision account: %v", err)
	}
	if !created {
		t.Fatal("expected a fresh account")
	}
	if account.Energy != account.MaxEnergy {
		t.Fatalf("new account should start with full energy, got %d/%d", account.Energy, account.MaxEnergy)
	}

	result, err := taps.Tap(ctx, account.ID, 10)
	if err != nil {
		t.Fatalf("tap: %v", err)
	}
	if result.Gained != 10*account.EarnPerTap {
		t.Fatalf("expected %d coins gained, got %d", 10*account.EarnPerTap, result.Gained)
	}
	if result.Energy > account.MaxEnergy-10 {
		t.Fatalf("energy was not spent: %d", result.Energy)
	}

	// second login path must return the same account
	again, created, err := accounts.GetOrCreate(ctx, &domain.TelegramUser{ID: tgID}, 0)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if created || again.ID != account.ID {
		t.Fatalf("expected existing account %d, got %d (created=%v)", account.ID, again.ID, created)
	}
}

func TestReferralProvisioning(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	accounts := service.NewAccountService(db)

	inviterTg := rand.Int63n(1_000_000_000) + 2_000_000_000
	inviter, _, err := accounts.GetOrCreate(ctx, &domain.TelegramUser{ID: inviterTg, Username: "inviter"}, 0)
	if err != nil {
		t.Fatalf("provision inviter: %v", err)
	}

	friendTg := inviterTg + 1
	friend, created, err := accounts.GetOrCreate(ctx, &domain.TelegramUser{ID: friendTg, Username: "friend"}, inviter.ID)
	if err != nil {
		t.Fatalf("provision friend: %v", err)
	}
	if !created {
		t.Fatal("expected a fresh friend account")
	}
	if friend.ReferrerID == nil || *friend.ReferrerID != inviter.ID {
		t.Fatalf("referrer not recorded: %v", friend.ReferrerID)
	}
	if friend.Coins == 0 {
		t.Fatal("welcome bonus was not credited")
	}

	var reward int64
	var claimed bool
	err = db.QueryRow(ctx,
		`SELECT reward, claimed FROM referrals WHERE referrer_id = $1 AND referred_id = $2`,
		inviter.ID, friend.ID,
	).Scan(&reward, &claimed)
	if err != nil {
		t.Fatalf("referral row missing: %v", err)
	}
	if claimed {
		t.Fatal("referral must start unclaimed")
	}
	if reward <= 0 {
		t.Fatalf("bad referral reward: %d", reward)
	}
}

func TestComboStatusWithoutPublishedCombo(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	accounts := service.NewAccountService(db)
	rewards := service.NewRewardService(db)

	tgID := rand.Int63n(1_000_000_000) + 3_000_000_000
	account, _, err := accounts.GetOrCreate(ctx, &domain.TelegramUser{ID: tgID, Username: "combotester"}, 0)
	if err != nil {
		t.Fatalf("provision account: %v", err)
	}

	// pick a day no reset job could have published a combo for
	day := time.Now().UTC().AddDate(10, 0, 0)
	_, err = rewards.ComboStatus(ctx, account.ID, day)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unpublished combo day, got %v", err)
	}
}
