package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"social_webapp/internal/domain"
	"social_webapp/internal/repository"
	"social_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func connectTestDB(t *testing.T) *pgxpool.Pool {
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

func createTestUser(t *testing.T, db *pgxpool.Pool, prefix string) *domain.User {
	t.Helper()
	repo := repository.NewUserRepository(db)
	u := &domain.User{Username: fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	u.Coins = 500
	u.Level = 1
	return u
}

func TestUserStartsWith500Coins(t *testing.T) {
	db := connectTestDB(t)
	repo := repository.NewUserRepository(db)

	u := createTestUser(t, db, "newbie")
	got, err := repo.GetByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Coins != 500 || got.Level != 1 {
		t.Fatalf("expected 500 coins at level 1, got %d at level %d", got.Coins, got.Level)
	}
}

func TestDailyCoinsClaimedOnce(t *testing.T) {
	db := connectTestDB(t)
	users := service.NewUserService(db)
	ctx := context.Background()

	u := createTestUser(t, db, "daily")

	amount, err := users.ClaimDailyCoins(ctx, u.ID)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if amount != service.DailyCoinsAmount {
		t.Fatalf("expected %d coins, got %d", service.DailyCoinsAmount, amount)
	}

	if _, err := users.ClaimDailyCoins(ctx, u.ID); err != service.ErrAlreadyClaimed {
		t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
	}
}

func TestBetWagerAndSettlement(t *testing.T) {
	db := connectTestDB(t)
	bets := service.NewBetService(db)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	bet, err := bets.CreateBet(ctx, alice.ID, "will it rain tomorrow", "", "", time.Now().Add(time.Second))
	if err != nil {
		t.Fatalf("create bet: %v", err)
	}
	if bet.Ratio1 != domain.InitialRatio || bet.Ratio2 != domain.InitialRatio {
		t.Fatalf("expected initial ratios, got %v/%v", bet.Ratio1, bet.Ratio2)
	}

	if _, err := bets.PlaceWager(ctx, bet.ID, alice.ID, domain.BetSideA, 100); err != nil {
		t.Fatalf("alice wager: %v", err)
	}
	if _, err := bets.PlaceWager(ctx, bet.ID, alice.ID, domain.BetSideA, 50); err != service.ErrAlreadyVoted {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if _, err := bets.PlaceWager(ctx, bet.ID, bob.ID, domain.BetSideB, 600); err != service.ErrInsufficientCoins {
		t.Fatalf("expected ErrInsufficientCoins, got %v", err)
	}
	if _, err := bets.PlaceWager(ctx, bet.ID, bob.ID, domain.BetSideB, 200); err != nil {
		t.Fatalf("bob wager: %v", err)
	}

	// stakes leave the balances at wager time
	a, _ := userRepo.GetByID(ctx, alice.ID)
	if a.Coins != 400 {
		t.Fatalf("expected alice at 400 coins, got %d", a.Coins)
	}

	if _, err := bets.Settle(ctx, bet.ID, domain.BetSideA); err != service.ErrBetStillOpen {
		t.Fatalf("expected ErrBetStillOpen, got %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	result, err := bets.Settle(ctx, bet.ID, domain.BetSideA)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if result.Winners != 1 || result.Losers != 1 {
		t.Fatalf("expected 1 winner and 1 loser, got %d/%d", result.Winners, result.Losers)
	}

	closed, err := bets.Settle(ctx, bet.ID, domain.BetSideA)
	if err != service.ErrBetAlreadyPaid {
		t.Fatalf("expected ErrBetAlreadyPaid, got %v (%v)", err, closed)
	}

	a, _ = userRepo.GetByID(ctx, alice.ID)
	reward := domain.VoteReward(100, result.WinningRatio)
	if a.Coins != 400+reward {
		t.Fatalf("expected alice at %d coins, got %d", 400+reward, a.Coins)
	}
}

func TestMeetingMajorityConfirmation(t *testing.T) {
	db := connectTestDB(t)
	meetings := service.NewMeetingService(db)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	u1 := createTestUser(t, db, "host")
	u2 := createTestUser(t, db, "guest")
	u3 := createTestUser(t, db, "guest")

	m, err := meetings.Create(ctx, u1.ID, time.Now(), "the usual pub", "",
		true, false, []int64{u2.ID, u3.ID}, nil)
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	// creator auto-confirms; the second confirmation of three reaches the
	// majority threshold
	result, err := meetings.Confirm(ctx, m.ID, u2.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !result.ConfirmedByMajority {
		t.Fatalf("expected majority confirmation after 2/3")
	}

	reward := domain.RewardForMeetingSize(3)
	got, _ := userRepo.GetByID(ctx, u3.ID)
	if got.Coins != 500+reward.Coins {
		t.Fatalf("expected %d coins for silent attendee, got %d", 500+reward.Coins, got.Coins)
	}

	if _, err := meetings.Confirm(ctx, m.ID, u2.ID); err != service.ErrAlreadyConfirmed {
		t.Fatalf("expected ErrAlreadyConfirmed, got %v", err)
	}
}
