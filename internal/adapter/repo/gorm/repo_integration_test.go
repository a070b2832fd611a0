package gormrepo

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"agentgate/internal/app/ports"
	"agentgate/internal/domain/billing"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("AGENTGATE_TEST_DB_DSN")
	if dsn == "" {
		t.Skip("AGENTGATE_TEST_DB_DSN is required for integration test")
	}
	return dsn
}

func openRepo(t *testing.T) AccountRepo {
	t.Helper()
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := ApplyMigrations(context.Background(), db, "../../../../migrations"); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return NewAccountRepo(db)
}

func TestAccountRepo_GetOrCreateGrantsBonusOnce(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	externalID := "it-bonus-once"
	_ = repo.db.Exec("DELETE FROM accounts WHERE external_id = ?", externalID).Error

	first, err := repo.GetOrCreate(ctx, externalID, "Ira", 50)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Balance != 50 {
		t.Fatalf("bonus mismatch: got=%d want=50", first.Balance)
	}

	balance, err := repo.DebitIfSufficient(ctx, externalID, 10)
	if err != nil {
		t.Fatalf("debit: %v", err)
	}
	if balance != 40 {
		t.Fatalf("debit must report its own post-update balance: got=%d want=40", balance)
	}
	second, err := repo.GetOrCreate(ctx, externalID, "Ira", 50)
	if err != nil {
		t.Fatalf("repeat create: %v", err)
	}
	if second.Balance != 40 {
		t.Fatalf("bonus re-granted: got=%d want=40", second.Balance)
	}
}

func TestAccountRepo_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	externalID := "it-concurrent-debit"
	_ = repo.db.Exec("DELETE FROM accounts WHERE external_id = ?", externalID).Error

	if _, err := repo.GetOrCreate(ctx, externalID, "Ira", 50); err != nil {
		t.Fatalf("create: %v", err)
	}

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.DebitIfSufficient(ctx, externalID, 5)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				granted++
				return
			}
			if !errors.Is(err, billing.ErrInsufficientFunds) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if granted != 10 {
		t.Fatalf("granted mismatch: got=%d want=10", granted)
	}
	account, err := repo.GetByExternalID(ctx, externalID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if account.Balance != 0 {
		t.Fatalf("final balance mismatch: got=%d want=0", account.Balance)
	}
}

func TestAccountRepo_DebitInsufficientReportsBalance(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	externalID := "it-insufficient"
	_ = repo.db.Exec("DELETE FROM accounts WHERE external_id = ?", externalID).Error

	if _, err := repo.GetOrCreate(ctx, externalID, "Ira", 3); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := repo.DebitIfSufficient(ctx, externalID, 5)
	var insufficient *billing.InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientFundsError, got %v", err)
	}
	if insufficient.Required != 5 || insufficient.Balance != 3 {
		t.Fatalf("detail mismatch: %+v", insufficient)
	}
}

func TestAccountRepo_CreditRoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	externalID := "it-credit"
	_ = repo.db.Exec("DELETE FROM accounts WHERE external_id = ?", externalID).Error

	if _, err := repo.GetOrCreate(ctx, externalID, "Ira", 10); err != nil {
		t.Fatalf("create: %v", err)
	}
	balance, err := repo.Credit(ctx, externalID, 5)
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if balance != 15 {
		t.Fatalf("balance mismatch: got=%d want=15", balance)
	}

	if _, err := repo.Credit(ctx, "it-credit-missing", 5); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
