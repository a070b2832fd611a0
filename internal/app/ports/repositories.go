package ports

import (
	"context"

	"agentgate/internal/domain/billing"
)

// AccountRepository is the durable account store. Implementations must
// make every method a single atomic storage operation: GetOrCreate is a
// conditional insert keyed by the unique external id, DebitIfSufficient
// a conditional decrement guarded by the current balance.
type AccountRepository interface {
	// GetOrCreate returns the account for externalID, creating it with
	// the signup bonus on first sight. Concurrent first requests must
	// yield one account and one bonus.
	GetOrCreate(ctx context.Context, externalID, displayName string, signupBonus int64) (billing.Account, error)

	// GetByExternalID returns ErrNotFound for unknown identities.
	GetByExternalID(ctx context.Context, externalID string) (billing.Account, error)

	// DebitIfSufficient decrements balance by amount only when
	// balance >= amount, returning the new balance. A failed guard
	// returns *billing.InsufficientFundsError and leaves the balance
	// unchanged.
	DebitIfSufficient(ctx context.Context, externalID string, amount int64) (int64, error)

	// Credit increments balance by amount and returns the new balance.
	Credit(ctx context.Context, externalID string, amount int64) (int64, error)
}
