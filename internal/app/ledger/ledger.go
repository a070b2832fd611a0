package ledger

import (
	"context"
	"errors"

	"agentgate/internal/app/ports"
	"agentgate/internal/domain/billing"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrLedgerFailure = errors.New("ledger failure")

// Service implements reserve/commit/refund over the account store. The
// store performs the atomic balance mutation; the hold's state machine
// lives here so a request can always be driven to a terminal state.
type Service struct {
	Accounts ports.AccountRepository
}

// Reserve atomically claims amount from the account before the model
// call. Returns the hold and the post-reserve balance, or
// *billing.InsufficientFundsError with the balance untouched.
func (s Service) Reserve(ctx context.Context, externalID string, amount int64) (*billing.Hold, int64, error) {
	newBalance, err := s.Accounts.DebitIfSufficient(ctx, externalID, amount)
	if err != nil {
		if errors.Is(err, billing.ErrInsufficientFunds) {
			return nil, 0, err
		}
		return nil, 0, wrapLedger(err)
	}
	hold := &billing.Hold{
		ID:         uuid.NewString(),
		ExternalID: externalID,
		Amount:     amount,
		State:      billing.HoldReserved,
	}
	return hold, newBalance, nil
}

// Commit finalizes a reservation. Funds were already taken at reserve
// time, so this only flips the hold's bookkeeping state.
func (s Service) Commit(_ context.Context, hold *billing.Hold) {
	if hold.State != billing.HoldReserved {
		log.Warn().
			Str("hold_id", hold.ID).
			Str("state", string(hold.State)).
			Msg("commit on non-reserved hold ignored")
		return
	}
	hold.State = billing.HoldCommitted
}

// Refund returns the held amount to the account. Refunding a hold that
// already reached a terminal state is a logged no-op, never a double
// credit.
func (s Service) Refund(ctx context.Context, hold *billing.Hold) (int64, error) {
	if hold.State != billing.HoldReserved {
		log.Warn().
			Str("hold_id", hold.ID).
			Str("state", string(hold.State)).
			Msg("refund on non-reserved hold ignored")
		return 0, nil
	}
	newBalance, err := s.Accounts.Credit(ctx, hold.ExternalID, hold.Amount)
	if err != nil {
		return 0, wrapLedger(err)
	}
	hold.State = billing.HoldRefunded
	return newBalance, nil
}

func wrapLedger(err error) error {
	return errors.Join(ErrLedgerFailure, err)
}
