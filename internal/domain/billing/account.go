package billing

import (
	"errors"
	"fmt"
	"time"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// InsufficientFundsError reports a reserve that failed its balance guard.
// The balance is the value observed at rejection time; it was not changed.
type InsufficientFundsError struct {
	Required int64
	Balance  int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required=%d balance=%d", e.Required, e.Balance)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// Account is the durable per-identity credit record. Balance is mutated
// only through the ledger's conditional debit/credit operations.
type Account struct {
	ExternalID  string
	DisplayName string
	Balance     int64
	CreatedAt   time.Time
}

type HoldState string

const (
	HoldReserved  HoldState = "RESERVED"
	HoldCommitted HoldState = "COMMITTED"
	HoldRefunded  HoldState = "REFUNDED"
)

// Hold is a provisional claim against an account's balance, taken before
// the model call. Every hold must end COMMITTED or REFUNDED.
type Hold struct {
	ID         string
	ExternalID string
	Amount     int64
	State      HoldState
}
