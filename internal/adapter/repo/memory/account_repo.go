package memory

import (
	"context"
	"time"

	"agentgate/internal/app/ports"
	"agentgate/internal/domain/billing"
)

type AccountRepo struct {
	store *Store
}

func NewAccountRepo(store *Store) AccountRepo {
	return AccountRepo{store: store}
}

func (r AccountRepo) GetOrCreate(_ context.Context, externalID, displayName string, signupBonus int64) (billing.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if account, ok := r.store.accounts[externalID]; ok {
		return account, nil
	}
	account := billing.Account{
		ExternalID:  externalID,
		DisplayName: displayName,
		Balance:     signupBonus,
		CreatedAt:   time.Now().UTC(),
	}
	r.store.accounts[externalID] = account
	return account, nil
}

func (r AccountRepo) GetByExternalID(_ context.Context, externalID string) (billing.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	account, ok := r.store.accounts[externalID]
	if !ok {
		return billing.Account{}, ports.ErrNotFound
	}
	return account, nil
}

func (r AccountRepo) DebitIfSufficient(_ context.Context, externalID string, amount int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	account, ok := r.store.accounts[externalID]
	if !ok {
		return 0, ports.ErrNotFound
	}
	if account.Balance < amount {
		return 0, &billing.InsufficientFundsError{Required: amount, Balance: account.Balance}
	}
	account.Balance -= amount
	r.store.accounts[externalID] = account
	return account.Balance, nil
}

func (r AccountRepo) Credit(_ context.Context, externalID string, amount int64) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	account, ok := r.store.accounts[externalID]
	if !ok {
		return 0, ports.ErrNotFound
	}
	account.Balance += amount
	r.store.accounts[externalID] = account
	return account.Balance, nil
}
