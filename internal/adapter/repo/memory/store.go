package memory

import (
	"sync"

	"agentgate/internal/domain/billing"
)

// Store backs the in-memory account repository. The single mutex makes
// each repository method as atomic as the SQL adapter's conditional
// updates.
type Store struct {
	mu       sync.Mutex
	accounts map[string]billing.Account
}

func NewStore() *Store {
	return &Store{accounts: make(map[string]billing.Account)}
}

func (s *Store) Seed(account billing.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ExternalID] = account
}
