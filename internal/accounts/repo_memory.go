package accounts

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{accounts: make(map[string]Account)}
}

func (r *MemoryRepo) GetByID(ctx context.Context, accountID string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return Account{}, ErrNotFound
	}
	return account, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, account Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.accounts[account.ID]
	now := time.Now().UTC()
	if !ok {
		account.CreatedAt = now
	} else {
		account.CreatedAt = existing.CreatedAt
		// Upsert patches raw fields only; the lifecycle snapshot belongs to UpdateState.
		account.State = existing.State
		account.StateReason = existing.StateReason
		account.StateUpdatedAt = existing.StateUpdatedAt
	}
	account.UpdatedAt = now
	r.accounts[account.ID] = account
	return nil
}

func (r *MemoryRepo) UpdateState(ctx context.Context, accountID, state, reason string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[accountID]
	if !ok {
		return ErrNotFound
	}
	account.State = state
	account.StateReason = reason
	stateAt := at
	account.StateUpdatedAt = &stateAt
	account.UpdatedAt = at
	r.accounts[accountID] = account
	return nil
}

func (r *MemoryRepo) ListIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
