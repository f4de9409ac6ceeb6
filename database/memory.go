package database

import (
	"context"
	"sort"
	"sync"

	"github.com/ortelius/governance-backend/model"
	"github.com/shopspring/decimal"
)

// MemoryStore keeps documents in process. It backs GOVERNANCE_STORE=memory
// and the handler tests.
type MemoryStore struct {
	mu       sync.Mutex
	daos     map[string]model.DAO
	balances map[string]decimal.Decimal

	// FailSaves makes every save return this error when set.
	FailSaves error
	// FailBalances fails only the balance part of a save. Nothing from the
	// failed save is kept.
	FailBalances error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{daos: map[string]model.DAO{}, balances: map[string]decimal.Decimal{}}
}

// SaveState stores doc under its id and merges balances. Both writes are
// checked before either is applied.
func (m *MemoryStore) SaveState(_ context.Context, doc model.DAO, balances map[string]decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves != nil {
		return m.FailSaves
	}
	if len(balances) > 0 && m.FailBalances != nil {
		return m.FailBalances
	}
	m.daos[doc.ID] = doc
	for k, v := range balances {
		m.balances[k] = v
	}
	return nil
}

// LoadDAOs returns every stored DAO ordered by seq.
func (m *MemoryStore) LoadDAOs(_ context.Context) ([]model.DAO, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.DAO, 0, len(m.daos))
	for _, d := range m.daos {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// LoadBalances returns a copy of the stored balances.
func (m *MemoryStore) LoadBalances(_ context.Context) (map[string]decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]decimal.Decimal, len(m.balances))
	for k, v := range m.balances {
		out[k] = v
	}
	return out, nil
}
