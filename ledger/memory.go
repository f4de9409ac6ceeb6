// Package ledger provides the in-process value ledger that backs DAO treasuries.
package ledger

import (
	"sync"

	"github.com/ortelius/governance-backend/governance"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Memory is a mutex-guarded map of account balances.
type Memory struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	logger   *zap.Logger
}

// NewMemory returns an empty ledger.
func NewMemory(logger *zap.Logger) *Memory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memory{balances: map[string]decimal.Decimal{}, logger: logger}
}

// Balance returns the balance of account, zero if unknown.
func (m *Memory) Balance(account string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[account]
}

// Credit adds amount to account.
func (m *Memory) Credit(account string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return governance.ErrInvalidAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[account] = m.balances[account].Add(amount)
	m.logger.Debug("ledger credit", zap.String("account", account), zap.String("amount", amount.String()))
	return nil
}

// Transfer moves amount from one account to another, or does nothing and
// returns governance.ErrInsufficientFunds.
func (m *Memory) Transfer(from, to string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return governance.ErrInvalidAmount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.balances[from].LessThan(amount) {
		return governance.ErrInsufficientFunds
	}
	m.balances[from] = m.balances[from].Sub(amount)
	m.balances[to] = m.balances[to].Add(amount)
	m.logger.Info("ledger transfer",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("amount", amount.String()))
	return nil
}

// Balances returns a copy of every non-zero balance.
func (m *Memory) Balances() map[string]decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]decimal.Decimal, len(m.balances))
	for k, v := range m.balances {
		if !v.IsZero() {
			out[k] = v
		}
	}
	return out
}

// Load replaces all balances, used when restoring persisted state.
func (m *Memory) Load(balances map[string]decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances = make(map[string]decimal.Decimal, len(balances))
	for k, v := range balances {
		m.balances[k] = v
	}
}
