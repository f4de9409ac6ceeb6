// Package governance implements a single organization: its members, its
// proposals, voting, quorum evaluation and execution of approved actions.
//
// Every exported operation on Organization is atomic. It either returns an
// error and leaves the organization unchanged, or applies all of its effects.
package governance

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Call carries what the host environment supplies to every operation.
type Call struct {
	Caller string
	Now    time.Time
	Value  decimal.Decimal
}

// Ledger is the host's value-transfer layer. Implementations must make
// Transfer all-or-nothing.
type Ledger interface {
	Balance(account string) decimal.Decimal
	Credit(account string, amount decimal.Decimal) error
	Transfer(from, to string, amount decimal.Decimal) error
}

// Account returns the ledger account that holds an organization's treasury.
func Account(daoID string) string {
	return "dao:" + daoID
}

// ValidateID checks that a DAO id is non-empty and free of whitespace.
func ValidateID(id string) error {
	if id == "" || strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return ErrInvalidDAOID
	}
	return nil
}
