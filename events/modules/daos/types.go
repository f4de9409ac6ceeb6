// Package dao defines the Kafka events emitted and consumed by the governance service.
package dao

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types published on the governance events topic.
const (
	EventDAOCreated       = "dao.created"
	EventProposalCreated  = "proposal.created"
	EventVoteCast         = "vote.cast"
	EventProposalExecuted = "proposal.executed"
	EventTreasuryDeposit  = "treasury.deposit"
)

// SchemaVersion of the event envelope.
const SchemaVersion = "v1"

// Event is the envelope of every message written to the events topic.
type Event struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	DAOID      string `json:"dao_id"`
	ProposalID *int   `json:"proposal_id,omitempty"`
	Actor      string `json:"actor"`

	Payload interface{} `json:"payload,omitempty"`
}

// TreasuryDepositEvent is read from the deposit topic and credited to a DAO
// treasury.
type TreasuryDepositEvent struct {
	DAOID  string          `json:"dao_id"`
	From   string          `json:"from"`
	Amount decimal.Decimal `json:"amount"`
}
