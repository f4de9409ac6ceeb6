// Package model - API types for governance requests and responses
package model

import "github.com/shopspring/decimal"

// CreateDAORequest is the body of a DAO creation call. Value is the amount
// attached to the call by the caller.
type CreateDAORequest struct {
	Name            string          `json:"name" yaml:"name"`
	ID              string          `json:"id" yaml:"id"`
	Description     string          `json:"description" yaml:"description"`
	Image           string          `json:"image" yaml:"image"`
	Socials         []string        `json:"socials" yaml:"socials"`
	InitialMembers  []string        `json:"initial_members" yaml:"initial_members"`
	StartingBalance decimal.Decimal `json:"starting_balance" yaml:"-"`
	VotingTime      int64           `json:"voting_time" yaml:"voting_time"`
	Quorum          int             `json:"quorum" yaml:"quorum"`
	Value           decimal.Decimal `json:"value" yaml:"-"`
}

// CreateProposalRequest is the body of a proposal creation call.
type CreateProposalRequest struct {
	Type        ProposalType    `json:"type"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Target      string          `json:"target"`
	Info        *ProposalInfo   `json:"info,omitempty"`
}

// VoteRequest is the body of a vote call.
type VoteRequest struct {
	Support bool `json:"support"`
}

// DepositRequest is the body of a treasury deposit call.
type DepositRequest struct {
	Value decimal.Decimal `json:"value"`
}

// ProposalView is a proposal annotated with its lifecycle state.
type ProposalView struct {
	Proposal
	Status ProposalStatus `json:"status"`
}
