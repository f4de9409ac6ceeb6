package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposalType is the action an approved proposal performs when executed.
type ProposalType string

// Recognized proposal types.
const (
	ProposalUpdateName       ProposalType = "updateName"
	ProposalUpdateSocials    ProposalType = "updateSocials"
	ProposalUpdateImage      ProposalType = "updateImage"
	ProposalAddMember        ProposalType = "addMember"
	ProposalJoin             ProposalType = "join"
	ProposalRemoveMember     ProposalType = "removeMember"
	ProposalUpdateQuorum     ProposalType = "updateQuorum"
	ProposalUpdateVotingTime ProposalType = "updateVotingTime"
	ProposalTransfer         ProposalType = "transfer"
	ProposalCustom           ProposalType = "custom"
)

// ProposalTypes lists every recognized type in declaration order.
var ProposalTypes = []ProposalType{
	ProposalUpdateName,
	ProposalUpdateSocials,
	ProposalUpdateImage,
	ProposalAddMember,
	ProposalJoin,
	ProposalRemoveMember,
	ProposalUpdateQuorum,
	ProposalUpdateVotingTime,
	ProposalTransfer,
	ProposalCustom,
}

// Valid reports whether t is one of the recognized proposal types.
func (t ProposalType) Valid() bool {
	for _, known := range ProposalTypes {
		if t == known {
			return true
		}
	}
	return false
}

// NeedsTarget reports whether the action reads the proposal target.
func (t ProposalType) NeedsTarget() bool {
	return t == ProposalAddMember || t == ProposalRemoveMember || t == ProposalTransfer
}

// NeedsInfo reports whether the action reads the proposal info payload.
func (t ProposalType) NeedsInfo() bool {
	return t == ProposalUpdateName || t == ProposalUpdateSocials || t == ProposalUpdateImage
}

// ProposalStatus is the lifecycle state of a proposal at a point in time.
type ProposalStatus string

// Lifecycle states. A closed proposal that never passes stays closed.
const (
	StatusOpen     ProposalStatus = "open"
	StatusClosed   ProposalStatus = "closed"
	StatusExecuted ProposalStatus = "executed"
)

// ProposalInfo carries the organization fields used by update proposals.
type ProposalInfo struct {
	Name    string   `json:"name" yaml:"name"`
	Socials []string `json:"socials" yaml:"socials"`
	Image   string   `json:"image" yaml:"image"`
}

// Vote is a single member's ballot on a proposal.
type Vote struct {
	Voter   string `json:"voter"`
	Support bool   `json:"support"`
}

// Proposal is a time-boxed, typed action awaiting approval.
type Proposal struct {
	ID           int             `json:"id"`
	Proposer     string          `json:"proposer"`
	Type         ProposalType    `json:"type"`
	Description  string          `json:"description"`
	Value        decimal.Decimal `json:"value"`
	Target       string          `json:"target"`
	Info         *ProposalInfo   `json:"info,omitempty"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	VotesFor     int             `json:"votes_for"`
	VotesAgainst int             `json:"votes_against"`
	IsExecuted   bool            `json:"is_executed"`
	Votes        []Vote          `json:"votes"`
	DAOName      string          `json:"dao_name"`
	DAOID        string          `json:"dao_id"`
	DAOImage     string          `json:"dao_image"`
	MemberCount  int             `json:"member_count"`
	Quorum       int             `json:"quorum"`
	HasVoted     map[string]bool `json:"has_voted"`
}

// Status derives the lifecycle state of the proposal at now.
func (p Proposal) Status(now time.Time) ProposalStatus {
	switch {
	case p.IsExecuted:
		return StatusExecuted
	case now.Before(p.EndTime):
		return StatusOpen
	default:
		return StatusClosed
	}
}

// IsActive reports whether the voting window is still open at now.
func (p Proposal) IsActive(now time.Time) bool {
	return p.EndTime.After(now)
}

// Clone returns a deep copy so callers cannot alias internal state.
func (p Proposal) Clone() Proposal {
	out := p
	if p.Info != nil {
		info := *p.Info
		info.Socials = append([]string(nil), p.Info.Socials...)
		out.Info = &info
	}
	out.Votes = append([]Vote(nil), p.Votes...)
	out.HasVoted = make(map[string]bool, len(p.HasVoted))
	for k, v := range p.HasVoted {
		out.HasVoted[k] = v
	}
	return out
}
