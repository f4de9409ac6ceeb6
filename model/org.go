// Package model defines the data structures for organization governance.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DAO is the persisted document for one governed organization.
// Proposals and activity records are embedded so a single document
// write captures the whole result of a call.
type DAO struct {
	Key            string                    `json:"_key,omitempty"`
	Rev            string                    `json:"_rev,omitempty"`
	SchemaVersion  string                    `json:"schema_version"`
	Seq            uint64                    `json:"seq"`
	Name           string                    `json:"name"`
	ID             string                    `json:"id"`
	Description    string                    `json:"description"`
	Image          string                    `json:"image"`
	Socials        []string                  `json:"socials"`
	VotingTime     int64                     `json:"voting_time"` // milliseconds
	Quorum         int                       `json:"quorum"`
	Proposals      []Proposal                `json:"proposals"`
	TotalProposals int                       `json:"total_proposals"`
	TotalVotes     int                       `json:"total_votes"`
	Members        []string                  `json:"members"`
	CreatedAt      time.Time                 `json:"created_at"`
	Activities     map[string]ActivityRecord `json:"activities"`
}

// DAOInfo is the read-only summary of an organization returned by
// listings and lookups.
type DAOInfo struct {
	Name            string          `json:"name"`
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	Image           string          `json:"image"`
	Socials         []string        `json:"socials"`
	VotingTime      int64           `json:"voting_time"`
	Quorum          int             `json:"quorum"`
	TotalProposals  int             `json:"total_proposals"`
	TotalVotes      int             `json:"total_votes"`
	Members         []string        `json:"members"`
	MemberCount     int             `json:"member_count"`
	ActiveProposals int             `json:"active_proposals"`
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"created_at"`
}
