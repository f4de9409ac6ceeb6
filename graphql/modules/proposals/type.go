// Package proposals defines the GraphQL types for proposals and votes.
package proposals

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/governance-backend/graphql/resolve"
	"github.com/ortelius/governance-backend/model"
)

// ProposalInfoType carries the payload of update proposals.
var ProposalInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProposalInfo",
	Fields: graphql.Fields{
		"name":    infoField(graphql.String, func(i model.ProposalInfo) interface{} { return i.Name }),
		"socials": infoField(graphql.NewList(graphql.String), func(i model.ProposalInfo) interface{} { return i.Socials }),
		"image":   infoField(graphql.String, func(i model.ProposalInfo) interface{} { return i.Image }),
	},
})

func infoField(typ graphql.Output, get func(model.ProposalInfo) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if i, ok := p.Source.(model.ProposalInfo); ok {
				return get(i), nil
			}
			return nil, nil
		},
	}
}

// VoteType represents one ballot.
var VoteType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Vote",
	Fields: graphql.Fields{
		"voter": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if v, ok := p.Source.(model.Vote); ok {
					return v.Voter, nil
				}
				return nil, nil
			},
		},
		"support": &graphql.Field{
			Type: graphql.Boolean,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if v, ok := p.Source.(model.Vote); ok {
					return v.Support, nil
				}
				return nil, nil
			},
		},
	},
})

func field(typ graphql.Output, get func(model.ProposalView) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if v, ok := p.Source.(model.ProposalView); ok {
				return get(v), nil
			}
			return nil, nil
		},
	}
}

// ProposalType represents a proposal and its derived status.
var ProposalType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Proposal",
	Fields: graphql.Fields{
		"id":            field(graphql.Int, func(v model.ProposalView) interface{} { return v.ID }),
		"proposer":      field(graphql.String, func(v model.ProposalView) interface{} { return v.Proposer }),
		"type":          field(graphql.String, func(v model.ProposalView) interface{} { return string(v.Type) }),
		"description":   field(graphql.String, func(v model.ProposalView) interface{} { return v.Description }),
		"value":         field(graphql.String, func(v model.ProposalView) interface{} { return v.Value.String() }),
		"target":        field(graphql.String, func(v model.ProposalView) interface{} { return v.Target }),
		"start_time":    field(graphql.String, func(v model.ProposalView) interface{} { return resolve.Time(v.StartTime) }),
		"end_time":      field(graphql.String, func(v model.ProposalView) interface{} { return resolve.Time(v.EndTime) }),
		"votes_for":     field(graphql.Int, func(v model.ProposalView) interface{} { return v.VotesFor }),
		"votes_against": field(graphql.Int, func(v model.ProposalView) interface{} { return v.VotesAgainst }),
		"is_executed":   field(graphql.Boolean, func(v model.ProposalView) interface{} { return v.IsExecuted }),
		"dao_name":      field(graphql.String, func(v model.ProposalView) interface{} { return v.DAOName }),
		"dao_id":        field(graphql.String, func(v model.ProposalView) interface{} { return v.DAOID }),
		"dao_image":     field(graphql.String, func(v model.ProposalView) interface{} { return v.DAOImage }),
		"member_count":  field(graphql.Int, func(v model.ProposalView) interface{} { return v.MemberCount }),
		"quorum":        field(graphql.Int, func(v model.ProposalView) interface{} { return v.Quorum }),
		"status":        field(graphql.String, func(v model.ProposalView) interface{} { return string(v.Status) }),
		"info": field(ProposalInfoType, func(v model.ProposalView) interface{} {
			if v.Info == nil {
				return nil
			}
			return *v.Info
		}),
		"votes": field(graphql.NewList(VoteType), func(v model.ProposalView) interface{} {
			if v.Votes == nil {
				return []model.Vote{}
			}
			return v.Votes
		}),
	},
})
