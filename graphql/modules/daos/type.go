// Package daos defines the GraphQL types for organizations.
package daos

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/governance-backend/graphql/resolve"
	"github.com/ortelius/governance-backend/model"
)

func field(typ graphql.Output, get func(model.DAOInfo) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if info, ok := p.Source.(model.DAOInfo); ok {
				return get(info), nil
			}
			return nil, nil
		},
	}
}

// DAOType represents the summary of an organization.
var DAOType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DAO",
	Fields: graphql.Fields{
		"name":             field(graphql.String, func(d model.DAOInfo) interface{} { return d.Name }),
		"id":               field(graphql.String, func(d model.DAOInfo) interface{} { return d.ID }),
		"description":      field(graphql.String, func(d model.DAOInfo) interface{} { return d.Description }),
		"image":            field(graphql.String, func(d model.DAOInfo) interface{} { return d.Image }),
		"socials":          field(graphql.NewList(graphql.String), func(d model.DAOInfo) interface{} { return d.Socials }),
		"voting_time":      field(graphql.Float, func(d model.DAOInfo) interface{} { return float64(d.VotingTime) }),
		"quorum":           field(graphql.Int, func(d model.DAOInfo) interface{} { return d.Quorum }),
		"total_proposals":  field(graphql.Int, func(d model.DAOInfo) interface{} { return d.TotalProposals }),
		"total_votes":      field(graphql.Int, func(d model.DAOInfo) interface{} { return d.TotalVotes }),
		"members":          field(graphql.NewList(graphql.String), func(d model.DAOInfo) interface{} { return d.Members }),
		"member_count":     field(graphql.Int, func(d model.DAOInfo) interface{} { return d.MemberCount }),
		"active_proposals": field(graphql.Int, func(d model.DAOInfo) interface{} { return d.ActiveProposals }),
		"balance":          field(graphql.String, func(d model.DAOInfo) interface{} { return d.Balance.String() }),
		"created_at":       field(graphql.String, func(d model.DAOInfo) interface{} { return resolve.Time(d.CreatedAt) }),
	},
})
