// Package activities defines the GraphQL types for member activity records.
package activities

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/governance-backend/model"
)

func field(typ graphql.Output, get func(model.ActivityRecord) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if r, ok := p.Source.(model.ActivityRecord); ok {
				return get(r), nil
			}
			return nil, nil
		},
	}
}

// ActivityType represents the participation counters of one identity.
var ActivityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Activity",
	Fields: graphql.Fields{
		"identity":           field(graphql.String, func(r model.ActivityRecord) interface{} { return r.Identity }),
		"votes_cast":         field(graphql.Int, func(r model.ActivityRecord) interface{} { return r.VotesCast }),
		"proposals_created":  field(graphql.Int, func(r model.ActivityRecord) interface{} { return r.ProposalsCreated }),
		"proposals_executed": field(graphql.Int, func(r model.ActivityRecord) interface{} { return r.ProposalsExecuted }),
	},
})
