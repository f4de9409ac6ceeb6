// Package graphql assembles the read-only GraphQL schema over the registry.
package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/governance-backend/graphql/modules/activities"
	"github.com/ortelius/governance-backend/graphql/modules/daos"
	"github.com/ortelius/governance-backend/graphql/modules/proposals"
	"github.com/ortelius/governance-backend/graphql/resolve"
	"github.com/ortelius/governance-backend/registry"
)

// CreateSchema builds the root query from every module.
func CreateSchema(reg *registry.Registry, now resolve.Clock) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for _, module := range []graphql.Fields{
		daos.GetQueryFields(reg, now),
		proposals.GetQueryFields(reg, now),
		activities.GetQueryFields(reg),
	} {
		for name, f := range module {
			fields[name] = f
		}
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: fields,
		}),
	})
}
