package activities

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/governance-backend/graphql/resolve"
	"github.com/ortelius/governance-backend/model"
	"github.com/ortelius/governance-backend/registry"
)

// GetQueryFields returns the activity queries to be mounted in the root schema.
func GetQueryFields(reg *registry.Registry) graphql.Fields {
	return graphql.Fields{
		"userActivities": &graphql.Field{
			Type: ActivityType,
			Args: graphql.FieldConfigArgument{
				"user": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, ok := resolve.User(p)
				if !ok {
					return model.ActivityRecord{}, nil
				}
				return reg.UserActivities(user), nil
			},
		},
		"memberActivities": &graphql.Field{
			Type: ActivityType,
			Args: graphql.FieldConfigArgument{
				"daoId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"member": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				org, err := reg.DAO(resolve.String(p, "daoId"))
				if err != nil {
					return nil, resolve.Error(err)
				}
				return org.MemberActivities(resolve.String(p, "member")), nil
			},
		},
		"allMembersActivities": &graphql.Field{
			Type: graphql.NewList(ActivityType),
			Args: graphql.FieldConfigArgument{
				"daoId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				org, err := reg.DAO(resolve.String(p, "daoId"))
				if err != nil {
					return nil, resolve.Error(err)
				}
				return org.AllMembersActivities(), nil
			},
		},
	}
}
