package daos

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/governance-backend/graphql/resolve"
	"github.com/ortelius/governance-backend/model"
	"github.com/ortelius/governance-backend/registry"
)

// GetQueryFields returns the organization queries to be mounted in the root schema.
func GetQueryFields(reg *registry.Registry, now resolve.Clock) graphql.Fields {
	return graphql.Fields{
		"daos": &graphql.Field{
			Type: graphql.NewList(DAOType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return reg.DAOs(now()), nil
			},
		},
		"userDaos": &graphql.Field{
			Type: graphql.NewList(DAOType),
			Args: graphql.FieldConfigArgument{
				"user": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, ok := resolve.User(p)
				if !ok {
					return []model.DAOInfo{}, nil
				}
				return reg.UserDAOs(user, now()), nil
			},
		},
		"dao": &graphql.Field{
			Type: DAOType,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				info, err := reg.DAOInfo(resolve.String(p, "id"), now())
				if err != nil {
					return nil, resolve.Error(err)
				}
				return info, nil
			},
		},
	}
}
