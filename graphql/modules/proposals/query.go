package proposals

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/governance-backend/governance"
	"github.com/ortelius/governance-backend/graphql/resolve"
	"github.com/ortelius/governance-backend/model"
	"github.com/ortelius/governance-backend/registry"
)

// GetQueryFields returns the proposal queries to be mounted in the root schema.
func GetQueryFields(reg *registry.Registry, now resolve.Clock) graphql.Fields {
	return graphql.Fields{
		"allProposals": &graphql.Field{
			Type: graphql.NewList(ProposalType),
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return views(reg.AllProposals(), now), nil
			},
		},
		"userProposals": &graphql.Field{
			Type: graphql.NewList(ProposalType),
			Args: graphql.FieldConfigArgument{
				"user": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user, ok := resolve.User(p)
				if !ok {
					return []model.ProposalView{}, nil
				}
				return views(reg.UserProposals(user), now), nil
			},
		},
		"proposals": &graphql.Field{
			Type: graphql.NewList(ProposalType),
			Args: graphql.FieldConfigArgument{
				"daoId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"active": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				org, err := reg.DAO(resolve.String(p, "daoId"))
				if err != nil {
					return nil, resolve.Error(err)
				}
				if active, _ := p.Args["active"].(bool); active {
					return views(org.ActiveProposals(now()), now), nil
				}
				return views(org.Proposals(), now), nil
			},
		},
		"proposal": &graphql.Field{
			Type: ProposalType,
			Args: graphql.FieldConfigArgument{
				"daoId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				org, err := reg.DAO(resolve.String(p, "daoId"))
				if err != nil {
					return nil, resolve.Error(err)
				}
				id, ok := p.Args["id"].(int)
				if !ok {
					return nil, resolve.Error(governance.ErrInvalidProposalID)
				}
				proposal, err := org.Proposal(id)
				if err != nil {
					return nil, resolve.Error(err)
				}
				return model.ProposalView{Proposal: proposal, Status: proposal.Status(now())}, nil
			},
		},
	}
}

func views(ps []model.Proposal, now resolve.Clock) []model.ProposalView {
	t := now()
	out := make([]model.ProposalView, 0, len(ps))
	for _, p := range ps {
		out = append(out, model.ProposalView{Proposal: p, Status: p.Status(t)})
	}
	return out
}
