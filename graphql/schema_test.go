package graphql

import (
	"context"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/ortelius/governance-backend/governance"
	"github.com/ortelius/governance-backend/ledger"
	"github.com/ortelius/governance-backend/model"
	"github.com/ortelius/governance-backend/registry"
	"github.com/ortelius/governance-backend/restapi/modules/auth"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (graphql.Schema, *time.Time) {
	t.Helper()
	reg := registry.New(ledger.NewMemory(nil), nil)

	_, err := reg.CreateDAO(governance.Call{Caller: "alice", Now: t0, Value: decimal.NewFromInt(7)}, model.CreateDAORequest{
		Name:            "Guild",
		ID:              "guild",
		InitialMembers:  []string{"bob"},
		StartingBalance: decimal.NewFromInt(7),
		VotingTime:      1000,
		Quorum:          50,
	})
	require.NoError(t, err)
	org, err := reg.CreateDAO(governance.Call{Caller: "carol", Now: t0.Add(time.Second)}, model.CreateDAORequest{
		Name:       "Club",
		ID:         "club",
		VotingTime: 60000,
		Quorum:     1,
	})
	require.NoError(t, err)

	guild, err := reg.DAO("guild")
	require.NoError(t, err)
	p, err := guild.CreateProposal(governance.Call{Caller: "alice", Now: t0}, model.CreateProposalRequest{
		Type: model.ProposalUpdateName,
		Info: &model.ProposalInfo{Name: "Guild II"},
	})
	require.NoError(t, err)
	_, err = guild.VoteFor(governance.Call{Caller: "bob", Now: t0}, p.ID)
	require.NoError(t, err)
	_, err = org.CreateProposal(governance.Call{Caller: "carol", Now: t0.Add(2 * time.Second)}, model.CreateProposalRequest{Type: model.ProposalCustom})
	require.NoError(t, err)

	now := t0.Add(10 * time.Second)
	schema, err := CreateSchema(reg, func() time.Time { return now })
	require.NoError(t, err)
	return schema, &now
}

func run(t *testing.T, schema graphql.Schema, ctx context.Context, query string) map[string]interface{} {
	t.Helper()
	result := graphql.Do(graphql.Params{Schema: schema, RequestString: query, Context: ctx})
	require.Empty(t, result.Errors)
	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	return data
}

func TestDAOQueries(t *testing.T) {
	schema, _ := setup(t)
	ctx := context.Background()

	data := run(t, schema, ctx, `{ daos { id member_count balance active_proposals } }`)
	list := data["daos"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "club", list[0].(map[string]interface{})["id"])
	guild := list[1].(map[string]interface{})
	assert.Equal(t, "guild", guild["id"])
	assert.Equal(t, 2, guild["member_count"])
	assert.Equal(t, "7", guild["balance"])
	assert.Equal(t, 0, guild["active_proposals"])

	data = run(t, schema, ctx, `{ dao(id: "guild") { name members created_at } }`)
	dao := data["dao"].(map[string]interface{})
	assert.Equal(t, "Guild", dao["name"])
	assert.Equal(t, []interface{}{"alice", "bob"}, dao["members"])
	assert.Equal(t, "2024-03-01T12:00:00Z", dao["created_at"])

	data = run(t, schema, ctx, `{ userDaos(user: "bob") { id } }`)
	assert.Len(t, data["userDaos"], 1)

	authed := context.WithValue(ctx, auth.IdentityKey, "carol")
	data = run(t, schema, authed, `{ userDaos { id } }`)
	require.Len(t, data["userDaos"], 1)
	assert.Equal(t, "club", data["userDaos"].([]interface{})[0].(map[string]interface{})["id"])

	data = run(t, schema, ctx, `{ userDaos { id } }`)
	assert.Empty(t, data["userDaos"])
}

func TestDAONotFound(t *testing.T) {
	schema, _ := setup(t)
	result := graphql.Do(graphql.Params{Schema: schema, RequestString: `{ dao(id: "nope") { id } }`, Context: context.Background()})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "dao not found", result.Errors[0].Message)
}

func TestProposalQueries(t *testing.T) {
	schema, now := setup(t)
	ctx := context.Background()

	data := run(t, schema, ctx, `{ allProposals { dao_id id status } }`)
	list := data["allProposals"].([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "club", first["dao_id"])
	assert.Equal(t, "open", first["status"])
	assert.Equal(t, "closed", list[1].(map[string]interface{})["status"])

	data = run(t, schema, ctx, `{ proposal(daoId: "guild", id: 0) { type votes_for info { name } votes { voter support } } }`)
	p := data["proposal"].(map[string]interface{})
	assert.Equal(t, "updateName", p["type"])
	assert.Equal(t, 1, p["votes_for"])
	assert.Equal(t, "Guild II", p["info"].(map[string]interface{})["name"])
	votes := p["votes"].([]interface{})
	require.Len(t, votes, 1)
	assert.Equal(t, "bob", votes[0].(map[string]interface{})["voter"])

	data = run(t, schema, ctx, `{ proposals(daoId: "club", active: true) { id } }`)
	assert.Len(t, data["proposals"], 1)
	data = run(t, schema, ctx, `{ proposals(daoId: "guild", active: true) { id } }`)
	assert.Empty(t, data["proposals"])

	*now = t0.Add(time.Hour)
	data = run(t, schema, ctx, `{ proposals(daoId: "club", active: true) { id } }`)
	assert.Empty(t, data["proposals"])

	data = run(t, schema, ctx, `{ userProposals(user: "bob") { dao_id } }`)
	assert.Len(t, data["userProposals"], 1)

	result := graphql.Do(graphql.Params{Schema: schema, RequestString: `{ proposal(daoId: "guild", id: 9) { id } }`, Context: ctx})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "invalid proposal id", result.Errors[0].Message)
}

func TestActivityQueries(t *testing.T) {
	schema, _ := setup(t)
	ctx := context.Background()

	data := run(t, schema, ctx, `{ allMembersActivities(daoId: "guild") { identity votes_cast proposals_created } }`)
	list := data["allMembersActivities"].([]interface{})
	require.Len(t, list, 2)
	alice := list[0].(map[string]interface{})
	assert.Equal(t, "alice", alice["identity"])
	assert.Equal(t, 1, alice["proposals_created"])
	assert.Equal(t, 1, list[1].(map[string]interface{})["votes_cast"])

	data = run(t, schema, ctx, `{ memberActivities(daoId: "guild", member: "zed") { identity votes_cast } }`)
	assert.Equal(t, "zed", data["memberActivities"].(map[string]interface{})["identity"])

	data = run(t, schema, ctx, `{ userActivities(user: "carol") { identity proposals_created } }`)
	carol := data["userActivities"].(map[string]interface{})
	assert.Equal(t, "carol", carol["identity"])
	assert.Equal(t, 1, carol["proposals_created"])
}
