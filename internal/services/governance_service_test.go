package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ortelius/governance-backend/database"
	dao "github.com/ortelius/governance-backend/events/modules/daos"
	"github.com/ortelius/governance-backend/governance"
	"github.com/ortelius/governance-backend/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	mu     sync.Mutex
	events []dao.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e dao.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*GovernanceService, *database.MemoryStore, *recorder, *time.Time) {
	t.Helper()
	store := database.NewMemoryStore()
	pub := &recorder{}
	svc := NewGovernanceService(store, pub, zap.NewNop())
	now := t0
	svc.Clock = func() time.Time { return now }
	return svc, store, pub, &now
}

func guild(balance int64) model.CreateDAORequest {
	return model.CreateDAORequest{
		Name:            "Guild",
		ID:              "guild",
		InitialMembers:  []string{"bob"},
		StartingBalance: decimal.NewFromInt(balance),
		Value:           decimal.NewFromInt(balance),
		VotingTime:      1000,
		Quorum:          50,
	}
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, store, pub, now := newService(t)

	info, err := svc.CreateDAO(ctx, "alice", guild(100))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, info.Members)
	assert.True(t, info.Balance.Equal(decimal.NewFromInt(100)))

	p, err := svc.CreateProposal(ctx, "alice", "guild", model.CreateProposalRequest{
		Type:   model.ProposalTransfer,
		Value:  decimal.NewFromInt(40),
		Target: "carol",
	})
	require.NoError(t, err)

	_, err = svc.Vote(ctx, "alice", "guild", p.ID, true)
	require.NoError(t, err)
	_, err = svc.Vote(ctx, "bob", "guild", p.ID, true)
	require.NoError(t, err)

	*now = now.Add(2 * time.Second)
	executed, err := svc.Execute(ctx, "bob", "guild", p.ID)
	require.NoError(t, err)
	assert.True(t, executed.IsExecuted)

	balance, err := svc.Deposit(ctx, "guild", "dave", decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(65)))

	assert.Equal(t, []string{
		dao.EventDAOCreated,
		dao.EventProposalCreated,
		dao.EventVoteCast,
		dao.EventVoteCast,
		dao.EventProposalExecuted,
		dao.EventTreasuryDeposit,
	}, pub.types())

	docs, err := store.LoadDAOs(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.True(t, docs[0].Proposals[0].IsExecuted)
	assert.Equal(t, 1, docs[0].Activities["bob"].ProposalsExecuted)

	balances, err := store.LoadBalances(ctx)
	require.NoError(t, err)
	assert.True(t, balances["dao:guild"].Equal(decimal.NewFromInt(65)))
	assert.True(t, balances["carol"].Equal(decimal.NewFromInt(40)))

	t.Run("reload", func(t *testing.T) {
		fresh := NewGovernanceService(store, nil, zap.NewNop())
		require.NoError(t, fresh.Load(ctx))
		assert.Equal(t, 1, fresh.Registry.Count())
		assert.True(t, fresh.Registry.Balance("guild").Equal(decimal.NewFromInt(65)))
		org, err := fresh.Registry.DAO("guild")
		require.NoError(t, err)
		assert.True(t, org.IsMember("bob"))
	})
}

func TestServiceRollback(t *testing.T) {
	ctx := context.Background()
	svc, store, pub, now := newService(t)

	_, err := svc.CreateDAO(ctx, "alice", guild(100))
	require.NoError(t, err)
	p, err := svc.CreateProposal(ctx, "alice", "guild", model.CreateProposalRequest{
		Type:   model.ProposalTransfer,
		Value:  decimal.NewFromInt(100),
		Target: "carol",
	})
	require.NoError(t, err)
	_, err = svc.Vote(ctx, "alice", "guild", p.ID, true)
	require.NoError(t, err)
	*now = now.Add(time.Hour)

	store.FailSaves = errors.New("disk full")
	published := len(pub.types())

	_, err = svc.Execute(ctx, "alice", "guild", p.ID)
	require.Error(t, err)
	assert.Equal(t, governance.CodeInternal, governance.CodeOf(err))

	org, err := svc.Registry.DAO("guild")
	require.NoError(t, err)
	after, err := org.Proposal(p.ID)
	require.NoError(t, err)
	assert.False(t, after.IsExecuted)
	assert.True(t, svc.Registry.Balance("guild").Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 0, org.MemberActivities("alice").ProposalsExecuted)

	_, err = svc.CreateDAO(ctx, "alice", model.CreateDAORequest{ID: "other", VotingTime: 1, Quorum: 1, StartingBalance: decimal.NewFromInt(3), Value: decimal.NewFromInt(3)})
	require.Error(t, err)
	_, err = svc.Registry.DAO("other")
	assert.ErrorIs(t, err, governance.ErrDAONotFound)
	assert.True(t, svc.Registry.Balance("other").IsZero())

	assert.Len(t, pub.types(), published)

	store.FailSaves = nil
	_, err = svc.Execute(ctx, "alice", "guild", p.ID)
	require.NoError(t, err)
}

func TestBalanceWriteFailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	svc, store, _, now := newService(t)

	_, err := svc.CreateDAO(ctx, "alice", guild(100))
	require.NoError(t, err)
	p, err := svc.CreateProposal(ctx, "alice", "guild", model.CreateProposalRequest{
		Type:   model.ProposalTransfer,
		Value:  decimal.NewFromInt(100),
		Target: "bob",
	})
	require.NoError(t, err)
	_, err = svc.Vote(ctx, "alice", "guild", p.ID, true)
	require.NoError(t, err)
	*now = now.Add(time.Hour)

	store.FailBalances = errors.New("balance write failed")
	_, err = svc.Execute(ctx, "alice", "guild", p.ID)
	require.Error(t, err)
	assert.Equal(t, governance.CodeInternal, governance.CodeOf(err))

	_, err = svc.CreateDAO(ctx, "carol", model.CreateDAORequest{ID: "other", VotingTime: 1, Quorum: 1, StartingBalance: decimal.NewFromInt(3), Value: decimal.NewFromInt(3)})
	require.Error(t, err)

	fresh := NewGovernanceService(store, nil, zap.NewNop())
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, 1, fresh.Registry.Count())
	org, err := fresh.Registry.DAO("guild")
	require.NoError(t, err)
	stored, err := org.Proposal(p.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsExecuted)
	assert.True(t, fresh.Registry.Balance("guild").Equal(decimal.NewFromInt(100)))
	assert.True(t, fresh.ledger.Balance("bob").IsZero())

	store.FailBalances = nil
	_, err = svc.Execute(ctx, "alice", "guild", p.ID)
	require.NoError(t, err)
	assert.True(t, svc.ledger.Balance("bob").Equal(decimal.NewFromInt(100)))
}

func TestServicePreconditionErrors(t *testing.T) {
	ctx := context.Background()
	svc, _, pub, _ := newService(t)

	_, err := svc.CreateProposal(ctx, "alice", "missing", model.CreateProposalRequest{Type: model.ProposalCustom})
	assert.ErrorIs(t, err, governance.ErrDAONotFound)

	_, err = svc.CreateDAO(ctx, "alice", guild(10))
	require.NoError(t, err)
	_, err = svc.CreateDAO(ctx, "alice", guild(10))
	assert.ErrorIs(t, err, governance.ErrDAOIDTaken)

	_, err = svc.Vote(ctx, "mallory", "guild", 0, true)
	assert.ErrorIs(t, err, governance.ErrNotMember)

	_, err = svc.Deposit(ctx, "guild", "dave", decimal.Zero)
	assert.ErrorIs(t, err, governance.ErrInvalidAmount)

	assert.Equal(t, []string{dao.EventDAOCreated}, pub.types())
}

func TestPublishFailureDoesNotFailCall(t *testing.T) {
	ctx := context.Background()
	svc, _, pub, _ := newService(t)
	pub.err = errors.New("broker down")

	_, err := svc.CreateDAO(ctx, "alice", guild(0))
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Registry.Count())
}

func TestDiff(t *testing.T) {
	before := map[string]decimal.Decimal{
		"a": decimal.NewFromInt(1),
		"b": decimal.NewFromInt(2),
	}
	after := map[string]decimal.Decimal{
		"a": decimal.NewFromInt(1),
		"c": decimal.NewFromInt(3),
	}
	changed := diff(before, after)
	assert.Len(t, changed, 2)
	assert.True(t, changed["b"].IsZero())
	assert.True(t, changed["c"].Equal(decimal.NewFromInt(3)))
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
daos:
  - name: Guild
    id: guild
    creator: alice
    initial_members: [" bob ", ""]
    starting_balance: "12.5"
    voting_time: 60000
    quorum: 50
  - name: Club
    id: club
    creator: carol
    voting_time: 1000
    quorum: 1
`), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.DAOs, 2)

	svc, _, _, _ := newService(t)
	n, err := svc.ApplySeed(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	info, err := svc.Registry.DAOInfo("guild", svc.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, info.Members)
	assert.True(t, info.Balance.Equal(decimal.NewFromFloat(12.5)))
	assert.Equal(t, int64(60000), info.VotingTime)

	n, err = svc.ApplySeed(ctx, seed)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 2, svc.Registry.Count())

	t.Run("errors", func(t *testing.T) {
		_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "read seed file")

		empty, _, _, _ := newService(t)
		_, err = empty.ApplySeed(ctx, Seed{DAOs: []SeedDAO{{CreateDAORequest: model.CreateDAORequest{ID: "x", VotingTime: 1, Quorum: 1}}}})
		assert.ErrorContains(t, err, "creator is required")

		_, err = empty.ApplySeed(ctx, Seed{DAOs: []SeedDAO{{CreateDAORequest: model.CreateDAORequest{ID: "x", VotingTime: 1, Quorum: 1}, Creator: "a", StartingBalance: "lots"}}})
		assert.ErrorContains(t, err, "starting_balance")
	})
}
