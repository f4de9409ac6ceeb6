package database

import (
	"context"
	"errors"
	"testing"

	"github.com/ortelius/governance-backend/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSchemaVersion(t *testing.T) {
	assert.NoError(t, CheckSchemaVersion(""))
	assert.NoError(t, CheckSchemaVersion("1.0.0"))
	assert.NoError(t, CheckSchemaVersion("1.4.2"))
	assert.ErrorContains(t, CheckSchemaVersion("2.0.0"), "unsupported")
	assert.ErrorContains(t, CheckSchemaVersion("banana"), "invalid schema version")
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.SaveState(ctx, model.DAO{ID: "b", Seq: 2}, nil))
	require.NoError(t, s.SaveState(ctx, model.DAO{ID: "a", Seq: 1}, map[string]decimal.Decimal{"dao:a": decimal.NewFromInt(4)}))
	require.NoError(t, s.SaveState(ctx, model.DAO{ID: "a", Seq: 1, Name: "renamed"}, nil))

	docs, err := s.LoadDAOs(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "renamed", docs[0].Name)

	balances, err := s.LoadBalances(ctx)
	require.NoError(t, err)
	assert.True(t, balances["dao:a"].Equal(decimal.NewFromInt(4)))

	boom := errors.New("disk full")
	s.FailSaves = boom
	assert.ErrorIs(t, s.SaveState(ctx, model.DAO{ID: "c"}, nil), boom)
}

func TestMemoryStoreBalanceFailureKeepsNothing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveState(ctx, model.DAO{ID: "a", Name: "before"}, map[string]decimal.Decimal{"dao:a": decimal.NewFromInt(4)}))

	boom := errors.New("balance write failed")
	s.FailBalances = boom
	err := s.SaveState(ctx, model.DAO{ID: "a", Name: "after"}, map[string]decimal.Decimal{"dao:a": decimal.Zero})
	assert.ErrorIs(t, err, boom)

	docs, err := s.LoadDAOs(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "before", docs[0].Name)
	balances, err := s.LoadBalances(ctx)
	require.NoError(t, err)
	assert.True(t, balances["dao:a"].Equal(decimal.NewFromInt(4)))

	require.NoError(t, s.SaveState(ctx, model.DAO{ID: "a", Name: "renamed"}, nil))
}
