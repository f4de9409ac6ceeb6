package database

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/ortelius/governance-backend/model"
	"github.com/ortelius/governance-backend/util"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// supportedSchemas is the range of DAO document versions this build can read.
var supportedSchemas = mustConstraint("^1.0.0")

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}

// CheckSchemaVersion rejects documents written by an incompatible build.
// Documents without a version predate versioning and are read as 1.0.0.
func CheckSchemaVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid schema version %q: %w", v, err)
	}
	if !supportedSchemas.Check(ver) {
		return fmt.Errorf("unsupported schema version %s", ver)
	}
	return nil
}

type balanceDoc struct {
	Key     string          `json:"_key"`
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// SaveState writes one DAO document and the changed ledger balances in a
// single stream transaction. Either both land or neither does.
func (c DBConnection) SaveState(ctx context.Context, doc model.DAO, balances map[string]decimal.Decimal) error {
	cols := arangodb.TransactionCollections{Write: []string{DAOCollection, BalanceCollection}}
	err := c.Database.WithTransaction(ctx, cols, nil, nil, nil, func(ctx context.Context, tx arangodb.Transaction) error {
		if err := saveDAO(ctx, tx, doc); err != nil {
			return err
		}
		return saveBalances(ctx, tx, balances)
	})
	if err != nil {
		return fmt.Errorf("save state of dao %s: %w", doc.ID, err)
	}
	return nil
}

// saveDAO writes the full document of one DAO, replacing the previous version.
func saveDAO(ctx context.Context, q arangodb.DatabaseQuery, doc model.DAO) error {
	doc.Key = util.DocumentKey(doc.ID)
	doc.Rev = ""

	query := `
		UPSERT { _key: @key }
		INSERT @doc
		REPLACE @doc
		IN dao
	`
	cursor, err := q.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{
			"key": doc.Key,
			"doc": doc,
		},
	})
	if err != nil {
		return fmt.Errorf("save dao %s: %w", doc.ID, err)
	}
	return cursor.Close()
}

// LoadDAOs reads every DAO in creation order.
func (c DBConnection) LoadDAOs(ctx context.Context) ([]model.DAO, error) {
	query := `
		FOR d IN dao
			SORT d.seq ASC
			RETURN d
	`
	cursor, err := c.Database.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("load daos: %w", err)
	}
	defer cursor.Close()

	var docs []model.DAO
	for cursor.HasMore() {
		var doc model.DAO
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, fmt.Errorf("read dao: %w", err)
		}
		if err := CheckSchemaVersion(doc.SchemaVersion); err != nil {
			return nil, fmt.Errorf("dao %s: %w", doc.ID, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// saveBalances upserts one document per ledger account.
func saveBalances(ctx context.Context, q arangodb.DatabaseQuery, balances map[string]decimal.Decimal) error {
	if len(balances) == 0 {
		return nil
	}
	docs := make([]balanceDoc, 0, len(balances))
	for account, amount := range balances {
		docs = append(docs, balanceDoc{Key: util.DocumentKey(account), Account: account, Amount: amount})
	}

	query := `
		FOR b IN @balances
			UPSERT { _key: b._key }
			INSERT b
			REPLACE b
			IN balance
	`
	cursor, err := q.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"balances": docs},
	})
	if err != nil {
		return fmt.Errorf("save balances: %w", err)
	}
	return cursor.Close()
}

// LoadBalances reads every ledger account.
func (c DBConnection) LoadBalances(ctx context.Context) (map[string]decimal.Decimal, error) {
	cursor, err := c.Database.Query(ctx, `FOR b IN balance RETURN b`, nil)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}
	defer cursor.Close()

	out := map[string]decimal.Decimal{}
	for cursor.HasMore() {
		var doc balanceDoc
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, fmt.Errorf("read balance: %w", err)
		}
		out[doc.Account] = doc.Amount
	}
	if c.logger != nil {
		c.logger.Debug("balances loaded", zap.Int("accounts", len(out)))
	}
	return out, nil
}
