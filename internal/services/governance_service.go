// Package services wires the registry to persistence and event publication.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	dao "github.com/ortelius/governance-backend/events/modules/daos"
	"github.com/ortelius/governance-backend/governance"
	"github.com/ortelius/governance-backend/ledger"
	"github.com/ortelius/governance-backend/model"
	"github.com/ortelius/governance-backend/registry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store persists DAO documents and ledger balances. SaveState writes a DAO
// and its changed balances atomically.
type Store interface {
	SaveState(ctx context.Context, doc model.DAO, balances map[string]decimal.Decimal) error
	LoadDAOs(ctx context.Context) ([]model.DAO, error)
	LoadBalances(ctx context.Context) (map[string]decimal.Decimal, error)
}

// GovernanceService runs every mutating call against the registry, persists
// the result and publishes an event. A call whose result cannot be persisted
// is rolled back.
type GovernanceService struct {
	mu        sync.Mutex
	Registry  *registry.Registry
	ledger    *ledger.Memory
	store     Store
	publisher dao.Publisher
	logger    *zap.Logger

	// Clock returns the current time. Tests replace it.
	Clock func() time.Time
}

// NewGovernanceService builds the service around an empty registry.
func NewGovernanceService(store Store, publisher dao.Publisher, logger *zap.Logger) *GovernanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if publisher == nil {
		publisher = dao.Noop{}
	}
	ldg := ledger.NewMemory(logger)
	return &GovernanceService{
		Registry:  registry.New(ldg, logger),
		ledger:    ldg,
		store:     store,
		publisher: publisher,
		logger:    logger,
		Clock:     time.Now,
	}
}

// Now returns the service clock in UTC.
func (s *GovernanceService) Now() time.Time {
	return s.Clock().UTC()
}

// Load restores balances and DAOs from the store.
func (s *GovernanceService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances, err := s.store.LoadBalances(ctx)
	if err != nil {
		return err
	}
	s.ledger.Load(balances)

	docs, err := s.store.LoadDAOs(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		s.Registry.Restore(doc)
	}
	s.logger.Info("governance state loaded", zap.Int("daos", len(docs)), zap.Int("accounts", len(balances)))
	return nil
}

func (s *GovernanceService) call(caller string, value decimal.Decimal) governance.Call {
	return governance.Call{Caller: caller, Now: s.Now(), Value: value}
}

// CreateDAO registers a new organization created by caller.
func (s *GovernanceService) CreateDAO(ctx context.Context, caller string, req model.CreateDAORequest) (model.DAOInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.ledger.Balances()
	call := s.call(caller, req.Value)
	org, err := s.Registry.CreateDAO(call, req)
	if err != nil {
		return model.DAOInfo{}, err
	}

	if err := s.persist(ctx, req.ID, before); err != nil {
		s.Registry.Remove(req.ID)
		s.ledger.Load(before)
		return model.DAOInfo{}, err
	}

	info := org.Info(call.Now)
	s.publish(ctx, dao.NewEvent(dao.EventDAOCreated, req.ID, caller, nil, info))
	return info, nil
}

// CreateProposal opens a proposal in daoID.
func (s *GovernanceService) CreateProposal(ctx context.Context, caller, daoID string, req model.CreateProposalRequest) (model.Proposal, error) {
	var p model.Proposal
	err := s.mutate(ctx, daoID, func(org *governance.Organization) error {
		var err error
		p, err = org.CreateProposal(s.call(caller, decimal.Zero), req)
		return err
	})
	if err != nil {
		return model.Proposal{}, err
	}
	s.publish(ctx, dao.NewEvent(dao.EventProposalCreated, daoID, caller, &p.ID, p))
	return p, nil
}

// Vote records caller's ballot on a proposal.
func (s *GovernanceService) Vote(ctx context.Context, caller, daoID string, id int, support bool) (model.Proposal, error) {
	var p model.Proposal
	err := s.mutate(ctx, daoID, func(org *governance.Organization) error {
		var err error
		p, err = org.Vote(s.call(caller, decimal.Zero), id, support)
		return err
	})
	if err != nil {
		return model.Proposal{}, err
	}
	s.publish(ctx, dao.NewEvent(dao.EventVoteCast, daoID, caller, &p.ID, model.VoteRequest{Support: support}))
	return p, nil
}

// Execute applies an approved proposal.
func (s *GovernanceService) Execute(ctx context.Context, caller, daoID string, id int) (model.Proposal, error) {
	var p model.Proposal
	err := s.mutate(ctx, daoID, func(org *governance.Organization) error {
		var err error
		p, err = org.ExecuteProposal(s.call(caller, decimal.Zero), id)
		return err
	})
	if err != nil {
		return model.Proposal{}, err
	}
	s.publish(ctx, dao.NewEvent(dao.EventProposalExecuted, daoID, caller, &p.ID, p))
	return p, nil
}

// Deposit credits amount from a sender to a DAO treasury and returns the
// new balance.
func (s *GovernanceService) Deposit(ctx context.Context, daoID, from string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.mutate(ctx, daoID, func(org *governance.Organization) error {
		var err error
		balance, err = org.Deposit(s.call(from, amount))
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	s.publish(ctx, dao.NewEvent(dao.EventTreasuryDeposit, daoID, from, nil, model.DepositRequest{Value: amount}))
	return balance, nil
}

// mutate runs fn against one organization and persists the result. If
// persisting fails the organization and ledger are put back as they were.
func (s *GovernanceService) mutate(ctx context.Context, daoID string, fn func(*governance.Organization) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, err := s.Registry.DAO(daoID)
	if err != nil {
		return err
	}
	prev, err := s.Registry.Snapshot(daoID)
	if err != nil {
		return err
	}
	before := s.ledger.Balances()

	if err := fn(org); err != nil {
		return err
	}

	if err := s.persist(ctx, daoID, before); err != nil {
		s.Registry.Restore(prev)
		s.ledger.Load(before)
		return err
	}
	return nil
}

func (s *GovernanceService) persist(ctx context.Context, daoID string, before map[string]decimal.Decimal) error {
	doc, err := s.Registry.Snapshot(daoID)
	if err != nil {
		return err
	}
	if err := s.store.SaveState(ctx, doc, diff(before, s.ledger.Balances())); err != nil {
		s.logger.Error("failed to persist dao state", zap.String("dao_id", daoID), zap.Error(err))
		return &governance.Error{Code: governance.CodeInternal, Message: fmt.Sprintf("persist dao state: %v", err)}
	}
	return nil
}

// diff returns the accounts whose balance differs between before and after.
// Accounts drained to zero are reported with a zero amount.
func diff(before, after map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for k, v := range after {
		if old, ok := before[k]; !ok || !old.Equal(v) {
			out[k] = v
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			out[k] = decimal.Zero
		}
	}
	return out
}

func (s *GovernanceService) publish(ctx context.Context, event dao.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("event_type", event.EventType),
			zap.String("dao_id", event.DAOID),
			zap.Error(err))
	}
}
