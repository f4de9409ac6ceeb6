// Package registry is the factory and directory of organizations. It creates
// DAOs, enforces unique ids and answers queries that span many DAOs. It never
// mutates an organization after creating it.
package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/ortelius/governance-backend/governance"
	"github.com/ortelius/governance-backend/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TreasuryAccount receives value attached to createDAO beyond the starting
// balance.
const TreasuryAccount = "registry"

type entry struct {
	org *governance.Organization
	seq uint64
}

// Registry owns every organization.
type Registry struct {
	mu     sync.RWMutex
	daos   map[string]*entry
	seq    uint64
	ledger governance.Ledger
	logger *zap.Logger
}

// New returns an empty registry settling value through ledger.
func New(ledger governance.Ledger, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		daos:   map[string]*entry{},
		ledger: ledger,
		logger: logger,
	}
}

// CreateDAO registers a new organization owned by the registry. The value
// attached to call must cover req.StartingBalance, which is credited to the
// new DAO's treasury.
func (r *Registry) CreateDAO(call governance.Call, req model.CreateDAORequest) (*governance.Organization, error) {
	if req.StartingBalance.IsNegative() {
		return nil, governance.ErrInvalidAmount
	}
	if call.Value.LessThan(req.StartingBalance) {
		return nil, governance.ErrInsufficientValue
	}
	if err := governance.ValidateID(req.ID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.daos[req.ID]; ok {
		return nil, governance.ErrDAOIDTaken
	}

	org, err := governance.New(governance.Params{
		Name:           req.Name,
		ID:             req.ID,
		Description:    req.Description,
		Image:          req.Image,
		Socials:        req.Socials,
		InitialMembers: req.InitialMembers,
		VotingTime:     req.VotingTime,
		Quorum:         req.Quorum,
	}, call, r.ledger)
	if err != nil {
		return nil, err
	}

	if req.StartingBalance.IsPositive() {
		if err := r.ledger.Credit(governance.Account(req.ID), req.StartingBalance); err != nil {
			return nil, err
		}
	}
	if excess := call.Value.Sub(req.StartingBalance); excess.IsPositive() {
		if err := r.ledger.Credit(TreasuryAccount, excess); err != nil {
			return nil, err
		}
	}

	r.seq++
	r.daos[req.ID] = &entry{org: org, seq: r.seq}
	r.logger.Info("dao created",
		zap.String("id", req.ID),
		zap.String("creator", call.Caller),
		zap.String("starting_balance", req.StartingBalance.String()))
	return org, nil
}

// DAO returns the organization handle for id.
func (r *Registry) DAO(id string) (*governance.Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.daos[id]
	if !ok {
		return nil, governance.ErrDAONotFound
	}
	return e.org, nil
}

// Count returns the number of registered organizations.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.daos)
}

// ordered returns all entries, most recently created first.
func (r *Registry) ordered() []*entry {
	r.mu.RLock()
	out := make([]*entry, 0, len(r.daos))
	for _, e := range r.daos {
		out = append(out, e)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ci, cj := out[i].org.CreatedAt(), out[j].org.CreatedAt()
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return out[i].seq > out[j].seq
	})
	return out
}

// DAOs returns summaries of every organization, newest first.
func (r *Registry) DAOs(now time.Time) []model.DAOInfo {
	return r.infos(now, func(*governance.Organization) bool { return true })
}

// UserDAOs returns summaries of the organizations user belongs to.
func (r *Registry) UserDAOs(user string, now time.Time) []model.DAOInfo {
	return r.infos(now, func(o *governance.Organization) bool { return o.IsMember(user) })
}

func (r *Registry) infos(now time.Time, keep func(*governance.Organization) bool) []model.DAOInfo {
	out := []model.DAOInfo{}
	for _, e := range r.ordered() {
		if keep(e.org) {
			out = append(out, e.org.Info(now))
		}
	}
	return out
}

// DAOInfo returns the summary of one organization.
func (r *Registry) DAOInfo(id string, now time.Time) (model.DAOInfo, error) {
	org, err := r.DAO(id)
	if err != nil {
		return model.DAOInfo{}, err
	}
	return org.Info(now), nil
}

// AllProposals merges the proposals of every organization, newest start
// time first.
func (r *Registry) AllProposals() []model.Proposal {
	return r.proposals(func(*governance.Organization) bool { return true })
}

// UserProposals merges the proposals of the organizations user belongs to.
func (r *Registry) UserProposals(user string) []model.Proposal {
	return r.proposals(func(o *governance.Organization) bool { return o.IsMember(user) })
}

func (r *Registry) proposals(keep func(*governance.Organization) bool) []model.Proposal {
	out := []model.Proposal{}
	for _, e := range r.ordered() {
		if keep(e.org) {
			out = append(out, e.org.Proposals()...)
		}
	}
	governance.SortByStartDesc(out)
	return out
}

// UserActivities sums user's activity records across every organization.
func (r *Registry) UserActivities(user string) model.ActivityRecord {
	total := model.ActivityRecord{Identity: user}
	for _, e := range r.ordered() {
		if rec, ok := e.org.ActivityOf(user); ok {
			total = total.Add(rec)
		}
	}
	total.Identity = user
	return total
}

// Snapshot exports the persisted document of one organization.
func (r *Registry) Snapshot(id string) (model.DAO, error) {
	r.mu.RLock()
	e, ok := r.daos[id]
	r.mu.RUnlock()
	if !ok {
		return model.DAO{}, governance.ErrDAONotFound
	}
	doc := e.org.Snapshot()
	doc.Seq = e.seq
	return doc, nil
}

// Restore installs doc, replacing any organization with the same id. It is
// used when loading persisted state and when rolling back a call whose
// result could not be persisted.
func (r *Registry) Restore(doc model.DAO) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq := doc.Seq
	if seq == 0 {
		seq = r.seq + 1
	}
	if seq > r.seq {
		r.seq = seq
	}
	r.daos[doc.ID] = &entry{org: governance.Restore(doc, r.ledger), seq: seq}
}

// Remove drops an organization. Only the rollback of a failed creation
// uses it; DAOs are otherwise never deleted.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.daos, id)
}

// Balance returns the treasury balance of a DAO.
func (r *Registry) Balance(id string) decimal.Decimal {
	return r.ledger.Balance(governance.Account(id))
}
