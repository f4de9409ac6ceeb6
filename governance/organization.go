package governance

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/ortelius/governance-backend/model"
	"github.com/shopspring/decimal"
)

// SchemaVersion is stamped on every exported DAO document.
const SchemaVersion = "1.0.0"

// Params describes a new organization.
type Params struct {
	Name           string
	ID             string
	Description    string
	Image          string
	Socials        []string
	InitialMembers []string
	VotingTime     int64 // milliseconds
	Quorum         int
}

// Organization is one governed entity. It is safe for concurrent use; each
// method runs as a single serialized unit.
type Organization struct {
	mu sync.Mutex

	name        string
	id          string
	description string
	image       string
	socials     []string
	votingTime  int64
	quorum      int
	createdAt   time.Time

	proposals  []*model.Proposal
	totalVotes int
	members    *MemberSet
	activity   *ActivityTracker

	ledger Ledger
}

func validQuorum(q int) bool {
	return q >= 1 && q <= 100
}

// MaxVotingTime is the longest voting window, in milliseconds, that still
// fits a time.Duration.
const MaxVotingTime = int64(math.MaxInt64 / int64(time.Millisecond))

func validVotingTime(ms int64) bool {
	return ms > 0 && ms <= MaxVotingTime
}

// New creates an organization whose members are the caller plus
// p.InitialMembers.
func New(p Params, call Call, ledger Ledger) (*Organization, error) {
	if err := ValidateID(p.ID); err != nil {
		return nil, err
	}
	if !validQuorum(p.Quorum) {
		return nil, ErrInvalidQuorum
	}
	if !validVotingTime(p.VotingTime) {
		return nil, ErrInvalidVotingTime
	}

	members := NewMemberSet(call.Caller)
	for _, m := range p.InitialMembers {
		members.Add(m)
	}

	return &Organization{
		name:        p.Name,
		id:          p.ID,
		description: p.Description,
		image:       p.Image,
		socials:     append([]string{}, p.Socials...),
		votingTime:  p.VotingTime,
		quorum:      p.Quorum,
		createdAt:   call.Now,
		members:     members,
		activity:    NewActivityTracker(nil),
		ledger:      ledger,
	}, nil
}

// Restore rebuilds an organization from its persisted document.
func Restore(doc model.DAO, ledger Ledger) *Organization {
	o := &Organization{
		name:        doc.Name,
		id:          doc.ID,
		description: doc.Description,
		image:       doc.Image,
		socials:     append([]string{}, doc.Socials...),
		votingTime:  doc.VotingTime,
		quorum:      doc.Quorum,
		createdAt:   doc.CreatedAt,
		totalVotes:  doc.TotalVotes,
		members:     NewMemberSet(doc.Members...),
		activity:    NewActivityTracker(doc.Activities),
		ledger:      ledger,
	}
	o.proposals = make([]*model.Proposal, len(doc.Proposals))
	for i := range doc.Proposals {
		p := doc.Proposals[i].Clone()
		o.proposals[i] = &p
	}
	return o
}

// Snapshot exports the full state as a persistable document.
func (o *Organization) Snapshot() model.DAO {
	o.mu.Lock()
	defer o.mu.Unlock()

	proposals := make([]model.Proposal, len(o.proposals))
	for i, p := range o.proposals {
		proposals[i] = p.Clone()
	}
	return model.DAO{
		Key:            o.id,
		SchemaVersion:  SchemaVersion,
		Name:           o.name,
		ID:             o.id,
		Description:    o.description,
		Image:          o.image,
		Socials:        append([]string{}, o.socials...),
		VotingTime:     o.votingTime,
		Quorum:         o.quorum,
		Proposals:      proposals,
		TotalProposals: len(o.proposals),
		TotalVotes:     o.totalVotes,
		Members:        o.members.List(),
		CreatedAt:      o.createdAt,
		Activities:     o.activity.export(),
	}
}

// ID returns the organization id.
func (o *Organization) ID() string {
	return o.id
}

// CreatedAt returns the creation time.
func (o *Organization) CreatedAt() time.Time {
	return o.createdAt
}

// Info returns a summary including the live treasury balance and the number
// of proposals whose voting window is still open at now.
func (o *Organization) Info(now time.Time) model.DAOInfo {
	o.mu.Lock()
	defer o.mu.Unlock()

	active := 0
	for _, p := range o.proposals {
		if p.IsActive(now) {
			active++
		}
	}
	balance := decimal.Zero
	if o.ledger != nil {
		balance = o.ledger.Balance(Account(o.id))
	}
	return model.DAOInfo{
		Name:            o.name,
		ID:              o.id,
		Description:     o.description,
		Image:           o.image,
		Socials:         append([]string{}, o.socials...),
		VotingTime:      o.votingTime,
		Quorum:          o.quorum,
		TotalProposals:  len(o.proposals),
		TotalVotes:      o.totalVotes,
		Members:         o.members.List(),
		MemberCount:     o.members.Len(),
		ActiveProposals: active,
		Balance:         balance,
		CreatedAt:       o.createdAt,
	}
}

// IsMember reports whether id currently belongs to the organization.
func (o *Organization) IsMember(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.members.Contains(id)
}

// Proposals returns every proposal, newest start time first.
func (o *Organization) Proposals() []model.Proposal {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.collect(func(*model.Proposal) bool { return true })
}

// ActiveProposals returns proposals whose end time is after now, newest
// start time first.
func (o *Organization) ActiveProposals(now time.Time) []model.Proposal {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.collect(func(p *model.Proposal) bool { return p.IsActive(now) })
}

func (o *Organization) collect(keep func(*model.Proposal) bool) []model.Proposal {
	out := make([]model.Proposal, 0, len(o.proposals))
	for _, p := range o.proposals {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	SortByStartDesc(out)
	return out
}

// Proposal returns the proposal with the given id.
func (o *Organization) Proposal(id int) (model.Proposal, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	p, err := o.lookup(id)
	if err != nil {
		return model.Proposal{}, err
	}
	return p.Clone(), nil
}

func (o *Organization) lookup(id int) (*model.Proposal, error) {
	if id < 0 || id >= len(o.proposals) {
		return nil, ErrInvalidProposalID
	}
	return o.proposals[id], nil
}

// MemberActivities returns id's activity record.
func (o *Organization) MemberActivities(id string) model.ActivityRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activity.Get(id)
}

// ActivityOf returns id's record only if one was ever created.
func (o *Organization) ActivityOf(id string) (model.ActivityRecord, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activity.Lookup(id)
}

// AllMembersActivities returns one record per current member, in member order.
func (o *Organization) AllMembersActivities() []model.ActivityRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	members := o.members.List()
	out := make([]model.ActivityRecord, 0, len(members))
	for _, m := range members {
		out = append(out, o.activity.Get(m))
	}
	return out
}

// Deposit moves the value attached to call into the treasury.
func (o *Organization) Deposit(call Call) (decimal.Decimal, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !call.Value.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	account := Account(o.id)
	if err := o.ledger.Credit(account, call.Value); err != nil {
		return decimal.Zero, err
	}
	return o.ledger.Balance(account), nil
}

// SortByStartDesc orders proposals by start time, newest first. Proposals
// with equal start times keep the higher id first.
func SortByStartDesc(ps []model.Proposal) {
	sort.SliceStable(ps, func(i, j int) bool {
		if !ps[i].StartTime.Equal(ps[j].StartTime) {
			return ps[i].StartTime.After(ps[j].StartTime)
		}
		if ps[i].DAOID != ps[j].DAOID {
			return ps[i].DAOID < ps[j].DAOID
		}
		return ps[i].ID > ps[j].ID
	})
}
