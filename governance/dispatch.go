package governance

import (
	"math"

	"github.com/ortelius/governance-backend/model"
	"github.com/shopspring/decimal"
)

// ExecuteProposal applies an approved proposal once its voting window has
// closed. It requires a strict majority and the quorum captured at creation.
// Execution is terminal: a proposal executes at most once.
func (o *Organization) ExecuteProposal(call Call, id int) (model.Proposal, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.members.Contains(call.Caller) {
		return model.Proposal{}, ErrNotMember
	}
	p, err := o.lookup(id)
	if err != nil {
		return model.Proposal{}, err
	}
	if p.IsExecuted {
		return model.Proposal{}, ErrAlreadyExecuted
	}
	if call.Now.Before(p.EndTime) {
		return model.Proposal{}, ErrVotingNotEnded
	}
	if p.VotesFor <= p.VotesAgainst {
		return model.Proposal{}, ErrMajorityNotReached
	}
	if !QuorumReached(*p) {
		return model.Proposal{}, ErrQuorumNotReached
	}

	if err := o.dispatch(p); err != nil {
		return model.Proposal{}, err
	}
	p.IsExecuted = true
	o.activity.ProposalExecuted(call.Caller)
	return p.Clone(), nil
}

// dispatch performs the single action selected by p.Type. Every branch
// validates before it mutates, so an error leaves the organization as it was.
func (o *Organization) dispatch(p *model.Proposal) error {
	switch p.Type {
	case model.ProposalUpdateName:
		if p.Info == nil {
			return ErrMissingInfo
		}
		o.name = p.Info.Name
	case model.ProposalUpdateSocials:
		if p.Info == nil {
			return ErrMissingInfo
		}
		o.socials = append([]string{}, p.Info.Socials...)
	case model.ProposalUpdateImage:
		if p.Info == nil {
			return ErrMissingInfo
		}
		o.image = p.Info.Image
	case model.ProposalAddMember:
		o.members.Add(p.Target)
	case model.ProposalJoin:
		o.members.Add(p.Proposer)
	case model.ProposalRemoveMember:
		o.members.Remove(p.Target)
	case model.ProposalUpdateQuorum:
		q, ok := wholeNumber(p.Value)
		if !ok || q < 1 || q > 100 {
			return ErrInvalidQuorum
		}
		o.quorum = int(q)
	case model.ProposalUpdateVotingTime:
		ms, ok := wholeNumber(p.Value)
		if !ok || !validVotingTime(ms) {
			return ErrInvalidVotingTime
		}
		o.votingTime = ms
	case model.ProposalTransfer:
		if !p.Value.IsPositive() {
			return ErrInvalidAmount
		}
		if err := o.ledger.Transfer(Account(o.id), p.Target, p.Value); err != nil {
			return err
		}
	case model.ProposalCustom:
		// interpreted outside the core
	default:
		return ErrInvalidProposalType
	}
	return nil
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

func wholeNumber(v decimal.Decimal) (int64, bool) {
	if !v.IsInteger() || v.LessThan(minInt64) || v.GreaterThan(maxInt64) {
		return 0, false
	}
	return v.IntPart(), true
}
