package governance

import (
	"time"

	"github.com/ortelius/governance-backend/model"
)

// CreateProposal opens a new proposal. The caller must be a member unless
// the proposal is a join request. The voting window, member count and
// quorum are captured now and never recomputed.
func (o *Organization) CreateProposal(call Call, req model.CreateProposalRequest) (model.Proposal, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !req.Type.Valid() {
		return model.Proposal{}, ErrInvalidProposalType
	}
	if req.Type != model.ProposalJoin && !o.members.Contains(call.Caller) {
		return model.Proposal{}, ErrNotMember
	}
	if req.Type.NeedsTarget() && req.Target == "" {
		return model.Proposal{}, ErrMissingTarget
	}
	if req.Type.NeedsInfo() && req.Info == nil {
		return model.Proposal{}, ErrMissingInfo
	}
	if req.Type == model.ProposalTransfer && !req.Value.IsPositive() {
		return model.Proposal{}, ErrInvalidAmount
	}

	p := &model.Proposal{
		ID:          len(o.proposals),
		Proposer:    call.Caller,
		Type:        req.Type,
		Description: req.Description,
		Value:       req.Value,
		Target:      req.Target,
		StartTime:   call.Now,
		EndTime:     call.Now.Add(time.Duration(o.votingTime) * time.Millisecond),
		Votes:       []model.Vote{},
		DAOName:     o.name,
		DAOID:       o.id,
		DAOImage:    o.image,
		MemberCount: o.members.Len(),
		Quorum:      o.quorum,
		HasVoted:    map[string]bool{},
	}
	if req.Info != nil {
		info := *req.Info
		info.Socials = append([]string{}, req.Info.Socials...)
		p.Info = &info
	}

	o.proposals = append(o.proposals, p)
	o.activity.ProposalCreated(call.Caller)
	return p.Clone(), nil
}
