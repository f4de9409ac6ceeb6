package governance

import "github.com/ortelius/governance-backend/model"

// VoteFor records a supporting vote by the caller.
func (o *Organization) VoteFor(call Call, id int) (model.Proposal, error) {
	return o.vote(call, id, true)
}

// VoteAgainst records an opposing vote by the caller.
func (o *Organization) VoteAgainst(call Call, id int) (model.Proposal, error) {
	return o.vote(call, id, false)
}

// Vote records a vote in the given direction.
func (o *Organization) Vote(call Call, id int, support bool) (model.Proposal, error) {
	return o.vote(call, id, support)
}

func (o *Organization) vote(call Call, id int, support bool) (model.Proposal, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.members.Contains(call.Caller) {
		return model.Proposal{}, ErrNotMember
	}
	p, err := o.lookup(id)
	if err != nil {
		return model.Proposal{}, err
	}
	if p.HasVoted[call.Caller] {
		return model.Proposal{}, ErrAlreadyVoted
	}
	if !call.Now.Before(p.EndTime) {
		return model.Proposal{}, ErrVotingEnded
	}

	if support {
		p.VotesFor++
	} else {
		p.VotesAgainst++
	}
	p.Votes = append(p.Votes, model.Vote{Voter: call.Caller, Support: support})
	if p.HasVoted == nil {
		p.HasVoted = map[string]bool{}
	}
	p.HasVoted[call.Caller] = true
	o.totalVotes++
	o.activity.VoteCast(call.Caller)
	return p.Clone(), nil
}
