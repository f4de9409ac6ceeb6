package model

// ActivityRecord counts one identity's governance participation.
// All counters only ever grow.
type ActivityRecord struct {
	Identity          string `json:"identity"`
	VotesCast         int    `json:"votes_cast"`
	ProposalsCreated  int    `json:"proposals_created"`
	ProposalsExecuted int    `json:"proposals_executed"`
}

// Add folds other into r, keeping r's identity.
func (r ActivityRecord) Add(other ActivityRecord) ActivityRecord {
	r.VotesCast += other.VotesCast
	r.ProposalsCreated += other.ProposalsCreated
	r.ProposalsExecuted += other.ProposalsExecuted
	return r
}
