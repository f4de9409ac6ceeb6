package governance

import "github.com/ortelius/governance-backend/model"

// PercentageVoted returns the share of baseline that has voted, truncated
// to a whole percent. A zero baseline yields zero.
func PercentageVoted(votesFor, votesAgainst, baseline int) int {
	if baseline <= 0 {
		return 0
	}
	return (votesFor + votesAgainst) * 100 / baseline
}

// QuorumReached evaluates p against the member count and quorum captured
// when it was created, so later membership or quorum changes cannot move
// the bar for a proposal already in flight.
func QuorumReached(p model.Proposal) bool {
	return PercentageVoted(p.VotesFor, p.VotesAgainst, p.MemberCount) >= p.Quorum
}
