package governance

import "errors"

// Error codes reported to callers. Each failed call carries exactly one.
const (
	CodeNotMember           = "NOT_MEMBER"
	CodeInvalidProposalID   = "INVALID_PROPOSAL_ID"
	CodeInvalidProposalType = "INVALID_PROPOSAL_TYPE"
	CodeMissingTarget       = "MISSING_TARGET"
	CodeMissingInfo         = "MISSING_INFO"
	CodeAlreadyVoted        = "ALREADY_VOTED"
	CodeVotingEnded         = "VOTING_ENDED"
	CodeVotingNotEnded      = "VOTING_NOT_ENDED"
	CodeAlreadyExecuted     = "ALREADY_EXECUTED"
	CodeMajorityNotReached  = "MAJORITY_NOT_REACHED"
	CodeQuorumNotReached    = "QUORUM_NOT_REACHED"
	CodeInvalidQuorum       = "INVALID_QUORUM"
	CodeInvalidVotingTime   = "INVALID_VOTING_TIME"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeInsufficientValue   = "INSUFFICIENT_VALUE"
	CodeInvalidDAOID        = "INVALID_DAO_ID"
	CodeDAOIDTaken          = "DAO_ID_TAKEN"
	CodeDAONotFound         = "DAO_NOT_FOUND"
	CodeInternal            = "INTERNAL"
)

// Error is a named precondition failure. A call that returns one has not
// changed any state.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Precondition failures.
var (
	ErrNotMember           = &Error{Code: CodeNotMember, Message: "caller is not a member"}
	ErrInvalidProposalID   = &Error{Code: CodeInvalidProposalID, Message: "invalid proposal id"}
	ErrInvalidProposalType = &Error{Code: CodeInvalidProposalType, Message: "invalid proposal type"}
	ErrMissingTarget       = &Error{Code: CodeMissingTarget, Message: "proposal target is required"}
	ErrMissingInfo         = &Error{Code: CodeMissingInfo, Message: "proposal info is required"}
	ErrAlreadyVoted        = &Error{Code: CodeAlreadyVoted, Message: "already voted"}
	ErrVotingEnded         = &Error{Code: CodeVotingEnded, Message: "voting has ended"}
	ErrVotingNotEnded      = &Error{Code: CodeVotingNotEnded, Message: "voting has not ended"}
	ErrAlreadyExecuted     = &Error{Code: CodeAlreadyExecuted, Message: "proposal already executed"}
	ErrMajorityNotReached  = &Error{Code: CodeMajorityNotReached, Message: "majority not reached"}
	ErrQuorumNotReached    = &Error{Code: CodeQuorumNotReached, Message: "quorum not reached"}
	ErrInvalidQuorum       = &Error{Code: CodeInvalidQuorum, Message: "quorum must be between 1 and 100"}
	ErrInvalidVotingTime   = &Error{Code: CodeInvalidVotingTime, Message: "voting time must be between 1 and 9223372036854 ms"}
	ErrInvalidAmount       = &Error{Code: CodeInvalidAmount, Message: "amount must be greater than 0"}
	ErrInsufficientFunds   = &Error{Code: CodeInsufficientFunds, Message: "insufficient funds"}
	ErrInsufficientValue   = &Error{Code: CodeInsufficientValue, Message: "attached value is less than starting balance"}
	ErrInvalidDAOID        = &Error{Code: CodeInvalidDAOID, Message: "id must be non-empty and contain no spaces"}
	ErrDAOIDTaken          = &Error{Code: CodeDAOIDTaken, Message: "id already taken"}
	ErrDAONotFound         = &Error{Code: CodeDAONotFound, Message: "dao not found"}
)

// CodeOf returns the code of the first *Error in err's chain, or
// CodeInternal for anything else.
func CodeOf(err error) string {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return CodeInternal
}
