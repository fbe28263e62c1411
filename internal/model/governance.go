package model

import "time"

type GetProposalsRequest struct {
	DaoID  string `json:"dao_id"`
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type Proposal struct {
	ID         string    `json:"id"`
	DaoID      string    `json:"dao_id"`
	ProposerID string    `json:"proposer_id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type GetProposalsResponse struct {
	Proposals []Proposal `json:"proposals"`
	Total     int64      `json:"total"`
}

type GetProposalRequest struct {
	ProposalID string `json:"proposal_id"`
}

type GetProposalResponse struct {
	Proposal
	VotesFor     int64 `json:"votes_for"`
	VotesAgainst int64 `json:"votes_against"`
	VotesAbstain int64 `json:"votes_abstain"`
	TotalVotes   int64 `json:"total_votes"`
}

type GetVotingPowerRequest struct {
	UserID string `json:"user_id"`
	DaoID  string `json:"dao_id"`
}

type GetVotingPowerResponse struct {
	// Power is the contribution count multiplied by the configured weight.
	Power int64 `json:"power"`

	// Delegated is incoming minus outgoing delegations; negative when the
	// user delegated away more than they received.
	Delegated int64 `json:"delegated"`

	Total int64 `json:"total"`
}
