// Package model provides data transfer objects and domain models for the bounty module.
package model

// CreateBountyRequest represents the request to create a bounty.
// Keywords and requirements also accept a single delimited string from older
// clients; normalization happens in the service layer.
type CreateBountyRequest struct {
	Title        string      `json:"title"`
	Repository   string      `json:"repository"`
	IssueNumber  int         `json:"issueNumber"`
	Description  string      `json:"description"`
	GithubLink   string      `json:"githubLink"`
	IssueURL     string      `json:"issueUrl"`
	Keywords     interface{} `json:"keywords"`
	Requirements interface{} `json:"requirements"`
	Reward       string      `json:"reward"`
}

// BountyResponse wraps a single bounty.
type BountyResponse struct {
	Bounty Bounty `json:"bounty"`
}

// BountyListResponse wraps the full bounty listing.
type BountyListResponse struct {
	Bounties []Bounty `json:"bounties"`
}

// FundEscrowRequest represents the request to fund a bounty's escrow.
type FundEscrowRequest struct {
	BountyID          string `json:"bounty_id"`
	Amount            string `json:"amount"`
	BeneficiaryWallet string `json:"beneficiary_wallet"`
}

// ReleaseEscrowRequest represents the request to release a bounty's escrow.
type ReleaseEscrowRequest struct {
	BountyID string `json:"bounty_id"`
}

// EscrowResponse is the gateway outcome surfaced to the caller.
type EscrowResponse struct {
	OK         bool   `json:"ok"`
	TxHash     string `json:"tx_hash,omitempty"`
	ContractID string `json:"contract_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// AccountSummary is a GitHub account in API responses.
type AccountSummary struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// IssueView is the issue portion of a progress response.
type IssueView struct {
	State     string           `json:"state"`
	Title     string           `json:"title"`
	Number    int              `json:"number"`
	Assignee  *AccountSummary  `json:"assignee"`
	Assignees []AccountSummary `json:"assignees"`
}

// PullRequestView is one linked pull request in a progress response.
type PullRequestView struct {
	Number    int            `json:"number"`
	URL       string         `json:"url"`
	State     string         `json:"state"`
	Title     string         `json:"title"`
	Author    AccountSummary `json:"author"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

// ProgressResponse is the result of a reconciliation pass.
type ProgressResponse struct {
	Issue        IssueView         `json:"issue"`
	PullRequests []PullRequestView `json:"pullRequests"`
	Status       Status            `json:"status"`
}
