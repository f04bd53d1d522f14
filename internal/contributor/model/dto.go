// Package model provides data transfer objects and domain models for the contributor module.
package model

import "time"

// RegisterRequest represents the sign-up request for the authenticated caller.
type RegisterRequest struct {
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
}

// BindWalletRequest represents the request to bind a wallet address.
type BindWalletRequest struct {
	Address string `json:"address" binding:"required"`
}

// ProfileResponse wraps a contributor profile.
type ProfileResponse struct {
	User Contributor `json:"user"`
}

// PullRequestSummary is the caller-facing view of one mirrored pull request.
type PullRequestSummary struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	GithubPrNumber int       `json:"githubPrNumber"`
	Repo           string    `json:"repo"`
	DemoURL        *string   `json:"demoUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BountySummary is the caller-facing view of a bounty attached to a pull request.
type BountySummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Repository  string `json:"repository"`
	IssueNumber int    `json:"issueNumber"`
	IssueURL    string `json:"issueUrl"`
	Reward      string `json:"reward"`
	Status      string `json:"status"`
}

// BountyEntry pairs one of the caller's pull requests with its bounty.
type BountyEntry struct {
	PullRequest PullRequestSummary `json:"pullRequest"`
	Bounty      *BountySummary     `json:"bounty"`
}

// MyBountiesResponse lists the caller's pull requests with their bounties,
// newest first.
type MyBountiesResponse struct {
	Bounties []BountyEntry `json:"bounties"`
}
