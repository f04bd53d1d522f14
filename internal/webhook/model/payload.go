// Package model provides payload types for inbound GitHub webhooks.
package model

// Sender is the GitHub account that triggered the event.
type Sender struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// PullRequestPayload is the pull request object inside a pull_request event.
type PullRequestPayload struct {
	Number  int    `json:"number"`
	State   string `json:"state"`
	Merged  bool   `json:"merged"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	Title   string `json:"title"`
	User    Sender `json:"user"`
}

// RepositoryPayload identifies the repository the event came from.
type RepositoryPayload struct {
	FullName string `json:"full_name"`
}

// PullRequestEvent is a GitHub pull_request webhook delivery.
type PullRequestEvent struct {
	Action      string             `json:"action"`
	Number      int                `json:"number"`
	PullRequest PullRequestPayload `json:"pull_request"`
	Repository  RepositoryPayload  `json:"repository"`
}
