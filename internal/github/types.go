package github

// Account is a GitHub user summary as returned by the REST API.
type Account struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
}

// Issue is the subset of the issues API response the service consumes.
type Issue struct {
	State     string    `json:"state"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Number    int       `json:"number"`
	Assignee  *Account  `json:"assignee"`
	Assignees []Account `json:"assignees"`
}

// PullRequest is the subset of the pulls API response the service consumes.
type PullRequest struct {
	Number    int     `json:"number"`
	HTMLURL   string  `json:"html_url"`
	State     string  `json:"state"`
	Title     string  `json:"title"`
	Merged    bool    `json:"merged"`
	User      Account `json:"user"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// SearchItem is one hit from the issue search API. Items that are pull
// requests carry a non-nil PullRequest ref with the detail URL.
type SearchItem struct {
	Number      int `json:"number"`
	PullRequest *struct {
		URL string `json:"url"`
	} `json:"pull_request"`
}

// SearchResult is the issue search API envelope.
type SearchResult struct {
	TotalCount int          `json:"total_count"`
	Items      []SearchItem `json:"items"`
}

// Repo is the subset of the repos API response used for language stats.
type Repo struct {
	Name     string  `json:"name"`
	Language *string `json:"language"`
}
