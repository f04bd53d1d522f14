// Package github provides a read-only client for the code-hosting REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/starbounty/bounty-service/internal/config"
)

// FetchError is returned for any non-2xx upstream response. Callers propagate
// the upstream status code to their own clients.
type FetchError struct {
	StatusCode int
	URL        string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("github api returned status %d for %s", e.StatusCode, e.URL)
}

// Client defines read operations against the code-hosting API.
type Client interface {
	// GetIssue fetches the current state of an issue.
	GetIssue(ctx context.Context, repo string, number int) (*Issue, error)

	// SearchPullRequests finds pull requests in repo whose text references
	// the issue number.
	SearchPullRequests(ctx context.Context, repo string, issueNumber int) ([]SearchItem, error)

	// GetPullRequest fetches full pull request detail from its API URL.
	GetPullRequest(ctx context.Context, prURL string) (*PullRequest, error)

	// ListUserRepos lists up to 100 public repositories for a username.
	ListUserRepos(ctx context.Context, username string) ([]Repo, error)
}

type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// New creates a new GitHub API client.
func New(cfg config.GitHubConfig, logger *zap.SugaredLogger) Client {
	return &client{
		baseURL: cfg.APIBaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

// GetIssue fetches the current state of an issue.
func (c *client) GetIssue(ctx context.Context, repo string, number int) (*Issue, error) {
	u := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, repo, number)

	var issue Issue
	if err := c.getJSON(ctx, u, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// SearchPullRequests finds pull requests referencing the issue number.
func (c *client) SearchPullRequests(ctx context.Context, repo string, issueNumber int) ([]SearchItem, error) {
	q := fmt.Sprintf("type:pr repo:%s %d", repo, issueNumber)
	u := fmt.Sprintf("%s/search/issues?q=%s", c.baseURL, url.QueryEscape(q))

	var result SearchResult
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// GetPullRequest fetches full pull request detail from its API URL.
func (c *client) GetPullRequest(ctx context.Context, prURL string) (*PullRequest, error) {
	var pr PullRequest
	if err := c.getJSON(ctx, prURL, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// ListUserRepos lists up to 100 public repositories for a username.
func (c *client) ListUserRepos(ctx context.Context, username string) ([]Repo, error) {
	u := fmt.Sprintf("%s/users/%s/repos?per_page=100", c.baseURL, url.PathEscape(username))

	var repos []Repo
	if err := c.getJSON(ctx, u, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *client) getJSON(ctx context.Context, u string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 1024)
		c.logger.Warnw("github api error", "url", u, "status", resp.StatusCode)
		return &FetchError{StatusCode: resp.StatusCode, URL: u}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}

	return nil
}
