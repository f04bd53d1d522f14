package model

import "errors"

var (
	// ErrPullRequestNotFound indicates that the requested pull request record does not exist.
	ErrPullRequestNotFound = errors.New("pull request not found")
	// ErrPullRequestExists indicates that a record for (number, repo) already exists.
	ErrPullRequestExists = errors.New("pull request already exists")
)
