// Package model provides the mirrored pull request record.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Pull request mirror statuses.
const (
	StatusSubmitted = "SUBMITTED"
	StatusMerged    = "MERGED"
	StatusClosed    = "CLOSED"
)

// PullRequest is a locally persisted copy of an externally observed pull
// request. Matches the pull_requests table schema.
//
// Uniquely identified by (github_pr_number, repo). Created on first
// observation from either the poll or the webhook path; the poll path never
// mutates an existing record, the webhook merge path updates status in place.
type PullRequest struct {
	ID             string    `gorm:"primaryKey;column:id;type:varchar(36)"                                                      json:"id"`
	GithubPrNumber int       `gorm:"column:github_pr_number;not null;uniqueIndex:idx_pull_requests_number_repo"                 json:"githubPrNumber"`
	Repo           string    `gorm:"column:repo;type:varchar(255);not null;uniqueIndex:idx_pull_requests_number_repo"           json:"repo"`
	BountyID       string    `gorm:"column:bounty_id;type:varchar(36);not null;index:idx_pull_requests_bounty_id"               json:"bountyId"`
	DeveloperID    string    `gorm:"column:developer_id;type:varchar(36);not null;index:idx_pull_requests_developer_id"         json:"developerId"`
	Status         string    `gorm:"column:status;type:varchar(32);not null;default:SUBMITTED"                                  json:"status"`
	DemoURL        *string   `gorm:"column:demo_url;type:varchar(512)"                                                          json:"demoUrl,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"                                  json:"createdAt"`
	UpdatedAt      time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                                  json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (PullRequest) TableName() string {
	return "pull_requests"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (p *PullRequest) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}
