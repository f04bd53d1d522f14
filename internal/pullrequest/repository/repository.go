// Package repository provides the data access layer for mirrored pull requests.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/starbounty/bounty-service/internal/pullrequest/model"
)

// Repository defines pull request mirror data access operations.
type Repository interface {
	// GetByNumberRepo finds a record by its (number, repo) identity.
	GetByNumberRepo(ctx context.Context, number int, repo string) (*model.PullRequest, error)

	// CreateIfAbsent inserts a record unless one already exists for
	// (number, repo). Existing records are left untouched. Returns true when
	// a row was inserted.
	CreateIfAbsent(ctx context.Context, pr *model.PullRequest) (bool, error)

	// UpdateStatus sets the status of the record identified by (number, repo)
	// and returns the updated record.
	UpdateStatus(ctx context.Context, number int, repo string, status string) (*model.PullRequest, error)

	// ListByBounty returns all records mirrored for a bounty.
	ListByBounty(ctx context.Context, bountyID string) ([]model.PullRequest, error)

	// ListByDeveloper returns a developer's records, newest first.
	ListByDeveloper(ctx context.Context, developerID string) ([]model.PullRequest, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new pull request repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByNumberRepo finds a record by its (number, repo) identity.
func (r *repository) GetByNumberRepo(ctx context.Context, number int, repo string) (*model.PullRequest, error) {
	var pr model.PullRequest
	err := r.db.WithContext(ctx).
		Where("github_pr_number = ? AND repo = ?", number, repo).
		First(&pr).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrPullRequestNotFound
		}
		return nil, err
	}

	return &pr, nil
}

// CreateIfAbsent inserts a record unless one exists for (number, repo).
// ON CONFLICT DO NOTHING keeps re-observation idempotent without read-then-write races.
func (r *repository) CreateIfAbsent(ctx context.Context, pr *model.PullRequest) (bool, error) {
	if pr.ID == "" {
		pr.ID = uuid.NewString()
	}
	if pr.Status == "" {
		pr.Status = model.StatusSubmitted
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "github_pr_number"}, {Name: "repo"}},
			DoNothing: true,
		}).
		Create(pr)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// UpdateStatus sets the status of the record identified by (number, repo).
func (r *repository) UpdateStatus(ctx context.Context, number int, repo string, status string) (*model.PullRequest, error) {
	result := r.db.WithContext(ctx).
		Model(&model.PullRequest{}).
		Where("github_pr_number = ? AND repo = ?", number, repo).
		Update("status", status)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, model.ErrPullRequestNotFound
	}

	return r.GetByNumberRepo(ctx, number, repo)
}

// ListByBounty returns all records mirrored for a bounty.
func (r *repository) ListByBounty(ctx context.Context, bountyID string) ([]model.PullRequest, error) {
	var prs []model.PullRequest
	err := r.db.WithContext(ctx).
		Where("bounty_id = ?", bountyID).
		Order("created_at ASC").
		Find(&prs).Error

	if err != nil {
		return nil, err
	}

	if prs == nil {
		return []model.PullRequest{}, nil
	}

	return prs, nil
}

// ListByDeveloper returns a developer's records, newest first.
func (r *repository) ListByDeveloper(ctx context.Context, developerID string) ([]model.PullRequest, error) {
	var prs []model.PullRequest
	err := r.db.WithContext(ctx).
		Where("developer_id = ?", developerID).
		Order("created_at DESC").
		Find(&prs).Error

	if err != nil {
		return nil, err
	}

	if prs == nil {
		return []model.PullRequest{}, nil
	}

	return prs, nil
}
