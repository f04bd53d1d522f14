// Package repository provides the data access layer for the bounty module.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/starbounty/bounty-service/internal/bounty/model"
)

// Repository defines bounty data access operations.
type Repository interface {
	// Create inserts a new bounty. Assigns an id when empty.
	Create(ctx context.Context, b *model.Bounty) error

	// GetByID finds a bounty by id without relations.
	GetByID(ctx context.Context, id string) (*model.Bounty, error)

	// GetByIDWithRelations finds a bounty with its pull requests and creator.
	GetByIDWithRelations(ctx context.Context, id string) (*model.Bounty, error)

	// GetByIssueURL finds a bounty by its canonical issue URL (exact match).
	GetByIssueURL(ctx context.Context, issueURL string) (*model.Bounty, error)

	// List returns all bounties with creator and pull requests.
	List(ctx context.Context) ([]model.Bounty, error)

	// ListByIDs returns the bounties for the given ids, keyed by id.
	ListByIDs(ctx context.Context, ids []string) (map[string]model.Bounty, error)

	// ListByStatuses returns up to limit bounties in any of the given states,
	// oldest first. Used by the reconciliation sweep.
	ListByStatuses(ctx context.Context, statuses []model.Status, limit int) ([]model.Bounty, error)

	// UpdateStatus sets the bounty status.
	UpdateStatus(ctx context.Context, id string, status model.Status) error

	// SetEscrow persists the escrow contract id and beneficiary wallet after
	// a successful fund call.
	SetEscrow(ctx context.Context, id, contractID, beneficiaryWallet string) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new bounty repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new bounty.
func (r *repository) Create(ctx context.Context, b *model.Bounty) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = model.StatusOpen
	}

	err := r.db.WithContext(ctx).Create(b).Error
	if err != nil {
		if isDuplicateError(err) {
			return model.ErrBountyExists
		}
		return err
	}

	return nil
}

// GetByID finds a bounty by id without relations.
func (r *repository) GetByID(ctx context.Context, id string) (*model.Bounty, error) {
	var b model.Bounty
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrBountyNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetByIDWithRelations finds a bounty with its pull requests and creator.
func (r *repository) GetByIDWithRelations(ctx context.Context, id string) (*model.Bounty, error) {
	var b model.Bounty
	err := r.db.WithContext(ctx).
		Preload("PullRequests").
		Preload("Creator").
		Where("id = ?", id).
		First(&b).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrBountyNotFound
		}
		return nil, err
	}

	return &b, nil
}

// GetByIssueURL finds a bounty by its canonical issue URL.
func (r *repository) GetByIssueURL(ctx context.Context, issueURL string) (*model.Bounty, error) {
	var b model.Bounty
	err := r.db.WithContext(ctx).Where("issue_url = ?", issueURL).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrBountyNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns all bounties with creator and pull requests.
func (r *repository) List(ctx context.Context) ([]model.Bounty, error) {
	var bounties []model.Bounty
	err := r.db.WithContext(ctx).
		Preload("PullRequests").
		Preload("Creator").
		Order("created_at DESC").
		Find(&bounties).Error

	if err != nil {
		return nil, err
	}

	if bounties == nil {
		return []model.Bounty{}, nil
	}

	return bounties, nil
}

// ListByIDs returns the bounties for the given ids, keyed by id.
func (r *repository) ListByIDs(ctx context.Context, ids []string) (map[string]model.Bounty, error) {
	result := make(map[string]model.Bounty, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var bounties []model.Bounty
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&bounties).Error
	if err != nil {
		return nil, err
	}

	for _, b := range bounties {
		result[b.ID] = b
	}

	return result, nil
}

// ListByStatuses returns up to limit bounties in any of the given states.
func (r *repository) ListByStatuses(ctx context.Context, statuses []model.Status, limit int) ([]model.Bounty, error) {
	var bounties []model.Bounty
	query := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("updated_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&bounties).Error; err != nil {
		return nil, err
	}

	if bounties == nil {
		return []model.Bounty{}, nil
	}

	return bounties, nil
}

// UpdateStatus sets the bounty status.
func (r *repository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	result := r.db.WithContext(ctx).
		Model(&model.Bounty{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrBountyNotFound
	}

	return nil
}

// SetEscrow persists the escrow contract id and beneficiary wallet.
func (r *repository) SetEscrow(ctx context.Context, id, contractID, beneficiaryWallet string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Bounty{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"escrow_contract_id": contractID,
			"beneficiary_wallet": beneficiaryWallet,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrBountyNotFound
	}

	return nil
}

// isDuplicateError checks if the error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
