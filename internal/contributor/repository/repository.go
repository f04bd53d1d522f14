// Package repository provides the data access layer for the contributor module.
package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/starbounty/bounty-service/internal/contributor/model"
)

// Repository defines contributor data access operations.
type Repository interface {
	// Create inserts a new contributor. Assigns an id when empty.
	Create(ctx context.Context, c *model.Contributor) error

	// GetByID finds a contributor by primary id.
	GetByID(ctx context.Context, id string) (*model.Contributor, error)

	// GetByExternalID finds a contributor by identity-provider id (or
	// synthetic placeholder key).
	GetByExternalID(ctx context.Context, externalID string) (*model.Contributor, error)

	// GetByUsername finds a contributor by platform username.
	GetByUsername(ctx context.Context, username string) (*model.Contributor, error)

	// GetByWallet finds a contributor by bound wallet address.
	GetByWallet(ctx context.Context, address string) (*model.Contributor, error)

	// FindOrCreate returns the contributor with the candidate's external id,
	// creating it from the candidate when absent.
	FindOrCreate(ctx context.Context, candidate *model.Contributor) (*model.Contributor, error)

	// UpdateWallet binds a wallet address to a contributor.
	UpdateWallet(ctx context.Context, id, address string) error

	// UpdateStats replaces a contributor's aggregated GitHub stats.
	UpdateStats(ctx context.Context, id string, stats model.GithubStats) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new contributor repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new contributor.
func (r *repository) Create(ctx context.Context, c *model.Contributor) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Create(c).Error
	if err != nil {
		if isDuplicateError(err) {
			return model.ErrContributorExists
		}
		return err
	}

	return nil
}

// GetByID finds a contributor by primary id.
func (r *repository) GetByID(ctx context.Context, id string) (*model.Contributor, error) {
	return r.getBy(ctx, "id = ?", id)
}

// GetByExternalID finds a contributor by identity-provider id.
func (r *repository) GetByExternalID(ctx context.Context, externalID string) (*model.Contributor, error) {
	return r.getBy(ctx, "external_id = ?", externalID)
}

// GetByUsername finds a contributor by platform username.
func (r *repository) GetByUsername(ctx context.Context, username string) (*model.Contributor, error) {
	return r.getBy(ctx, "username = ?", username)
}

// GetByWallet finds a contributor by bound wallet address.
func (r *repository) GetByWallet(ctx context.Context, address string) (*model.Contributor, error) {
	return r.getBy(ctx, "wallet_address = ?", address)
}

func (r *repository) getBy(ctx context.Context, query string, arg interface{}) (*model.Contributor, error) {
	var c model.Contributor
	err := r.db.WithContext(ctx).Where(query, arg).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrContributorNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindOrCreate returns the contributor with the candidate's external id,
// creating it when absent. A concurrent insert of the same external id is
// resolved by re-reading the winning row.
func (r *repository) FindOrCreate(ctx context.Context, candidate *model.Contributor) (*model.Contributor, error) {
	existing, err := r.GetByExternalID(ctx, candidate.ExternalID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrContributorNotFound) {
		return nil, err
	}

	if createErr := r.Create(ctx, candidate); createErr != nil {
		if errors.Is(createErr, model.ErrContributorExists) {
			return r.GetByExternalID(ctx, candidate.ExternalID)
		}
		return nil, createErr
	}

	return candidate, nil
}

// UpdateWallet binds a wallet address to a contributor.
func (r *repository) UpdateWallet(ctx context.Context, id, address string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Contributor{}).
		Where("id = ?", id).
		Update("wallet_address", address)

	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return model.ErrWalletAlreadyBound
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrContributorNotFound
	}

	return nil
}

// UpdateStats replaces a contributor's aggregated GitHub stats.
func (r *repository) UpdateStats(ctx context.Context, id string, stats model.GithubStats) error {
	result := r.db.WithContext(ctx).
		Model(&model.Contributor{}).
		Where("id = ?", id).
		Update("github_stats", stats)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return model.ErrContributorNotFound
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
