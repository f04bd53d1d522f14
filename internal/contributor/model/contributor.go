package model

import (
	"time"

	"gorm.io/gorm"
)

// GithubStats holds aggregated repository language statistics for a
// contributor, refreshed from the code-hosting API.
type GithubStats struct {
	MostUsedLanguage  string         `json:"most_used_language,omitempty"`
	LanguageBreakdown map[string]int `json:"language_breakdown,omitempty"`
}

// Contributor represents a developer or bounty creator.
// Matches the contributors table schema.
//
// A contributor is created at registration, or lazily as a placeholder the
// first time a pull request from an unseen author is observed. Placeholders
// carry a synthetic external id ("github_<login>" or "github_<numeric id>")
// so the row can later be claimed by a real authenticated account.
type Contributor struct {
	ID            string      `gorm:"primaryKey;column:id;type:varchar(36)"                                    json:"id"`
	ExternalID    string      `gorm:"column:external_id;type:varchar(255);not null;uniqueIndex:idx_contributors_external_id" json:"external_id"`
	Username      string      `gorm:"column:username;type:varchar(255);index:idx_contributors_username"       json:"username"`
	WalletAddress *string     `gorm:"column:wallet_address;type:varchar(128);uniqueIndex:idx_contributors_wallet" json:"wallet_address,omitempty"`
	ImageURL      string      `gorm:"column:image_url;type:varchar(512)"                                      json:"image_url"`
	GithubStats   GithubStats `gorm:"column:github_stats;type:text;serializer:json"                           json:"github_stats"`
	CreatedAt     time.Time   `gorm:"column:created_at;type:timestamptz;not null;default:now()"               json:"created_at"`
	UpdatedAt     time.Time   `gorm:"column:updated_at;type:timestamptz;not null;default:now()"               json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Contributor) TableName() string {
	return "contributors"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (c *Contributor) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}
