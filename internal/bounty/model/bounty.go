package model

import (
	"time"

	"gorm.io/gorm"

	contributorModel "github.com/starbounty/bounty-service/internal/contributor/model"
	pullrequestModel "github.com/starbounty/bounty-service/internal/pullrequest/model"
)

// Bounty is a monetary reward record linked to one external issue.
// Matches the bounties table schema.
//
// EscrowContractID is set at most once per funding cycle; a second fund
// attempt is rejected. Never deleted in normal flow.
type Bounty struct {
	ID                string   `gorm:"primaryKey;column:id;type:varchar(36)"                                json:"id"`
	Title             string   `gorm:"column:title;type:varchar(255);not null"                              json:"title"`
	Repository        string   `gorm:"column:repository;type:varchar(255);not null"                         json:"repository"`
	IssueNumber       int      `gorm:"column:issue_number;not null"                                         json:"issueNumber"`
	Description       string   `gorm:"column:description;type:text"                                         json:"description"`
	GithubLink        string   `gorm:"column:github_link;type:varchar(512)"                                 json:"githubLink"`
	IssueURL          string   `gorm:"column:issue_url;type:varchar(512);not null;uniqueIndex:idx_bounties_issue_url" json:"issueUrl"`
	Keywords          []string `gorm:"column:keywords;type:text;serializer:json"                            json:"keywords"`
	Requirements      []string `gorm:"column:requirements;type:text;serializer:json"                        json:"requirements"`
	Reward            string   `gorm:"column:reward;type:varchar(64);not null"                              json:"reward"`
	EscrowContractID  *string  `gorm:"column:escrow_contract_id;type:varchar(128)"                          json:"escrowContractId,omitempty"`
	BeneficiaryWallet *string  `gorm:"column:beneficiary_wallet;type:varchar(128)"                          json:"beneficiaryWallet,omitempty"`
	Status            Status   `gorm:"column:status;type:varchar(32);not null;default:OPEN;index:idx_bounties_status" json:"status"`
	CreatorID         string   `gorm:"column:creator_id;type:varchar(36);not null;index:idx_bounties_creator_id"      json:"creatorId"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"updatedAt"`

	Creator      *contributorModel.Contributor  `gorm:"foreignKey:CreatorID"  json:"creator,omitempty"`
	PullRequests []pullrequestModel.PullRequest `gorm:"foreignKey:BountyID"   json:"pullRequests,omitempty"`
}

// TableName specifies the table name for GORM.
func (Bounty) TableName() string {
	return "bounties"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (b *Bounty) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now()
	return nil
}
