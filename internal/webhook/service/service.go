// Package service processes verified GitHub webhook deliveries.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/gorm"

	bountyModel "github.com/starbounty/bounty-service/internal/bounty/model"
	bountyRepo "github.com/starbounty/bounty-service/internal/bounty/repository"
	contributorModel "github.com/starbounty/bounty-service/internal/contributor/model"
	contributorRepo "github.com/starbounty/bounty-service/internal/contributor/repository"
	pullrequestModel "github.com/starbounty/bounty-service/internal/pullrequest/model"
	pullrequestRepo "github.com/starbounty/bounty-service/internal/pullrequest/repository"
	"github.com/starbounty/bounty-service/internal/webhook/model"
)

// issueURLPattern matches the first GitHub issue URL in a pull request body.
var issueURLPattern = regexp.MustCompile(`https?://github\.com/[\w\-./]+/issues/\d+`)

// Service defines webhook delivery processing.
type Service interface {
	// HandlePullRequest routes a pull_request event by action. Unhandled
	// actions are ignored.
	HandlePullRequest(ctx context.Context, event *model.PullRequestEvent) error
}

type service struct {
	db           *gorm.DB
	bounties     bountyRepo.Repository
	prRepo       pullrequestRepo.Repository
	contributors contributorRepo.Repository
	logger       *zap.SugaredLogger
}

// New creates a new webhook service instance.
func New(
	db *gorm.DB,
	bounties bountyRepo.Repository,
	prRepo pullrequestRepo.Repository,
	contributors contributorRepo.Repository,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		db:           db,
		bounties:     bounties,
		prRepo:       prRepo,
		contributors: contributors,
		logger:       logger,
	}
}

// HandlePullRequest routes a pull_request event by action.
func (s *service) HandlePullRequest(ctx context.Context, event *model.PullRequestEvent) error {
	switch {
	case event.Action == "opened":
		return s.pullRequestOpened(ctx, event)
	case event.Action == "closed" && event.PullRequest.Merged:
		return s.pullRequestMerged(ctx, event)
	default:
		s.logger.Debugw("ignoring pull_request action",
			"action", event.Action,
			"repo", event.Repository.FullName,
			"pr_number", event.PullRequest.Number,
		)
		return nil
	}
}

// pullRequestOpened links a newly opened pull request to the bounty whose
// issue URL appears in the PR body, mirroring it as SUBMITTED.
func (s *service) pullRequestOpened(ctx context.Context, event *model.PullRequestEvent) error {
	issueURL := issueURLPattern.FindString(event.PullRequest.Body)
	if issueURL == "" {
		return model.ErrNoLinkedBounty
	}

	bounty, err := s.bounties.GetByIssueURL(ctx, issueURL)
	if err != nil {
		if errors.Is(err, bountyModel.ErrBountyNotFound) {
			return model.ErrNoLinkedBounty
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contributors := contributorRepo.New(tx)
		prs := pullrequestRepo.New(tx)
		bounties := bountyRepo.New(tx)

		developer, err := contributors.FindOrCreate(ctx, &contributorModel.Contributor{
			ExternalID: fmt.Sprintf("github_%d", event.PullRequest.User.ID),
			Username:   event.PullRequest.User.Login,
		})
		if err != nil {
			return err
		}

		created, err := prs.CreateIfAbsent(ctx, &pullrequestModel.PullRequest{
			BountyID:       bounty.ID,
			DeveloperID:    developer.ID,
			GithubPrNumber: event.PullRequest.Number,
			Repo:           event.Repository.FullName,
			Status:         pullrequestModel.StatusSubmitted,
		})
		if err != nil {
			return err
		}

		if !created {
			s.logger.Debugw("pull request already mirrored",
				"repo", event.Repository.FullName,
				"pr_number", event.PullRequest.Number,
			)
		}

		if bountyModel.CanTransition(bounty.Status, bountyModel.StatusPRSubmitted) {
			return bounties.UpdateStatus(ctx, bounty.ID, bountyModel.StatusPRSubmitted)
		}

		s.logger.Infow("skipping bounty transition",
			"bounty_id", bounty.ID,
			"from", bounty.Status,
			"to", bountyModel.StatusPRSubmitted,
		)
		return nil
	})
}

// pullRequestMerged marks a mirrored pull request and its bounty as MERGED.
func (s *service) pullRequestMerged(ctx context.Context, event *model.PullRequestEvent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prs := pullrequestRepo.New(tx)
		bounties := bountyRepo.New(tx)

		pr, err := prs.UpdateStatus(ctx, event.PullRequest.Number, event.Repository.FullName, pullrequestModel.StatusMerged)
		if err != nil {
			if errors.Is(err, pullrequestModel.ErrPullRequestNotFound) {
				return model.ErrNoLinkedBounty
			}
			return err
		}

		bounty, err := bounties.GetByID(ctx, pr.BountyID)
		if err != nil {
			return err
		}

		if bountyModel.CanTransition(bounty.Status, bountyModel.StatusMerged) {
			return bounties.UpdateStatus(ctx, bounty.ID, bountyModel.StatusMerged)
		}

		s.logger.Infow("skipping bounty transition",
			"bounty_id", bounty.ID,
			"from", bounty.Status,
			"to", bountyModel.StatusMerged,
		)
		return nil
	})
}
