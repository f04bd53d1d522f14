// Package service provides business logic for the contributor module.
package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	bountyRepo "github.com/starbounty/bounty-service/internal/bounty/repository"
	"github.com/starbounty/bounty-service/internal/contributor/model"
	"github.com/starbounty/bounty-service/internal/contributor/repository"
	"github.com/starbounty/bounty-service/internal/github"
	pullrequestRepo "github.com/starbounty/bounty-service/internal/pullrequest/repository"
)

// Service defines contributor business logic operations.
type Service interface {
	// Register upserts the caller's contributor record and refreshes GitHub
	// language stats for the username (best effort).
	Register(ctx context.Context, callerID string, req *model.RegisterRequest) (*model.ProfileResponse, error)

	// Profile returns the caller's contributor record.
	Profile(ctx context.Context, callerID string) (*model.ProfileResponse, error)

	// BindWallet binds a wallet address to the caller. An address already
	// bound to any contributor is rejected.
	BindWallet(ctx context.Context, callerID string, req *model.BindWalletRequest) (*model.ProfileResponse, error)

	// MyBounties returns the caller's pull requests with their bounties,
	// newest first.
	MyBounties(ctx context.Context, callerID string) (*model.MyBountiesResponse, error)
}

type service struct {
	repo     repository.Repository
	prRepo   pullrequestRepo.Repository
	bounties bountyRepo.Repository
	github   github.Client
	logger   *zap.SugaredLogger
}

// New creates a new contributor service instance.
func New(
	repo repository.Repository,
	prRepo pullrequestRepo.Repository,
	bounties bountyRepo.Repository,
	githubClient github.Client,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:     repo,
		prRepo:   prRepo,
		bounties: bounties,
		github:   githubClient,
		logger:   logger,
	}
}

// Register upserts the caller's contributor record.
func (s *service) Register(ctx context.Context, callerID string, req *model.RegisterRequest) (*model.ProfileResponse, error) {
	contributor, err := s.repo.FindOrCreate(ctx, &model.Contributor{
		ExternalID: callerID,
		Username:   req.Username,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	username := contributor.Username
	if username == "" {
		username = req.Username
	}

	// Stats refresh is best effort: a rate-limited or failing upstream must
	// not block sign-up.
	if username != "" {
		stats, statsErr := s.fetchGithubStats(ctx, username)
		if statsErr != nil {
			s.logger.Warnw("failed to fetch github stats", "username", username, "error", statsErr)
		} else if updateErr := s.repo.UpdateStats(ctx, contributor.ID, *stats); updateErr != nil {
			s.logger.Errorw("failed to persist github stats", "contributor_id", contributor.ID, "error", updateErr)
		} else {
			contributor.GithubStats = *stats
		}
	}

	s.logger.Infow("contributor registered", "contributor_id", contributor.ID, "external_id", callerID)
	return &model.ProfileResponse{User: *contributor}, nil
}

// fetchGithubStats aggregates repository languages into a breakdown.
func (s *service) fetchGithubStats(ctx context.Context, username string) (*model.GithubStats, error) {
	repos, err := s.github.ListUserRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]int)
	for _, repo := range repos {
		if repo.Language != nil && *repo.Language != "" {
			breakdown[*repo.Language]++
		}
	}

	mostUsed := ""
	max := 0
	for lang, count := range breakdown {
		if count > max || (count == max && lang < mostUsed) {
			max = count
			mostUsed = lang
		}
	}

	return &model.GithubStats{
		MostUsedLanguage:  mostUsed,
		LanguageBreakdown: breakdown,
	}, nil
}

// Profile returns the caller's contributor record.
func (s *service) Profile(ctx context.Context, callerID string) (*model.ProfileResponse, error) {
	contributor, err := s.repo.GetByExternalID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	return &model.ProfileResponse{User: *contributor}, nil
}

// BindWallet binds a wallet address to the caller.
func (s *service) BindWallet(ctx context.Context, callerID string, req *model.BindWalletRequest) (*model.ProfileResponse, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, model.ErrInvalidWalletAddress
	}

	if _, err := s.repo.GetByWallet(ctx, address); err == nil {
		return nil, model.ErrWalletAlreadyBound
	} else if !errors.Is(err, model.ErrContributorNotFound) {
		return nil, err
	}

	contributor, err := s.repo.GetByExternalID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWallet(ctx, contributor.ID, address); err != nil {
		return nil, err
	}

	contributor.WalletAddress = &address
	s.logger.Infow("wallet bound", "contributor_id", contributor.ID)
	return &model.ProfileResponse{User: *contributor}, nil
}

// MyBounties returns the caller's pull requests with their bounties.
func (s *service) MyBounties(ctx context.Context, callerID string) (*model.MyBountiesResponse, error) {
	contributor, err := s.repo.GetByExternalID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	prs, err := s.prRepo.ListByDeveloper(ctx, contributor.ID)
	if err != nil {
		return nil, err
	}

	bountyIDs := make([]string, 0, len(prs))
	for _, pr := range prs {
		bountyIDs = append(bountyIDs, pr.BountyID)
	}

	bounties, err := s.bounties.ListByIDs(ctx, bountyIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]model.BountyEntry, 0, len(prs))
	for _, pr := range prs {
		entry := model.BountyEntry{
			PullRequest: model.PullRequestSummary{
				ID:             pr.ID,
				Status:         pr.Status,
				GithubPrNumber: pr.GithubPrNumber,
				Repo:           pr.Repo,
				DemoURL:        pr.DemoURL,
				CreatedAt:      pr.CreatedAt,
				UpdatedAt:      pr.UpdatedAt,
			},
		}
		if bounty, ok := bounties[pr.BountyID]; ok {
			entry.Bounty = &model.BountySummary{
				ID:          bounty.ID,
				Title:       bounty.Title,
				Repository:  bounty.Repository,
				IssueNumber: bounty.IssueNumber,
				IssueURL:    bounty.IssueURL,
				Reward:      bounty.Reward,
				Status:      string(bounty.Status),
			}
		}
		entries = append(entries, entry)
	}

	return &model.MyBountiesResponse{Bounties: entries}, nil
}
