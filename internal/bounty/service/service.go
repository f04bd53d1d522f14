// Package service provides business logic for the bounty module: creation,
// GitHub-driven reconciliation and the escrow funding cycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/starbounty/bounty-service/internal/bounty/model"
	"github.com/starbounty/bounty-service/internal/bounty/repository"
	contributorModel "github.com/starbounty/bounty-service/internal/contributor/model"
	contributorRepo "github.com/starbounty/bounty-service/internal/contributor/repository"
	"github.com/starbounty/bounty-service/internal/escrow"
	"github.com/starbounty/bounty-service/internal/github"
	pullrequestModel "github.com/starbounty/bounty-service/internal/pullrequest/model"
	pullrequestRepo "github.com/starbounty/bounty-service/internal/pullrequest/repository"
)

// Service defines bounty business logic operations.
type Service interface {
	// Create creates a bounty for the authenticated caller, upserting the
	// caller's contributor record.
	Create(ctx context.Context, callerID string, req *model.CreateBountyRequest) (*model.BountyResponse, error)

	// Get returns a bounty with its pull requests and creator.
	Get(ctx context.Context, id string) (*model.BountyResponse, error)

	// List returns all bounties.
	List(ctx context.Context) (*model.BountyListResponse, error)

	// Progress polls the code-hosting API, mirrors linked pull requests and
	// reconciles the bounty status.
	Progress(ctx context.Context, id string) (*model.ProgressResponse, error)

	// FundEscrow deposits the reward into a new escrow contract. At most one
	// funding cycle per bounty.
	FundEscrow(ctx context.Context, req *model.FundEscrowRequest) (*model.EscrowResponse, error)

	// ReleaseEscrow pays out a funded bounty's escrow to the beneficiary.
	ReleaseEscrow(ctx context.Context, req *model.ReleaseEscrowRequest) (*model.EscrowResponse, error)

	// ListForReconcile returns bounties still moving through the lifecycle,
	// for the background sweep.
	ListForReconcile(ctx context.Context, limit int) ([]model.Bounty, error)
}

type service struct {
	repo    repository.Repository
	devRepo contributorRepo.Repository
	db      *gorm.DB
	github  github.Client
	escrow  escrow.Client
	logger  *zap.SugaredLogger
}

// New creates a new bounty service instance.
func New(
	repo repository.Repository,
	devRepo contributorRepo.Repository,
	db *gorm.DB,
	githubClient github.Client,
	escrowClient escrow.Client,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:    repo,
		devRepo: devRepo,
		db:      db,
		github:  githubClient,
		escrow:  escrowClient,
		logger:  logger,
	}
}

// Create creates a bounty for the authenticated caller.
func (s *service) Create(ctx context.Context, callerID string, req *model.CreateBountyRequest) (*model.BountyResponse, error) {
	if req.Title == "" || req.Repository == "" || req.IssueNumber <= 0 ||
		req.Description == "" || req.GithubLink == "" || req.Reward == "" {
		return nil, model.ErrMissingFields
	}

	creator, err := s.devRepo.FindOrCreate(ctx, &contributorModel.Contributor{
		ExternalID: callerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert creator: %w", err)
	}

	issueURL := req.IssueURL
	if issueURL == "" {
		issueURL = req.GithubLink
	}

	bounty := &model.Bounty{
		Title:        req.Title,
		Repository:   req.Repository,
		IssueNumber:  req.IssueNumber,
		Description:  req.Description,
		GithubLink:   req.GithubLink,
		IssueURL:     issueURL,
		Keywords:     normalizeList(req.Keywords, ","),
		Requirements: normalizeList(req.Requirements, "\n"),
		Reward:       req.Reward,
		Status:       model.StatusOpen,
		CreatorID:    creator.ID,
	}

	if err := s.repo.Create(ctx, bounty); err != nil {
		return nil, err
	}

	s.logger.Infow("bounty created", "bounty_id", bounty.ID, "issue_url", bounty.IssueURL)
	return &model.BountyResponse{Bounty: *bounty}, nil
}

// normalizeList accepts a JSON array or a delimited string and returns a
// trimmed string slice.
func normalizeList(v interface{}, sep string) []string {
	switch value := v.(type) {
	case []string:
		return value
	case []interface{}:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if str, ok := item.(string); ok {
				out = append(out, strings.TrimSpace(str))
			}
		}
		return out
	case string:
		if value == "" {
			return []string{}
		}
		parts := strings.Split(value, sep)
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return []string{}
	}
}

// Get returns a bounty with its pull requests and creator.
func (s *service) Get(ctx context.Context, id string) (*model.BountyResponse, error) {
	if id == "" {
		return nil, model.ErrInvalidBountyID
	}

	bounty, err := s.repo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.BountyResponse{Bounty: *bounty}, nil
}

// List returns all bounties.
func (s *service) List(ctx context.Context) (*model.BountyListResponse, error) {
	bounties, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &model.BountyListResponse{Bounties: bounties}, nil
}

// ListForReconcile returns bounties still moving through the lifecycle.
func (s *service) ListForReconcile(ctx context.Context, limit int) ([]model.Bounty, error) {
	return s.repo.ListByStatuses(ctx, []model.Status{
		model.StatusOpen,
		model.StatusPRSubmitted,
		model.StatusInProgress,
	}, limit)
}

// Progress polls the code-hosting API, mirrors linked pull requests and
// reconciles the bounty status.
func (s *service) Progress(ctx context.Context, id string) (*model.ProgressResponse, error) {
	if id == "" {
		return nil, model.ErrInvalidBountyID
	}

	bounty, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Any upstream failure here aborts the whole reconciliation; nothing has
	// been persisted yet.
	issue, err := s.github.GetIssue(ctx, bounty.Repository, bounty.IssueNumber)
	if err != nil {
		return nil, err
	}

	items, err := s.github.SearchPullRequests(ctx, bounty.Repository, bounty.IssueNumber)
	if err != nil {
		return nil, err
	}

	// Detail fetches are best effort: one bad pull request must not hide the
	// rest.
	linked := make([]github.PullRequest, 0, len(items))
	for _, item := range items {
		if item.PullRequest == nil {
			continue
		}
		pr, prErr := s.github.GetPullRequest(ctx, item.PullRequest.URL)
		if prErr != nil {
			s.logger.Warnw("skipping pull request detail fetch",
				"bounty_id", id, "url", item.PullRequest.URL, "error", prErr)
			continue
		}
		linked = append(linked, *pr)
	}

	prStates := make([]string, 0, len(linked))
	for _, pr := range linked {
		prStates = append(prStates, pr.State)
	}
	newStatus := Reconcile(issue.State, prStates, bounty.Status)

	// Mirror and status update are one transactional unit so a crash cannot
	// leave a pull request record without the derived status change.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txPRRepo := pullrequestRepo.New(tx)
		txDevRepo := contributorRepo.New(tx)
		txRepo := repository.New(tx)

		for _, pr := range linked {
			if mirrorErr := s.mirrorPullRequest(ctx, txPRRepo, txDevRepo, bounty, pr); mirrorErr != nil {
				return mirrorErr
			}
		}

		if newStatus != bounty.Status {
			if !model.CanTransition(bounty.Status, newStatus) {
				s.logger.Warnw("disallowed status transition skipped",
					"bounty_id", id, "from", bounty.Status, "to", newStatus)
				newStatus = bounty.Status
				return nil
			}
			return txRepo.UpdateStatus(ctx, id, newStatus)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if newStatus != bounty.Status {
		s.logger.Infow("bounty status reconciled",
			"bounty_id", id, "from", bounty.Status, "to", newStatus)
	}

	return buildProgressResponse(issue, linked, newStatus), nil
}

// mirrorPullRequest persists one observed pull request if it has not been
// seen before. Existing records are never mutated on the poll path.
func (s *service) mirrorPullRequest(
	ctx context.Context,
	prRepo pullrequestRepo.Repository,
	devRepo contributorRepo.Repository,
	bounty *model.Bounty,
	pr github.PullRequest,
) error {
	// A registered contributor whose username matches the PR author owns the
	// record; the synthetic github_<login> placeholder is only for authors
	// never seen before.
	developer, err := devRepo.GetByUsername(ctx, pr.User.Login)
	if errors.Is(err, contributorModel.ErrContributorNotFound) {
		developer, err = devRepo.FindOrCreate(ctx, &contributorModel.Contributor{
			ExternalID: "github_" + pr.User.Login,
			Username:   pr.User.Login,
			ImageURL:   pr.User.AvatarURL,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to resolve developer %q: %w", pr.User.Login, err)
	}

	status := pullrequestModel.StatusSubmitted
	if pr.State == "closed" {
		status = pullrequestModel.StatusMerged
	}

	created, err := prRepo.CreateIfAbsent(ctx, &pullrequestModel.PullRequest{
		GithubPrNumber: pr.Number,
		Repo:           bounty.Repository,
		BountyID:       bounty.ID,
		DeveloperID:    developer.ID,
		Status:         status,
	})
	if err != nil {
		return fmt.Errorf("failed to mirror pull request #%d: %w", pr.Number, err)
	}

	if created {
		s.logger.Infow("pull request mirrored",
			"bounty_id", bounty.ID, "pr_number", pr.Number, "status", status)
	}

	return nil
}

// buildProgressResponse maps upstream payloads to the caller-facing view.
func buildProgressResponse(issue *github.Issue, linked []github.PullRequest, status model.Status) *model.ProgressResponse {
	issueView := model.IssueView{
		State:     issue.State,
		Title:     issue.Title,
		Number:    issue.Number,
		Assignees: make([]model.AccountSummary, 0, len(issue.Assignees)),
	}
	if issue.Assignee != nil {
		issueView.Assignee = &model.AccountSummary{
			Username: issue.Assignee.Login,
			Avatar:   issue.Assignee.AvatarURL,
		}
	}
	for _, assignee := range issue.Assignees {
		issueView.Assignees = append(issueView.Assignees, model.AccountSummary{
			Username: assignee.Login,
			Avatar:   assignee.AvatarURL,
		})
	}

	prViews := make([]model.PullRequestView, 0, len(linked))
	for _, pr := range linked {
		prViews = append(prViews, model.PullRequestView{
			Number: pr.Number,
			URL:    pr.HTMLURL,
			State:  pr.State,
			Title:  pr.Title,
			Author: model.AccountSummary{
				Username: pr.User.Login,
				Avatar:   pr.User.AvatarURL,
			},
			CreatedAt: pr.CreatedAt,
			UpdatedAt: pr.UpdatedAt,
		})
	}

	return &model.ProgressResponse{
		Issue:        issueView,
		PullRequests: prViews,
		Status:       status,
	}
}

// FundEscrow deposits the reward into a new escrow contract.
func (s *service) FundEscrow(ctx context.Context, req *model.FundEscrowRequest) (*model.EscrowResponse, error) {
	if req.BountyID == "" || req.Amount == "" || req.BeneficiaryWallet == "" {
		return nil, model.ErrMissingFields
	}

	bounty, err := s.repo.GetByID(ctx, req.BountyID)
	if err != nil {
		return nil, err
	}

	if bounty.EscrowContractID != nil {
		return nil, model.ErrEscrowAlreadyCreated
	}

	result, err := s.escrow.Fund(ctx, req.Amount, req.BeneficiaryWallet)
	if err != nil {
		return nil, err
	}

	if !result.OK {
		// Gateway refused; the bounty is left in its pre-call state.
		s.logger.Warnw("escrow fund rejected", "bounty_id", req.BountyID, "error", result.Error)
		return &model.EscrowResponse{OK: false, Error: result.Error}, model.ErrEscrowRejected
	}

	if err := s.repo.SetEscrow(ctx, req.BountyID, result.ContractID, req.BeneficiaryWallet); err != nil {
		return nil, err
	}

	s.logger.Infow("escrow funded",
		"bounty_id", req.BountyID, "contract_id", result.ContractID, "tx_hash", result.TxHash)

	return &model.EscrowResponse{
		OK:         true,
		TxHash:     result.TxHash,
		ContractID: result.ContractID,
	}, nil
}

// ReleaseEscrow pays out a funded bounty's escrow to the beneficiary.
func (s *service) ReleaseEscrow(ctx context.Context, req *model.ReleaseEscrowRequest) (*model.EscrowResponse, error) {
	if req.BountyID == "" {
		return nil, model.ErrMissingFields
	}

	bounty, err := s.repo.GetByID(ctx, req.BountyID)
	if err != nil {
		// An unknown bounty and an unfunded bounty are the same failure for
		// the caller.
		if errors.Is(err, model.ErrBountyNotFound) {
			return nil, model.ErrEscrowNotFound
		}
		return nil, err
	}

	if bounty.EscrowContractID == nil {
		return nil, model.ErrEscrowNotFound
	}

	result, err := s.escrow.Release(ctx, *bounty.EscrowContractID)
	if err != nil {
		return nil, err
	}

	if !result.OK {
		s.logger.Warnw("escrow release rejected", "bounty_id", req.BountyID, "error", result.Error)
		return &model.EscrowResponse{OK: false, Error: result.Error}, model.ErrEscrowRejected
	}

	if model.CanTransition(bounty.Status, model.StatusPaid) {
		if err := s.repo.UpdateStatus(ctx, req.BountyID, model.StatusPaid); err != nil {
			return nil, err
		}
	} else if bounty.Status != model.StatusPaid {
		s.logger.Warnw("release succeeded but PAID transition disallowed",
			"bounty_id", req.BountyID, "from", bounty.Status)
	}

	s.logger.Infow("escrow released", "bounty_id", req.BountyID, "tx_hash", result.TxHash)

	return &model.EscrowResponse{OK: true, TxHash: result.TxHash}, nil
}
