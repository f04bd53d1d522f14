// Package router provides bounty module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/starbounty/bounty-service/internal/bounty/handler"
	"github.com/starbounty/bounty-service/internal/bounty/repository"
	"github.com/starbounty/bounty-service/internal/bounty/service"
	contributorRepo "github.com/starbounty/bounty-service/internal/contributor/repository"
	"github.com/starbounty/bounty-service/internal/escrow"
	"github.com/starbounty/bounty-service/internal/github"
	"github.com/starbounty/bounty-service/internal/middleware"
)

// RegisterRoutes registers bounty and escrow module routes.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	githubClient github.Client,
	escrowClient escrow.Client,
	logger *zap.SugaredLogger,
) service.Service {
	repo := repository.New(db)
	devRepo := contributorRepo.New(db)
	svc := service.New(repo, devRepo, db, githubClient, escrowClient, logger)
	h := handler.New(svc, logger)

	r.POST("/bounties", middleware.Auth(), h.Create)
	r.GET("/bounties", h.List)
	r.GET("/bounties/:id", h.Get)
	r.POST("/bounties/:id/progress", h.Progress)

	r.POST("/escrow/fund", middleware.Auth(), h.FundEscrow)
	r.POST("/escrow/release", middleware.Auth(), h.ReleaseEscrow)

	return svc
}
