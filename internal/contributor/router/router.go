// Package router provides contributor module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bountyRepo "github.com/starbounty/bounty-service/internal/bounty/repository"
	"github.com/starbounty/bounty-service/internal/contributor/handler"
	"github.com/starbounty/bounty-service/internal/contributor/repository"
	"github.com/starbounty/bounty-service/internal/contributor/service"
	"github.com/starbounty/bounty-service/internal/github"
	"github.com/starbounty/bounty-service/internal/middleware"
	pullrequestRepo "github.com/starbounty/bounty-service/internal/pullrequest/repository"
)

// RegisterRoutes registers contributor module routes.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	githubClient github.Client,
	logger *zap.SugaredLogger,
) {
	repo := repository.New(db)
	prRepo := pullrequestRepo.New(db)
	bounties := bountyRepo.New(db)
	svc := service.New(repo, prRepo, bounties, githubClient, logger)
	h := handler.New(svc, logger)

	users := r.Group("/users", middleware.Auth())
	{
		users.POST("/register", h.Register)
		users.GET("/me", h.Profile)
		users.POST("/wallet", h.BindWallet)
		users.GET("/me/bounties", h.MyBounties)
	}
}
