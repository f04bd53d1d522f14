// Package router provides webhook routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	bountyRepo "github.com/starbounty/bounty-service/internal/bounty/repository"
	contributorRepo "github.com/starbounty/bounty-service/internal/contributor/repository"
	pullrequestRepo "github.com/starbounty/bounty-service/internal/pullrequest/repository"
	"github.com/starbounty/bounty-service/internal/webhook/handler"
	"github.com/starbounty/bounty-service/internal/webhook/service"
)

// RegisterRoutes registers the GitHub webhook route.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, webhookSecret string, logger *zap.SugaredLogger) {
	svc := service.New(
		db,
		bountyRepo.New(db),
		pullrequestRepo.New(db),
		contributorRepo.New(db),
		logger,
	)
	h := handler.New(svc, webhookSecret, logger)

	r.POST("/webhooks/github", h.Handle)
}
