package usecase

import (
	"biz-directory/internal/data/repository"
	"biz-directory/pkg/cache"
	"biz-directory/pkg/mailer"
	"biz-directory/pkg/storage"
	"biz-directory/pkg/token"
	"biz-directory/pkg/utils"

	"go.uber.org/zap"
)

// Deps are the infrastructure adapters the services talk to.
type Deps struct {
	Tokens   *token.Manager
	Denylist cache.TokenDenylist
	Blobs    storage.BlobStore
	QR       CodeRenderer
	Notifier mailer.Notifier
}

type Service struct {
	Auth     AuthService
	Identity IdentityService
	Category CategoryService
	Business BusinessService
	Offer    OfferService
	Mail     MailService
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	mail := NewMailService(deps.Notifier, config.Email, log)

	return &Service{
		Auth:     NewAuthService(repo, deps.Tokens, deps.Denylist, mail, log),
		Identity: NewIdentityService(repo, deps.Blobs, log),
		Category: NewCategoryService(repo, log),
		Business: NewBusinessService(repo, deps.Blobs, log),
		Offer:    NewOfferService(repo, deps.Blobs, deps.QR, config.App.PublicURL, log),
		Mail:     mail,
	}
}
