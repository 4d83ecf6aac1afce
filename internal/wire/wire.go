// internal/wire/wire.go
package wire

import (
	"net/http"

	"biz-directory/internal/adaptor"
	"biz-directory/internal/usecase"
	"biz-directory/pkg/middleware"
	"biz-directory/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP surface.
type App struct {
	Router *chi.Mux
}

// Options carries the optional pieces of the router.
type Options struct {
	// DB backs the health check; nil reports healthy without a ping.
	DB adaptor.Pinger
	// Static serves locally stored blobs under config.Storage.PublicPrefix.
	Static http.Handler
}

// Wiring builds handlers and routes on top of the services.
func Wiring(service *usecase.Service, opts Options, config *utils.Config, logger *zap.Logger) *App {
	handler := adaptor.NewHandler(service, opts.DB, logger)
	router := setupRouter(handler, service, opts, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	opts Options,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	auth := middleware.AuthJWT(service.Auth, logger)

	wireAuth(r, handler.Auth, auth)
	wireIdentity(r, handler.Identity, auth)
	wireCategory(r, handler.Category, auth)
	wireBusiness(r, handler.Business, auth, logger)
	wireOffer(r, handler.Offer, auth, logger)
	wireMail(r, handler.Mail)

	r.Get("/health", handler.Health.Check)

	if opts.Static != nil && config.Storage.PublicPrefix != "" {
		prefix := config.Storage.PublicPrefix
		r.Handle(prefix+"/*", http.StripPrefix(prefix, opts.Static))
	}

	return r
}
