// internal/transport/http/handlers.go
package http

import (
	"turbo-admin/internal/media"
	"turbo-admin/internal/service"
	"turbo-admin/internal/settings"
)

// Handler bundles the service dependencies for all route groups.
type Handler struct {
	blog       *service.BlogService
	accounts   *service.AccountService
	newsletter *service.NewsletterService
	gateway    *settings.Gateway
	staging    *media.Staging
	syncer     *media.Syncer
}

func NewHandler(
	blog *service.BlogService,
	accounts *service.AccountService,
	newsletter *service.NewsletterService,
	gateway *settings.Gateway,
	staging *media.Staging,
	syncer *media.Syncer,
) *Handler {
	return &Handler{
		blog:       blog,
		accounts:   accounts,
		newsletter: newsletter,
		gateway:    gateway,
		staging:    staging,
		syncer:     syncer,
	}
}
