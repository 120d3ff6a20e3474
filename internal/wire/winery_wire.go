package wire

import (
	"github.com/eliasjuanpablo/wineapi/internal/adaptor"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWinery(
	r chi.Router,
	wineryHandler *adaptor.WineryHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes. The nearby route must register before {id} so chi does
	// not swallow it as a parameter.
	r.Get("/api/wineries/nearby", wineryHandler.Nearby)
	r.Get("/api/wineries", wineryHandler.List)
	r.Get("/api/wineries/{id}", wineryHandler.Get)

	// Winery account routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireWinery)

		r.Put("/api/winery", wineryHandler.Update)
	})

	// Admin routes
	r.Route("/api/admin/wineries", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireAdmin)

		r.Get("/pending", wineryHandler.ListPending)
		r.Post("/{id}/approve", wineryHandler.Approve)
	})
}
