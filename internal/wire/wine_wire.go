package wire

import (
	"github.com/eliasjuanpablo/wineapi/internal/adaptor"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWine(
	r chi.Router,
	wineHandler *adaptor.WineHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Get("/api/wineries/{id}/wine-lines", wineHandler.ListLines)
	r.Get("/api/wine-lines/{id}/wines", wineHandler.ListWines)

	// Winery account routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireWinery)

		r.Post("/api/winery/wine-lines", wineHandler.CreateLine)
		r.Put("/api/winery/wine-lines/{id}", wineHandler.UpdateLine)
		r.Post("/api/winery/wines", wineHandler.CreateWine)
	})
}
