package wire

import (
	"github.com/eliasjuanpablo/wineapi/internal/adaptor"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Get("/api/events", eventHandler.List)
	r.Get("/api/restaurants", eventHandler.ListRestaurants)
	r.Get("/api/events/{id}", eventHandler.Get)
	r.Get("/api/events/{id}/occurrences", eventHandler.ListOccurrences)
	r.Get("/api/events/{id}/rates", eventHandler.ListRates)
	r.Get("/api/wineries/{id}/events", eventHandler.ListByWinery)
	r.Get("/api/wineries/{id}/restaurants", eventHandler.ListRestaurantsByWinery)

	// Any authenticated user may rate
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/events/{id}/rates", eventHandler.Rate)
	})

	// Winery account routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireWinery)

		r.Post("/api/winery/events", eventHandler.Create)
		r.Get("/api/winery/events", eventHandler.ListOwned)
		r.Get("/api/winery/events/{id}", eventHandler.GetOwned)
		r.Put("/api/winery/events/{id}", eventHandler.Update)
		r.Post("/api/winery/events/{id}/cancel", eventHandler.Cancel)
		r.Post("/api/winery/events/{id}/schedules", eventHandler.AddSchedule)
		r.Put("/api/winery/occurrences/{id}", eventHandler.UpdateOccurrence)
		r.Post("/api/winery/occurrences/{id}/cancel", eventHandler.CancelOccurrence)
	})
}
