package wire

import (
	"github.com/eliasjuanpablo/wineapi/internal/adaptor"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Tourist routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		r.Post("/api/reservations", reservationHandler.Create)
		r.Get("/api/reservations", reservationHandler.ListMine)
		r.Post("/api/reservations/{id}/cancel", reservationHandler.Cancel)
	})

	// Winery account routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireWinery)

		r.Get("/api/winery/reservations", reservationHandler.ListForWinery)
		r.Post("/api/winery/reservations/{id}/cancel", reservationHandler.CancelForWinery)
		r.Get("/api/winery/occurrences/{id}/reservations", reservationHandler.ListForOccurrence)
	})
}
