package wire

import (
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/adaptor"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/pkg/middleware"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireReport(
	r chi.Router,
	reportHandler *adaptor.ReportHandler,
	repo *repository.Repository,
	config *utils.Config,
	redisClient *redis.Client,
	log *zap.Logger,
) {
	cacheTTL := time.Duration(config.Redis.ReportCacheTTL) * time.Second

	r.Route("/api/winery/reports", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireWinery)
		r.Use(middleware.CacheResponse(redisClient, cacheTTL, log))

		r.Get("/", reportHandler.Report)
		r.Get("/reservations-by-event", reportHandler.ReservationsByEvent)
		r.Get("/reservations-by-month", reportHandler.ReservationsByMonth)
		r.Get("/attendees-languages", reportHandler.AttendeeLanguages)
		r.Get("/attendees-countries", reportHandler.AttendeeCountries)
		r.Get("/attendees-age-groups", reportHandler.AttendeeAgeGroups)
		r.Get("/events-by-rating", reportHandler.EventsByRating)
		r.Get("/reservations-by-earnings", reportHandler.EarningsByEvent)
	})
}
