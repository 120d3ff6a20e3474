package wire

import (
	"github.com/eliasjuanpablo/wineapi/internal/adaptor"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTaxonomy(
	r chi.Router,
	taxonomyHandler *adaptor.TaxonomyHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Get("/api/countries", taxonomyHandler.Countries)
	r.Get("/api/languages", taxonomyHandler.Languages)
	r.Get("/api/genders", taxonomyHandler.Genders)
	r.Get("/api/varietals", taxonomyHandler.Varietals)
	r.Get("/api/categories", taxonomyHandler.Categories)
	r.Get("/api/tags", taxonomyHandler.Tags)

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.RequireAdmin)

		r.Post("/api/admin/varietals", taxonomyHandler.CreateVarietal)
		r.Post("/api/admin/categories", taxonomyHandler.CreateCategory)
		r.Post("/api/admin/tags", taxonomyHandler.CreateTag)
	})
}
