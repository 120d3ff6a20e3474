package adaptor

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/eliasjuanpablo/wineapi/internal/dto/request"
	"github.com/eliasjuanpablo/wineapi/internal/dto/response"
	"github.com/eliasjuanpablo/wineapi/internal/usecase"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"go.uber.org/zap"
)

type TaxonomyHandler struct {
	service *usecase.TaxonomyService
	log     *zap.Logger
}

func NewTaxonomyHandler(service *usecase.TaxonomyService, log *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		service: service,
		log:     log.With(zap.String("handler", "taxonomy")),
	}
}

func (h *TaxonomyHandler) list(w http.ResponseWriter, r *http.Request, what string, fetch func(context.Context) ([]response.NamedResponse, error)) {
	items, err := fetch(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list "+what)
		return
	}
	utils.ResponseSuccess(w, "success", items)
}

// Countries handles GET /api/countries (public)
func (h *TaxonomyHandler) Countries(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "countries", h.service.Countries)
}

// Languages handles GET /api/languages (public)
func (h *TaxonomyHandler) Languages(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "languages", h.service.Languages)
}

// Genders handles GET /api/genders (public)
func (h *TaxonomyHandler) Genders(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "genders", h.service.Genders)
}

// Varietals handles GET /api/varietals (public)
func (h *TaxonomyHandler) Varietals(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "varietals", h.service.Varietals)
}

// Categories handles GET /api/categories (public)
func (h *TaxonomyHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "categories", h.service.Categories)
}

// Tags handles GET /api/tags (public)
func (h *TaxonomyHandler) Tags(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "tags", h.service.Tags)
}

func (h *TaxonomyHandler) create(w http.ResponseWriter, r *http.Request, what string, create func(context.Context, string) (*response.NamedResponse, error)) {
	var req request.CreateNamedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	item, err := create(r.Context(), req.Name)
	if err != nil {
		handleServiceError(w, h.log, err, "create "+what)
		return
	}

	utils.ResponseCreated(w, "success", item)
}

// CreateVarietal handles POST /api/admin/varietals (protected, admin)
func (h *TaxonomyHandler) CreateVarietal(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, "varietal", h.service.CreateVarietal)
}

// CreateCategory handles POST /api/admin/categories (protected, admin)
func (h *TaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, "category", h.service.CreateCategory)
}

// CreateTag handles POST /api/admin/tags (protected, admin)
func (h *TaxonomyHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, "tag", h.service.CreateTag)
}
