package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/eliasjuanpablo/wineapi/internal/dto/request"
	"github.com/eliasjuanpablo/wineapi/internal/usecase"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WineryHandler struct {
	service *usecase.WineryService
	log     *zap.Logger
}

func NewWineryHandler(service *usecase.WineryService, log *zap.Logger) *WineryHandler {
	return &WineryHandler{
		service: service,
		log:     log.With(zap.String("handler", "winery")),
	}
}

// List handles GET /api/wineries (public, approved wineries only)
func (h *WineryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := utils.ParseInt(query.Get("page"), 1)
	pageSize := utils.ParseInt(query.Get("page_size"), 10)

	wineries, err := h.service.List(r.Context(), query.Get("search"), page, pageSize)
	if err != nil {
		handleServiceError(w, h.log, err, "list wineries")
		return
	}

	utils.ResponseSuccess(w, "success", wineries)
}

// Get handles GET /api/wineries/{id} (public)
func (h *WineryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid winery ID", nil)
		return
	}

	winery, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get winery")
		return
	}

	utils.ResponseSuccess(w, "success", winery)
}

// Nearby handles GET /api/wineries/nearby?lat=&lng=&radius= (public)
func (h *WineryHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat := utils.ParseFloat(query.Get("lat"), 0)
	lng := utils.ParseFloat(query.Get("lng"), 0)
	radius := utils.ParseFloat(query.Get("radius"), 100)

	wineries, err := h.service.Nearby(r.Context(), lat, lng, radius)
	if err != nil {
		handleServiceError(w, h.log, err, "find nearby wineries")
		return
	}

	utils.ResponseSuccess(w, "success", wineries)
}

// Update handles PUT /api/winery (protected, winery accounts)
func (h *WineryHandler) Update(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	var req request.UpdateWineryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	winery, err := h.service.Update(r.Context(), wineryID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update winery")
		return
	}

	utils.ResponseSuccess(w, "success", winery)
}

// ListPending handles GET /api/admin/wineries/pending (protected, admin)
func (h *WineryHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	wineries, err := h.service.ListPending(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list pending wineries")
		return
	}

	utils.ResponseSuccess(w, "success", wineries)
}

// Approve handles POST /api/admin/wineries/{id}/approve (protected, admin)
func (h *WineryHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid winery ID", nil)
		return
	}

	winery, err := h.service.Approve(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "approve winery")
		return
	}

	utils.ResponseSuccess(w, "success", winery)
}
