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

type WineHandler struct {
	service *usecase.WineService
	log     *zap.Logger
}

func NewWineHandler(service *usecase.WineService, log *zap.Logger) *WineHandler {
	return &WineHandler{
		service: service,
		log:     log.With(zap.String("handler", "wine")),
	}
}

// CreateLine handles POST /api/winery/wine-lines (protected, winery accounts)
func (h *WineHandler) CreateLine(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	var req request.CreateWineLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	line, err := h.service.CreateLine(r.Context(), wineryID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create wine line")
		return
	}

	utils.ResponseCreated(w, "success", line)
}

// ListLines handles GET /api/wineries/{id}/wine-lines (public)
func (h *WineHandler) ListLines(w http.ResponseWriter, r *http.Request) {
	wineryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid winery ID", nil)
		return
	}

	lines, err := h.service.ListLines(r.Context(), wineryID)
	if err != nil {
		handleServiceError(w, h.log, err, "list wine lines")
		return
	}

	utils.ResponseSuccess(w, "success", lines)
}

// UpdateLine handles PUT /api/winery/wine-lines/{id} (protected, winery accounts)
func (h *WineHandler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid wine line ID", nil)
		return
	}

	var req request.CreateWineLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	line, err := h.service.UpdateLine(r.Context(), wineryID, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update wine line")
		return
	}

	utils.ResponseSuccess(w, "success", line)
}

// CreateWine handles POST /api/winery/wines (protected, winery accounts)
func (h *WineHandler) CreateWine(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	var req request.CreateWineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	wine, err := h.service.CreateWine(r.Context(), wineryID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create wine")
		return
	}

	utils.ResponseCreated(w, "success", wine)
}

// ListWines handles GET /api/wine-lines/{id}/wines (public)
func (h *WineHandler) ListWines(w http.ResponseWriter, r *http.Request) {
	lineID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid wine line ID", nil)
		return
	}

	wines, err := h.service.ListWines(r.Context(), lineID)
	if err != nil {
		handleServiceError(w, h.log, err, "list wines")
		return
	}

	utils.ResponseSuccess(w, "success", wines)
}
