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

type ReservationHandler struct {
	service *usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service *usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// Create handles POST /api/reservations (protected)
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.Reserve(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// ListMine handles GET /api/reservations (protected)
func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	page := utils.ParseInt(query.Get("page"), 1)
	pageSize := utils.ParseInt(query.Get("page_size"), 10)

	reservations, err := h.service.ListMine(r.Context(), userID, page, pageSize)
	if err != nil {
		handleServiceError(w, h.log, err, "list reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// Cancel handles POST /api/reservations/{id}/cancel (protected)
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid reservation ID", nil)
		return
	}

	var req request.CancelRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	reservation, err := h.service.Cancel(r.Context(), userID, id, req.Reason)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// CancelForWinery handles POST /api/winery/reservations/{id}/cancel
// (protected, winery accounts)
func (h *ReservationHandler) CancelForWinery(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid reservation ID", nil)
		return
	}

	var req request.CancelRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	reservation, err := h.service.CancelForWinery(r.Context(), wineryID, id, req.Reason)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel reservation for winery")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// ListForWinery handles GET /api/winery/reservations (protected, winery accounts)
func (h *ReservationHandler) ListForWinery(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	query := r.URL.Query()
	page := utils.ParseInt(query.Get("page"), 1)
	pageSize := utils.ParseInt(query.Get("page_size"), 10)

	reservations, err := h.service.ListForWinery(r.Context(), wineryID, page, pageSize)
	if err != nil {
		handleServiceError(w, h.log, err, "list winery reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// ListForOccurrence handles GET /api/winery/occurrences/{id}/reservations (protected, winery accounts)
func (h *ReservationHandler) ListForOccurrence(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid occurrence ID", nil)
		return
	}

	reservations, err := h.service.ListForOccurrence(r.Context(), wineryID, id)
	if err != nil {
		handleServiceError(w, h.log, err, "list occurrence reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}
