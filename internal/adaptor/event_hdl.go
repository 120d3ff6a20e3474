package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/dto/request"
	"github.com/eliasjuanpablo/wineapi/internal/usecase"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventHandler struct {
	service *usecase.EventService
	rates   *usecase.RateService
	log     *zap.Logger
}

func NewEventHandler(service *usecase.EventService, rates *usecase.RateService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		rates:   rates,
		log:     log.With(zap.String("handler", "event")),
	}
}

func listFilter(r *http.Request, restaurants bool) repository.EventFilter {
	query := r.URL.Query()
	filter := repository.EventFilter{
		Search:      query.Get("search"),
		Restaurants: restaurants,
	}
	if categories := query.Get("categories"); categories != "" {
		filter.Categories = strings.Split(categories, ",")
	}
	if tags := query.Get("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}
	return filter
}

// List handles GET /api/events (public, restaurants excluded)
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListRestaurants handles GET /api/restaurants (public)
func (h *EventHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *EventHandler) list(w http.ResponseWriter, r *http.Request, restaurants bool) {
	query := r.URL.Query()
	page := utils.ParseInt(query.Get("page"), 1)
	pageSize := utils.ParseInt(query.Get("page_size"), 10)

	events, err := h.service.ListPublic(r.Context(), listFilter(r, restaurants), page, pageSize)
	if err != nil {
		handleServiceError(w, h.log, err, "list events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// ListByWinery handles GET /api/wineries/{id}/events (public)
func (h *EventHandler) ListByWinery(w http.ResponseWriter, r *http.Request) {
	h.listByWinery(w, r, false)
}

// ListRestaurantsByWinery handles GET /api/wineries/{id}/restaurants (public)
func (h *EventHandler) ListRestaurantsByWinery(w http.ResponseWriter, r *http.Request) {
	h.listByWinery(w, r, true)
}

func (h *EventHandler) listByWinery(w http.ResponseWriter, r *http.Request, restaurants bool) {
	wineryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid winery ID", nil)
		return
	}

	events, err := h.service.ListPublicByWinery(r.Context(), wineryID, restaurants)
	if err != nil {
		handleServiceError(w, h.log, err, "list winery events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// ListOccurrences handles GET /api/events/{id}/occurrences (public)
func (h *EventHandler) ListOccurrences(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event ID", nil)
		return
	}

	occurrences, err := h.service.ListOccurrences(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "list event occurrences")
		return
	}

	utils.ResponseSuccess(w, "success", occurrences)
}

// Get handles GET /api/events/{id} (public)
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event ID", nil)
		return
	}

	event, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// Create handles POST /api/winery/events (protected, winery accounts)
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	var req request.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	event, err := h.service.Create(r.Context(), wineryID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create event")
		return
	}

	utils.ResponseCreated(w, "success", event)
}

// ListOwned handles GET /api/winery/events (protected, winery accounts)
func (h *EventHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	restaurants := r.URL.Query().Get("restaurants") == "true"
	events, err := h.service.ListByWinery(r.Context(), wineryID, restaurants)
	if err != nil {
		handleServiceError(w, h.log, err, "list winery events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetOwned handles GET /api/winery/events/{id} (protected, winery accounts)
func (h *EventHandler) GetOwned(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event ID", nil)
		return
	}

	event, err := h.service.GetOwned(r.Context(), wineryID, id)
	if err != nil {
		handleServiceError(w, h.log, err, "get winery event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// Update handles PUT /api/winery/events/{id} (protected, winery accounts)
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event ID", nil)
		return
	}

	var req request.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	event, err := h.service.Update(r.Context(), wineryID, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// Cancel handles POST /api/winery/events/{id}/cancel (protected, winery accounts)
func (h *EventHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event ID", nil)
		return
	}

	var req request.CancelRequest
	if r.Body != nil {
		// A missing or empty body means the default reason.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	event, err := h.service.Cancel(r.Context(), wineryID, id, req.Reason)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// AddSchedule handles POST /api/winery/events/{id}/schedules (protected, winery accounts)
func (h *EventHandler) AddSchedule(w http.ResponseWriter, r *http.Request) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event ID", nil)
		return
	}

	var req struct {
		request.ScheduleRequest
		Vacancies int `json:"vacancies" validate:"required,min=1"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	occurrences, err := h.service.AddSchedule(r.Context(), wineryID, id, req.ScheduleRequest, req.Vacancies)
	if err != nil {
		handleServiceError(w, h.log, err, "add schedule")
		return
	}

	utils.ResponseCreated(w, "success", occurrences)
}

// UpdateOccurrence handles PUT /api/winery/occurrences/{id} (protected, winery accounts)
func (h *EventHandler) UpdateOccurrence(w http.ResponseWriter, r *http.Request) {
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

	var req request.UpdateOccurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	occurrence, err := h.service.UpdateOccurrence(r.Context(), wineryID, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update occurrence")
		return
	}

	utils.ResponseSuccess(w, "success", occurrence)
}

// CancelOccurrence handles POST /api/winery/occurrences/{id}/cancel (protected, winery accounts)
func (h *EventHandler) CancelOccurrence(w http.ResponseWriter, r *http.Request) {
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

	var req request.CancelRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	occurrence, err := h.service.CancelOccurrence(r.Context(), wineryID, id, req.Reason)
	if err != nil {
		handleServiceError(w, h.log, err, "cancel occurrence")
		return
	}

	utils.ResponseSuccess(w, "success", occurrence)
}

// Rate handles POST /api/events/{id}/rates (protected)
func (h *EventHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event ID", nil)
		return
	}

	var req request.CreateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	rate, err := h.rates.Rate(r.Context(), userID, id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "rate event")
		return
	}

	utils.ResponseCreated(w, "success", rate)
}

// ListRates handles GET /api/events/{id}/rates (public)
func (h *EventHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event ID", nil)
		return
	}

	query := r.URL.Query()
	page := utils.ParseInt(query.Get("page"), 1)
	pageSize := utils.ParseInt(query.Get("page_size"), 10)

	rates, err := h.rates.ListByEvent(r.Context(), id, page, pageSize)
	if err != nil {
		handleServiceError(w, h.log, err, "list event rates")
		return
	}

	utils.ResponseSuccess(w, "success", rates)
}
