package adaptor

import (
	"net/http"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/usecase"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportHandler struct {
	service *usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service *usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// reportWindow reads optional from/to date bounds off the query string.
// The to bound is pushed to end of day so it stays inclusive.
func reportWindow(r *http.Request) (repository.ReportWindow, bool) {
	var window repository.ReportWindow
	query := r.URL.Query()

	if from := query.Get("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return window, false
		}
		window.From = &parsed
	}
	if to := query.Get("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return window, false
		}
		endOfDay := parsed.Add(24*time.Hour - time.Nanosecond)
		window.To = &endOfDay
	}

	return window, true
}

func (h *ReportHandler) wineryAndWindow(w http.ResponseWriter, r *http.Request) (uuid.UUID, repository.ReportWindow, bool) {
	wineryID, ok := utils.GetWineryIDFromContext(r.Context())
	if !ok {
		utils.ResponseForbidden(w, "Winery account required")
		return uuid.Nil, repository.ReportWindow{}, false
	}

	window, ok := reportWindow(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid date bounds", nil)
		return uuid.Nil, repository.ReportWindow{}, false
	}

	return wineryID, window, true
}

// Report handles GET /api/winery/reports, the full dashboard bundle.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	wineryID, window, ok := h.wineryAndWindow(w, r)
	if !ok {
		return
	}

	report, err := h.service.Report(r.Context(), wineryID, window)
	if err != nil {
		handleServiceError(w, h.log, err, "winery report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// ReservationsByEvent handles GET /api/winery/reports/reservations-by-event
func (h *ReportHandler) ReservationsByEvent(w http.ResponseWriter, r *http.Request) {
	wineryID, window, ok := h.wineryAndWindow(w, r)
	if !ok {
		return
	}

	report, err := h.service.ReservationsByEvent(r.Context(), wineryID, window)
	if err != nil {
		handleServiceError(w, h.log, err, "reservations by event report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// ReservationsByMonth handles GET /api/winery/reports/reservations-by-month
func (h *ReportHandler) ReservationsByMonth(w http.ResponseWriter, r *http.Request) {
	wineryID, window, ok := h.wineryAndWindow(w, r)
	if !ok {
		return
	}

	report, err := h.service.ReservationsByMonth(r.Context(), wineryID, window)
	if err != nil {
		handleServiceError(w, h.log, err, "reservations by month report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// AttendeeLanguages handles GET /api/winery/reports/attendees-languages
func (h *ReportHandler) AttendeeLanguages(w http.ResponseWriter, r *http.Request) {
	wineryID, window, ok := h.wineryAndWindow(w, r)
	if !ok {
		return
	}

	report, err := h.service.AttendeeLanguages(r.Context(), wineryID, window)
	if err != nil {
		handleServiceError(w, h.log, err, "attendee languages report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// AttendeeCountries handles GET /api/winery/reports/attendees-countries
func (h *ReportHandler) AttendeeCountries(w http.ResponseWriter, r *http.Request) {
	wineryID, window, ok := h.wineryAndWindow(w, r)
	if !ok {
		return
	}

	report, err := h.service.AttendeeCountries(r.Context(), wineryID, window)
	if err != nil {
		handleServiceError(w, h.log, err, "attendee countries report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// AttendeeAgeGroups handles GET /api/winery/reports/attendees-age-groups
func (h *ReportHandler) AttendeeAgeGroups(w http.ResponseWriter, r *http.Request) {
	wineryID, window, ok := h.wineryAndWindow(w, r)
	if !ok {
		return
	}

	report, err := h.service.AttendeeAgeGroups(r.Context(), wineryID, window)
	if err != nil {
		handleServiceError(w, h.log, err, "attendee age groups report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// EventsByRating handles GET /api/winery/reports/events-by-rating
func (h *ReportHandler) EventsByRating(w http.ResponseWriter, r *http.Request) {
	wineryID, window, ok := h.wineryAndWindow(w, r)
	if !ok {
		return
	}

	report, err := h.service.EventsByRating(r.Context(), wineryID, window)
	if err != nil {
		handleServiceError(w, h.log, err, "events by rating report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}

// EarningsByEvent handles GET /api/winery/reports/reservations-by-earnings
func (h *ReportHandler) EarningsByEvent(w http.ResponseWriter, r *http.Request) {
	wineryID, window, ok := h.wineryAndWindow(w, r)
	if !ok {
		return
	}

	report, err := h.service.EarningsByEvent(r.Context(), wineryID, window)
	if err != nil {
		handleServiceError(w, h.log, err, "earnings by event report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}
