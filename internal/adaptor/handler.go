package adaptor

import (
	"errors"
	"net/http"

	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/schedule"
	"github.com/eliasjuanpablo/wineapi/internal/usecase"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Winery      *WineryHandler
	Event       *EventHandler
	Reservation *ReservationHandler
	Report      *ReportHandler
	Wine        *WineHandler
	Taxonomy    *TaxonomyHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Winery:      NewWineryHandler(service.Winery, log),
		Event:       NewEventHandler(service.Event, service.Rate, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Report:      NewReportHandler(service.Report, log),
		Wine:        NewWineHandler(service.Wine, log),
		Taxonomy:    NewTaxonomyHandler(service.Taxonomy, log),
	}
}

// handleServiceError maps service errors onto the response envelope.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound) || errors.Is(err, repository.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrEmailTaken) || errors.Is(err, usecase.ErrWineryRequired):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, repository.ErrNoVacancy) || errors.Is(err, repository.ErrCancelled):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, schedule.ErrEndBeforeStart) ||
		errors.Is(err, schedule.ErrMissingWeekdays) ||
		errors.Is(err, schedule.ErrInvalidWeekday) ||
		errors.Is(err, schedule.ErrEndTimeBeforeStartTime):
		log.Warn(operation+" failed - invalid schedule", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
