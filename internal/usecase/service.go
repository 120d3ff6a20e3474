package usecase

import (
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        *AuthService
	Winery      *WineryService
	Event       *EventService
	Reservation *ReservationService
	Rate        *RateService
	Report      *ReportService
	Wine        *WineService
	Taxonomy    *TaxonomyService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(repo.User, repo.Session, repo.Winery, config, log),
		Winery:      NewWineryService(repo.Winery, log),
		Event:       NewEventService(repo.Event, repo.Occurrence, repo.Rate, repo.Winery, config, log),
		Reservation: NewReservationService(repo.Reservation, repo.Occurrence, repo.Event, config, log),
		Rate:        NewRateService(repo.Rate, repo.Event, log),
		Report:      NewReportService(repo.Report, log),
		Wine:        NewWineService(repo.WineLine, repo.Wine, log),
		Taxonomy:    NewTaxonomyService(repo.Taxonomy, log),
	}
}
