package repository

import (
	"github.com/eliasjuanpablo/wineapi/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Session     SessionRepository
	Winery      WineryRepository
	Event       EventRepository
	Occurrence  OccurrenceRepository
	Reservation ReservationRepository
	Rate        RateRepository
	WineLine    WineLineRepository
	Wine        WineRepository
	Taxonomy    TaxonomyRepository
	Report      ReportRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Winery:      NewWineryRepository(db, log),
		Event:       NewEventRepository(db, log),
		Occurrence:  NewOccurrenceRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Rate:        NewRateRepository(db, log),
		WineLine:    NewWineLineRepository(db, log),
		Wine:        NewWineRepository(db, log),
		Taxonomy:    NewTaxonomyRepository(db, log),
		Report:      NewReportRepository(db, log),
	}
}
