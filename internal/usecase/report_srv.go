package usecase

import (
	"context"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Age group bounds in whole years. Attendees younger than youngMin are not
// counted in any bucket.
const (
	youngMin  = 18
	midageMin = 35
	oldMin    = 50
)

type ReportService struct {
	reports repository.ReportRepository
	log     *zap.Logger
}

func NewReportService(reports repository.ReportRepository, log *zap.Logger) *ReportService {
	return &ReportService{
		reports: reports,
		log:     log.With(zap.String("service", "report")),
	}
}

// Report assembles every dashboard view for one winery in a single bundle.
func (s *ReportService) Report(ctx context.Context, wineryID uuid.UUID, window repository.ReportWindow) (*response.ReportBundle, error) {
	byEvent, err := s.ReservationsByEvent(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.ReservationsByMonth(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}
	languages, err := s.AttendeeLanguages(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}
	countries, err := s.AttendeeCountries(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}
	ageGroups, err := s.AttendeeAgeGroups(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}
	ratings, err := s.EventsByRating(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}
	earnings, err := s.EarningsByEvent(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}

	return &response.ReportBundle{
		ReservationsByEvent:    byEvent,
		ReservationsByMonth:    byMonth,
		AttendeesLanguages:     languages,
		AttendeesCountries:     countries,
		AttendeesAgeGroups:     ageGroups,
		EventsByRating:         ratings,
		ReservationsByEarnings: earnings,
	}, nil
}

func (s *ReportService) ReservationsByEvent(ctx context.Context, wineryID uuid.UUID, window repository.ReportWindow) ([]response.CountItem, error) {
	counts, err := s.reports.ReservationsByEvent(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}

	items := make([]response.CountItem, 0, len(counts))
	for _, nc := range counts {
		items = append(items, response.CountItem{Name: nc.Name, Count: nc.Count})
	}
	return items, nil
}

// ReservationsByMonth always returns twelve entries, one per calendar
// month, zero-filled where nothing was reserved.
func (s *ReportService) ReservationsByMonth(ctx context.Context, wineryID uuid.UUID, window repository.ReportWindow) ([]response.MonthItem, error) {
	counts, err := s.reports.ReservationsByMonth(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int]int, len(counts))
	for _, mc := range counts {
		byMonth[mc.Month] = mc.Count
	}

	items := make([]response.MonthItem, 0, 12)
	for month := 1; month <= 12; month++ {
		items = append(items, response.MonthItem{Month: month, Count: byMonth[month]})
	}
	return items, nil
}

func (s *ReportService) AttendeeLanguages(ctx context.Context, wineryID uuid.UUID, window repository.ReportWindow) ([]response.LanguageItem, error) {
	counts, err := s.reports.AttendeeLanguages(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}

	items := make([]response.LanguageItem, 0, len(counts))
	for _, nc := range counts {
		items = append(items, response.LanguageItem{Language: nc.Name, Count: nc.Count})
	}
	return items, nil
}

func (s *ReportService) AttendeeCountries(ctx context.Context, wineryID uuid.UUID, window repository.ReportWindow) ([]response.CountryItem, error) {
	counts, err := s.reports.AttendeeCountries(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}

	items := make([]response.CountryItem, 0, len(counts))
	for _, nc := range counts {
		items = append(items, response.CountryItem{Country: nc.Name, Count: nc.Count})
	}
	return items, nil
}

// AttendeeAgeGroups buckets reservations by attendee age in whole years at
// report time. Each reservation counts once; ages below the young bound are
// left out. All three groups are present even when empty.
func (s *ReportService) AttendeeAgeGroups(ctx context.Context, wineryID uuid.UUID, window repository.ReportWindow) ([]response.AgeGroupItem, error) {
	birthDates, err := s.reports.AttendeeBirthDates(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var young, midage, old int
	for _, birthDate := range birthDates {
		age := now.Year() - birthDate.Year()
		switch {
		case age >= oldMin:
			old++
		case age >= midageMin:
			midage++
		case age >= youngMin:
			young++
		}
	}

	return []response.AgeGroupItem{
		{Group: "young", Count: young},
		{Group: "midage", Count: midage},
		{Group: "old", Count: old},
	}, nil
}

func (s *ReportService) EventsByRating(ctx context.Context, wineryID uuid.UUID, window repository.ReportWindow) ([]response.RatingItem, error) {
	averages, err := s.reports.EventsByRating(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}

	items := make([]response.RatingItem, 0, len(averages))
	for _, avg := range averages {
		items = append(items, response.RatingItem{Name: avg.Name, AvgRating: avg.Average})
	}
	return items, nil
}

func (s *ReportService) EarningsByEvent(ctx context.Context, wineryID uuid.UUID, window repository.ReportWindow) ([]response.EarningsItem, error) {
	sums, err := s.reports.EarningsByEvent(ctx, wineryID, window)
	if err != nil {
		return nil, err
	}

	items := make([]response.EarningsItem, 0, len(sums))
	for _, sum := range sums {
		items = append(items, response.EarningsItem{Name: sum.Name, Earnings: sum.Total})
	}
	return items, nil
}
