package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			DefaultCancellationReason: "Cancelled by issuer",
		},
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	session, ok := f.sessions[token]
	if !ok || session.IsExpired(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

type fakeWineryRepo struct {
	wineries map[uuid.UUID]*entity.Winery
}

func newFakeWineryRepo() *fakeWineryRepo {
	return &fakeWineryRepo{wineries: make(map[uuid.UUID]*entity.Winery)}
}

func (f *fakeWineryRepo) Create(_ context.Context, winery *entity.Winery) error {
	f.wineries[winery.ID] = winery
	return nil
}

func (f *fakeWineryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Winery, error) {
	return f.wineries[id], nil
}

func (f *fakeWineryRepo) FindApproved(_ context.Context, _ string, _, _ int) ([]*entity.Winery, error) {
	var approved []*entity.Winery
	for _, winery := range f.wineries {
		if winery.IsApproved() {
			approved = append(approved, winery)
		}
	}
	return approved, nil
}

func (f *fakeWineryRepo) CountApproved(_ context.Context, _ string) (int64, error) {
	var count int64
	for _, winery := range f.wineries {
		if winery.IsApproved() {
			count++
		}
	}
	return count, nil
}

func (f *fakeWineryRepo) FindPending(_ context.Context) ([]*entity.Winery, error) {
	var pending []*entity.Winery
	for _, winery := range f.wineries {
		if !winery.IsApproved() {
			pending = append(pending, winery)
		}
	}
	return pending, nil
}

func (f *fakeWineryRepo) FindNear(_ context.Context, _, _, _ float64) ([]*entity.Winery, error) {
	return nil, nil
}

func (f *fakeWineryRepo) Update(_ context.Context, winery *entity.Winery) error {
	f.wineries[winery.ID] = winery
	return nil
}

func (f *fakeWineryRepo) Approve(_ context.Context, id uuid.UUID, since time.Time) error {
	winery, ok := f.wineries[id]
	if !ok {
		return repository.ErrNotFound
	}
	if winery.AvailableSince == nil {
		winery.AvailableSince = &since
	}
	return nil
}

func wineryEntity(id uuid.UUID, availableSince *time.Time) *entity.Winery {
	return &entity.Winery{
		Base:           entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:           "Test winery",
		AvailableSince: availableSince,
	}
}

type fakeEventRepo struct {
	events     map[uuid.UUID]*entity.Event
	categories map[uuid.UUID][]*entity.EventCategory
	tags       map[uuid.UUID][]*entity.Tag
	// occurrences created through CreateWithOccurrences land here so tests
	// can share one store with the occurrence fake.
	occStore *fakeOccurrenceRepo
}

func newFakeEventRepo(occStore *fakeOccurrenceRepo) *fakeEventRepo {
	return &fakeEventRepo{
		events:     make(map[uuid.UUID]*entity.Event),
		categories: make(map[uuid.UUID][]*entity.EventCategory),
		tags:       make(map[uuid.UUID][]*entity.Tag),
		occStore:   occStore,
	}
}

func (f *fakeEventRepo) CreateWithOccurrences(_ context.Context, event *entity.Event, occurrences []*entity.EventOccurrence, _, _ []uuid.UUID) error {
	f.events[event.ID] = event
	for _, occ := range occurrences {
		f.occStore.occurrences[occ.ID] = occ
	}
	return nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	return f.events[id], nil
}

func (f *fakeEventRepo) FindPublic(_ context.Context, _ repository.EventFilter, _, _ int) ([]*entity.Event, error) {
	var events []*entity.Event
	for _, event := range f.events {
		if !event.IsCancelled() {
			events = append(events, event)
		}
	}
	return events, nil
}

func (f *fakeEventRepo) FindByWinery(_ context.Context, wineryID uuid.UUID, _ bool) ([]*entity.Event, error) {
	var events []*entity.Event
	for _, event := range f.events {
		if event.WineryID == wineryID {
			events = append(events, event)
		}
	}
	return events, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *entity.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return repository.ErrNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) Cancel(_ context.Context, id uuid.UUID, reason string, at time.Time) error {
	event, ok := f.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	if event.Cancelled == nil {
		event.Cancelled = &at
		event.CancellationReason = &reason
	}
	return nil
}

func (f *fakeEventRepo) FindCategories(_ context.Context, eventID uuid.UUID) ([]*entity.EventCategory, error) {
	return f.categories[eventID], nil
}

func (f *fakeEventRepo) FindTags(_ context.Context, eventID uuid.UUID) ([]*entity.Tag, error) {
	return f.tags[eventID], nil
}

type fakeOccurrenceRepo struct {
	occurrences map[uuid.UUID]*entity.EventOccurrence
}

func newFakeOccurrenceRepo() *fakeOccurrenceRepo {
	return &fakeOccurrenceRepo{occurrences: make(map[uuid.UUID]*entity.EventOccurrence)}
}

func (f *fakeOccurrenceRepo) Create(_ context.Context, occ *entity.EventOccurrence) error {
	f.occurrences[occ.ID] = occ
	return nil
}

func (f *fakeOccurrenceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.EventOccurrence, error) {
	return f.occurrences[id], nil
}

func (f *fakeOccurrenceRepo) FindByEvent(_ context.Context, eventID uuid.UUID, includeCancelled bool) ([]*entity.EventOccurrence, error) {
	var result []*entity.EventOccurrence
	for _, occ := range f.occurrences {
		if occ.EventID != eventID {
			continue
		}
		if !includeCancelled && occ.IsCancelled() {
			continue
		}
		result = append(result, occ)
	}
	return result, nil
}

func (f *fakeOccurrenceRepo) FindUpcomingByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.EventOccurrence, error) {
	return f.FindByEvent(ctx, eventID, false)
}

func (f *fakeOccurrenceRepo) Update(_ context.Context, occ *entity.EventOccurrence) error {
	if _, ok := f.occurrences[occ.ID]; !ok {
		return repository.ErrNotFound
	}
	f.occurrences[occ.ID] = occ
	return nil
}

func (f *fakeOccurrenceRepo) Cancel(_ context.Context, id uuid.UUID, reason string, at time.Time) error {
	occ, ok := f.occurrences[id]
	if !ok {
		return repository.ErrNotFound
	}
	if occ.Cancelled == nil {
		occ.Cancelled = &at
		occ.CancellationReason = &reason
	}
	return nil
}

// fakeReservationRepo mirrors the production vacancy contract: the check and
// the decrement happen together in Create.
type fakeReservationRepo struct {
	reservations map[uuid.UUID]*entity.Reservation
	occStore     *fakeOccurrenceRepo
}

func newFakeReservationRepo(occStore *fakeOccurrenceRepo) *fakeReservationRepo {
	return &fakeReservationRepo{
		reservations: make(map[uuid.UUID]*entity.Reservation),
		occStore:     occStore,
	}
}

func (f *fakeReservationRepo) Create(_ context.Context, reservation *entity.Reservation, allowOversell bool) error {
	occ, ok := f.occStore.occurrences[reservation.OccurrenceID]
	if !ok {
		return fmt.Errorf("occurrence %s: %w", reservation.OccurrenceID.String(), repository.ErrNotFound)
	}
	if occ.IsCancelled() {
		return fmt.Errorf("occurrence %s: %w", reservation.OccurrenceID.String(), repository.ErrCancelled)
	}
	if !allowOversell && occ.Vacancies < reservation.AttendeeNumber {
		return fmt.Errorf("occurrence %s: %w", reservation.OccurrenceID.String(), repository.ErrNoVacancy)
	}
	occ.Vacancies -= reservation.AttendeeNumber
	f.reservations[reservation.ID] = reservation
	return nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return f.reservations[id], nil
}

func (f *fakeReservationRepo) FindByUser(_ context.Context, userID uuid.UUID, _, _ int) ([]*repository.ReservationDetail, error) {
	var details []*repository.ReservationDetail
	for _, res := range f.reservations {
		if res.UserID == userID {
			details = append(details, &repository.ReservationDetail{Reservation: *res})
		}
	}
	return details, nil
}

func (f *fakeReservationRepo) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, res := range f.reservations {
		if res.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationRepo) FindByOccurrence(_ context.Context, occurrenceID uuid.UUID) ([]*repository.ReservationDetail, error) {
	var details []*repository.ReservationDetail
	for _, res := range f.reservations {
		if res.OccurrenceID == occurrenceID {
			details = append(details, &repository.ReservationDetail{Reservation: *res})
		}
	}
	return details, nil
}

func (f *fakeReservationRepo) FindByWinery(_ context.Context, _ uuid.UUID, _, _ int) ([]*repository.ReservationDetail, error) {
	return nil, nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id uuid.UUID, reason string, at time.Time) error {
	reservation, ok := f.reservations[id]
	if !ok {
		return repository.ErrNotFound
	}
	if reservation.Cancelled == nil {
		reservation.Cancelled = &at
		reservation.CancellationReason = &reason
	}
	return nil
}

type fakeRateRepo struct {
	rates []*entity.Rate
}

func (f *fakeRateRepo) Create(_ context.Context, rate *entity.Rate) error {
	f.rates = append(f.rates, rate)
	return nil
}

func (f *fakeRateRepo) FindByEvent(_ context.Context, eventID uuid.UUID, _, _ int) ([]*entity.Rate, error) {
	var result []*entity.Rate
	for _, rate := range f.rates {
		if rate.EventID == eventID {
			result = append(result, rate)
		}
	}
	return result, nil
}

func (f *fakeRateRepo) CountByEvent(_ context.Context, eventID uuid.UUID) (int, error) {
	count := 0
	for _, rate := range f.rates {
		if rate.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRateRepo) AverageByEvent(_ context.Context, eventID uuid.UUID) (float64, error) {
	sum, count := 0, 0
	for _, rate := range f.rates {
		if rate.EventID == eventID {
			sum += rate.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

type fakeReportRepo struct {
	byEvent    []repository.NameCount
	byMonth    []repository.MonthCount
	languages  []repository.NameCount
	countries  []repository.NameCount
	birthDates []time.Time
	ratings    []repository.NameAvg
	earnings   []repository.NameSum
}

func (f *fakeReportRepo) ReservationsByEvent(_ context.Context, _ uuid.UUID, _ repository.ReportWindow) ([]repository.NameCount, error) {
	return f.byEvent, nil
}

func (f *fakeReportRepo) ReservationsByMonth(_ context.Context, _ uuid.UUID, _ repository.ReportWindow) ([]repository.MonthCount, error) {
	return f.byMonth, nil
}

func (f *fakeReportRepo) AttendeeLanguages(_ context.Context, _ uuid.UUID, _ repository.ReportWindow) ([]repository.NameCount, error) {
	return f.languages, nil
}

func (f *fakeReportRepo) AttendeeCountries(_ context.Context, _ uuid.UUID, _ repository.ReportWindow) ([]repository.NameCount, error) {
	return f.countries, nil
}

func (f *fakeReportRepo) AttendeeBirthDates(_ context.Context, _ uuid.UUID, _ repository.ReportWindow) ([]time.Time, error) {
	return f.birthDates, nil
}

func (f *fakeReportRepo) EventsByRating(_ context.Context, _ uuid.UUID, _ repository.ReportWindow) ([]repository.NameAvg, error) {
	return f.ratings, nil
}

func (f *fakeReportRepo) EarningsByEvent(_ context.Context, _ uuid.UUID, _ repository.ReportWindow) ([]repository.NameSum, error) {
	return f.earnings, nil
}
