package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/dto/request"
	"github.com/eliasjuanpablo/wineapi/internal/dto/response"
	"github.com/eliasjuanpablo/wineapi/internal/schedule"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService struct {
	events        repository.EventRepository
	occurrences   repository.OccurrenceRepository
	rates         repository.RateRepository
	wineries      repository.WineryRepository
	defaultReason string
	log           *zap.Logger
}

func NewEventService(events repository.EventRepository, occurrences repository.OccurrenceRepository, rates repository.RateRepository, wineries repository.WineryRepository, config *utils.Config, log *zap.Logger) *EventService {
	return &EventService{
		events:        events,
		occurrences:   occurrences,
		rates:         rates,
		wineries:      wineries,
		defaultReason: config.App.DefaultCancellationReason,
		log:           log.With(zap.String("service", "event")),
	}
}

// Create expands every schedule into concrete occurrences and stores the
// event with all of them in one transaction. A schedule that fails to
// expand rejects the whole request.
func (s *EventService) Create(ctx context.Context, wineryID uuid.UUID, req *request.CreateEventRequest) (*response.EventResponse, error) {
	now := time.Now()
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		WineryID:    wineryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}

	var occurrences []*entity.EventOccurrence
	for i, scheduleReq := range req.Schedules {
		windows, err := expandSchedule(scheduleReq)
		if err != nil {
			return nil, fmt.Errorf("schedule %d: %w", i, err)
		}

		for _, window := range windows {
			end := window.End
			occurrences = append(occurrences, &entity.EventOccurrence{
				Base: entity.Base{
					ID:        uuid.New(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				EventID:   event.ID,
				Start:     window.Start,
				End:       &end,
				Vacancies: req.Vacancies,
			})
		}
	}

	categoryIDs, err := parseUUIDs(req.CategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("parse category ids: %w", err)
	}
	tagIDs, err := parseUUIDs(req.TagIDs)
	if err != nil {
		return nil, fmt.Errorf("parse tag ids: %w", err)
	}

	if err := s.events.CreateWithOccurrences(ctx, event, occurrences, categoryIDs, tagIDs); err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, event, occurrences)
}

// expandSchedule turns one schedule request into time windows. Without a
// to_date the event happens once on from_date and weekdays are ignored.
func expandSchedule(req request.ScheduleRequest) ([]schedule.Window, error) {
	fromDate, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return nil, fmt.Errorf("parse from_date: %w", err)
	}

	var toDate *time.Time
	if req.ToDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ToDate)
		if err != nil {
			return nil, fmt.Errorf("parse to_date: %w", err)
		}
		toDate = &parsed
	}

	startTime, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse start_time: %w", err)
	}
	endTime, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("parse end_time: %w", err)
	}

	weekdays := make([]schedule.Weekday, 0, len(req.Weekdays))
	for _, day := range req.Weekdays {
		weekdays = append(weekdays, schedule.Weekday(day))
	}

	spec := schedule.Spec{
		FromDate:  fromDate,
		ToDate:    toDate,
		StartTime: startTime,
		EndTime:   endTime,
		Weekdays:  weekdays,
	}
	return spec.Windows()
}

// Get returns a public event with its upcoming occurrences and rating.
func (s *EventService) Get(ctx context.Context, eventID uuid.UUID) (*response.EventResponse, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	winery, err := s.wineries.FindByID(ctx, event.WineryID)
	if err != nil {
		return nil, err
	}
	if winery == nil || !winery.IsApproved() {
		return nil, ErrNotFound
	}

	occurrences, err := s.occurrences.FindUpcomingByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, event, occurrences)
}

// GetOwned returns an event for its owning winery, cancelled occurrences
// included.
func (s *EventService) GetOwned(ctx context.Context, wineryID, eventID uuid.UUID) (*response.EventResponse, error) {
	event, err := s.findOwned(ctx, wineryID, eventID)
	if err != nil {
		return nil, err
	}

	occurrences, err := s.occurrences.FindByEvent(ctx, eventID, true)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, event, occurrences)
}

func (s *EventService) ListPublic(ctx context.Context, filter repository.EventFilter, page, pageSize int) ([]*response.EventResponse, error) {
	offset := utils.CalculateOffset(page, pageSize)
	events, err := s.events.FindPublic(ctx, filter, pageSize, offset)
	if err != nil {
		return nil, err
	}
	return s.buildListResponses(ctx, events)
}

func (s *EventService) ListByWinery(ctx context.Context, wineryID uuid.UUID, restaurants bool) ([]*response.EventResponse, error) {
	events, err := s.events.FindByWinery(ctx, wineryID, restaurants)
	if err != nil {
		return nil, err
	}
	return s.buildListResponses(ctx, events)
}

// ListPublicByWinery lists a winery's active events for visitors. The
// winery must be approved; cancelled events are left out.
func (s *EventService) ListPublicByWinery(ctx context.Context, wineryID uuid.UUID, restaurants bool) ([]*response.EventResponse, error) {
	winery, err := s.wineries.FindByID(ctx, wineryID)
	if err != nil {
		return nil, err
	}
	if winery == nil || !winery.IsApproved() {
		return nil, ErrNotFound
	}

	events, err := s.events.FindByWinery(ctx, wineryID, restaurants)
	if err != nil {
		return nil, err
	}

	active := make([]*entity.Event, 0, len(events))
	for _, event := range events {
		if event.Cancelled == nil {
			active = append(active, event)
		}
	}
	return s.buildListResponses(ctx, active)
}

// ListOccurrences lists an event's non-cancelled occurrences for visitors.
func (s *EventService) ListOccurrences(ctx context.Context, eventID uuid.UUID) ([]response.OccurrenceResponse, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	winery, err := s.wineries.FindByID(ctx, event.WineryID)
	if err != nil {
		return nil, err
	}
	if winery == nil || !winery.IsApproved() {
		return nil, ErrNotFound
	}

	occurrences, err := s.occurrences.FindByEvent(ctx, eventID, false)
	if err != nil {
		return nil, err
	}

	items := make([]response.OccurrenceResponse, 0, len(occurrences))
	for _, occ := range occurrences {
		items = append(items, occurrenceToResponse(occ))
	}
	return items, nil
}

func (s *EventService) Update(ctx context.Context, wineryID, eventID uuid.UUID, req *request.UpdateEventRequest) (*response.EventResponse, error) {
	event, err := s.findOwned(ctx, wineryID, eventID)
	if err != nil {
		return nil, err
	}

	event.Name = req.Name
	event.Description = req.Description
	event.Price = req.Price
	event.UpdatedAt = time.Now()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, event, nil)
}

// Cancel is idempotent: cancelling an already-cancelled event succeeds
// without touching the stored reason. Occurrences are left alone; listings
// exclude them through the event's cancelled state.
func (s *EventService) Cancel(ctx context.Context, wineryID, eventID uuid.UUID, reason string) (*response.EventResponse, error) {
	event, err := s.findOwned(ctx, wineryID, eventID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = s.defaultReason
	}

	if event.Cancel(reason, time.Now()) {
		if err := s.events.Cancel(ctx, eventID, reason, *event.Cancelled); err != nil {
			return nil, err
		}
	}

	return s.buildResponse(ctx, event, nil)
}

// AddSchedule expands another schedule for an existing event and appends
// the occurrences.
func (s *EventService) AddSchedule(ctx context.Context, wineryID, eventID uuid.UUID, req request.ScheduleRequest, vacancies int) ([]response.OccurrenceResponse, error) {
	if _, err := s.findOwned(ctx, wineryID, eventID); err != nil {
		return nil, err
	}

	windows, err := expandSchedule(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]response.OccurrenceResponse, 0, len(windows))
	for _, window := range windows {
		end := window.End
		occ := &entity.EventOccurrence{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			EventID:   eventID,
			Start:     window.Start,
			End:       &end,
			Vacancies: vacancies,
		}
		if err := s.occurrences.Create(ctx, occ); err != nil {
			return nil, err
		}
		responses = append(responses, occurrenceToResponse(occ))
	}

	return responses, nil
}

func (s *EventService) UpdateOccurrence(ctx context.Context, wineryID, occurrenceID uuid.UUID, req *request.UpdateOccurrenceRequest) (*response.OccurrenceResponse, error) {
	occ, err := s.findOwnedOccurrence(ctx, wineryID, occurrenceID)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}
	occ.Start = start

	if req.End != "" {
		end, err := time.Parse(time.RFC3339, req.End)
		if err != nil {
			return nil, fmt.Errorf("parse end: %w", err)
		}
		occ.End = &end
	} else {
		occ.End = nil
	}

	occ.Vacancies = req.Vacancies
	occ.UpdatedAt = time.Now()

	if err := s.occurrences.Update(ctx, occ); err != nil {
		return nil, err
	}

	resp := occurrenceToResponse(occ)
	return &resp, nil
}

// CancelOccurrence cancels one occurrence without touching its event.
func (s *EventService) CancelOccurrence(ctx context.Context, wineryID, occurrenceID uuid.UUID, reason string) (*response.OccurrenceResponse, error) {
	occ, err := s.findOwnedOccurrence(ctx, wineryID, occurrenceID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = s.defaultReason
	}

	if occ.Cancel(reason, time.Now()) {
		if err := s.occurrences.Cancel(ctx, occurrenceID, reason, *occ.Cancelled); err != nil {
			return nil, err
		}
	}

	resp := occurrenceToResponse(occ)
	return &resp, nil
}

func (s *EventService) findOwned(ctx context.Context, wineryID, eventID uuid.UUID) (*entity.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if event.WineryID != wineryID {
		return nil, ErrForbidden
	}
	return event, nil
}

func (s *EventService) findOwnedOccurrence(ctx context.Context, wineryID, occurrenceID uuid.UUID) (*entity.EventOccurrence, error) {
	occ, err := s.occurrences.FindByID(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	if occ == nil {
		return nil, ErrNotFound
	}
	if _, err := s.findOwned(ctx, wineryID, occ.EventID); err != nil {
		return nil, err
	}
	return occ, nil
}

func (s *EventService) buildResponse(ctx context.Context, event *entity.Event, occurrences []*entity.EventOccurrence) (*response.EventResponse, error) {
	resp := eventToResponse(event)

	rating, err := s.rates.AverageByEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	resp.Rating = rating

	categories, err := s.events.FindCategories(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		resp.Categories = append(resp.Categories, response.NamedResponse{ID: category.ID.String(), Name: category.Name})
	}

	tags, err := s.events.FindTags(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		resp.Tags = append(resp.Tags, response.NamedResponse{ID: tag.ID.String(), Name: tag.Name})
	}

	for _, occ := range occurrences {
		resp.Occurrences = append(resp.Occurrences, occurrenceToResponse(occ))
	}

	return resp, nil
}

func (s *EventService) buildListResponses(ctx context.Context, events []*entity.Event) ([]*response.EventResponse, error) {
	responses := make([]*response.EventResponse, 0, len(events))
	for _, event := range events {
		resp, err := s.buildResponse(ctx, event, nil)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func eventToResponse(event *entity.Event) *response.EventResponse {
	resp := &response.EventResponse{
		ID:          event.ID.String(),
		WineryID:    event.WineryID.String(),
		Name:        event.Name,
		Description: event.Description,
		Price:       event.Price,
	}
	if event.Cancelled != nil {
		cancelled := event.Cancelled.Format(time.RFC3339)
		resp.Cancelled = &cancelled
		resp.CancellationReason = event.CancellationReason
	}
	return resp
}

func occurrenceToResponse(occ *entity.EventOccurrence) response.OccurrenceResponse {
	resp := response.OccurrenceResponse{
		ID:        occ.ID.String(),
		Start:     occ.Start.Format(time.RFC3339),
		Vacancies: occ.Vacancies,
	}
	if occ.End != nil {
		end := occ.End.Format(time.RFC3339)
		resp.End = &end
	}
	if occ.Cancelled != nil {
		cancelled := occ.Cancelled.Format(time.RFC3339)
		resp.Cancelled = &cancelled
		resp.CancellationReason = occ.CancellationReason
	}
	return resp
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
