package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/dto/request"
	"github.com/eliasjuanpablo/wineapi/internal/dto/response"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService struct {
	reservations  repository.ReservationRepository
	occurrences   repository.OccurrenceRepository
	events        repository.EventRepository
	allowOversell bool
	defaultReason string
	log           *zap.Logger
}

func NewReservationService(reservations repository.ReservationRepository, occurrences repository.OccurrenceRepository, events repository.EventRepository, config *utils.Config, log *zap.Logger) *ReservationService {
	return &ReservationService{
		reservations:  reservations,
		occurrences:   occurrences,
		events:        events,
		allowOversell: config.Reservation.AllowOversell,
		defaultReason: config.App.DefaultCancellationReason,
		log:           log.With(zap.String("service", "reservation")),
	}
}

// Reserve books seats for the user. The paid amount is the event price
// times the attendee count at booking time; later price changes do not
// touch existing reservations. Vacancy checking happens inside the
// repository under a row lock.
func (s *ReservationService) Reserve(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	occurrenceID, err := uuid.Parse(req.OccurrenceID)
	if err != nil {
		return nil, fmt.Errorf("parse occurrence id: %w", err)
	}

	occ, err := s.occurrences.FindByID(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	if occ == nil {
		return nil, ErrNotFound
	}

	event, err := s.events.FindByID(ctx, occ.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if event.IsCancelled() {
		return nil, fmt.Errorf("event %s: %w", event.ID.String(), repository.ErrCancelled)
	}

	reservation := &entity.Reservation{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:         userID,
		OccurrenceID:   occurrenceID,
		AttendeeNumber: req.AttendeeNumber,
		PaidAmount:     event.Price * float64(req.AttendeeNumber),
	}
	if req.Observations != "" {
		reservation.Observations = &req.Observations
	}

	if err := s.reservations.Create(ctx, reservation, s.allowOversell); err != nil {
		return nil, err
	}

	detail := &repository.ReservationDetail{
		Reservation: *reservation,
		EventID:     event.ID,
		EventName:   event.Name,
		Start:       occ.Start,
		End:         occ.End,
	}
	return detailToResponse(detail), nil
}

func (s *ReservationService) ListMine(ctx context.Context, userID uuid.UUID, page, pageSize int) (*response.PaginatedResponse, error) {
	offset := utils.CalculateOffset(page, pageSize)
	details, err := s.reservations.FindByUser(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.reservations.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*response.ReservationResponse, 0, len(details))
	for _, detail := range details {
		items = append(items, detailToResponse(detail))
	}

	return &response.PaginatedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: utils.CalculateTotalPages(int64(total), pageSize),
	}, nil
}

func (s *ReservationService) ListForWinery(ctx context.Context, wineryID uuid.UUID, page, pageSize int) ([]*response.ReservationResponse, error) {
	offset := utils.CalculateOffset(page, pageSize)
	details, err := s.reservations.FindByWinery(ctx, wineryID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	items := make([]*response.ReservationResponse, 0, len(details))
	for _, detail := range details {
		items = append(items, detailToResponse(detail))
	}
	return items, nil
}

func (s *ReservationService) ListForOccurrence(ctx context.Context, wineryID, occurrenceID uuid.UUID) ([]*response.ReservationResponse, error) {
	occ, err := s.occurrences.FindByID(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	if occ == nil {
		return nil, ErrNotFound
	}

	event, err := s.events.FindByID(ctx, occ.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if event.WineryID != wineryID {
		return nil, ErrForbidden
	}

	details, err := s.reservations.FindByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}

	items := make([]*response.ReservationResponse, 0, len(details))
	for _, detail := range details {
		items = append(items, detailToResponse(detail))
	}
	return items, nil
}

// Cancel is idempotent: repeating it on an already-cancelled reservation
// succeeds and keeps the original reason. Only the owning user may cancel.
func (s *ReservationService) Cancel(ctx context.Context, userID, reservationID uuid.UUID, reason string) (*response.ReservationResponse, error) {
	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrNotFound
	}
	if reservation.UserID != userID {
		return nil, ErrForbidden
	}

	if reason == "" {
		reason = s.defaultReason
	}

	if reservation.Cancel(reason, time.Now()) {
		if err := s.reservations.Cancel(ctx, reservationID, reason, *reservation.Cancelled); err != nil {
			return nil, err
		}
	}

	occ, err := s.occurrences.FindByID(ctx, reservation.OccurrenceID)
	if err != nil {
		return nil, err
	}

	detail := &repository.ReservationDetail{Reservation: *reservation}
	if occ != nil {
		detail.Start = occ.Start
		detail.End = occ.End
		if event, err := s.events.FindByID(ctx, occ.EventID); err == nil && event != nil {
			detail.EventID = event.ID
			detail.EventName = event.Name
		}
	}
	return detailToResponse(detail), nil
}

// CancelForWinery cancels a reservation on behalf of the winery that owns
// the reserved event. Idempotent like the tourist-side cancel.
func (s *ReservationService) CancelForWinery(ctx context.Context, wineryID, reservationID uuid.UUID, reason string) (*response.ReservationResponse, error) {
	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrNotFound
	}

	occ, err := s.occurrences.FindByID(ctx, reservation.OccurrenceID)
	if err != nil {
		return nil, err
	}
	if occ == nil {
		return nil, ErrNotFound
	}
	event, err := s.events.FindByID(ctx, occ.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if event.WineryID != wineryID {
		return nil, ErrForbidden
	}

	if reason == "" {
		reason = s.defaultReason
	}

	if reservation.Cancel(reason, time.Now()) {
		if err := s.reservations.Cancel(ctx, reservationID, reason, *reservation.Cancelled); err != nil {
			return nil, err
		}
	}

	detail := &repository.ReservationDetail{
		Reservation: *reservation,
		EventID:     event.ID,
		EventName:   event.Name,
		Start:       occ.Start,
		End:         occ.End,
	}
	return detailToResponse(detail), nil
}

func detailToResponse(detail *repository.ReservationDetail) *response.ReservationResponse {
	res := detail.Reservation
	resp := &response.ReservationResponse{
		ID:             res.ID.String(),
		OccurrenceID:   res.OccurrenceID.String(),
		EventID:        detail.EventID.String(),
		EventName:      detail.EventName,
		Start:          detail.Start.Format(time.RFC3339),
		AttendeeNumber: res.AttendeeNumber,
		PaidAmount:     res.PaidAmount,
		Observations:   res.Observations,
		CreatedAt:      res.CreatedAt.Format(time.RFC3339),
	}
	if detail.End != nil {
		end := detail.End.Format(time.RFC3339)
		resp.End = &end
	}
	if res.Cancelled != nil {
		cancelled := res.Cancelled.Format(time.RFC3339)
		resp.Cancelled = &cancelled
		resp.CancellationReason = res.CancellationReason
	}
	return resp
}
