package usecase

import (
	"context"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/dto/request"
	"github.com/eliasjuanpablo/wineapi/internal/dto/response"
	"github.com/eliasjuanpablo/wineapi/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RateService struct {
	rates  repository.RateRepository
	events repository.EventRepository
	log    *zap.Logger
}

func NewRateService(rates repository.RateRepository, events repository.EventRepository, log *zap.Logger) *RateService {
	return &RateService{
		rates:  rates,
		events: events,
		log:    log.With(zap.String("service", "rate")),
	}
}

// Rate records a rating for an event. A user may rate the same event more
// than once; every rating counts toward the average.
func (s *RateService) Rate(ctx context.Context, userID, eventID uuid.UUID, req *request.CreateRateRequest) (*response.RateResponse, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	rate := &entity.Rate{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		EventID: eventID,
		Rating:  req.Rating,
	}
	if req.Comment != "" {
		rate.Comment = &req.Comment
	}

	if err := s.rates.Create(ctx, rate); err != nil {
		return nil, err
	}

	resp := rateToResponse(rate)
	return &resp, nil
}

func (s *RateService) ListByEvent(ctx context.Context, eventID uuid.UUID, page, pageSize int) (*response.EventRatesResponse, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	offset := utils.CalculateOffset(page, pageSize)
	rates, err := s.rates.FindByEvent(ctx, eventID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	average, err := s.rates.AverageByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	count, err := s.rates.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	items := make([]response.RateResponse, 0, len(rates))
	for _, rate := range rates {
		items = append(items, rateToResponse(rate))
	}

	return &response.EventRatesResponse{
		Average: average,
		Count:   count,
		Rates:   items,
	}, nil
}

func rateToResponse(rate *entity.Rate) response.RateResponse {
	return response.RateResponse{
		ID:        rate.ID.String(),
		UserID:    rate.UserID.String(),
		Rating:    rate.Rating,
		Comment:   rate.Comment,
		CreatedAt: rate.CreatedAt.Format(time.RFC3339),
	}
}
