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

type WineryService struct {
	wineries repository.WineryRepository
	log      *zap.Logger
}

func NewWineryService(wineries repository.WineryRepository, log *zap.Logger) *WineryService {
	return &WineryService{
		wineries: wineries,
		log:      log.With(zap.String("service", "winery")),
	}
}

// List returns approved wineries only.
func (s *WineryService) List(ctx context.Context, search string, page, pageSize int) (*response.PaginatedResponse, error) {
	offset := utils.CalculateOffset(page, pageSize)
	wineries, err := s.wineries.FindApproved(ctx, search, pageSize, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.wineries.CountApproved(ctx, search)
	if err != nil {
		return nil, err
	}

	items := make([]*response.WineryResponse, 0, len(wineries))
	for _, winery := range wineries {
		items = append(items, wineryToResponse(winery))
	}

	return &response.PaginatedResponse{
		Items:      items,
		Total:      int(total),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: utils.CalculateTotalPages(total, pageSize),
	}, nil
}

func (s *WineryService) Get(ctx context.Context, wineryID uuid.UUID) (*response.WineryResponse, error) {
	winery, err := s.wineries.FindByID(ctx, wineryID)
	if err != nil {
		return nil, err
	}
	if winery == nil {
		return nil, ErrNotFound
	}
	return wineryToResponse(winery), nil
}

// Nearby lists approved wineries within radiusKm of the given point,
// closest first.
func (s *WineryService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]*response.WineryResponse, error) {
	wineries, err := s.wineries.FindNear(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	items := make([]*response.WineryResponse, 0, len(wineries))
	for _, winery := range wineries {
		items = append(items, wineryToResponse(winery))
	}
	return items, nil
}

// Update lets a winery account edit its own winery.
func (s *WineryService) Update(ctx context.Context, wineryID uuid.UUID, req *request.UpdateWineryRequest) (*response.WineryResponse, error) {
	winery, err := s.wineries.FindByID(ctx, wineryID)
	if err != nil {
		return nil, err
	}
	if winery == nil {
		return nil, ErrNotFound
	}

	winery.Name = req.Name
	winery.Description = req.Description
	winery.Website = req.Website
	winery.Latitude = req.Latitude
	winery.Longitude = req.Longitude
	winery.UpdatedAt = time.Now()

	if err := s.wineries.Update(ctx, winery); err != nil {
		return nil, err
	}

	return wineryToResponse(winery), nil
}

// ListPending lists wineries waiting for approval, for admins.
func (s *WineryService) ListPending(ctx context.Context) ([]*response.WineryResponse, error) {
	wineries, err := s.wineries.FindPending(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*response.WineryResponse, 0, len(wineries))
	for _, winery := range wineries {
		items = append(items, wineryToResponse(winery))
	}
	return items, nil
}

// Approve stamps available_since, making the winery and its events visible
// to tourists. Approving an already approved winery changes nothing.
func (s *WineryService) Approve(ctx context.Context, wineryID uuid.UUID) (*response.WineryResponse, error) {
	winery, err := s.wineries.FindByID(ctx, wineryID)
	if err != nil {
		return nil, err
	}
	if winery == nil {
		return nil, ErrNotFound
	}

	if !winery.IsApproved() {
		now := time.Now()
		if err := s.wineries.Approve(ctx, wineryID, now); err != nil {
			return nil, err
		}
		winery.AvailableSince = &now
		s.log.Info("Winery approved", zap.String("winery_id", wineryID.String()))
	}

	return wineryToResponse(winery), nil
}

func wineryToResponse(winery *entity.Winery) *response.WineryResponse {
	resp := &response.WineryResponse{
		ID:          winery.ID.String(),
		Name:        winery.Name,
		Description: winery.Description,
		Website:     winery.Website,
		Latitude:    winery.Latitude,
		Longitude:   winery.Longitude,
	}
	if winery.AvailableSince != nil {
		since := winery.AvailableSince.Format(time.RFC3339)
		resp.AvailableSince = &since
	}
	return resp
}
