package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/dto/request"
	"github.com/eliasjuanpablo/wineapi/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WineService manages the wine catalog: lines belong to a winery, wines
// belong to a line and carry a varietal.
type WineService struct {
	wineLines repository.WineLineRepository
	wines     repository.WineRepository
	log       *zap.Logger
}

func NewWineService(wineLines repository.WineLineRepository, wines repository.WineRepository, log *zap.Logger) *WineService {
	return &WineService{
		wineLines: wineLines,
		wines:     wines,
		log:       log.With(zap.String("service", "wine")),
	}
}

func (s *WineService) CreateLine(ctx context.Context, wineryID uuid.UUID, req *request.CreateWineLineRequest) (*response.WineLineResponse, error) {
	now := time.Now()
	line := &entity.WineLine{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		WineryID:    wineryID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.wineLines.Create(ctx, line); err != nil {
		return nil, err
	}

	return wineLineToResponse(line), nil
}

func (s *WineService) ListLines(ctx context.Context, wineryID uuid.UUID) ([]*response.WineLineResponse, error) {
	lines, err := s.wineLines.FindByWinery(ctx, wineryID)
	if err != nil {
		return nil, err
	}

	items := make([]*response.WineLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, wineLineToResponse(line))
	}
	return items, nil
}

func (s *WineService) UpdateLine(ctx context.Context, wineryID, lineID uuid.UUID, req *request.CreateWineLineRequest) (*response.WineLineResponse, error) {
	line, err := s.findOwnedLine(ctx, wineryID, lineID)
	if err != nil {
		return nil, err
	}

	line.Name = req.Name
	line.Description = req.Description
	line.UpdatedAt = time.Now()

	if err := s.wineLines.Update(ctx, line); err != nil {
		return nil, err
	}

	return wineLineToResponse(line), nil
}

// CreateWine attaches a wine to one of the winery's own lines.
func (s *WineService) CreateWine(ctx context.Context, wineryID uuid.UUID, req *request.CreateWineRequest) (*response.WineResponse, error) {
	lineID, err := uuid.Parse(req.WineLineID)
	if err != nil {
		return nil, fmt.Errorf("parse wine line id: %w", err)
	}
	varietalID, err := uuid.Parse(req.VarietalID)
	if err != nil {
		return nil, fmt.Errorf("parse varietal id: %w", err)
	}

	if _, err := s.findOwnedLine(ctx, wineryID, lineID); err != nil {
		return nil, err
	}

	now := time.Now()
	wine := &entity.Wine{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		WineLineID:  lineID,
		VarietalID:  varietalID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.wines.Create(ctx, wine); err != nil {
		return nil, err
	}

	return wineToResponse(wine), nil
}

func (s *WineService) ListWines(ctx context.Context, lineID uuid.UUID) ([]*response.WineResponse, error) {
	line, err := s.wineLines.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, ErrNotFound
	}

	wines, err := s.wines.FindByWineLine(ctx, lineID)
	if err != nil {
		return nil, err
	}

	items := make([]*response.WineResponse, 0, len(wines))
	for _, wine := range wines {
		items = append(items, wineToResponse(wine))
	}
	return items, nil
}

func (s *WineService) findOwnedLine(ctx context.Context, wineryID, lineID uuid.UUID) (*entity.WineLine, error) {
	line, err := s.wineLines.FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, ErrNotFound
	}
	if line.WineryID != wineryID {
		return nil, ErrForbidden
	}
	return line, nil
}

func wineLineToResponse(line *entity.WineLine) *response.WineLineResponse {
	return &response.WineLineResponse{
		ID:          line.ID.String(),
		WineryID:    line.WineryID.String(),
		Name:        line.Name,
		Description: line.Description,
	}
}

func wineToResponse(wine *entity.Wine) *response.WineResponse {
	return &response.WineResponse{
		ID:          wine.ID.String(),
		WineLineID:  wine.WineLineID.String(),
		VarietalID:  wine.VarietalID.String(),
		Name:        wine.Name,
		Description: wine.Description,
	}
}
