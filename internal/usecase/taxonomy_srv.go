package usecase

import (
	"context"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/internal/data/repository"
	"github.com/eliasjuanpablo/wineapi/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaxonomyService struct {
	taxonomies repository.TaxonomyRepository
	log        *zap.Logger
}

func NewTaxonomyService(taxonomies repository.TaxonomyRepository, log *zap.Logger) *TaxonomyService {
	return &TaxonomyService{
		taxonomies: taxonomies,
		log:        log.With(zap.String("service", "taxonomy")),
	}
}

func (s *TaxonomyService) Countries(ctx context.Context) ([]response.NamedResponse, error) {
	countries, err := s.taxonomies.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]response.NamedResponse, 0, len(countries))
	for _, country := range countries {
		items = append(items, response.NamedResponse{ID: country.ID.String(), Name: country.Name})
	}
	return items, nil
}

func (s *TaxonomyService) Languages(ctx context.Context) ([]response.NamedResponse, error) {
	languages, err := s.taxonomies.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]response.NamedResponse, 0, len(languages))
	for _, language := range languages {
		items = append(items, response.NamedResponse{ID: language.ID.String(), Name: language.Name})
	}
	return items, nil
}

func (s *TaxonomyService) Genders(ctx context.Context) ([]response.NamedResponse, error) {
	genders, err := s.taxonomies.ListGenders(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]response.NamedResponse, 0, len(genders))
	for _, gender := range genders {
		items = append(items, response.NamedResponse{ID: gender.ID.String(), Name: gender.Name})
	}
	return items, nil
}

func (s *TaxonomyService) Varietals(ctx context.Context) ([]response.NamedResponse, error) {
	varietals, err := s.taxonomies.ListVarietals(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]response.NamedResponse, 0, len(varietals))
	for _, varietal := range varietals {
		items = append(items, response.NamedResponse{ID: varietal.ID.String(), Name: varietal.Name})
	}
	return items, nil
}

func (s *TaxonomyService) Categories(ctx context.Context) ([]response.NamedResponse, error) {
	categories, err := s.taxonomies.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]response.NamedResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, response.NamedResponse{ID: category.ID.String(), Name: category.Name})
	}
	return items, nil
}

func (s *TaxonomyService) Tags(ctx context.Context) ([]response.NamedResponse, error) {
	tags, err := s.taxonomies.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]response.NamedResponse, 0, len(tags))
	for _, tag := range tags {
		items = append(items, response.NamedResponse{ID: tag.ID.String(), Name: tag.Name})
	}
	return items, nil
}

func (s *TaxonomyService) CreateVarietal(ctx context.Context, name string) (*response.NamedResponse, error) {
	varietal := &entity.Varietal{ID: uuid.New(), Name: name}
	if err := s.taxonomies.CreateVarietal(ctx, varietal); err != nil {
		return nil, err
	}
	return &response.NamedResponse{ID: varietal.ID.String(), Name: varietal.Name}, nil
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, name string) (*response.NamedResponse, error) {
	category := &entity.EventCategory{ID: uuid.New(), Name: name}
	if err := s.taxonomies.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return &response.NamedResponse{ID: category.ID.String(), Name: category.Name}, nil
}

func (s *TaxonomyService) CreateTag(ctx context.Context, name string) (*response.NamedResponse, error) {
	tag := &entity.Tag{ID: uuid.New(), Name: name}
	if err := s.taxonomies.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return &response.NamedResponse{ID: tag.ID.String(), Name: tag.Name}, nil
}
