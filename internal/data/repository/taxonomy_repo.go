package repository

import (
	"context"
	"fmt"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaxonomyRepository covers the flat reference tables. They all share the
// same id/name shape, so reads go through a single helper.
type TaxonomyRepository interface {
	ListCountries(ctx context.Context) ([]*entity.Country, error)
	ListLanguages(ctx context.Context) ([]*entity.Language, error)
	ListGenders(ctx context.Context) ([]*entity.Gender, error)
	ListVarietals(ctx context.Context) ([]*entity.Varietal, error)
	ListCategories(ctx context.Context) ([]*entity.EventCategory, error)
	ListTags(ctx context.Context) ([]*entity.Tag, error)
	CreateVarietal(ctx context.Context, varietal *entity.Varietal) error
	CreateCategory(ctx context.Context, category *entity.EventCategory) error
	CreateTag(ctx context.Context, tag *entity.Tag) error
	FindCategoriesByNames(ctx context.Context, names []string) ([]*entity.EventCategory, error)
	FindTagsByNames(ctx context.Context, names []string) ([]*entity.Tag, error)
}

type taxonomyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTaxonomyRepository(db database.PgxIface, log *zap.Logger) TaxonomyRepository {
	return &taxonomyRepository{
		db:  db,
		log: log.With(zap.String("repository", "taxonomy")),
	}
}

type idName struct {
	ID   uuid.UUID
	Name string
}

func (r *taxonomyRepository) listTable(ctx context.Context, table string) ([]idName, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM `+table+` ORDER BY name`)
	if err != nil {
		r.log.Error("Failed to list reference table",
			zap.Error(err),
			zap.String("table", table),
		)
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var items []idName
	for rows.Next() {
		var item idName
		if err := rows.Scan(&item.ID, &item.Name); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *taxonomyRepository) insertTable(ctx context.Context, table string, id uuid.UUID, name string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO `+table+` (id, name) VALUES ($1, $2)`, id, name)
	if err != nil {
		r.log.Error("Failed to insert into reference table",
			zap.Error(err),
			zap.String("table", table),
			zap.String("name", name),
		)
		return fmt.Errorf("insert %s %s: %w", table, name, err)
	}
	return nil
}

func (r *taxonomyRepository) ListCountries(ctx context.Context) ([]*entity.Country, error) {
	items, err := r.listTable(ctx, "countries")
	if err != nil {
		return nil, err
	}
	countries := make([]*entity.Country, 0, len(items))
	for _, item := range items {
		countries = append(countries, &entity.Country{ID: item.ID, Name: item.Name})
	}
	return countries, nil
}

func (r *taxonomyRepository) ListLanguages(ctx context.Context) ([]*entity.Language, error) {
	items, err := r.listTable(ctx, "languages")
	if err != nil {
		return nil, err
	}
	languages := make([]*entity.Language, 0, len(items))
	for _, item := range items {
		languages = append(languages, &entity.Language{ID: item.ID, Name: item.Name})
	}
	return languages, nil
}

func (r *taxonomyRepository) ListGenders(ctx context.Context) ([]*entity.Gender, error) {
	items, err := r.listTable(ctx, "genders")
	if err != nil {
		return nil, err
	}
	genders := make([]*entity.Gender, 0, len(items))
	for _, item := range items {
		genders = append(genders, &entity.Gender{ID: item.ID, Name: item.Name})
	}
	return genders, nil
}

func (r *taxonomyRepository) ListVarietals(ctx context.Context) ([]*entity.Varietal, error) {
	items, err := r.listTable(ctx, "varietals")
	if err != nil {
		return nil, err
	}
	varietals := make([]*entity.Varietal, 0, len(items))
	for _, item := range items {
		varietals = append(varietals, &entity.Varietal{ID: item.ID, Name: item.Name})
	}
	return varietals, nil
}

func (r *taxonomyRepository) ListCategories(ctx context.Context) ([]*entity.EventCategory, error) {
	items, err := r.listTable(ctx, "categories")
	if err != nil {
		return nil, err
	}
	categories := make([]*entity.EventCategory, 0, len(items))
	for _, item := range items {
		categories = append(categories, &entity.EventCategory{ID: item.ID, Name: item.Name})
	}
	return categories, nil
}

func (r *taxonomyRepository) ListTags(ctx context.Context) ([]*entity.Tag, error) {
	items, err := r.listTable(ctx, "tags")
	if err != nil {
		return nil, err
	}
	tags := make([]*entity.Tag, 0, len(items))
	for _, item := range items {
		tags = append(tags, &entity.Tag{ID: item.ID, Name: item.Name})
	}
	return tags, nil
}

func (r *taxonomyRepository) CreateVarietal(ctx context.Context, varietal *entity.Varietal) error {
	return r.insertTable(ctx, "varietals", varietal.ID, varietal.Name)
}

func (r *taxonomyRepository) CreateCategory(ctx context.Context, category *entity.EventCategory) error {
	return r.insertTable(ctx, "categories", category.ID, category.Name)
}

func (r *taxonomyRepository) CreateTag(ctx context.Context, tag *entity.Tag) error {
	return r.insertTable(ctx, "tags", tag.ID, tag.Name)
}

func (r *taxonomyRepository) FindCategoriesByNames(ctx context.Context, names []string) ([]*entity.EventCategory, error) {
	if len(names) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM categories WHERE name = ANY($1) ORDER BY name`, names)
	if err != nil {
		return nil, fmt.Errorf("find categories by names: %w", err)
	}
	defer rows.Close()

	var categories []*entity.EventCategory
	for rows.Next() {
		var category entity.EventCategory
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &category)
	}

	return categories, nil
}

func (r *taxonomyRepository) FindTagsByNames(ctx context.Context, names []string) ([]*entity.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM tags WHERE name = ANY($1) ORDER BY name`, names)
	if err != nil {
		return nil, fmt.Errorf("find tags by names: %w", err)
	}
	defer rows.Close()

	var tags []*entity.Tag
	for rows.Next() {
		var tag entity.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan tag row: %w", err)
		}
		tags = append(tags, &tag)
	}

	return tags, nil
}
