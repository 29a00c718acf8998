package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/cache"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

const (
	categoryListKey = "catalog:categories"
	propertyListKey = "catalog:properties"
)

// CatalogService coordinates category and property workflows.
type CatalogService struct {
	categories repository.CategoryRepository
	properties repository.PropertyRepository
	inquiries  repository.InquiryRepository
	listings   *cache.Cache
}

// CatalogDependencies bundles repositories for the catalog service.
type CatalogDependencies struct {
	CategoryRepo repository.CategoryRepository
	PropertyRepo repository.PropertyRepository
	InquiryRepo  repository.InquiryRepository
	ListingCache *cache.Cache
}

// PropertyInput describes the full property field set. Updates overwrite
// unconditionally; there are no patch semantics.
type PropertyInput struct {
	CategoryID  int64
	Name        string
	City        string
	Bathrooms   int
	Rooms       int
	Description string
	Image       string
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		categories: deps.CategoryRepo,
		properties: deps.PropertyRepo,
		inquiries:  deps.InquiryRepo,
		listings:   deps.ListingCache,
	}
}

// CreateCategory persists a new category.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, categoryListKey)
	return category, nil
}

// ListCategories returns all categories, through the listing cache when one
// is configured.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if s.listings == nil {
		return s.loadCategories(ctx)
	}
	return cache.GetOrLoadJSON(s.listings, ctx, categoryListKey, s.loadCategories)
}

// GetCategory fetches one category.
func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("category")
		}
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// UpdateCategory overwrites a category name.
func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, categoryListKey)
	return category, nil
}

// DeleteCategory removes a category. Categories still referenced by
// properties are protected (restrict policy).
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	count, err := s.properties.CountByCategory(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("category still has properties")
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, categoryListKey)
	return nil
}

// CreateProperty persists a new listing after validating its category.
func (s *CatalogService) CreateProperty(ctx context.Context, input PropertyInput) (*domain.Property, error) {
	if _, err := s.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	property := &domain.Property{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		City:        input.City,
		Bathrooms:   input.Bathrooms,
		Rooms:       input.Rooms,
		Description: input.Description,
		Image:       input.Image,
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, propertyListKey)
	return property, nil
}

// ListProperties returns all listings, through the listing cache when one is
// configured.
func (s *CatalogService) ListProperties(ctx context.Context) ([]domain.Property, error) {
	if s.listings == nil {
		return s.loadProperties(ctx)
	}
	return cache.GetOrLoadJSON(s.listings, ctx, propertyListKey, s.loadProperties)
}

// GetProperty fetches one listing.
func (s *CatalogService) GetProperty(ctx context.Context, id int64) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("property")
		}
		return nil, apperrors.MapError(err)
	}
	return property, nil
}

// UpdateProperty overwrites a listing with the full field set, validating
// the (possibly new) category. Last write wins.
func (s *CatalogService) UpdateProperty(ctx context.Context, id int64, input PropertyInput) (*domain.Property, error) {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	property.CategoryID = input.CategoryID
	property.Name = input.Name
	property.City = input.City
	property.Bathrooms = input.Bathrooms
	property.Rooms = input.Rooms
	property.Description = input.Description
	property.Image = input.Image
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidate(ctx, propertyListKey)
	return property, nil
}

// DeleteProperty removes a listing. Listings with inquiry threads are
// protected (restrict policy).
func (s *CatalogService) DeleteProperty(ctx context.Context, id int64) error {
	if _, err := s.GetProperty(ctx, id); err != nil {
		return err
	}
	count, err := s.inquiries.CountByProperty(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		return apperrors.NewConflict("property still has messages")
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.invalidate(ctx, propertyListKey)
	return nil
}

func (s *CatalogService) loadCategories(ctx context.Context) ([]domain.Category, error) {
	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if list == nil {
		list = []domain.Category{}
	}
	return list, nil
}

func (s *CatalogService) loadProperties(ctx context.Context) ([]domain.Property, error) {
	list, err := s.properties.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if list == nil {
		list = []domain.Property{}
	}
	return list, nil
}

func (s *CatalogService) invalidate(ctx context.Context, key string) {
	if s.listings != nil {
		s.listings.Invalidate(ctx, key)
	}
}
