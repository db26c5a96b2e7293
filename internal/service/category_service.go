package service

import (
	"context"
	"strings"
	"time"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/pkg/apperror"
	"personal-notes-be/internal/repository/scope"
	"personal-notes-be/internal/repository/specification"
	"personal-notes-be/internal/repository/unitofwork"
	"personal-notes-be/pkg/events"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const categoryListCacheKey = "categories:all"

type ICategoryService interface {
	List(ctx context.Context) ([]*dto.CategoryResponse, error)
	Create(ctx context.Context, actor *dto.SessionUser, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Rename(ctx context.Context, actor *dto.SessionUser, req *dto.RenameCategoryRequest) (*dto.CategoryResponse, error)
}

type categoryService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	cache      *cache.Cache
}

func NewCategoryService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, cacheTTL time.Duration) ICategoryService {
	return &categoryService{
		uowFactory: uowFactory,
		publisher:  publisher,
		cache:      cache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *categoryService) List(ctx context.Context) ([]*dto.CategoryResponse, error) {
	if cached, found := s.cache.Get(categoryListCacheKey); found {
		return categoryResponses(cached.([]dto.CategoryResponse)), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	categories, err := uow.CategoryRepository().FindAll(ctx, specification.ScopeOf(scope.OrderByNameAsc))
	if err != nil {
		return nil, apperror.NewInternalError("Failed to list categories", err)
	}

	// Cached by value so callers never share elements with the cache
	list := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		list = append(list, *toCategoryResponse(c))
	}
	s.cache.SetDefault(categoryListCacheKey, list)

	return categoryResponses(list), nil
}

func categoryResponses(list []dto.CategoryResponse) []*dto.CategoryResponse {
	out := make([]*dto.CategoryResponse, len(list))
	for i := range list {
		c := list[i]
		out[i] = &c
	}
	return out
}

func (s *categoryService) Create(ctx context.Context, actor *dto.SessionUser, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.NewValidationError("Category name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.CategoryRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to check category name", err)
	}
	if existing != nil {
		return nil, duplicateCategoryError()
	}

	category := &entity.Category{
		Id:   uuid.New(),
		Name: name,
	}
	if err := uow.CategoryRepository().Create(ctx, category); err != nil {
		return nil, categoryWriteError(err)
	}

	s.cache.Delete(categoryListCacheKey)
	s.publisher.Publish(ctx, events.New(events.CategoryCreated, map[string]interface{}{
		"category_id": category.Id.String(),
		"name":        category.Name,
		"user_id":     actor.Id.String(),
	}))

	return toCategoryResponse(category), nil
}

func (s *categoryService) Rename(ctx context.Context, actor *dto.SessionUser, req *dto.RenameCategoryRequest) (*dto.CategoryResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperror.NewValidationError("Category name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	category, err := uow.CategoryRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load category", err)
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category not found")
	}

	taken, err := uow.CategoryRepository().Count(ctx,
		specification.ByName{Name: name},
		specification.ExcludeID{ID: category.Id},
	)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to check category name", err)
	}
	if taken > 0 {
		return nil, duplicateCategoryError()
	}

	previous := category.Name
	category.Name = name
	if err := uow.CategoryRepository().Update(ctx, category); err != nil {
		return nil, categoryWriteError(err)
	}

	s.cache.Delete(categoryListCacheKey)
	s.publisher.Publish(ctx, events.New(events.CategoryRenamed, map[string]interface{}{
		"category_id":   category.Id.String(),
		"previous_name": previous,
		"name":          category.Name,
		"user_id":       actor.Id.String(),
	}))

	return toCategoryResponse(category), nil
}

func duplicateCategoryError() error {
	return apperror.NewConflictError("A category with this name already exists")
}

// categoryWriteError covers the race where another request took the name
// between the uniqueness check and the write.
func categoryWriteError(err error) error {
	switch apperror.KindOf(err) {
	case apperror.KindConflict:
		return duplicateCategoryError()
	case apperror.KindNotFound:
		return apperror.NewNotFoundError("Category not found")
	default:
		return apperror.NewInternalError("Failed to save category", err)
	}
}
