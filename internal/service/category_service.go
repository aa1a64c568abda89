package service

import (
	"context"

	"github.com/weihsiu/card-reward-advisor/internal/dto"
	"github.com/weihsiu/card-reward-advisor/internal/model"
	"github.com/weihsiu/card-reward-advisor/internal/repository"
)

type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, []dto.CategoryGroup, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return cats, groupCategories(cats), nil
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*model.Category, error) {
	cat := &model.Category{
		Name:        req.Name,
		ParentGroup: req.ParentGroup,
	}
	if err := s.repo.Insert(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, req *dto.UpdateCategoryRequest) (*model.Category, error) {
	cat := &model.Category{
		ID:          id,
		Name:        req.Name,
		ParentGroup: req.ParentGroup,
		SortOrder:   req.SortOrder,
	}
	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
