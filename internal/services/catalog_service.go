package services

import (
	"context"

	"fangji/internal/domain"
	"fangji/internal/repos"
)

type CatalogService struct {
	Cats *repos.CategoryRepo
}

func NewCatalogService(cats *repos.CategoryRepo) *CatalogService {
	return &CatalogService{Cats: cats}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) Stats(ctx context.Context) (domain.Stats, error) {
	total, err := s.Cats.Total(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	counts, err := s.Cats.Counts(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{TotalPrescriptions: total, CategoryStats: counts}, nil
}
