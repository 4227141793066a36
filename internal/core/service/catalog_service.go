package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// CatalogService serves the public course and book reads.
type CatalogService struct {
	repo ports.CatalogRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) Courses(ctx context.Context) ([]*domain.Course, error) {
	return s.repo.ListCourses(ctx)
}

func (s *CatalogService) Books(ctx context.Context) ([]*domain.Book, error) {
	return s.repo.ListBooks(ctx)
}
