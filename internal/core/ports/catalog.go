package ports

import (
	"context"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

// CatalogRepository reads the course and book collections.
type CatalogRepository interface {
	ListCourses(ctx context.Context) ([]*domain.Course, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
}

// CatalogService exposes the public catalog reads.
type CatalogService interface {
	Courses(ctx context.Context) ([]*domain.Course, error)
	Books(ctx context.Context) ([]*domain.Book, error)
}
