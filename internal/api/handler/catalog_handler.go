package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// CatalogHandler serves the public course and book listings.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Courses handles GET /course.
//
// @Summary      List all courses
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Course
// @Failure      500  {object}  errorResponse
// @Router       /course [get]
func (h *CatalogHandler) Courses(c echo.Context) error {
	courses, err := h.service.Courses(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Books handles GET /books.
//
// @Summary      List all books
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Book
// @Failure      500  {object}  errorResponse
// @Router       /books [get]
func (h *CatalogHandler) Books(c echo.Context) error {
	books, err := h.service.Books(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}
