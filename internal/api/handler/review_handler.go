package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// ReviewHandler handles review creation and listing.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type addReviewRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// List handles GET /review.
//
// @Summary      List all reviews
// @Tags         reviews
// @Produce      json
// @Success      200  {array}   domain.Review
// @Failure      500  {object}  errorResponse
// @Router       /review [get]
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// Add handles POST /review. The review's email is the resolved principal's.
//
// @Summary      Add a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addReviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /review [post]
func (h *ReviewHandler) Add(c echo.Context) error {
	email, err := principalEmail(c)
	if err != nil {
		return err
	}

	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	review, err := h.service.Add(c.Request().Context(), ports.ReviewInput{
		Email:   email,
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, review)
}
