package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathagar/bookshop-api/internal/api/metrics"
	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// CartHandler handles cart item CRUD and order-payment capture.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// --- Request / Response types ---

type addCartItemRequest struct {
	BookID   string  `json:"book_id"`
	Name     string  `json:"name"     validate:"required"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

type quantityUpdateRequest struct {
	// Pointer so that an explicit {"quantity": 0} passes required.
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

type capturePaymentRequest struct {
	TransactionID string  `json:"transactionId" validate:"required"`
	Price         float64 `json:"price"         validate:"gte=0"`
}

type cartItemResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	BookID        string  `json:"book_id,omitempty"`
	Name          string  `json:"name"`
	Image         string  `json:"image,omitempty"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Paid          bool    `json:"paid"`
	TransactionID string  `json:"transactionId,omitempty"`
}

func toCartItemResponse(item *domain.CartItem) cartItemResponse {
	return cartItemResponse{
		ID:            item.ID,
		Email:         item.Email,
		BookID:        item.BookID,
		Name:          item.Name,
		Image:         item.Image,
		Price:         item.Price,
		Quantity:      item.Quantity,
		Paid:          item.Paid,
		TransactionID: item.TransactionID,
	}
}

func toCartItemsResponse(items []*domain.CartItem) []cartItemResponse {
	out := make([]cartItemResponse, len(items))
	for i, item := range items {
		out[i] = toCartItemResponse(item)
	}
	return out
}

// Add handles POST /cart. The owner email always comes from the resolved
// principal, never from the body.
//
// @Summary      Add a cart item
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartItemRequest  true  "Cart item"
// @Success      201   {object}  cartItemResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	email, err := principalEmail(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.AddItem(c.Request().Context(), ports.AddCartItemInput{
		Email:    email,
		BookID:   req.BookID,
		Name:     req.Name,
		Image:    req.Image,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCartItemResponse(item))
}

// List handles GET /carts with an optional email query filter.
//
// @Summary      List cart items
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  false  "Filter by owner email"
// @Success      200    {array}   cartItemResponse
// @Failure      401    {object}  errorResponse
// @Router       /carts [get]
func (h *CartHandler) List(c echo.Context) error {
	items, err := h.service.ListItems(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartItemsResponse(items))
}

// Get handles GET /carts/:id.
//
// @Summary      Get a cart item by id
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart item id"
// @Success      200  {object}  cartItemResponse
// @Failure      404  {object}  errorResponse
// @Router       /carts/{id} [get]
func (h *CartHandler) Get(c echo.Context) error {
	item, err := h.service.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartItemResponse(item))
}

// ListByOwner handles GET /booking/email/:email, guarded by Owner.
//
// @Summary      List the principal's cart items
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Owner email"
// @Success      200    {array}   cartItemResponse
// @Failure      403    {object}  errorResponse
// @Router       /booking/email/{email} [get]
func (h *CartHandler) ListByOwner(c echo.Context) error {
	items, err := h.service.ListItems(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartItemsResponse(items))
}

// SetQuantity handles PUT /carts/quantity/:id. Idempotent: repeating the
// same quantity leaves the stored state unchanged.
//
// @Summary      Set a cart item's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Cart item id"
// @Param        body  body      quantityUpdateRequest  true  "New quantity"
// @Success      200   {object}  cartItemResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /carts/quantity/{id} [put]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	var req quantityUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.SetQuantity(c.Request().Context(), c.Param("id"), *req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartItemResponse(item))
}

// Delete handles DELETE /carts/delete/:id and DELETE /booking/dlt/:id.
//
// @Summary      Delete a cart item
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart item id"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  errorResponse
// @Router       /carts/delete/{id} [delete]
func (h *CartHandler) Delete(c echo.Context) error {
	if err := h.service.RemoveItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

// Capture handles PATCH /cart/:id, the order payment capture. The response is
// built from the verified stored state after both persistence steps succeed.
//
// @Summary      Capture an order payment
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Order (cart item) id"
// @Param        body  body      capturePaymentRequest  true  "Payment confirmation"
// @Success      200   {object}  cartItemResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /cart/{id} [patch]
func (h *CartHandler) Capture(c echo.Context) error {
	email, err := principalEmail(c)
	if err != nil {
		return err
	}

	var req capturePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.service.CapturePayment(c.Request().Context(), ports.CapturePaymentInput{
		OrderID:       c.Param("id"),
		Email:         email,
		TransactionID: req.TransactionID,
		Price:         req.Price,
	})
	if err != nil {
		return err
	}

	metrics.OrdersCapturedTotal.Inc()
	return c.JSON(http.StatusOK, toCartItemResponse(order))
}

// GetPayment handles GET /payments/:transactionId, the admin-only lookup of
// the payment record behind a captured order.
//
// @Summary      Look up a payment record by transaction id
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        transactionId  path      string  true  "Transaction id"
// @Success      200            {object}  domain.Payment
// @Failure      403            {object}  errorResponse
// @Failure      404            {object}  errorResponse
// @Router       /payments/{transactionId} [get]
func (h *CartHandler) GetPayment(c echo.Context) error {
	payment, err := h.service.PaymentByTransaction(c.Request().Context(), c.Param("transactionId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}
