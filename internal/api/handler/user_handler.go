package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathagar/bookshop-api/internal/core/domain"
	"github.com/pathagar/bookshop-api/internal/core/ports"
)

// UserHandler handles profile management and role administration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type profileRequest struct {
	Name      string `json:"name"`
	Education string `json:"education"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

func (r profileRequest) toInput() ports.ProfileInput {
	return ports.ProfileInput{
		Name:      r.Name,
		Education: r.Education,
		Address:   r.Address,
		Phone:     r.Phone,
	}
}

type upsertProfileResponse struct {
	Result *domain.User `json:"result"`
	Token  string       `json:"token"`
}

type adminCheckResponse struct {
	Admin bool `json:"admin"`
}

// Upsert handles PUT /user/:email, the bootstrap path that creates or
// updates a profile and issues a bearer token for it. Public by contract:
// identity is asserted upstream and this is where the first token comes from.
//
// @Summary      Upsert a user profile and issue a token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        email  path      string          true  "User email"
// @Param        body   body      profileRequest  true  "Profile fields"
// @Success      200    {object}  upsertProfileResponse
// @Failure      400    {object}  errorResponse
// @Router       /user/{email} [put]
func (h *UserHandler) Upsert(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, token, err := h.service.UpsertProfile(c.Request().Context(), c.Param("email"), req.toInput())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, upsertProfileResponse{Result: user, Token: token})
}

// Update handles PUT /userupdate/:email, guarded by Auth + Owner. No token
// is issued here.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string          true  "User email"
// @Param        body   body      profileRequest  true  "Profile fields"
// @Success      200    {object}  domain.User
// @Failure      403    {object}  errorResponse
// @Router       /userupdate/{email} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), c.Param("email"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Profile handles GET /userprofile/:email, guarded by Auth + Owner.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  domain.User
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /userprofile/{email} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.service.Profile(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// AdminCheck handles GET /admin/:email. Public: it only reveals whether an
// email maps to the admin role, mirroring the source contract.
//
// @Summary      Check whether an email holds the admin role
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  adminCheckResponse
// @Router       /admin/{email} [get]
func (h *UserHandler) AdminCheck(c echo.Context) error {
	isAdmin, err := h.service.IsAdmin(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminCheckResponse{Admin: isAdmin})
}

// List handles GET /allusers, guarded by Auth + Admin.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /allusers [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Delete handles DELETE /allusers/dlt/:email, guarded by Auth + Admin.
//
// @Summary      Remove a user account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  map[string]bool
// @Failure      403    {object}  errorResponse
// @Router       /allusers/dlt/{email} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.RemoveUser(c.Request().Context(), c.Param("email")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

// MakeAdmin handles PUT /allusers/makeadmin/:email, guarded by Auth + Admin.
//
// @Summary      Elevate a user to the admin role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Target user email"
// @Success      200    {object}  map[string]bool
// @Failure      403    {object}  errorResponse
// @Router       /allusers/makeadmin/{email} [put]
func (h *UserHandler) MakeAdmin(c echo.Context) error {
	requester, err := principalEmail(c)
	if err != nil {
		return err
	}

	if err := h.service.MakeAdmin(c.Request().Context(), requester, c.Param("email")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"modified": true})
}
