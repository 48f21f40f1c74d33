package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/farmlink/farm-marketplace/internal/config"
	"github.com/farmlink/farm-marketplace/internal/model"
	"github.com/farmlink/farm-marketplace/internal/repository"
	"github.com/farmlink/farm-marketplace/internal/utils"
)

const defaultRole = "Farmer"

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Update(ctx context.Context, u *model.User) error
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
}

type OrderStore interface {
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
}

// UserHandler bundles dependencies for registration, login and profile
// endpoints. No session or token is issued here; session management is
// the gateway's concern.
type UserHandler struct {
	Cfg    config.Config
	Users  UserStore
	Orders OrderStore
}

func NewUserHandler(cfg config.Config, u UserStore, o OrderStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Orders: o}
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.RequireFields(payload, "name", "email", "password"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	u := model.User{Role: defaultRole}
	if u.Name, err = utils.StringField(payload, "name"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	email, err := utils.StringField(payload, "email")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	u.Email = strings.ToLower(strings.TrimSpace(email))
	if !utils.ValidEmail(u.Email) {
		return errJSON(c, http.StatusBadRequest, "Invalid email format")
	}
	password, err := utils.StringField(payload, "password")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if v, ok := payload["role"]; ok && v != nil {
		if u.Role, err = utils.StringField(payload, "role"); err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Duplicate check runs before the password rule, matching the
	// storefront's long-standing error precedence.
	taken, err := h.Users.EmailTaken(ctx, u.Email, "")
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	if taken {
		return errJSON(c, http.StatusConflict, "Email already registered")
	}
	if !utils.ValidPassword(password) {
		return errJSON(c, http.StatusBadRequest, "Password must be at least 8 characters long")
	}
	if u.PasswordHash, err = utils.HashPassword(password, h.Cfg.BcryptCost); err != nil {
		return errJSON(c, http.StatusInternalServerError, "could not hash password")
	}

	if err := h.Users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return errJSON(c, http.StatusConflict, "Email already registered")
		}
		return errJSON(c, http.StatusInternalServerError, "could not create user")
	}
	return c.JSON(http.StatusCreated, u.View())
}

// Login handles POST /api/users/login. Unknown email and wrong password
// produce the identical response so accounts cannot be enumerated.
func (h *UserHandler) Login(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if err := utils.RequireFields(payload, "email", "password"); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	email, err := utils.StringField(payload, "email")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	password, err := utils.StringField(payload, "password")
	if err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return errJSON(c, http.StatusUnauthorized, "Invalid email or password")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"user":    u.View(),
	})
}

// Get handles GET /api/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, "User not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	return c.JSON(http.StatusOK, u.View())
}

// Update handles PUT /api/users/:id. Email changes re-check syntax and
// uniqueness (excluding the user's own row); password changes re-check
// strength and rehash.
func (h *UserHandler) Update(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, "User not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}

	payload, err := bindPayload(c)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if _, ok := payload["name"]; ok {
		if u.Name, err = utils.StringField(payload, "name"); err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
	}
	if _, ok := payload["email"]; ok {
		email, err := utils.StringField(payload, "email")
		if err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
		email = strings.ToLower(strings.TrimSpace(email))
		if !utils.ValidEmail(email) {
			return errJSON(c, http.StatusBadRequest, "Invalid email format")
		}
		taken, err := h.Users.EmailTaken(ctx, email, u.ID)
		if err != nil {
			return errJSON(c, http.StatusInternalServerError, "db error")
		}
		if taken {
			return errJSON(c, http.StatusConflict, "Email already registered")
		}
		u.Email = email
	}
	if _, ok := payload["password"]; ok {
		password, err := utils.StringField(payload, "password")
		if err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
		if !utils.ValidPassword(password) {
			return errJSON(c, http.StatusBadRequest, "Password must be at least 8 characters long")
		}
		if u.PasswordHash, err = utils.HashPassword(password, h.Cfg.BcryptCost); err != nil {
			return errJSON(c, http.StatusInternalServerError, "could not hash password")
		}
	}
	if _, ok := payload["role"]; ok {
		if u.Role, err = utils.StringField(payload, "role"); err != nil {
			return errJSON(c, http.StatusBadRequest, err.Error())
		}
	}

	if err := h.Users.Update(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return errJSON(c, http.StatusConflict, "Email already registered")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, "User not found")
		}
		return errJSON(c, http.StatusInternalServerError, "update failed")
	}
	return c.JSON(http.StatusOK, u.View())
}

// ListOrders handles GET /api/users/:id/orders. Orders are read-only in
// this service; each one embeds its items with product names and
// computed subtotals.
func (h *UserHandler) ListOrders(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errJSON(c, http.StatusNotFound, "User not found")
		}
		return errJSON(c, http.StatusInternalServerError, "db error")
	}
	orders, err := h.Orders.ListByUser(ctx, u.ID)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "could not list orders")
	}
	out := make([]model.OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.View())
	}
	return c.JSON(http.StatusOK, out)
}
