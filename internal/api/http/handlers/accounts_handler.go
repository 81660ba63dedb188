package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fusaf/role-request-service/internal/api/dto"
	"github.com/fusaf/role-request-service/internal/domain"
	"github.com/fusaf/role-request-service/internal/service"
)

// AccountsHandler exposes registration and login endpoints.
type AccountsHandler struct {
	auth *service.AuthService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(authService *service.AuthService) *AccountsHandler {
	return &AccountsHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	account, token, exp, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"account": dto.AccountResponse{
				ID:    account.ID,
				Name:  account.Name,
				Email: account.Email,
				Roles: account.Roles,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// UpdateStatus handles PUT /accounts/:id/status. Admin only.
func (h *AccountsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateAccountStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	account, err := h.auth.SetAccountStatus(c.Context(), c.Params("id"), domain.AccountStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": dto.AccountResponse{
				ID:    account.ID,
				Name:  account.Name,
				Email: account.Email,
				Roles: account.Roles,
			},
			"status": account.Status,
		},
	})
}

// Login handles POST /auth/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	account, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": dto.AccountResponse{
				ID:    account.ID,
				Name:  account.Name,
				Email: account.Email,
				Roles: account.Roles,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}
