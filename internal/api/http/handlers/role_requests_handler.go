package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fusaf/role-request-service/internal/api/dto"
	"github.com/fusaf/role-request-service/internal/auth"
	"github.com/fusaf/role-request-service/internal/domain"
	"github.com/fusaf/role-request-service/internal/service"
	apperrors "github.com/fusaf/role-request-service/pkg/util"
)

// RoleRequestsHandler manages role upgrade request endpoints.
type RoleRequestsHandler struct {
	service *service.RoleRequestService
}

// NewRoleRequestsHandler constructs handler.
func NewRoleRequestsHandler(roleRequestService *service.RoleRequestService) *RoleRequestsHandler {
	return &RoleRequestsHandler{service: roleRequestService}
}

// Submit POST /role-requests.
func (h *RoleRequestsHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SubmitRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.service.Submit(c.Context(), service.Identity{
		Email: principal.Account.Email,
		Name:  principal.Account.Name,
	}, service.SubmitInput{
		RequestedRole: req.RequestedRole,
		Reason:        req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": roleRequestResponse(request)})
}

// List GET /role-requests. Admin only; supports ?status= filtering.
func (h *RoleRequestsHandler) List(c *fiber.Ctx) error {
	requests := h.service.ListForAdmin(c.Query("status"))
	items := make([]dto.RoleRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, roleRequestResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": dto.RoleRequestListResponse{
		Requests: items,
		Total:    len(items),
	}})
}

// Review PUT /role-requests/:id. Admin only.
func (h *RoleRequestsHandler) Review(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReviewRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	request, err := h.service.Review(c.Context(), principal.Account.Email, c.Params("id"), domain.RoleRequestStatus(req.Status), req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roleRequestResponse(request)})
}

// OwnStatus GET /role-requests/status.
func (h *RoleRequestsHandler) OwnStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	status := h.service.StatusForUser(principal.Account.Email)
	resp := dto.UserRoleStatusResponse{
		Email:            principal.Account.Email,
		Roles:            principal.Account.Roles,
		PrimaryRole:      principal.Account.PrimaryRole(),
		HasActiveRequest: status.HasActiveRequest,
	}
	if status.Request != nil {
		reqResp := roleRequestResponse(status.Request)
		resp.RoleRequest = &reqResp
	}
	return c.JSON(fiber.Map{"data": resp})
}

// Stats GET /role-requests/stats. Admin only.
func (h *RoleRequestsHandler) Stats(c *fiber.Ctx) error {
	stats := h.service.Stats()
	return c.JSON(fiber.Map{"data": dto.RoleRequestStatsResponse{
		Total:       stats.Total,
		Pending:     stats.Pending,
		Approved:    stats.Approved,
		Rejected:    stats.Rejected,
		LastUpdated: stats.LastUpdated,
	}})
}

func roleRequestResponse(req *domain.RoleRequest) dto.RoleRequestResponse {
	return dto.RoleRequestResponse{
		ID:            req.ID,
		UserEmail:     req.UserEmail,
		UserName:      req.UserName,
		CurrentRole:   req.CurrentRole,
		RequestedRole: req.RequestedRole,
		Reason:        req.Reason,
		Status:        req.Status,
		RequestDate:   req.RequestDate,
		ReviewedBy:    req.ReviewedBy,
		ReviewDate:    req.ReviewDate,
		ReviewComment: req.ReviewComment,
	}
}
