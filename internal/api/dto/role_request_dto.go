package dto

import (
	"time"

	"github.com/fusaf/role-request-service/internal/domain"
)

// SubmitRoleRequest payload.
type SubmitRoleRequest struct {
	RequestedRole string `json:"requested_role"`
	Reason        string `json:"reason"`
}

// ReviewRoleRequest payload.
type ReviewRoleRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// RoleRequestResponse response.
type RoleRequestResponse struct {
	ID            string                   `json:"id"`
	UserEmail     string                   `json:"user_email"`
	UserName      string                   `json:"user_name"`
	CurrentRole   string                   `json:"current_role"`
	RequestedRole string                   `json:"requested_role"`
	Reason        string                   `json:"reason"`
	Status        domain.RoleRequestStatus `json:"status"`
	RequestDate   time.Time                `json:"request_date"`
	ReviewedBy    string                   `json:"reviewed_by,omitempty"`
	ReviewDate    *time.Time               `json:"review_date,omitempty"`
	ReviewComment string                   `json:"review_comment,omitempty"`
}

// RoleRequestListResponse wraps the admin listing.
type RoleRequestListResponse struct {
	Requests []RoleRequestResponse `json:"requests"`
	Total    int                   `json:"total"`
}

// RoleRequestStatsResponse reports counts per status.
type RoleRequestStatsResponse struct {
	Total       int       `json:"total"`
	Pending     int       `json:"pending"`
	Approved    int       `json:"approved"`
	Rejected    int       `json:"rejected"`
	LastUpdated time.Time `json:"last_updated"`
}

// UserRoleStatusResponse reports the caller's own request state.
type UserRoleStatusResponse struct {
	Email            string               `json:"email"`
	Roles            []string             `json:"roles"`
	PrimaryRole      string               `json:"primary_role"`
	HasActiveRequest bool                 `json:"has_active_request"`
	RoleRequest      *RoleRequestResponse `json:"role_request"`
}
